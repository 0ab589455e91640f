package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

func TestHourlyProfile_SumsToHundred(t *testing.T) {
	total := 0.0
	for _, share := range HourlyProfile {
		total += share
	}
	assert.InDelta(t, 100.0, total, 1e-6)
}

func TestBuildPlatformShare(t *testing.T) {
	rows := []*domain.InsightRecord{
		{EntityID: "cmp_1", Spend: "30"},
		{EntityID: "cmp_2", Spend: "50"},
		{EntityID: "cmp_3", Spend: "5"},
		{EntityID: "cmp_4", Spend: "5"},
		{EntityID: "cmp_5", Spend: "10"},
	}
	campaigns := []*domain.Campaign{
		{ID: "cmp_1", Objective: "LINK_CLICKS"},
		{ID: "cmp_2", Objective: "OUTCOME_SALES"},
		{ID: "cmp_3", Objective: "NEW_OBJECTIVE"},
		{ID: "cmp_4", Objective: ""},
		{ID: "cmp_5", Objective: " outcome_traffic "},
	}

	buckets, unmapped := BuildPlatformShare(rows, campaigns)

	require.Len(t, buckets, 3)
	assert.Equal(t, "Vendas", buckets[0].Name)
	assert.Equal(t, 50.0, buckets[0].Value)
	assert.Equal(t, "Tráfego", buckets[1].Name)
	assert.Equal(t, 40.0, buckets[1].Value)
	assert.Equal(t, otherBucketName, buckets[2].Name)
	assert.Equal(t, otherBucketColor, buckets[2].Color)
	assert.Equal(t, 10.0, buckets[2].Value)

	assert.Equal(t, []string{"NEW_OBJECTIVE"}, unmapped)
}

func TestBuildFunnel(t *testing.T) {
	funnel := BuildFunnel(domain.Metrics{Impressions: 1000, Clicks: 50, Conversions: 5})

	require.Len(t, funnel, 3)
	assert.Equal(t, domain.FunnelStage{Stage: "Impressões", Value: 1000, Rate: 100}, funnel[0])
	assert.Equal(t, domain.FunnelStage{Stage: "Cliques", Value: 50, Rate: 5}, funnel[1])
	assert.Equal(t, domain.FunnelStage{Stage: "Conversões", Value: 5, Rate: 10}, funnel[2])

	zero := BuildFunnel(domain.Metrics{})
	assert.Equal(t, 0.0, zero[1].Rate)
	assert.Equal(t, 0.0, zero[2].Rate)
}

func TestBuildHourlyHeatmap(t *testing.T) {
	slots := BuildHourlyHeatmap(domain.Metrics{Spend: 1000, Clicks: 200, Conversions: 10})

	require.Len(t, slots, 24)
	assert.Equal(t, "00:00", slots[0].Label)
	assert.Equal(t, "19:00", slots[19].Label)
	assert.Equal(t, 75.0, slots[19].Spend)
	assert.Equal(t, 15.0, slots[19].Clicks)
	assert.Equal(t, 0.75, slots[19].Conversions)
}

func TestBuildHourlyEvolution(t *testing.T) {
	points := BuildHourlyEvolution(domain.Metrics{Spend: 1000, Revenue: 3000}, 1)

	require.Len(t, points, 2)
	// horas 0 e 1 valem 0.4% e 0.2% do dia; truncar não redistribui o total
	assert.InDelta(t, 4.0, points[0].Spend, 0.001)
	assert.InDelta(t, 2.0, points[1].Spend, 0.001)
	assert.InDelta(t, 12.0, points[0].Revenue, 0.001)
	assert.InDelta(t, 6.0, points[1].Revenue, 0.001)

	full := BuildHourlyEvolution(domain.Metrics{Spend: 1000}, 23)
	heatmap := BuildHourlyHeatmap(domain.Metrics{Spend: 1000})
	for hour := range full {
		assert.Equal(t, heatmap[hour].Spend, full[hour].Spend)
	}

	assert.Len(t, BuildHourlyEvolution(domain.Metrics{}, 23), 24)
	assert.Len(t, BuildHourlyEvolution(domain.Metrics{}, 99), 24)
	assert.Len(t, BuildHourlyEvolution(domain.Metrics{}, -1), 1)
}

func TestBuildDailyEvolution(t *testing.T) {
	points := BuildDailyEvolution([]*domain.InsightRecord{
		{Date: "2024-05-02", Clicks: 10, Impressions: 100, Conversions: 1},
		{Date: "2024-05-01", Clicks: 0, Impressions: 0},
		{Date: "2024-05-02", Clicks: 10, Impressions: 300},
	})

	require.Len(t, points, 2)
	assert.Equal(t, "2024-05-01", points[0].ISODate)
	assert.Equal(t, 0.0, points[0].CTR)
	assert.Equal(t, int64(20), points[1].Clicks)
	assert.Equal(t, 5.0, points[1].CTR)
}
