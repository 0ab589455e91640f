// Package insighting agrega as linhas diárias de desempenho das campanhas em
// totais, razões derivadas e séries prontas para os gráficos do painel.
package insighting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

// SnapshotInput é o conjunto já filtrado de linhas e o contexto necessário para as séries
type SnapshotInput struct {
	Rows      []*domain.InsightRecord
	Campaigns []*domain.Campaign
	Bounds    domain.DateBounds
	Now       time.Time
}

// ComputeSnapshot é pura e determinística: não faz I/O e não altera as linhas.
// O ranking de campanhas fica a cargo do Ranker.
func ComputeSnapshot(in SnapshotInput) *domain.MetricsSnapshot {
	snapshot := domain.EmptySnapshot(in.Bounds)
	if len(in.Rows) == 0 {
		return snapshot
	}

	snapshot.Metrics = FoldMetrics(in.Rows)

	charts := &snapshot.ChartsData
	charts.FinancialEvolution = BuildFinancialEvolution(in.Rows)
	charts.PlatformShare, _ = BuildPlatformShare(in.Rows, in.Campaigns)
	charts.Funnel = BuildFunnel(snapshot.Metrics)

	if in.Bounds.Filter == domain.DateFilterToday {
		charts.HourlyHeatmap = BuildHourlyHeatmap(snapshot.Metrics)
		charts.HourlyEvolution = BuildHourlyEvolution(snapshot.Metrics, in.Now.Hour())
		charts.HourlyIsEstimate = true
	} else {
		charts.DailyEvolution = BuildDailyEvolution(in.Rows)
	}

	return snapshot
}

// FoldMetrics soma as linhas e deriva as razões; denominador zero resulta em zero
func FoldMetrics(rows []*domain.InsightRecord) domain.Metrics {
	spend := decimal.Zero
	revenue := decimal.Zero
	var conversions float64
	var impressions, clicks int64

	for _, row := range rows {
		spend = spend.Add(row.SpendValue())
		revenue = revenue.Add(row.RevenueValue())
		conversions += row.ConversionsValue()
		impressions += row.Impressions
		clicks += row.Clicks
	}

	return DeriveMetrics(utils.DecimalToFloat(spend), utils.DecimalToFloat(revenue), utils.Finite(conversions), impressions, clicks)
}

func DeriveMetrics(spend, revenue, conversions float64, impressions, clicks int64) domain.Metrics {
	return domain.Metrics{
		Spend:       spend,
		Revenue:     revenue,
		Conversions: conversions,
		Impressions: impressions,
		Clicks:      clicks,
		ROAS:        utils.SafeDivide(revenue, spend),
		CPC:         utils.SafeDivide(spend, float64(clicks)),
		CTR:         utils.SafeDivide(float64(clicks), float64(impressions)) * 100,
		CPA:         utils.SafeDivide(spend, conversions),
		CPM:         utils.SafeDivide(spend, float64(impressions)) * 1000,
	}
}

// FilterByBounds descarta linhas fora de [start, end]; a fonte pode filtrar de forma inexata
func FilterByBounds(rows []*domain.InsightRecord, bounds domain.DateBounds) []*domain.InsightRecord {
	filtered := make([]*domain.InsightRecord, 0, len(rows))
	for _, row := range rows {
		if row == nil || !bounds.Contains(row.Date) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}
