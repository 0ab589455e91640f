package insighting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

const (
	otherBucketName  = "Outros"
	otherBucketColor = "#6B7280"

	displayDateLayout = "02/01"
)

type objectiveBucket struct {
	Name  string
	Color string
}

var (
	bucketSales      = objectiveBucket{Name: "Vendas", Color: "#10B981"}
	bucketLeads      = objectiveBucket{Name: "Leads", Color: "#3B82F6"}
	bucketTraffic    = objectiveBucket{Name: "Tráfego", Color: "#F59E0B"}
	bucketEngagement = objectiveBucket{Name: "Engajamento", Color: "#8B5CF6"}
	bucketAwareness  = objectiveBucket{Name: "Reconhecimento", Color: "#EC4899"}
	bucketMessages   = objectiveBucket{Name: "Mensagens", Color: "#06B6D4"}
	bucketOther      = objectiveBucket{Name: otherBucketName, Color: otherBucketColor}
)

// objectiveTable cobre os objetivos atuais (OUTCOME_*) e os legados da plataforma
var objectiveTable = map[string]objectiveBucket{
	"OUTCOME_SALES":         bucketSales,
	"CONVERSIONS":           bucketSales,
	"PRODUCT_CATALOG_SALES": bucketSales,
	"OUTCOME_LEADS":         bucketLeads,
	"LEAD_GENERATION":       bucketLeads,
	"OUTCOME_TRAFFIC":       bucketTraffic,
	"LINK_CLICKS":           bucketTraffic,
	"OUTCOME_ENGAGEMENT":    bucketEngagement,
	"POST_ENGAGEMENT":       bucketEngagement,
	"PAGE_LIKES":            bucketEngagement,
	"VIDEO_VIEWS":           bucketEngagement,
	"OUTCOME_AWARENESS":     bucketAwareness,
	"BRAND_AWARENESS":       bucketAwareness,
	"REACH":                 bucketAwareness,
	"MESSAGES":              bucketMessages,
	"OUTCOME_MESSAGES":      bucketMessages,
}

// HourlyProfile é a distribuição típica do tráfego ao longo do dia, em percentuais que
// somam 100. É uma heurística: a fonte não tem granularidade horária.
var HourlyProfile = [24]float64{
	0.4, 0.2, 0.1, 0.1, 0.2, 0.5, 1.5, 3.0, 4.7, 5.7, 6.3, 6.6,
	6.3, 6.1, 5.9, 5.8, 5.9, 6.3, 6.9, 7.5, 7.5, 6.8, 4.5, 1.2,
}

// classifyObjective devolve o bucket do objetivo e se ele foi encontrado na tabela
func classifyObjective(objective string) (objectiveBucket, bool) {
	bucket, ok := objectiveTable[strings.ToUpper(strings.TrimSpace(objective))]
	if !ok {
		return bucketOther, false
	}
	return bucket, true
}

type dayTotals struct {
	spend       decimal.Decimal
	revenue     decimal.Decimal
	conversions float64
	clicks      int64
	impressions int64
}

func groupByDate(rows []*domain.InsightRecord) ([]string, map[string]*dayTotals) {
	days := make(map[string]*dayTotals)
	dates := make([]string, 0)

	for _, row := range rows {
		day, ok := days[row.Date]
		if !ok {
			day = &dayTotals{}
			days[row.Date] = day
			dates = append(dates, row.Date)
		}
		day.spend = day.spend.Add(row.SpendValue())
		day.revenue = day.revenue.Add(row.RevenueValue())
		day.conversions += row.ConversionsValue()
		day.clicks += row.Clicks
		day.impressions += row.Impressions
	}

	sort.Strings(dates)
	return dates, days
}

func displayDate(isoDate string) string {
	date, err := time.Parse(time.DateOnly, isoDate)
	if err != nil {
		return isoDate
	}
	return date.Format(displayDateLayout)
}

// BuildFinancialEvolution gera um ponto por data presente, em ordem crescente
func BuildFinancialEvolution(rows []*domain.InsightRecord) []domain.FinancialPoint {
	dates, days := groupByDate(rows)

	points := make([]domain.FinancialPoint, 0, len(dates))
	for _, date := range dates {
		day := days[date]
		spend := utils.DecimalToFloat(day.spend)
		revenue := utils.DecimalToFloat(day.revenue)

		points = append(points, domain.FinancialPoint{
			DisplayDate: displayDate(date),
			ISODate:     date,
			Spend:       spend,
			Revenue:     revenue,
			Profit:      utils.DecimalToFloat(day.revenue.Sub(day.spend)),
			ROAS:        utils.SafeDivide(revenue, spend),
		})
	}

	return points
}

func BuildDailyEvolution(rows []*domain.InsightRecord) []domain.DailyPoint {
	dates, days := groupByDate(rows)

	points := make([]domain.DailyPoint, 0, len(dates))
	for _, date := range dates {
		day := days[date]
		points = append(points, domain.DailyPoint{
			DisplayDate: displayDate(date),
			ISODate:     date,
			Conversions: day.conversions,
			Clicks:      day.clicks,
			Impressions: day.impressions,
			CTR:         utils.SafeDivide(float64(day.clicks), float64(day.impressions)) * 100,
		})
	}

	return points
}

// BuildPlatformShare soma o gasto por bucket de objetivo, do maior para o menor.
// Também devolve os objetivos não mapeados, para que o chamador possa registrá-los.
func BuildPlatformShare(rows []*domain.InsightRecord, campaigns []*domain.Campaign) ([]domain.ShareBucket, []string) {
	objectives := make(map[string]string, len(campaigns))
	for _, campaign := range campaigns {
		objectives[campaign.ID] = campaign.Objective
	}

	totals := make(map[objectiveBucket]decimal.Decimal)
	unmappedSet := make(map[string]struct{})
	unmapped := make([]string, 0)

	for _, row := range rows {
		objective := objectives[row.EntityID]
		bucket, ok := classifyObjective(objective)
		if !ok && objective != "" {
			if _, seen := unmappedSet[objective]; !seen {
				unmappedSet[objective] = struct{}{}
				unmapped = append(unmapped, objective)
			}
		}
		totals[bucket] = totals[bucket].Add(row.SpendValue())
	}

	buckets := make([]domain.ShareBucket, 0, len(totals))
	for bucket, value := range totals {
		buckets = append(buckets, domain.ShareBucket{
			Name:  bucket.Name,
			Color: bucket.Color,
			Value: utils.DecimalToFloat(value),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Value != buckets[j].Value {
			return buckets[i].Value > buckets[j].Value
		}
		return buckets[i].Name < buckets[j].Name
	})

	return buckets, unmapped
}

// BuildFunnel monta Impressões -> Cliques -> Conversões; cada taxa é sobre a etapa anterior
func BuildFunnel(metrics domain.Metrics) []domain.FunnelStage {
	impressions := float64(metrics.Impressions)
	clicks := float64(metrics.Clicks)

	return []domain.FunnelStage{
		{Stage: "Impressões", Value: impressions, Rate: 100},
		{Stage: "Cliques", Value: clicks, Rate: utils.RoundWithTwoDecimalPlace(utils.SafeDivide(clicks, impressions) * 100)},
		{Stage: "Conversões", Value: metrics.Conversions, Rate: utils.RoundWithTwoDecimalPlace(utils.SafeDivide(metrics.Conversions, clicks) * 100)},
	}
}

func hourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// BuildHourlyHeatmap distribui os totais do dia pelas 24 faixas do perfil horário
func BuildHourlyHeatmap(metrics domain.Metrics) []domain.HeatmapSlot {
	slots := make([]domain.HeatmapSlot, 0, len(HourlyProfile))
	for hour, share := range HourlyProfile {
		slots = append(slots, domain.HeatmapSlot{
			Hour:        hour,
			Label:       hourLabel(hour),
			Share:       share,
			Spend:       utils.RoundWithTwoDecimalPlace(metrics.Spend * share / 100),
			Conversions: utils.RoundWithTwoDecimalPlace(metrics.Conversions * share / 100),
			Clicks:      utils.RoundWithTwoDecimalPlace(float64(metrics.Clicks) * share / 100),
		})
	}
	return slots
}

// BuildHourlyEvolution aplica o perfil horário aos totais do dia, da hora 0 até currentHour
func BuildHourlyEvolution(metrics domain.Metrics, currentHour int) []domain.HourlyPoint {
	if currentHour < 0 {
		currentHour = 0
	}
	if currentHour > len(HourlyProfile)-1 {
		currentHour = len(HourlyProfile) - 1
	}

	points := make([]domain.HourlyPoint, 0, currentHour+1)
	for hour := 0; hour <= currentHour; hour++ {
		share := HourlyProfile[hour]
		points = append(points, domain.HourlyPoint{
			Hour:    hour,
			Label:   hourLabel(hour),
			Spend:   utils.RoundWithTwoDecimalPlace(metrics.Spend * share / 100),
			Revenue: utils.RoundWithTwoDecimalPlace(metrics.Revenue * share / 100),
		})
	}
	return points
}
