package ranking

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

const DefaultLimit = 5

type Engine struct {
	limit     int
	formatter *utils.CurrencyFormatter
}

func NewEngine(limit int, formatter *utils.CurrencyFormatter) *Engine {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if formatter == nil {
		formatter = utils.NewCurrencyFormatter("pt-BR", "BRL")
	}
	return &Engine{
		limit:     limit,
		formatter: formatter,
	}
}

type campaignTotals struct {
	id          string
	spend       decimal.Decimal
	revenue     decimal.Decimal
	conversions float64
}

// Rank agrupa as linhas por campanha e devolve as melhores por ROAS (empate: id crescente)
func (e *Engine) Rank(rows []*domain.InsightRecord, campaigns []*domain.Campaign) []domain.TopCampaign {
	byID := make(map[string]*domain.Campaign, len(campaigns))
	for _, campaign := range campaigns {
		byID[campaign.ID] = campaign
	}

	grouped := make(map[string]*campaignTotals)
	for _, row := range rows {
		totals, ok := grouped[row.EntityID]
		if !ok {
			totals = &campaignTotals{id: row.EntityID}
			grouped[row.EntityID] = totals
		}
		totals.spend = totals.spend.Add(row.SpendValue())
		totals.revenue = totals.revenue.Add(row.RevenueValue())
		totals.conversions += row.ConversionsValue()
	}

	ranked := make([]domain.TopCampaign, 0, len(grouped))
	for id, totals := range grouped {
		spend := utils.DecimalToFloat(totals.spend)
		revenue := utils.DecimalToFloat(totals.revenue)
		cpa := utils.SafeDivide(spend, totals.conversions)

		entry := domain.TopCampaign{
			CampaignID:       id,
			Name:             id,
			Spend:            spend,
			Revenue:          revenue,
			Conversions:      totals.conversions,
			ROAS:             utils.SafeDivide(revenue, spend),
			CPA:              cpa,
			SpendFormatted:   e.formatter.Format(spend),
			RevenueFormatted: e.formatter.Format(revenue),
			CPAFormatted:     e.formatter.Format(cpa),
		}
		if campaign, ok := byID[id]; ok {
			if campaign.Name != "" {
				entry.Name = campaign.Name
			}
			entry.Objective = campaign.Objective
		}

		ranked = append(ranked, entry)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ROAS != ranked[j].ROAS {
			return ranked[i].ROAS > ranked[j].ROAS
		}
		return ranked[i].CampaignID < ranked[j].CampaignID
	})

	if len(ranked) > e.limit {
		ranked = ranked[:e.limit]
	}

	return ranked
}
