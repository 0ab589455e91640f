package domain

import (
	"bytes"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// EntityTypeCampaign é o único tipo de entidade lido pelo painel
const EntityTypeCampaign = "CAMPAIGN"

// FlexNumber guarda um valor numérico que pode chegar como número ou como string
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	*n = FlexNumber(strings.Trim(string(data), `"`))
	return nil
}

// Decimal converte o valor; qualquer conteúdo não numérico ou fora da faixa de float64 vale zero
func (n FlexNumber) Decimal() decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(string(n)))
	if err != nil {
		return decimal.Zero
	}
	if f := value.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero
	}
	return value
}

// InsightRecord é uma linha diária de desempenho de uma campanha,
// escrita apenas pela ingestão externa
type InsightRecord struct {
	EntityID    string     `json:"entity_id"`
	Date        string     `json:"date"`
	Spend       FlexNumber `json:"spend"`
	Conversions float64    `json:"conversions"`
	ROAS        float64    `json:"roas"`
	Impressions int64      `json:"impressions"`
	Clicks      int64      `json:"clicks"`
	Revenue     *float64   `json:"revenue"`
}

func (r *InsightRecord) SpendValue() decimal.Decimal {
	return r.Spend.Decimal()
}

// RevenueValue usa a receita informada quando existe e é diferente de zero,
// senão estima por roas * spend
// NaN e infinito, aceitos pelas colunas numéricas do banco, valem zero.
func (r *InsightRecord) RevenueValue() decimal.Decimal {
	if r.Revenue != nil {
		if revenue := finite(*r.Revenue); revenue != 0 {
			return decimal.NewFromFloat(revenue)
		}
	}
	return decimal.NewFromFloat(finite(r.ROAS)).Mul(r.SpendValue())
}

func (r *InsightRecord) ConversionsValue() float64 {
	return finite(r.Conversions)
}

func finite(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
