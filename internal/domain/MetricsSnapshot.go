package domain

import "time"

// Metrics são os totais e razões derivadas de um snapshot
type Metrics struct {
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
	Conversions float64 `json:"conversions"`
	ROAS        float64 `json:"roas"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CPC         float64 `json:"cpc"`
	CTR         float64 `json:"ctr"`
	CPA         float64 `json:"cpa"`
	CPM         float64 `json:"cpm"`
}

type FinancialPoint struct {
	DisplayDate string  `json:"displayDate"`
	ISODate     string  `json:"isoDate"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
	Profit      float64 `json:"profit"`
	ROAS        float64 `json:"roas"`
}

type DailyPoint struct {
	DisplayDate string  `json:"displayDate"`
	ISODate     string  `json:"isoDate"`
	Conversions float64 `json:"conversions"`
	Clicks      int64   `json:"clicks"`
	Impressions int64   `json:"impressions"`
	CTR         float64 `json:"ctr"`
}

type ShareBucket struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Value float64 `json:"value"`
}

type FunnelStage struct {
	Stage string  `json:"stage"`
	Value float64 `json:"value"`
	Rate  float64 `json:"rate"`
}

// HourlyPoint e HeatmapSlot são estimativas modeladas a partir dos totais do
// dia; a fonte não tem granularidade horária
type HourlyPoint struct {
	Hour    int     `json:"hour"`
	Label   string  `json:"label"`
	Spend   float64 `json:"spend"`
	Revenue float64 `json:"revenue"`
}

type HeatmapSlot struct {
	Hour        int     `json:"hour"`
	Label       string  `json:"label"`
	Share       float64 `json:"share"`
	Spend       float64 `json:"spend"`
	Conversions float64 `json:"conversions"`
	Clicks      float64 `json:"clicks"`
}

type ChartsData struct {
	FinancialEvolution []FinancialPoint `json:"financialEvolution"`
	HourlyEvolution    []HourlyPoint    `json:"hourlyEvolution,omitempty"`
	PlatformShare      []ShareBucket    `json:"platformShare"`
	Funnel             []FunnelStage    `json:"funnel"`
	HourlyHeatmap      []HeatmapSlot    `json:"hourlyHeatmap"`
	DailyEvolution     []DailyPoint     `json:"dailyEvolution,omitempty"`
	HourlyIsEstimate   bool             `json:"hourlyIsEstimate"`
}

type TopCampaign struct {
	CampaignID       string  `json:"campaignId"`
	Name             string  `json:"name"`
	Objective        string  `json:"objective"`
	Spend            float64 `json:"spend"`
	Revenue          float64 `json:"revenue"`
	Conversions      float64 `json:"conversions"`
	ROAS             float64 `json:"roas"`
	CPA              float64 `json:"cpa"`
	SpendFormatted   string  `json:"spendFormatted"`
	RevenueFormatted string  `json:"revenueFormatted"`
	CPAFormatted     string  `json:"cpaFormatted"`
}

// MetricsSnapshot é recalculado por completo a cada carga, nunca atualizado parcialmente
type MetricsSnapshot struct {
	Metrics      Metrics           `json:"metrics"`
	ChartsData   ChartsData        `json:"chartsData"`
	TopCampaigns []TopCampaign     `json:"topCampaigns"`
	Bounds       DateBounds        `json:"bounds"`
	Accounts     []ResolvedAccount `json:"accounts"`
	Truncated    bool              `json:"truncated"`
	GeneratedAt  time.Time         `json:"generatedAt"`
}

// EmptySnapshot devolve o snapshot zerado com todas as listas vazias (não nulas)
func EmptySnapshot(bounds DateBounds) *MetricsSnapshot {
	return &MetricsSnapshot{
		ChartsData: ChartsData{
			FinancialEvolution: []FinancialPoint{},
			PlatformShare:      []ShareBucket{},
			Funnel:             []FunnelStage{},
			HourlyHeatmap:      []HeatmapSlot{},
		},
		TopCampaigns: []TopCampaign{},
		Bounds:       bounds,
		Accounts:     []ResolvedAccount{},
	}
}

// IsEmpty indica um snapshot sem nenhuma linha de desempenho
func (s *MetricsSnapshot) IsEmpty() bool {
	if s == nil {
		return true
	}
	m := s.Metrics
	return len(s.ChartsData.FinancialEvolution) == 0 &&
		m.Spend == 0 && m.Impressions == 0 && m.Clicks == 0 && m.Conversions == 0
}
