package insighting

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

import (
	"context"
	"time"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

// Ranker ordena as campanhas do conjunto filtrado de linhas
type Ranker interface {
	Rank(rows []*domain.InsightRecord, campaigns []*domain.Campaign) []domain.TopCampaign
}

// Loader é o caminho de leitura do painel: sempre devolve um snapshot válido,
// mesmo quando também devolve erro
type Loader interface {
	Load(ctx context.Context, request LoadRequest) (*domain.MetricsSnapshot, error)
}

type LoadRequest struct {
	Accounts []domain.ResolvedAccount
	Bounds   domain.DateBounds
	// Now já convertido para o fuso de negócio; define a hora usada nas séries horárias
	Now time.Time
}
