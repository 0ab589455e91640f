package insighting

import (
	"context"
	"fmt"
	"strings"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

// Service implementa o Loader sobre os repositórios de campanhas e insights
type Service struct {
	campaignRepository repository.CampaignRepository
	insightRepository  repository.InsightRepository
	ranker             Ranker
	campaignLimit      int
}

func NewService(
	campaignRepository repository.CampaignRepository,
	insightRepository repository.InsightRepository,
	ranker Ranker,
	campaignLimit int,
) *Service {
	return &Service{
		campaignRepository: campaignRepository,
		insightRepository:  insightRepository,
		ranker:             ranker,
		campaignLimit:      campaignLimit,
	}
}

// Load nunca devolve snapshot nil. Em caso de falha de leitura devolve o snapshot
// zerado junto com um erro do tipo fetch.
func (s *Service) Load(ctx context.Context, request LoadRequest) (*domain.MetricsSnapshot, error) {
	bounds := request.Bounds
	accountIDs := domain.ResolvedAccountIDs(request.Accounts)

	snapshot := s.emptySnapshot(request)
	if len(accountIDs) == 0 {
		return snapshot, nil
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": strings.Join(accountIDs, ","),
		"filter":     bounds.Filter,
		"start_date": bounds.Start,
		"end_date":   bounds.End,
	})

	// uma campanha além do limite indica que houve descarte
	fetchLimit := s.campaignLimit
	if fetchLimit > 0 {
		fetchLimit++
	}
	campaigns, err := s.campaignRepository.ListByAccountIDs(ctx, accountIDs, fetchLimit)
	if err != nil {
		return snapshot, domain.NewFetchError(
			fmt.Errorf("%w: %w", domain.ErrCampaignsFetch, err),
			fmt.Sprintf("contas %s", strings.Join(accountIDs, ",")),
		)
	}

	truncated := s.campaignLimit > 0 && len(campaigns) > s.campaignLimit
	if truncated {
		campaigns = campaigns[:s.campaignLimit]
		logger.WithField("limit", s.campaignLimit).Warn("Limite de campanhas atingido, o excedente foi descartado")
	}
	snapshot.Truncated = truncated

	if len(campaigns) == 0 {
		return snapshot, nil
	}

	campaignIDs := make([]string, 0, len(campaigns))
	for _, campaign := range campaigns {
		campaignIDs = append(campaignIDs, campaign.ID)
	}

	rows, err := s.insightRepository.ListByEntities(ctx, domain.EntityTypeCampaign, campaignIDs, bounds.Start, bounds.End)
	if err != nil {
		return snapshot, domain.NewFetchError(
			fmt.Errorf("%w: %w", domain.ErrInsightsFetch, err),
			fmt.Sprintf("%d campanhas entre %s e %s", len(campaignIDs), bounds.Start, bounds.End),
		)
	}

	filtered := FilterByBounds(rows, bounds)
	if dropped := len(rows) - len(filtered); dropped > 0 {
		logger.WithField("dropped", dropped).Debug("Linhas fora do intervalo descartadas")
	}

	if _, unmapped := BuildPlatformShare(filtered, campaigns); len(unmapped) > 0 {
		logger.WithField("objectives", unmapped).Warn("Objetivos de campanha sem mapeamento, agrupados em Outros")
	}

	computed := ComputeSnapshot(SnapshotInput{
		Rows:      filtered,
		Campaigns: campaigns,
		Bounds:    bounds,
		Now:       request.Now,
	})
	computed.Accounts = snapshot.Accounts
	computed.Truncated = truncated
	computed.GeneratedAt = snapshot.GeneratedAt

	if s.ranker != nil {
		computed.TopCampaigns = s.ranker.Rank(filtered, campaigns)
	}

	return computed, nil
}

func (s *Service) emptySnapshot(request LoadRequest) *domain.MetricsSnapshot {
	snapshot := domain.EmptySnapshot(request.Bounds)
	if request.Accounts != nil {
		snapshot.Accounts = request.Accounts
	}
	snapshot.GeneratedAt = request.Now
	return snapshot
}
