package repository

//go:generate mockgen -source=campaign.go -destination=mocks/campaign.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

const (
	campaignsTable = "campaigns c"
)

type CampaignRepository interface {
	ListByAccountIDs(ctx context.Context, accountIDs []string, limit int) ([]*domain.Campaign, error)
}

type campaignRepository struct {
	conn postgres.Queryer
}

func NewCampaignRepository(conn postgres.Queryer) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

// ListByAccountIDs devolve no máximo limit campanhas; o excedente é descartado
func (r *campaignRepository) ListByAccountIDs(ctx context.Context, accountIDs []string, limit int) ([]*domain.Campaign, error) {
	if len(accountIDs) == 0 {
		return []*domain.Campaign{}, nil
	}

	builder := squirrel.
		Select("c.id", "c.account_id", "COALESCE(c.objective, '')", "COALESCE(c.name, '')").
		From(campaignsTable).
		Where(squirrel.Eq{"c.account_id": accountIDs}).
		OrderBy("c.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		if err := rows.Scan(
			&campaign.ID,
			&campaign.AccountID,
			&campaign.Objective,
			&campaign.Name,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}
