package repository

//go:generate mockgen -source=insight.go -destination=mocks/insight.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

const (
	insightsTable = "insights i"
)

type InsightRepository interface {
	ListByEntities(ctx context.Context, entityType string, entityIDs []string, startDate, endDate string) ([]*domain.InsightRecord, error)
}

type insightRepository struct {
	conn postgres.Queryer
}

func NewInsightRepository(conn postgres.Queryer) InsightRepository {
	return &insightRepository{
		conn: conn,
	}
}

// ListByEntities devolve as linhas diárias das entidades no intervalo inclusivo
func (r *insightRepository) ListByEntities(ctx context.Context, entityType string, entityIDs []string, startDate, endDate string) ([]*domain.InsightRecord, error) {
	if len(entityIDs) == 0 {
		return []*domain.InsightRecord{}, nil
	}

	query, args, err := squirrel.
		Select(
			"i.entity_id",
			"to_char(i.date, 'YYYY-MM-DD')",
			"i.spend::text",
			"COALESCE(i.conversions, 0)",
			"COALESCE(i.roas, 0)",
			"COALESCE(i.impressions, 0)",
			"COALESCE(i.clicks, 0)",
			"i.revenue",
		).
		From(insightsTable).
		Where(squirrel.Eq{"i.entity_type": entityType, "i.entity_id": entityIDs}).
		Where(squirrel.GtOrEq{"i.date": startDate}).
		Where(squirrel.LtOrEq{"i.date": endDate}).
		OrderBy("i.date ASC", "i.entity_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.InsightRecord, 0)
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear insight: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *insightRepository) scanRecord(rows *sql.Rows) (*domain.InsightRecord, error) {
	record := &domain.InsightRecord{}
	var spend sql.NullString
	var revenue sql.NullFloat64

	if err := rows.Scan(
		&record.EntityID,
		&record.Date,
		&spend,
		&record.Conversions,
		&record.ROAS,
		&record.Impressions,
		&record.Clicks,
		&revenue,
	); err != nil {
		return nil, err
	}

	if spend.Valid {
		record.Spend = domain.FlexNumber(spend.String)
	}
	if revenue.Valid {
		value := revenue.Float64
		record.Revenue = &value
	}

	return record, nil
}
