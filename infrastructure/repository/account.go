package repository

//go:generate mockgen -source=account.go -destination=mocks/account.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

const (
	accountsTable       = "accounts a"
	clientAccountsTable = "client_accounts ca"
)

type AccountRepository interface {
	// FirstActiveByUser devolve a conta ativa mais antiga do usuário (created_at, depois id) ou nil
	FirstActiveByUser(ctx context.Context, userID string) (*domain.Account, error)
	// ListByIDs devolve apenas as contas do usuário entre os ids informados
	ListByIDs(ctx context.Context, userID string, accountIDs []string) ([]*domain.Account, error)
}

// AccountGroupRepository resolve as pastas de cliente em contas do usuário
type AccountGroupRepository interface {
	ListAccountIDs(ctx context.Context, userID string, groupID string) ([]string, error)
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn postgres.Queryer) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (r *accountRepository) FirstActiveByUser(ctx context.Context, userID string) (*domain.Account, error) {
	query, args, err := squirrel.
		Select("a.id", "a.user_id", "a.name", "a.platform", "a.status", "a.created_at").
		From(accountsTable).
		Where(squirrel.Eq{"a.user_id": userID, "a.status": domain.AccountStatusActive}).
		OrderBy("a.created_at ASC", "a.id ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	acc := &domain.Account{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&acc.ID,
		&acc.UserID,
		&acc.Name,
		&acc.Platform,
		&acc.Status,
		&acc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear conta: %w", err)
	}

	return acc, nil
}

func (r *accountRepository) ListByIDs(ctx context.Context, userID string, accountIDs []string) ([]*domain.Account, error) {
	if userID == "" || len(accountIDs) == 0 {
		return []*domain.Account{}, nil
	}

	query, args, err := squirrel.
		Select("a.id", "a.user_id", "a.name", "a.platform", "a.status", "a.created_at").
		From(accountsTable).
		Where(squirrel.Eq{"a.id": accountIDs, "a.user_id": userID}).
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

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc := &domain.Account{}
		if err := rows.Scan(
			&acc.ID,
			&acc.UserID,
			&acc.Name,
			&acc.Platform,
			&acc.Status,
			&acc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear conta: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return accounts, nil
}

type accountGroupRepository struct {
	conn postgres.Queryer
}

func NewAccountGroupRepository(conn postgres.Queryer) AccountGroupRepository {
	return &accountGroupRepository{
		conn: conn,
	}
}

// ListAccountIDs ignora membros do grupo que não pertencem ao usuário
func (r *accountGroupRepository) ListAccountIDs(ctx context.Context, userID string, groupID string) ([]string, error) {
	if userID == "" {
		return []string{}, nil
	}

	query, args, err := squirrel.
		Select("ca.account_id").
		From(clientAccountsTable).
		Join("accounts a ON a.id = ca.account_id").
		Where(squirrel.Eq{"ca.client_id": groupID, "a.user_id": userID}).
		OrderBy("ca.created_at ASC", "ca.account_id ASC").
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

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao ler conta do grupo: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ids, nil
}
