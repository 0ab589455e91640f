package account

//go:generate mockgen -source=resolver.go -destination=mocks/resolver.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

// AccountResolver transforma a seleção do painel em contas consultáveis.
// "Nenhuma conta" não é erro: o resultado vazio é devolvido ao chamador.
type AccountResolver interface {
	Resolve(ctx context.Context, view domain.ViewContext) ([]domain.ResolvedAccount, error)
}

type Service struct {
	accountRepository repository.AccountRepository
	groupRepository   repository.AccountGroupRepository
	defaultPlatform   string
}

func NewService(
	accountRepository repository.AccountRepository,
	groupRepository repository.AccountGroupRepository,
	defaultPlatform string,
) AccountResolver {
	return &Service{
		accountRepository: accountRepository,
		groupRepository:   groupRepository,
		defaultPlatform:   defaultPlatform,
	}
}

// Resolve só devolve contas do próprio usuário; ids de terceiros resultam no conjunto vazio
func (s *Service) Resolve(ctx context.Context, view domain.ViewContext) ([]domain.ResolvedAccount, error) {
	switch view.Mode {
	case domain.ViewModeSingleAccount:
		if view.SelectionID != "" {
			return s.owned(ctx, view.UserID, []string{view.SelectionID})
		}

	case domain.ViewModeGrouped:
		if view.SelectionID != "" {
			if view.UserID == "" {
				return []domain.ResolvedAccount{}, nil
			}
			ids, err := s.groupRepository.ListAccountIDs(ctx, view.UserID, view.SelectionID)
			if err != nil {
				return []domain.ResolvedAccount{}, domain.NewFetchError(
					fmt.Errorf("%w: %w", domain.ErrGroupFetch, err),
					"grupo "+view.SelectionID,
				)
			}
			// o grupo existe mas está vazio: não mostra dados de outra conta
			return s.owned(ctx, view.UserID, dedupe(ids))
		}
	}

	return s.firstActive(ctx, view.UserID)
}

// firstActive usa a conta ativa mais antiga do usuário (created_at, depois id)
func (s *Service) firstActive(ctx context.Context, userID string) ([]domain.ResolvedAccount, error) {
	if userID == "" {
		return []domain.ResolvedAccount{}, nil
	}

	acc, err := s.accountRepository.FirstActiveByUser(ctx, userID)
	if err != nil {
		return []domain.ResolvedAccount{}, domain.NewFetchError(err, "conta ativa do usuário "+userID)
	}
	if acc == nil {
		return []domain.ResolvedAccount{}, nil
	}

	return []domain.ResolvedAccount{{ID: acc.ID, Platform: s.platformOf(acc)}}, nil
}

// owned filtra os ids pelas contas do usuário e completa a plataforma, sem alterar a ordem.
// Sem conseguir confirmar a posse nenhuma conta é devolvida.
func (s *Service) owned(ctx context.Context, userID string, ids []string) ([]domain.ResolvedAccount, error) {
	resolved := make([]domain.ResolvedAccount, 0, len(ids))
	if userID == "" || len(ids) == 0 {
		return resolved, nil
	}

	accounts, err := s.accountRepository.ListByIDs(ctx, userID, ids)
	if err != nil {
		return resolved, domain.NewFetchError(err, "contas do usuário "+userID)
	}

	platforms := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		platforms[acc.ID] = s.platformOf(acc)
	}

	for _, id := range ids {
		platform, ok := platforms[id]
		if !ok {
			log.ForContext(ctx).WithFields(log.Fields{
				"account_id": id,
				"user_id":    userID,
			}).Debug("Conta fora do escopo do usuário ignorada")
			continue
		}
		resolved = append(resolved, domain.ResolvedAccount{ID: id, Platform: platform})
	}

	return resolved, nil
}

func (s *Service) platformOf(acc *domain.Account) string {
	if acc.Platform == nil || *acc.Platform == "" {
		return s.defaultPlatform
	}
	return *acc.Platform
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
