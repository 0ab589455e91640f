package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"github.com/vfg2006/ads-dashboard-api/pkg/middleware"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

// SyncStatusReporter é implementado pelo SyncScheduler
type SyncStatusReporter interface {
	Status() map[string]any
}

type viewCreatedResponse struct {
	ID string `json:"id"`
}

type syncScheduledResponse struct {
	ViewID    string `json:"view_id"`
	Scheduled int    `json:"scheduled"`
}

// CreateView abre uma visão do painel para o usuário autenticado
func CreateView(manager *dashboard.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		store, err := manager.Create(claims.UserID)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("dashboard: erro ao criar visão")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao criar visão", nil)
			return
		}

		writeJSON(w, r, http.StatusCreated, viewCreatedResponse{ID: store.ID()})
	})
}

// GetViewState devolve o estado atual sem disparar leitura
func GetViewState(manager *dashboard.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store, ok := ownedView(w, r, manager)
		if !ok {
			return
		}

		writeJSON(w, r, http.StatusOK, store.State())
	})
}

// LoadViewMetrics troca a seleção da visão e devolve o snapshot resultante.
// Query: filter, from, to (yyyy-mm-dd), mode e selection.
func LoadViewMetrics(manager *dashboard.Manager, loc *time.Location) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store, ok := ownedView(w, r, manager)
		if !ok {
			return
		}

		selection, err := parseSelection(r, store.Owner(), loc)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"view_id": store.ID(),
				"from":    r.URL.Query().Get("from"),
				"to":      r.URL.Query().Get("to"),
			}).Warn("dashboard: datas inválidas")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Datas devem estar no formato yyyy-mm-dd", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, store.Load(r.Context(), selection))
	})
}

func RefetchView(manager *dashboard.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store, ok := ownedView(w, r, manager)
		if !ok {
			return
		}

		writeJSON(w, r, http.StatusOK, store.Refetch(r.Context()))
	})
}

// SyncView força a sincronização das contas da seleção atual
func SyncView(manager *dashboard.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store, ok := ownedView(w, r, manager)
		if !ok {
			return
		}

		scheduled := store.Sync()
		log.ForContext(r.Context()).WithFields(log.Fields{
			"view_id":   store.ID(),
			"scheduled": scheduled,
		}).Info("dashboard: sincronização manual solicitada")

		writeJSON(w, r, http.StatusAccepted, syncScheduledResponse{ViewID: store.ID(), Scheduled: scheduled})
	})
}

func DeleteView(manager *dashboard.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store, ok := ownedView(w, r, manager)
		if !ok {
			return
		}

		if err := manager.Delete(store.ID()); err != nil && !errors.Is(err, dashboard.ErrViewNotFound) {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao encerrar visão", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func GetSyncStatus(reporter SyncStatusReporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, reporter.Status())
	})
}

// ownedView busca a visão do parâmetro :id; visões de outro usuário respondem como inexistentes
func ownedView(w http.ResponseWriter, r *http.Request, manager *dashboard.Manager) (*dashboard.Store, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}

	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	store, err := manager.Get(id)
	if err != nil || store.Owner() != claims.UserID {
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Visão não encontrada", nil)
		return nil, false
	}

	return store, true
}

func parseSelection(r *http.Request, userID string, loc *time.Location) (dashboard.Selection, error) {
	query := r.URL.Query()

	selection := dashboard.Selection{
		Filter: domain.DateFilter(query.Get("filter")),
		View: domain.ViewContext{
			Mode:        domain.ViewMode(query.Get("mode")),
			SelectionID: query.Get("selection"),
			UserID:      userID,
		},
	}
	if selection.Filter == "" {
		selection.Filter = domain.DateFilterLast7
	}
	if selection.View.Mode == "" {
		selection.View.Mode = domain.ViewModeNone
	}

	from, err := utils.ParseDate(query.Get("from"), loc)
	if err != nil {
		return selection, err
	}
	to, err := utils.ParseDate(query.Get("to"), loc)
	if err != nil {
		return selection, err
	}
	if from != nil || to != nil {
		selection.Custom = &domain.CustomRange{From: from, To: to}
	}

	return selection, nil
}
