package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

type healthcheckResponse struct {
	Status   string    `json:"status"`
	Time     time.Time `json:"time"`
	Views    int       `json:"views"`
	Database string    `json:"database,omitempty"`
}

// ViewCounter informa quantas visões estão abertas
type ViewCounter interface {
	Count() int
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthcheckHandler responde 503 quando o banco informado não responde
func HealthcheckHandler(views ViewCounter, database Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := healthcheckResponse{
			Status: "ok",
			Time:   time.Now().UTC(),
		}
		if views != nil {
			response.Views = views.Count()
		}

		status := http.StatusOK
		if database != nil {
			response.Database = "ok"
			if err := database.Ping(r.Context()); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("healthcheck: banco de dados indisponível")
				response.Status = "degraded"
				response.Database = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}

		writeJSON(w, r, status, response)
	})
}
