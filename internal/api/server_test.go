package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/kvstore"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/ads-dashboard-api/internal/scheduler"
	accountmocks "github.com/vfg2006/ads-dashboard-api/internal/usecases/account/mocks"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/period"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/syncing"
	"github.com/vfg2006/ads-dashboard-api/pkg/clock"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"go.uber.org/mock/gomock"
)

const secret = "segredo-de-teste"

func init() {
	log.SetupTestLogger()
}

func newTestServer(t *testing.T) (*Server, *dashboard.Manager, *metrics.Metrics) {
	t.Helper()
	cfg := &config.Config{
		App:    config.App{BusinessTimezone: "America/Sao_Paulo"},
		Server: config.Server{Host: "localhost", Port: "0"},
	}

	clk := clock.NewFake(time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC))
	syncer := syncing.NewSyncScheduler(syncing.Config{Enabled: false, Policy: syncing.DefaultPolicy()}, kvstore.NewMemoryStore(), nil, clk, nil)

	accounts := accountmocks.NewMockAccountResolver(gomock.NewController(t))
	accounts.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	manager := dashboard.NewManager(dashboard.Dependencies{
		Period:   period.NewResolver(cfg.Location(), clk),
		Accounts: accounts,
		Syncer:   syncer,
		Periodic: scheduler.NewManualPeriodic(clk),
		Metrics:  m,
	}, dashboard.ManagerConfig{Clock: clk})

	closed := false
	srv, err := New(cfg, Dependencies{
		Manager:        manager,
		SyncStatus:     syncer,
		Validator:      authenticating.NewService(secret),
		Metrics:        m,
		MetricsHandler: metrics.HandlerFor(registry),
	}, func() { closed = true })
	require.NoError(t, err)
	t.Cleanup(func() {
		srv.cleanup()
		assert.True(t, closed)
	})

	return srv, manager, m
}

func bearer(t *testing.T, userID string, role int) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
		UserID:     userID,
		UserRoleID: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestServer_PublicRoutes(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ads_dashboard_http_requests_total")
}

func TestServer_RequiresToken(t *testing.T) {
	srv, manager, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/dashboard/views", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, manager.Count())
}

func TestServer_CreateAndLoadView(t *testing.T) {
	srv, manager, _ := newTestServer(t)
	auth := bearer(t, "user-1", 3)

	req := httptest.NewRequest(http.MethodPost, "/v1/dashboard/views", nil)
	req.Header.Set("Authorization", auth)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, manager.Count())
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &created))
	id := created.ID

	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard/views/"+id+"/metrics?filter=today&mode=none", nil)
	req.Header.Set("Authorization", auth)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isLoading":false`)
	assert.Contains(t, rec.Body.String(), `"start":"2024-05-01"`)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(&config.Config{}, Dependencies{})
	assert.Error(t, err)
}
