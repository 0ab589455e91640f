package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func init() {
	log.SetupTestLogger()
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func contextWithClaims(r *http.Request, claims *domain.Claims) context.Context {
	return context.WithValue(r.Context(), ContextKeyUser, claims)
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		header         string
		setup          func(v *mocks.MockTokenValidator)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "rota pública dispensa token",
			path:           "/healthcheck",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "sem cabeçalho",
			path:           "/v1/dashboard/views",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:           "sem prefixo Bearer",
			path:           "/v1/dashboard/views",
			header:         "Token abc",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:   "token expirado",
			path:   "/v1/dashboard/views",
			header: "Bearer velho",
			setup: func(v *mocks.MockTokenValidator) {
				v.EXPECT().ValidateToken("velho").Return(nil, fmt.Errorf("%w: exp", authenticating.ErrExpiredToken))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:   "token inválido",
			path:   "/v1/dashboard/views",
			header: "Bearer ruim",
			setup: func(v *mocks.MockTokenValidator) {
				v.EXPECT().ValidateToken("ruim").Return(nil, errors.New("assinatura"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			validator := mocks.NewMockTokenValidator(ctrl)
			if tt.setup != nil {
				tt.setup(validator)
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedCode)
			}
		})
	}
}

func TestAuthMiddleware_StoresClaims(t *testing.T) {
	ctrl := gomock.NewController(t)
	validator := mocks.NewMockTokenValidator(ctrl)
	validator.EXPECT().ValidateToken("bom").Return(&domain.Claims{UserID: "user-1", UserRoleID: RoleClient}, nil)

	var got *domain.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/views", nil)
	req.Header.Set("Authorization", "Bearer bom")
	AuthMiddleware(validator)(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		claims         *domain.Claims
		expectedStatus int
	}{
		{name: "sem usuário", claims: nil, expectedStatus: http.StatusUnauthorized},
		{name: "cliente bloqueado", claims: &domain.Claims{UserID: "u", UserRoleID: RoleClient}, expectedStatus: http.StatusForbidden},
		{name: "supervisor liberado", claims: &domain.Claims{UserID: "u", UserRoleID: RoleSupervisor}, expectedStatus: http.StatusNoContent},
		{name: "admin liberado", claims: &domain.Claims{UserID: "u", UserRoleID: RoleAdmin}, expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/sync/status", nil)
			if tt.claims != nil {
				req = req.WithContext(contextWithClaims(req, tt.claims))
			}
			rec := httptest.NewRecorder()

			AdminOrSupervisor()(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRoleName(t *testing.T) {
	assert.Equal(t, "admin", RoleName(RoleAdmin))
	assert.Equal(t, "client", RoleName(RoleClient))
	assert.Equal(t, "unknown", RoleName(42))
}

func TestCors(t *testing.T) {
	handler := Cors("https://painel.exemplo.com")(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/dashboard/views", nil)
	req.Header.Set("Origin", "https://painel.exemplo.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://painel.exemplo.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard/views", nil)
	req.Header.Set("Origin", "https://outro.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware_RecordsRoutePattern(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	inner := WithRoutePattern("/v1/dashboard/views/:id")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler := LoggingMiddleware(m)(inner)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/views/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/v1/dashboard/views/:id", "404")))
}

func TestLoggingMiddleware_UnmatchedRoute(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	handler := LoggingMiddleware(m)(http.NotFoundHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/qualquer/coisa", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/views", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}
