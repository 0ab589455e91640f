package ingestion

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

func TestClient_TriggerSync(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name       string
		status     int
		response   string
		wantErr    bool
		wantResult bool
	}{
		{name: "sucesso", status: http.StatusOK, response: `{"success":true,"message":"ok"}`, wantResult: true},
		{name: "corpo vazio conta como sucesso", status: http.StatusNoContent, response: "", wantResult: true},
		{name: "falha reportada pela ingestão", status: http.StatusOK, response: `{"success":false,"error":"token expired"}`, wantErr: true},
		{name: "status de erro", status: http.StatusBadGateway, response: `upstream down`, wantErr: true},
		{name: "json inválido", status: http.StatusOK, response: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received domain.SyncRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				body, _ := io.ReadAll(r.Body)
				assert.NoError(t, json.Unmarshal(body, &received))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client := &Client{URL: server.URL, Token: "secret", HTTPClient: server.Client()}
			result, err := client.TriggerSync(context.Background(), domain.SyncRequest{AccountID: "act_1", Force: true, Days: 1})

			assert.Equal(t, "act_1", received.AccountID)
			assert.True(t, received.Force)
			assert.Equal(t, 1, received.Days)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, result.Success)
		})
	}
}
