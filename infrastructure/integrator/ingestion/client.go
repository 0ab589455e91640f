package ingestion

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks

import (
	"bytes"
	"context"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Trigger pede à ingestão externa que busque dados novos da plataforma de anúncios
type Trigger interface {
	TriggerSync(ctx context.Context, request domain.SyncRequest) (*domain.SyncResult, error)
}

type Client struct {
	URL        string
	Token      string
	HTTPClient *http.Client
}

// NewClient não impõe timeout quando INGESTION_TIMEOUT é zero
func NewClient(cfg *config.Config) *Client {
	return &Client{
		URL:        cfg.Ingestion.URL,
		Token:      cfg.Ingestion.Token,
		HTTPClient: &http.Client{Timeout: cfg.Ingestion.Timeout},
	}
}

func (c *Client) TriggerSync(ctx context.Context, request domain.SyncRequest) (*domain.SyncResult, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "ingestion: error encoding sync request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "ingestion: error building sync request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": request.AccountID,
		"force":      request.Force,
		"days":       request.Days,
	}).Debug("ingestion: triggering remote sync")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "ingestion: error calling sync trigger")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "ingestion: error reading sync response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("ingestion: sync trigger returned status %d: %s", resp.StatusCode, string(data))
	}

	result := &domain.SyncResult{Success: true}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return nil, errors.Wrap(err, "ingestion: error decoding sync response")
		}
	}

	if !result.Success {
		return result, errors.Errorf("ingestion: sync reported failure: %s", result.Error)
	}

	return result, nil
}
