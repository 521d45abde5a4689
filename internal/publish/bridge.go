package publish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/nbenitez/fuegos/internal/metrics"
	"github.com/nbenitez/fuegos/internal/models"
)

// BridgeClient posts sheet payloads to the spreadsheet bridge, which owns
// Google Sheets auth and the actual tab replacement.
type BridgeClient struct {
	url    string
	token  string
	client *http.Client
}

func NewBridgeClient(url, token string) *BridgeClient {
	return &BridgeClient{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Push sends one payload. Rate limits and server errors are retried with
// exponential backoff; anything else fails the run.
func (b *BridgeClient) Push(payload models.SheetPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	operation := func() error {
		req, err := http.NewRequest("POST", b.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		if b.token != "" {
			req.Header.Set("Authorization", "Bearer "+b.token)
		}

		resp, err := b.client.Do(req)
		if err != nil {
			return fmt.Errorf("post sheet: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("bridge status %d, retrying", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("bridge status %d: %s", resp.StatusCode, string(b)))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(operation, bo); err != nil {
		metrics.BridgePushesTotal.WithLabelValues(payload.SheetName, "error").Inc()
		return err
	}

	metrics.BridgePushesTotal.WithLabelValues(payload.SheetName, "ok").Inc()
	return nil
}
