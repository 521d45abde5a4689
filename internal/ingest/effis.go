package ingest

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/nbenitez/fuegos/internal/metrics"
)

// DefaultEFFISBaseURL is the EFFIS WFS endpoint serving burned-area polygons.
const DefaultEFFISBaseURL = "https://maps.effis.emergency.copernicus.eu/effis"

// EFFISClient downloads yearly burned-area perimeters from the EFFIS WFS.
type EFFISClient struct {
	baseURL string
	client  *http.Client
}

func NewEFFISClient(baseURL string) *EFFISClient {
	if baseURL == "" {
		baseURL = DefaultEFFISBaseURL
	}
	return &EFFISClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// FetchYear retrieves the GeoJSON perimeters for one country and fire year.
// Transient failures (rate limits, 5xx, network errors during an otherwise
// reachable endpoint) are retried with exponential backoff; anything else is
// permanent and surfaces to the caller, which aborts the run.
func (c *EFFISClient) FetchYear(country string, year int) ([]byte, error) {
	q := url.Values{}
	q.Set("service", "WFS")
	q.Set("version", "2.0.0")
	q.Set("request", "GetFeature")
	q.Set("typename", "ms:modis.ba.poly")
	q.Set("outputFormat", "geojson")
	q.Set("cql_filter", fmt.Sprintf(
		"country='%s' AND firedate >= '%d-01-01' AND firedate < '%d-01-01'",
		country, year, year+1,
	))
	reqURL := c.baseURL + "?" + q.Encode()

	start := time.Now()
	var body []byte
	operation := func() error {
		req, err := http.NewRequest("GET", reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("User-Agent", "fuegos/1.0")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch effis: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("effis status %d, retrying", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("effis status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 5 * time.Minute
	if err := backoff.Retry(operation, bo); err != nil {
		metrics.DownloadsTotal.WithLabelValues(country, "error").Inc()
		return nil, err
	}

	metrics.DownloadsTotal.WithLabelValues(country, "ok").Inc()
	metrics.DownloadLatency.Observe(time.Since(start).Seconds())
	metrics.DownloadBytes.Add(float64(len(body)))
	return body, nil
}

// DownloadYear fetches one year and writes it to the conventional
// <dataDir>/<country>_<year>_raw.geojson path, validating the payload first.
func (c *EFFISClient) DownloadYear(dataDir, country string, year int) (string, error) {
	body, err := c.FetchYear(country, year)
	if err != nil {
		return "", err
	}
	if _, err := ParseCollection(body); err != nil {
		return "", fmt.Errorf("effis %s %d: %w", country, year, err)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dataDir, fmt.Sprintf("%s_%d_raw.geojson", country, year))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
