package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the default registry to a Pushgateway. Batch runs exit right
// after finishing, so scraping is not an option; pushing is opt-in via
// configuration and a failure here is the caller's to log, not fatal.
func Push(gatewayURL string) error {
	if gatewayURL == "" {
		return nil
	}
	err := push.New(gatewayURL, "fuegos").
		Gatherer(prometheus.DefaultGatherer).
		Push()
	if err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
