// Package notify delivers signal-value reports to the external collaborator.
// Callers treat delivery as fire-and-forget: failures are logged and
// swallowed, never surfaced to the user.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Reporter sends a station's new signal value to the external receiver.
type Reporter interface {
	Report(ctx context.Context, stationID int64, signalValue int) error
}

type signalReport struct {
	StationID   int64 `json:"station_id"`
	SignalValue int   `json:"signal_value"`
}

// HTTPReporter posts signal reports as JSON to a configured endpoint.
type HTTPReporter struct {
	endpoint string
	client   *http.Client
}

func NewHTTPReporter(endpoint string) *HTTPReporter {
	return &HTTPReporter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (r *HTTPReporter) Report(ctx context.Context, stationID int64, signalValue int) error {

	body, err := json.Marshal(signalReport{StationID: stationID, SignalValue: signalValue})
	if err != nil {
		return fmt.Errorf("error marshalling report: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending report: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected report status: %s", resp.Status)
	}

	return nil
}

// NoopReporter discards every report. Used when no endpoint is configured.
type NoopReporter struct{}

func (NoopReporter) Report(ctx context.Context, stationID int64, signalValue int) error {
	return nil
}
