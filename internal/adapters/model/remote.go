package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/obstetra/fetal-health-service/internal/domain/providers"
	"github.com/obstetra/fetal-health-service/pkg/retry"
)

// RemoteProvider delegates inference to an external model-serving process
// over HTTP. Used when the model runs in a separate inference sidecar instead
// of being loaded in process. Transient failures are retried with backoff;
// client errors from the inference service are not.
type RemoteProvider struct {
	baseURL    string
	httpClient *http.Client
	retryCfg   retry.Config
}

// NewRemoteProvider creates a client for the inference service at baseURL.
func NewRemoteProvider(baseURL string) *RemoteProvider {
	return &RemoteProvider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryCfg: retry.DefaultConfig(),
	}
}

type remoteRequest struct {
	Features []float64 `json:"features"`
}

type remoteResponse struct {
	ClassIndex    int       `json:"class_index"`
	Probabilities []float64 `json:"probabilities"`
}

// Predict posts the ordered feature vector to the inference service.
func (p *RemoteProvider) Predict(ctx context.Context, features []float64) (*providers.Classification, error) {
	body, err := json.Marshal(remoteRequest{Features: features})
	if err != nil {
		return nil, fmt.Errorf("failed to encode inference request: %w", err)
	}

	var decoded remoteResponse
	err = retry.Do(ctx, p.retryCfg, func() error {
		return p.callInference(ctx, body, &decoded)
	})
	if err != nil {
		return nil, err
	}

	return &providers.Classification{
		ClassIndex:    decoded.ClassIndex,
		Probabilities: decoded.Probabilities,
	}, nil
}

func (p *RemoteProvider) callInference(ctx context.Context, body []byte, out *remoteResponse) error {
	url := p.baseURL + "/infer"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &retry.Permanent{Err: fmt.Errorf("failed to create inference request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		failure := fmt.Errorf("inference service returned %d: %s", resp.StatusCode, string(payload))
		// 4xx means the request itself is wrong and retrying cannot help
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return &retry.Permanent{Err: failure}
		}
		return failure
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &retry.Permanent{Err: fmt.Errorf("failed to decode inference response: %w", err)}
	}
	return nil
}
