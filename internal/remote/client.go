// Package remote is the client for the external matchmaking scoring service.
// The service is an opaque model endpoint: the client sends flat feature
// vectors and receives a ranked match list with a self-reported confidence.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/debnit/MsmeBazaar-sub001/internal/features"
)

const (
	// DefaultTimeout bounds a single scoring call. On expiry the in-flight
	// request is cancelled and the engine falls back to heuristics.
	DefaultTimeout = 10 * time.Second

	scorePath  = "/predict/matchmaking"
	healthPath = "/health"

	contentType = "application/json"
)

var (
	// ErrUnavailable is returned for connection failures and non-success
	// responses. The engine recovers from it locally; it never surfaces
	// from FindMatches.
	ErrUnavailable = errors.New("remote scorer unavailable")
	// ErrTimeout is returned when the scoring call exceeds its deadline.
	ErrTimeout = errors.New("remote scorer timed out")
)

// ScoredMatch is one candidate scored by the remote model.
type ScoredMatch struct {
	BusinessID        string   `json:"business_id"`
	BusinessName      string   `json:"business_name"`
	MatchScore        float64  `json:"match_score"`
	Confidence        float64  `json:"confidence"`
	Reasons           []string `json:"reasons"`
	RiskAssessment    string   `json:"risk_assessment"`
	RecommendedAction string   `json:"recommended_action"`
}

// ScoreResult is the full response of one scoring call. Confidence is the
// service's own assessment of the result set; absence of a result (an error)
// is distinct from a low-confidence result.
type ScoreResult struct {
	Matches         []ScoredMatch
	Confidence      float64
	Recommendations []string
}

// HealthStatus is the response of the service's health endpoint. It is
// polled for observability only and never gates individual requests.
type HealthStatus struct {
	Status       string `json:"status"`
	ModelVersion string `json:"model_version"`
	LastUpdate   string `json:"last_update"`
}

// Client talks to the scoring service over HTTP with bearer-token auth.
type Client struct {
	logger       *zap.Logger
	token        string
	modelVersion string

	HTTPClient *http.Client
	APIURL     string

	healthy    atomic.Bool
	lastStatus atomic.Pointer[HealthStatus]
}

// New creates a client for the given endpoint. A non-positive timeout falls
// back to the default.
func New(logger *zap.Logger, apiURL, token, modelVersion string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		logger:       logger,
		token:        token,
		modelVersion: modelVersion,
		APIURL:       apiURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
	c.healthy.Store(true)

	return c
}

// Healthy reports the last known availability of the service. Best effort,
// read by observability endpoints only.
func (c *Client) Healthy() bool { return c.healthy.Load() }

// LastStatus returns the most recent health snapshot, or nil before the
// first successful poll.
func (c *Client) LastStatus() *HealthStatus { return c.lastStatus.Load() }

type scoreRequest struct {
	BuyerProfile features.Vector   `json:"buyer_profile"`
	Businesses   []features.Vector `json:"businesses"`
	ModelVersion string            `json:"model_version"`
}

type scoreResponse struct {
	Matches         []any    `json:"matches"`
	Confidence      float64  `json:"confidence"`
	Recommendations []string `json:"recommendations"`
}

// Score sends the extracted features for scoring. It makes exactly one
// attempt: retries, if wanted, belong to the caller.
func (c *Client) Score(ctx context.Context, buyer features.Vector, businesses []features.Vector) (*ScoreResult, error) {
	payload := scoreRequest{
		BuyerProfile: buyer,
		Businesses:   businesses,
		ModelVersion: c.modelVersion,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+scorePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build score request: %w", err)
	}
	c.setHeaders(req)

	c.logger.Debug("scoring request",
		zap.String("url", req.URL.String()),
		zap.Int("candidates", len(businesses)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.healthy.Store(false)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.healthy.Store(false)
		return nil, fmt.Errorf("%w: bad status %s", ErrUnavailable, resp.Status)
	}

	var decoded scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.healthy.Store(false)
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	matches, err := decodeMatches(decoded.Matches)
	if err != nil {
		c.healthy.Store(false)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.healthy.Store(true)

	c.logger.Debug("scoring response",
		zap.Int("matches", len(matches)),
		zap.Float64("confidence", decoded.Confidence),
	)

	return &ScoreResult{
		Matches:         matches,
		Confidence:      decoded.Confidence,
		Recommendations: decoded.Recommendations,
	}, nil
}

// Health fetches the service's health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+healthPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build health request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.healthy.Store(false)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.healthy.Store(false)
		return nil, fmt.Errorf("%w: bad status %s", ErrUnavailable, resp.Status)
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}

	c.healthy.Store(true)
	c.lastStatus.Store(&status)

	return &status, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Content-Type", contentType)
}

func decodeMatches(items []any) ([]ScoredMatch, error) {
	var matches []ScoredMatch

	cfg := &mapstructure.DecoderConfig{
		Result:  &matches,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("build match decoder: %w", err)
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}

	return matches, nil
}
