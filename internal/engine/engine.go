// Package engine ties the matching pipeline together: feature extraction,
// the concurrent remote scoring attempt, the confidence-gated fallback to
// heuristics, hybrid merging, and final ranking.
package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
	"github.com/debnit/MsmeBazaar-sub001/internal/features"
	"github.com/debnit/MsmeBazaar-sub001/internal/heuristic"
	"github.com/debnit/MsmeBazaar-sub001/internal/logger"
	"github.com/debnit/MsmeBazaar-sub001/internal/remote"
)

// Config holds the fallback and blending policy. The constants have no
// documented derivation in the historical system, so they live in
// configuration rather than code.
type Config struct {
	// FallbackThreshold is the minimum remote confidence to accept the
	// remote result as-is.
	FallbackThreshold float64 `mapstructure:"fallback-threshold"`
	// HybridThreshold is the minimum remote confidence to blend instead of
	// discarding the remote result.
	HybridThreshold float64 `mapstructure:"hybrid-threshold"`
	// RemoteWeight and HeuristicWeight are the hybrid blend fractions.
	RemoteWeight    float64 `mapstructure:"remote-weight"`
	HeuristicWeight float64 `mapstructure:"heuristic-weight"`
	// RelevanceThreshold filters heuristic candidates below minimum
	// relevance out of the result set.
	RelevanceThreshold float64 `mapstructure:"relevance-threshold"`
}

// DefaultConfig returns the production fallback policy.
func DefaultConfig() Config {
	return Config{
		FallbackThreshold:  0.6,
		HybridThreshold:    0.4,
		RemoteWeight:       0.6,
		HeuristicWeight:    0.4,
		RelevanceThreshold: 0.3,
	}
}

// RemoteScorer is the engine's view of the remote scoring service.
type RemoteScorer interface {
	Score(ctx context.Context, buyer features.Vector, businesses []features.Vector) (*remote.ScoreResult, error)
}

// Recorder archives match-run summaries. Calls are fire-and-forget.
type Recorder interface {
	Record(buyerID string, resp *domain.MatchingResponse)
}

// Deps aggregates the engine's collaborators. Remote, Recorder and Metrics
// are optional; the engine degrades to heuristic-only scoring without a
// remote scorer.
type Deps struct {
	Extractor *features.Extractor
	Heuristic *heuristic.Scorer
	Remote    RemoteScorer
	Recorder  Recorder
	Metrics   *Metrics
	Logger    *zap.Logger
}

// Engine is an explicit, constructible service object. It holds no mutable
// state of its own, so concurrent match requests for different buyers never
// interfere.
type Engine struct {
	cfg  Config
	deps Deps
}

// New creates an engine with the given policy and collaborators.
func New(cfg Config, deps Deps) *Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, deps: deps}
}

type remoteAttempt struct {
	result *remote.ScoreResult
	err    error
}

// FindMatches scores the candidate listings for the buyer and returns the
// ranked match list. Remote scorer failures never surface: total
// unavailability of the remote model still yields a fully explained
// heuristic ranking. Only malformed input is an error.
func (e *Engine) FindMatches(ctx context.Context, buyer *domain.BuyerProfile, candidates []*domain.BusinessListing, limit int) (*domain.MatchingResponse, error) {
	start := time.Now()

	if limit < 1 {
		return nil, &domain.ValidationError{Field: "limit", Reason: "must be at least 1"}
	}
	if err := buyer.Validate(); err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		resp := &domain.MatchingResponse{
			Matches:         []domain.MatchResult{},
			Methodology:     domain.MethodologyHeuristic,
			Confidence:      e.deps.Heuristic.Confidence(),
			Recommendations: recommendations(nil),
			ProcessingTime:  time.Since(start),
		}
		e.finish(buyer.ID, resp, start)
		return resp, nil
	}

	buyerVec, err := e.deps.Extractor.BuyerFeatures(buyer)
	if err != nil {
		return nil, err
	}

	listingsByID := make(map[string]*domain.BusinessListing, len(candidates))
	businessVecs := make([]features.Vector, 0, len(candidates))
	for _, listing := range candidates {
		vec, err := e.deps.Extractor.BusinessFeatures(listing)
		if err != nil {
			return nil, err
		}
		businessVecs = append(businessVecs, vec)
		listingsByID[listing.ID] = listing
	}

	// The remote call is the only suspension point; it runs concurrently
	// with the local scoring and is bounded by the client's own timeout.
	attempts := make(chan remoteAttempt, 1)
	if e.deps.Remote != nil {
		go func() {
			result, err := e.deps.Remote.Score(ctx, buyerVec, businessVecs)
			attempts <- remoteAttempt{result: result, err: err}
		}()
	} else {
		attempts <- remoteAttempt{err: remote.ErrUnavailable}
	}

	heuristicMatches := e.scoreLocally(buyer, candidates)

	attempt := <-attempts
	if attempt.err != nil {
		e.deps.Metrics.RemoteFailure()
		if !errors.Is(attempt.err, remote.ErrUnavailable) && !errors.Is(attempt.err, remote.ErrTimeout) {
			e.deps.Logger.Warn("remote scoring failed", zap.Error(attempt.err))
		} else {
			e.deps.Logger.Info("falling back to heuristic scoring", zap.Error(attempt.err))
		}
	}

	outcome := decide(attempt.result, attempt.err, e.cfg)

	var (
		matches     []domain.MatchResult
		methodology domain.Methodology
		confidence  float64
		extraRecs   []string
	)

	switch outcome {
	case OutcomeAccepted:
		matches = e.fromRemote(attempt.result, listingsByID)
		methodology = domain.MethodologyML
		confidence = clamp01(attempt.result.Confidence)
		extraRecs = attempt.result.Recommendations
	case OutcomeHybrid:
		remoteMatches := e.fromRemote(attempt.result, listingsByID)
		matches = mergeHybrid(remoteMatches, heuristicMatches, e.cfg.RemoteWeight, e.cfg.HeuristicWeight)
		methodology = domain.MethodologyHybrid
		confidence = clamp01((attempt.result.Confidence + e.deps.Heuristic.Confidence()) / 2)
		extraRecs = attempt.result.Recommendations
	default:
		matches = heuristicMatches
		methodology = domain.MethodologyHeuristic
		confidence = e.deps.Heuristic.Confidence()
	}

	ranked, total := rank(matches, limit)
	if ranked == nil {
		ranked = []domain.MatchResult{}
	}

	resp := &domain.MatchingResponse{
		Matches:         ranked,
		TotalMatches:    total,
		Confidence:      confidence,
		Methodology:     methodology,
		Recommendations: append(recommendations(ranked), extraRecs...),
		ProcessingTime:  time.Since(start),
	}

	e.deps.Logger.Info("match run completed",
		append(logger.MatchFields(buyer.ID, string(methodology)),
			zap.String("outcome", outcome.String()),
			zap.Int("candidates", len(candidates)),
			zap.Int("matches", len(ranked)),
			zap.Float64("confidence", confidence),
			zap.Duration("elapsed", resp.ProcessingTime),
		)...,
	)

	e.finish(buyer.ID, resp, start)
	return resp, nil
}

// scoreLocally evaluates every candidate with the heuristic scorer and drops
// those below the relevance threshold.
func (e *Engine) scoreLocally(buyer *domain.BuyerProfile, candidates []*domain.BusinessListing) []domain.MatchResult {
	matches := make([]domain.MatchResult, 0, len(candidates))
	for _, listing := range candidates {
		result := e.deps.Heuristic.Evaluate(buyer, listing)
		if result.Score < e.cfg.RelevanceThreshold {
			continue
		}
		matches = append(matches, result)
	}
	return matches
}

// fromRemote converts the remote result into domain matches, clamping scores
// and deriving the risk assessment and recommended action from the listing
// when the service omitted them.
func (e *Engine) fromRemote(result *remote.ScoreResult, listingsByID map[string]*domain.BusinessListing) []domain.MatchResult {
	matches := make([]domain.MatchResult, 0, len(result.Matches))
	for _, m := range result.Matches {
		match := domain.MatchResult{
			BusinessID:        m.BusinessID,
			BusinessName:      m.BusinessName,
			Score:             clamp01(m.MatchScore),
			Confidence:        clamp01(m.Confidence),
			Reasons:           m.Reasons,
			RiskAssessment:    domain.RiskLevel(m.RiskAssessment),
			RecommendedAction: domain.Action(m.RecommendedAction),
		}

		if listing, ok := listingsByID[m.BusinessID]; ok {
			if match.BusinessName == "" {
				match.BusinessName = listing.Name
			}
			if match.RiskAssessment == "" {
				match.RiskAssessment = heuristic.AssessRisk(listing.RiskScore)
			}
			if match.RecommendedAction == "" {
				match.RecommendedAction = heuristic.RecommendAction(match.Score, listing.RiskScore)
			}
		}

		matches = append(matches, match)
	}
	return matches
}

func (e *Engine) finish(buyerID string, resp *domain.MatchingResponse, start time.Time) {
	e.deps.Metrics.ObserveRun(resp.Methodology, time.Since(start))
	if e.deps.Recorder != nil {
		go e.deps.Recorder.Record(buyerID, resp)
	}
}
