// Package matching implements the similarity scoring and accept/continue/
// reject policy that the cascade engine drives.  Everything here is a pure
// function of its inputs plus the read-only dictionary: no I/O, no mutation
// of shared state, safe for concurrent use.
package matching

import (
	"fmt"
	"math"

	"github.com/kosha-labs/kosha/internal/config"
	"github.com/kosha-labs/kosha/pkg/errors"
)

// Decision is the outcome of evaluating one cascade iteration's score.
type Decision string

const (
	// DecisionAccept terminates the cascade with the current match.
	DecisionAccept Decision = "ACCEPT"

	// DecisionContinue advances the cascade to the next iteration.
	DecisionContinue Decision = "CONTINUE"

	// DecisionReject discards the current iteration's match.
	DecisionReject Decision = "REJECT"
)

// IsValid checks if the decision is valid.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionAccept, DecisionContinue, DecisionReject:
		return true
	default:
		return false
	}
}

// String returns the string representation of the decision.
func (d Decision) String() string {
	return string(d)
}

// ParseDecision parses a string into a Decision.
func ParseDecision(s string) (Decision, error) {
	d := Decision(s)
	if d.IsValid() {
		return d, nil
	}
	return "", errors.New(errors.ErrCodeValidation, "unsupported decision: "+s)
}

// DecisionEngine applies the threshold policy of one cascade run.  The
// policy favours early termination on strong evidence, tolerates low scores
// only during a short grace period, and treats an abrupt score collapse
// between iterations as a stronger signal than the absolute score.
type DecisionEngine struct {
	cfg config.DecisionConfig
}

// NewDecisionEngine returns an engine over the given thresholds.  The
// configuration is assumed validated.
func NewDecisionEngine(cfg config.DecisionConfig) *DecisionEngine {
	return &DecisionEngine{cfg: cfg}
}

// Decide evaluates a score against the previous iteration's score (nil on
// the first iteration).  iteration is 1-based.
//
// A relative drop from the previous score beyond the context-loss threshold
// rejects outright, overriding every other rule.  Above the accept threshold
// the match is accepted when context is maintained, and unconditionally at
// the final iteration.  The continue band advances while iterations remain.
// Below it, only the grace period keeps the cascade alive.
func (e *DecisionEngine) Decide(score float64, previous *float64, iteration int) (Decision, string) {
	if previous != nil && *previous > 0 {
		drop := (*previous - score) / *previous
		if drop > e.cfg.ContextLossThreshold {
			return DecisionReject, fmt.Sprintf("context degradation: score dropped %.0f%% from %.3f", drop*100, *previous)
		}
	}

	maintained := previous == nil || *previous <= 0 ||
		math.Abs(score-*previous) / *previous <= e.cfg.ContextLossThreshold
	last := iteration >= e.cfg.MaxIterations

	switch {
	case score >= e.cfg.AcceptThreshold:
		if maintained {
			return DecisionAccept, fmt.Sprintf("high confidence match at %.3f", score)
		}
		if last {
			return DecisionAccept, fmt.Sprintf("high score %.3f accepted at final iteration despite context shift", score)
		}
		return DecisionContinue, fmt.Sprintf("high score %.3f but context shifted, retrying", score)

	case score >= e.cfg.ContinueThreshold:
		if !last {
			return DecisionContinue, fmt.Sprintf("moderate score %.3f, narrowing further", score)
		}
		if maintained {
			return DecisionAccept, fmt.Sprintf("moderate score %.3f accepted at final iteration", score)
		}
		return DecisionReject, fmt.Sprintf("moderate score %.3f with context shift at final iteration", score)

	default:
		if maintained && iteration < e.cfg.GraceIterations {
			return DecisionContinue, fmt.Sprintf("low score %.3f within grace period", score)
		}
		return DecisionReject, fmt.Sprintf("low confidence at %.3f", score)
	}
}
