package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kosha-labs/kosha/internal/config"
)

func testDecisionEngine() *DecisionEngine {
	return NewDecisionEngine(config.DecisionConfig{
		AcceptThreshold:      config.DefaultAcceptThreshold,
		ContinueThreshold:    config.DefaultContinueThreshold,
		ContextLossThreshold: config.DefaultContextLossThreshold,
		MaxIterations:        config.DefaultMaxIterations,
		GraceIterations:      config.DefaultGraceIterations,
	})
}

func prev(v float64) *float64 { return &v }

func TestDecide(t *testing.T) {
	e := testDecisionEngine()

	tests := []struct {
		name      string
		score     float64
		previous  *float64
		iteration int
		want      Decision
	}{
		{"high score, first iteration", 0.92, nil, 1, DecisionAccept},
		{"high score, context maintained", 0.85, prev(0.80), 2, DecisionAccept},
		{"high score after a jump retries", 0.90, prev(0.10), 2, DecisionContinue},
		{"high score after a jump at final iteration", 0.90, prev(0.10), 5, DecisionAccept},
		{"continue band advances", 0.60, nil, 1, DecisionContinue},
		{"continue band at final iteration, maintained", 0.70, prev(0.65), 5, DecisionAccept},
		{"continue band at final iteration, shifted", 0.65, prev(0.40), 5, DecisionReject},
		{"low score within grace period", 0.30, nil, 1, DecisionContinue},
		{"low score past grace period", 0.30, nil, 3, DecisionReject},
		{"low score, not maintained, inside grace", 0.55, prev(0.20), 2, DecisionReject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := e.Decide(tt.score, tt.previous, tt.iteration)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestDecideContextDegradation(t *testing.T) {
	e := testDecisionEngine()

	// A 55.6% collapse rejects regardless of the nominal score bucket.
	got, reason := e.Decide(0.40, prev(0.90), 2)
	assert.Equal(t, DecisionReject, got)
	assert.Contains(t, reason, "context degradation")

	// A 15% drop is within tolerance and still accepts.
	got, _ = e.Decide(0.85, prev(1.0), 2)
	assert.Equal(t, DecisionAccept, got)

	// Inside the grace period a maintained low score continues, but the same
	// score after a collapse is rejected by the override.
	got, _ = e.Decide(0.40, prev(0.45), 1)
	assert.Equal(t, DecisionContinue, got)
	got, _ = e.Decide(0.40, prev(0.90), 1)
	assert.Equal(t, DecisionReject, got)
}

func TestDecideMonotonicAccept(t *testing.T) {
	// Any score at or above the accept threshold with no score collapse
	// relative to the previous iteration must accept.
	e := testDecisionEngine()
	for _, score := range []float64{0.80, 0.85, 0.90, 0.95, 1.0} {
		for _, p := range []float64{score, score * 0.95, score / 1.2} {
			got, _ := e.Decide(score, prev(p), 2)
			assert.Equal(t, DecisionAccept, got, "score=%v previous=%v", score, p)
		}
	}
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision("ACCEPT")
	assert.NoError(t, err)
	assert.Equal(t, DecisionAccept, d)

	_, err = ParseDecision("MAYBE")
	assert.Error(t, err)

	assert.True(t, DecisionReject.IsValid())
	assert.False(t, Decision("").IsValid())
	assert.Equal(t, "CONTINUE", DecisionContinue.String())
}
