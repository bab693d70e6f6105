package semantics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kosha-labs/kosha/internal/domain/lexicon"
)

func testPatterns() []ContextPattern {
	return []ContextPattern{
		{Name: "legal", Weight: 1.0, Keywords: []string{"property", "inheritance", "law", "estate"}},
		{Name: "food", Weight: 0.5, Keywords: []string{"cake", "dessert"}},
		{Name: "action", Weight: 0.8, Keywords: []string{"divide", "share"}},
	}
}

func TestDetectContext(t *testing.T) {
	d := NewDetectorWithPatterns(testPatterns())

	t.Run("strongest context wins", func(t *testing.T) {
		det := d.DetectContext("divide the inheritance property by law")
		// legal: 3/4 × 1.0 = 0.75, action: 1/2 × 0.8 = 0.40.
		assert.Equal(t, "legal", det.Primary)
		assert.InDelta(t, 0.75, det.Scores["legal"], 1e-9)
		assert.InDelta(t, 0.40, det.Scores["action"], 1e-9)
		assert.ElementsMatch(t, []string{"property", "inheritance", "law"}, det.Keywords["legal"])
	})

	t.Run("weight discounts a full keyword hit", func(t *testing.T) {
		det := d.DetectContext("cake and dessert")
		assert.Equal(t, "food", det.Primary)
		assert.InDelta(t, 0.5, det.Scores["food"], 1e-9)
	})

	t.Run("no keywords means no primary", func(t *testing.T) {
		det := d.DetectContext("completely unrelated words")
		assert.Empty(t, det.Primary)
		assert.Empty(t, det.Scores)
	})

	t.Run("ties keep declaration order", func(t *testing.T) {
		tied := NewDetectorWithPatterns([]ContextPattern{
			{Name: "first", Weight: 1.0, Keywords: []string{"zebra"}},
			{Name: "second", Weight: 1.0, Keywords: []string{"zebra"}},
		})
		det := tied.DetectContext("zebra")
		assert.Equal(t, "first", det.Primary)
	})
}

func TestPriority(t *testing.T) {
	d := NewDetectorWithPatterns(testPatterns())

	t.Run("neutral without a primary context", func(t *testing.T) {
		e := &lexicon.Entry{UsageFrequencyIndex: "legal:0.9"}
		assert.InDelta(t, PriorityNeutral, d.Priority("unrelated words", e), 1e-9)
	})

	t.Run("frequency index weight for an exact context match", func(t *testing.T) {
		e := &lexicon.Entry{UsageFrequencyIndex: "legal:0.9|food:0.2"}
		assert.InDelta(t, 0.9, d.Priority("inheritance law estate", e), 1e-9)
	})

	t.Run("trigger overlap with matched keywords", func(t *testing.T) {
		e := &lexicon.Entry{
			UsageFrequencyIndex: "food:0.2",
			ContextualTriggers:  "Property|succession",
		}
		assert.InDelta(t, PriorityTrigger, d.Priority("property and inheritance", e), 1e-9)
	})

	t.Run("low default when the entry shows no evidence", func(t *testing.T) {
		e := &lexicon.Entry{
			UsageFrequencyIndex: "food:0.2",
			ContextualTriggers:  "succession|bequest",
		}
		assert.InDelta(t, PriorityLow, d.Priority("property and inheritance", e), 1e-9)
	})

	t.Run("empty entry gets the low default", func(t *testing.T) {
		assert.InDelta(t, PriorityLow, d.Priority("inheritance law", &lexicon.Entry{}), 1e-9)
	})
}
