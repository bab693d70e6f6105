package matching

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kosha-labs/kosha/internal/config"
	"github.com/kosha-labs/kosha/internal/domain/lexicon"
	"github.com/kosha-labs/kosha/internal/domain/semantics"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/logging"
)

// expectedPriorityMultiplier is the flat ranking bonus for caller-expected
// tokens; the boosted score is still clamped to 1.0.
const expectedPriorityMultiplier = 1.1

// Searcher ranks dictionary entries against an input span.  The dictionary
// is always scanned in sorted token order and ranking ties preserve that
// order, so results are deterministic across runs.
type Searcher struct {
	dict     *lexicon.Dictionary
	scorer   *Scorer
	detector *semantics.Detector
	cfg      config.ScanConfig
	log      logging.Logger
}

// NewSearcher returns a Searcher over the given dictionary and scoring
// components.  The configuration is assumed validated.
func NewSearcher(dict *lexicon.Dictionary, scorer *Scorer, detector *semantics.Detector, cfg config.ScanConfig, log logging.Logger) *Searcher {
	if log == nil {
		log = logging.NewNop()
	}
	return &Searcher{dict: dict, scorer: scorer, detector: detector, cfg: cfg, log: log}
}

// FindBestMatches returns up to topN candidates for text, best first.
// Expected tokens from guidance are scored first with a flat priority
// multiplier.  With Workers > 1 the scan is exhaustive and parallel;
// otherwise it is sequential with layered early-exit heuristics that bound
// how many low-scoring entries are explored once enough good candidates
// exist — they never change which entries are eligible.
func (s *Searcher) FindBestMatches(text string, topN int, guidance *Guidance) []Candidate {
	if topN < 1 {
		topN = s.cfg.TopN
	}

	seen := make(map[string]struct{})
	var collected []Candidate
	if guidance != nil {
		for _, tok := range guidance.ExpectedTokens {
			entry, ok := s.dict.Lookup(tok)
			if !ok {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			c := s.scorer.Score(text, entry, guidance)
			c.Score *= expectedPriorityMultiplier
			if c.Score > 1.0 {
				c.Score = 1.0
			}
			collected = append(collected, c)
		}
	}

	if s.cfg.Workers > 1 {
		collected = append(collected, s.scanParallel(text, seen, guidance)...)
	} else {
		collected = append(collected, s.scanSequential(text, seen, guidance)...)
	}

	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].Score > collected[j].Score
	})

	collected = s.contextAwareFilter(text, collected)
	if len(collected) > topN {
		collected = collected[:topN]
	}
	return collected
}

// scanSequential walks the sorted token list applying the four early-exit
// heuristics: a hard entry cap, a bail-out when no promising match has
// appeared early, a cutoff once enough promising matches are in hand, and a
// cutoff on total matches collected.
func (s *Searcher) scanSequential(text string, seen map[string]struct{}, guidance *Guidance) []Candidate {
	var (
		out       []Candidate
		examined  int
		promising int
	)
	collectCap := s.cfg.TopN * s.cfg.CollectFactor

	for _, tok := range s.dict.Tokens() {
		if _, dup := seen[tok]; dup {
			continue
		}
		if s.cfg.MaxEntries > 0 && examined >= s.cfg.MaxEntries {
			s.log.Debug("candidate scan hit entry cap", logging.Int("examined", examined))
			break
		}
		if s.cfg.QuickExitAfter > 0 && examined >= s.cfg.QuickExitAfter && promising == 0 {
			s.log.Debug("candidate scan found nothing promising, bailing out",
				logging.Int("examined", examined))
			break
		}

		entry, _ := s.dict.Lookup(tok)
		c := s.scorer.Score(text, entry, guidance)
		examined++
		if c.Score <= 0 {
			continue
		}
		if c.Score >= s.cfg.HighScoreThreshold {
			promising++
		}
		out = append(out, c)

		if promising >= s.cfg.TopN && s.cfg.TopN > 0 {
			break
		}
		if collectCap > 0 && len(out) >= collectCap {
			break
		}
	}
	return out
}

// scanParallel scores every remaining entry with a bounded worker fan-out.
// Results land in a slot per token, so no ordering is lost to scheduling.
func (s *Searcher) scanParallel(text string, seen map[string]struct{}, guidance *Guidance) []Candidate {
	tokens := s.dict.Tokens()
	slots := make([]*Candidate, len(tokens))

	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)
	for i, tok := range tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		i, tok := i, tok
		g.Go(func() error {
			entry, _ := s.dict.Lookup(tok)
			c := s.scorer.Score(text, entry, guidance)
			if c.Score > 0 {
				slots[i] = &c
			}
			return nil
		})
	}
	// Scoring never returns an error; Wait only synchronises the fan-out.
	_ = g.Wait()

	out := make([]Candidate, 0, len(tokens))
	for _, c := range slots {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// contextAwareFilter re-orders candidates by score × (0.7 + priority × 0.3),
// where priority rates each entry against the detected context of text.
// Only the order changes; reported scores keep their original values, and
// equal boosted scores preserve their existing relative order.
func (s *Searcher) contextAwareFilter(text string, cands []Candidate) []Candidate {
	if len(cands) < 2 {
		return cands
	}
	det := s.detector.DetectContext(text)

	keys := make([]float64, len(cands))
	for i, c := range cands {
		priority := semantics.PriorityNeutral
		if entry, ok := s.dict.Lookup(c.Token); ok {
			priority = s.detector.PriorityFor(det, entry)
		}
		keys[i] = c.Score * (0.7 + priority*0.3)
	}

	idx := make([]int, len(cands))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return keys[idx[a]] > keys[idx[b]]
	})

	out := make([]Candidate, len(cands))
	for i, j := range idx {
		out[i] = cands[j]
	}
	return out
}
