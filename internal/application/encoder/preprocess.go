package encoder

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var tokenPattern = regexp.MustCompile(`\b\w+\b`)

// segmentationStopWords pass through the segmenter verbatim and never open a
// match window.  Broader than the expansion stop list: function words that
// carry grammatical rather than semantic weight.
var segmentationStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "it": {}, "its": {},
	"they": {}, "them": {}, "their": {}, "we": {}, "need": {}, "how": {},
	"into": {},
}

// stemRules are applied in order; the first matching suffix wins.  Ordered
// longest-first so "ies" is tried before "es" and "s".
var stemRules = []struct {
	suffix, replacement string
}{
	{"ies", "y"},
	{"ied", "y"},
	{"ing", ""},
	{"est", ""},
	{"ed", ""},
	{"er", ""},
	{"ly", ""},
	{"es", ""},
	{"s", ""},
}

// phrasePatterns detect common multi-word structures worth scoring as a
// unit during the phrase-breakdown iteration.
var phrasePatterns = []struct {
	re   *regexp.Regexp
	kind string
}{
	{regexp.MustCompile(`how to \w+`), "how_to"},
	{regexp.MustCompile(`\w+ into \w+`), "into"},
	{regexp.MustCompile(`\w+ and \w+`), "and"},
	{regexp.MustCompile(`\w+ or \w+`), "or"},
	{regexp.MustCompile(`\w+ of \w+`), "of"},
	{regexp.MustCompile(`\w+ with \w+`), "with"},
	{regexp.MustCompile(`\w+ from \w+`), "from"},
	{regexp.MustCompile(`\w+ to \w+`), "to"},
	{regexp.MustCompile(`\w+ \w+ \w+`), "three_word"},
	{regexp.MustCompile(`\w+ \w+`), "two_word"},
}

// Phrase is one detected phrase with the pattern that produced it.
type Phrase struct {
	Text string
	Kind string
}

// WordPair is a candidate verb–object pair.
type WordPair struct {
	Verb   string
	Object string
}

// Preprocessed is the output of one preprocessing pass.
type Preprocessed struct {
	Original string
	Tokens   []string
	Stemmed  []string
	Filtered []string
	Phrases  []Phrase
	Pairs    []WordPair
}

// Preprocessor normalises and tokenizes input text.  Stateless; safe for
// concurrent use.
type Preprocessor struct{}

// NewPreprocessor returns a Preprocessor.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// Normalize applies NFKC so width and compatibility variants of the same
// character compare equal downstream.
func (p *Preprocessor) Normalize(text string) string {
	return norm.NFKC.String(text)
}

// Tokenize extracts lower-cased word tokens.
func (p *Preprocessor) Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(p.Normalize(text)), -1)
}

// StemWord strips a known suffix when enough of the word remains to stay
// recognisable.
func (p *Preprocessor) StemWord(word string) string {
	w := strings.ToLower(word)
	for _, r := range stemRules {
		if strings.HasSuffix(w, r.suffix) && len(w) > len(r.suffix)+2 {
			return strings.TrimSuffix(w, r.suffix) + r.replacement
		}
	}
	return w
}

// FilterStopWords drops segmentation stop words.
func (p *Preprocessor) FilterStopWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !IsStopWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// IsStopWord reports whether the (already cleaned) word is a segmentation
// stop word.
func IsStopWord(word string) bool {
	_, ok := segmentationStopWords[strings.ToLower(word)]
	return ok
}

// CleanWord strips surrounding punctuation and lower-cases, preserving the
// inner word for matching while the original spelling is kept for output.
func CleanWord(word string) string {
	return strings.ToLower(strings.Trim(word, `.,!?;:()[]{}"'`))
}

// DetectPhrases returns the matching phrase patterns in first-seen order,
// deduplicated by phrase text.
func (p *Preprocessor) DetectPhrases(text string) []Phrase {
	lower := strings.ToLower(p.Normalize(text))
	seen := make(map[string]struct{})
	var out []Phrase
	for _, pat := range phrasePatterns {
		for _, m := range pat.re.FindAllString(lower, -1) {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, Phrase{Text: m, Kind: pat.kind})
		}
	}
	return out
}

// ExtractPairs returns adjacent non-stop-word pairs as verb–object
// candidates, articles skipped.
func (p *Preprocessor) ExtractPairs(text string) []WordPair {
	words := p.Tokenize(text)
	var pairs []WordPair
	for i := 0; i < len(words)-1; i++ {
		verb := words[i]
		if IsStopWord(verb) {
			continue
		}
		obj := words[i+1]
		// Skip a single article between verb and object.
		if (obj == "a" || obj == "an" || obj == "the") && i+2 < len(words) {
			obj = words[i+2]
		}
		if IsStopWord(obj) {
			continue
		}
		pairs = append(pairs, WordPair{Verb: verb, Object: obj})
	}
	return pairs
}

// Process runs the whole pipeline over text.
func (p *Preprocessor) Process(text string) Preprocessed {
	tokens := p.Tokenize(text)
	stemmed := make([]string, len(tokens))
	for i, w := range tokens {
		stemmed[i] = p.StemWord(w)
	}
	return Preprocessed{
		Original: text,
		Tokens:   tokens,
		Stemmed:  stemmed,
		Filtered: p.FilterStopWords(tokens),
		Phrases:  p.DetectPhrases(text),
		Pairs:    p.ExtractPairs(text),
	}
}
