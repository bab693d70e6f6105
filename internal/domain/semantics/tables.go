package semantics

// The static lookup tables below are process-wide read-only constants.  They
// are never mutated after package initialisation; the expander builds its
// reverse index over them lazily.

// defaultSynonyms maps a word to its semantically related words.  Expansion
// is symmetric through the reverse index: a word is related both to the
// entries it lists and to every key that lists it.
var defaultSynonyms = map[string][]string{
	"divide": {"split", "share", "distribute", "portion", "division", "allocation",
		"separate", "partition", "apportion", "allocate", "parcel", "section"},
	"share": {"divide", "distribute", "portion", "part", "allot", "allocate",
		"apportion", "parcel", "division", "split"},
	"distribute": {"divide", "share", "allocate", "apportion", "dispense",
		"allot", "parcel", "portion", "divide up"},
	"portion": {"part", "share", "division", "segment", "piece", "fraction",
		"allocation", "allotment", "quota"},
	"part": {"portion", "share", "division", "segment", "piece", "fraction",
		"component", "section"},
	"property": {"possession", "asset", "ownership", "estate", "belonging",
		"real estate", "land", "holding"},
	"inheritance": {"heritage", "legacy", "estate", "bequest", "patrimony",
		"endowment", "succession"},
	"fraction": {"portion", "part", "division", "segment", "piece",
		"numerator", "denominator"},
	"calculate": {"compute", "determine", "figure", "reckon", "work out",
		"estimate", "assess"},
	"mathematical": {"numeric", "arithmetic", "computational", "quantitative",
		"numerical"},
	"free":       {"liberate", "release", "unbound", "unrestricted", "unfettered"},
	"obligation": {"debt", "duty", "responsibility", "commitment", "liability"},
	"debt":       {"obligation", "liability", "indebtedness", "arrears"},
	"resources":  {"assets", "materials", "supplies", "means", "funds", "wealth"},
	"assets":     {"resources", "property", "possessions", "wealth", "holdings"},
	"fairly":     {"equitably", "justly", "evenly", "equally", "impartially"},
	"cake":       {"food", "dessert", "sweet", "pastry"},
	"portions":   {"parts", "shares", "divisions", "segments", "pieces"},
	"how":        {"method", "way", "manner", "process", "technique"},
	"into":       {"toward", "towards", "to"},
	"llm": {"large language model", "language model", "ai model", "neural network",
		"machine learning", "artificial intelligence"},
	"transformer": {"transform", "convert", "change", "modify", "neural network",
		"ai architecture", "model"},
	"attention":  {"focus", "concentration", "awareness", "mechanism", "process", "neural attention"},
	"mechanism":  {"process", "method", "system", "function", "operation", "procedure"},
	"mechanisms": {"processes", "methods", "systems", "functions", "operations", "procedures"},
	"natural":    {"organic", "normal", "inherent", "intrinsic", "native"},
	"language":   {"speech", "communication", "tongue", "dialect", "linguistic"},
	"processing": {"handling", "managing", "analyzing", "computing", "executing"},
	"use":        {"utilize", "employ", "apply", "operate", "function"},
}

// ContextGroup is one named group of concepts used to partition an expansion
// by domain.  Groups are kept in a slice because primary-context ties break
// by declaration order.
type ContextGroup struct {
	Name  string
	Words []string
}

var defaultContextGroups = []ContextGroup{
	{Name: "legal", Words: []string{"property", "inheritance", "debt", "obligation", "legal",
		"contract", "law", "right", "claim", "ownership", "estate", "will", "testament"}},
	{Name: "mathematical", Words: []string{"fraction", "calculation", "mathematical", "numerator",
		"denominator", "divide", "multiply", "sum", "number", "count"}},
	{Name: "economic", Words: []string{"resources", "assets", "wealth", "property", "distribution",
		"allocation", "share", "portion"}},
	{Name: "food", Words: []string{"cake", "food", "dessert", "meal", "eating"}},
	{Name: "action", Words: []string{"divide", "share", "distribute", "allocate", "split", "separate"}},
	{Name: "technical", Words: []string{"llm", "transformer", "attention", "mechanism", "processing",
		"neural", "ai", "machine learning", "artificial intelligence"}},
	{Name: "ai", Words: []string{"artificial intelligence", "machine learning", "neural network",
		"language model", "transformer", "attention mechanism"}},
}

// ContextPattern is one named keyword set with a weight, used by the
// detector to classify a span into domain contexts.
type ContextPattern struct {
	Name     string
	Keywords []string
	Weight   float64
}

var defaultContextPatterns = []ContextPattern{
	{Name: "legal", Weight: 1.0, Keywords: []string{"property", "inheritance", "debt", "obligation",
		"legal", "contract", "law", "right", "claim", "ownership", "estate", "will", "testament",
		"heir", "co-heir", "ancestral"}},
	{Name: "mathematical", Weight: 1.0, Keywords: []string{"fraction", "calculation", "mathematical",
		"numerator", "denominator", "divide", "multiply", "sum", "number", "count", "calculate", "compute"}},
	{Name: "economic", Weight: 1.0, Keywords: []string{"resources", "assets", "wealth", "property",
		"distribution", "allocation", "share", "portion", "fairly", "equitably"}},
	// Food carries a lower weight so that food vocabulary never outranks a
	// substantive domain present in the same span.
	{Name: "food", Weight: 0.5, Keywords: []string{"cake", "food", "dessert", "meal", "eating", "cooking"}},
	{Name: "action", Weight: 0.8, Keywords: []string{"divide", "share", "distribute", "allocate",
		"split", "separate"}},
	{Name: "social", Weight: 0.9, Keywords: []string{"people", "family", "relative", "community", "society"}},
	{Name: "technical", Weight: 1.0, Keywords: []string{"llm", "transformer", "attention", "mechanism",
		"processing", "neural", "ai", "machine learning", "artificial intelligence"}},
	{Name: "ai", Weight: 1.0, Keywords: []string{"artificial intelligence", "machine learning",
		"neural network", "language model", "transformer", "attention mechanism"}},
}

// expansionStopWords are excluded before a text is expanded to concepts.
var expansionStopWords = NewConceptSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "as", "is", "are", "was", "were",
)
