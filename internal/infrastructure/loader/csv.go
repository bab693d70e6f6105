// Package loader reads dictionary files into the in-memory lexicon.  The
// engine never touches files itself; this is the boundary where persisted
// records become immutable entries.
package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/kosha-labs/kosha/internal/domain/lexicon"
	"github.com/kosha-labs/kosha/internal/infrastructure/monitoring/logging"
	"github.com/kosha-labs/kosha/pkg/errors"
)

// columnAliases maps normalised header names to entry fields.  Legacy
// exports use "sanskrit"/"english" for the token and definition columns.
var columnAliases = map[string]string{
	"token":                 "token",
	"sanskrit":              "token",
	"definition":            "definition",
	"english":               "definition",
	"semantic_frame":        "semantic_frame",
	"contextual_triggers":   "contextual_triggers",
	"conceptual_anchors":    "conceptual_anchors",
	"ambiguity_resolvers":   "ambiguity_resolvers",
	"usage_frequency_index": "usage_frequency_index",
	"semantic_neighbors":    "semantic_neighbors",
}

// LoadCSV reads a dictionary from a CSV file.  The header row drives column
// assignment; absent columns load as empty strings and rows without a token
// are skipped.
func LoadCSV(path string, log logging.Logger) (*lexicon.Dictionary, error) {
	if log == nil {
		log = logging.NewNop()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDictionaryLoad, "open dictionary file")
	}
	defer f.Close()

	dict, err := ReadCSV(f, log)
	if err != nil {
		return nil, err
	}
	log.Info("dictionary loaded", logging.String("path", path), logging.Int("entries", dict.Len()))
	return dict, nil
}

// ReadCSV reads a dictionary from any CSV stream.
func ReadCSV(r io.Reader, log logging.Logger) (*lexicon.Dictionary, error) {
	if log == nil {
		log = logging.NewNop()
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Rows may omit trailing columns; missing fields become empty strings.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDictionaryLoad, "read dictionary header")
	}

	fields := make([]string, len(header))
	for i, h := range header {
		fields[i] = columnAliases[strings.ToLower(strings.TrimSpace(h))]
	}

	var entries []lexicon.Entry
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDictionaryLoad, "read dictionary record")
		}

		var e lexicon.Entry
		for i, raw := range record {
			if i >= len(fields) {
				break
			}
			value := strings.TrimSpace(raw)
			switch fields[i] {
			case "token":
				e.Token = value
			case "definition":
				e.Definition = value
			case "semantic_frame":
				e.SemanticFrame = value
			case "contextual_triggers":
				e.ContextualTriggers = value
			case "conceptual_anchors":
				e.ConceptualAnchors = value
			case "ambiguity_resolvers":
				e.AmbiguityResolvers = value
			case "usage_frequency_index":
				e.UsageFrequencyIndex = value
			case "semantic_neighbors":
				e.SemanticNeighbors = value
			}
		}
		if e.Token == "" {
			log.Debug("skipping dictionary row without a token", logging.Int("line", line))
			continue
		}
		entries = append(entries, e)
	}

	return lexicon.NewDictionary(entries)
}
