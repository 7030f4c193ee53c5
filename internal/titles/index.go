package titles

import (
	"cmp"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Index answers exact, case-insensitive title lookups in constant time. It is
// built once and never modified, so it is safe for concurrent use.
type Index struct {
	records []Record
	byKey   map[string]int // lower-cased title -> position in records

	// Search forms aligned with records, kept for Suggest.
	primary  []string
	original []string
}

// Key returns the lookup form of a title: trimmed, NFC-normalized and
// lower-cased. "Parasite", "PARASITE" and "parasite" share a key; "STRASSE"
// and "Straße" do not.
func Key(title string) string {
	s := norm.NFC.String(strings.TrimSpace(title))
	// A Caser is stateful, so each call gets its own.
	return cases.Lower(language.Und).String(s)
}

// Build indexes the primary and original title of every record. When two
// records share a key the earlier one in dataset order wins.
func Build(records []Record) *Index {
	x := &Index{
		records:  slices.Clone(records),
		byKey:    make(map[string]int, len(records)*2),
		primary:  make([]string, len(records)),
		original: make([]string, len(records)),
	}
	for i, rec := range x.records {
		x.primary[i] = searchForm(rec.PrimaryTitle)
		x.original[i] = searchForm(rec.OriginalTitle)
		for _, k := range []string{Key(rec.PrimaryTitle), Key(rec.OriginalTitle)} {
			if k == "" {
				continue
			}
			if _, taken := x.byKey[k]; !taken {
				x.byKey[k] = i
			}
		}
	}
	return x
}

// Len returns the number of records in the index.
func (x *Index) Len() int {
	return len(x.records)
}

// Find returns the record whose primary or original title equals title,
// ignoring case. There is no partial matching: "Thing" does not find
// "The Thing".
func (x *Index) Find(title string) (Record, bool) {
	k := Key(title)
	if k == "" {
		return Record{}, false
	}
	i, ok := x.byKey[k]
	if !ok {
		return Record{}, false
	}
	return x.records[i], true
}

// Match is a fuzzy search result.
type Match struct {
	Record Record
	Score  float64 // Jaro-Winkler similarity, 0.0-1.0
}

// minSuggestScore drops candidates that only share a few letters.
const minSuggestScore = 0.85

// Suggest ranks records by Jaro-Winkler similarity between the search forms
// of query and either title and returns at most n of them, best first. Ties
// keep dataset order.
func (x *Index) Suggest(query string, n int) []Match {
	q := searchForm(query)
	if q == "" || n <= 0 {
		return nil
	}

	var matches []Match
	for i, rec := range x.records {
		score := max(
			similarity(q, x.primary[i]),
			similarity(q, x.original[i]),
		)
		if score < minSuggestScore {
			continue
		}
		matches = append(matches, Match{Record: rec, Score: score})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(matches) > n {
		matches = matches[:n]
	}
	return matches
}

func similarity(query, candidate string) float64 {
	if candidate == "" {
		return 0
	}
	score := float64(edlib.JaroWinklerSimilarity(query, candidate))
	return adjustForSequel(score, query, candidate)
}
