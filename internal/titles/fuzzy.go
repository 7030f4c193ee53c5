package titles

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// romanNumeral matches II-IX after a space. A lone "I" or "X" and numerals
// at the start of a title are left alone ("I, Robot", "American History X").
var romanNumeral = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

var romanToArabic = map[string]string{
	"ii": "2", "iii": "3", "iv": "4", "v": "5",
	"vi": "6", "vii": "7", "viii": "8", "ix": "9",
}

var sequenceNumber = regexp.MustCompile(`\b(\d+)\b`)

// searchForm is the loose form Suggest compares: lower-case, no accents,
// no punctuation, no leading article, roman sequel numbers as digits.
// "Rocky IV" and "rocky 4" share a search form; Find never uses it.
func searchForm(title string) string {
	s := strings.ToLower(title)
	s = romanNumeral.ReplaceAllStringFunc(s, func(m string) string {
		return " " + romanToArabic[strings.TrimSpace(m)]
	})
	s = stripAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", " ")

	// "Léon: The Professional" loses both articles.
	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripArticle(strings.TrimSpace(part))
	}
	s = strings.Join(parts, " ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func stripArticle(s string) string {
	for _, art := range []string{"the ", "a ", "an "} {
		if rest, ok := strings.CutPrefix(s, art); ok {
			return rest
		}
	}
	return s
}

// adjustForSequel nudges a similarity score by comparing sequel numbers, so
// "alien 3" ranks "Alien 3" above "Aliens". A query without numbers is left
// as is.
func adjustForSequel(score float64, query, candidate string) float64 {
	want := sequenceNumber.FindAllString(query, -1)
	if len(want) == 0 {
		return score
	}
	have := sequenceNumber.FindAllString(candidate, -1)
	if len(have) == 0 {
		return score * 0.85
	}
	for _, n := range want {
		for _, m := range have {
			if n == m {
				return min(score*1.05, 1.0)
			}
		}
	}
	return score * 0.90
}
