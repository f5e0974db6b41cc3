// Package vernacular resolves common names of taxa. It provides a
// memoizing wrapper around a lookup function, parsing of the Wikispecies
// vernacular names template and abbreviation of scientific names.
package vernacular

import (
	"context"
	"regexp"
	"strings"
)

// Entry is a cached result of a common name lookup. An Entry with Found
// set to false means that the name was looked up and has no common name.
type Entry struct {
	Name  string
	Found bool
}

// Store keeps entries between runs.
type Store interface {
	// Get returns the entry for the key and true, or false if the key
	// was never stored.
	Get(key string) (Entry, bool, error)

	// Set stores the entry for the key.
	Set(key string, e Entry) error
}

// Resolver returns the common name for a scientific name.
type Resolver interface {
	// Resolve returns a common name and true, or false if the name has
	// no known common name.
	Resolve(ctx context.Context, name string) (string, bool)
}

// FetchFunc finds the common name of a taxon in an external source.
// The boolean is false when the source has no common name for it.
type FetchFunc func(ctx context.Context, name string) (string, bool, error)

// epithet allows hyphenated epithets such as "bursa-pastoris".
const epithet = `[a-z]+(?:-[a-z]+)*`

var (
	binomial  = regexp.MustCompile(`^([A-Z][a-z]+) (` + epithet + `)$`)
	trinomial = regexp.MustCompile(
		`^([A-Z][a-z]+) (` + epithet + `) (` + epithet + `)$`,
	)
)

// Abbreviate shortens the genus of binomials ("Panthera leo" becomes
// "P. leo") and the genus and species of trinomials ("Panthera leo leo"
// becomes "P. l. leo"). Other names are returned unchanged.
func Abbreviate(name string) string {
	if m := binomial.FindStringSubmatch(name); m != nil {
		return m[1][:1] + ". " + m[2]
	}
	if m := trinomial.FindStringSubmatch(name); m != nil {
		return m[1][:1] + ". " + m[2][:1] + ". " + m[3]
	}
	return name
}

// ParseVN extracts the English common name from the wikitext of a
// Wikispecies page. It looks for the "|en=" field of the "{{VN ...}}"
// template and returns its value up to the next field or the end of the
// template. Fields of templates nested in VN are ignored.
func ParseVN(content string) (string, bool) {
	const field = "|en="
	start := strings.Index(content, "{{VN")
	if start == -1 {
		return "", false
	}
	tmpl := content[start+len("{{VN"):]

	depth := 1
	val := -1
	for i := 0; i < len(tmpl); {
		switch {
		case strings.HasPrefix(tmpl[i:], "{{"):
			depth++
			i += 2
		case strings.HasPrefix(tmpl[i:], "}}"):
			depth--
			if depth == 0 {
				if val == -1 {
					return "", false
				}
				return value(tmpl[val:i])
			}
			i += 2
		case depth == 1 && tmpl[i] == '|':
			if val != -1 {
				return value(tmpl[val:i])
			}
			if strings.HasPrefix(tmpl[i:], field) {
				val = i + len(field)
				i = val
				continue
			}
			i++
		default:
			i++
		}
	}
	return "", false
}

func value(s string) (string, bool) {
	res := strings.TrimSpace(s)
	if res == "" {
		return "", false
	}
	return res, true
}
