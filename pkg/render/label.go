// Package render turns taxonomic trees into lines of indented text or
// nested HTML, and exports their structure as JSON or YAML.
package render

import (
	"context"
	"html"
	"strings"

	"github.com/gnames/gntree/pkg/taxon"
	"github.com/gnames/gntree/pkg/vernacular"
)

// Part is one component of a possibly composite node label.
type Part struct {
	// Scientific is the scientific name used for common name lookups.
	Scientific string
	// Display is the abbreviated scientific name.
	Display string
	// Common is the common name, empty if unknown.
	Common string
}

// Labeler creates display labels for tree nodes.
type Labeler struct {
	resolver vernacular.Resolver
	seeds    map[string]string
}

// NewLabeler creates a Labeler. Common names come from seeds first,
// then from the resolver. Both can be nil.
func NewLabeler(
	resolver vernacular.Resolver,
	seeds map[string]string,
) *Labeler {
	return &Labeler{resolver: resolver, seeds: seeds}
}

// Parts splits a label into its components and annotates them.
func (l *Labeler) Parts(ctx context.Context, label string) []Part {
	names := strings.Split(label, taxon.Separator)
	res := make([]Part, len(names))
	for i, v := range names {
		sci := strings.ReplaceAll(v, "_", " ")
		res[i] = Part{
			Scientific: sci,
			Display:    vernacular.Abbreviate(sci),
			Common:     l.common(ctx, sci),
		}
	}
	return res
}

func (l *Labeler) common(ctx context.Context, name string) string {
	if res, ok := l.seeds[name]; ok {
		return res
	}
	if l.resolver == nil {
		return ""
	}
	if res, ok := l.resolver.Resolve(ctx, name); ok {
		return res
	}
	return ""
}

// Text creates a plain text label, "common - scientific" for each
// component with a known common name.
func (l *Labeler) Text(ctx context.Context, label string) string {
	parts := l.Parts(ctx, label)
	res := make([]string, len(parts))
	for i, v := range parts {
		if v.Common == "" {
			res[i] = v.Display
			continue
		}
		res[i] = v.Common + " - " + v.Display
	}
	return strings.Join(res, taxon.Separator)
}

// HTML creates an escaped HTML label with common and scientific names
// wrapped in spans.
func (l *Labeler) HTML(ctx context.Context, label string) string {
	parts := l.Parts(ctx, label)
	res := make([]string, len(parts))
	for i, v := range parts {
		sci := `<span class="scientific">` + html.EscapeString(v.Display) +
			`</span>`
		if v.Common == "" {
			res[i] = sci
			continue
		}
		res[i] = `<span class="common">` + html.EscapeString(v.Common) +
			`</span> ` + sci
	}
	return strings.Join(res, html.EscapeString(taxon.Separator))
}
