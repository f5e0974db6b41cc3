package render

import (
	"context"
	"html/template"
	"io"
	"iter"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntree/pkg/taxon"
	"github.com/gnames/gntree/pkg/templates"
	"github.com/gnames/gnuuid"
	"gopkg.in/yaml.v3"
)

// Indent prefixes text lines once per depth level.
const Indent = "│ "

// Text returns lines of an indented pre-order listing of the tree.
// Lines are created lazily, common names are resolved as the sequence
// is consumed. Iteration stops early if the context is canceled.
func Text(
	ctx context.Context,
	root *taxon.Node,
	l *Labeler,
) iter.Seq[string] {
	return func(yield func(string) bool) {
		if root == nil {
			return
		}
		textLines(ctx, root, 0, l, yield)
	}
}

func textLines(
	ctx context.Context,
	n *taxon.Node,
	depth int,
	l *Labeler,
	yield func(string) bool,
) bool {
	if ctx.Err() != nil {
		return false
	}
	line := strings.Repeat(Indent, depth) + l.Text(ctx, n.Name)
	if !yield(line) {
		return false
	}
	for _, c := range n.Children {
		if !textLines(ctx, c, depth+1, l, yield) {
			return false
		}
	}
	return true
}

// HTML returns lines of nested HTML for the tree. Leaves become div
// elements, internal nodes become details elements that are open by
// default and wrap the lines of their children.
func HTML(
	ctx context.Context,
	root *taxon.Node,
	l *Labeler,
) iter.Seq[string] {
	return func(yield func(string) bool) {
		if root == nil {
			return
		}
		htmlLines(ctx, root, nil, l, yield)
	}
}

func htmlLines(
	ctx context.Context,
	n *taxon.Node,
	path []string,
	l *Labeler,
	yield func(string) bool,
) bool {
	if ctx.Err() != nil {
		return false
	}
	label := l.HTML(ctx, n.Name)
	if n.IsLeaf() {
		return yield("<div>" + label + "</div>")
	}

	path = append(path, n.Name)
	open := `<details open id="` + anchor(path) + `">` + "\n" +
		"<summary>" + label + "</summary>"
	if !yield(open) {
		return false
	}
	for _, c := range n.Children {
		if !htmlLines(ctx, c, path, l, yield) {
			return false
		}
	}
	return yield("</details>")
}

// anchor creates a stable element id from the names on the path from
// the root.
func anchor(path []string) string {
	return "t-" + gnuuid.New(strings.Join(path, "|")).String()
}

// WritePage writes a complete HTML document with lines as its body.
func WritePage(w io.Writer, title string, lines iter.Seq[string]) error {
	tmpl, err := template.New("page").Parse(templates.PageHTML)
	if err != nil {
		return err
	}
	if err = tmpl.ExecuteTemplate(w, "head", title); err != nil {
		return err
	}
	for line := range lines {
		if _, err = io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return tmpl.ExecuteTemplate(w, "foot", nil)
}

// WriteLines writes every line followed by a new line.
func WriteLines(w io.Writer, lines iter.Seq[string]) error {
	for line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the structure of the tree as indented JSON.
func WriteJSON(w io.Writer, root *taxon.Node) error {
	enc := gnfmt.GNjson{Pretty: true}
	res, err := enc.Encode(root)
	if err != nil {
		return err
	}
	_, err = w.Write(append(res, '\n'))
	return err
}

// WriteYAML writes the structure of the tree as YAML.
func WriteYAML(w io.Writer, root *taxon.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}
