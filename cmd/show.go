/*
Copyright © 2026 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/internal/iocache"
	"github.com/gnames/gntree/internal/iofs"
	"github.com/gnames/gntree/internal/ioload"
	"github.com/gnames/gntree/internal/iowiki"
	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/errcode"
	"github.com/gnames/gntree/pkg/gntree"
	"github.com/gnames/gntree/pkg/parserpool"
	"github.com/gnames/gntree/pkg/render"
	"github.com/gnames/gntree/pkg/taxon"
	"github.com/gnames/gntree/pkg/vernacular"
	"github.com/spf13/cobra"
)

// getShowCmd returns the show command.
func getShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show ROOT [TARGET...]",
		Short: "Show the tree of taxa below a root taxon",
		Long: `Build the tree of taxa below ROOT and print it.

Relations come from a source file:
  pairs   lines "parent -> child"
  coldp   ColDP NameUsage table (tab separated, with header)
  sfga    SFGA archive, local path or URL

If TARGET names are given, only the branches that lead to them are kept.
A single TARGET with a dot that names an existing file is read as CSV
with the common name in the first column and the scientific name in the
second one.

Chains of ranks with only one child are collapsed into one node unless
--no-compress is given. Common names are looked up on Wikispecies and
cached, so the first run over a large tree takes a while.

Examples:
  # Whole tree of Carnivora from a pairs file
  gntree show -s pairs.txt Carnivora

  # Branches of Felidae leading to two species as HTML
  gntree show -s NameUsage.tsv -f coldp -r html -o felidae.html \
    Felidae "Panthera leo" "Felis catus"

  # Targets with common names from a file, canonical names from SFGA
  gntree show -s col.sqlite.zip -f sfga --canonical Mammalia pets.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runShow(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	showFlags(showCmd)
	return showCmd
}

func showFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(
		"source", "s", "", "path or URL of relations source",
	)
	cmd.Flags().StringP(
		"source-format", "f", "",
		"format of the source (pairs, coldp, sfga)",
	)
	cmd.Flags().StringP(
		"render", "r", "", "output format (text, html, json, yaml)",
	)
	cmd.Flags().StringP(
		"output", "o", "", "output file (empty = STDOUT)",
	)
	cmd.Flags().StringP(
		"title", "t", "", "title of HTML page",
	)
	cmd.Flags().BoolP(
		"no-compress", "n", false, "keep single-child ranks as separate nodes",
	)
	cmd.Flags().BoolP(
		"canonical", "c", false, "use canonical forms of scientific names",
	)
	cmd.Flags().BoolP(
		"no-vernacular", "N", false, "do not look up common names",
	)
	cmd.Flags().IntP(
		"jobs", "j", 0, "number of name parsing workers",
	)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg.Update(showOptions(cmd))
	if cfg.Source.Path == "" {
		err := &gn.Error{
			Code: errcode.LoadSourceError,
			Msg:  "Source of relations is not set, use <em>--source</em>",
			Err:  errNoSource,
		}
		slog.Error("Source is not set", "error", errNoSource)
		return err
	}

	root := cleanArg(args[0])
	slog.Info("Building tree", "root", root, "source", cfg.Source.Path)
	targets, err := ioload.ParseTargets(args[1:])
	if err != nil {
		return err
	}

	if cfg.WithCanonical && cfg.Source.Format == config.PairsFormat {
		gn.Warn("Canonical names are not used with <em>pairs</em> sources")
		cfg.Update([]config.Option{config.OptWithCanonical(false)})
	}

	var pool parserpool.Pool
	if cfg.WithCanonical {
		pool = parserpool.NewPool(cfg.JobsNumber)
		defer pool.Close()
		if err = canonicalTargets(ctx, pool, &root, &targets); err != nil {
			return err
		}
	}

	loader, err := ioload.New(cfg, pool)
	if err != nil {
		return err
	}

	opts := gntree.Options{
		Targets:            taxon.NewTargets(targets.Names...),
		WithoutCompression: cfg.Render.WithoutCompression,
	}
	tree, err := gntree.Tree(ctx, loader, root, opts)
	if err != nil {
		return err
	}
	if tree == nil {
		gn.Warn("None of the targets are under <em>%s</em>", root)
		slog.Warn("Empty tree", "root", root, "targets", len(targets.Names))
		return nil
	}
	slog.Info("Tree is ready", "root", root, "nodes", taxon.Size(tree))

	resolver, closeResolver, err := newResolver()
	if err != nil {
		return err
	}
	defer closeResolver()

	labeler := render.NewLabeler(resolver, targets.Common)

	w, closeOutput, err := iofs.CreateOutput(cfg.Render.Output)
	if err != nil {
		return err
	}

	err = write(ctx, w, tree, labeler)
	if cerr := closeOutput(); err == nil && cerr != nil {
		err = iofs.WriteFileError(cfg.Render.Output, cerr)
	}
	if err != nil {
		return err
	}

	if cfg.Render.Output != "" {
		gn.Info("Tree is saved to <em>%s</em>", cfg.Render.Output)
	}
	return nil
}

func write(
	ctx context.Context,
	w io.Writer,
	tree *taxon.Node,
	l *render.Labeler,
) error {
	var err error
	switch cfg.Render.Format {
	case config.HTMLRender:
		err = render.WritePage(w, cfg.Render.Title, render.HTML(ctx, tree, l))
	case config.JSONRender:
		err = render.WriteJSON(w, tree)
	case config.YAMLRender:
		err = render.WriteYAML(w, tree)
	default:
		err = render.WriteLines(w, render.Text(ctx, tree, l))
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return &gn.Error{
			Code: errcode.RenderError,
			Msg:  "Cannot render tree as %s",
			Vars: []any{cfg.Render.Format},
			Err:  err,
		}
	}
	return nil
}

// canonicalTargets converts the root, the target names and the keys of
// user-supplied common names to canonical forms.
func canonicalTargets(
	ctx context.Context,
	pool parserpool.Pool,
	root *string,
	targets *ioload.Targets,
) error {
	names := append([]string{*root}, targets.Names...)
	err := ioload.CanonicalNames(ctx, pool, names, cfg.JobsNumber)
	if err != nil {
		return err
	}
	*root = names[0]

	common := make(map[string]string, len(targets.Common))
	for i, v := range targets.Names {
		if cn, ok := targets.Common[v]; ok {
			common[names[i+1]] = cn
		}
	}
	targets.Names = names[1:]
	targets.Common = common
	return nil
}

// newResolver opens the persistent cache of common names and connects it
// to Wikispecies. With disabled lookups the resolver is nil.
func newResolver() (vernacular.Resolver, func(), error) {
	if cfg.WithoutVernacular {
		return nil, func() {}, nil
	}

	cache, err := iocache.Open(config.VernacularCacheDir(cfg.HomeDir))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := cache.Close(); err != nil {
			slog.Warn("Cannot close vernacular cache", "error", err)
		}
	}

	client := iowiki.New(cfg.Vernacular)
	return vernacular.Memoize(nil, client.Fetch, cache), closeFn, nil
}
