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
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/internal/ioload"
	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/parserpool"
	"github.com/spf13/cobra"
)

// getVernacularCmd returns the vernacular command.
func getVernacularCmd() *cobra.Command {
	var withCanonical bool

	vernCmd := &cobra.Command{
		Use:   "vernacular NAME...",
		Short: "Print English common names of taxa",
		Long: `Look up English common names of taxa on Wikispecies.

Every name is looked up only once, the result is kept in the cache
~/.cache/gntree/vernacular, including names without a common name.
Output is tab separated: the scientific name and its common name, the
common name is empty if it is unknown.

Examples:
  gntree vernacular "Panthera leo" Felidae
  gntree vernacular --canonical "Felis catus Linnaeus, 1758"`,
		Aliases: []string{"vern"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("canonical") {
				cfg.Update([]config.Option{config.OptWithCanonical(withCanonical)})
			}
			err := runVernacular(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	vernCmd.Flags().BoolVarP(
		&withCanonical, "canonical", "c", false,
		"look up canonical forms of names",
	)
	return vernCmd
}

func runVernacular(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	names := make([]string, 0, len(args))
	for _, v := range args {
		if v = cleanArg(v); v != "" {
			names = append(names, v)
		}
	}

	if cfg.WithCanonical {
		pool := parserpool.NewPool(cfg.JobsNumber)
		defer pool.Close()
		err := ioload.CanonicalNames(ctx, pool, names, cfg.JobsNumber)
		if err != nil {
			return err
		}
	}

	resolver, closeResolver, err := newResolver()
	if err != nil {
		return err
	}
	defer closeResolver()

	out := cmd.OutOrStdout()
	var found int
	for _, v := range names {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cn, ok := resolver.Resolve(ctx, v)
		if ok {
			found++
		}
		fmt.Fprintf(out, "%s\t%s\n", v, cn)
	}
	slog.Info("Common names resolved", "names", len(names), "found", found)
	return nil
}
