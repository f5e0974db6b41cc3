package cmd

import (
	"errors"
	"strings"

	"github.com/gnames/gntree/pkg/config"
	"github.com/spf13/cobra"
)

var errNoSource = errors.New("source of relations is not set")

// showOptions converts explicitly set flags of the show command into
// configuration options.
func showOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("source") {
		s, _ := flags.GetString("source")
		res = append(res, config.OptSourcePath(s))
	}
	if flags.Changed("source-format") {
		s, _ := flags.GetString("source-format")
		res = append(res, config.OptSourceFormat(s))
	}
	if flags.Changed("render") {
		s, _ := flags.GetString("render")
		res = append(res, config.OptRenderFormat(s))
	}
	if flags.Changed("output") {
		s, _ := flags.GetString("output")
		res = append(res, config.OptRenderOutput(s))
	}
	if flags.Changed("title") {
		s, _ := flags.GetString("title")
		res = append(res, config.OptRenderTitle(s))
	}
	if flags.Changed("no-compress") {
		b, _ := flags.GetBool("no-compress")
		res = append(res, config.OptRenderWithoutCompression(b))
	}
	if flags.Changed("canonical") {
		b, _ := flags.GetBool("canonical")
		res = append(res, config.OptWithCanonical(b))
	}
	if flags.Changed("no-vernacular") {
		b, _ := flags.GetBool("no-vernacular")
		res = append(res, config.OptWithoutVernacular(b))
	}
	if flags.Changed("jobs") {
		i, _ := flags.GetInt("jobs")
		res = append(res, config.OptJobsNumber(i))
	}
	return res
}

// cleanArg converts a name from the command line the way names of
// relation files are normalized.
func cleanArg(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return strings.TrimSpace(s)
}
