package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treelink/pkg/linkage"
	"github.com/matzehuels/treelink/pkg/pipeline"
)

// inputOpts holds the flags shared by validate and graph.
type inputOpts struct {
	tree     string // tree table path
	linkage  string // linkage table path
	method   string // "serial" or "resolved"
	output   string // artifact directory
	maxSteps int    // detector step limit, zero for unbounded
	noCache  bool   // skip the result cache entirely
	refresh  bool   // recompute and overwrite cached results
}

// bind registers the shared flags on cmd.
func (o *inputOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.tree, "tree", "t", "", "tree table (CSV, one root-to-leaf path per row)")
	cmd.Flags().StringVarP(&o.linkage, "linkage", "l", "", "linkage table (CSV)")
	cmd.Flags().StringVarP(&o.method, "method", "m", "", "linkage method: serial, resolved (prompted when omitted on a terminal)")
	cmd.Flags().StringVarP(&o.output, "output", "o", ".", "directory for output files")
	cmd.Flags().IntVar(&o.maxSteps, "max-steps", 0, "abort loop detection after this many steps (0 = unbounded)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached results and recompute")
}

// resolve fills unset flags from positional args and the config file, in
// that order, and prompts for the method when it is still missing.
func (o *inputOpts) resolve(cmd *cobra.Command, args []string, cfg *Config) error {
	changed := cmd.Flags().Changed
	if len(args) > 0 && !changed("tree") {
		o.tree = args[0]
	}
	if len(args) > 1 && !changed("linkage") {
		o.linkage = args[1]
	}

	if o.tree == "" {
		o.tree = cfg.Tree
	}
	if o.linkage == "" {
		o.linkage = cfg.Linkage
	}
	if o.method == "" {
		o.method = cfg.Method
	}
	if !changed("output") && cfg.Output != "" {
		o.output = cfg.Output
	}
	if !changed("max-steps") && cfg.MaxSteps > 0 {
		o.maxSteps = cfg.MaxSteps
	}

	if o.method == "" && stdinIsTerminal() {
		m, err := pickMethod()
		if err != nil {
			return err
		}
		o.method = string(m)
	}
	return nil
}

// options converts the resolved flags to pipeline options.
func (o *inputOpts) options(formats []string) pipeline.Options {
	return pipeline.Options{
		TreePath:    o.tree,
		LinkagePath: o.linkage,
		Method:      linkage.Method(o.method),
		MaxSteps:    o.maxSteps,
		Formats:     formats,
		Refresh:     o.refresh,
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
