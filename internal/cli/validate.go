package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treelink/pkg/buildinfo"
	"github.com/matzehuels/treelink/pkg/pipeline"
)

// validateOpts holds the command-line flags for the validate command.
type validateOpts struct {
	inputOpts
	formats  string // optional formats: json, dot, svg
	detailed bool   // show ids in graph labels
}

// validateCommand creates the validate command, the main entry point: it
// writes the text report and, for serial tables, the converted table.
func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate [tree.csv] [linkage.csv]",
		Short: "Validate a linkage table against a tree",
		Long: `Validate a linkage table against a tree table.

The tree table has one root-to-leaf path per row, one column per depth. The
linkage table has a header row followed by either
  serial:   from_id, to_id, weight            (ids like "3.2")
  resolved: node_depth, from_node, to_node, weight

The run writes node_validation_report.txt, plus converted_to_str.csv for
serial tables and any extra formats requested with --format.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if err := opts.resolve(cmd, args, cfg); err != nil {
				return err
			}
			formats := cfg.Formats
			if cmd.Flags().Changed("format") || len(formats) == 0 {
				formats = pipeline.ParseFormats(opts.formats)
			}
			return c.runValidate(cmd.Context(), cfg, &opts, formats)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "extra output format(s): json, dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node ids in graph labels")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, cfg *Config, opts *validateOpts, formats []string) error {
	c.enableMetrics()
	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.options(formats)
	popts.Detailed = opts.detailed

	res, err := c.execute(ctx, runner, popts, "Validating linkages...")
	if err != nil {
		return err
	}

	written, err := pipeline.WriteArtifacts(opts.output, res.Artifacts)
	if err != nil {
		return err
	}

	printSummary(res)
	printLoops(res.Report)
	printNewline()
	for _, path := range written {
		printFile(path)
	}
	if !popts.NeedsGraph() && len(res.Report.Loops) > 0 {
		printNewline()
		printNextStep("Inspect the loops", appName+" graph "+opts.tree+" "+opts.linkage+" -m "+string(res.Report.Method))
	}
	return c.flushMetrics()
}

// execute runs the pipeline behind a spinner and logs the elapsed time.
func (c *CLI) execute(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, msg string) (*pipeline.Result, error) {
	var spinner *Spinner
	if stderrIsTerminal() {
		spinner = newSpinnerWithContext(ctx, msg)
		spinner.Start()
	}
	prog := newProgress(c.Logger)
	c.Logger.Debug("starting run", "version", buildinfo.Short(), "method", opts.Method, "formats", opts.Formats)

	res, err := runner.Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		_ = c.flushMetrics()
		return nil, err
	}
	prog.done("Validated " + filepath.Base(opts.LinkagePath))
	return res, nil
}
