package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treelink/pkg/errors"
	"github.com/matzehuels/treelink/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	inputOpts
	formats  string // dot, svg
	detailed bool   // show ids in labels
}

// graphCommand creates the graph command, which renders the hierarchy with
// its valid linkages and highlights loop members.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{formats: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "graph [tree.csv] [linkage.csv]",
		Short: "Render the tree and its linkages as a node-link diagram",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if err := opts.resolve(cmd, args, cfg); err != nil {
				return err
			}
			formats, err := graphFormats(opts.formats)
			if err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), cfg, &opts, formats)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): svg, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node ids in labels")

	return cmd
}

// graphFormats parses --format, accepting only graph formats.
func graphFormats(s string) ([]string, error) {
	formats := pipeline.ParseFormats(s)
	if len(formats) == 0 {
		return []string{pipeline.FormatSVG}, nil
	}
	for _, f := range formats {
		if f != pipeline.FormatDOT && f != pipeline.FormatSVG {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "graph format %q not supported (use svg or dot)", f)
		}
	}
	return formats, nil
}

func (c *CLI) runGraph(ctx context.Context, cfg *Config, opts *graphOpts, formats []string) error {
	c.enableMetrics()
	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.options(formats)
	popts.Detailed = opts.detailed

	res, err := c.execute(ctx, runner, popts, "Rendering graph...")
	if err != nil {
		return err
	}

	graphs := make(map[string][]byte)
	for name, data := range res.Artifacts {
		if name == pipeline.FileDOT || name == pipeline.FileSVG {
			graphs[name] = data
		}
	}
	written, err := pipeline.WriteArtifacts(opts.output, graphs)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", strings.Join(formats, ", "))
	printStats(res)
	for _, path := range written {
		printFile(path)
	}
	return c.flushMetrics()
}
