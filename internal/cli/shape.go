package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/pipeline"
)

// shapeOpts holds the command-line flags for the shape command.
type shapeOpts struct {
	outputOpts
	params      []string // key=value shape parameters
	decorParams []string // key=value decorator parameters
	req         pipeline.ShapeRequest
}

// shapeCommand creates the shape command.
func (c *CLI) shapeCommand() *cobra.Command {
	var opts shapeOpts

	cmd := &cobra.Command{
		Use:   "shape [kind]",
		Short: "Render a single shape",
		Long: `Render a single shape.

Shape parameters are passed as key=value pairs; nested keys use dots:

  asciiforge shape circle -p radius=5 -p filled=true
  asciiforge shape rectangle -p width=12 -p height=4 --decorate gradient
  asciiforge shape line -p start.row=0 -p start.col=0 -p end.row=4 -p end.col=9

Transforms apply in the order rotate, mirror, scale; decoration runs last.`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return c.localRunner().Shapes.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			opts.req.Kind = args[0]
			if opts.req.Params, err = parseParams(opts.params); err != nil {
				return err
			}
			if opts.req.DecoratorParams, err = parseParams(opts.decorParams); err != nil {
				return err
			}
			return c.runShape(cmd.Context(), &opts)
		},
	}

	opts.outputOpts.register(cmd)
	cmd.Flags().StringArrayVarP(&opts.params, "param", "p", nil, "shape parameter key=value (repeatable)")
	cmd.Flags().IntVar(&opts.req.Rotate, "rotate", 0, "rotate by 90, 180 or 270 degrees")
	cmd.Flags().StringVar(&opts.req.Mirror, "mirror", "", "mirror across an axis: horizontal, vertical")
	cmd.Flags().Float64Var(&opts.req.Scale, "scale", 0, "scale by 0.5 or 2")
	cmd.Flags().StringVar(&opts.req.Decorator, "decorate", "", "fill blank cells with a decorator")
	cmd.Flags().StringArrayVar(&opts.decorParams, "decor-param", nil, "decorator parameter key=value (repeatable)")

	return cmd
}

func (c *CLI) runShape(ctx context.Context, opts *shapeOpts) error {
	if c.Config.Render.Char != "" && opts.req.Kind != "text" {
		if opts.req.Params == nil {
			opts.req.Params = map[string]any{}
		}
		if _, ok := opts.req.Params["char"]; !ok {
			opts.req.Params["char"] = c.Config.Render.Char
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.RenderShape(ctx, opts.req, c.options(&opts.outputOpts))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s %dx%d", opts.req.Kind, res.Stats.Width, res.Stats.Height))
	return c.writeResult(res, &opts.outputOpts)
}

// textCommand creates the text command, a shorthand for `shape text`.
func (c *CLI) textCommand() *cobra.Command {
	var (
		opts shapeOpts
		char string
	)

	cmd := &cobra.Command{
		Use:   "text [string]",
		Short: "Render text in the block font",
		Long: `Render text in the 5-row block font.

Lower-case letters render as upper case; characters the font does not cover
are skipped. Run 'asciiforge list' to see the supported characters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.req.Kind = "text"
			opts.req.Params = map[string]any{"text": args[0]}
			if char == "" {
				char = c.Config.Render.Char
			}
			if char != "" {
				opts.req.Params["char"] = char
			}
			var err error
			if opts.req.DecoratorParams, err = parseParams(opts.decorParams); err != nil {
				return err
			}
			return c.runShape(cmd.Context(), &opts)
		},
	}

	opts.outputOpts.register(cmd)
	cmd.Flags().StringVar(&char, "char", "", "draw glyphs with this character")
	cmd.Flags().StringVar(&opts.req.Decorator, "decorate", "", "fill blank cells with a decorator")
	cmd.Flags().StringArrayVar(&opts.decorParams, "decor-param", nil, "decorator parameter key=value (repeatable)")

	return cmd
}

// parseParams turns key=value pairs into a params map. Dotted keys build
// nested maps. Values stay strings; the shape and decorator decoders
// convert them to the field types they need.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid parameter %q (want key=value)", pair)
		}
		parts := strings.Split(key, ".")
		m := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := m[part].(map[string]any)
			if !ok {
				if _, taken := m[part]; taken {
					return nil, errors.New(errors.ErrCodeInvalidInput, "invalid parameter %q: %s is not a map", pair, part)
				}
				next = map[string]any{}
				m[part] = next
			}
			m = next
		}
		m[parts[len(parts)-1]] = value
	}
	return out, nil
}
