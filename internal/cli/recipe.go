package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/asciiforge/pkg/composite"
	"github.com/matzehuels/asciiforge/pkg/recipe"
)

// recipeCommand creates the recipe command group.
func (c *CLI) recipeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Run operation recipes",
		Long: `Run operation recipes.

A recipe is a JSON or YAML document listing operations (generate, overlay,
clip, transform, topAppend, bottomAppend, rightAppend, centerHorizontally,
decorate). Each operation stores its grid under a name that later
operations refer to; the grid stored under "output" is the result.`,
	}

	cmd.AddCommand(c.recipeRunCommand())
	cmd.AddCommand(c.recipeValidateCommand())

	return cmd
}

// recipeRunCommand creates the "recipe run" subcommand.
func (c *CLI) recipeRunCommand() *cobra.Command {
	var opts outputOpts

	cmd := &cobra.Command{
		Use:   "run [recipe.json|recipe.yaml]",
		Short: "Execute a recipe and print its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRecipe(cmd.Context(), args[0], &opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) runRecipe(ctx context.Context, path string, opts *outputOpts) error {
	r, err := recipe.Load(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Running %d operations...", len(r.Operations)))
	spinner.Start()

	res, err := runner.ExecuteRecipe(ctx, r, c.options(opts))
	if err != nil {
		spinner.StopWithError("Recipe failed")
		return err
	}
	spinner.Stop()

	return c.writeResult(res, opts)
}

// recipeValidateCommand creates the "recipe validate" subcommand.
func (c *CLI) recipeValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [recipe.json|recipe.yaml]",
		Short: "Check a recipe without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := recipe.Load(args[0])
			if err != nil {
				return err
			}
			if err := recipe.Validate(r); err != nil {
				return err
			}
			printSuccess("%s is valid", args[0])
			printDetail("%d operations, output %q", len(r.Operations), r.Output)
			printNextStep("Run it", "asciiforge recipe run "+args[0])
			return nil
		},
	}
}

// composeCommand creates the compose command for shape recipes.
func (c *CLI) composeCommand() *cobra.Command {
	var opts outputOpts

	cmd := &cobra.Command{
		Use:   "compose [shapes.toml|shapes.yaml|shapes.json]",
		Short: "Lay out a shape recipe on a canvas",
		Long: `Lay out a shape recipe on a canvas.

A shape recipe declares a canvas size and a list of shapes. Each shape is
placed at an anchor (center, topLeft, topRight, bottomLeft, bottomRight)
plus an optional offset, drawn in order so later shapes sit on top.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompose(cmd.Context(), args[0], &opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) runCompose(ctx context.Context, path string, opts *outputOpts) error {
	sr, err := composite.LoadRecipe(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Compose(ctx, sr, c.options(opts))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Composed %d shapes", len(sr.Shapes)))
	return c.writeResult(res, opts)
}
