package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/asciiforge/pkg/composite"
	"github.com/matzehuels/asciiforge/pkg/glyph"
	"github.com/matzehuels/asciiforge/pkg/recipe"
)

// listCommand creates the list command showing what can be drawn.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List shapes, decorators, anchors and font characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := c.localRunner()

			anchors := make([]string, len(composite.Anchors))
			for i, a := range composite.Anchors {
				anchors[i] = string(a)
			}

			fmt.Fprintln(c.out, StyleTitle.Render("asciiforge"))
			c.printKeyValue("shapes", strings.Join(runner.Shapes.Names(), ", "))
			c.printKeyValue("decorators", strings.Join(runner.Decorators.Names(), ", "))
			c.printKeyValue("operations", strings.Join(recipe.Kinds, ", "))
			c.printKeyValue("anchors", strings.Join(anchors, ", "))
			c.printKeyValue("font", string(glyph.Default.Runes()))
			return nil
		},
	}
}
