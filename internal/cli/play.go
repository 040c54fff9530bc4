package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/asciiforge/pkg/composite"
	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
	pio "github.com/matzehuels/asciiforge/pkg/io"
	"github.com/matzehuels/asciiforge/pkg/recipe"
)

// Play sources.
const (
	sourceAuto    = "auto"
	sourceGrid    = "grid"
	sourceRecipe  = "recipe"
	sourceCompose = "compose"
)

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	from  string        // how to read the input file
	delay time.Duration // pause between rows
	plain bool          // print rows without the TUI
	exit  bool          // quit as soon as the last row is shown
}

// playCommand creates the play command for animated row playback.
func (c *CLI) playCommand() *cobra.Command {
	opts := playOpts{from: sourceAuto}

	cmd := &cobra.Command{
		Use:   "play [file]",
		Short: "Reveal a grid row by row",
		Long: `Reveal a grid row by row.

The input is a saved grid (.txt or grid .json), an operation recipe or a
shape recipe. With --from auto, .txt files are grids, .toml files are
shape recipes, and JSON/YAML files are tried as a recipe, then a shape
recipe, then a grid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("delay") {
				opts.delay = c.Config.streamDelay()
			}
			return c.runPlay(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", opts.from, "input kind: auto, grid, recipe, compose")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "pause between rows (default from config, 50ms)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print rows to stdout without the interactive view")
	cmd.Flags().BoolVar(&opts.exit, "exit", false, "exit when playback finishes")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, path string, opts playOpts) error {
	g, err := c.loadPlayGrid(ctx, path, opts.from)
	if err != nil {
		return err
	}
	c.Logger.Debug("playing grid", "width", g.Width(), "height", g.Height(), "delay", opts.delay)

	if opts.plain {
		return c.playPlain(ctx, g, opts.delay)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newPlayModel(filepath.Base(path), g.Height(), streamRows(ctx, g, opts.delay), opts.exit)
	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(c.out)).Run()
	return err
}

// playPlain writes rows as they are released.
func (c *CLI) playPlain(ctx context.Context, g *grid.Grid, delay time.Duration) error {
	for ev := range g.RowsContext(ctx, delay) {
		if ev.Done {
			return nil
		}
		if _, err := fmt.Fprintln(c.out, ev.Line); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// loadPlayGrid reads path as the requested source kind.
func (c *CLI) loadPlayGrid(ctx context.Context, path, from string) (*grid.Grid, error) {
	switch from {
	case sourceGrid:
		return pio.Import(path)
	case sourceRecipe:
		r, err := recipe.Load(path)
		if err != nil {
			return nil, err
		}
		return c.executeForPlay(ctx, r)
	case sourceCompose:
		sr, err := composite.LoadRecipe(path)
		if err != nil {
			return nil, err
		}
		cg, err := composite.FromRecipe(sr, c.localRunner().Shapes)
		if err != nil {
			return nil, err
		}
		return cg.Grid, nil
	case sourceAuto:
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid --from %q (must be one of: auto, grid, recipe, compose)", from)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", "":
		return c.loadPlayGrid(ctx, path, sourceGrid)
	case ".toml":
		return c.loadPlayGrid(ctx, path, sourceCompose)
	}
	for _, kind := range []string{sourceRecipe, sourceCompose, sourceGrid} {
		g, err := c.loadPlayGrid(ctx, path, kind)
		if err == nil {
			return g, nil
		}
		c.Logger.Debug("not a "+kind, "path", path, "err", err)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not a grid, recipe or shape recipe", path)
}

func (c *CLI) executeForPlay(ctx context.Context, r *recipe.Recipe) (*grid.Grid, error) {
	if err := recipe.Validate(r); err != nil {
		return nil, err
	}
	res, err := c.localRunner().Executor(c.Logger).Execute(ctx, r)
	if err != nil {
		return nil, err
	}
	return res.Output, nil
}

// streamRows feeds g's rows into a channel until the stream ends or ctx
// is cancelled. The channel is closed either way.
func streamRows(ctx context.Context, g *grid.Grid, delay time.Duration) <-chan grid.RowEvent {
	ch := make(chan grid.RowEvent)
	go func() {
		defer close(ch)
		for ev := range g.RowsContext(ctx, delay) {
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// =============================================================================
// playModel - bubbletea playback view
// =============================================================================

var playFrameStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1)

type rowMsg grid.RowEvent

// streamClosedMsg reports that the row channel closed without a
// completion event.
type streamClosedMsg struct{}

type playModel struct {
	title  string
	total  int
	events <-chan grid.RowEvent
	lines  []string
	done   bool
	exit   bool
}

func newPlayModel(title string, total int, events <-chan grid.RowEvent, exit bool) playModel {
	return playModel{title: title, total: total, events: events, exit: exit}
}

func (m playModel) next() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return rowMsg(ev)
	}
}

func (m playModel) Init() tea.Cmd {
	return m.next()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case rowMsg:
		if msg.Done {
			m.done = true
			if m.exit {
				return m, tea.Quit
			}
			return m, nil
		}
		m.lines = append(m.lines, msg.Line)
		return m, m.next()
	case streamClosedMsg:
		m.done = true
		if m.exit {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m playModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	if len(m.lines) > 0 {
		b.WriteString(playFrameStyle.Render(strings.Join(m.lines, "\n")))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("row %d/%d", len(m.lines), m.total)
	if m.done {
		status = StyleSuccess.Render(iconSuccess) + " " + fmt.Sprintf("%d rows", len(m.lines))
	}
	b.WriteString(StyleDim.Render(status + "  q quit"))
	b.WriteString("\n")
	return b.String()
}
