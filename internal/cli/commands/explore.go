package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hrdash/internal/pipeline"
	"github.com/leapstack-labs/hrdash/internal/render"
	"github.com/leapstack-labs/hrdash/pkg/core"
)

// NewExploreCommand creates the explore command.
func NewExploreCommand() *cobra.Command {
	var sel core.Selection

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Change filters interactively in the terminal",
		Long: `Open an interactive view of the summary metrics. Move between the three
filters with up/down and cycle a filter's value with left/right; the metric
cards update as the selection changes.`,
		Example: `  hrdash explore
  hrdash explore --year 2011`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			if !cc.Renderer.IsTTY() {
				return errors.New("explore needs an interactive terminal\nHint: use 'hrdash summary' when piping output")
			}

			runner, err := cc.LoadRunner(cmd.Context())
			if err != nil {
				return err
			}

			m := newExploreModel(runner, resolveSelection(cmd, cc.Cfg, sel), cc.Renderer.Lipgloss())
			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(exploreModel); ok {
				cc.Logger.Debug("explore finished", "selection", render.SelectionLine(fm.Selection()))
			}
			return nil
		},
	}

	selectionFlags(cmd, &sel)
	return cmd
}

type exploreKeys struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Help, k.Quit}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Left, k.Right, k.Reset},
		{k.Help, k.Quit},
	}
}

var defaultExploreKeys = exploreKeys{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous filter")),
	Down:  key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next filter")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous value")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next value")),
	Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset filters")),
	Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var exploreDims = [3]core.Dimension{core.DimYearOfHire, core.DimEmploymentStatus, core.DimRecruitmentSource}

// exploreModel is the bubbletea model behind explore.
type exploreModel struct {
	runner  *pipeline.Runner
	choices [3][]string
	index   [3]int
	focus   int

	dash *pipeline.Dashboard
	err  error

	keys    exploreKeys
	help    help.Model
	cards   render.CardStyles
	title   lipgloss.Style
	focused lipgloss.Style
	muted   lipgloss.Style
}

func newExploreModel(runner *pipeline.Runner, sel core.Selection, lr *lipgloss.Renderer) exploreModel {
	opts := runner.Options()
	sel = sel.Normalize()
	m := exploreModel{
		runner:  runner,
		choices: [3][]string{opts.Years, opts.Statuses, opts.Sources},
		keys:    defaultExploreKeys,
		help:    help.New(),
		cards:   render.CardStylesFor(lr),
		title:   lr.NewStyle().Bold(true),
		focused: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
	}
	for i, v := range []string{sel.YearOfHire, sel.EmploymentStatus, sel.RecruitmentSource} {
		// Values the dataset does not offer start at All.
		m.index[i] = max(0, slices.Index(m.choices[i], v))
	}
	m.rebuild()
	return m
}

// Selection returns the selection currently shown.
func (m exploreModel) Selection() core.Selection {
	value := func(i int) string {
		if len(m.choices[i]) == 0 {
			return core.All
		}
		return m.choices[i][m.index[i]]
	}
	return core.Selection{
		YearOfHire:        value(0),
		EmploymentStatus:  value(1),
		RecruitmentSource: value(2),
	}
}

func (m *exploreModel) rebuild() {
	m.dash, m.err = m.runner.Build(m.Selection())
}

func (m *exploreModel) cycle(step int) {
	n := len(m.choices[m.focus])
	if n == 0 {
		return
	}
	m.index[m.focus] = (m.index[m.focus] + step + n) % n
	m.rebuild()
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.focus = (m.focus + len(exploreDims) - 1) % len(exploreDims)
		case key.Matches(msg, m.keys.Down):
			m.focus = (m.focus + 1) % len(exploreDims)
		case key.Matches(msg, m.keys.Left):
			m.cycle(-1)
		case key.Matches(msg, m.keys.Right):
			m.cycle(1)
		case key.Matches(msg, m.keys.Reset):
			m.index = [3]int{}
			m.rebuild()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder
	b.WriteString(m.title.Render("HR Dashboard"))
	b.WriteString("\n\n")

	sel := m.Selection()
	values := []string{sel.YearOfHire, sel.EmploymentStatus, sel.RecruitmentSource}
	for i, d := range exploreDims {
		line := fmt.Sprintf("%-20s ‹ %s ›", d.Label()+":", values[i])
		if i == m.focus {
			b.WriteString(m.focused.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("Error: " + m.err.Error())
	} else {
		b.WriteString(m.muted.Render(showing(m.dash)))
		b.WriteString("\n")
		b.WriteString(render.Cards(m.dash.Summary, m.cards, 4))
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
