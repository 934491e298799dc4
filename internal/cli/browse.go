package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weslpkg/pkg/bundle"
	"github.com/matzehuels/weslpkg/pkg/errors"
	pkgio "github.com/matzehuels/weslpkg/pkg/io"
	"github.com/matzehuels/weslpkg/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand opens an interactive list of extracted modules. Selecting
// one prints its source to stdout.
func (c *CLI) browseCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "browse <module-path>...",
		Short: "Browse extracted shader modules interactively",
		Long: `Extract bundles for the given module paths and pick a module to print.

Use --input to browse descriptors saved earlier with "weslpkg -o bundles.json".

Examples:
  weslpkg browse random_wgsl::lib::pcg_2u_3f
  weslpkg browse --input bundles.json > lib.wgsl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundles, err := c.loadBundles(cmd, args, input)
			if err != nil {
				return err
			}
			m := NewModuleListModel(bundles)
			if len(m.Entries) == 0 {
				return errors.New(errors.ErrCodeNotFound, "bundles contain no modules")
			}

			finalModel, err := tea.NewProgram(m, tea.WithOutput(cmd.ErrOrStderr())).Run()
			if err != nil {
				return err
			}
			fm, ok := finalModel.(ModuleListModel)
			if !ok || fm.Selected == nil {
				printDetail("No selection made")
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), fm.Selected.Module.Source)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "read descriptors from a JSON file instead of extracting")

	return cmd
}

// loadBundles reads descriptors from input when given, otherwise resolves and
// extracts them.
func (c *CLI) loadBundles(cmd *cobra.Command, args []string, input string) ([]*bundle.Descriptor, error) {
	if input != "" {
		return pkgio.ImportJSON(input)
	}
	if len(args) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "give module paths or --input")
	}

	proj, err := c.project.load()
	if err != nil {
		return nil, err
	}
	var result *pipeline.Result
	err = c.withProgress(cmd.Context(), proj.Dir, func() (err error) {
		result, err = c.newRunner(proj).Run(cmd.Context(), pipeline.Options{
			ModulePaths: args,
			ProjectDir:  proj.Dir,
			Packages:    proj.Packages(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result.Bundles, nil
}

// =============================================================================
// ModuleListModel - Interactive module selection
// =============================================================================

// ModuleEntry is one module of one bundle.
type ModuleEntry struct {
	Bundle *bundle.Descriptor
	Module bundle.Module
}

// ModuleListModel is the bubbletea model for interactive module selection.
type ModuleListModel struct {
	Entries  []ModuleEntry
	Cursor   int
	Selected *ModuleEntry
	Height   int
	Offset   int
}

// NewModuleListModel creates a list of every module in bundles, in order.
func NewModuleListModel(bundles []*bundle.Descriptor) ModuleListModel {
	var entries []ModuleEntry
	for _, b := range bundles {
		for _, mod := range b.Modules {
			entries = append(entries, ModuleEntry{Bundle: b, Module: mod})
		}
	}
	return ModuleListModel{Entries: entries, Height: 15}
}

func (m ModuleListModel) Init() tea.Cmd {
	return nil
}

func (m ModuleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Entries) == 0 {
				return m, nil
			}
			entry := m.Entries[m.Cursor]
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ModuleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Module"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ print source  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, e.Bundle.Name, e.Module.Path, fmt.Sprintf("%d", lineCount(e.Module.Source)), e.Bundle.Edition})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Module", "Lines", "Edition").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// lineCount returns the number of lines in src, counting a final line
// without a newline.
func lineCount(src string) int {
	if src == "" {
		return 0
	}
	n := strings.Count(src, "\n")
	if !strings.HasSuffix(src, "\n") {
		n++
	}
	return n
}
