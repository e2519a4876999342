package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lineagemap/pkg/family"
	"github.com/matzehuels/lineagemap/pkg/pipeline"
	"github.com/matzehuels/lineagemap/pkg/store"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// FamilyListModel - Interactive family selection
// =============================================================================

// FamilyEntry is one row of the family picker.
type FamilyEntry struct {
	Name     string
	Title    string // Meta.FamilyName, if set
	People   int
	Earliest int // earliest birth year, 0 if unknown
	Broken   bool
}

// FamilyListModel is the bubbletea model for interactive family selection.
type FamilyListModel struct {
	Families []FamilyEntry
	Cursor   int
	Selected *FamilyEntry
	Height   int
	Offset   int
}

// NewFamilyListModel creates a new family list model.
func NewFamilyListModel(families []FamilyEntry) FamilyListModel {
	return FamilyListModel{Families: families, Height: 15}
}

func (m FamilyListModel) Init() tea.Cmd {
	return nil
}

func (m FamilyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Families)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Families) == 0 || m.Families[m.Cursor].Broken {
				return m, nil
			}
			f := m.Families[m.Cursor]
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m FamilyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Family"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Families))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Families[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		earliest := "—"
		if f.Earliest > 0 {
			earliest = strconv.Itoa(f.Earliest)
		}
		people := strconv.Itoa(f.People)
		if f.Broken {
			people = "unreadable"
		}
		rows = append(rows, []string{cursor, f.Name, f.Title, people, earliest})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Family", "Title", "People", "Since").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Families) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			switch {
			case m.Families[idx].Broken:
				base = base.Foreground(colorDim)
			case idx == m.Cursor:
				base = base.Foreground(colorGreen).Bold(true)
			case col >= 3:
				base = base.Foreground(colorGray)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Families))))

	return b.String()
}

// =============================================================================
// browse command
// =============================================================================

// browseCommand creates the browse command: pick a stored family and
// render it.
func (c *CLI) browseCommand() *cobra.Command {
	var output string
	opts := layoutOptions()

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a stored family interactively and render it to SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfigGeometry(cmd, &opts); err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), opts, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <family>.svg)")
	addRenderFlags(cmd, &opts)
	addGeometryFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	cfg, err := c.config()
	if err != nil {
		return err
	}
	st, err := c.openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	families, err := listFamilies(ctx, st)
	if err != nil {
		return err
	}
	if len(families) == 0 {
		printWarning("No families stored in %s", cfg.Storage.DataDir)
		printNextStep("Start from a sample", "lineagemap samples export stark -o "+cfg.Storage.DataDir+"/family_stark.json")
		return nil
	}

	final, err := tea.NewProgram(NewFamilyListModel(families), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("family picker: %w", err)
	}
	sel := final.(FamilyListModel).Selected
	if sel == nil {
		return nil
	}
	logger.Debug("selected family", "name", sel.Name)

	doc, err := st.Get(ctx, sel.Name)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts.Family = sel.Name
	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatSVG}
	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		return err
	}

	path := output
	if path == "" {
		path = sel.Name + ".svg"
	}
	if err := writeFile(path, result.Artifacts[pipeline.FormatSVG]); err != nil {
		return err
	}
	printSuccess("Rendered %s", sel.Name)
	printFile(path)
	printStats(result.Stats.Persons, result.Stats.Unions, result.Stats.Warnings, result.CacheInfo.LayoutHit)
	return nil
}

// listFamilies loads a picker entry per stored family. Documents that fail
// to load are listed but cannot be selected.
func listFamilies(ctx context.Context, st store.Store) ([]FamilyEntry, error) {
	names, err := st.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]FamilyEntry, 0, len(names))
	for _, name := range names {
		doc, err := st.Get(ctx, name)
		if err != nil {
			entries = append(entries, FamilyEntry{Name: name, Broken: true})
			continue
		}
		entries = append(entries, newFamilyEntry(name, doc))
	}
	return entries, nil
}

func newFamilyEntry(name string, doc *family.Document) FamilyEntry {
	e := FamilyEntry{Name: name, Title: doc.Meta.FamilyName, People: len(doc.People)}
	for _, p := range doc.People {
		if y, ok := family.Year(p.Born); ok && (e.Earliest == 0 || y < e.Earliest) {
			e.Earliest = y
		}
	}
	return e
}
