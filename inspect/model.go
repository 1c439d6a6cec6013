package inspect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shaderkit/spirvtext/decode"
	"github.com/shaderkit/spirvtext/symtab"
	"github.com/shaderkit/spirvtext/target"
	"github.com/shaderkit/spirvtext/varlist"
)

// view indexes the browsable panes.
type view int

const (
	viewInstructions view = iota
	viewTypes
	viewVariables
	viewCount
)

func (v view) title() string {
	switch v {
	case viewInstructions:
		return "instructions"
	case viewTypes:
		return "types"
	case viewVariables:
		return "variables"
	default:
		return "?"
	}
}

// Styling
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575"))
)

type model struct {
	path   string
	header decode.Header
	stage  target.Stage

	active   view
	content  [viewCount]string
	viewport viewport.Model
	ready    bool
}

// Run decodes nothing itself: it renders the already-decoded module in an
// interactive terminal session and blocks until the user quits.
func Run(path string, header decode.Header, instructions []decode.Instruction, stage target.Stage) error {
	tbl := symtab.New(header.Bound, target.Target{}, stage)
	for _, inst := range instructions {
		// Apply never fails on the opcodes it does not track, and the
		// inspector wants a best-effort table even for modules a backend
		// would reject.
		_ = tbl.Apply(inst)
	}

	m := model{
		path:   path,
		header: header,
		stage:  stage,
	}
	m.content[viewInstructions] = renderInstructions(instructions)
	m.content[viewTypes] = renderTypes(tbl)
	m.content[viewVariables] = renderVariables(tbl)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.active = (m.active + 1) % viewCount
			m.viewport.SetContent(m.content[m.active])
			m.viewport.GotoTop()
			return m, nil
		case "shift+tab", "left", "h":
			m.active = (m.active + viewCount - 1) % viewCount
			m.viewport.SetContent(m.content[m.active])
			m.viewport.GotoTop()
			return m, nil
		}

	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.content[m.active])
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

func (m model) headerView() string {
	major, minor := m.header.VersionMajorMinor()
	title := titleStyle.Render(fmt.Sprintf("%s — SPIR-V %d.%d, bound %d, %s",
		m.path, major, minor, m.header.Bound, m.stage))

	var tabs []string
	for v := view(0); v < viewCount; v++ {
		style := tabStyle
		if v == m.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(v.title()))
	}
	return title + "\n" + strings.Join(tabs, "|")
}

func (m model) footerView() string {
	return helpStyle.Render(fmt.Sprintf("  %3.0f%%  tab: switch view · ↑/↓: scroll · q: quit",
		m.viewport.ScrollPercent()*100))
}

func renderInstructions(instructions []decode.Instruction) string {
	var sb strings.Builder
	for i, inst := range instructions {
		fmt.Fprintf(&sb, "%s %s", idStyle.Render(fmt.Sprintf("%5d", i)), inst.Opcode)
		for _, w := range inst.Operands {
			fmt.Fprintf(&sb, " %d", w)
		}
		if inst.String != "" {
			fmt.Fprintf(&sb, " %q", inst.String)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func renderTypes(tbl *symtab.Table) string {
	ids := make([]uint32, 0, len(tbl.Types))
	for id := range tbl.Types {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder
	for _, id := range ids {
		t := tbl.Types[id]
		fmt.Fprintf(&sb, "%s %s", idStyle.Render(fmt.Sprintf("%%%d", id)), t.Name)
		if t.IsPointer {
			sb.WriteString(" pointer")
		}
		if t.IsArray {
			fmt.Fprintf(&sb, " array[%d]", t.Length)
		}
		for _, member := range t.Members {
			fmt.Fprintf(&sb, "\n\t%s %s", member.Type.Name, member.Name)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func renderVariables(tbl *symtab.Table) string {
	vars := varlist.ToSlice(tbl)
	if len(vars) == 0 {
		return "no named interface variables\n"
	}
	var sb strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&sb, "%s %s %s\n", v.Qualifier, v.Type, v.Name)
	}
	return sb.String()
}
