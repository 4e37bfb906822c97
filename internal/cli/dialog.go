package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ose-d3d/frame/catalog"
	"github.com/ose-d3d/frame/internal/config"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	formErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// form fields in focus order.
const (
	fieldLX = iota
	fieldLY
	fieldLZ
	fieldPipe
	fieldCorner
	fieldSolid
	numFields
)

var fieldLabels = [numFields]string{"LX", "LY", "LZ", "Pipe", "Corner", "Create solid"}

// partList is a scrolling list for picking a catalog part.
type partList struct {
	title  string
	names  []string
	cursor int
	offset int
	height int
}

func newPartList(title string, t *catalog.Table, current string) *partList {
	l := &partList{title: title, names: t.Names(), height: 10}
	for i, name := range l.names {
		if name == current {
			l.cursor = i
		}
	}
	l.scroll()
	return l
}

func (l *partList) scroll() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
}

func (l *partList) view(b *strings.Builder) {
	b.WriteString(StyleTitle.Render(l.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  esc back"))
	b.WriteString("\n\n")
	end := min(l.offset+l.height, len(l.names))
	for i := l.offset; i < end; i++ {
		if i == l.cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + l.names[i]))
		} else {
			b.WriteString(listNormalStyle.Render("  " + l.names[i]))
		}
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("\n  [%d/%d]", l.cursor+1, len(l.names))))
}

// DialogModel is the bubbletea model of the frame input form.
type DialogModel struct {
	Input    config.Input
	Accepted bool

	pipes, corners *catalog.Table
	focus          int
	list           *partList
	err            error
}

// NewDialogModel returns a form showing in. Part lists are picked from
// pipes and corners.
func NewDialogModel(in config.Input, pipes, corners *catalog.Table) DialogModel {
	return DialogModel{Input: in, pipes: pipes, corners: corners}
}

func (m DialogModel) Init() tea.Cmd {
	return nil
}

func (m *DialogModel) text(field int) *string {
	switch field {
	case fieldLX:
		return &m.Input.LX
	case fieldLY:
		return &m.Input.LY
	case fieldLZ:
		return &m.Input.LZ
	case fieldPipe:
		return &m.Input.PipeName
	case fieldCorner:
		return &m.Input.CornerName
	}
	return nil
}

func (m DialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if size, ok := msg.(tea.WindowSizeMsg); ok && m.list != nil {
			m.list.height = max(5, size.Height-6)
		}
		return m, nil
	}
	if m.list != nil {
		return m.updateList(key)
	}
	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "shift+tab":
		m.focus = (m.focus + numFields - 1) % numFields
	case "down", "tab":
		m.focus = (m.focus + 1) % numFields
	case "ctrl+o":
		switch m.focus {
		case fieldPipe:
			m.list = newPartList("Select Pipe", m.pipes, m.Input.PipeName)
		case fieldCorner:
			m.list = newPartList("Select Corner", m.corners, m.Input.CornerName)
		}
	case "enter":
		if m.err = m.Input.Validate(); m.err == nil {
			m.Accepted = true
			return m, tea.Quit
		}
	case "backspace":
		if s := m.text(m.focus); s != nil && len(*s) > 0 {
			r := []rune(*s)
			*s = string(r[:len(r)-1])
		}
	case " ":
		if m.focus == fieldSolid {
			m.Input.CreateSolid = !m.Input.CreateSolid
		} else if s := m.text(m.focus); s != nil {
			*s += " "
		}
	default:
		if s := m.text(m.focus); s != nil && key.Type == tea.KeyRunes {
			*s += string(key.Runes)
		}
	}
	return m, nil
}

func (m DialogModel) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.list
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.list = nil
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(l.names)-1 {
			l.cursor++
		}
	case "enter":
		if len(l.names) > 0 {
			*m.text(m.focus) = l.names[l.cursor]
		}
		m.list = nil
		return m, nil
	}
	l.scroll()
	return m, nil
}

func (m DialogModel) View() string {
	var b strings.Builder
	if m.list != nil {
		m.list.view(&b)
		return b.String()
	}
	b.WriteString(StyleTitle.Render("Frame"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ field  ctrl+o pick part  space toggle  ⏎ create  esc cancel"))
	b.WriteString("\n\n")
	label := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	for f := 0; f < numFields; f++ {
		var value string
		if s := m.text(f); s != nil {
			value = *s
		} else if m.Input.CreateSolid {
			value = "[x]"
		} else {
			value = "[ ]"
		}
		cursor, style := "  ", listNormalStyle
		if f == m.focus {
			cursor, style = "▸ ", listSelectedStyle
			if m.text(f) != nil {
				value += "_"
			}
		}
		b.WriteString(cursor + label.Render(fieldLabels[f]) + style.Render(value) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + formErrorStyle.Render(m.err.Error()) + "\n")
	}
	return b.String()
}

func (c *CLI) dialogCommand() *cobra.Command {
	var ef exportFlags
	cmd := &cobra.Command{
		Use:   "dialog",
		Short: "Enter frame dimensions and parts interactively",
		Long: `Enter frame dimensions and parts in a form. The input is restored from
and saved to the settings directory so the next run starts where this one
ended.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipes, corners, err := c.catalogs()
			if err != nil {
				return err
			}
			path, err := c.inputPath()
			if err != nil {
				return err
			}
			in, err := config.LoadInput(path)
			if err != nil {
				c.Logger.Warn("ignoring saved input", "err", err)
			}

			final, err := tea.NewProgram(NewDialogModel(in, pipes, corners),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return err
			}
			m := final.(DialogModel)
			if !m.Accepted {
				return errors.New("dialog cancelled")
			}
			in = m.Input
			ef.solid = in.CreateSolid

			a, err := c.inputFrame(in)
			if err != nil {
				return err
			}
			if err := c.export(cmd, a, ef); err != nil {
				return err
			}
			// remember the input for the next run.
			if err := config.SaveInput(path, in); err != nil {
				c.Logger.Warn("input not saved", "err", err)
			}
			return nil
		},
	}
	ef.register(cmd)
	cmd.Flags().MarkHidden("solid")
	return cmd
}
