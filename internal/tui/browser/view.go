package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/repromptsquest/repmt/internal/tui/theme"
)

// View renders the full TUI frame.
func (m Model) View() string {
	if m.tree == nil {
		return "Scanning repository..."
	}

	if m.confirm.Active {
		return "\n" + m.confirm.View()
	}

	if m.pickingType {
		return "\n" + m.typePicker.View()
	}

	header := m.renderHeader()
	content := m.renderTree()
	footer := m.renderFooter()

	sections := []string{header, "", content}
	if m.previewing {
		sections = append(sections, "", m.renderPreview())
	}
	sections = append(sections, "", footer)

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := theme.DefaultTheme.Header.Render("repmt — " + m.tree.Name)
	info := theme.DefaultTheme.Info.Render(
		fmt.Sprintf("[%s] %d selected", m.promptType, len(m.selected)))
	line := title + "  " + info
	if m.filterQuery != "" {
		line += "  " + theme.DefaultTheme.Muted.Render("filter: "+m.filterQuery)
	}
	if m.TempMode {
		line += "  " + theme.DefaultTheme.Error.Render("[temp]")
	}
	return line
}

func (m Model) renderTree() string {
	var b strings.Builder

	if m.isFiltering {
		b.WriteString(m.filterInput.View() + "\n\n")
	}

	if len(m.displayNodes) == 0 {
		b.WriteString(theme.DefaultTheme.Muted.Render("No matching files."))
		return b.String()
	}

	viewportHeight := m.getViewportHeight()
	start := m.scrollOffset
	end := m.scrollOffset + viewportHeight
	if end > len(m.displayNodes) {
		end = len(m.displayNodes)
	}

	for i := start; i < end; i++ {
		dn := m.displayNodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}
		indent := strings.Repeat("  ", dn.depth)

		var line string
		if dn.node.IsDir() {
			fold := "▼ "
			if m.collapsed[dn.node.RelPath] {
				fold = "▶ "
			}
			marker := ""
			switch m.dirSelectionState(dn.node) {
			case selAll:
				marker = theme.DefaultTheme.Selected.Render("■ ")
			case selPartial:
				marker = theme.DefaultTheme.Info.Render("◪ ")
			}
			line = fmt.Sprintf("%s%s%s%s%s/", cursor, indent, fold, marker, dn.node.Name)
			if i == m.cursor {
				line = lipgloss.NewStyle().Bold(true).Render(line)
			}
		} else {
			marker := "▢ "
			if _, ok := m.selected[dn.node.RelPath]; ok {
				marker = theme.DefaultTheme.Selected.Render("■ ")
			}
			line = fmt.Sprintf("%s%s%s%s", cursor, indent, marker, dn.node.Name)
			if i == m.cursor {
				line = theme.DefaultTheme.Selected.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.displayNodes) > viewportHeight {
		b.WriteString(theme.DefaultTheme.Muted.Render(
			fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.displayNodes))))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderPreview() string {
	text := m.previewText
	lines := strings.Split(text, "\n")
	max := m.previewHeight()
	if len(lines) > max {
		lines = append(lines[:max], "…")
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DefaultTheme.Colors.Gray).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
	return box
}

func (m Model) renderFooter() string {
	var parts []string
	if m.statusMessage != "" {
		parts = append(parts, theme.DefaultTheme.Info.Render(m.statusMessage))
	}
	parts = append(parts, m.help.View(m.keys))
	return strings.Join(parts, "\n")
}
