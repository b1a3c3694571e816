package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/repromptsquest/repmt/internal/tui/browser/components/confirm"
	"github.com/repromptsquest/repmt/pkg/export"
	"github.com/repromptsquest/repmt/pkg/models"
)

// Update handles all TUI messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case scanLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.tree = msg.tree
		m.nodes = msg.nodes
		m.rebuildDisplayNodes()
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Export failed: %v", msg.err)
			return m, nil
		}
		m.Exported = true
		m.statusMessage = fmt.Sprintf("Exported %d files (%d bytes) to %s",
			msg.prompt.FileCount, msg.prompt.ByteSize, msg.destination)
		if failed := msg.prompt.FailedFiles(); len(failed) > 0 {
			m.statusMessage += fmt.Sprintf(" — %d file(s) skipped", len(failed))
		}
		if m.TempMode {
			return m, tea.Quit
		}
		return m, nil

	case previewLoadedMsg:
		m.previewing = true
		m.previewText = msg.text
		m.rebuildDisplayNodes()
		return m, nil

	case confirm.ConfirmedMsg:
		if m.pendingExport != nil {
			opts := *m.pendingExport
			m.pendingExport = nil
			m.exporting = true
			m.statusMessage = "Exporting..."
			return m, exportCmd(m.service, m.Selection(), m.nodes, opts)
		}
		return m, nil

	case confirm.CancelledMsg:
		m.pendingExport = nil
		m.statusMessage = "Export cancelled"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal components get the keys first.
	if m.confirm.Active {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
	if m.pickingType {
		return m.handleTypePickerKey(msg)
	}
	if m.isFiltering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.clampScroll()
		}
		m.lastKey = ""
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.displayNodes)-1 {
			m.cursor++
			m.clampScroll()
		}
		m.lastKey = ""
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.getViewportHeight()
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.getViewportHeight()
		if m.cursor > len(m.displayNodes)-1 {
			m.cursor = len(m.displayNodes) - 1
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.GoToTop):
		// vim-style gg sequence
		if m.lastKey == "g" {
			m.cursor = 0
			m.scrollOffset = 0
			m.lastKey = ""
		} else {
			m.lastKey = "g"
		}
		return m, nil

	case key.Matches(msg, m.keys.GoToBottom):
		m.cursor = len(m.displayNodes) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.clampScroll()
		m.lastKey = ""
		return m, nil

	case key.Matches(msg, m.keys.ToggleFold):
		if dn := m.currentNode(); dn != nil && dn.node.IsDir() {
			rel := dn.node.RelPath
			m.collapsed[rel] = !m.collapsed[rel]
			m.rebuildDisplayNodes()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleSelect):
		if dn := m.currentNode(); dn != nil {
			m.toggleSelection(dn.node)
		}
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		query := strings.ToLower(m.filterQuery)
		for _, dn := range m.displayNodes {
			if !dn.node.IsDir() {
				m.selectPath(dn.node.RelPath)
				continue
			}
			// A filtered-out file stays unselected even when its
			// directory row is visible.
			for _, f := range dn.node.Files() {
				if query != "" && !strings.Contains(strings.ToLower(f.RelPath), query) {
					continue
				}
				m.selectPath(f.RelPath)
			}
		}
		m.statusMessage = fmt.Sprintf("%d files selected", len(m.selected))
		return m, nil

	case key.Matches(msg, m.keys.SelectNone):
		m.selected = make(map[string]struct{})
		m.selectionOrder = nil
		m.statusMessage = "Selection cleared"
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.isFiltering = true
		m.filterInput.SetValue(m.filterQuery)
		m.filterInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.PromptType):
		m.pickingType = true
		return m, nil

	case key.Matches(msg, m.keys.Preview):
		if m.previewing {
			m.previewing = false
			m.previewText = ""
			m.rebuildDisplayNodes()
			return m, nil
		}
		if dn := m.currentNode(); dn != nil && !dn.node.IsDir() {
			return m, previewCmd(m.service, dn.node)
		}
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m.startExport(m.exportOpts)

	case key.Matches(msg, m.keys.Copy):
		opts := m.exportOpts
		opts.Clipboard = true
		opts.OutputPath = ""
		if len(m.selectionOrder) == 0 {
			m.statusMessage = "No files selected"
			return m, nil
		}
		m.exporting = true
		m.statusMessage = "Copying..."
		return m, exportCmd(m.service, m.Selection(), m.nodes, opts)
	}

	m.lastKey = ""
	return m, nil
}

func (m Model) startExport(opts export.Options) (tea.Model, tea.Cmd) {
	if len(m.selectionOrder) == 0 {
		m.statusMessage = "No files selected"
		return m, nil
	}
	m.pendingExport = &opts
	m.confirm.Activate(fmt.Sprintf("Export %d files as %q to %s?",
		len(m.selectionOrder), m.promptType, opts.Destination()))
	return m, nil
}

func (m Model) handleTypePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if item, ok := m.typePicker.SelectedItem().(promptTypeItem); ok {
			m.promptType = models.PromptType(item)
			m.statusMessage = fmt.Sprintf("Prompt type: %s", m.promptType)
		}
		m.pickingType = false
		return m, nil
	case "esc", "q":
		m.pickingType = false
		return m, nil
	}

	var cmd tea.Cmd
	m.typePicker, cmd = m.typePicker.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filterQuery = m.filterInput.Value()
		m.isFiltering = false
		m.filterInput.Blur()
		m.cursor = 0
		m.scrollOffset = 0
		m.rebuildDisplayNodes()
		return m, nil
	case "esc":
		m.isFiltering = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) currentNode() *displayNode {
	if m.cursor < 0 || m.cursor >= len(m.displayNodes) {
		return nil
	}
	return m.displayNodes[m.cursor]
}

// toggleSelection toggles a file, or a whole subtree when given a
// directory.
func (m *Model) toggleSelection(node *models.FileNode) {
	if !node.IsDir() {
		if _, ok := m.selected[node.RelPath]; ok {
			m.deselectPath(node.RelPath)
		} else {
			m.selectPath(node.RelPath)
		}
		return
	}

	files := node.Files()
	if m.dirSelectionState(node) == selAll {
		for _, f := range files {
			m.deselectPath(f.RelPath)
		}
	} else {
		for _, f := range files {
			m.selectPath(f.RelPath)
		}
	}
}

func (m *Model) selectPath(rel string) {
	if _, ok := m.selected[rel]; ok {
		return
	}
	m.selected[rel] = struct{}{}
	m.selectionOrder = append(m.selectionOrder, rel)
}

func (m *Model) deselectPath(rel string) {
	if _, ok := m.selected[rel]; !ok {
		return
	}
	delete(m.selected, rel)
	for i, p := range m.selectionOrder {
		if p == rel {
			m.selectionOrder = append(m.selectionOrder[:i], m.selectionOrder[i+1:]...)
			break
		}
	}
}
