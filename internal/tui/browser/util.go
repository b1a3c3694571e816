package browser

import (
	"strings"

	"github.com/repromptsquest/repmt/pkg/models"
)

// rebuildDisplayNodes flattens the scanned tree into visible rows,
// honoring collapsed directories and the filter query.
func (m *Model) rebuildDisplayNodes() {
	m.displayNodes = nil
	if m.tree == nil {
		return
	}

	query := strings.ToLower(m.filterQuery)

	var visit func(node *models.FileNode, depth int)
	visit = func(node *models.FileNode, depth int) {
		m.displayNodes = append(m.displayNodes, &displayNode{node: node, depth: depth})
		if node.IsDir() && !m.collapsed[node.RelPath] {
			for _, c := range node.Children {
				if query != "" && !subtreeMatches(c, query) {
					continue
				}
				visit(c, depth+1)
			}
		}
	}

	for _, c := range m.tree.Children {
		if query != "" && !subtreeMatches(c, query) {
			continue
		}
		visit(c, 0)
	}

	if m.cursor >= len(m.displayNodes) {
		m.cursor = len(m.displayNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

// subtreeMatches reports whether the node or any descendant matches the
// filter query.
func subtreeMatches(node *models.FileNode, query string) bool {
	if strings.Contains(strings.ToLower(node.RelPath), query) {
		return true
	}
	for _, c := range node.Children {
		if subtreeMatches(c, query) {
			return true
		}
	}
	return false
}

// selectionState classifies a directory's subtree: none, some or all
// files selected.
type selectionState int

const (
	selNone selectionState = iota
	selPartial
	selAll
)

func (m *Model) dirSelectionState(node *models.FileNode) selectionState {
	files := node.Files()
	if len(files) == 0 {
		return selNone
	}
	count := 0
	for _, f := range files {
		if _, ok := m.selected[f.RelPath]; ok {
			count++
		}
	}
	switch count {
	case 0:
		return selNone
	case len(files):
		return selAll
	default:
		return selPartial
	}
}

func (m *Model) getViewportHeight() int {
	// header + spacing + footer
	h := m.height - 6
	if m.previewing {
		h -= m.previewHeight() + 2
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) previewHeight() int {
	h := m.height / 3
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) clampScroll() {
	viewport := m.getViewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+viewport {
		m.scrollOffset = m.cursor - viewport + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}
