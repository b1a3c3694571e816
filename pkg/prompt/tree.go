package prompt

import (
	"sort"
	"strings"
)

// treeNode is an intermediate structure for rendering a textual tree from
// a flat list of relative paths.
type treeNode struct {
	dirs  map[string]*treeNode
	files []string
}

func newTreeNode() *treeNode {
	return &treeNode{dirs: make(map[string]*treeNode)}
}

// RenderTree builds an indented textual directory tree from relative
// paths. Directories are suffixed with "/", entries are sorted, and each
// level indents by four spaces.
func RenderTree(relPaths []string) string {
	root := newTreeNode()
	for _, p := range relPaths {
		parts := strings.Split(p, "/")
		node := root
		for i, part := range parts {
			if i == len(parts)-1 {
				node.files = append(node.files, part)
				continue
			}
			child, ok := node.dirs[part]
			if !ok {
				child = newTreeNode()
				node.dirs[part] = child
			}
			node = child
		}
	}

	var b strings.Builder
	renderTreeLevel(&b, root, 0)
	return strings.TrimRight(b.String(), "\n")
}

func renderTreeLevel(b *strings.Builder, node *treeNode, depth int) {
	indent := strings.Repeat(" ", 4*depth)

	names := make([]string, 0, len(node.dirs))
	for name := range node.dirs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(indent + name + "/\n")
		renderTreeLevel(b, node.dirs[name], depth+1)
	}

	files := append([]string(nil), node.files...)
	sort.Strings(files)
	for _, f := range files {
		b.WriteString(indent + f + "\n")
	}
}
