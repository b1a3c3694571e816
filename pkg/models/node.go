package models

import (
	"strings"
	"time"
)

// NodeKind distinguishes files from directories in the scanned tree.
type NodeKind string

const (
	KindFile NodeKind = "file"
	KindDir  NodeKind = "dir"
)

// FileNode represents a single entry in the scanned repository tree.
type FileNode struct {
	Path       string    `json:"path"`     // absolute path on disk
	RelPath    string    `json:"rel_path"` // path relative to the scan root, slash-separated
	Name       string    `json:"name"`
	Kind       NodeKind  `json:"kind"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
	Depth      int       `json:"depth"` // 0 for direct children of the root

	// Parent is a non-owning back reference; nil only for the root.
	Parent *FileNode `json:"-"`

	Children []*FileNode `json:"children,omitempty"`
}

// IsDir reports whether the node is a directory.
func (n *FileNode) IsDir() bool {
	return n.Kind == KindDir
}

// IsPython reports whether the node is a Python source file.
func (n *FileNode) IsPython() bool {
	return n.Kind == KindFile && strings.HasSuffix(strings.ToLower(n.Name), ".py")
}

// Files returns the file nodes of the subtree rooted at n, in tree order.
func (n *FileNode) Files() []*FileNode {
	var out []*FileNode
	var walk func(node *FileNode)
	walk = func(node *FileNode) {
		if !node.IsDir() {
			out = append(out, node)
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}
