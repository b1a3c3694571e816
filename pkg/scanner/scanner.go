package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/repromptsquest/repmt/pkg/models"
)

// ErrPathNotFound is returned when the scan root does not exist or is not
// a directory.
var ErrPathNotFound = errors.New("path not found")

// defaultIgnoreFolders are directory names that are never descended into.
var defaultIgnoreFolders = map[string]bool{
	"node_modules":   true,
	".git":           true,
	".venv":          true,
	"venv":           true,
	"env":            true,
	"__pycache__":    true,
	".mypy_cache":    true,
	"dist":           true,
	"build":          true,
	".next":          true,
	"Pods":           true,
	"Carthage":       true,
	"DerivedData":    true,
	"target":         true,
	"repmt.egg-info": true,
}

// defaultIgnoreSuffixes are filename suffixes excluded from scanning.
// Matched as suffixes rather than via filepath.Ext so compound forms like
// .tar.gz and .min.js work.
var defaultIgnoreSuffixes = []string{
	".pyc", ".class", ".jar", ".so", ".dll", ".exe", ".o",
	".jpg", ".jpeg", ".png", ".gif", ".mp4", ".zip", ".tar.gz", ".db",
	".sqlite", ".ico", ".ttf", ".woff", ".pdf", ".min.js", ".map",
}

// Scanner enumerates a repository's files, skipping ignored folders,
// binary-ish extensions and Python virtualenvs.
type Scanner struct {
	root           string
	ignoreFolders  map[string]bool
	ignoreSuffixes []string
	log            *logrus.Logger
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for skip diagnostics.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Scanner) { s.log = log }
}

// WithExtraIgnoreFolders adds folder names to the ignore set.
func WithExtraIgnoreFolders(names ...string) Option {
	return func(s *Scanner) {
		for _, n := range names {
			s.ignoreFolders[n] = true
		}
	}
}

// New creates a scanner for the given root directory. It fails with
// ErrPathNotFound before any traversal when the root is missing or not a
// directory.
func New(root string, opts ...Option) (*Scanner, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, root)
	}

	folders := make(map[string]bool, len(defaultIgnoreFolders))
	for k := range defaultIgnoreFolders {
		folders[k] = true
	}

	s := &Scanner{
		root:           abs,
		ignoreFolders:  folders,
		ignoreSuffixes: defaultIgnoreSuffixes,
		log:            logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the absolute scan root.
func (s *Scanner) Root() string {
	return s.root
}

// Walk streams file nodes to fn in lexical order. The walk is lazy and
// restartable: each call re-reads the filesystem. Directories are not
// reported; use Scan for the full tree.
func (s *Scanner) Walk(fn func(*models.FileNode) error) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == s.root {
			return nil
		}
		if d.IsDir() {
			if s.skipDir(path, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.skipFile(d.Name()) {
			return nil
		}
		node, err := s.newNode(path, d)
		if err != nil {
			s.log.WithError(err).Debugf("skipping %s", path)
			return nil
		}
		return fn(node)
	})
}

// Scan walks the repository and returns the root of the assembled tree.
// Directory nodes carry their children sorted directories-first, then by
// name.
func (s *Scanner) Scan() (*models.FileNode, error) {
	root := &models.FileNode{
		Path:    s.root,
		RelPath: ".",
		Name:    filepath.Base(s.root),
		Kind:    models.KindDir,
		Depth:   -1,
	}
	dirs := map[string]*models.FileNode{".": root}

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == s.root {
			return nil
		}
		if d.IsDir() {
			if s.skipDir(path, d.Name()) {
				return filepath.SkipDir
			}
			node, err := s.newNode(path, d)
			if err != nil {
				return filepath.SkipDir
			}
			dirs[node.RelPath] = node
			s.attach(dirs, node)
			return nil
		}
		if s.skipFile(d.Name()) {
			return nil
		}
		node, err := s.newNode(path, d)
		if err != nil {
			s.log.WithError(err).Debugf("skipping %s", path)
			return nil
		}
		s.attach(dirs, node)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.root, err)
	}

	sortTree(root)
	pruneEmptyDirs(root)
	return root, nil
}

func (s *Scanner) attach(dirs map[string]*models.FileNode, node *models.FileNode) {
	parentRel := filepath.ToSlash(filepath.Dir(filepath.FromSlash(node.RelPath)))
	parent, ok := dirs[parentRel]
	if !ok {
		parent = dirs["."]
	}
	node.Parent = parent
	parent.Children = append(parent.Children, node)
}

func (s *Scanner) newNode(path string, d fs.DirEntry) (*models.FileNode, error) {
	info, err := d.Info()
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)
	kind := models.KindFile
	if d.IsDir() {
		kind = models.KindDir
	}
	return &models.FileNode{
		Path:       path,
		RelPath:    rel,
		Name:       d.Name(),
		Kind:       kind,
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
		Depth:      strings.Count(rel, "/"),
	}, nil
}

func (s *Scanner) skipDir(path, name string) bool {
	if s.ignoreFolders[name] {
		return true
	}
	return isVirtualEnv(path)
}

func (s *Scanner) skipFile(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range s.ignoreSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// isVirtualEnv reports whether dir is a Python virtual environment,
// identified by the pyvenv.cfg marker file.
func isVirtualEnv(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "pyvenv.cfg"))
	return err == nil
}

func sortTree(node *models.FileNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return a.Name < b.Name
	})
	for _, c := range node.Children {
		if c.IsDir() {
			sortTree(c)
		}
	}
}

func pruneEmptyDirs(node *models.FileNode) {
	kept := node.Children[:0]
	for _, c := range node.Children {
		if c.IsDir() {
			pruneEmptyDirs(c)
			if len(c.Children) == 0 {
				continue
			}
		}
		kept = append(kept, c)
	}
	node.Children = kept
}
