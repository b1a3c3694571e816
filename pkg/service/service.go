package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/repromptsquest/repmt/pkg/analyzer"
	"github.com/repromptsquest/repmt/pkg/export"
	"github.com/repromptsquest/repmt/pkg/history"
	"github.com/repromptsquest/repmt/pkg/models"
	"github.com/repromptsquest/repmt/pkg/prompt"
	"github.com/repromptsquest/repmt/pkg/scanner"
)

// Config holds service configuration, resolved by cmd/config from viper.
type Config struct {
	DataDir         string
	Format          export.Format
	PromptType      models.PromptType
	MaxPromptLength int
	MaxFileSize     int64
	Include         []string
	Exclude         []string
	TemplatesFile   string
}

// Service wires the scan → analyze → format → export pipeline together.
type Service struct {
	Config    *Config
	Registry  *prompt.Registry
	Analyzer  *analyzer.Analyzer
	Formatter *prompt.Formatter
	Exporter  *export.Exporter
	History   *history.Store

	log *logrus.Logger
}

// New creates the service. The history store is optional at runtime:
// when it cannot be opened, exports still work and the failure is logged.
func New(cfg *Config, log *logrus.Logger) (*Service, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	registry := prompt.NewRegistry()
	if cfg.TemplatesFile != "" {
		if err := registry.LoadOverrides(cfg.TemplatesFile); err != nil {
			return nil, fmt.Errorf("load template overrides: %w", err)
		}
	}

	an := analyzer.New(log)
	if cfg.MaxFileSize > 0 {
		an.MaxFileSize = cfg.MaxFileSize
	}
	if cfg.MaxPromptLength > 0 {
		an.MaxChars = cfg.MaxPromptLength
	}

	formatter := prompt.NewFormatter(registry, an, log)
	if cfg.MaxPromptLength > 0 {
		formatter.MaxChars = cfg.MaxPromptLength
	}

	svc := &Service{
		Config:    cfg,
		Registry:  registry,
		Analyzer:  an,
		Formatter: formatter,
		Exporter:  export.New(log),
		log:       log,
	}

	if cfg.DataDir != "" {
		store, err := history.NewStore(cfg.DataDir)
		if err != nil {
			log.WithError(err).Warn("history disabled: cannot open store")
		} else {
			svc.History = store
		}
	}

	return svc, nil
}

// Scan walks the repository rooted at root and returns the file tree.
func (s *Service) Scan(root string) (*models.FileNode, error) {
	sc, err := scanner.New(root, scanner.WithLogger(s.log))
	if err != nil {
		return nil, err
	}
	return sc.Scan()
}

// IndexTree flattens a scanned tree into a relative-path lookup map.
func IndexTree(root *models.FileNode) map[string]*models.FileNode {
	nodes := make(map[string]*models.FileNode)
	var walk func(n *models.FileNode)
	walk = func(n *models.FileNode) {
		if n.RelPath != "." {
			nodes[n.RelPath] = n
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return nodes
}

// SelectFiles scans root and returns the relative paths of all files
// passing the include/exclude filters, in tree order, together with the
// path index. This is the non-interactive counterpart of the TUI's
// selection step.
func (s *Service) SelectFiles(root string, include, exclude []string) ([]string, map[string]*models.FileNode, error) {
	tree, err := s.Scan(root)
	if err != nil {
		return nil, nil, err
	}
	nodes := IndexTree(tree)

	var rels []string
	for _, f := range tree.Files() {
		rels = append(rels, f.RelPath)
	}
	rels = prompt.FilterPaths(rels, include, exclude)
	return rels, nodes, nil
}

// Generate formats a selection into a prompt.
func (s *Service) Generate(sel *models.Selection, nodes map[string]*models.FileNode) (*models.GeneratedPrompt, error) {
	return s.Formatter.Format(sel, nodes)
}

// Export delivers a prompt and records it in the history store. History
// failures are logged, never returned.
func (s *Service) Export(p *models.GeneratedPrompt, opts export.Options) error {
	if err := s.Exporter.Export(p, opts); err != nil {
		return err
	}
	if s.History != nil {
		if err := s.History.Record(p, string(opts.Format), opts.Destination()); err != nil {
			s.log.WithError(err).Warn("could not record prompt in history")
		}
	}
	return nil
}

// AggregateImports scans root and returns the union of Python imports
// across all (filtered) files.
func (s *Service) AggregateImports(root string, include, exclude []string) ([]string, error) {
	rels, nodes, err := s.SelectFiles(root, include, exclude)
	if err != nil {
		return nil, err
	}
	var results []*analyzer.Result
	for _, rel := range rels {
		node := nodes[rel]
		if node == nil || !node.IsPython() {
			continue
		}
		results = append(results, s.Analyzer.Analyze(node))
	}
	return analyzer.AggregateImports(results), nil
}

// Close releases service resources.
func (s *Service) Close() error {
	if s.History != nil {
		return s.History.Close()
	}
	return nil
}
