package browser

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/repromptsquest/repmt/internal/tui/browser/components/confirm"
	"github.com/repromptsquest/repmt/internal/tui/theme"
	"github.com/repromptsquest/repmt/pkg/export"
	"github.com/repromptsquest/repmt/pkg/models"
	"github.com/repromptsquest/repmt/pkg/service"
)

// displayNode is a single visible row in the tree view.
type displayNode struct {
	node  *models.FileNode
	depth int
}

// Model is the main model for the file selection TUI.
type Model struct {
	service *service.Service
	root    string

	tree  *models.FileNode
	nodes map[string]*models.FileNode

	displayNodes []*displayNode
	cursor       int
	scrollOffset int
	collapsed    map[string]bool
	lastKey      string // for detecting the 'gg' sequence

	// Selection state. selectionOrder preserves the order files were
	// chosen in; it is the order they appear in the prompt.
	selected       map[string]struct{}
	selectionOrder []string
	promptType     models.PromptType

	// Filter state
	filterInput textinput.Model
	isFiltering bool
	filterQuery string

	// Prompt type picker
	typePicker  list.Model
	pickingType bool

	// Preview pane
	previewing  bool
	previewText string

	// Export state
	confirm       confirm.Model
	exportOpts    export.Options
	pendingExport *export.Options
	exporting     bool

	keys          KeyMap
	help          help.Model
	width         int
	height        int
	statusMessage string
	err           error

	// TempMode quits after the first successful export so the caller can
	// run the self-uninstall step.
	TempMode bool
	Exported bool
}

// New creates the selection TUI model for a scanned repository root.
func New(svc *service.Service, root string, opts export.Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Filter files..."
	ti.CharLimit = 100

	items := make([]list.Item, 0, len(svc.Registry.Types()))
	for _, pt := range svc.Registry.Types() {
		items = append(items, promptTypeItem(pt))
	}
	picker := list.New(items, promptTypeDelegate{}, 40, len(items)+4)
	picker.Title = "Select Prompt Type"
	picker.SetShowHelp(false)
	picker.SetShowStatusBar(false)
	picker.SetShowPagination(false)
	picker.SetFilteringEnabled(false)

	promptType := svc.Config.PromptType
	if promptType == "" {
		promptType = models.PromptTypeGPTContext
	}

	return Model{
		service:     svc,
		root:        root,
		collapsed:   make(map[string]bool),
		selected:    make(map[string]struct{}),
		promptType:  promptType,
		filterInput: ti,
		typePicker:  picker,
		confirm:     confirm.New(),
		exportOpts:  opts,
		keys:        keys,
		help:        help.New(),
	}
}

// Init kicks off the repository scan.
func (m Model) Init() tea.Cmd {
	return scanCmd(m.service, m.root)
}

// Err returns the fatal error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Selection returns the current selection in pick order.
func (m Model) Selection() *models.Selection {
	return &models.Selection{
		Root:       m.root,
		Paths:      append([]string(nil), m.selectionOrder...),
		PromptType: m.promptType,
	}
}

// promptTypeItem implements list.Item for the prompt type picker.
type promptTypeItem models.PromptType

func (i promptTypeItem) FilterValue() string { return string(i) }
func (i promptTypeItem) Title() string       { return string(i) }
func (i promptTypeItem) Description() string { return "" }

// promptTypeDelegate is a compact single-line delegate for the picker.
type promptTypeDelegate struct{}

func (d promptTypeDelegate) Height() int                             { return 1 }
func (d promptTypeDelegate) Spacing() int                            { return 0 }
func (d promptTypeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d promptTypeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(promptTypeItem)
	if !ok {
		return
	}

	str := string(i)
	if index == m.Index() {
		str = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Orange).Render("│ " + str)
	} else {
		str = "  " + str
	}

	fmt.Fprint(w, str)
}
