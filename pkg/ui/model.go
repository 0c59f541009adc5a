// Package ui is the terminal host for the word cloud and the sentiment tree.
//
// The model owns no view state of its own beyond cursors and overlays: every
// transition goes through a view.Coordinator, and fetches run as tea.Cmds
// whose results are handed back to it.
package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/wordtree/internal/datasource"
	"github.com/vanderheijden86/wordtree/pkg/cloud"
	"github.com/vanderheijden86/wordtree/pkg/debug"
	"github.com/vanderheijden86/wordtree/pkg/expansion"
	"github.com/vanderheijden86/wordtree/pkg/export"
	"github.com/vanderheijden86/wordtree/pkg/model"
	"github.com/vanderheijden86/wordtree/pkg/scene"
	"github.com/vanderheijden86/wordtree/pkg/treelayout"
	"github.com/vanderheijden86/wordtree/pkg/view"
	"github.com/vanderheijden86/wordtree/pkg/watcher"
)

// Default terminal size until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 40
)

// FileChangedMsg reports that the dataset file changed on disk.
type FileChangedMsg struct{}

type frequenciesMsg struct {
	req     view.FrequencyRequest
	entries []model.FrequencyEntry
	err     error
}

type treeMsg struct {
	req  view.Request
	tree *model.TreeNode
	err  error
}

type resizedMsg struct{}

type savedMsg struct {
	path string
	err  error
}

// Options configures a Model.
type Options struct {
	Source         datasource.Source
	Filter         model.FilterCriteria
	Cloud          cloud.NormalizeOptions
	Padding        float64
	Fullscreen     bool
	ResizeDebounce time.Duration
	OutputDir      string
	Format         export.Format
	Watcher        *watcher.Watcher // optional, enables reload on change
}

// Model is the bubbletea model.
type Model struct {
	ctx     context.Context
	src     datasource.Source
	coord   *view.Coordinator
	resizer *view.Resizer
	resized chan struct{}
	watcher *watcher.Watcher
	reload  reloader
	theme   Theme

	width, height int
	sized         bool

	words       []model.LayoutWord
	cloudCursor int
	nodes       []treelayout.PositionedNode
	treeCursor  int
	treeOffset  int

	scene scene.Scene
	diff  scene.Diff

	statusMsg     string
	statusIsError bool

	showHelp    bool
	help        viewport.Model
	showPreview bool

	outputDir string
	format    export.Format
}

// NewModel returns a model showing the cloud for opts.Filter.
func NewModel(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	coord := view.New(view.Options{
		Container:  containerFor(defaultWidth, defaultHeight),
		Fullscreen: opts.Fullscreen,
		Filter:     opts.Filter,
		Cloud:      opts.Cloud,
		Padding:    opts.Padding,
	})

	resized := make(chan struct{}, 1)
	resizer := view.NewResizer(opts.ResizeDebounce, func(size treelayout.Size) {
		coord.Resize(size)
		select {
		case resized <- struct{}{}:
		default:
		}
	})

	format := opts.Format
	if format == "" {
		format = export.FormatSVG
	}
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}

	return Model{
		ctx:       ctx,
		src:       opts.Source,
		coord:     coord,
		resizer:   resizer,
		resized:   resized,
		watcher:   opts.Watcher,
		theme:     DefaultTheme(lipgloss.DefaultRenderer()),
		width:     defaultWidth,
		height:    defaultHeight,
		help:      viewport.New(defaultWidth, defaultHeight-2),
		outputDir: outDir,
		format:    format,
	}
}

// reloader re-reads a file-backed source.
type reloader interface {
	Reload() error
}

// WithReloader sets what a FileChangedMsg re-reads before refetching. When
// unset, the source is used if it can reload itself.
func (m Model) WithReloader(r reloader) Model {
	m.reload = r
	return m
}

// Coordinator exposes the view state machine, mainly for tests.
func (m Model) Coordinator() *view.Coordinator { return m.coord }

// containerFor maps a terminal size in cells to a layout container.
func containerFor(cols, rows int) treelayout.Size {
	return treelayout.Size{Width: float64(cols * CellWidth), Height: float64(rows * CellHeight)}
}

func (m Model) fetchFrequenciesCmd(req view.FrequencyRequest) tea.Cmd {
	src, ctx := m.src, m.ctx
	return func() tea.Msg {
		if src == nil {
			return frequenciesMsg{req: req, err: model.ErrNoDataAvailable}
		}
		entries, err := src.FetchFrequencies(ctx, req.Filter)
		return frequenciesMsg{req: req, entries: entries, err: err}
	}
}

func (m Model) fetchTreeCmd(req view.Request) tea.Cmd {
	src, ctx := m.src, m.ctx
	return func() tea.Msg {
		if src == nil {
			return treeMsg{req: req, err: model.ErrNoDataAvailable}
		}
		tree, err := src.FetchTree(ctx, req.Word, req.Filter)
		return treeMsg{req: req, tree: tree, err: err}
	}
}

func waitForResizeCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return resizedMsg{}
	}
}

// WatchFileCmd returns a command that waits for file changes and sends FileChangedMsg
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

func saveCmd(s scene.Scene, path string, format export.Format) tea.Cmd {
	return func() tea.Msg {
		out, err := export.Save(s, export.SnapshotOptions{Path: path, Format: string(format)})
		return savedMsg{path: out, err: err}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.fetchFrequenciesCmd(m.coord.RequestFrequencies()),
		waitForResizeCmd(m.resized),
	}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := !m.sized
		m.sized = true
		m.width, m.height = msg.Width, msg.Height
		m.help.Width, m.help.Height = msg.Width, m.bodyHeight()
		m.resizer.Resize(containerFor(msg.Width, m.bodyHeight()))
		if first {
			m.resizer.Flush()
		}
		m.refresh()

	case resizedMsg:
		m.refresh()
		cmds = append(cmds, waitForResizeCmd(m.resized))

	case frequenciesMsg:
		if m.coord.ApplyFrequencies(msg.req, msg.entries, msg.err) {
			m.refresh()
		}

	case treeMsg:
		if m.coord.Apply(msg.req, msg.tree, msg.err) {
			m.treeCursor, m.treeOffset = 0, 0
			m.refresh()
		}

	case FileChangedMsg:
		cmds = append(cmds, m.reloadSource()...)
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}

	case savedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Save failed: %v", msg.err), true)
		} else {
			m.setStatus("Saved "+msg.path, false)
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKeys(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reloadSource re-reads a file-backed source and refetches what is on
// screen.
func (m *Model) reloadSource() []tea.Cmd {
	r := m.reload
	if r == nil {
		r, _ = m.src.(reloader)
	}
	if r != nil {
		if err := r.Reload(); err != nil {
			m.setStatus(fmt.Sprintf("Reload failed: %v", err), true)
			return nil
		}
	}
	debug.Log("ui: dataset changed, refetching")
	m.setStatus("Dataset reloaded", false)
	cmds := []tea.Cmd{m.fetchFrequenciesCmd(m.coord.RequestFrequencies())}
	if st := m.coord.Status(); st.Selected != "" {
		cmds = append(cmds, m.fetchTreeCmd(m.coord.Select(st.Selected)))
	}
	return cmds
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.resizer.Stop()
		return m, tea.Quit
	}

	if m.showHelp {
		switch key {
		case "?", "esc", "q":
			m.showHelp = false
		default:
			m.help, _ = m.help.Update(msg)
		}
		return m, nil
	}

	switch key {
	case "q":
		m.resizer.Stop()
		return m, tea.Quit
	case "?":
		m.showHelp = true
		m.help.SetContent(renderHelp(m.width))
		m.help.GotoTop()
		return m, nil
	case "f":
		on := m.coord.ToggleFullscreen()
		m.setStatus(fmt.Sprintf("Fullscreen %s", onOff(on)), false)
		m.refresh()
		return m, nil
	case "s":
		return m, m.save()
	}

	st := m.coord.Status()
	switch st.State {
	case view.StateCloud:
		return m.handleCloudKeys(key)
	default:
		return m.handleTreeKeys(key, st)
	}
}

func (m Model) handleCloudKeys(key string) (Model, tea.Cmd) {
	switch key {
	case "left", "h", "up", "k":
		if m.cloudCursor > 0 {
			m.cloudCursor--
		}
	case "right", "l", "down", "j":
		if m.cloudCursor < len(m.words)-1 {
			m.cloudCursor++
		}
	case "home", "g":
		m.cloudCursor = 0
	case "end", "G":
		if len(m.words) > 0 {
			m.cloudCursor = len(m.words) - 1
		}
	case "enter", " ":
		if m.cloudCursor < len(m.words) {
			req := m.coord.Select(m.words[m.cloudCursor].Text)
			m.refresh()
			return m, m.fetchTreeCmd(req)
		}
	case "r":
		return m, m.fetchFrequenciesCmd(m.coord.RequestFrequencies())
	}
	return m, nil
}

func (m Model) handleTreeKeys(key string, st view.Status) (Model, tea.Cmd) {
	switch key {
	case "esc", "backspace":
		m.coord.Deselect()
		m.refresh()
		return m, nil
	case "r":
		switch {
		case st.State == view.StateTreeError, st.State == view.StateTreeEmpty:
			req := m.coord.Select(st.Selected)
			m.refresh()
			return m, m.fetchTreeCmd(req)
		case st.RenderError != "":
			m.coord.ResetAndRetry()
			m.treeCursor, m.treeOffset = 0, 0
			m.refresh()
		}
		return m, nil
	}

	if st.State != view.StateTreeReady || len(m.nodes) == 0 {
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.treeCursor > 0 {
			m.treeCursor--
		}
	case "down", "j":
		if m.treeCursor < len(m.nodes)-1 {
			m.treeCursor++
		}
	case "home", "g":
		m.treeCursor = 0
	case "end", "G":
		m.treeCursor = len(m.nodes) - 1
	case "left", "h":
		// Collapse, or jump to the parent of a collapsed node.
		n := m.nodes[m.treeCursor]
		if n.Expanded && n.HasChildren {
			m.toggle(n)
		} else if parent := n.Path.Parent(); len(parent) > 0 {
			m.selectPath(parent)
		}
	case "right", "l":
		if n := m.nodes[m.treeCursor]; n.HasChildren && !n.Expanded {
			m.toggle(n)
		}
	case "enter", " ":
		m.toggle(m.nodes[m.treeCursor])
	case "p":
		m.showPreview = !m.showPreview
	case "y":
		path := strings.Join(m.nodes[m.treeCursor].Path.Words(), " > ")
		if err := clipboard.WriteAll(path); err != nil {
			m.setStatus(fmt.Sprintf("Clipboard error: %v", err), true)
		} else {
			m.setStatus("Copied "+path, false)
		}
	}
	m.scrollToCursor()
	return m, nil
}

func (m *Model) toggle(n treelayout.PositionedNode) {
	if !n.HasChildren {
		return
	}
	if err := m.coord.Toggle(n.Path); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.refresh()
	m.selectPath(n.Path)
}

// selectPath moves the tree cursor to the node at path, if visible.
func (m *Model) selectPath(path expansion.Path) {
	key := path.Key()
	for i, n := range m.nodes {
		if n.Path.Key() == key {
			m.treeCursor = i
			return
		}
	}
}

func (m Model) save() tea.Cmd {
	st := m.coord.Status()
	name := "cloud"
	if st.Selected != "" {
		name = "tree-" + sanitizeFilename(st.Selected)
	}
	path := filepath.Join(m.outputDir, name+"."+string(m.format))
	return saveCmd(m.scene, path, m.format)
}

// refresh rebuilds the scene for the current state and records what changed
// since the previous frame.
func (m *Model) refresh() {
	var next scene.Scene
	st := m.coord.Status()

	switch st.State {
	case view.StateTreeReady:
		sc, err := m.coord.TreeScene()
		if err != nil {
			m.setStatus(err.Error(), true)
			m.nodes = nil
			return
		}
		next = sc
		if l, err := m.coord.TreeLayout(); err == nil {
			m.nodes = l.Nodes
		}
		if m.treeCursor >= len(m.nodes) {
			m.treeCursor = max(0, len(m.nodes)-1)
		}
		m.scrollToCursor()
	case view.StateCloud:
		l := m.coord.CloudLayout()
		m.words = l.Words
		if m.cloudCursor >= len(m.words) {
			m.cloudCursor = max(0, len(m.words)-1)
		}
		next = scene.FromCloud(l)
	default:
		m.nodes = nil
	}

	m.diff = scene.Compare(m.scene, next)
	m.scene = next
	debug.Log("ui: frame %s (%s)", m.diff, st.State)
}

func (m *Model) scrollToCursor() {
	h := m.bodyHeight()
	if h <= 0 {
		return
	}
	if m.treeCursor < m.treeOffset {
		m.treeOffset = m.treeCursor
	}
	if m.treeCursor >= m.treeOffset+h {
		m.treeOffset = m.treeCursor - h + 1
	}
}

func (m *Model) setStatus(msg string, isError bool) {
	m.statusMsg, m.statusIsError = msg, isError
}

func (m Model) bodyHeight() int {
	return max(1, m.height-2)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}
