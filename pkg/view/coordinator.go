// Package view coordinates the cloud and tree views: which is shown, what
// is loading, what failed and what the tree currently exposes.
//
// Fetches are not performed here. Select, SetFilter and RequestFrequencies
// return request values; the host performs them and hands the result back
// to Apply or ApplyFrequencies. Results for superseded requests are
// discarded.
package view

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vanderheijden86/wordtree/pkg/cloud"
	"github.com/vanderheijden86/wordtree/pkg/debug"
	"github.com/vanderheijden86/wordtree/pkg/expansion"
	"github.com/vanderheijden86/wordtree/pkg/model"
	"github.com/vanderheijden86/wordtree/pkg/scene"
	"github.com/vanderheijden86/wordtree/pkg/treelayout"
)

// InvalidTreeMessage is shown when a tree payload has no usable root.
const InvalidTreeMessage = "Invalid tree data received"

// NoTreeMessage is shown when the source has no tree for the selected word
// under the current filter. It is an empty state, not a failure.
const NoTreeMessage = "No tree data for this word"

// ErrNoTree is returned by tree accessors outside the TreeReady state.
var ErrNoTree = errors.New("no tree loaded")

// State is the top-level view state.
type State int

const (
	StateCloud State = iota
	StateTreeLoading
	StateTreeError
	StateTreeReady
	StateTreeEmpty
)

func (s State) String() string {
	switch s {
	case StateCloud:
		return "cloud"
	case StateTreeLoading:
		return "tree-loading"
	case StateTreeError:
		return "tree-error"
	case StateTreeReady:
		return "tree-ready"
	case StateTreeEmpty:
		return "tree-empty"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CloudState tracks the frequency list behind the cloud.
type CloudState int

const (
	CloudLoading CloudState = iota
	CloudEmpty
	CloudError
	CloudReady
)

func (s CloudState) String() string {
	switch s {
	case CloudLoading:
		return "loading"
	case CloudEmpty:
		return "empty"
	case CloudError:
		return "error"
	case CloudReady:
		return "ready"
	default:
		return fmt.Sprintf("cloud(%d)", int(s))
	}
}

// ErrorKind distinguishes tree failures.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorFetch
	ErrorInvalidPayload
)

// Request is a pending tree fetch.
type Request struct {
	Generation uint64
	ID         string
	Word       string
	Filter     model.FilterCriteria
}

// FrequencyRequest is a pending frequency fetch.
type FrequencyRequest struct {
	Generation uint64
	ID         string
	Filter     model.FilterCriteria
}

// Status is a consistent snapshot of the coordinator.
type Status struct {
	State        State
	Cloud        CloudState
	CloudError   string
	Selected     string
	ErrorMessage string
	ErrorKind    ErrorKind
	RenderError  string
	Fullscreen   bool
	Filter       model.FilterCriteria
	Container    treelayout.Size
	Expanded     int
	Words        int
}

// Callbacks notify the host. They run after the transition, outside the
// coordinator's lock.
type Callbacks struct {
	OnWordSelected     func(word string)
	OnDeselect         func()
	OnToggleFullscreen func(fullscreen bool)
	OnChange           func(Status)
}

// Options configures a Coordinator.
type Options struct {
	Container  treelayout.Size
	Fullscreen bool
	Filter     model.FilterCriteria
	Cloud      cloud.NormalizeOptions // Floor and Limit are used
	Padding    float64
	Callbacks  Callbacks

	// TreeRenderer turns a tree layout into a scene; scene.FromTree when nil.
	TreeRenderer func(treelayout.TreeLayout) scene.Scene
}

// Coordinator is the view state machine. It is safe for concurrent use.
type Coordinator struct {
	mu sync.Mutex

	state      State
	cloudState CloudState
	cloudErr   string
	filter     model.FilterCriteria
	selected   string
	tree       *model.TreeNode
	errMsg     string
	errKind    ErrorKind
	renderErr  string
	fullscreen bool
	container  treelayout.Size
	freqs      []model.FrequencyEntry

	treeGen uint64
	freqGen uint64

	store      *expansion.Store
	clouds     *cloud.Engine
	trees      *treelayout.Cache
	norm       cloud.NormalizeOptions
	padding    float64
	callbacks  Callbacks
	renderTree func(treelayout.TreeLayout) scene.Scene
}

// New returns a coordinator in the cloud state with the frequency list
// still to be loaded.
func New(opts Options) *Coordinator {
	render := opts.TreeRenderer
	if render == nil {
		render = scene.FromTree
	}
	return &Coordinator{
		state:      StateCloud,
		cloudState: CloudLoading,
		filter:     opts.Filter,
		fullscreen: opts.Fullscreen,
		container:  opts.Container,
		store:      expansion.NewStore(),
		clouds:     cloud.NewEngine(cloud.DefaultCacheSize),
		trees:      treelayout.NewCache(treelayout.DefaultCacheSize),
		norm:       opts.Cloud,
		padding:    opts.Padding,
		callbacks:  opts.Callbacks,
		renderTree: render,
	}
}

func (c *Coordinator) statusLocked() Status {
	return Status{
		State:        c.state,
		Cloud:        c.cloudState,
		CloudError:   c.cloudErr,
		Selected:     c.selected,
		ErrorMessage: c.errMsg,
		ErrorKind:    c.errKind,
		RenderError:  c.renderErr,
		Fullscreen:   c.fullscreen,
		Filter:       c.filter,
		Container:    c.container,
		Expanded:     c.store.Set().Len(),
		Words:        len(c.freqs),
	}
}

// Status returns a snapshot of the current state.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

// unlockAndNotify releases the lock and reports the new status.
func (c *Coordinator) unlockAndNotify() {
	st := c.statusLocked()
	fn := c.callbacks.OnChange
	c.mu.Unlock()
	if fn != nil {
		fn(st)
	}
}

// RequestFrequencies starts a frequency fetch for the current filter.
func (c *Coordinator) RequestFrequencies() FrequencyRequest {
	c.mu.Lock()
	req := c.frequencyRequestLocked()
	c.unlockAndNotify()
	return req
}

func (c *Coordinator) frequencyRequestLocked() FrequencyRequest {
	c.freqGen++
	c.cloudState = CloudLoading
	c.cloudErr = ""
	return FrequencyRequest{Generation: c.freqGen, ID: uuid.NewString(), Filter: c.filter}
}

// ApplyFrequencies stores the result of req. It returns false when req has
// been superseded and the result was dropped.
func (c *Coordinator) ApplyFrequencies(req FrequencyRequest, entries []model.FrequencyEntry, err error) bool {
	c.mu.Lock()
	if req.Generation != c.freqGen {
		c.mu.Unlock()
		debug.Log("view: dropping stale frequencies %s (gen %d, current %d)", req.ID, req.Generation, c.freqGen)
		return false
	}
	switch {
	case errors.Is(err, model.ErrNoDataAvailable):
		c.freqs, c.cloudState = nil, CloudEmpty
	case err != nil:
		c.freqs, c.cloudState = nil, CloudError
		c.cloudErr = err.Error()
	case len(entries) == 0:
		c.freqs, c.cloudState = nil, CloudEmpty
	default:
		c.freqs, c.cloudState = entries, CloudReady
	}
	c.unlockAndNotify()
	return true
}

// Select starts loading the tree for word. Any tree or in-flight request
// is discarded.
func (c *Coordinator) Select(word string) Request {
	c.mu.Lock()
	c.selected = word
	req := c.treeRequestLocked()
	cb := c.callbacks.OnWordSelected
	c.unlockAndNotify()
	if cb != nil {
		cb(word)
	}
	return req
}

// OnWordSelected is the host callback for a cloud click.
func (c *Coordinator) OnWordSelected(word string) Request { return c.Select(word) }

func (c *Coordinator) treeRequestLocked() Request {
	c.treeGen++
	c.state = StateTreeLoading
	c.tree = nil
	c.errMsg, c.errKind, c.renderErr = "", ErrorNone, ""
	c.store.Clear()
	c.trees.Purge()
	return Request{Generation: c.treeGen, ID: uuid.NewString(), Word: c.selected, Filter: c.filter}
}

// Apply stores the result of a tree request. It returns false when the
// request has been superseded by a newer selection, filter change or
// deselect, in which case nothing changes.
func (c *Coordinator) Apply(req Request, tree *model.TreeNode, err error) bool {
	c.mu.Lock()
	if req.Generation != c.treeGen || c.state != StateTreeLoading {
		c.mu.Unlock()
		debug.Log("view: dropping stale tree %s for %q (gen %d, current %d)", req.ID, req.Word, req.Generation, c.treeGen)
		return false
	}
	if err == nil && (tree == nil || tree.Word == "") {
		err = model.ErrInvalidPayload
	}
	switch {
	case errors.Is(err, model.ErrNoDataAvailable):
		c.state = StateTreeEmpty
		c.errMsg, c.errKind = NoTreeMessage, ErrorNone
	case errors.Is(err, model.ErrInvalidPayload):
		c.state = StateTreeError
		c.errMsg, c.errKind = InvalidTreeMessage, ErrorInvalidPayload
	case err != nil:
		c.state = StateTreeError
		c.errMsg, c.errKind = "Failed to load tree data: "+err.Error(), ErrorFetch
	default:
		c.state = StateTreeReady
		c.tree = tree
		c.store.Load(tree)
	}
	if err != nil {
		debug.Log("view: tree %q failed: %v", req.Word, err)
	}
	c.unlockAndNotify()
	return true
}

// Deselect returns to the cloud from any state.
func (c *Coordinator) Deselect() {
	c.mu.Lock()
	c.treeGen++
	c.state = StateCloud
	c.selected = ""
	c.tree = nil
	c.errMsg, c.errKind, c.renderErr = "", ErrorNone, ""
	c.store.Clear()
	c.trees.Purge()
	cb := c.callbacks.OnDeselect
	c.unlockAndNotify()
	if cb != nil {
		cb()
	}
}

// OnDeselect is the host callback for the back action.
func (c *Coordinator) OnDeselect() { c.Deselect() }

// SetFilter replaces the filter. Frequencies are always re-requested; when a
// word is selected its tree is re-requested too, keeping the selection.
func (c *Coordinator) SetFilter(f model.FilterCriteria) (FrequencyRequest, *Request) {
	c.mu.Lock()
	c.filter = f
	freq := c.frequencyRequestLocked()
	var tree *Request
	if c.selected != "" {
		r := c.treeRequestLocked()
		tree = &r
	}
	c.unlockAndNotify()
	return freq, tree
}

// ToggleFullscreen flips fullscreen mode and returns the new value.
func (c *Coordinator) ToggleFullscreen() bool {
	c.mu.Lock()
	c.fullscreen = !c.fullscreen
	on := c.fullscreen
	cb := c.callbacks.OnToggleFullscreen
	c.unlockAndNotify()
	if cb != nil {
		cb(on)
	}
	return on
}

// OnToggleFullscreen is the host callback for the fullscreen control.
func (c *Coordinator) OnToggleFullscreen() bool { return c.ToggleFullscreen() }

// Resize records a new container size.
func (c *Coordinator) Resize(size treelayout.Size) {
	c.mu.Lock()
	if c.container == size {
		c.mu.Unlock()
		return
	}
	c.container = size
	c.unlockAndNotify()
}

// Toggle expands or collapses the node at path. Collapsing also collapses
// every descendant.
func (c *Coordinator) Toggle(path expansion.Path) error {
	c.mu.Lock()
	if c.state != StateTreeReady {
		c.mu.Unlock()
		return ErrNoTree
	}
	node := expansion.Find(c.tree, path)
	if node == nil {
		c.mu.Unlock()
		return fmt.Errorf("no node at %s", path)
	}
	c.store.ToggleAt(node, path)
	c.unlockAndNotify()
	return nil
}

// IsExpanded reports whether the node at path is expanded.
func (c *Coordinator) IsExpanded(path expansion.Path) bool {
	return c.store.IsExpandedAt(path)
}

// Tree returns the loaded tree, or nil.
func (c *Coordinator) Tree() *model.TreeNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree
}

// Frequencies returns the current frequency list.
func (c *Coordinator) Frequencies() []model.FrequencyEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.freqs
}

// CloudLayout lays out the current frequencies for the container width.
// The result is memoized on (frequencies, width, mode).
func (c *Coordinator) CloudLayout() cloud.Layout {
	c.mu.Lock()
	freqs := c.freqs
	norm := c.norm
	norm.Width = c.container.Width
	norm.Fullscreen = c.fullscreen
	lay := cloud.LayoutOptions{Width: c.container.Width, Padding: c.padding, Fullscreen: c.fullscreen}
	c.mu.Unlock()
	return c.clouds.Compute(freqs, norm, lay)
}

// CloudScene returns the cloud ready for rendering.
func (c *Coordinator) CloudScene() scene.Scene {
	return scene.FromCloud(c.CloudLayout())
}

// TreeLayout lays out the visible part of the tree. The result is memoized
// on (expansion set, container, mode).
func (c *Coordinator) TreeLayout() (treelayout.TreeLayout, error) {
	c.mu.Lock()
	if c.state != StateTreeReady {
		c.mu.Unlock()
		return treelayout.TreeLayout{}, ErrNoTree
	}
	tree, set, size, fs := c.tree, c.store.Set(), c.container, c.fullscreen
	c.mu.Unlock()
	return c.trees.Layout(tree, set, size, fs), nil
}

// TreeScene lays out and renders the tree. A panic anywhere in layout or
// rendering is recovered and reported as model.ErrRenderFailed; the host
// shows the error with ResetAndRetry as the way out.
func (c *Coordinator) TreeScene() (s scene.Scene, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", model.ErrRenderFailed, r)
			debug.Log("view: %v", err)
			c.mu.Lock()
			c.renderErr = err.Error()
			c.unlockAndNotify()
		}
	}()

	l, err := c.TreeLayout()
	if err != nil {
		return scene.Scene{}, err
	}
	s = c.renderTree(l)

	c.mu.Lock()
	cleared := c.renderErr != ""
	c.renderErr = ""
	if cleared {
		c.unlockAndNotify()
	} else {
		c.mu.Unlock()
	}
	return s, nil
}

// ResetAndRetry collapses the tree back to its root after a render
// failure.
func (c *Coordinator) ResetAndRetry() {
	c.mu.Lock()
	c.renderErr = ""
	if c.tree != nil {
		c.store.Load(c.tree)
	}
	c.trees.Purge()
	c.unlockAndNotify()
}
