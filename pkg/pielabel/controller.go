package pielabel

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pielabel/pkg/geom"
)

// Handle identifies one Bind call. The zero Handle means nothing is bound.
type Handle struct{ id uuid.UUID }

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.id == uuid.Nil }

func (h Handle) String() string { return h.id.String() }

// Controller owns the labels of the most recent layout pass and dispatches
// pointer events against them. It is safe for concurrent use; each Render
// replaces the previous layout in one step, so readers never see a partial
// set.
type Controller struct {
	cfg      Config
	measurer Measurer
	logger   *log.Logger

	layout atomic.Pointer[Layout]

	mu       sync.Mutex
	current  Handle
	source   EventSource
	listener ListenerID
	locator  SliceLocator
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController returns a controller that lays out labels with cfg and m.
func NewController(cfg Config, m Measurer, opts ...ControllerOption) *Controller {
	c := &Controller{cfg: cfg, measurer: m, logger: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

// Render runs a layout pass over in and publishes the result.
func (c *Controller) Render(in Input) Layout {
	l := Compute(in, c.measurer, c.cfg)
	c.layout.Store(&l)
	c.logger.Debug("pie labels laid out",
		"mode", l.Mode,
		"slices", len(in.Slices),
		"drawn", len(l.Labels),
		"truncated", l.Truncated,
		"skipped", l.Skipped)
	return l
}

// Layout returns the last published layout.
func (c *Controller) Layout() (Layout, bool) {
	if l := c.layout.Load(); l != nil {
		return *l, true
	}
	return Layout{}, false
}

// Drawn returns the labels of the last published layout in draw order.
func (c *Controller) Drawn() []DrawnLabel {
	if l := c.layout.Load(); l != nil {
		return l.Labels
	}
	return nil
}

// Clear drops the published layout and unbinds pointer events.
func (c *Controller) Clear() {
	c.layout.Store(nil)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unbindLocked()
}

// Bind listens for the configured trigger on src, resolving slices with
// locator (which may be nil). Any earlier binding is released first, so at
// most one listener is ever registered. A nil src only releases the earlier
// binding and returns the zero Handle.
func (c *Controller) Bind(src EventSource, locator SliceLocator) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unbindLocked()
	if src == nil {
		return Handle{}
	}

	h := Handle{id: uuid.New()}
	c.current, c.source, c.locator = h, src, locator
	c.listener = src.AddListener(c.cfg.trigger(), func(ev PointerEvent) {
		c.HandleEvent(ev)
	})
	c.logger.Debug("pie label events bound", "trigger", c.cfg.trigger(), "handle", h)
	return h
}

// Unbind releases the binding identified by h. Stale or zero handles are
// ignored.
func (c *Controller) Unbind(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h.IsZero() || h != c.current {
		return
	}
	c.unbindLocked()
}

func (c *Controller) unbindLocked() {
	if c.current.IsZero() {
		return
	}
	c.source.RemoveListener(c.listener)
	c.logger.Debug("pie label events unbound", "handle", c.current)
	c.current, c.source, c.listener, c.locator = Handle{}, nil, 0, nil
}

// HandleEvent resolves ev against the published labels and the bound
// locator, then passes the result to Config.OnClick when set.
func (c *Controller) HandleEvent(ev PointerEvent) ClickEvent {
	c.mu.Lock()
	locator := c.locator
	c.mu.Unlock()

	click := Dispatch(c.Drawn(), geom.Point{X: ev.X, Y: ev.Y}, locator)
	if c.cfg.OnClick != nil {
		c.cfg.OnClick(click)
	}
	return click
}
