package charts

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Dipto9999/portfolio/internal/breakpoint"
	"github.com/Dipto9999/portfolio/internal/viewport"
)

// RenderHook is called after every draw with the resolved variant and the
// variant whose spec was used.
type RenderHook func(dashboard string, resolved, used breakpoint.Variant)

// ViewOption configures a View.
type ViewOption func(*View)

// WithRenderHook registers a hook called after each draw.
func WithRenderHook(h RenderHook) ViewOption {
	return func(v *View) { v.hook = h }
}

// WithLogger sets the view logger.
func WithLogger(l *zap.Logger) ViewOption {
	return func(v *View) { v.logger = l }
}

// View renders one dashboard for one viewer. It follows a viewport tracker
// and redraws only when the resolved variant, or the library it reads from,
// changes.
type View struct {
	name    string
	library *Library
	engine  Engine
	tracker *viewport.Tracker
	hook    RenderHook
	logger  *zap.Logger

	mu         sync.Mutex
	drawn      bool
	variant    breakpoint.Variant
	used       breakpoint.Variant
	generation uint64
	renders    uint64
	cards      *Cards
	err        error

	unsubscribe func()
}

// NewView subscribes a view of the named dashboard to tracker.
func NewView(name string, library *Library, engine Engine, tracker *viewport.Tracker, opts ...ViewOption) *View {
	v := &View{
		name:    name,
		library: library,
		engine:  engine,
		tracker: tracker,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.unsubscribe = tracker.Subscribe(func(s viewport.Size) {
		if _, err := v.Render(breakpoint.Resolve(s.Width, s.Height)); err != nil {
			v.logger.Warn("Dashboard render failed", zap.String("dashboard", name), zap.Error(err))
		}
	})
	return v
}

// Name returns the dashboard name.
func (v *View) Name() string { return v.name }

// Render draws the spec for variant. It reports false without copying or
// drawing anything when the same variant from the same library generation
// is already on screen.
func (v *View) Render(variant breakpoint.Variant) (bool, error) {
	d, generation, err := v.library.Dashboard(v.name)
	if err != nil {
		v.setErr(err)
		return false, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.drawn && v.variant == variant && v.generation == generation {
		return false, nil
	}

	canonical, used, err := d.Spec(variant)
	if err != nil {
		v.err = err
		return false, err
	}
	spec := canonical.Clone()

	var cards *Cards
	if variant == breakpoint.Portrait {
		if c, ok := ExtractCards(spec); ok {
			cards = c
		}
	}

	if err := v.engine.Draw(v.name, variant, spec); err != nil {
		v.err = err
		return false, err
	}

	v.drawn = true
	v.variant = variant
	v.used = used
	v.generation = generation
	v.cards = cards
	v.renders++
	v.err = nil

	if v.hook != nil {
		v.hook(v.name, variant, used)
	}
	return true, nil
}

func (v *View) setErr(err error) {
	v.mu.Lock()
	v.err = err
	v.mu.Unlock()
}

// Resize feeds a resize event through the tracker and reports whether it
// produced a new draw.
func (v *View) Resize(s viewport.Size) (bool, error) {
	before := v.Renders()
	v.tracker.Update(s)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err != nil {
		return false, v.err
	}
	if !v.drawn {
		return false, nil
	}
	return v.renders != before, nil
}

// Variant returns the resolved variant of the last draw.
func (v *View) Variant() breakpoint.Variant {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.variant
}

// UsedVariant returns the variant whose spec was drawn last.
func (v *View) UsedVariant() breakpoint.Variant {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.used
}

// Cards returns the portrait track cards of the last draw, if any.
func (v *View) Cards() *Cards {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cards
}

// Renders counts draws performed by this view.
func (v *View) Renders() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renders
}

// Close unsubscribes the view from its tracker.
func (v *View) Close() {
	v.unsubscribe()
}
