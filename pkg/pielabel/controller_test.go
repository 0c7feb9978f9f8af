package pielabel

import (
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pielabel/pkg/geom"
)

type locatorFunc func(geom.Point) (any, bool)

func (f locatorFunc) SliceAt(p geom.Point) (any, bool) { return f(p) }

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestControllerRenderAndClear(t *testing.T) {
	c := NewController(NewConfig(WithLabel1(nameLabel)), fixedWidth, WithLogger(quietLogger()))
	if _, ok := c.Layout(); ok {
		t.Fatal("new controller should have no layout")
	}

	l := c.Render(namedPie(6))
	if got := c.Drawn(); len(got) != len(l.Labels) || len(got) != 6 {
		t.Fatalf("Drawn() = %d labels, want 6", len(got))
	}

	c.Clear()
	if c.Drawn() != nil {
		t.Error("Clear() should drop drawn labels")
	}
}

func TestControllerHandleEvent(t *testing.T) {
	var got []ClickEvent
	cfg := NewConfig(WithLabel1(nameLabel), WithOnClick(func(ev ClickEvent) { got = append(got, ev) }))
	c := NewController(cfg, fixedWidth, WithLogger(quietLogger()))
	l := c.Render(namedPie(6))

	em := NewEmitter()
	c.Bind(em, locatorFunc(func(p geom.Point) (any, bool) {
		return "under-pointer", p.X > 150 && p.X < 250
	}))

	target := l.Labels[0]
	inside := target.Box.Center()
	em.Emit(DefaultTrigger, inside.X, inside.Y)
	em.Emit(DefaultTrigger, 200, 200)
	em.Emit(DefaultTrigger, -50, -50)
	em.Emit("click", 200, 200)

	if len(got) != 3 {
		t.Fatalf("OnClick called %d times, want 3", len(got))
	}
	if got[0].Source != HitLabel || got[0].Data != target.Datum {
		t.Errorf("label click = %+v", got[0])
	}
	if got[1].Source != HitSlice || got[1].Data != "under-pointer" {
		t.Errorf("slice click = %+v", got[1])
	}
	if got[2].Source != HitNone || got[2].Data != nil || got[2].X != -50 {
		t.Errorf("empty click = %+v", got[2])
	}
}

func TestControllerRebind(t *testing.T) {
	calls := 0
	cfg := NewConfig(WithOnClick(func(ClickEvent) { calls++ }))
	c := NewController(cfg, fixedWidth, WithLogger(quietLogger()))
	c.Render(namedPie(4))

	em := NewEmitter()
	first := c.Bind(em, nil)
	second := c.Bind(em, nil)
	if first == second {
		t.Fatal("Bind() returned the same handle twice")
	}
	if em.Len() != 1 {
		t.Fatalf("listeners = %d, want 1", em.Len())
	}

	em.Emit(DefaultTrigger, 0, 0)
	if calls != 1 {
		t.Errorf("OnClick called %d times, want 1", calls)
	}

	c.Unbind(first)
	if em.Len() != 1 {
		t.Error("stale handle released the active binding")
	}

	c.Unbind(second)
	c.Unbind(second)
	c.Unbind(Handle{})
	if em.Len() != 0 {
		t.Errorf("listeners = %d after Unbind, want 0", em.Len())
	}
	if n := em.Emit(DefaultTrigger, 0, 0); n != 0 || calls != 1 {
		t.Errorf("event delivered after Unbind: n=%d calls=%d", n, calls)
	}
}

func TestControllerClearUnbinds(t *testing.T) {
	c := NewController(NewConfig(WithTrigger("click")), fixedWidth, WithLogger(quietLogger()))
	em := NewEmitter()
	c.Bind(em, nil)
	c.Clear()
	if em.Len() != 0 {
		t.Errorf("listeners = %d after Clear, want 0", em.Len())
	}
}

func TestControllerBindNilSource(t *testing.T) {
	c := NewController(DefaultConfig(), fixedWidth, WithLogger(quietLogger()))
	em := NewEmitter()
	c.Bind(em, nil)

	h := c.Bind(nil, nil)
	if !h.IsZero() {
		t.Errorf("Bind(nil) = %v, want zero handle", h)
	}
	if em.Len() != 0 {
		t.Errorf("listeners = %d, want earlier binding released", em.Len())
	}
	c.Unbind(h)
	c.Clear()
}

func TestControllerConcurrentReaders(t *testing.T) {
	c := NewController(NewConfig(WithLabel1(nameLabel)), fixedWidth, WithLogger(quietLogger()))
	small, large := namedPie(3), namedPie(9)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				c.Render(small)
			} else {
				c.Render(large)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			switch n := len(c.Drawn()); n {
			case 0, 3, 9:
			default:
				t.Errorf("observed partial layout with %d labels", n)
				return
			}
		}
	}()
	wg.Wait()
}

func TestEmitterOrder(t *testing.T) {
	em := NewEmitter()
	var order []int
	for i := 0; i < 3; i++ {
		em.AddListener("tap", func(PointerEvent) { order = append(order, i) })
	}
	id := em.AddListener("other", func(PointerEvent) { t.Error("wrong trigger delivered") })

	if n := em.Emit("tap", 1, 2); n != 3 {
		t.Errorf("Emit() = %d, want 3", n)
	}
	if len(order) != 3 || order[0] != 0 || order[2] != 2 {
		t.Errorf("order = %v", order)
	}

	em.RemoveListener(id)
	em.RemoveListener(id)
	if em.Len() != 3 {
		t.Errorf("Len() = %d, want 3", em.Len())
	}
}
