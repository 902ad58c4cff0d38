package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Layout hooks
	l := NoopLayoutHooks{}
	l.OnGenerateStart(ctx, "res1", "resonator")
	l.OnGenerateComplete(ctx, "res1", 42, time.Second, nil)
	l.OnMeanderSearch(ctx, "res1", 3, true)

	// Render hooks
	r := NoopRenderHooks{}
	r.OnDraw(ctx, "base", 8)
	r.OnClear(ctx)
	r.OnRenderComplete(ctx, "svg", 1024, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	// Set custom hooks
	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testLayoutHooks{}
	SetLayoutHooks(custom)

	// Setting nil should be ignored
	SetLayoutHooks(nil)

	if Layout() != custom {
		t.Error("SetLayoutHooks(nil) should be ignored")
	}

	Reset()
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testLayoutHooks{}
	SetLayoutHooks(h)

	Layout().OnMeanderSearch(context.Background(), "res1", 7, false)
	if h.searches != 1 || h.lastIterations != 7 {
		t.Errorf("searches=%d iterations=%d, want 1 and 7", h.searches, h.lastIterations)
	}
}

// Test implementations
type testLayoutHooks struct {
	NoopLayoutHooks
	searches       int
	lastIterations int
}

func (h *testLayoutHooks) OnMeanderSearch(_ context.Context, _ string, iterations int, _ bool) {
	h.searches++
	h.lastIterations = iterations
}

type testRenderHooks struct{ NoopRenderHooks }
