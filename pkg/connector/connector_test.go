package connector

import (
	"reflect"
	"testing"
	"time"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

func TestCompute_NoChildren(t *testing.T) {
	if segs := Compute(model.Rect{W: 10, H: 10}, nil, PixelOptions); segs != nil {
		t.Errorf("Compute() = %v, want nil", segs)
	}
}

func TestCompute_SingleChildCrossbarIsPadded(t *testing.T) {
	parent := model.Rect{X: 100, Y: 0, W: 200, H: 60}
	child := model.Rect{X: 100, Y: 200, W: 200, H: 60}
	segs := Compute(parent, []model.Rect{child}, PixelOptions)

	if len(segs) != 3 {
		t.Fatalf("len(segs) = %d, want 3", len(segs))
	}
	bar := segs[1]
	if !bar.Horizontal() {
		t.Fatalf("crossbar %+v is not horizontal", bar)
	}
	if bar.Length() != 2*PixelOptions.Pad {
		t.Errorf("crossbar width = %v, want %v", bar.Length(), 2*PixelOptions.Pad)
	}
	if bar.X1 != 200-24 || bar.X2 != 200+24 {
		t.Errorf("crossbar spans %v..%v, want 176..224", bar.X1, bar.X2)
	}
}

func TestCompute_TrunkCrossbarBranches(t *testing.T) {
	parent := model.Rect{X: 100, Y: 0, W: 100, H: 50}
	children := []model.Rect{
		{X: 0, Y: 150, W: 100, H: 50},
		{X: 200, Y: 120, W: 100, H: 80},
	}
	segs := Compute(parent, children, PixelOptions)

	// midY = max(50+24, 120-24) = 96
	expected := []model.Segment{
		{X1: 150, Y1: 50, X2: 150, Y2: 96},
		{X1: 50, Y1: 96, X2: 250, Y2: 96},
		{X1: 50, Y1: 96, X2: 50, Y2: 150},
		{X1: 250, Y1: 96, X2: 250, Y2: 120},
	}
	if !reflect.DeepEqual(segs, expected) {
		t.Errorf("Compute() = %+v, want %+v", segs, expected)
	}
}

func TestCompute_CrossbarNeverOverlapsParent(t *testing.T) {
	parent := model.Rect{X: 0, Y: 0, W: 100, H: 100}
	child := model.Rect{X: 0, Y: 110, W: 100, H: 40}
	segs := Compute(parent, []model.Rect{child}, PixelOptions)
	if segs[1].Y1 < parent.Bottom()+PixelOptions.Gap {
		t.Errorf("crossbar at %v is inside the parent gap (bottom %v)", segs[1].Y1, parent.Bottom())
	}
}

func TestComputeRail(t *testing.T) {
	parent := model.Rect{X: 0, Y: 0, W: 20, H: 4}
	children := []model.Rect{
		{X: 4, Y: 5, W: 16, H: 4},
		{X: 4, Y: 10, W: 16, H: 4},
	}
	segs := ComputeRail(parent, children, CellOptions)
	expected := []model.Segment{
		{X1: 2, Y1: 4, X2: 2, Y2: 12},
		{X1: 2, Y1: 7, X2: 4, Y2: 7},
		{X1: 2, Y1: 12, X2: 4, Y2: 12},
	}
	if !reflect.DeepEqual(segs, expected) {
		t.Errorf("ComputeRail() = %+v, want %+v", segs, expected)
	}
}

// fakeSource is a RectSource backed by a map.
type fakeSource struct {
	rects  map[string]model.Rect
	ox, oy float64
}

func (f *fakeSource) Rect(id string) (model.Rect, bool) {
	r, ok := f.rects[id]
	return r, ok
}

func (f *fakeSource) Origin() (float64, float64) { return f.ox, f.oy }

func TestCalculator_SkipsWhenUnmounted(t *testing.T) {
	src := &fakeSource{rects: map[string]model.Rect{
		"top": {X: 0, Y: 0, W: 10, H: 2},
		"a":   {X: 0, Y: 6, W: 10, H: 2},
	}}
	calc := NewCalculator(src, CellOptions)
	links := []model.Link{{Parent: "top", Children: []string{"a"}}}

	first, ok := calc.Recompute(links)
	if !ok || len(first) == 0 {
		t.Fatalf("first recompute failed: ok=%v segs=%v", ok, first)
	}

	links[0].Children = append(links[0].Children, "b")
	second, ok := calc.Recompute(links)
	if ok {
		t.Error("recompute with an unmounted child should report false")
	}
	if !reflect.DeepEqual(second, first) {
		t.Errorf("skipped recompute changed geometry: %v -> %v", first, second)
	}
	if calc.Runs() != 1 {
		t.Errorf("Runs() = %d, want 1", calc.Runs())
	}
}

func TestCalculator_NilSourceAndEmptyOverlay(t *testing.T) {
	calc := NewCalculator(nil, CellOptions)
	segs, ok := calc.Recompute([]model.Link{{Parent: "x", Children: []string{"y"}}})
	if ok || segs != nil {
		t.Errorf("Recompute() = %v, %v; want nil, false", segs, ok)
	}
}

func TestCalculator_ContainerRelative(t *testing.T) {
	src := &fakeSource{
		rects: map[string]model.Rect{
			"p": {X: 110, Y: 50, W: 20, H: 10},
			"c": {X: 110, Y: 90, W: 20, H: 10},
		},
		ox: 100, oy: 50,
	}
	calc := NewCalculator(src, PixelOptions)
	segs, ok := calc.Recompute([]model.Link{{Parent: "p", Children: []string{"c"}}})
	if !ok {
		t.Fatal("recompute failed")
	}
	if segs[0].X1 != 20 || segs[0].Y1 != 10 {
		t.Errorf("trunk starts at (%v,%v), want (20,10)", segs[0].X1, segs[0].Y1)
	}
}

func TestCalculator_SegmentsAreCopies(t *testing.T) {
	src := &fakeSource{rects: map[string]model.Rect{
		"p": {W: 10, H: 2},
		"c": {Y: 6, W: 10, H: 2},
	}}
	calc := NewCalculator(src, CellOptions)
	segs, _ := calc.Recompute([]model.Link{{Parent: "p", Children: []string{"c"}}})
	segs[0].X1 = 999
	if calc.Segments()[0].X1 == 999 {
		t.Error("caller mutation leaked into the calculator")
	}
}

func runCmd(t *testing.T, s *FrameScheduler, reason Reason) FrameMsg {
	t.Helper()
	msg, ok := s.Schedule(reason)().(FrameMsg)
	if !ok {
		t.Fatal("Schedule did not produce a FrameMsg")
	}
	return msg
}

func TestFrameScheduler_LastWriteWins(t *testing.T) {
	s := &FrameScheduler{Interval: time.Millisecond}

	first := runCmd(t, s, ReasonResize)
	second := runCmd(t, s, ReasonResize)
	third := runCmd(t, s, ReasonResize)

	if s.Due(first) || s.Due(second) {
		t.Error("superseded frames must be ignored")
	}
	if !s.Pending() {
		t.Error("newest frame should still be pending")
	}
	if !s.Due(third) {
		t.Error("newest frame should be due")
	}
	if s.Due(third) {
		t.Error("a frame must only be handled once")
	}
	if s.Pending() {
		t.Error("nothing should be pending after the newest frame ran")
	}
}

// A burst of resizes ends in exactly one recompute, and that recompute sees
// the final positions.
func TestResizeBurstRecomputesOnce(t *testing.T) {
	src := &fakeSource{rects: map[string]model.Rect{
		"p": {X: 0, W: 10, H: 2},
		"c": {X: 0, Y: 6, W: 10, H: 2},
	}}
	calc := NewCalculator(src, CellOptions)
	sched := &FrameScheduler{Interval: time.Millisecond}
	links := []model.Link{{Parent: "p", Children: []string{"c"}}}

	var msgs []FrameMsg
	for _, x := range []float64{10, 20, 30} {
		src.rects["p"] = model.Rect{X: x, W: 10, H: 2}
		src.rects["c"] = model.Rect{X: x, Y: 6, W: 10, H: 2}
		msgs = append(msgs, runCmd(t, sched, ReasonResize))
	}
	for _, m := range msgs {
		if sched.Due(m) {
			calc.Recompute(links)
		}
	}

	if calc.Runs() != 1 {
		t.Fatalf("Runs() = %d, want 1", calc.Runs())
	}
	if got := calc.Segments()[0].X1; got != 35 {
		t.Errorf("trunk x = %v, want 35 (final position)", got)
	}
}
