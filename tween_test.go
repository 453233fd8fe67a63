package grove

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewNode("pos")
	node.X = 10
	node.Y = 20

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)
	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be done halfway")
	}
	if math.Abs(node.X-55) > 0.5 {
		t.Errorf("halfway X = %f, want ~55", node.X)
	}
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.X-100) > 0.5 || math.Abs(node.Y-200) > 0.5 {
		t.Errorf("pos = (%f, %f), want ~(100, 200)", node.X, node.Y)
	}
}

func TestTweenScaleAndRotation(t *testing.T) {
	node := NewNode("n")
	s := TweenScale(node, 2, 3, 0.5, ease.Linear)
	r := TweenRotation(node, math.Pi, 0.5, ease.Linear)
	for _, g := range []*TweenGroup{s, r} {
		g.Update(0.25)
		g.Update(0.25)
	}
	if !s.Done || !r.Done {
		t.Fatal("expected both groups done")
	}
	if math.Abs(node.ScaleX-2) > 0.01 || math.Abs(node.ScaleY-3) > 0.01 {
		t.Errorf("scale = (%f, %f)", node.ScaleX, node.ScaleY)
	}
	if math.Abs(node.Rotation-math.Pi) > 0.01 {
		t.Errorf("Rotation = %f", node.Rotation)
	}
}

func TestTweenDisposedNodeStops(t *testing.T) {
	node := NewNode("gone")
	g := TweenPosition(node, 50, 50, 1.0, ease.Linear)
	node.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("disposed target should stop the group")
	}
	if node.X != 0 {
		t.Errorf("X = %f, want untouched 0", node.X)
	}
}

func TestTweenStop(t *testing.T) {
	node := NewNode("n")
	g := TweenPosition(node, 50, 0, 1.0, ease.Linear)
	g.Update(0.5)
	g.Stop()
	x := node.X
	g.Update(0.5)
	if node.X != x {
		t.Error("stopped group should not write")
	}
}
