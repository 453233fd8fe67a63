package grove

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraDefaultsIdentity(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	rx, ry := cam.ScreenToRoot(123, 45)
	if !approxEqual(rx, 123, epsilon) || !approxEqual(ry, 45, epsilon) {
		t.Errorf("ScreenToRoot(123,45) = (%f,%f), want identity", rx, ry)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X = 100
	cam.Y = 50
	sx, sy := cam.RootToScreen(100, 50)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("RootToScreen(100,50) with cam at (100,50) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.Zoom = 2.0
	sx1, _ := cam.RootToScreen(1, 0)
	sx0, _ := cam.RootToScreen(0, 0)
	if !approxEqual(sx1-sx0, 2.0, epsilon) {
		t.Errorf("zoom 2x: 1 root unit = %f screen pixels, want 2.0", sx1-sx0)
	}
}

func TestCameraRotation90(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X, cam.Y = 0, 0
	cam.Rotation = math.Pi / 2

	// Rotate(-pi/2) maps (1,0) to (0,-1), then the viewport center offsets it.
	sx, sy := cam.RootToScreen(1, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 299, epsilon) {
		t.Errorf("RootToScreen(1,0) = (%f,%f), want (400,299)", sx, sy)
	}
}

func TestScreenToRootRoundtrip(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X = 42
	cam.Y = -17
	cam.Zoom = 1.5
	cam.Rotation = 0.3

	sx, sy := cam.RootToScreen(123, -456)
	rx, ry := cam.ScreenToRoot(sx, sy)
	if !approxEqual(rx, 123, 1e-6) || !approxEqual(ry, -456, 1e-6) {
		t.Errorf("roundtrip: got (%f,%f), want (123,-456)", rx, ry)
	}
}

func TestCameraZoomAtKeepsPointFixed(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.MaxZoom = 3
	bx, by := cam.ScreenToRoot(100, 100)
	cam.ZoomAt(100, 100, 2)
	ax, ay := cam.ScreenToRoot(100, 100)
	if !approxEqual(ax, bx, 1e-9) || !approxEqual(ay, by, 1e-9) {
		t.Errorf("point under cursor moved: (%f,%f) -> (%f,%f)", bx, by, ax, ay)
	}
	cam.ZoomAt(100, 100, 10)
	if cam.Zoom != 3 {
		t.Errorf("Zoom = %f, want clamped to 3", cam.Zoom)
	}
}

func TestVisibleBoundsZoom2(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X, cam.Y = 400, 300
	cam.Zoom = 2
	b := cam.VisibleBounds()
	if !approxEqual(b.X, 200, epsilon) || !approxEqual(b.Y, 150, epsilon) ||
		!approxEqual(b.Width, 400, epsilon) || !approxEqual(b.Height, 300, epsilon) {
		t.Errorf("VisibleBounds = %+v, want {200 150 400 300}", b)
	}
}

func TestCameraFollow(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	root := NewNode("root")
	target := NewNode("target")
	target.SetPosition(500, 300)
	root.AddChild(target)

	cam.Follow(target, 10, 0, 1.0)
	cam.Update(1.0 / 60.0)
	if !approxEqual(cam.X, 510, epsilon) || !approxEqual(cam.Y, 300, epsilon) {
		t.Errorf("follow: cam = (%f,%f), want (510,300)", cam.X, cam.Y)
	}

	cam.Follow(target, 0, 0, 0.5)
	target.SetPosition(100, 300)
	cam.Update(1.0 / 60.0)
	if !approxEqual(cam.X, 305, epsilon) {
		t.Errorf("lerp: cam.X = %f, want 305", cam.X)
	}

	cam.Unfollow()
	cam.Update(1.0 / 60.0)
	if !approxEqual(cam.X, 305, epsilon) {
		t.Errorf("after Unfollow: cam.X = %f, want 305", cam.X)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.X, cam.Y = 0, 0
	cam.ScrollTo(100, 200, 1.0, ease.Linear)

	cam.Update(0.5)
	if !approxEqual(cam.X, 50, 1.0) || !approxEqual(cam.Y, 100, 1.0) {
		t.Errorf("scroll halfway: cam = (%f,%f), want ~(50,100)", cam.X, cam.Y)
	}
	cam.Update(0.5)
	if !approxEqual(cam.X, 100, 1.0) || !approxEqual(cam.Y, 200, 1.0) {
		t.Errorf("scroll end: cam = (%f,%f), want ~(100,200)", cam.X, cam.Y)
	}
	if cam.scrollTween != nil {
		t.Error("scrollTween not nil after completion")
	}
}

func TestCameraBounds(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 1000, Height: 1000})

	cam.X, cam.Y = 0, 0
	cam.Update(0)
	if cam.X < 50 || cam.Y < 50 {
		t.Errorf("bounds clamp min: cam = (%f,%f), want >= (50,50)", cam.X, cam.Y)
	}

	cam.X, cam.Y = 999, 999
	cam.ClampToBounds()
	if cam.X > 950 || cam.Y > 950 {
		t.Errorf("bounds clamp max: cam = (%f,%f), want <= (950,950)", cam.X, cam.Y)
	}

	cam.ClearBounds()
	cam.X, cam.Y = -999, -999
	cam.Update(0)
	if cam.X != -999 || cam.Y != -999 {
		t.Errorf("after ClearBounds: cam = (%f,%f), want (-999,-999)", cam.X, cam.Y)
	}
}

func TestCameraBoundsSmallWorld(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.SetBounds(Rect{X: 0, Y: 0, Width: 100, Height: 100})
	cam.Update(0)
	if !approxEqual(cam.X, 50, epsilon) || !approxEqual(cam.Y, 50, epsilon) {
		t.Errorf("small world center: cam = (%f,%f), want (50,50)", cam.X, cam.Y)
	}
}

func TestCameraDrivesDispatch(t *testing.T) {
	cam := NewCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	cam.Zoom = 2
	root := NewNode("root")
	box := NewRect("box", 390, 290, 20, 20)
	root.AddChild(box)
	d := NewDispatcher(DefaultConfig())

	// Screen (400,300) is the viewport center, which sees root (400,300).
	rx, ry := cam.ScreenToRoot(400, 300)
	if evt := send(d, root, EventStart, 0, rx, ry); evt.Target != View(box) {
		t.Error("centered box should be hit through the camera")
	}
	// Screen (10,10) at 2x is far outside the box.
	rx, ry = cam.ScreenToRoot(10, 10)
	if evt := send(d, root, EventStart, 0, rx, ry); evt.Target != nil {
		t.Errorf("target = %v, want none", viewName(evt.Target))
	}
}
