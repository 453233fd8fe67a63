package grove

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps screen pixels to root space and back. Input sources use
// ScreenToRoot so events reach the dispatcher in root coordinates; renderers
// use RootToScreen to place views.
type Camera struct {
	// X and Y are the root-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle the camera covers.
	Viewport Rect

	// MinZoom and MaxZoom limit ZoomAt. Zero means unlimited.
	MinZoom, MaxZoom float64

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	Bounds        Rect

	followTarget  *Node
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	scrollTween *scrollAnim
}

// NewCamera creates a camera over viewport, centered on the viewport's
// own center so screen and root space start out identical.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		X:        viewport.X + viewport.Width/2,
		Y:        viewport.Y + viewport.Height/2,
		Zoom:     1.0,
		Viewport: viewport,
	}
}

// Follow makes the camera track a node's origin with the given offset and
// lerp factor. A lerp of 1.0 snaps immediately.
func (c *Camera) Follow(node *Node, offsetX, offsetY, lerp float64) {
	c.followTarget = node
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the given root position over duration
// seconds. Follow takes precedence while a target is set.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// ClampToBounds immediately clamps the camera position. Call it after
// moving the camera from an input handler so the next frame never sees
// outside the bounds. No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// Update advances follow, scroll and bounds clamping by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.followTarget != nil && !c.followTarget.IsDisposed() {
		p := c.followTarget.LocalToRoot(Vec2{})
		c.X += (p.X + c.followOffsetX - c.X) * c.followLerp
		c.Y += (p.Y + c.followOffsetY - c.Y) * c.followLerp
	} else if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// Bounds smaller than the visible area center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// viewMatrix maps root space to screen space:
//
//	Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
//
// where cx, cy is the viewport center.
func (c *Camera) viewMatrix() [6]float64 {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	sin, cos := math.Sincos(-c.Rotation)
	z := c.Zoom

	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := cx + z*(-cos*c.X+sin*c.Y)
	ty := cy + z*(-sin*c.X-cos*c.Y)

	return [6]float64{a, cc, b, d, tx, ty}
}

// RootToScreen converts root coordinates to screen coordinates.
func (c *Camera) RootToScreen(rx, ry float64) (sx, sy float64) {
	p := transformPoint(c.viewMatrix(), Vec2{rx, ry})
	return p.X, p.Y
}

// ScreenToRoot converts screen coordinates to root coordinates. Its
// signature matches the ScreenToRoot hook of the input sources.
func (c *Camera) ScreenToRoot(sx, sy float64) (rx, ry float64) {
	p := transformPoint(invertAffine(c.viewMatrix()), Vec2{sx, sy})
	return p.X, p.Y
}

// ZoomAt changes the zoom while keeping the root point under screen
// position (sx, sy) fixed, e.g. for wheel zoom at the cursor.
func (c *Camera) ZoomAt(sx, sy, zoom float64) {
	if c.MinZoom > 0 {
		zoom = math.Max(zoom, c.MinZoom)
	}
	if c.MaxZoom > 0 {
		zoom = math.Min(zoom, c.MaxZoom)
	}
	if zoom <= 0 {
		return
	}
	bx, by := c.ScreenToRoot(sx, sy)
	c.Zoom = zoom
	ax, ay := c.ScreenToRoot(sx, sy)
	c.X += bx - ax
	c.Y += by - ay
	c.ClampToBounds()
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's
// visible area in root space.
func (c *Camera) VisibleBounds() Rect {
	inv := invertAffine(c.viewMatrix())

	vx := c.Viewport.X
	vy := c.Viewport.Y
	vr := vx + c.Viewport.Width
	vb := vy + c.Viewport.Height

	p0 := transformPoint(inv, Vec2{vx, vy})
	p1 := transformPoint(inv, Vec2{vr, vy})
	p2 := transformPoint(inv, Vec2{vr, vb})
	p3 := transformPoint(inv, Vec2{vx, vb})

	minX := math.Min(math.Min(p0.X, p1.X), math.Min(p2.X, p3.X))
	minY := math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y))
	maxX := math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X))
	maxY := math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
