package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vecNear(a, b mgl32.Vec2) bool {
	const epsilon = 0.001
	return math.Abs(float64(a.X()-b.X())) < epsilon && math.Abs(float64(a.Y()-b.Y())) < epsilon
}

func TestViewSpace(t *testing.T) {
	tests := []struct {
		name     string
		position mgl32.Vec3
		rotation float32
		world    mgl32.Vec2
		want     mgl32.Vec2
	}{
		{"identity", mgl32.Vec3{0, 0, 0}, 0, mgl32.Vec2{5, 3}, mgl32.Vec2{5, 3}},
		{"translated", mgl32.Vec3{2, 10, 1}, 0, mgl32.Vec2{5, 3}, mgl32.Vec2{3, 2}},
		{"quarter turn", mgl32.Vec3{0, 0, 0}, 90, mgl32.Vec2{5, 3}, mgl32.Vec2{3, -5}},
		{"half turn", mgl32.Vec3{0, 0, 0}, 180, mgl32.Vec2{5, 3}, mgl32.Vec2{-5, -3}},
		{"behind after translate", mgl32.Vec3{10, 0, 0}, 0, mgl32.Vec2{5, 0}, mgl32.Vec2{-5, 0}},
	}
	for _, test := range tests {
		cam := NewCamera(CameraConfig{Position: test.position, Rotation: test.rotation})
		got := cam.ViewSpace(test.world)
		if !vecNear(got, test.want) {
			t.Errorf("%s: ViewSpace(%v) = %v, want %v", test.name, test.world, got, test.want)
		}
	}
}

func TestPosition2D(t *testing.T) {
	cam := NewCamera(CameraConfig{Position: mgl32.Vec3{1, 2, 3}})
	if cam.Position2D() != (mgl32.Vec2{1, 3}) {
		t.Errorf("Position2D() = %v, want (1,3)", cam.Position2D())
	}
	if cam.Height() != 2 {
		t.Errorf("Height() = %v, want 2", cam.Height())
	}
}

func TestClipNear(t *testing.T) {
	// One endpoint exactly on the camera plane: the clipped lateral
	// offset follows the lerp law of the segment against the half plane.
	a := mgl32.Vec2{0, -4}
	b := mgl32.Vec2{8, 4}
	near := float32(2)

	got := clipNear(a, b, near)
	wantT := (near - a.X()) / (b.X() - a.X())
	want := mgl32.Vec2{near, a.Y() + (b.Y()-a.Y())*wantT}
	if !vecNear(got, want) {
		t.Errorf("clipNear = %v, want %v", got, want)
	}
	if got.X() != near {
		t.Errorf("clipped depth = %v, want %v", got.X(), near)
	}
}

func TestScreenPlaneDistance(t *testing.T) {
	surface := NewBufferSurface(100, 100)
	cam := NewCamera(CameraConfig{FOV: 90, NearPlane: 0.1, FarPlane: 1000})
	r, err := New(surface, cam, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	// d = (W/2) / tan(45 deg) = 50.
	if d := r.ScreenPlaneDistance(); math.Abs(float64(d-50)) > 0.01 {
		t.Errorf("ScreenPlaneDistance() = %v, want 50", d)
	}
}

func TestNewRendererInvalidConfig(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	if _, err := New(nil, cam, DefaultConfig()); err == nil {
		t.Error("nil surface accepted")
	} else if kind, _ := KindOf(err); kind != InvalidConfig {
		t.Errorf("nil surface: %v", err)
	}
	if _, err := New(NewBufferSurface(100, 100), NewCamera(CameraConfig{FOV: 0}), DefaultConfig()); err == nil {
		t.Error("zero fov accepted")
	}
}
