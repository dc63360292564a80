package gjk

import (
	"math"
	"testing"

	"github.com/akmonengine/sweep/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Test helper functions

func createCubeBody(position mgl64.Vec3, half float64) *actor.RigidBody {
	h := half
	mesh := actor.MustMesh([]mgl64.Vec3{
		{-h, -h, -h}, {-h, -h, h}, {-h, h, -h}, {-h, h, h},
		{h, -h, -h}, {h, -h, h}, {h, h, -h}, {h, h, h},
	}, []actor.Triangle{
		{0, 2, 3}, {0, 3, 1},
		{0, 1, 5}, {0, 5, 4},
		{0, 4, 6}, {0, 6, 2},
		{7, 2, 6}, {7, 6, 4},
		{7, 4, 5}, {7, 5, 1},
		{7, 1, 3}, {7, 3, 2},
	})

	body := actor.NewRigidBody(mesh, actor.BodyTypeDynamic)
	body.Transform = body.Transform.Translate(position)
	return body
}

// MinkowskiSupport tests

func TestMinkowskiSupport(t *testing.T) {
	t.Run("two separated cubes along x-axis", func(t *testing.T) {
		a := createCubeBody(mgl64.Vec3{0, 0, 0}, 1.0)
		b := createCubeBody(mgl64.Vec3{3, 0, 0}, 1.0)

		// max(A.x) - min(B.x) = 1 - 2 = -1
		support := MinkowskiSupport(a, b, mgl64.Vec3{1, 0, 0})
		if support.X() != -1.0 {
			t.Errorf("Expected support.X = -1, got %v", support.X())
		}
	})

	t.Run("two overlapping cubes", func(t *testing.T) {
		a := createCubeBody(mgl64.Vec3{0, 0, 0}, 1.0)
		b := createCubeBody(mgl64.Vec3{1.5, 0, 0}, 1.0)

		// max(A.x) - min(B.x) = 1 - 0.5 = 0.5
		support := MinkowskiSupport(a, b, mgl64.Vec3{1, 0, 0})
		if support.X() != 0.5 {
			t.Errorf("Expected support.X = 0.5, got %v", support.X())
		}
	})

	t.Run("rotated body", func(t *testing.T) {
		a := createCubeBody(mgl64.Vec3{0, 0, 0}, 1.0)
		a.Transform = a.Transform.RotateY(math.Pi / 4)
		b := createCubeBody(mgl64.Vec3{5, 0, 0}, 1.0)

		// a corner of the rotated cube now reaches sqrt(2) along X
		support := MinkowskiSupport(a, b, mgl64.Vec3{1, 0, 0})
		expected := math.Sqrt2 - 4
		if math.Abs(support.X()-expected) > 1e-9 {
			t.Errorf("Expected support.X = %v, got %v", expected, support.X())
		}
	})
}

func TestGJK_Intersecting(t *testing.T) {
	testCases := []struct {
		name      string
		positionB mgl64.Vec3
	}{
		{"overlapping on X", mgl64.Vec3{1.5, 0.3, 0.2}},
		{"overlapping diagonally", mgl64.Vec3{1.2, 0.4, -0.3}},
		{"deep overlap", mgl64.Vec3{-0.3, 0.2, 0.1}},
		{"identical position", mgl64.Vec3{0, 0, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := createCubeBody(mgl64.Vec3{0, 0, 0}, 1.0)
			b := createCubeBody(tc.positionB, 1.0)

			if !GJK(a, b, &Simplex{}) {
				t.Errorf("Expected collision for %s", tc.name)
			}
			if !Intersect(b, a) {
				t.Errorf("Expected Intersect to be symmetric for %s", tc.name)
			}
		})
	}
}

func TestGJK_Separated(t *testing.T) {
	testCases := []struct {
		name      string
		positionB mgl64.Vec3
	}{
		{"far apart", mgl64.Vec3{10, 0.3, 0.2}},
		{"barely separated", mgl64.Vec3{2.1, 0.3, 0.2}},
		{"separated on Y", mgl64.Vec3{0.2, 5, 0.1}},
		{"separated on Z", mgl64.Vec3{0.1, 0.3, -5}},
		{"separated diagonally", mgl64.Vec3{3, 3, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := createCubeBody(mgl64.Vec3{0, 0, 0}, 1.0)
			b := createCubeBody(tc.positionB, 1.0)

			if GJK(a, b, &Simplex{}) {
				t.Errorf("Expected no collision for %s", tc.name)
			}
			if Intersect(b, a) {
				t.Errorf("Expected Intersect to be symmetric for %s", tc.name)
			}
		})
	}
}

func TestGJK_EmptyMesh(t *testing.T) {
	a := createCubeBody(mgl64.Vec3{0, 0, 0}, 1.0)
	b := actor.NewRigidBody(&actor.Mesh{}, actor.BodyTypeStatic)

	if GJK(a, b, &Simplex{}) || GJK(b, a, &Simplex{}) {
		t.Error("An empty mesh never overlaps")
	}
}

func TestSimplexReset(t *testing.T) {
	simplex := &Simplex{Count: 3}
	simplex.Reset()

	if simplex.Count != 0 {
		t.Errorf("Expected Count = 0 after Reset, got %d", simplex.Count)
	}
}
