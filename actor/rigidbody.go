package actor

import (
	"github.com/akmonengine/sweep/ccd"
	"github.com/go-gl/mathgl/mgl64"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by gravity and collision response
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies never move (e.g., ground, walls)
	// Their velocities are kept at zero
	BodyTypeStatic
)

// RigidBody represents a rigid polyhedron in the simulation
type RigidBody struct {
	// Id is a free handle for the caller (render mesh index, name, ...)
	Id any

	// Mesh is shared and never modified
	Mesh *Mesh

	// World pose
	Transform Transform

	// Linear velocity (m/s), world space
	Velocity mgl64.Vec3
	// Axis-angle rate: direction is the rotation axis, length is rad/s
	AngularVelocity mgl64.Vec3

	BodyType BodyType
}

// NewRigidBody creates a body at the identity transform, at rest
func NewRigidBody(mesh *Mesh, bodyType BodyType) *RigidBody {
	return &RigidBody{
		Mesh:      mesh,
		Transform: NewTransform(),
		BodyType:  bodyType,
	}
}

// IsStatic reports whether the body never moves
func (rb *RigidBody) IsStatic() bool {
	return rb.BodyType == BodyTypeStatic
}

// Position is the world position of the body origin
func (rb *RigidBody) Position() mgl64.Vec3 {
	return rb.Transform.Position()
}

// FutureTransform returns the pose reached after dt seconds of free motion.
// It does not modify the body.
func (rb *RigidBody) FutureTransform(dt float64) Transform {
	newPosition := rb.Transform.Position().Add(rb.Velocity.Mul(dt))
	transform := rb.Transform

	// normalizing a zero angular velocity would produce NaN
	if speed := rb.AngularVelocity.Len(); speed > 0 {
		transform = transform.RotateAxis(rb.AngularVelocity.Mul(1.0/speed), speed*dt)
	}

	return transform.WithPosition(newPosition)
}

// SweptVertices fills dst with the world position of every vertex
// under the current transform (Start) and under end (End)
func (rb *RigidBody) SweptVertices(end Transform, dst []ccd.Swept) []ccd.Swept {
	dst = dst[:0]
	for _, v := range rb.Mesh.Vertices {
		dst = append(dst, ccd.Swept{
			Start: rb.Transform.Apply(v),
			End:   end.Apply(v),
		})
	}
	return dst
}

// SweptAABB returns the bounding box of a set of swept vertices
func SweptAABB(vertices []ccd.Swept) AABB {
	aabb := EmptyAABB()
	for _, v := range vertices {
		aabb = aabb.Extend(v.Start).Extend(v.End)
	}
	return aabb
}

// WorldAABB returns the bounding box of the body at its current pose
func (rb *RigidBody) WorldAABB() AABB {
	aabb := EmptyAABB()
	for _, v := range rb.Mesh.Vertices {
		aabb = aabb.Extend(rb.Transform.Apply(v))
	}
	return aabb
}

// WorldVertex returns vertex i in world space
func (rb *RigidBody) WorldVertex(i int) mgl64.Vec3 {
	return rb.Transform.Apply(rb.Mesh.Vertices[i])
}

// WorldNormal returns the normalized world-space normal of triangle i,
// or the zero vector for a degenerate triangle
func (rb *RigidBody) WorldNormal(i int) mgl64.Vec3 {
	n := rb.Transform.ApplyRotation(rb.Mesh.LocalNormal(i))
	if n.LenSqr() < 1e-24 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// SupportWorld returns the world-space vertex farthest along direction
func (rb *RigidBody) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	// rotation is orthonormal: its transpose is its inverse
	localDirection := rb.Transform.Rotation().Transpose().Mul3x1(direction)
	return rb.Transform.Apply(rb.Mesh.Support(localDirection))
}

// LowestPoint returns the smallest world Y over all vertices
func (rb *RigidBody) LowestPoint() float64 {
	return rb.WorldAABB().Min.Y()
}

// DynamicState is the mutable part of a body
type DynamicState struct {
	Transform       Transform
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

func (rb *RigidBody) State() DynamicState {
	return DynamicState{
		Transform:       rb.Transform,
		Velocity:        rb.Velocity,
		AngularVelocity: rb.AngularVelocity,
	}
}

func (rb *RigidBody) SetState(state DynamicState) {
	rb.Transform = state.Transform
	rb.Velocity = state.Velocity
	rb.AngularVelocity = state.AngularVelocity
}
