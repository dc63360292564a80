// Package response decides the velocities of two bodies after a contact.
package response

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BodyState is the part of a body a response policy may read and replace
type BodyState struct {
	Center          mgl64.Vec3
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	Static          bool
}

// Contact is the single contact resolved in a substep.
// Point belongs to the vertex owner (A), Normal is the face normal of the triangle owner (B).
type Contact struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// Policy turns the state of both bodies at a contact into their post-contact state.
// a owns the colliding vertex, b owns the colliding triangle.
type Policy interface {
	Resolve(a, b BodyState, contact Contact) (BodyState, BodyState)
}

// PolicyFunc adapts a function to Policy
type PolicyFunc func(a, b BodyState, contact Contact) (BodyState, BodyState)

func (f PolicyFunc) Resolve(a, b BodyState, contact Contact) (BodyState, BodyState) {
	return f(a, b, contact)
}

// PointVelocity is the velocity of the material point at p: v + ω×(p-center)
func PointVelocity(state BodyState, p mgl64.Vec3) mgl64.Vec3 {
	return state.Velocity.Add(state.AngularVelocity.Cross(p.Sub(state.Center)))
}

// RelativeNormalVelocity is the approach speed of a toward b along the contact normal.
// Negative values mean the bodies are closing in.
func RelativeNormalVelocity(a, b BodyState, contact Contact) float64 {
	return PointVelocity(a, contact.Point).Sub(PointVelocity(b, contact.Point)).Dot(contact.Normal)
}
