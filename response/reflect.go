package response

import "github.com/go-gl/mathgl/mgl64"

// Reflect is the default policy: the vertex owner's linear velocity is negated,
// nothing else changes. The normal, the triangle owner and the angular velocities
// are ignored, so this is a placeholder rather than a physical impulse.
var Reflect Policy = PolicyFunc(negateVertexVelocity)

func negateVertexVelocity(a, b BodyState, contact Contact) (BodyState, BodyState) {
	a.Velocity = a.Velocity.Mul(-1)
	return a, b
}

// Static wraps a policy so that static bodies always come out at rest
func Static(policy Policy) Policy {
	return PolicyFunc(func(a, b BodyState, contact Contact) (BodyState, BodyState) {
		a, b = policy.Resolve(a, b, contact)
		if a.Static {
			a.Velocity, a.AngularVelocity = mgl64.Vec3{}, mgl64.Vec3{}
		}
		if b.Static {
			b.Velocity, b.AngularVelocity = mgl64.Vec3{}, mgl64.Vec3{}
		}
		return a, b
	})
}
