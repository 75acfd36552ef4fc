package particle

// Step advances one particle by dt seconds and reports whether its lifetime ran out.
//
// The lifetime is decremented first; gravity, damping and integration are
// applied regardless, since an expired particle is removed before anyone
// looks at it again. Damping is not clamped: when Damping*dt > 1 the velocity
// flips sign. dt is not validated.
func Step(transform *Transform, p *Particle, dt float32) (expired bool) {
	p.TTL -= dt
	expired = p.TTL <= 0

	p.Velocity[1] -= p.Gravity * dt
	p.Velocity = p.Velocity.Mul(1 - p.Damping*dt)
	transform.Translation = transform.Translation.Add(p.Velocity.Mul(dt))

	return expired
}
