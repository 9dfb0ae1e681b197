package entity

// Renderer draws entities. Implementations only read the entities they are
// handed; the simulation passes snapshot copies, never live state.
type Renderer interface {
	RenderPlayer(player *Player)
	RenderEnemy(enemy *Enemy)
	RenderProjectile(projectile *Projectile)
	RenderPickup(pickup *Pickup)
	RenderParticle(particle *Particle)
	Clear()
	Present()
}
