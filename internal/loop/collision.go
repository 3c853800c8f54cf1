package loop

import (
	"github.com/tomz197/spaceship/internal/object"
	"github.com/tomz197/spaceship/internal/physics"
)

// resolveShipCollisions handles asteroids hitting the ship. A hit destroys
// the asteroid, costs a life and makes the ship immune, so at most one
// asteroid can hit it per frame.
func (g *Game) resolveShipCollisions() {
	ship := g.Ship.Sprite()
	for _, a := range g.Asteroids {
		if !g.Ship.CanCollide() {
			return
		}
		if a.IsDestroyed() {
			continue
		}
		if !object.CheckCollision(ship, a.Sprite(), g.cfg.Arena.CollisionScale) {
			continue
		}

		g.explode(a.Position)
		a.MarkDestroyed()
		g.Ship.Hit()
		if g.Ship.Lives > 0 {
			g.animate(g.sheets.LifeLoss, g.hud.LifeIconPosition(g.Ship.Lives))
		}
	}
}

// resolveProjectileCollisions handles projectile hits on asteroids. Each
// projectile destroys at most one asteroid.
func (g *Game) resolveProjectileCollisions() {
	for _, p := range g.Projectiles {
		if p.IsDestroyed() {
			continue
		}
		shot := p.Sprite()
		for _, a := range g.Asteroids {
			if a.IsDestroyed() {
				continue
			}
			if object.CheckCollision(shot, a.Sprite(), g.cfg.Arena.CollisionScale) {
				g.explode(a.Position)
				p.MarkDestroyed()
				a.MarkDestroyed()
				break
			}
		}
	}
}

func (g *Game) explode(at physics.Vec) {
	g.animate(g.sheets.Explosion, at)
}

func (g *Game) animate(sheet object.Sheet, at physics.Vec) {
	anim := g.cfg.Animation
	g.Animations = append(g.Animations, object.NewAnimation(sheet, at, anim.FrameTime, anim.Scale))
}
