// Package render draws particles onto an ebiten screen.
package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/sparks/asset"
	"github.com/plus3/sparks/ecs"
	"github.com/plus3/sparks/particle"
	"github.com/tanema/gween/ease"
)

// Background is the clear colour of the screen.
var Background = color.RGBA{R: 40, G: 40, B: 40, A: 255}

// Renderer is a Draw system. Set Screen before running the Draw schedule.
type Renderer struct {
	Screen *ebiten.Image
	// Lifetime is the full particle lifetime used to compute the fade.
	Lifetime float32
	// Fade maps elapsed lifetime to alpha; nil draws every particle opaque.
	Fade ease.TweenFunc

	Cameras ecs.Query[struct {
		*particle.Camera2D
		*particle.Transform
	}]
	Sprites ecs.Query[struct {
		*particle.Transform
		*particle.Sprite
		Particle *particle.Particle `ecs:"optional"`
	}]
	Meshes    ecs.Singleton[asset.Assets[asset.Mesh]]
	Materials ecs.Singleton[asset.Assets[asset.ColorMaterial]]
}

func (r *Renderer) Execute(frame *ecs.UpdateFrame) {
	if r.Screen == nil {
		return
	}
	r.Screen.Fill(Background)

	meshes, materials := r.Meshes.Get(), r.Materials.Get()
	if meshes == nil || materials == nil {
		return
	}

	view := DefaultView
	for cam := range r.Cameras.Iter() {
		view = View{Center: cam.Transform.Translation, Scale: cam.Camera2D.Scale}
		break
	}
	bounds := r.Screen.Bounds()
	w, h := float32(bounds.Dx()), float32(bounds.Dy())

	for item := range r.Sprites.Iter() {
		mesh, ok := meshes.Get(item.Sprite.Mesh)
		if !ok || mesh.Shape != asset.ShapeCircle {
			continue
		}
		material, ok := materials.Get(item.Sprite.Material)
		if !ok {
			continue
		}

		c := color.NRGBA(material.Color)
		if item.Particle != nil {
			c.A = FadeAlpha(c.A, item.Particle.TTL, r.Lifetime, r.Fade)
		}

		x, y := view.Project(item.Transform.Translation, w, h)
		vector.DrawFilledCircle(r.Screen, x, y, mesh.Radius*view.Scale, c, true)
	}
}

// View maps world coordinates onto the screen. World +Y points up.
type View struct {
	Center mgl32.Vec3
	// Scale is screen pixels per world unit.
	Scale float32
}

// DefaultView is used when no camera entity exists.
var DefaultView = View{Scale: 1}

// Project returns the screen position of a world point on a w×h screen.
func (v View) Project(p mgl32.Vec3, w, h float32) (x, y float32) {
	x = w/2 + (p.X()-v.Center.X())*v.Scale
	y = h/2 - (p.Y()-v.Center.Y())*v.Scale
	return x, y
}

// FadeAlpha eases alpha from a down to 0 as ttl runs from lifetime to 0.
func FadeAlpha(a uint8, ttl, lifetime float32, fade ease.TweenFunc) uint8 {
	if fade == nil || lifetime <= 0 {
		return a
	}

	elapsed := min(max(lifetime-ttl, 0), lifetime)
	v := fade(elapsed, float32(a), -float32(a), lifetime)
	return uint8(min(max(v, 0), 255))
}
