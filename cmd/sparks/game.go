package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/sparks/ecs"
	"github.com/plus3/sparks/particle"
	"github.com/plus3/sparks/render"
)

// Game adapts the scheduler to ebiten's Update/Draw loop.
type Game struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Renderer  *render.Renderer
	Counters  *ecs.Singleton[particle.Counters]
}

func (g *Game) Update() error {
	// Quit keys only; the effect itself takes no input.
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		log.Println("Quit key pressed, shutting down")
		return ebiten.Termination
	}

	g.Scheduler.Once(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Renderer.Screen = screen
	g.Scheduler.RunSchedule(ecs.Draw, 0)
	g.Renderer.Screen = nil

	counters := g.Counters.Get()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.1f\nParticles: %d (spawned %d, expired %d)",
		ebiten.ActualFPS(), counters.Live(), counters.Spawned, counters.Expired))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
