package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/akmonengine/sweep"
	"github.com/akmonengine/sweep/audio"
	"github.com/akmonengine/sweep/config"
	"github.com/akmonengine/sweep/scene"
	"github.com/akmonengine/sweep/sim"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	def, err := scene.LoadOrDefault(cfg.Simulation.Scene)
	if err != nil {
		log.Fatal(err)
	}
	runner, err := sim.NewRunner(cfg.Simulation, def)
	if err != nil {
		log.Fatal(err)
	}
	meshes, err := scene.Build(def)
	if err != nil {
		log.Fatal(err)
	}

	subscribeLogs(runner.World())
	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio.Frequency, time.Duration(cfg.Audio.DurationMs)*time.Millisecond)
		if err := player.Initialize(); err != nil {
			// Non-fatal, the viewer runs without sound
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer player.Cleanup()
			runner.World().Events.Subscribe(sweep.CONTACT, func(event sweep.Event) {
				contact := event.(sweep.ContactEvent)
				player.PlayContact(contact.VertexBody.Velocity.Dot(contact.Normal))
			})
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := runner.Run(ctx); err != nil {
			log.Printf("simulation stopped: %v", err)
		}
	}()

	NewViewer(runner, meshes).Run()
}

func subscribeLogs(world *sweep.World) {
	world.Events.Subscribe(sweep.SUBSTEP_CAP, func(event sweep.Event) {
		log.Printf("substep cap reached after %d contacts, remaining motion committed", event.(sweep.SubstepCapEvent).Substeps)
	})
	world.Events.Subscribe(sweep.OVERLAP_ENTER, func(event sweep.Event) {
		overlap := event.(sweep.OverlapEnterEvent)
		log.Printf("bodies %v and %v interpenetrate", overlap.BodyA.Id, overlap.BodyB.Id)
	})
}
