package main

import (
	"context"
	"flag"
	"log"

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

	view, err := NewView(runner, meshes)
	if err != nil {
		log.Fatalf("Failed to start terminal: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go runner.Run(ctx)

	view.run()

	cancel()
	view.screen.Fini()
}
