package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/akmonengine/sweep"
	"github.com/akmonengine/sweep/config"
	"github.com/akmonengine/sweep/scene"
	"github.com/akmonengine/sweep/sim"
	"github.com/akmonengine/sweep/stream"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "YAML config file")
	addr := flag.String("addr", "", "listen address, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	def, err := scene.LoadOrDefault(cfg.Simulation.Scene)
	if err != nil {
		log.Fatal(err)
	}
	runner, err := sim.NewRunner(cfg.Simulation, def)
	if err != nil {
		log.Fatal(err)
	}

	contacts := 0
	runner.World().Events.Subscribe(sweep.CONTACT, func(event sweep.Event) {
		contacts++
	})
	runner.World().Events.Subscribe(sweep.SUBSTEP_CAP, func(event sweep.Event) {
		log.Printf("substep cap reached after %d contacts (%d contacts total)", event.(sweep.SubstepCapEvent).Substeps, contacts)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runner.Run(ctx)

	server := stream.NewServer(cfg.Server.Addr, cfg.Server.BroadcastRate, def, runner)
	server.Logger = log.Default()

	log.Printf("Server starting on %s (websocket at /ws), %d bodies at %.0f Hz", cfg.Server.Addr, len(def.Bodies), cfg.Simulation.TickRate)
	if err := server.Run(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}
