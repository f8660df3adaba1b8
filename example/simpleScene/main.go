package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"

	"github.com/akmonengine/impulse"
	"github.com/akmonengine/impulse/config"
	"github.com/akmonengine/impulse/entity"
	"github.com/akmonengine/impulse/logging"
	"github.com/google/uuid"
)

// defaultScene drops a ball, a crate and a grain of sand on a slab
const defaultScene = `
bodies:
  - name: ball
    kind: sphere
    position: [0, 2, 1]
    radius: 0.1
    material:
      restitution: 0.5
  - name: crate
    kind: box
    position: [1, 3, 1]
    orientation: [0.3, 0, 0.2]
    half_extents: [0.25, 0.25, 0.25]
  - name: sand
    kind: particle
    position: [-1, 1.5, 1]
constraints:
  - name: floor
    position: [0, 0.5, 1]
    half_extents: [2.5, 0.1, 1]
`

func main() {
	scenePath := flag.String("scene", "", "YAML scene file, the built-in scene when empty")
	seconds := flag.Float64("seconds", 6, "simulated duration")
	debug := flag.Bool("debug", false, "log every physics step")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	scene, err := loadScene(*scenePath)
	if err != nil {
		logger.Error("cannot load scene", "path", *scenePath, "error", err)
		os.Exit(1)
	}

	cfg := config.Default()
	if scene.Config != nil {
		cfg = *scene.Config
	}

	store := entity.NewStore()
	ids, err := scene.Build(store)
	if err != nil {
		logger.Error("cannot build scene", "error", err)
		os.Exit(1)
	}

	names := make(map[uuid.UUID]string, len(ids))
	for i, id := range ids {
		if i < len(scene.Bodies) {
			names[id] = scene.Bodies[i].Name
		} else {
			names[id] = scene.Constraints[i-len(scene.Bodies)].Name
		}
	}

	world, err := impulse.NewWorld(store, impulse.WithConfig(cfg), impulse.WithLogger(logger))
	if err != nil {
		logger.Error("cannot create world", "error", err)
		os.Exit(1)
	}

	world.Events.Subscribe(impulse.COLLISION_ENTER, func(event impulse.Event) {
		enter := event.(impulse.CollisionEnterEvent)
		logger.Info("collision", "a", names[enter.EntityA], "b", names[enter.EntityB], "static", enter.Static)
	})

	// Render frames of uneven length, around 60 fps
	elapsed, steps := 0.0, 0
	for elapsed < *seconds {
		frame := 1.0/60.0 + (rand.Float64()-0.5)*0.008
		elapsed += frame

		n, err := world.Update(frame)
		if err != nil {
			os.Exit(1)
		}
		steps += n
	}

	logger.Info("simulation done", "elapsed", elapsed, "steps", steps, "alpha", world.Alpha())
	for i, id := range ids[:len(scene.Bodies)] {
		record, _ := store.Position(id)
		logger.Info("body", "name", scene.Bodies[i].Name, "position", record.Position, "orientation", record.Orientation)
	}
}

func loadScene(path string) (config.Scene, error) {
	if path == "" {
		return config.ParseScene([]byte(defaultScene))
	}

	return config.LoadScene(path)
}
