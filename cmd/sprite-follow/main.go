package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/sgf/audio"
	"github.com/lixenwraith/sgf/core"
	"github.com/lixenwraith/sgf/engine"
	"github.com/lixenwraith/sgf/event"
	"github.com/lixenwraith/sgf/render"
	"github.com/lixenwraith/sgf/system"
	"github.com/lixenwraith/sgf/terminal"
	"github.com/pkg/profile"
)

var (
	tickFlag    = flag.Duration("tick", 0, "Tick interval, overrides SGF_TICK_MS")
	debugFlag   = flag.Bool("debug", false, "Write logs to logs/sgf.log")
	muteFlag    = flag.Bool("mute", false, "Disable sound cues")
	cursorFlag  = flag.String("cursor", "", "Cursor sprite sheet PNG, one 32x32 frame per cell block")
	seedFlag    = flag.Uint64("seed", 0, "Particle random seed, 0 seeds from the clock")
	profileFlag = flag.String("profile", "", "Profile mode: cpu, mem")
	bgFlag      = flag.String("bg", "123456", "Background color, RRGGBB")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	switch *profileFlag {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "":
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", *profileFlag)
		os.Exit(2)
	}

	if !terminal.IsTerminal(os.Stdout) {
		fmt.Fprintln(os.Stderr, "sprite-follow: stdout is not a terminal")
		os.Exit(1)
	}

	bg, err := core.ParseHex(*bgFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -bg: %v\n", err)
		os.Exit(2)
	}

	if err := run(bg); err != nil {
		fmt.Fprintf(os.Stderr, "sprite-follow: %v\n", err)
		os.Exit(1)
	}
}

// crashScreen finalizes the screen, then forces a terminal reset in case Fini left raw mode behind
type crashScreen struct {
	tcell.Screen
}

func (c crashScreen) Fini() {
	c.Screen.Fini()
	terminal.EmergencyReset(os.Stdout)
}

func run(bg core.RGB) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Panics on this goroutine restore the screen like core.Go does for others
	core.RegisterCrashTerminal(crashScreen{screen})
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	// Native cursor hidden, the sprite replaces it
	screen.HideCursor()
	screen.EnableMouse(tcell.MouseMotionEvents)

	metrics := render.DefaultCellMetrics
	surface := render.NewTerminalSurface(screen, metrics, bg)

	cfg := engine.LoadConfig()
	if *tickFlag > 0 {
		cfg.TickInterval = *tickFlag
	}
	eng := engine.New(surface, cfg)

	audioCfg := audio.LoadAudioConfig()
	if *muteFlag {
		audioCfg.Enabled = false
	}
	sounds := audio.NewSoundManager(audioCfg)
	if err := sounds.Initialize(); err != nil {
		// Non-fatal, the demo runs silent
		log.Printf("sprite-follow: audio: %v", err)
	}
	defer sounds.Cleanup()

	spawnCfg := system.LoadSpawnConfig()
	spawnCfg.Seed = *seedFlag

	bus := event.NewBus()
	if _, err := buildScene(eng, bus, loadCursorSprite(*cursorFlag, metrics), spawnCfg, sounds); err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	if err := eng.Start(); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	defer func() {
		eng.Stop()
		<-eng.Done()
		st := eng.Stats()
		log.Printf("sprite-follow: stopped after %d ticks, %d render errors, %d update panics",
			st.Ticks, st.RenderErrors, st.UpdatePanics)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	input := terminal.NewInput(screen, bus, eng, metrics, surface)
	if err := input.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("input: %w", err)
	}
	return nil
}
