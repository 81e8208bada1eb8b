package main

import (
	"embed"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/lixenwraith/sgf/asset"
	"github.com/lixenwraith/sgf/audio"
	"github.com/lixenwraith/sgf/component"
	"github.com/lixenwraith/sgf/engine"
	"github.com/lixenwraith/sgf/event"
	"github.com/lixenwraith/sgf/render"
	"github.com/lixenwraith/sgf/system"
)

//go:embed assets/cursor_32x32.png
var assets embed.FS

const (
	cursorSheet = "assets/cursor_32x32.png"
	cursorFrame = 32
	cursorGlyph = "➤"

	// Sparks burst on every key press alongside the square
	sparksPerKey = 3
)

// cueFor maps a spawned kind onto its sound
func cueFor(kind system.Kind) audio.SoundType {
	if kind == system.KindSpark {
		return audio.SoundSpark
	}
	return audio.SoundBlip
}

// loadCursorSprite loads the cursor sheet from path, or the embedded default when path is empty
// Falls back to a glyph sprite when the sheet cannot be loaded
func loadCursorSprite(path string, metrics render.CellMetrics) *component.Sprite {
	var fsys fs.FS = assets
	name := cursorSheet
	if path != "" {
		fsys = os.DirFS(filepath.Dir(path))
		name = filepath.Base(path)
	}

	sheet, err := asset.NewLoader(fsys, asset.DefaultCellPixels).LoadSpriteSheet(name, cursorFrame, cursorFrame)
	if err != nil {
		log.Printf("sprite-follow: cursor sheet: %v, using glyph", err)
		return component.NewGlyphSprite(0, 0, cursorGlyph, metrics)
	}
	return component.NewSprite(0, 0, sheet, metrics)
}

// scene is the demo content: a pointer-following cursor and particles on input
type scene struct {
	cursor  *component.Cursor
	spawner *system.Spawner
}

// buildScene registers the cursor and binds spawning to input
// sounds may be nil
func buildScene(eng *engine.Engine, bus *event.Bus, sprite *component.Sprite, spawnCfg *system.SpawnConfig, sounds *audio.SoundManager) (*scene, error) {
	cursor := component.NewCursor(sprite, bus)
	if err := eng.AddEntity(cursor); err != nil {
		return nil, err
	}

	spawner := system.NewSpawner(eng, spawnCfg)
	spawner.Bind(bus, cursor)
	if sounds != nil {
		spawner.OnSpawn = func(p *component.Particle, kind system.Kind) {
			sounds.Play(cueFor(kind), p.Width)
		}
	}

	bus.AddListener(event.KeyDown, func(event.Input) error {
		pos := cursor.Position()
		for range sparksPerKey {
			if _, err := spawner.Spawn(system.KindSpark, system.WithPosition(pos.X, pos.Y)); err != nil {
				return err
			}
		}
		return nil
	})

	return &scene{cursor: cursor, spawner: spawner}, nil
}
