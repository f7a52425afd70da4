package drive

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/portfolio-drive/internal/core"
)

// Asset names.
const (
	AssetCar    = "car"
	AssetFinish = "finish"
)

//go:embed sprites/*.txt
var spriteFS embed.FS

// ErrEmptySprite is returned when sprite data has no visible rows.
var ErrEmptySprite = errors.New("drive: empty sprite")

// Sprite is a small block of characters drawn for a world object.
type Sprite struct {
	Rows  [][]rune
	Width int
}

// Height returns the number of rows in the sprite.
func (s Sprite) Height() int {
	return len(s.Rows)
}

// ParseSprite builds a sprite from text, one row per line. Trailing empty
// lines are dropped.
func ParseSprite(data []byte) (Sprite, error) {
	if !utf8.Valid(data) {
		return Sprite{}, fmt.Errorf("drive: sprite is not valid UTF-8")
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return Sprite{}, ErrEmptySprite
	}

	s := Sprite{Rows: make([][]rune, len(lines))}
	for i, line := range lines {
		s.Rows[i] = []rune(line)
		s.Width = max(s.Width, len(s.Rows[i]))
	}
	return s, nil
}

// spriteLoader returns a loader for a named sprite. A file named <name>.txt
// in dir overrides the embedded one.
func spriteLoader(dir, name string) func(ctx context.Context) ([]byte, error) {
	return func(ctx context.Context) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := name + ".txt"
		if dir != "" {
			data, err := os.ReadFile(filepath.Join(dir, file))
			if err == nil {
				return data, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("drive: load sprite %s: %w", name, err)
			}
		}

		data, err := spriteFS.ReadFile("sprites/" + file)
		if err != nil {
			return nil, fmt.Errorf("drive: load sprite %s: %w", name, err)
		}
		return data, nil
	}
}

// Assets lists the sprites the game waits on.
func (g *Game) Assets() []core.Asset {
	return []core.Asset{
		{Name: AssetCar, Load: spriteLoader(g.cfg.Assets.Dir, AssetCar)},
		{Name: AssetFinish, Load: spriteLoader(g.cfg.Assets.Dir, AssetFinish)},
	}
}

// AssetLoaded receives a loaded sprite. The player car is created when the
// car sprite becomes ready; the current level's finish marker is placed when
// the finish sprite becomes ready. A failed asset leaves its object absent.
func (g *Game) AssetLoaded(name string, data []byte, err error) {
	var sprite Sprite
	if err == nil {
		sprite, err = ParseSprite(data)
	}
	if err != nil {
		g.assetErrs[name] = err
		return
	}
	delete(g.assetErrs, name)

	switch name {
	case AssetCar:
		g.carSprite = &sprite
		if g.player == nil {
			g.spawnPlayer()
		}
	case AssetFinish:
		g.finishSprite = &sprite
		if g.layout.Level != 0 && g.layout.Finish == nil {
			g.layout.PlaceFinish()
		}
	}
}

// AssetError returns the load error recorded for an asset, if any.
func (g *Game) AssetError(name string) error {
	return g.assetErrs[name]
}
