package ui

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/pet-reminder/internal/config"
)

//go:embed assets/idle/*.png
var spriteFS embed.FS

// ErrNoFrames is the only error that prevents the GUI from starting.
var ErrNoFrames = errors.New(config.ErrNoFrames)

// DefaultAssets returns the embedded sprite frames and their directory.
func DefaultAssets() (fs.FS, string) {
	return spriteFS, config.AssetsIdleDir
}

// LoadFrames reads every .png in dir, in name order.
func LoadFrames(fsys fs.FS, dir string) ([]fyne.Resource, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoFrames, dir, err)
	}

	var frames []fyne.Resource
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(path.Ext(name), config.AssetFrameExtension) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrAssetsRead, err)
		}
		frames = append(frames, fyne.NewStaticResource(name, data))
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFrames, dir)
	}

	slog.Debug(config.MsgFramesLoaded,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyPath, dir,
		config.LogKeyCount, len(frames))
	return frames, nil
}
