package cli

import (
	"context"
	"log/slog"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/ui"
)

// launchGUI runs the desktop app until its last window closes or ctx ends.
func launchGUI(ctx context.Context, env *environment) int {
	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	gui := ui.NewPetApp(a, ctx, env.store, env.settings)
	if dir := env.opts.assetsDir; dir != "" {
		gui.Assets = os.DirFS(dir)
		gui.AssetsDir = config.AssetsIdleSubdir
	}

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	code := gui.Run()
	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return code
}
