package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/pet-reminder/internal/config"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	gateCheck  *widget.Check
	feedCheck  *widget.Check
	portEntry  *NumericalEntry
}

// Preference getters fall back to the settings file.

func (app *PetApp) language() string {
	return app.Preferences.StringWithFallback(config.PrefLanguage, app.Settings.Language)
}

func (app *PetApp) gateEventsPref() bool {
	return app.Preferences.BoolWithFallback(config.PrefGateEvents, app.Settings.GateEvents)
}

func (app *PetApp) feedEnabledPref() bool {
	return app.Preferences.BoolWithFallback(config.PrefFeedEnabled, app.Settings.Feed.Enabled)
}

func (app *PetApp) feedPortPref() string {
	return app.Preferences.StringWithFallback(config.PrefServerPort, app.Settings.Feed.Port)
}

// ValidatePort checks a feed port typed by the user. Messages are localized.
func (app *PetApp) ValidatePort(s string) error {
	if s == "" {
		return errors.New(app.Localizer.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.Localizer.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.Localizer.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// ShowSettingsWindow displays the preferences dialog.
func (app *PetApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.Localizer.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := &settingsWidgets{}
	sw.langSelect = widget.NewSelect(app.Localizer.Languages(), nil)
	sw.langSelect.SetSelected(app.Localizer.Language())

	sw.gateCheck = widget.NewCheck(app.Localizer.GetMsg(config.TKeyLblGateEvents), nil)
	sw.gateCheck.SetChecked(app.gateEventsPref())

	sw.feedCheck = widget.NewCheck(app.Localizer.GetMsg(config.TKeyLblFeed), nil)
	sw.feedCheck.SetChecked(app.feedEnabledPref())

	sw.portEntry = NewNumericalEntry()
	sw.portEntry.SetText(app.feedPortPref())
	sw.portEntry.Validator = app.ValidatePort

	form := widget.NewForm(
		widget.NewFormItem(app.Localizer.GetMsg(config.TKeyLblLanguage), sw.langSelect),
		widget.NewFormItem("", sw.gateCheck),
		widget.NewFormItem("", sw.feedCheck),
		widget.NewFormItem(app.Localizer.GetMsg(config.TKeyLblPort), sw.portEntry),
	)

	btnSave := widget.NewButtonWithIcon(app.Localizer.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := sw.portEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.Localizer.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footer := widget.NewLabel(fmt.Sprintf(app.Localizer.GetMsg(config.TKeyLblFooter), config.Version))
	footer.Alignment = fyne.TextAlignCenter
	footer.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		form,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footer,
	))
	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// saveSettings writes the preferences; the change listener applies them.
func (app *PetApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSave, config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetBool(config.PrefGateEvents, sw.gateCheck.Checked)
	app.Preferences.SetBool(config.PrefFeedEnabled, sw.feedCheck.Checked)
	app.Preferences.SetString(config.PrefServerPort, sw.portEntry.Text)
}

// watchPreferences forwards preference changes to the worker. Sends never block.
func (app *PetApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefLanguage:
		default:
		}
	})
}

// preferenceWorker applies changed preferences until the context ends.
func (app *PetApp) preferenceWorker() {
	for {
		select {
		case <-app.Ctx.Done():
			return
		case <-app.configChan:
			app.applyPreferences()
		}
	}
}

// applyPreferences reloads language, gating and feed settings.
func (app *PetApp) applyPreferences() {
	lang := app.language()
	if lang != app.Localizer.Language() {
		app.Localizer.SetLanguage(lang)
		fyne.Do(app.relabel)
	}
	if gate := app.gateEventsPref(); gate != app.Checker.GateEvents() {
		app.Checker.SetGateEvents(gate)
		app.Runner.Trigger()
	}
	app.applyFeed()

	slog.Info(config.MsgPrefsApplied,
		config.LogKeyComponent, config.CompUISet,
		config.LogKeyLang, app.Localizer.Language())
}

// applyFeed starts, restarts or stops the feed server to match preferences.
func (app *PetApp) applyFeed() {
	enabled, port := app.feedEnabledPref(), app.feedPortPref()

	app.feedMu.Lock()
	running := app.feedCancel != nil
	same := running && app.feedPort == port
	app.feedMu.Unlock()

	switch {
	case !enabled:
		app.stopFeed()
	case !same:
		app.stopFeed()
		app.startFeed(port)
		app.Checker.Publish()
	}
}

func (app *PetApp) startFeed(port string) {
	ctx, cancel := context.WithCancel(app.Ctx)
	done := make(chan struct{})

	app.feedMu.Lock()
	app.feedCancel, app.feedDone, app.feedPort = cancel, done, port
	app.Server.Port = port
	srv := app.Server
	app.feedMu.Unlock()

	go func() {
		defer close(done)
		if err := srv.Start(ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyPort, port,
				config.LogKeyError, err)
			app.Notify(config.KindStatus, config.AppName, fmt.Sprintf(config.MsgPortBusy, port))
		}
	}()
}

// stopFeed cancels the running feed server and waits for it to exit.
func (app *PetApp) stopFeed() {
	app.feedMu.Lock()
	cancel, done := app.feedCancel, app.feedDone
	app.feedCancel, app.feedDone, app.feedPort = nil, nil, ""
	app.feedMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	slog.Info(config.MsgFeedStopped, config.LogKeyComponent, config.CompUI)
}
