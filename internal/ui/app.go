// Package ui is the Fyne front-end: the pet window, record editors, toasts and settings.
package ui

import (
	"context"
	_ "embed"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
	"github.com/tartampluch/pet-reminder/internal/locale"
	"github.com/tartampluch/pet-reminder/internal/scheduler"
	"github.com/tartampluch/pet-reminder/internal/server"
	"github.com/tartampluch/pet-reminder/internal/store"
)

//go:embed Icon.png
var appIconData []byte

// PetApp holds the UI state and the services it drives.
type PetApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Localizer   *locale.Localizer
	Ctx         context.Context
	Clock       engine.Clock

	Store    *store.Store
	Checker  *scheduler.Checker
	Runner   *scheduler.Runner
	Server   *server.CalendarServer
	Settings config.Settings // file defaults; preferences win

	// Assets and AssetsDir locate the sprite frames.
	Assets    fs.FS
	AssetsDir string
	Frames    []fyne.Resource

	configChan chan string

	// main window widgets relabelled on language change
	btnBirthdays *widget.Button
	btnEvents    *widget.Button
	btnNearest   *widget.Button
	btnSettings  *widget.Button

	birthdaysWindow fyne.Window
	eventsWindow    fyne.Window
	settingsWindow  fyne.Window
	birthdaysEditor *recordEditor
	eventsEditor    *recordEditor

	toast      *toastState
	firstCheck sync.Once

	feedMu     sync.Mutex
	feedCancel context.CancelFunc
	feedDone   chan struct{}
	feedPort   string

	exitCode int
}

// NewPetApp constructs the application and wires dependencies.
func NewPetApp(a fyne.App, ctx context.Context, st *store.Store, settings config.Settings) *PetApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	assets, dir := DefaultAssets()
	app := &PetApp{
		App:         a,
		Preferences: a.Preferences(),
		Ctx:         ctx,
		Clock:       engine.RealClock{},
		Store:       st,
		Settings:    settings,
		Assets:      assets,
		AssetsDir:   dir,
		configChan:  make(chan string, config.ChannelBufferSize),
		toast:       newToastState(),
	}

	app.Localizer = locale.New(app.language())
	app.Server = server.NewCalendarServer(app.feedPortPref())
	app.Checker = &scheduler.Checker{
		Store:     st,
		Clock:     app.Clock,
		Texts:     app.Localizer,
		Notifier:  app,
		Publisher: app.Server,
	}
	app.Checker.SetGateEvents(app.gateEventsPref())
	app.Runner = scheduler.NewRunner(app.Checker)
	app.Runner.StartupDelay = settings.StartupDelay
	app.Runner.OnCheck = app.onCheck
	return app
}

// Setup loads the sprite and builds the main window without blocking.
// A missing sprite is returned as an error wrapping ErrNoFrames.
func (app *PetApp) Setup() error {
	frames, err := LoadFrames(app.Assets, app.AssetsDir)
	if err != nil {
		return err
	}
	app.Frames = frames
	app.Checker.Clock = app.Clock

	app.buildMainWindow()
	app.watchPreferences()
	return nil
}

// Run starts the services and the Fyne event loop. It returns the process exit code.
func (app *PetApp) Run() int {
	if err := app.Setup(); err != nil {
		app.showFatal(err)
		app.App.Run()
		return app.exitCode
	}

	go app.Runner.Run(app.Ctx)
	go app.preferenceWorker()
	app.applyFeed()

	app.Window.Show()
	app.App.Run()
	app.stopFeed()
	return app.exitCode
}

// showFatal displays a blocking error dialog; closing it quits with ExitCodeError.
func (app *PetApp) showFatal(err error) {
	slog.Error(config.MsgFatalStartup,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyError, err)

	app.exitCode = config.ExitCodeError
	w := app.App.NewWindow(config.TitleStartupError)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, config.MainWindowHeight/2))
	w.SetOnClosed(app.App.Quit)

	d := dialog.NewError(fmt.Errorf("%s\n%w", app.Localizer.GetMsg(config.TKeyErrAssets), err), w)
	d.SetOnClosed(w.Close)
	w.Show()
	d.Show()
}

func (app *PetApp) buildMainWindow() {
	w := app.App.NewWindow(app.Localizer.GetMsg(config.TKeyWinTitle))
	app.Window = w

	sprite := canvas.NewImageFromResource(app.Frames[0])
	sprite.FillMode = canvas.ImageFillContain
	sprite.SetMinSize(fyne.NewSize(config.SpriteSize, config.SpriteSize))

	app.btnBirthdays = widget.NewButton("", app.ShowBirthdaysWindow)
	app.btnEvents = widget.NewButton("", app.ShowEventsWindow)
	app.btnNearest = widget.NewButton("", app.ShowNearestBirthdays)
	app.btnSettings = widget.NewButton("", app.ShowSettingsWindow)
	app.relabel()

	w.SetContent(container.NewPadded(container.NewBorder(
		nil,
		container.NewVBox(
			container.NewGridWithColumns(config.LayoutColumnsDouble, app.btnBirthdays, app.btnEvents),
			app.btnNearest,
			app.btnSettings,
		),
		nil, nil,
		sprite,
	)))
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetMaster()
}

// relabel applies the active language to the main window.
func (app *PetApp) relabel() {
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.Localizer.GetMsg(config.TKeyWinTitle))
	app.btnBirthdays.SetText(app.Localizer.GetMsg(config.TKeyBtnBirthdays))
	app.btnEvents.SetText(app.Localizer.GetMsg(config.TKeyBtnEvents))
	app.btnNearest.SetText(app.Localizer.GetMsg(config.TKeyBtnNearest))
	app.btnSettings.SetText(app.Localizer.GetMsg(config.TKeyBtnSettings))
}

// ShowNearestBirthdays toasts the birthdays 3 or 7 days away. It ignores the daily marker.
func (app *PetApp) ShowNearestBirthdays() {
	records := engine.Valid(app.Store.LoadBirthdays())
	reminders, _ := engine.UpcomingBirthdays(app.Clock.Now(), records, app.Localizer)

	body := app.Localizer.NoneMessage()
	if len(reminders) > 0 {
		body = strings.Join(engine.Messages(reminders), config.MessageSeparator)
	}
	app.showToast(config.KindBirthday, app.Localizer.BirthdaysTitle(), body)
}

// onCheck shows the nearest birthdays once after launch when the daily marker skipped the first check.
func (app *PetApp) onCheck(sum scheduler.Summary) {
	app.firstCheck.Do(func() {
		if !sum.BirthdaysRan {
			fyne.Do(app.ShowNearestBirthdays)
		}
	})
}

// Notify implements scheduler.Notifier. It may be called from any goroutine.
func (app *PetApp) Notify(kind, title, body string) {
	fyne.Do(func() {
		app.App.SendNotification(fyne.NewNotification(title, body))
		app.showToast(kind, title, body)
	})
}
