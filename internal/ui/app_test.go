package ui

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"testing/fstest"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
	"github.com/tartampluch/pet-reminder/internal/scheduler"
	"github.com/tartampluch/pet-reminder/internal/store"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

var testToday = time.Date(2024, time.June, 1, 9, 30, 0, 0, time.Local)

// setupTestApp builds a headless app over a temporary store.
func setupTestApp(t *testing.T) (*PetApp, *store.Store) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	st := store.New(t.TempDir())
	app := NewPetApp(a, ctx, st, config.DefaultSettings())
	app.Clock = MockClock{CurrentTime: testToday}
	return app, st
}

func setupReadyApp(t *testing.T) (*PetApp, *store.Store) {
	t.Helper()
	app, st := setupTestApp(t)
	require.NoError(t, app.Setup())
	return app, st
}

func toastText(t *testing.T, app *PetApp, kind string) (string, string) {
	t.Helper()
	popup := app.currentToast(kind)
	require.NotNil(t, popup, "A toast should be visible")
	box := popup.Content.(*fyne.Container)
	return box.Objects[0].(*widget.Label).Text, box.Objects[1].(*widget.Label).Text
}

func TestSetup_BuildsMainWindow(t *testing.T) {
	app, _ := setupReadyApp(t)

	require.NotNil(t, app.Window)
	assert.NotEmpty(t, app.Frames)
	assert.Equal(t, "Pet Reminder", app.Window.Title())
	assert.Equal(t, "Birthdays", app.btnBirthdays.Text)
	assert.Equal(t, "Events", app.btnEvents.Text)
	assert.Equal(t, "Nearest birthdays", app.btnNearest.Text)
	assert.Equal(t, "Settings", app.btnSettings.Text)
}

func TestSetup_NoFramesIsFatal(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Assets = fstest.MapFS{"idle/readme.txt": {Data: []byte("x")}}
	app.AssetsDir = config.AssetsIdleSubdir

	err := app.Setup()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoFrames))
	assert.Nil(t, app.Window)

	app.showFatal(err)
	assert.Equal(t, config.ExitCodeError, app.exitCode)
}

func TestNewPetApp_PreferencesOverrideSettings(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)
	a.Preferences().SetString(config.PrefLanguage, "ru")
	a.Preferences().SetBool(config.PrefGateEvents, true)

	settings := config.DefaultSettings()
	settings.Language = "en"
	app := NewPetApp(a, context.Background(), store.New(t.TempDir()), settings)

	assert.Equal(t, "ru", app.Localizer.Language())
	assert.True(t, app.Checker.GateEvents())
}

func TestNewPetApp_SettingsAreFallback(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)

	settings := config.DefaultSettings()
	settings.Language = "ru"
	settings.Feed.Port = "19001"
	settings.StartupDelay = 5 * time.Second
	app := NewPetApp(a, context.Background(), store.New(t.TempDir()), settings)

	assert.Equal(t, "ru", app.Localizer.Language())
	assert.Equal(t, "19001", app.Server.Port)
	assert.Equal(t, 5*time.Second, app.Runner.StartupDelay)
}

func TestShowNearestBirthdays(t *testing.T) {
	app, st := setupReadyApp(t)
	require.NoError(t, st.SaveBirthdays([]engine.BirthdayRecord{
		{Name: "Anna", Day: 4, Month: 6, Year: 1990},
		{Name: "Ivan", Day: 2, Month: 6, Year: 1990},
	}))
	// A same-day marker does not hide the nearest list.
	require.NoError(t, st.SaveMarker(config.BirthdaysMarkerFile, engine.MarkerFor(testToday)))

	app.ShowNearestBirthdays()

	title, body := toastText(t, app, config.KindBirthday)
	assert.Equal(t, "Upcoming birthdays", title)
	assert.Equal(t, "📅 Anna\nIn 3 days\nTurns 34", body)
}

func TestShowNearestBirthdays_None(t *testing.T) {
	app, _ := setupReadyApp(t)

	app.ShowNearestBirthdays()

	_, body := toastText(t, app, config.KindBirthday)
	assert.Equal(t, "No birthdays in 3 or 7 days.", body)
}

func TestNotify_ShowsToast(t *testing.T) {
	app, _ := setupReadyApp(t)

	app.Notify(config.KindEvent, "Upcoming events", "🗓 Vet")

	title, body := toastText(t, app, config.KindEvent)
	assert.Equal(t, "Upcoming events", title)
	assert.Equal(t, "🗓 Vet", body)
	assert.Nil(t, app.currentToast(config.KindBirthday))
}

func TestRunOnce_BirthdaysAndEventsStack(t *testing.T) {
	app, st := setupReadyApp(t)
	require.NoError(t, st.SaveBirthdays([]engine.BirthdayRecord{
		{Name: "Anna", Day: 4, Month: 6, Year: 1990},
	}))
	require.NoError(t, st.SaveEvents([]engine.EventRecord{
		{Title: "Vet", Day: 3, Month: 6, Year: 2024, Hour: 9, Minute: 5, RemindBefore: 2},
	}))

	sum, err := app.Checker.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, sum.Birthdays, 1)
	require.Len(t, sum.Events, 1)

	assert.Equal(t, 2, app.visibleToasts())
	assert.Len(t, app.Window.Canvas().Overlays().List(), 2)
	_, birthdays := toastText(t, app, config.KindBirthday)
	assert.Contains(t, birthdays, "Anna")
	_, events := toastText(t, app, config.KindEvent)
	assert.Contains(t, events, "Vet")

	assert.Less(t, app.toastPosition(config.KindEvent).Y, app.toastPosition(config.KindBirthday).Y,
		"Events sit above birthdays")
}

func TestToast_SameKindReplaces(t *testing.T) {
	app, _ := setupReadyApp(t)

	app.showToast(config.KindEvent, "first", "1")
	first := app.currentToast(config.KindEvent)
	app.showToast(config.KindEvent, "second", "2")

	assert.Equal(t, 1, app.visibleToasts())
	assert.Len(t, app.Window.Canvas().Overlays().List(), 1)
	assert.NotSame(t, first, app.currentToast(config.KindEvent))
	title, _ := toastText(t, app, config.KindEvent)
	assert.Equal(t, "second", title)
}

func TestToast_HidingRestacks(t *testing.T) {
	app, _ := setupReadyApp(t)

	app.showToast(config.KindBirthday, "birthdays", "b")
	app.showToast(config.KindEvent, "events", "e")
	require.Greater(t, app.toastPosition(config.KindBirthday).Y, float32(0))

	app.hideToast(config.KindEvent, 1)
	assert.Equal(t, 1, app.visibleToasts())
	assert.Len(t, app.Window.Canvas().Overlays().List(), 1)
	assert.Zero(t, app.toastPosition(config.KindBirthday).Y)
}

func TestToast_OldTimerKeepsNewerToast(t *testing.T) {
	app, _ := setupReadyApp(t)

	app.showToast(config.KindBirthday, "first", "1")
	app.showToast(config.KindBirthday, "second", "2")

	app.hideToast(config.KindBirthday, 1)
	title, _ := toastText(t, app, config.KindBirthday)
	assert.Equal(t, "second", title)

	// A timer of another kind leaves this slot alone.
	app.hideToast(config.KindEvent, 2)
	assert.NotNil(t, app.currentToast(config.KindBirthday))

	app.hideToast(config.KindBirthday, 2)
	assert.Nil(t, app.currentToast(config.KindBirthday))
}

func TestToast_NoWindow(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.NotPanics(t, func() { app.showToast(config.KindStatus, "t", "b") })
	assert.Nil(t, app.currentToast(config.KindStatus))
}

func TestOnCheck_GatedLaunchShowsNearest(t *testing.T) {
	app, st := setupReadyApp(t)
	require.NoError(t, st.SaveBirthdays([]engine.BirthdayRecord{
		{Name: "Anna", Day: 4, Month: 6, Year: 1990},
	}))

	app.onCheck(scheduler.Summary{BirthdaysRan: false})

	title, body := toastText(t, app, config.KindBirthday)
	assert.Equal(t, "Upcoming birthdays", title)
	assert.Equal(t, "📅 Anna\nIn 3 days\nTurns 34", body)
}

func TestOnCheck_OnlyFirstSummaryCounts(t *testing.T) {
	app, _ := setupReadyApp(t)

	app.onCheck(scheduler.Summary{BirthdaysRan: true})
	app.onCheck(scheduler.Summary{BirthdaysRan: false})

	assert.Zero(t, app.visibleToasts())
}

func TestRunner_StartupAfterMarkerShowsNearest(t *testing.T) {
	app, st := setupReadyApp(t)
	require.NoError(t, st.SaveBirthdays([]engine.BirthdayRecord{
		{Name: "Anna", Day: 4, Month: 6, Year: 1990},
	}))
	require.NoError(t, st.SaveMarker(config.BirthdaysMarkerFile, engine.MarkerFor(testToday)))

	checked := make(chan scheduler.Summary, 1)
	onCheck := app.Runner.OnCheck
	app.Runner.OnCheck = func(sum scheduler.Summary) {
		onCheck(sum)
		checked <- sum
	}
	app.Runner.StartupDelay = 0

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.Runner.Run(ctx)

	select {
	case sum := <-checked:
		assert.False(t, sum.BirthdaysRan)
	case <-time.After(5 * time.Second):
		t.Fatal("startup check did not run")
	}
	require.Eventually(t, func() bool {
		return app.currentToast(config.KindBirthday) != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestApplyPreferences(t *testing.T) {
	app, _ := setupReadyApp(t)

	app.Preferences.SetString(config.PrefLanguage, "ru")
	app.Preferences.SetBool(config.PrefGateEvents, true)
	app.applyPreferences()

	assert.Equal(t, "ru", app.Localizer.Language())
	assert.Equal(t, "Дни рождения", app.btnBirthdays.Text)
	assert.Equal(t, "Питомец-напоминалка", app.Window.Title())
	assert.True(t, app.Checker.GateEvents())
}

func TestApplyPreferences_GateChangeTriggersCheck(t *testing.T) {
	app, _ := setupReadyApp(t)

	checked := make(chan scheduler.Summary, 1)
	app.Runner.OnCheck = func(sum scheduler.Summary) { checked <- sum }
	app.Runner.StartupDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.Runner.Run(ctx)

	// Unchanged preferences do not request a check.
	app.applyPreferences()
	select {
	case <-checked:
		t.Fatal("check ran without a gate change")
	case <-time.After(100 * time.Millisecond):
	}

	app.Preferences.SetBool(config.PrefGateEvents, true)
	app.applyPreferences()
	select {
	case sum := <-checked:
		assert.True(t, sum.BirthdaysRan)
	case <-time.After(5 * time.Second):
		t.Fatal("gate change did not trigger a check")
	}
	assert.True(t, app.Checker.GateEvents())
}

func TestWatchPreferences_NeverBlocks(t *testing.T) {
	app, _ := setupReadyApp(t)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			app.Preferences.SetBool(config.PrefGateEvents, i%2 == 0)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Preference changes blocked on a full channel")
	}
	assert.Len(t, app.configChan, 1)
}

func TestValidatePort(t *testing.T) {
	app, _ := setupTestApp(t)

	tests := []struct {
		in      string
		wantErr string
	}{
		{"18081", ""},
		{"1", ""},
		{"65535", ""},
		{"", "Port is required"},
		{"abc", "Port must be a number"},
		{"0", "Port must be between 1 and 65535"},
		{"70000", "Port must be between 1 and 65535"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := app.ValidatePort(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestSettingsWindow_SingletonAndSave(t *testing.T) {
	app, _ := setupReadyApp(t)

	app.ShowSettingsWindow()
	first := app.settingsWindow
	require.NotNil(t, first)
	app.ShowSettingsWindow()
	assert.Same(t, first, app.settingsWindow, "A second call focuses the open window")

	sw := &settingsWidgets{
		langSelect: widget.NewSelect(app.Localizer.Languages(), nil),
		gateCheck:  widget.NewCheck("", nil),
		feedCheck:  widget.NewCheck("", nil),
		portEntry:  NewNumericalEntry(),
	}
	sw.langSelect.SetSelected("ru")
	sw.gateCheck.SetChecked(true)
	sw.portEntry.SetText("19002")
	app.saveSettings(sw)

	assert.Equal(t, "ru", app.Preferences.String(config.PrefLanguage))
	assert.True(t, app.Preferences.Bool(config.PrefGateEvents))
	assert.False(t, app.Preferences.Bool(config.PrefFeedEnabled))
	assert.Equal(t, "19002", app.Preferences.String(config.PrefServerPort))

	first.Close()
	assert.Nil(t, app.settingsWindow)
}

func TestApplyFeed_StartsAndStops(t *testing.T) {
	app, st := setupReadyApp(t)
	require.NoError(t, st.SaveBirthdays([]engine.BirthdayRecord{{Name: "Anna", Day: 4, Month: 6, Year: 1990}}))

	app.Preferences.SetBool(config.PrefFeedEnabled, true)
	app.Preferences.SetString(config.PrefServerPort, "18097")
	app.applyFeed()
	t.Cleanup(app.stopFeed)

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18097/calendar.ics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	app.Preferences.SetBool(config.PrefFeedEnabled, false)
	app.applyFeed()

	app.feedMu.Lock()
	defer app.feedMu.Unlock()
	assert.Nil(t, app.feedCancel, "Disabling the feed stops the server")
}

func TestApplyFeed_DisabledByDefault(t *testing.T) {
	app, _ := setupReadyApp(t)
	app.applyFeed()

	app.feedMu.Lock()
	defer app.feedMu.Unlock()
	assert.Nil(t, app.feedCancel)
}
