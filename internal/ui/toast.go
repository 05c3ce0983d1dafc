package ui

import (
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/pet-reminder/internal/config"
)

// toastSlot is the pop-up of one notification kind.
// gen identifies the latest toast so an older timer does not hide a newer one.
type toastSlot struct {
	popup *widget.PopUp
	size  fyne.Size
	pos   fyne.Position
	gen   int
}

// toastState keeps one slot per kind. Visible slots are stacked in ToastStack order.
type toastState struct {
	mu    sync.Mutex
	slots map[string]*toastSlot
}

func newToastState() *toastState {
	return &toastState{slots: make(map[string]*toastSlot)}
}

func (s *toastState) slot(kind string) *toastSlot {
	sl, ok := s.slots[kind]
	if !ok {
		sl = &toastSlot{}
		s.slots[kind] = sl
	}
	return sl
}

// showToast replaces the visible toast of the same kind and hides it after ToastDuration.
// Toasts of other kinds stay on screen. It must run on the Fyne goroutine.
func (app *PetApp) showToast(kind, title, body string) {
	if app.Window == nil {
		return
	}

	heading := widget.NewLabel(title)
	heading.TextStyle = fyne.TextStyle{Bold: true}
	text := widget.NewLabel(body)
	text.Wrapping = fyne.TextWrapWord

	content := container.NewVBox(heading, text)
	popup := widget.NewPopUp(content, app.Window.Canvas())
	size := fyne.NewSize(config.ToastWidth, content.MinSize().Height)
	popup.Resize(size)

	app.toast.mu.Lock()
	sl := app.toast.slot(kind)
	if sl.popup != nil {
		sl.popup.Hide()
	}
	sl.popup, sl.size = popup, size
	sl.gen++
	gen := sl.gen
	app.layoutToastsLocked()
	app.toast.mu.Unlock()

	slog.Debug(config.MsgToastShown,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyKind, kind)

	time.AfterFunc(config.ToastDuration, func() {
		fyne.Do(func() { app.hideToast(kind, gen) })
	})
}

// layoutToastsLocked positions the visible toasts top-down. The caller holds toast.mu.
func (app *PetApp) layoutToastsLocked() {
	canvasSize := app.Window.Canvas().Size()
	var y float32
	for _, kind := range config.ToastStack {
		sl, ok := app.toast.slots[kind]
		if !ok || sl.popup == nil {
			continue
		}
		sl.pos = fyne.NewPos((canvasSize.Width-sl.size.Width)/2, y)
		sl.popup.ShowAtPosition(sl.pos)
		y += sl.size.Height + config.ToastGap
	}
}

// hideToast hides the toast of kind created as generation gen, if still current.
func (app *PetApp) hideToast(kind string, gen int) {
	app.toast.mu.Lock()
	defer app.toast.mu.Unlock()
	sl, ok := app.toast.slots[kind]
	if !ok || sl.popup == nil || sl.gen != gen {
		return
	}
	sl.popup.Hide()
	sl.popup = nil
	if app.Window != nil {
		app.layoutToastsLocked()
	}
}

// currentToast returns the visible pop-up of kind, or nil.
func (app *PetApp) currentToast(kind string) *widget.PopUp {
	app.toast.mu.Lock()
	defer app.toast.mu.Unlock()
	if sl, ok := app.toast.slots[kind]; ok {
		return sl.popup
	}
	return nil
}

// toastPosition returns where the toast of kind was last placed.
func (app *PetApp) toastPosition(kind string) fyne.Position {
	app.toast.mu.Lock()
	defer app.toast.mu.Unlock()
	if sl, ok := app.toast.slots[kind]; ok {
		return sl.pos
	}
	return fyne.Position{}
}

// visibleToasts counts the toasts on screen.
func (app *PetApp) visibleToasts() int {
	app.toast.mu.Lock()
	defer app.toast.mu.Unlock()
	n := 0
	for _, sl := range app.toast.slots {
		if sl.popup != nil {
			n++
		}
	}
	return n
}
