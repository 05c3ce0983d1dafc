package ui

import (
	"errors"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
)

// editorColumn describes one text column of a record editor.
type editorColumn struct {
	Key         string // header translation key
	Placeholder string
	Numeric     bool // remind-before column
}

// editorRow is one line of entries plus its remove button.
type editorRow struct {
	entries []*widget.Entry
	box     *fyne.Container
}

// recordEditor is a list of editable rows shared by the birthdays and events windows.
type recordEditor struct {
	app     *PetApp
	columns []editorColumn
	list    *fyne.Container
	rows    []*editorRow
	save    *widget.Button
}

func newRecordEditor(app *PetApp, columns []editorColumn) *recordEditor {
	return &recordEditor{
		app:     app,
		columns: columns,
		list:    container.NewVBox(),
	}
}

// header returns the localized column titles.
func (e *recordEditor) header() fyne.CanvasObject {
	cells := make([]fyne.CanvasObject, 0, len(e.columns))
	for _, c := range e.columns {
		l := widget.NewLabel(e.app.Localizer.GetMsg(c.Key))
		l.TextStyle = fyne.TextStyle{Bold: true}
		cells = append(cells, l)
	}
	return container.NewGridWithColumns(len(e.columns), cells...)
}

// addRow appends a row; missing values are left blank.
func (e *recordEditor) addRow(values ...string) {
	row := &editorRow{}
	cells := make([]fyne.CanvasObject, 0, len(e.columns))
	for i, c := range e.columns {
		var entry *widget.Entry
		if c.Numeric {
			n := NewNumericalEntry()
			n.AllowNegative = true
			entry = &n.Entry
			cells = append(cells, n)
		} else {
			entry = widget.NewEntry()
			cells = append(cells, entry)
		}
		entry.PlaceHolder = c.Placeholder
		if i < len(values) {
			entry.SetText(values[i])
		}
		row.entries = append(row.entries, entry)
	}

	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { e.removeRow(row) })
	row.box = container.NewBorder(nil, nil, nil, remove, container.NewGridWithColumns(len(e.columns), cells...))
	e.rows = append(e.rows, row)
	e.list.Add(row.box)
}

func (e *recordEditor) removeRow(row *editorRow) {
	for i, r := range e.rows {
		if r == row {
			e.rows = append(e.rows[:i], e.rows[i+1:]...)
			break
		}
	}
	e.list.Remove(row.box)
}

// reset replaces all rows.
func (e *recordEditor) reset(values [][]string) {
	e.rows = nil
	e.list.RemoveAll()
	for _, v := range values {
		e.addRow(v...)
	}
	e.list.Refresh()
}

// values returns the text of each row in column order.
func (e *recordEditor) values() [][]string {
	out := make([][]string, 0, len(e.rows))
	for _, r := range e.rows {
		v := make([]string, len(r.entries))
		for i, entry := range r.entries {
			v[i] = entry.Text
		}
		out = append(out, v)
	}
	return out
}

// confirmSaved shows the saved label on the save button, then restores it.
func (e *recordEditor) confirmSaved() {
	e.save.SetText(e.app.Localizer.GetMsg(config.TKeyBtnSaved))
	e.save.Disable()
	time.AfterFunc(config.SaveConfirmDuration, func() {
		fyne.Do(func() {
			e.save.SetText(e.app.Localizer.GetMsg(config.TKeyBtnSave))
			e.save.Enable()
		})
	})
}

// window assembles an editor window around the rows.
func (e *recordEditor) window(titleKey string, onSave func(w fyne.Window), onClosed func()) fyne.Window {
	w := e.app.App.NewWindow(e.app.Localizer.GetMsg(titleKey))

	add := widget.NewButtonWithIcon(e.app.Localizer.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), func() {
		e.addRow()
	})
	e.save = widget.NewButtonWithIcon(e.app.Localizer.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		onSave(w)
	})
	e.save.Importance = widget.HighImportance

	w.SetContent(container.NewBorder(
		e.header(),
		container.NewGridWithColumns(config.LayoutColumnsDouble, add, e.save),
		nil, nil,
		container.NewVScroll(e.list),
	))
	w.Resize(fyne.NewSize(config.EditorWinWidth, config.EditorWinHeight))
	w.SetOnClosed(onClosed)
	return w
}

// showRowError reports the first row blocking a save.
func (app *PetApp) showRowError(err error, w fyne.Window) {
	msg := err.Error()
	var re *RowError
	if errors.As(err, &re) {
		msg = app.Localizer.GetMsgData(re.Key, map[string]any{"Row": re.Row})
	}
	dialog.ShowError(errors.New(msg), w)
}

// ShowBirthdaysWindow opens the birthday editor, or focuses it when already open.
func (app *PetApp) ShowBirthdaysWindow() {
	if app.birthdaysWindow != nil {
		app.birthdaysWindow.RequestFocus()
		return
	}

	ed := newRecordEditor(app, []editorColumn{
		{Key: config.TKeyColName},
		{Key: config.TKeyColDate, Placeholder: config.DateFormatDisplay},
	})
	ed.reset(birthdayValues(engine.Valid(app.Store.LoadBirthdays())))

	app.birthdaysWindow = ed.window(config.TKeyWinBirthdays, func(w fyne.Window) {
		if err := app.saveBirthdays(ed); err != nil {
			app.showRowError(err, w)
			return
		}
		ed.confirmSaved()
	}, func() { app.birthdaysWindow = nil })
	app.birthdaysEditor = ed
	app.birthdaysWindow.Show()
}

// saveBirthdays parses, sorts and persists the editor rows, then reloads them.
func (app *PetApp) saveBirthdays(ed *recordEditor) error {
	rows := make([]BirthdayRow, 0, len(ed.rows))
	for _, v := range ed.values() {
		rows = append(rows, BirthdayRow{Name: v[0], Date: v[1]})
	}
	records, err := BirthdaysFromRows(rows)
	if err != nil {
		return err
	}
	records = engine.SortBirthdays(app.Clock.Now(), records)
	if err := app.Store.SaveBirthdays(records); err != nil {
		return err
	}
	ed.reset(birthdayValues(records))

	slog.Info(config.MsgRowsSaved,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyKind, config.KindBirthday,
		config.LogKeyCount, len(records))
	app.Checker.Publish()
	return nil
}

// ShowEventsWindow opens the event editor, or focuses it when already open.
func (app *PetApp) ShowEventsWindow() {
	if app.eventsWindow != nil {
		app.eventsWindow.RequestFocus()
		return
	}

	ed := newRecordEditor(app, []editorColumn{
		{Key: config.TKeyColTitle},
		{Key: config.TKeyColDate, Placeholder: config.DateFormatDisplay},
		{Key: config.TKeyColTime, Placeholder: config.TimeFormatDisplay},
		{Key: config.TKeyColRemind, Placeholder: config.DefaultRemindText, Numeric: true},
	})
	ed.reset(eventValues(engine.Valid(app.Store.LoadEvents())))

	app.eventsWindow = ed.window(config.TKeyWinEvents, func(w fyne.Window) {
		if err := app.saveEvents(ed); err != nil {
			app.showRowError(err, w)
			return
		}
		ed.confirmSaved()
	}, func() { app.eventsWindow = nil })
	app.eventsEditor = ed
	app.eventsWindow.Show()
}

func (app *PetApp) saveEvents(ed *recordEditor) error {
	rows := make([]EventRow, 0, len(ed.rows))
	for _, v := range ed.values() {
		rows = append(rows, EventRow{Title: v[0], Date: v[1], Time: v[2], Remind: v[3]})
	}
	records, err := EventsFromRows(rows)
	if err != nil {
		return err
	}
	records = engine.SortEvents(app.Clock.Now(), records)
	if err := app.Store.SaveEvents(records); err != nil {
		return err
	}
	ed.reset(eventValues(records))

	slog.Info(config.MsgRowsSaved,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyKind, config.KindEvent,
		config.LogKeyCount, len(records))
	app.Checker.Publish()
	return nil
}

func birthdayValues(records []engine.BirthdayRecord) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range BirthdayRows(records) {
		out = append(out, []string{r.Name, r.Date})
	}
	return out
}

func eventValues(records []engine.EventRecord) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range EventRows(records) {
		out = append(out, []string{r.Title, r.Date, r.Time, r.Remind})
	}
	return out
}
