package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for vCard imports.
var UserAgent = "Pet-Reminder/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Pet Reminder"
	AppID             = "com.github.tartampluch.pet-reminder"
	KeyringService    = "com.github.tartampluch.pet-reminder"
	DataDirName       = "PetReminder"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
	SettingsFileName  = "settings.yaml"
	CommandName       = "pet-reminder"
)

// Persisted state files, one logical record per file.
const (
	BirthdaysFile       = "birthdays.json"
	BirthdaysMarkerFile = "birthday_notified.json"
	EventsFile          = "events.json"
	EventsMarkerFile    = "events_notified.json"
	JSONIndent          = "    "
	TempFilePattern     = ".tmp-*"
	FeedFileName        = "calendar.ics"
	RouteFeed           = "/" + FeedFileName
	AssetsIdleDir       = "assets/idle"
	AssetsIdleSubdir    = "idle"
	AssetFrameExtension = ".png"
	ExportDefaultOutput = "-"
	FormatDuplicateKey  = "%s|%04d-%02d-%02d"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// Reminder Rules
// -----------------------------------------------------------------------------

const (
	// BirthdayNoticeFar and BirthdayNoticeNear are the only lead times (in days)
	// at which a birthday reminder fires.
	BirthdayNoticeFar  = 7
	BirthdayNoticeNear = 3

	// PastEventSortKey pushes past or malformed events to the end of the list.
	PastEventSortKey = 9999

	// LeapReferenceYear validates Feb 29 independently of the current year.
	LeapReferenceYear = 2000

	MarkerDateFormat = "2006-01-02"
	TimeOfDayFormat  = "%02d:%02d"
	MessageSeparator = "\n\n"

	MaxHour   = 23
	MaxMinute = 59
)

// BirthdayNoticeDays lists the lead times in the order the ICS alarms are emitted.
var BirthdayNoticeDays = []int{BirthdayNoticeFar, BirthdayNoticeNear}

// -----------------------------------------------------------------------------
// Scheduling & UI Timings
// -----------------------------------------------------------------------------

const (
	DefaultStartupDelay = 2 * time.Second
	ToastDuration       = 6 * time.Second
	SaveConfirmDuration = 1500 * time.Millisecond
	MidnightSlack       = 5 * time.Second
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagDataDir      = "data-dir"
	FlagDate         = "date"
	FlagOut          = "out"
	FlagURL          = "url"
	FlagUser         = "user"
	FlagPort         = "port"
	FlagAssets       = "assets"
	FlagForce        = "force"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to the settings file (default: <data-dir>/settings.yaml)"
	FlagDescDataDir  = "Directory holding the birthday and event files"
	FlagDescDate     = "Evaluate as if today were this date (YYYY-MM-DD)"
	FlagDescOut      = "Output file, '-' for stdout"
	FlagDescURL      = "Import from a CardDAV/WebDAV vCard URL instead of a file"
	FlagDescUser     = "Username for basic authentication"
	FlagDescPort     = "Port of the calendar feed (overrides settings)"
	FlagDescAssets   = "Directory containing sprite frames (idle/*.png)"
	FlagDescForce    = "Overwrite an existing settings file"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgNoReminders   = "No reminders due."
	MsgImported      = "Imported %d birthdays (%d already present, %d skipped).\n"
	MsgPasswordSaved = "Password stored in the system keyring."
	MsgSettingsSaved = "Settings written to %s\n"
	MsgPasswordAsk   = "Password: "
	ListKindBirthday = "birthdays"
	ListKindEvents   = "events"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 260
	MainWindowHeight    = 320
	SettingsWindowWidth = 420
	EditorWinWidth      = 620
	EditorWinHeight     = 420
	SpriteSize          = 128
	ToastWidth          = 240
	ToastGap            = 4

	// Preference Keys
	PrefLanguage    = "language"
	PrefGateEvents  = "gate_events"
	PrefFeedEnabled = "feed_enabled"
	PrefServerPort  = "server_port"
	PrefLastRun     = "last_run_version"

	DateFormatDisplay = "2006-01-02"
	TimeFormatDisplay = "15:04"
	PlaceholderDate   = "YYYY-MM-DD"
	PlaceholderTime   = "HH:MM"
	DefaultRemindText = "0"

	LogMsgOpenWin = "Opening editor window"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinBirthdays   = "win_birthdays_title"
	TKeyWinEvents      = "win_events_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyBtnBirthdays   = "btn_birthdays"
	TKeyBtnEvents      = "btn_events"
	TKeyBtnNearest     = "btn_nearest"
	TKeyBtnSettings    = "btn_settings"
	TKeyBtnAdd         = "btn_add"
	TKeyBtnRemove      = "btn_remove"
	TKeyBtnSave        = "btn_save"
	TKeyBtnSaved       = "btn_saved"
	TKeyBtnCancel      = "btn_cancel"
	TKeyColName        = "col_name"
	TKeyColDate        = "col_date"
	TKeyColTitle       = "col_title"
	TKeyColTime        = "col_time"
	TKeyColRemind      = "col_remind"
	TKeyLblLanguage    = "lbl_language"
	TKeyLblGateEvents  = "lbl_gate_events"
	TKeyLblFeed        = "lbl_feed"
	TKeyLblPort        = "lbl_server_port"
	TKeyLblFooter      = "lbl_footer"
	TKeyNotifBirthdays = "notif_birthdays_title"
	TKeyNotifEvents    = "notif_events_title"
	TKeyNotifNone      = "notif_none"
	TKeyDays           = "unit_days"  // Requires Count
	TKeyYears          = "unit_years" // Requires Count
	TKeyMsgBirthday    = "msg_birthday"
	TKeyMsgEvent       = "msg_event"
	TKeyErrDateRow     = "err_date_row"
	TKeyErrTimeRow     = "err_time_row"
	TKeyErrRemindRow   = "err_remind_row"
	TKeyErrPortReq     = "err_port_required"
	TKeyErrPortNum     = "err_port_number"
	TKeyErrPortRange   = "err_port_range"
	TKeyErrAssets      = "err_assets"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultPort     = "18081"
	DefaultLanguage = "en"
	MinPort         = 1
	MaxPort         = 65535
)

// SupportedLanguages is the fallback list when no locale files are found.
var SupportedLanguages = []string{"en", "ru"}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Pet Reminder//Engine//EN"
	ICalCalName   = "Pet Reminder"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalTrigger   = "-P%dD"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when there is nothing to publish.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	// UID inputs; hashed into name-based UUIDs.
	FormatBirthdayUID = "birthday|%s|%04d-%02d-%02d|%d"
	FormatEventUID    = "event|%s|%04d-%02d-%02d|%02d:%02d"
	UIDNamespace      = "https://github.com/tartampluch/pet-reminder"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	MimeVCard             = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortNumber      = "server port must be a number"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrFetchRequest    = "failed to build vCard request"
	ErrFetchNetwork    = "network error during vCard fetch"
	ErrFetchStatus     = "address book server returned"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrConfigDir       = "could not determine user config dir"
	ErrCreateDir       = "could not create app directory"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrLocNotInit      = "localizer not initialized"
	ErrSettingsRead    = "failed to read settings file"
	ErrSettingsParse   = "failed to parse settings file"
	ErrSettingsWrite   = "failed to write settings file"
	ErrSettingsExists  = "settings file already exists (use --force)"
	ErrStoreWrite      = "failed to write state file"
	ErrStoreEncode     = "failed to encode state file"
	ErrImportOpen      = "failed to open vCard source"
	ErrExportWrite     = "failed to write calendar"
	ErrNoFrames        = "no sprite frames found"
	ErrAssetsRead      = "failed to read sprite assets"
	ErrKeyringSet      = "failed to store password in keyring"
	ErrListKind        = "unknown list kind (birthdays|events)"
	ErrDateFlag        = "invalid --date value"
	ErrPasswordRead    = "failed to read password"
	ErrUserRequired    = "--user is required"
	ErrInvalidDay      = "day out of range"
	ErrInvalidMonth    = "month out of range"
	ErrInvalidYear     = "year out of range"
	ErrInvalidHour     = "hour out of range"
	ErrInvalidMinute   = "minute out of range"
	ErrRecordDecode    = "record could not be decoded"
	ErrNotANumber      = "value is not an integer"
	ErrImportSourceArg = "either a file argument or --url is required"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackBirthdayMsg   = "%s\nIn %d day(s)\nTurns %d"
	FallbackEventMsg      = "%s\nIn %d day(s)\nAt %s"
	FallbackSummaryAge    = "Birthday: %s (%d)"
	FallbackBirthdayTitle = "Upcoming birthdays"
	FallbackEventTitle    = "Upcoming events"
	FallbackNoneMsg       = "No birthdays in 3 or 7 days."
	FallbackName          = "Unknown"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgStateMissing   = "State file missing or unreadable, using default"
	MsgStateCorrupt   = "State file corrupt, using default"
	MsgStateSaved     = "State file saved"
	MsgRecordSkipped  = "Skipping malformed record"
	MsgGateClosed     = "Already checked today, skipping evaluation"
	MsgCheckDone      = "Reminder check finished"
	MsgCheckStarted   = "Reminder check started"
	MsgCheckFailed    = "Reminder check failed"
	MsgWorkerStart    = "Reminder scheduler started"
	MsgWorkerStop     = "Scheduler stopping due to context cancellation"
	MsgWorkerWake     = "Next reminder check scheduled"
	MsgTriggerSkipped = "Check already pending"
	MsgFeedPublished  = "Calendar feed published"
	MsgFeedFailed     = "Calendar feed generation failed"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid birthday date"
	MsgSkippedNoYear  = "Skipping birthday without year"
	MsgImportDone     = "vCard import finished"
	MsgFetchStart     = "Downloading address book"
	MsgFetchStatus    = "Address book server returned an error status"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgFramesLoaded   = "Sprite frames loaded"
	MsgSettingsLoaded = "Settings loaded"
	MsgSettingsSave   = "Saving preferences"
	MsgRowsSaved      = "Records saved from editor"
	MsgRowDropped     = "Dropping row without a name"
	MsgToastShown     = "Toast shown"
	MsgFeedStopped    = "Calendar feed stopped"
	MsgPrefsApplied   = "Preferences applied"
	MsgFatalStartup   = "Fatal startup error"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyPath      = "path"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyKind      = "kind"
	LogKeyIndex     = "index"
	LogKeyReason    = "reason"
	LogKeyDate      = "date"
	LogKeyCount     = "count"
	LogKeySkipped   = "skipped"
	LogKeyDue       = "due"
	LogKeyRan       = "ran"
	LogKeyName      = "name"
	LogKeyValue     = "value"
	LogKeyWait      = "wait"
	LogKeyUser      = "user"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompEngine    = "engine"
	CompStore     = "store"
	CompScheduler = "scheduler"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompMain      = "main"
	CompI18n      = "i18n"
	CompCLI       = "cli"
	CompConfig    = "config"
)

// Record kinds used in logs and reminders.
const (
	KindBirthday = "birthday"
	KindEvent    = "event"
	KindStatus   = "status"
)

// ToastStack lists the toast slots from the top of the window down.
var ToastStack = []string{KindStatus, KindEvent, KindBirthday}

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsEvent  = 4
)
