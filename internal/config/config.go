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

// UserAgent identifies the HTTP client against the HSMIS REST API.
var UserAgent = "HSMIS-Dates/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "HSMIS Dates"
	AppID             = "af.gov.hsmis.dates"
	KeyringService    = "af.gov.hsmis.dates"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvFileName       = ".env"
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
// CLI Flags & Environment
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"

	// Environment variables read from the process or from .env on first run.
	EnvAPIURL   = "HSMIS_API_URL"
	EnvAPIUser  = "HSMIS_API_USER"
	EnvLanguage = "HSMIS_LANGUAGE"
	EnvCalendar = "HSMIS_CALENDAR"
	EnvKinds    = "HSMIS_RECORD_KINDS"
)

// -----------------------------------------------------------------------------
// Calendar Systems & Date Formats
// -----------------------------------------------------------------------------

const (
	// Calendar system identifiers (stable, persisted in preferences).
	SystemPersian   = "persian"
	SystemArabic    = "arabic"
	SystemGregorian = "gregorian"

	// DatePatternCanonical is the token pattern of the canonical storage format.
	DatePatternCanonical = "YYYY-MM-DD"

	// DatePatternDisplay is the pattern the picker shows in its entry.
	DatePatternDisplay = "YYYY/MM/DD"

	// CanonicalDateLength is the length of a YYYY-MM-DD string.
	CanonicalDateLength = 10

	// Pattern tokens understood by calendar.Format.
	TokenYear      = "YYYY"
	TokenMonth     = "MM"
	TokenMonthName = "MMMM"
	TokenDay       = "DD"

	DateSeparator      = "-"
	DateSeparatorSlash = "/"
	DateSeparatorDot   = "."

	// Go layout of the canonical format.
	DateLayoutCanonical = "2006-01-02"

	// DisplayNotAvailable is rendered by table and report call sites for undated rows.
	DisplayNotAvailable = "N/A"
)

// Language tags associated with each calendar's picker toolbar.
const (
	LangEnglish = "en"
	LangDari    = "fa"
	LangPashto  = "ps"
	LangArabic  = "ar"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600
	MinPort             = 1
	MaxPort             = 65535
	PlaceholderURL      = "https://hsmis.example.af/api"
	PlaceholderKinds    = "maktoobs,weights"

	// Preference Keys
	PrefAPIURL          = "api_url"
	PrefUsername        = "username"
	PrefLanguage        = "language"
	PrefCalendar        = "calendar"
	PrefRecordKinds     = "record_kinds"
	PrefInterval        = "refresh_interval_min"
	PrefServerPort      = "server_port"
	PrefReminderEnabled = "reminder_enabled"
	PrefReminderDays    = "reminder_days"
	PrefLastRun         = "last_run_version"
	PrefSeeded          = "env_seeded"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{LangEnglish, LangDari, LangPashto}

// -----------------------------------------------------------------------------
// UI Records Window Constants
// -----------------------------------------------------------------------------

const (
	// Window Dimensions
	RecordsWinWidth  = 760
	RecordsWinHeight = 440

	// Table Column IDs
	ColIDTitle     = 0
	ColIDKind      = 1
	ColIDGregorian = 2
	ColIDShamsi    = 3
	ColIDHijri     = 4
	ColCount       = 5

	// Table Layout
	ColWidthTitle = 240
	ColWidthKind  = 100
	ColWidthDate  = 130

	TablePlaceholder = "Cell Content"
	LogMsgOpenWin    = "Opening Records Window"
	LogMsgSorted     = "Records sorted"
	LogMsgFiltered   = "Records filtered"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"

	// Date picker widget
	PickerGridColumns = 7
	PickerPlaceholder = "----/--/--"
	PickerPrevMonth   = "‹"
	PickerNextMonth   = "›"
	PickerPopupWidth  = 320
	PickerPopupHeight = 300
)

// DefaultRecordKinds are the REST collections whose dates are tracked.
var DefaultRecordKinds = []string{"maktoobs", "weights", "purchases"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinRecords     = "win_records_title"
	TKeyMenuRefresh    = "menu_refresh"
	TKeyMenuSettings   = "menu_settings"
	TKeyTrayStatus     = "tray_status"      // Requires Count > 0
	TKeyTrayStatusZero = "tray_status_zero" // Explicit key for 0
	TKeyNotifStart     = "notif_sync_start"
	TKeyNotifSuccess   = "notif_sync_success"
	TKeyNotifError     = "notif_err_sync"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblCalendar    = "lbl_calendar"
	TKeyHelpCalendar   = "help_calendar"
	TKeyLblMinutes     = "lbl_minutes_suffix"
	TKeyLblRefresh     = "lbl_refresh_interval"
	TKeyHelpInterval   = "help_interval"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblEnableRem   = "lbl_enable_reminders"
	TKeyLblDaysBefore  = "lbl_days_before"
	TKeyLblNotif       = "lbl_notifications"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblFooter      = "lbl_footer"
	TKeyLblURL         = "lbl_url"
	TKeyHelpURL        = "help_api_url"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyLblKinds       = "lbl_record_kinds"
	TKeyHelpKinds      = "help_record_kinds"
	TKeyLblSource      = "lbl_source"
	TKeyLblFromDate    = "lbl_from_date"
	TKeyEvtSummary     = "event_summary" // Requires Title, Shamsi

	// Calendar names (settings select, picker select)
	TKeyCalPersian   = "cal_persian"
	TKeyCalArabic    = "cal_arabic"
	TKeyCalGregorian = "cal_gregorian"

	// Column Headers
	TKeyColTitle     = "col_title"
	TKeyColKind      = "col_kind"
	TKeyColGregorian = "col_gregorian"
	TKeyColShamsi    = "col_shamsi"
	TKeyColHijri     = "col_hijri"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// Picker toolbar translation keys (internal/picker/locales).
const (
	TKeyPickerToday = "picker_today"
	TKeyPickerClear = "picker_clear"
	TKeyPickerOK    = "picker_ok"
)

// Picker toolbar fallbacks used when a locale lacks a key.
const (
	FallbackPickerToday = "Today"
	FallbackPickerClear = "Clear"
	FallbackPickerOK    = "OK"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort         = "18080"
	DefaultRefreshMin   = 60
	DefaultLanguage     = LangDari
	DefaultCalendar     = SystemPersian
	DefaultReminderDays = 1
	UIDSalt             = "hsmis-dates-v1-" // Salt for deterministic UID generation
	DisabledInterval    = 0
	KindSeparator       = ","
)

// ISO8601 Duration Components for Reminders
const (
	ISONegativePrefix = "-P"
	ISODay            = "D"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//HSMIS//Dates Feed//EN"
	ICalCalName   = "HSMIS Records"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "hsmis"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 1 * time.Hour

	// FormatDescription renders both calendars in the event body.
	FormatDescription = "%s (%s)"
)

// -----------------------------------------------------------------------------
// Records & Reports
// -----------------------------------------------------------------------------

const (
	// JSON envelope key used by paginated API responses.
	JSONDataKey = "data"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s|%s"
	FormatUID       = "%s@%s"

	// XLSX report
	ReportSheetName  = "Records"
	ReportDefaultTab = "Sheet1"
	ReportColFirst   = "A"
	ReportColLast    = "E"
	ReportColWidth   = 22
)

// ReportHeaders are the English column titles of the XLSX report.
var ReportHeaders = []string{"Title", "Kind", "Gregorian", "Shamsi", "Hijri"}

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
	RouteReport         = "/report.xlsx"
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
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeXLSX            = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidDate      = "invalid calendar date"
	ErrUnknownSystem    = "unknown calendar system"
	ErrClockUnavailable = "system clock unavailable"
	ErrDateParse        = "unable to parse date"
	ErrAPIURLEmpty      = "configuration error: API URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrSyncConfig       = "configuration error: invalid sync settings"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrRecordsDecode    = "failed to decode records"
	ErrRecordsFetch     = "failed to fetch records"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrReportEncode     = "failed to encode XLSX report"
	ErrLogFile          = "failed to open log file"
	ErrEnvFile          = "failed to load environment file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrLocNotInit       = "localizer not initialized"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary     = "%s (%s)"
	FallbackTrayError   = "HSMIS Dates: Sync Error"
	FallbackTrayDefault = "HSMIS Dates (%d today)"
	FallbackTrayLabel   = "HSMIS Dates"
	FallbackTitle       = "Untitled"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleSyncError    = "Sync Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgSyncStarted     = "Synchronization started..."
	MsgSyncFailed      = "Synchronization failed. Check logs."
	MsgSyncReq         = "Sync requested"
	MsgWorkerStart     = "Background worker started"
	MsgWorkerStop      = "Worker stopping due to context cancellation"
	MsgUpdateSync      = "Updating sync interval"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgSkippedRecord   = "Skipping invalid record"
	MsgUndatedRecord   = "Record has no usable date"
	MsgGenSuccess      = "Feed generation successful"
	MsgAppStarting     = "Starting application"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Feed cache updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgPassFail        = "Password retrieval failed (might be empty)"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgRecordToday     = "Record dated today"
	MsgEnvSeeded       = "Preferences seeded from environment"
	MsgEnvRejected     = "Ignoring invalid environment value"
	MsgEnvMissing      = "No environment file found"
	MsgEnvLoaded       = "Environment file loaded"
	MsgPickerMounted   = "Date picker defaulted to today"
	MsgPickerIgnored   = "Ignoring picker input"
	MsgPickerDisabled  = "Picker is disabled"
	MsgPickerSwitched  = "Calendar switched"
	MsgPickerBadSystem = "Unknown calendar requested, keeping current"
	MsgPickerNoClock   = "Cannot default to today"
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
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyKind      = "kind"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_records"
	LogKeyDated     = "dated_records"
	LogKeyToday     = "records_today"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyRoute     = "route"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyRaw       = "raw"
	LogKeyCalendar  = "calendar"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyID        = "id"
	LogKeyTitle     = "title"
	LogKeyDate      = "date"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild     = "build"
	LogKeyApp       = "app"
	LogKeyVersion   = "version"
	LogKeyCommit    = "commit"
	LogKeyBuildDate = "date"
	LogKeyGoVer     = "go_version"
	LogKeyEnv       = "env"
	LogKeyOS        = "os"
	LogKeyArch      = "arch"
	LogKeyPID       = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompFeed    = "feed"
	CompRecords = "records"
	CompPicker  = "picker"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
