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

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Dunbar"
	AppID       = "com.github.tartampluch.dunbar"
	LogFileName = "app.log"
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
	// The data file holds personal notes, so it stays private.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to a configuration file"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Settings (viper keys)
// -----------------------------------------------------------------------------

const (
	EnvPrefix = "DUNBAR"

	CfgKeyDataFile      = "data_file"
	CfgKeyLanguage      = "language"
	CfgKeyLookaheadDays = "lookahead_days"
	CfgKeyTimezone      = "timezone"
	CfgKeyReminder      = "reminder_trigger"

	CfgFileName = "config"
	CfgFileType = "yaml"
)

// SupportedLanguages defines the list of available languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultDataFile      = "dunbar.json"
	DefaultLanguage      = "en"
	DefaultLookaheadDays = 21
	DefaultTimezone      = "Europe/Paris"
	DefaultLeapYear      = 2000 // Leap year fallback for dates like --02-29

	UIDSalt = "dunbar-v1-" // Salt for deterministic calendar UID generation
)

// Activity windows and orbit thresholds.
// A friend is `inner` when any of the inner thresholds is met, `middle` when
// the short-window count reaches OrbitMiddleC90, `outer` otherwise.
const (
	WindowShortDays = 90
	WindowLongDays  = 365

	OrbitInnerC90   = 5
	OrbitInnerC365  = 10
	OrbitInnerTotal = 20
	OrbitMiddleC90  = 2
)

// Anniversary projection steps (months).
const (
	AnnivStepHalf = 6
	AnnivStepFull = 12
)

// -----------------------------------------------------------------------------
// Search & NLP Tuning
// -----------------------------------------------------------------------------

const (
	BoostName         = 3.0
	BoostTags         = 2.0
	BoostParticipants = 1.5
	BoostBody         = 1.0

	// PrefixWeight discounts prefix (non-exact) term matches.
	PrefixWeight = 0.7
	// FuzzyWeight discounts typo-tolerant term matches.
	FuzzyWeight = 0.45

	// FuzzyRatio scales the edit budget by term length; MaxFuzzyEdits caps it.
	FuzzyRatio    = 0.25
	MaxFuzzyEdits = 2
	// MinFuzzyTermLen keeps short tokens exact-only (too noisy otherwise).
	MinFuzzyTermLen = 4

	SuggestLimit    = 20
	DefaultMaxVocab = 5000
	DefaultTopK     = 8

	LangFrench  = "fr"
	LangEnglish = "en"
	// LangAuto asks the search layer to detect the corpus language from
	// stopword hits instead of taking the configured one.
	LangAuto = "auto"
)

// -----------------------------------------------------------------------------
// Persisted Data Schema
// -----------------------------------------------------------------------------

const (
	DataSchema  = "dunbar-v1"
	DataVersion = "1.0.0"

	// Date layouts. Date-only values are persisted and compared as YYYY-MM-DD.
	DateFormatYMD     = "2006-01-02"
	DateFormatBasic   = "20060102"
	DateFormatRFC3339 = time.RFC3339
	DateFormatNoYearD = "--01-02"
	DateFormatNoYearB = "--0102"

	// File Extensions
	ExtJSON  = ".json"
	ExtICS   = ".ics"
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Dunbar//Engine//EN"
	ICalCalName   = "Dunbar Anniversaries"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "dunbar"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
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
	VCardNote = "NOTE"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s@%s"

	// StubVCalendar is the minimal valid iCalendar object used when no events
	// fall inside the lookahead window.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyAnnivBirthday = "anniv_birthday"
	TKeyAnnivHalf     = "anniv_half_birthday"
	TKeyAnnivFirst6m  = "anniv_first_6m"
	TKeyAnnivFirst12m = "anniv_first_12m"
	TKeyAnnivLast6m   = "anniv_last_6m"
	TKeyAnnivLast12m  = "anniv_last_12m"
	TKeyOrbitInner    = "orbit_inner"
	TKeyOrbitMiddle   = "orbit_middle"
	TKeyOrbitOuter    = "orbit_outer"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrPayloadEmpty      = "import error: empty payload"
	ErrPayloadSchema     = "import error: unknown payload schema"
	ErrPayloadFriends    = "import error: friends is missing or not an array"
	ErrPayloadDecode     = "import error: malformed JSON payload"
	ErrPayloadDuplicate  = "import error: duplicate friend id"
	ErrPayloadValidation = "import error: payload failed validation"
	ErrDataRead          = "failed to read data file"
	ErrDataWrite         = "failed to write data file"
	ErrDataRename        = "failed to replace data file"
	ErrDateParse         = "unable to parse date"
	ErrICalEncode        = "failed to encode iCalendar data"
	ErrVCardParse        = "failed to parse vCard stream"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrLocNotInit        = "localizer not initialized"
	ErrSettingsRead      = "failed to read settings file"
	ErrTimezoneLoad      = "failed to load timezone, falling back to UTC"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrCreateDir         = "could not create app cache dir"
	ErrAppFailed         = "application failed unexpectedly"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgActionApplied  = "Action applied"
	MsgActionIgnored  = "Action ignored"
	MsgStateLoaded    = "State loaded"
	MsgStateSaved     = "State saved"
	MsgSaveFailed     = "State save failed, in-memory state stays authoritative"
	MsgImportRejected = "Import rejected, current state preserved"
	MsgIndexBuilt     = "Search indexes built"
	MsgCalWritten     = "Calendar exported"
	MsgVCardImported  = "vCard contacts imported"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgDemoSeeded     = "Demo dataset generated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgDroppedRel     = "Dropped relationship to unknown friend"
	MsgDroppedPart    = "Dropped unknown event participant"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyAction    = "action"
	LogKeyReason    = "reason"
	LogKeyFriendID  = "friend_id"
	LogKeyEventID   = "event_id"
	LogKeyCount     = "count"
	LogKeyFriends   = "friends"
	LogKeyEvents    = "events"
	LogKeyDocs      = "docs"
	LogKeyQuery     = "query"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyPath      = "path"
	LogKeyDuration  = "duration_ms"
	LogKeySizeBytes = "size_bytes"

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
	CompStore   = "store"
	CompDerive  = "derive"
	CompSearch  = "search"
	CompPersist = "persist"
	CompICS     = "ics"
	CompVCF     = "vcf"
	CompI18n    = "i18n"
	CompCLI     = "cli"
	CompMain    = "main"
	CompDemo    = "demo"
)
