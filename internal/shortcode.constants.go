package internal

// Bracket and marker characters of the shortcode grammar
const (
	CharOpenBracket  = '['
	CharCloseBracket = ']'
	CharSlash        = '/'
	CharHyphen       = '-'
	CharUnderscore   = '_'
	CharBackslash    = '\\'
	CharDoubleQuote  = '"'
	CharSingleQuote  = '\''
	CharEquals       = '='
	CharSpace        = ' '
	CharNewline      = '\n'
)

// Runes normalized to a plain space before attributes are tokenized
const (
	RuneNoBreakSpace   = '\u00a0'
	RuneZeroWidthSpace = '\u200b'
)

// String constants for closing-tag construction
const (
	StrCloseTagOpen = "[/"
	StrCloseTagEnd  = "]"
)

// Default values
const (
	DefaultPatternCacheSize = 64
)

// Log message constants
const (
	LogMsgRegistryCreated     = "registry created"
	LogMsgShortcodeRegistered = "shortcode registered"
	LogMsgShortcodeReplaced   = "shortcode replaced"
	LogMsgShortcodeRemoved    = "shortcode unregistered"
	LogMsgRegistryDestroyed   = "registry destroyed"
	LogMsgSnapshotBuilt       = "registry snapshot built"
	LogMsgPatternBuilt        = "pattern built"
	LogMsgPatternCacheHit     = "pattern cache hit"
	LogMsgPatternCacheEvict   = "pattern cache eviction"
)

// Log field names
const (
	LogFieldName        = "shortcode"
	LogFieldCount       = "count"
	LogFieldFingerprint = "fingerprint"
)

// Format string constants
const (
	ErrFmtNameMessage = "%s: %s"
	FmtPosition       = "line %d, column %d"
	FmtEmptyBraces    = "{}"
	FmtOpenBrace      = "{"
	FmtCloseBrace     = "}"
	FmtCommaSep       = ", "
	FmtKeyValueSep    = "="
)

// StringValueEmpty is the zero string, named for comparisons
const StringValueEmpty = ""
