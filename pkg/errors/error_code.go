package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeInvalidMultiplier    ErrorCode = 111
	ErrCodeInvalidThreshold     ErrorCode = 112
	ErrCodeInvalidStockCode     ErrorCode = 120

	// Series errors (150-199)
	ErrCodeEmptySeries    ErrorCode = 150
	ErrCodeInvalidSeries  ErrorCode = 151
	ErrCodeMissingColumn  ErrorCode = 152
	ErrCodeNonNumericCell ErrorCode = 153
	ErrCodeLengthMismatch ErrorCode = 154

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302
	ErrCodeColumnConflict         ErrorCode = 303

	// Signal errors (400-499)
	ErrCodeSignalDerivation ErrorCode = 400

	// Analysis errors (500-599)
	ErrCodeFetchFailed        ErrorCode = 500
	ErrCodeFundamentalsFailed ErrorCode = 501
	ErrCodeNarrativeFailed    ErrorCode = 502

	// Config errors (600-699)
	ErrCodeConfigReadFailed  ErrorCode = 600
	ErrCodeConfigParseFailed ErrorCode = 601
	ErrCodeVersionMismatch   ErrorCode = 602
)
