package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidPrice         ErrorCode = 102
	ErrCodeInvalidQuantity      ErrorCode = 103
	ErrCodeInvalidAmount        ErrorCode = 104
	ErrCodeLotTooSmall          ErrorCode = 105
	ErrCodeInvalidTimestamp     ErrorCode = 106
	ErrCodeInvalidTransaction   ErrorCode = 107

	// Trading errors (500-599)
	ErrCodeInsufficientFunds   ErrorCode = 500
	ErrCodeAlreadyHeld         ErrorCode = 501
	ErrCodeNotHeld             ErrorCode = 502
	ErrCodeSettlementViolation ErrorCode = 503

	// Persistence errors (600-699)
	ErrCodePersistenceFailed  ErrorCode = 600
	ErrCodeStateCorrupted     ErrorCode = 601
	ErrCodeSchemaIncompatible ErrorCode = 602

	// Market data errors (700-799)
	ErrCodeQuoteNotFound     ErrorCode = 700
	ErrCodeQuoteFetchFailed  ErrorCode = 701
	ErrCodeQuoteParseFailed  ErrorCode = 702
	ErrCodeInvalidProvider   ErrorCode = 703
	ErrCodeInstrumentUnknown ErrorCode = 704

	// Data source errors (800-899)
	ErrCodeDataSourceNotFound  ErrorCode = 800
	ErrCodeDataSourceDuplicate ErrorCode = 801
	ErrCodeDataSourceFailed    ErrorCode = 802

	// Export errors (900-999)
	ErrCodeExportFailed ErrorCode = 900
)
