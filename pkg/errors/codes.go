package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeUnknown    ErrorCode = "COMMON_000"
	ErrCodeInternal   ErrorCode = "COMMON_001"
	ErrCodeValidation ErrorCode = "COMMON_002"
	ErrCodeNotFound   ErrorCode = "COMMON_003"

	// CodeOK is returned by GetCode for a nil error.
	CodeOK ErrorCode = "OK"
)

// Lexicon / dictionary error codes.
const (
	ErrCodeDictionaryEmpty ErrorCode = "LEX_001"
	ErrCodeDictionaryLoad  ErrorCode = "LEX_002"
	ErrCodeTokenNotFound   ErrorCode = "LEX_003"
)

// Engine error codes.
const (
	ErrCodeEmptyInput    ErrorCode = "ENG_001"
	ErrCodeInvalidOption ErrorCode = "ENG_002"
	ErrCodeConfigInvalid ErrorCode = "ENG_003"
)
