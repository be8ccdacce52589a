package errors

// ErrorCode identifies an application error category in API responses.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 0
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003

	ErrorCode_USER_NOT_FOUND           ErrorCode = 2000
	ErrorCode_INVALID_QUESTION_NUMBER  ErrorCode = 2001
	ErrorCode_UNSUPPORTED_AUDIO_FORMAT ErrorCode = 2002
	ErrorCode_FILE_SIZE_EXCEEDED       ErrorCode = 2003

	ErrorCode_STORAGE_FAILED           ErrorCode = 3000
	ErrorCode_TRANSCRIPTION_FAILED     ErrorCode = 3001
	ErrorCode_REPORT_GENERATION_FAILED ErrorCode = 3002

	ErrorCode_DB_QUERY_FAILED ErrorCode = 4000
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                  "HTTP_OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:           "ALREADY_EXISTS",
	ErrorCode_USER_NOT_FOUND:           "USER_NOT_FOUND",
	ErrorCode_INVALID_QUESTION_NUMBER:  "INVALID_QUESTION_NUMBER",
	ErrorCode_UNSUPPORTED_AUDIO_FORMAT: "UNSUPPORTED_AUDIO_FORMAT",
	ErrorCode_FILE_SIZE_EXCEEDED:       "FILE_SIZE_EXCEEDED",
	ErrorCode_STORAGE_FAILED:           "STORAGE_FAILED",
	ErrorCode_TRANSCRIPTION_FAILED:     "TRANSCRIPTION_FAILED",
	ErrorCode_REPORT_GENERATION_FAILED: "REPORT_GENERATION_FAILED",
	ErrorCode_DB_QUERY_FAILED:          "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
