package resolve

import "fmt"

// ErrorCode is the closed enumeration of failure codes shared between the
// bridge protocol, the validator and the dispatcher. The set is fixed: new
// codes require a protocol revision on the Python side as well.
type ErrorCode string

const (
	CodeResolveNotRunning ErrorCode = "RESOLVE_NOT_RUNNING"
	CodeNoProject         ErrorCode = "NO_PROJECT"
	CodeNoTimeline        ErrorCode = "NO_TIMELINE"
	CodeTimelineNotFound  ErrorCode = "TIMELINE_NOT_FOUND"
	CodeClipNotFound      ErrorCode = "CLIP_NOT_FOUND"
	CodeTrackNotFound     ErrorCode = "TRACK_NOT_FOUND"
	CodeMediaNotFound     ErrorCode = "MEDIA_NOT_FOUND"
	CodeImportFailed      ErrorCode = "IMPORT_FAILED"
	CodeRenderFailed      ErrorCode = "RENDER_FAILED"
	CodeInvalidProperty   ErrorCode = "INVALID_PROPERTY"
	CodeInvalidValue      ErrorCode = "INVALID_VALUE"
	CodePythonError       ErrorCode = "PYTHON_ERROR"
	CodeAPIError          ErrorCode = "API_ERROR"
	CodeSchemaError       ErrorCode = "SCHEMA_ERROR"
)

// Valid reports whether the code belongs to the enumeration. Unknown codes
// coming back from the bridge are normalised to CodePythonError by callers.
func (c ErrorCode) Valid() bool {
	switch c {
	case CodeResolveNotRunning, CodeNoProject, CodeNoTimeline,
		CodeTimelineNotFound, CodeClipNotFound, CodeTrackNotFound,
		CodeMediaNotFound, CodeImportFailed, CodeRenderFailed,
		CodeInvalidProperty, CodeInvalidValue, CodePythonError,
		CodeAPIError, CodeSchemaError:
		return true
	}
	return false
}

// OpError is a structured operation failure carrying one of the fixed error
// codes. It is used both for errors reported by the bridge process and for
// bridge-level failures (timeout, crash) synthesised on this side.
type OpError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"error"`
}

func (e *OpError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewOpError builds an OpError, normalising unknown codes to PYTHON_ERROR so
// downstream consumers only ever see values from the enumeration.
func NewOpError(code ErrorCode, format string, args ...interface{}) *OpError {
	if !code.Valid() {
		code = CodePythonError
	}
	return &OpError{Code: code, Message: fmt.Sprintf(format, args...)}
}
