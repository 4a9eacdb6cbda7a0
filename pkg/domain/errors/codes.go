package errors

// Code represents an error code
type Code string

// Error codes used across the gateway
const (
	CodeUnknown          Code = "UNKNOWN"           // Unknown error occurred
	CodeInternalError    Code = "INTERNAL_ERROR"    // Internal system error
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"  // Invalid or malformed argument
	CodeMissingParameter Code = "MISSING_PARAMETER" // Required parameter missing
	CodeNotFound         Code = "NOT_FOUND"         // Tool or upstream resource not found
	CodeUnauthorized     Code = "UNAUTHORIZED"      // No credential available for the call
	CodeUpstreamError    Code = "UPSTREAM_ERROR"    // Upstream returned a non-success status
	CodeNetworkError     Code = "NETWORK_ERROR"     // Transport-level fetch failure
	CodeParseError       Code = "PARSE_ERROR"       // Upstream payload could not be decoded
	CodeConfigInvalid    Code = "CONFIG_INVALID"    // Configuration invalid
)
