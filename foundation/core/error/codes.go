// File: codes.go
// Title: Error Codes
// Description: Error codes used to classify failures across the wishbrick
//              client and workers.

package error

// Code classifies an error.
type Code string

const (
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"

	// Store and input
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeInvalidData  Code = "INVALID_DATA"

	// Protocol
	CodeInvalidCommand Code = "INVALID_COMMAND"
	CodeRemoteError    Code = "REMOTE_ERROR"

	// Service and network
	CodeServiceUnavailable    Code = "SERVICE_UNAVAILABLE"
	CodeServiceTimeout        Code = "SERVICE_TIMEOUT"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"

	// Configuration and storage
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeDatabaseError Code = "DATABASE_ERROR"
)

func (c Code) String() string {
	return string(c)
}

// Category returns the broad family of the code.
func (c Code) Category() string {
	switch c {
	case CodeNotFound, CodeInvalidInput, CodeInvalidData:
		return "input"
	case CodeInvalidCommand, CodeRemoteError:
		return "protocol"
	case CodeServiceUnavailable, CodeServiceTimeout, CodeServiceInitialization:
		return "service"
	case CodeConfigError:
		return "configuration"
	case CodeDatabaseError:
		return "storage"
	default:
		return "generic"
	}
}

// severityFor is the default severity assigned by WithCode.
func severityFor(c Code) Severity {
	switch c {
	case CodeNotFound, CodeInvalidInput, CodeInvalidData, CodeInvalidCommand:
		return SeverityLow
	case CodeServiceUnavailable, CodeServiceTimeout, CodeRemoteError:
		return SeverityMedium
	case CodeInternal, CodeDatabaseError, CodeServiceInitialization:
		return SeverityHigh
	case CodeConfigError:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
