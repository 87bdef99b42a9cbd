package error

// Severity ranks how much an error affects the user.
type Severity int

const (
	// SeverityLow covers bad user input; the session simply re-prompts.
	SeverityLow Severity = iota
	// SeverityMedium covers failures with a workaround, such as a worker being down.
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
