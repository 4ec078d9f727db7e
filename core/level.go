package core

// Level specifies the severity of a log record.
type Level int

const (
	// DebugLevel is for debugging information.
	DebugLevel Level = iota

	// InfoLevel is for informational messages.
	InfoLevel

	// WarningLevel is for warnings.
	WarningLevel

	// ErrorLevel is for errors.
	ErrorLevel
)

// String returns the severity name as it appears in the [channel:severity]
// segment of a formatted line.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarningLevel:
		return "warning"
	case ErrorLevel:
		return "error"
	default:
		return "info"
	}
}
