// Package notify carries user-facing messages collected while an operation runs.
package notify

// Level is the severity of a Notification.
type Level string

const (
	LevelInfo Level = "info"
	LevelWarn Level = "warn"
)

// Notification is a message the user should see regardless of whether the
// operation that produced it succeeded.
type Notification struct {
	Level   Level  `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
}

func Info(message string) Notification {
	return Notification{Level: LevelInfo, Message: message}
}

func Warn(message string) Notification {
	return Notification{Level: LevelWarn, Message: message}
}

// HasWarnings reports whether any notification is a warning.
func HasWarnings(ns []Notification) bool {
	for _, n := range ns {
		if n.Level == LevelWarn {
			return true
		}
	}
	return false
}
