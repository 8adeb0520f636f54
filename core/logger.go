package core

// Logger is the app-wide logging service.
// Implementations may inspect args for well-known types (eg. a logged in user)
// and attach them to the log entry.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
