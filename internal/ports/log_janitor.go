package ports

// LogJanitor removes log artifacts past the retention window.
// Failures are handled (logged) internally; only a count comes back.
type LogJanitor interface {
	Cleanup(logsDir string) (removed int)
}
