package preset

// debugLogger receives debug output when set. It is a no-op by default.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for preset loading and
// transforms. Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}
