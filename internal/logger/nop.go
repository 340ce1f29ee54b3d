package logger

// nopLogger discards everything. Constructors that accept a nil logger hand
// out one of these so callers never have to nil-check before logging.
type nopLogger struct{}

// NewNop returns a logger that discards all output.
func NewNop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...Field) {}

func (nopLogger) Info(string, ...Field) {}

func (nopLogger) Warn(string, ...Field) {}

func (nopLogger) Error(string, ...Field) {}

// Fatal discards the message like every other level; it does not exit.
func (nopLogger) Fatal(string, ...Field) {}

// With returns the logger unchanged; there is nothing to attach fields to.
func (l nopLogger) With(...Field) Logger {
	return l
}

// Sync reports success; there is no buffer to flush.
func (nopLogger) Sync() error {
	return nil
}
