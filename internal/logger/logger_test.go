package logger_test

import (
	"testing"

	"github.com/jonesrussell/newsurl/internal/logger"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{})
	if err != nil {
		t.Fatalf("New with empty config returned error: %v", err)
	}
	requireLogger(t, l)

	// Default level is info, so Debug is filtered but must not panic.
	l.Debug("debug message")
	l.Info("info message", logger.String("key", "value"))
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{Level: "chatty"})
	if err != nil {
		t.Fatalf("New with unknown level returned error: %v", err)
	}
	requireLogger(t, l)
}

func TestNew_DevelopmentConsole(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{
		Level:       "debug",
		Development: true,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		t.Fatalf("New in development mode returned error: %v", err)
	}
	requireLogger(t, l)
	l.Debug("visible in development")
}

func TestWith_ReturnsNewInstance(t *testing.T) {
	t.Parallel()

	base := mustTestLogger(t)
	enriched := base.With(logger.String("component", "resolver"))

	if enriched == base {
		t.Error("With returned the same logger, want a new instance carrying the field")
	}
	enriched.Warn("message with attached field")
}

func TestNewNop_DoesNothing(t *testing.T) {
	t.Parallel()

	nop := logger.NewNop()
	requireLogger(t, nop)

	// None of these may panic, including Fatal.
	nop.Debug("a")
	nop.Info("b")
	nop.Warn("c")
	nop.Error("d")
	nop.Fatal("e")

	if got := nop.With(logger.Int("n", 1)); got != nop {
		t.Error("With on the nop logger should return the same logger")
	}
	if err := nop.Sync(); err != nil {
		t.Errorf("Sync on the nop logger returned %v, want nil", err)
	}
}

// mustTestLogger creates a real logger for testing, failing the test on error.
func mustTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	l, err := logger.New(logger.Config{
		Level:       "warn",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}

	return l
}

// requireLogger fails the test if the logger is nil.
func requireLogger(t *testing.T, l logger.Logger) {
	t.Helper()

	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}
