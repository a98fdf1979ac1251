package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	logger *log.Logger
)

// Init builds the process logger. Level comes from the LOG_LEVEL environment
// variable unless overridden later via SetLevel.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(os.Stderr)
	logger.SetReportTimestamp(true)
	logger.SetPrefix("worldgen")
	applyLevel(logger, os.Getenv("LOG_LEVEL"))
}

// GetLogger returns the process logger, initializing it on first use.
func GetLogger() *log.Logger {
	mu.Lock()
	if logger == nil {
		mu.Unlock()
		Init()
		mu.Lock()
	}
	l := logger
	mu.Unlock()
	return l
}

// SetLevel reconfigures the active log level by name ("debug", "info",
// "warn", "error"). Unknown names fall back to info.
func SetLevel(level string) {
	applyLevel(GetLogger(), level)
}

func applyLevel(l *log.Logger, level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l.SetLevel(log.DebugLevel)
	case "warn", "warning":
		l.SetLevel(log.WarnLevel)
	case "error":
		l.SetLevel(log.ErrorLevel)
	default:
		l.SetLevel(log.InfoLevel)
	}
}

// WithFields creates a logger carrying contextual key/value pairs.
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithChunkCoords creates a logger with chunk coordinate context.
func WithChunkCoords(chunkX, chunkZ int) *log.Logger {
	return WithFields("chunk_x", chunkX, "chunk_z", chunkZ)
}

// WithWorldSeed creates a logger with world seed context.
func WithWorldSeed(seed int64) *log.Logger {
	return WithFields("seed", seed)
}
