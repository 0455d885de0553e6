package logging

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogData accumulates the fields and timings of one request so they are
// emitted as a single structured line when the request completes.
type LogData struct {
	mu      sync.Mutex
	timings map[string]int64
	fields  map[string]any
	logger  *logrus.Logger
}

func NewLogData(logger *logrus.Logger) *LogData {
	return &LogData{
		timings: make(map[string]int64),
		fields:  make(map[string]any),
		logger:  logger,
	}
}

// AddTiming starts a timer for entryName and returns the stop function
// that records the elapsed milliseconds.
func (l *LogData) AddTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		elapsed := time.Since(startTime).Milliseconds()
		l.mu.Lock()
		defer l.mu.Unlock()
		l.timings[entryName] = elapsed
	}
}

// AddToExistingTiming accumulates instead of overwriting, for code
// paths that run more than once in a request.
func (l *LogData) AddToExistingTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		elapsed := time.Since(startTime).Milliseconds()
		l.mu.Lock()
		defer l.mu.Unlock()
		l.timings[entryName] += elapsed
	}
}

func (l *LogData) AddData(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fields[key] = value
}

// Log returns an entry carrying everything accumulated so far.
func (l *LogData) Log() *logrus.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := logrus.NewEntry(l.logger)
	for key, value := range l.fields {
		entry = entry.WithField(key, value)
	}
	for key, value := range l.timings {
		entry = entry.WithField(key, value)
	}
	return entry
}
