package observer

import (
	"context"
	"fmt"
	"log"
	"os"
)

// ============================================================================
// Default Observer Implementations
// ============================================================================

// NoOpObserver ignores all events. Useful as a default when no observer is
// configured.
type NoOpObserver struct{}

// OnEvent implements Observer (does nothing).
func (o *NoOpObserver) OnEvent(ctx context.Context, event Event) {}

// ConsoleObserver prints events to stdout/stderr via a Logger. Useful for
// development and debugging.
type ConsoleObserver struct {
	logger Logger
}

// NewConsoleObserver creates a console observer with the default logger.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{logger: NewDefaultLogger()}
}

// NewConsoleObserverWithLogger creates a console observer with a custom
// logger.
func NewConsoleObserverWithLogger(logger Logger) *ConsoleObserver {
	return &ConsoleObserver{logger: logger}
}

// OnEvent implements Observer.
func (o *ConsoleObserver) OnEvent(ctx context.Context, event Event) {
	fields := map[string]interface{}{"type": event.Type}
	if event.SinkID != 0 {
		fields["sink_id"] = event.SinkID
	}
	if event.TransformName != "" {
		fields["transform_idx"] = event.TransformIdx
		fields["transform_name"] = event.TransformName
	}
	if event.Elapsed > 0 {
		fields["elapsed"] = event.Elapsed.String()
	}

	msg := fmt.Sprintf("[%s]", event.Type)

	switch event.Type {
	case EventComputeEnd, EventTransformEnd:
		if event.Err != nil {
			fields["error"] = event.Err.Error()
			o.logger.Warn(msg, fields)
		} else {
			o.logger.Debug(msg, fields)
		}
	default:
		o.logger.Debug(msg, fields)
	}
}

// ============================================================================
// Default Logger Implementations
// ============================================================================

// NoOpLogger ignores all log messages.
type NoOpLogger struct{}

func (l *NoOpLogger) Debug(msg string, fields map[string]interface{}) {}
func (l *NoOpLogger) Info(msg string, fields map[string]interface{})  {}
func (l *NoOpLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *NoOpLogger) Error(msg string, fields map[string]interface{}) {}

// DefaultLogger writes to stdout/stderr using the standard library's log
// package.
type DefaultLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
}

// NewDefaultLogger creates a new default logger.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		infoLogger:  log.New(os.Stdout, "[INFO] ", log.LstdFlags),
		errorLogger: log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
	}
}

func (l *DefaultLogger) Debug(msg string, fields map[string]interface{}) {
	l.infoLogger.Printf("[DEBUG] %s %v", msg, fields)
}
func (l *DefaultLogger) Info(msg string, fields map[string]interface{}) {
	l.infoLogger.Printf("%s %v", msg, fields)
}
func (l *DefaultLogger) Warn(msg string, fields map[string]interface{}) {
	l.infoLogger.Printf("[WARN] %s %v", msg, fields)
}
func (l *DefaultLogger) Error(msg string, fields map[string]interface{}) {
	l.errorLogger.Printf("%s %v", msg, fields)
}

// ============================================================================
// Observer Manager
// ============================================================================

// Manager fans a single event out to every registered Observer
// concurrently, recovering from any observer panic so a misbehaving
// observer cannot affect the engine it is watching.
type Manager struct {
	observers []Observer
}

// NewManager creates an observer manager with no observers.
func NewManager() *Manager {
	return &Manager{observers: []Observer{}}
}

// NewManagerWithObservers creates an observer manager with initial
// observers.
func NewManagerWithObservers(observers ...Observer) *Manager {
	return &Manager{observers: observers}
}

// Register adds an observer to the manager.
func (m *Manager) Register(observer Observer) {
	if observer != nil {
		m.observers = append(m.observers, observer)
	}
}

// Notify sends an event to all registered observers asynchronously. Each
// observer runs in its own goroutine; a panic is recovered and does not
// affect other observers or the caller.
func (m *Manager) Notify(ctx context.Context, event Event) {
	for _, observer := range m.observers {
		obs := observer
		go func() {
			defer func() {
				recover()
			}()
			obs.OnEvent(ctx, event)
		}()
	}
}

// HasObservers returns true if any observers are registered.
func (m *Manager) HasObservers() bool {
	return len(m.observers) > 0
}

// Count returns the number of registered observers.
func (m *Manager) Count() int {
	return len(m.observers)
}
