package logger

// nullLogger is a logger that does nothing.
type nullLogger struct{}

func (nullLogger) Debugf(string, ...any) {}

func (nullLogger) Infof(string, ...any) {}

func (nullLogger) Errorf(string, ...any) {}

// NewNull returns a logger that does nothing.
func NewNull() Logger {
	return nullLogger{}
}
