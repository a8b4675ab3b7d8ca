package logger

// Nop is a logger that does nothing. For testing.
type Nop struct{}

// NewNop creates a new no-op logger. Doesn't fail. Ever.
func NewNop() Logger {
	return &Nop{}
}

var _ Logger = (*Nop)(nil)

func (l *Nop) Debugw(msg string, keysAndValues ...any) {}
func (l *Nop) Infow(msg string, keysAndValues ...any)  {}
func (l *Nop) Warnw(msg string, keysAndValues ...any)  {}
func (l *Nop) Errorw(msg string, keysAndValues ...any) {}
func (l *Nop) Fatalw(msg string, keysAndValues ...any) {}
func (l *Nop) Sync() error                             { return nil }
