package logger

// Noop is a logger that discards everything. Used in tests and as a safe
// fallback before configuration is loaded.
type Noop struct{}

// NewNoop creates a no-op logger.
func NewNoop() Interface { return &Noop{} }

func (n *Noop) Debug(_ string, _ ...any) {}
func (n *Noop) Info(_ string, _ ...any)  {}
func (n *Noop) Warn(_ string, _ ...any)  {}
func (n *Noop) Error(_ string, _ ...any) {}
func (n *Noop) Fatal(_ string, _ ...any) {}

func (n *Noop) With(_ ...any) Interface           { return n }
func (n *Noop) WithComponent(_ string) Interface  { return n }
func (n *Noop) WithSource(_ string) Interface     { return n }
func (n *Noop) WithError(_ error) Interface       { return n }
