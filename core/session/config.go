package session

import "time"

// Config holds session manager configuration. All values can be loaded from
// the environment via core/config.
type Config struct {
	// TTL is the idle timeout for active sessions.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"15m"`
	// MaxHistory caps the per-session conversation history; the oldest
	// entries are silently dropped beyond it.
	MaxHistory int `env:"SESSION_MAX_HISTORY" envDefault:"50"`
	// SweepInterval is how often the background sweep scans for expired
	// sessions missed by their timers.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
	// GracePeriod is how long a disconnected session may be reconnected
	// before it is destroyed.
	GracePeriod time.Duration `env:"SESSION_GRACE_PERIOD" envDefault:"30s"`
}

// Validate fails fast on configuration that would misbehave at runtime.
func (c Config) Validate() error {
	if c.TTL <= 0 {
		return ErrInvalidTTL
	}
	if c.MaxHistory < 1 {
		return ErrInvalidMaxHistory
	}
	if c.SweepInterval <= 0 {
		return ErrInvalidSweepInterval
	}
	if c.GracePeriod <= 0 {
		return ErrInvalidGracePeriod
	}
	return nil
}
