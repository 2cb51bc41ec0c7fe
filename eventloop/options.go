package eventloop

// Option configures a Loop at construction time via New.
type Option func(*loopConfig)

type loopConfig struct {
	pollTimeoutMs int
}

func defaultLoopConfig() loopConfig {
	return loopConfig{pollTimeoutMs: 1000}
}

// WithPollTimeout overrides the bounded wait (default 1000ms, §4.1) the
// loop blocks in the poller for on each tick.
func WithPollTimeout(ms int) Option {
	return func(c *loopConfig) { c.pollTimeoutMs = ms }
}
