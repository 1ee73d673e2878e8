package theory

import "github.com/sirupsen/logrus"

// Config holds the engine's tunable settings, in the teacher's
// SolverConfig/DefaultSolverConfig functional-option idiom
// (fd_solver.go).
type Config struct {
	// InitialMaxUnfoldingDepth is the starting value of the
	// max_unfolding(d) budget (spec.md section 4.6); spec.md fixes this
	// at 1.
	InitialMaxUnfoldingDepth int

	// InitialLengthLimit is the starting value of each tracked
	// sequence's length_limit(s, k) budget.
	InitialLengthLimit int64

	// EnableLenBasedSplit gates the optional len_based_split rule
	// (spec.md section 4.4 rule 6).
	EnableLenBasedSplit bool

	// MaxCascadeRounds bounds how many times FinalCheck loops the rule
	// cascade before reporting GiveUp, guarding against a rule ordering
	// bug turning into an infinite loop; spec.md does not name a bound,
	// but section 5's "no rule is obligated to check cancellation
	// mid-way" still implies an outer driver that can tire of waiting.
	MaxCascadeRounds int

	Log *logrus.Logger
}

// Option configures a Config.
type Option func(*Config)

// WithMaxUnfoldingDepth overrides the initial unfolding-depth budget.
func WithMaxUnfoldingDepth(d int) Option {
	return func(c *Config) { c.InitialMaxUnfoldingDepth = d }
}

// WithLengthLimit overrides the initial length-limit budget.
func WithLengthLimit(k int64) Option {
	return func(c *Config) { c.InitialLengthLimit = k }
}

// WithLenBasedSplit toggles the optional len_based_split rule.
func WithLenBasedSplit(enabled bool) Option {
	return func(c *Config) { c.EnableLenBasedSplit = enabled }
}

// WithLogger injects a logrus logger; the default is a logrus logger at
// WarnLevel, so library consumers do not get debug or info output.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Config) { c.Log = l }
}

// DefaultConfig returns the engine's default tuning, matching spec.md's
// stated defaults (unfolding depth 1) plus conservative choices for the
// settings spec.md leaves to the implementation.
func DefaultConfig(opts ...Option) *Config {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	c := &Config{
		InitialMaxUnfoldingDepth: 1,
		InitialLengthLimit:       16,
		EnableLenBasedSplit:      false,
		MaxCascadeRounds:         10000,
		Log:                      log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}
