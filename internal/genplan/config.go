package genplan

// Config tunes generation calls.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation settings. Schedules are
// long-form, so the token budget is generous; a little temperature keeps
// activity suggestions varied across lessons.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}
