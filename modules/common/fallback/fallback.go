package fallback

import (
	"strings"
)

// SafeString returns a trimmed string or the provided fallback.
func SafeString(value interface{}, fallback string) string {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return fallback
}

// FirstOf tries each loader in order and returns the first result that loads
// without error together with its index. When every loader fails the result of
// defaultValue is returned with index -1.
func FirstOf[T any](loaders []func() (T, error), defaultValue func() T) (T, int) {
	for i, load := range loaders {
		v, err := load()
		if err == nil {
			return v, i
		}
	}
	return defaultValue(), -1
}
