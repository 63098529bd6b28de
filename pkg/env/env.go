package env

import "os"

// Get reads the named environment variable, falling back when it is unset
// or empty.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
