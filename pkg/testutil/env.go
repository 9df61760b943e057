package testutil

import "os"

// Set sets *p to v, and restores the old value after the test finishes.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}

// Setenv sets an environment variable until the test finishes, and returns
// value.
func Setenv(c Cleanuper, name, value string) string {
	restoreEnvLater(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv unsets an environment variable until the test finishes.
func Unsetenv(c Cleanuper, name string) {
	restoreEnvLater(c, name)
	os.Unsetenv(name)
}

func restoreEnvLater(c Cleanuper, name string) {
	old, ok := os.LookupEnv(name)
	c.Cleanup(func() {
		if ok {
			os.Setenv(name, old)
		} else {
			os.Unsetenv(name)
		}
	})
}
