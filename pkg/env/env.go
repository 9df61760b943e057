// Package env keeps names of environment variables with special significance to
// mdtree.
package env

// Environment variables with special significance to mdtree.
const (
	// Path of the configuration file used when -config is not given.
	MDTREE_CONFIG = "MDTREE_CONFIG"
	// Disables colors when -color is auto; see https://no-color.org.
	NO_COLOR = "NO_COLOR"
)
