// Package storedefs contains definitions of the render cache API.
//
// It is a separate package so that packages that only depend on the API do
// not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoEntry is returned by Store.Get when nothing has been rendered for the
// given format and source.
var ErrNoEntry = errors.New("no cached entry")

// Store is an interface satisfied by the render cache.
type Store interface {
	Get(format, src string) (string, error)
	Put(format, src, output string) error
	Del(format, src string) error
	Stats() (Stats, error)
	Clear() error
}

// Stats summarizes the content of a Store.
type Stats struct {
	Entries int
	// Total size of the cached outputs in bytes.
	Bytes int64
}
