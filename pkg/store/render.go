package store

import (
	"crypto/sha256"

	bolt "go.etcd.io/bbolt"

	. "github.com/mdtree/mdtree/pkg/store/storedefs"
)

const bucketRender = "render"

func init() {
	initDB["initialize render cache table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRender))
		return err
	}
}

// Entries are keyed by a digest of the format and the source, so that the
// key size does not grow with the document.
func renderKey(format, src string) []byte {
	h := sha256.New()
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write([]byte(src))
	return h.Sum(nil)
}

// Get returns the cached output for the given format and source, or
// ErrNoEntry.
func (s *dbStore) Get(format, src string) (string, error) {
	var output string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRender))
		v := b.Get(renderKey(format, src))
		if v == nil {
			return ErrNoEntry
		}
		output = string(v)
		return nil
	})
	return output, err
}

// Put caches the output for the given format and source.
func (s *dbStore) Put(format, src, output string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRender))
		return b.Put(renderKey(format, src), []byte(output))
	})
}

// Del removes the cached output for the given format and source. Deleting an
// entry that does not exist is not an error.
func (s *dbStore) Del(format, src string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketRender))
		return b.Delete(renderKey(format, src))
	})
}

// Stats counts the cached entries and their size.
func (s *dbStore) Stats() (Stats, error) {
	var stats Stats
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketRender)).ForEach(func(_, v []byte) error {
			stats.Entries++
			stats.Bytes += int64(len(v))
			return nil
		})
	})
	return stats, err
}

// Clear removes all cached entries.
func (s *dbStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketRender)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketRender))
		return err
	})
}
