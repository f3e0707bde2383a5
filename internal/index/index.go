// If you are AI: This file implements the persistent keyframe index stored in bbolt.
// Each indexed file gets a bucket of big-endian timestamp -> tag offset pairs plus a freshness stamp.

package index

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"flvkit/internal/core/protocol/flv"
)

var (
	bucketFiles  = []byte("files")
	bucketStamps = []byte("stamps")
)

var (
	// ErrNotIndexed means the file has no index entry.
	ErrNotIndexed = errors.New("index: file not indexed")
	// ErrNoKeyframe means no keyframe lies at or before the requested time.
	ErrNoKeyframe = errors.New("index: no keyframe at or before time")
)

// Entry locates one video keyframe.
type Entry struct {
	Timestamp uint32 // milliseconds
	Offset    int64  // tag header offset
}

// Index is a keyframe index database. It is safe for concurrent use.
type Index struct {
	db   *bolt.DB
	opts []flv.Option
}

// Open opens or creates the index database at path. opts are passed to
// every stream the index reads.
func Open(path string, opts ...flv.Option) (*Index, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("could not open index: %w: %v", err, path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketFiles); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketStamps)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create buckets: %w", err)
	}
	return &Index{db: db, opts: opts}, nil
}

// Close closes the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Scan walks the FLV file at path and returns its video keyframes in file order.
func Scan(path string, opts ...flv.Option) ([]Entry, error) {
	s, err := flv.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	err = flv.Walk(s, flv.Handlers{
		VideoTag: func(tag flv.TagHeader, v flv.VideoTag) error {
			if v.IsKeyframe() {
				entries = append(entries, Entry{Timestamp: tag.Time(), Offset: s.CurrentTagOffset()})
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return entries, nil
}

// Build scans path and stores its keyframes, replacing any previous entry.
func (ix *Index) Build(path string) ([]Entry, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	entries, err := Scan(path, ix.opts...)
	if err != nil {
		return nil, err
	}
	if err := ix.store(path, stamp(fi), entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// store replaces the bucket for key with entries.
func (ix *Index) store(key string, st []byte, entries []Entry) error {
	return ix.db.Update(func(tx *bolt.Tx) error {
		files := tx.Bucket(bucketFiles)
		if files.Bucket([]byte(key)) != nil {
			if err := files.DeleteBucket([]byte(key)); err != nil {
				return err
			}
		}
		b, err := files.CreateBucket([]byte(key))
		if err != nil {
			return err
		}
		for _, e := range entries {
			// the first keyframe at a timestamp wins
			k := encodeKey(e.Timestamp)
			if b.Get(k) != nil {
				continue
			}
			if err := b.Put(k, encodeOffset(e.Offset)); err != nil {
				return err
			}
		}
		return tx.Bucket(bucketStamps).Put([]byte(key), st)
	})
}

// Fresh reports whether path is indexed and unchanged since.
func (ix *Index) Fresh(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	want := stamp(fi)
	fresh := false
	_ = ix.db.View(func(tx *bolt.Tx) error {
		got := tx.Bucket(bucketStamps).Get([]byte(path))
		fresh = got != nil && string(got) == string(want)
		return nil
	})
	return fresh
}

// Ensure builds the index for path unless it is fresh.
func (ix *Index) Ensure(path string) error {
	if ix.Fresh(path) {
		return nil
	}
	_, err := ix.Build(path)
	return err
}

// Lookup returns the last keyframe at or before ms.
func (ix *Index) Lookup(path string, ms uint32) (Entry, error) {
	var e Entry
	err := ix.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFiles).Bucket([]byte(path))
		if b == nil {
			return ErrNotIndexed
		}
		c := b.Cursor()
		k, v := c.Seek(encodeKey(ms))
		switch {
		case k == nil:
			k, v = c.Last()
		case binary.BigEndian.Uint32(k) > ms:
			k, v = c.Prev()
		}
		if k == nil {
			return ErrNoKeyframe
		}
		e = Entry{Timestamp: binary.BigEndian.Uint32(k), Offset: decodeOffset(v)}
		return nil
	})
	return e, err
}

// Entries returns every stored keyframe of path in time order.
func (ix *Index) Entries(path string) ([]Entry, error) {
	var out []Entry
	err := ix.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFiles).Bucket([]byte(path))
		if b == nil {
			return ErrNotIndexed
		}
		return b.ForEach(func(k, v []byte) error {
			out = append(out, Entry{Timestamp: binary.BigEndian.Uint32(k), Offset: decodeOffset(v)})
			return nil
		})
	})
	return out, err
}

// stamp fingerprints a file by size and modification time.
func stamp(fi os.FileInfo) []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b, uint64(fi.Size()))
	binary.BigEndian.PutUint64(b[8:], uint64(fi.ModTime().UnixNano()))
	return b
}

// encodeKey orders keys by timestamp.
func encodeKey(ms uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, ms)
}

// encodeOffset stores a tag offset.
func encodeOffset(off int64) []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(off))
}

// decodeOffset reverses encodeOffset.
func decodeOffset(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}
