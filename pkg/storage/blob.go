package storage

import (
	"context"
	"time"
)

// ObjectInfo describes one stored object as reported by a prefix listing.
type ObjectInfo struct {
	Key        string
	URL        string
	Size       int64
	UploadedAt time.Time
}

// UploadTarget is a pre-authorized destination for a direct client upload.
type UploadTarget struct {
	UploadURL   string
	Key         string
	ContentType string
	ExpiresAt   time.Time
}

// BlobStore abstracts a prefix-addressed object store. The contract is
// deliberately narrow: enumerate by prefix, fetch a listed object, and
// whole-object overwrite by key. There are no partial writes and no
// native queries; callers compute everything else in memory.
type BlobStore interface {
	// List enumerates objects whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Fetch retrieves the full body of a previously listed object.
	Fetch(ctx context.Context, obj ObjectInfo) ([]byte, error)
	// Put overwrites the object at key with data. A failed put leaves the
	// previous object version (or absence) intact.
	Put(ctx context.Context, key string, data []byte, contentType string) (ObjectInfo, error)
	// CreateUploadURL issues a URL a client can PUT bytes to directly.
	CreateUploadURL(ctx context.Context, key, contentType string) (UploadTarget, error)
}
