package storage

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore persists objects on disk under a base directory. It
// implements the same BlobStore contract as the hosted driver so the rest
// of the system cannot tell the two apart; issued upload and object URLs
// point at the local blob endpoint and carry HMAC-signed tokens.
type FilesystemStore struct {
	baseDir string
	baseURL string
	signer  *SignedURLSigner
}

// NewFilesystemStore ensures the base directory exists and returns a handle.
func NewFilesystemStore(baseDir, publicBaseURL string, signer *SignedURLSigner) (*FilesystemStore, error) {
	if baseDir == "" {
		baseDir = "./blobdata"
	}
	if signer == nil {
		return nil, fmt.Errorf("signer required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &FilesystemStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		signer:  signer,
	}, nil
}

// List enumerates stored objects whose key starts with prefix.
func (s *FilesystemStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	items := make([]ObjectInfo, 0)
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objectURL, signErr := s.objectURL(key)
		if signErr != nil {
			return signErr
		}
		items = append(items, ObjectInfo{
			Key:        key,
			URL:        objectURL,
			Size:       info.Size(),
			UploadedAt: info.ModTime().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	return items, nil
}

// Fetch reads the full object body from disk.
func (s *FilesystemStore) Fetch(ctx context.Context, obj ObjectInfo) ([]byte, error) {
	path, err := s.resolve(obj.Key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", obj.Key, err)
	}
	return data, nil
}

// Put writes data to key, overwriting any previous object.
func (s *FilesystemStore) Put(ctx context.Context, key string, data []byte, contentType string) (ObjectInfo, error) {
	path, err := s.resolve(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ObjectInfo{}, fmt.Errorf("prepare blob directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ObjectInfo{}, fmt.Errorf("write blob %s: %w", key, err)
	}
	objectURL, err := s.objectURL(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat blob %s: %w", key, err)
	}
	return ObjectInfo{Key: key, URL: objectURL, Size: info.Size(), UploadedAt: info.ModTime().UTC()}, nil
}

// CreateUploadURL issues a signed local upload URL for key.
func (s *FilesystemStore) CreateUploadURL(ctx context.Context, key, contentType string) (UploadTarget, error) {
	token, expiresAt, err := s.signer.Generate(OpUpload, key)
	if err != nil {
		return UploadTarget{}, fmt.Errorf("sign upload token: %w", err)
	}
	return UploadTarget{
		UploadURL:   fmt.Sprintf("%s/blob/object?token=%s", s.baseURL, url.QueryEscape(token)),
		Key:         key,
		ContentType: contentType,
		ExpiresAt:   expiresAt,
	}, nil
}

// ResolveToken validates a signed token and returns the operation and key
// it authorizes. Used by the local blob endpoint.
func (s *FilesystemStore) ResolveToken(token string) (op, key string, err error) {
	op, key, _, err = s.signer.Parse(token)
	return op, key, err
}

func (s *FilesystemStore) objectURL(key string) (string, error) {
	token, _, err := s.signer.Generate(OpDownload, key)
	if err != nil {
		return "", fmt.Errorf("sign download token: %w", err)
	}
	return fmt.Sprintf("%s/blob/object?token=%s", s.baseURL, url.QueryEscape(token)), nil
}

func (s *FilesystemStore) resolve(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}
