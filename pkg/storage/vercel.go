package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// VercelStore talks to a Vercel-Blob-shaped HTTP storage service. Writes
// are a two-step protocol: request a short-lived upload URL, then PUT the
// payload to it. Reads resolve through a prefix listing because the
// service exposes object URLs only via list.
type VercelStore struct {
	token        string
	apiBaseURL   string
	storeBaseURL string
	client       *http.Client
}

// NewVercelStore constructs the client. The read/write token is required;
// its absence must surface as a configuration error, not a silent noop.
func NewVercelStore(token, apiBaseURL, storeBaseURL string) (*VercelStore, error) {
	if token == "" {
		return nil, fmt.Errorf("blob read/write token missing")
	}
	if apiBaseURL == "" {
		apiBaseURL = "https://api.vercel.com/v2/blob"
	}
	if storeBaseURL == "" {
		storeBaseURL = "https://blob.vercel-storage.com"
	}
	return &VercelStore{
		token:        token,
		apiBaseURL:   strings.TrimRight(apiBaseURL, "/"),
		storeBaseURL: strings.TrimRight(storeBaseURL, "/"),
		client:       &http.Client{Timeout: defaultHTTPTimeout},
	}, nil
}

type listResponse struct {
	Blobs []struct {
		URL        string    `json:"url"`
		Pathname   string    `json:"pathname"`
		Size       int64     `json:"size"`
		UploadedAt time.Time `json:"uploadedAt"`
	} `json:"blobs"`
}

// List enumerates objects under the prefix.
func (s *VercelStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	endpoint := fmt.Sprintf("%s/?prefix=%s", s.storeBaseURL, url.QueryEscape(prefix))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blob list failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read list response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blob list failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed listResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	items := make([]ObjectInfo, 0, len(parsed.Blobs))
	for _, b := range parsed.Blobs {
		items = append(items, ObjectInfo{
			Key:        b.Pathname,
			URL:        b.URL,
			Size:       b.Size,
			UploadedAt: b.UploadedAt,
		})
	}
	return items, nil
}

// Fetch downloads the full object body using the RW token.
func (s *VercelStore) Fetch(ctx context.Context, obj ObjectInfo) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, obj.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blob fetch failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read fetch response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blob fetch failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

type uploadURLResponse struct {
	URL string `json:"url"`
}

// CreateUploadURL requests a pre-signed upload destination for key.
func (s *VercelStore) CreateUploadURL(ctx context.Context, key, contentType string) (UploadTarget, error) {
	endpoint := s.apiBaseURL + "/generate-upload-url"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return UploadTarget{}, fmt.Errorf("build upload-url request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return UploadTarget{}, fmt.Errorf("blob generate-upload-url failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return UploadTarget{}, fmt.Errorf("read upload-url response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return UploadTarget{}, fmt.Errorf("blob generate-upload-url failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed uploadURLResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return UploadTarget{}, fmt.Errorf("decode upload-url response: %w", err)
	}
	return UploadTarget{UploadURL: parsed.URL, Key: key, ContentType: contentType}, nil
}

type putResponse struct {
	URL string `json:"url"`
}

// Put writes data to key as a whole-object overwrite.
func (s *VercelStore) Put(ctx context.Context, key string, data []byte, contentType string) (ObjectInfo, error) {
	target, err := s.CreateUploadURL(ctx, key, contentType)
	if err != nil {
		return ObjectInfo{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target.UploadURL, bytes.NewReader(data))
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-vercel-filename", key)

	resp, err := s.client.Do(req)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("blob upload failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ObjectInfo{}, fmt.Errorf("blob upload failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed putResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ObjectInfo{}, fmt.Errorf("decode upload response: %w", err)
	}
	return ObjectInfo{Key: key, URL: parsed.URL, Size: int64(len(data)), UploadedAt: time.Now().UTC()}, nil
}
