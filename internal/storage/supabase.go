package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Store is the narrow object storage interface the application consumes.
type Store interface {
	Upload(ctx context.Context, bucket, path string, content []byte, contentType string) error
	Delete(ctx context.Context, bucket, path string) error
	SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error)
	List(ctx context.Context, bucket, folder string) ([]ObjectInfo, error)
	PublicURL(bucket, path string) string
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Name string `json:"name"`
}

// Client talks to the Supabase Storage HTTP API with a service role key.
type Client struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

var _ Store = (*Client)(nil)

// NewClient creates a storage client.
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores content at (bucket, path) after checking the bucket policy.
func (c *Client) Upload(ctx context.Context, bucket, path string, content []byte, contentType string) error {
	if err := ValidateUpload(bucket, contentType, int64(len(content))); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("storage upload returned status %d", resp.StatusCode)
	}
	return nil
}

// Delete removes the object at (bucket, path).
func (c *Client) Delete(ctx context.Context, bucket, path string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("storage delete returned status %d", resp.StatusCode)
	}
	return nil
}

// SignedURL returns a time-limited download URL for a private object.
func (c *Client) SignedURL(ctx context.Context, bucket, path string, expiresIn time.Duration) (string, error) {
	payload, err := json.Marshal(map[string]int64{"expiresIn": int64(expiresIn.Seconds())})
	if err != nil {
		return "", fmt.Errorf("marshal sign request: %w", err)
	}

	url := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", c.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build sign request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage sign returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read sign response: %w", err)
	}
	var signed struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.Unmarshal(body, &signed); err != nil {
		return "", fmt.Errorf("parse sign response: %w", err)
	}
	return c.baseURL + "/storage/v1" + signed.SignedURL, nil
}

// List returns objects under a folder prefix in a bucket.
func (c *Client) List(ctx context.Context, bucket, folder string) ([]ObjectInfo, error) {
	payload, err := json.Marshal(map[string]string{"prefix": folder})
	if err != nil {
		return nil, fmt.Errorf("marshal list request: %w", err)
	}

	url := fmt.Sprintf("%s/storage/v1/object/list/%s", c.baseURL, bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage list returned status %d", resp.StatusCode)
	}

	var objects []ObjectInfo
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, fmt.Errorf("parse list response: %w", err)
	}
	return objects, nil
}

// PublicURL returns the public URL for an object in a public bucket.
func (c *Client) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, path)
}
