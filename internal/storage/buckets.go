package storage

import "fmt"

// Storage bucket names.
const (
	BucketPartituras  = "partituras"
	BucketGrabaciones = "grabaciones"
	BucketImages      = "images"
	BucketDocuments   = "documents"
)

// BucketConfig is the per-bucket upload policy.
type BucketConfig struct {
	Public           bool
	AllowedMIMETypes []string
	MaxSizeMB        int64
}

var bucketConfigs = map[string]BucketConfig{
	BucketPartituras: {
		Public: false,
		AllowedMIMETypes: []string{
			"application/pdf",
			"application/vnd.recordare.musicxml",
			"application/vnd.recordare.musicxml+xml",
			"text/xml",
		},
		MaxSizeMB: 50,
	},
	BucketGrabaciones: {
		Public: false,
		AllowedMIMETypes: []string{
			"audio/mpeg",
			"audio/mp3",
			"audio/wav",
			"audio/x-wav",
			"audio/m4a",
			"audio/mp4",
		},
		MaxSizeMB: 500,
	},
	BucketImages: {
		Public: true,
		AllowedMIMETypes: []string{
			"image/jpeg",
			"image/png",
			"image/gif",
			"image/webp",
		},
		MaxSizeMB: 10,
	},
	BucketDocuments: {
		Public: false,
		AllowedMIMETypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"text/plain",
		},
		MaxSizeMB: 20,
	},
}

// GetBucketConfig returns the policy for a bucket.
func GetBucketConfig(bucket string) (BucketConfig, bool) {
	cfg, ok := bucketConfigs[bucket]
	return cfg, ok
}

// IsAllowedMIMEType reports whether a MIME type may be uploaded to a bucket.
func IsAllowedMIMEType(bucket, mimeType string) bool {
	cfg, ok := bucketConfigs[bucket]
	if !ok {
		return false
	}
	for _, allowed := range cfg.AllowedMIMETypes {
		if allowed == mimeType {
			return true
		}
	}
	return false
}

// ValidateUpload checks the bucket policy for an upload.
func ValidateUpload(bucket, mimeType string, size int64) error {
	cfg, ok := bucketConfigs[bucket]
	if !ok {
		return fmt.Errorf("unknown bucket %q", bucket)
	}
	if !IsAllowedMIMEType(bucket, mimeType) {
		return fmt.Errorf("mime type %q not allowed in bucket %q", mimeType, bucket)
	}
	if size > cfg.MaxSizeMB*1024*1024 {
		return fmt.Errorf("file exceeds %dMB limit for bucket %q", cfg.MaxSizeMB, bucket)
	}
	return nil
}
