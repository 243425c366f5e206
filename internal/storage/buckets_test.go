package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBucketConfig(t *testing.T) {
	cfg, ok := GetBucketConfig(BucketPartituras)
	assert.True(t, ok)
	assert.False(t, cfg.Public)

	cfg, ok = GetBucketConfig(BucketImages)
	assert.True(t, ok)
	assert.True(t, cfg.Public)

	_, ok = GetBucketConfig("desconocido")
	assert.False(t, ok)
}

func TestIsAllowedMIMEType(t *testing.T) {
	tests := []struct {
		name     string
		bucket   string
		mimeType string
		want     bool
	}{
		{"pdf score", BucketPartituras, "application/pdf", true},
		{"audio in scores bucket", BucketPartituras, "audio/mpeg", false},
		{"audio recording", BucketGrabaciones, "audio/mpeg", true},
		{"image", BucketImages, "image/png", true},
		{"unknown bucket", "desconocido", "application/pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowedMIMEType(tt.bucket, tt.mimeType))
		})
	}
}

func TestValidateUpload(t *testing.T) {
	const mb = 1024 * 1024

	assert.NoError(t, ValidateUpload(BucketPartituras, "application/pdf", 10*mb))
	assert.Error(t, ValidateUpload(BucketPartituras, "application/pdf", 51*mb))
	assert.Error(t, ValidateUpload(BucketPartituras, "video/mp4", mb))
	assert.Error(t, ValidateUpload("desconocido", "application/pdf", mb))
}
