package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaFileType_String(t *testing.T) {
	assert.Equal(t, "image", MediaFileTypeImage.String())
	assert.Equal(t, "video", MediaFileTypeVideo.String())
}

func TestMediaFileType_IsValid(t *testing.T) {
	assert.True(t, MediaFileTypeImage.IsValid())
	assert.True(t, MediaFileTypeVideo.IsValid())

	invalidType := MediaFileType("invalid")
	assert.False(t, invalidType.IsValid())
}

func TestMediaTypeOf(t *testing.T) {
	tests := []struct {
		name string
		want MediaFileType
	}{
		{"clip.MP4", MediaFileTypeVideo},
		{"movie.webm", MediaFileTypeVideo},
		{"photo.png", MediaFileTypeImage},
		{"scan.JPG", MediaFileTypeImage},
		{"report.pdf", MediaFileTypeImage},
		{"noext", MediaFileTypeImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MediaTypeOf(tt.name))
		})
	}
}

func TestEnums_IsValid(t *testing.T) {
	assert.True(t, MessageKindText.IsValid())
	assert.True(t, MessageKindMedia.IsValid())
	assert.False(t, MessageKind("sticker").IsValid())

	assert.True(t, DeviceTypeIOS.IsValid())
	assert.True(t, DeviceTypeAndroid.IsValid())
	assert.True(t, DeviceTypeWeb.IsValid())
	assert.False(t, DeviceType("tv").IsValid())
}

func TestWithBucketURL(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
		path   string
		want   string
	}{
		{"joins with single slash", "https://cdn.example.com/", "/chat/a.png", "https://cdn.example.com/chat/a.png"},
		{"no slashes", "https://cdn.example.com", "chat/a.png", "https://cdn.example.com/chat/a.png"},
		{"empty path", "https://cdn.example.com", "", ""},
		{"no bucket", "", "chat/a.png", "chat/a.png"},
		{"already absolute", "https://cdn.example.com", "https://other/a.png", "https://other/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithBucketURL(tt.bucket, tt.path))
		})
	}
}
