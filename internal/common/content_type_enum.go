package common

import (
	"mime"
	"path/filepath"
	"strings"
)

// MediaFileType is the kind of a chat attachment or album entry
type MediaFileType string

const (
	MediaFileTypeImage MediaFileType = "image"
	MediaFileTypeVideo MediaFileType = "video"
)

// String returns the string representation
func (mft MediaFileType) String() string {
	return string(mft)
}

// IsValid checks if the media file type is valid
func (mft MediaFileType) IsValid() bool {
	return mft == MediaFileTypeImage || mft == MediaFileTypeVideo
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".m4v": true, ".avi": true, ".mkv": true, ".webm": true, ".3gp": true,
}

// MediaTypeOf infers the media type of an attachment from its file name. Anything that is not
// recognisably video counts as an image.
func MediaTypeOf(name string) MediaFileType {
	ext := strings.ToLower(filepath.Ext(name))
	if videoExtensions[ext] || strings.HasPrefix(mime.TypeByExtension(ext), "video/") {
		return MediaFileTypeVideo
	}
	return MediaFileTypeImage
}

type MessageKind string

const (
	MessageKindText  MessageKind = "text"
	MessageKindMedia MessageKind = "media"
)

func (k MessageKind) IsValid() bool {
	return k == MessageKindText || k == MessageKindMedia
}

type DeviceType string

const (
	DeviceTypeWeb     DeviceType = "web"
	DeviceTypeAndroid DeviceType = "android"
	DeviceTypeIOS     DeviceType = "ios"
)

func (d DeviceType) IsValid() bool {
	return d == DeviceTypeWeb || d == DeviceTypeAndroid || d == DeviceTypeIOS
}

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// WithBucketURL prefixes a stored object path with the public bucket URL.
// Absolute URLs and empty paths are returned unchanged.
func WithBucketURL(bucketURL, path string) string {
	if path == "" || bucketURL == "" {
		return path
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(bucketURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
