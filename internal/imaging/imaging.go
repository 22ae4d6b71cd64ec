// Package imaging provides the base64/data-URL plumbing shared by the
// upload, camera and feedback paths.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"regexp"

	_ "golang.org/x/image/webp"
)

// Matches a data-URL prefix like "data:image/png;base64,".
var dataURLPattern = regexp.MustCompile(`^data:[^;,]+;base64,`)

// StripDataURL returns the raw base64 payload of s, removing a data-URL
// prefix if one is present. Backends expect bare base64.
func StripDataURL(s string) string {
	return dataURLPattern.ReplaceAllString(s, "")
}

// DataURL builds a browser-displayable data URL from raw image bytes.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64Image decodes a base64 image payload, tolerating an
// optional data-URL prefix.
func DecodeBase64Image(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(StripDataURL(s))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image payload: %w", err)
	}
	return data, nil
}

// Sniff returns the detected MIME type of data.
func Sniff(data []byte) string {
	return http.DetectContentType(data)
}

// Validate checks that data parses as an image in one of the supported
// formats (png, jpeg, gif, webp) and returns the format name.
func Validate(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unsupported or corrupt image: %w", err)
	}
	return format, nil
}
