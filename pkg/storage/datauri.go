package storage

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeDataURI decodes a data:image/...;base64 payload into raw bytes
// plus the file extension and MIME type implied by the URI.
func DecodeDataURI(uri string) (data []byte, ext string, contentType string, err error) {
	if !strings.HasPrefix(uri, "data:image/") {
		return nil, "", "", fmt.Errorf("not an image data URI")
	}

	header, encoded, found := strings.Cut(uri, ";base64,")
	if !found {
		return nil, "", "", fmt.Errorf("data URI is not base64 encoded")
	}

	contentType = strings.TrimPrefix(header, "data:")
	ext = contentType[strings.LastIndex(contentType, "/")+1:]
	if ext == "" {
		return nil, "", "", fmt.Errorf("data URI has no image format")
	}

	data, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", "", fmt.Errorf("invalid base64 image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", "", fmt.Errorf("empty image payload")
	}

	return data, ext, contentType, nil
}

// IsDataURI reports whether the image field carries an inline payload
// rather than an already stored path.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}
