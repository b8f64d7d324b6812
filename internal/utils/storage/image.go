package storage

import (
	"encoding/base64"
	"net/http"
	"slices"
	"strings"

	"Foodgram-Backend/domain"
)

var AllowImage = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// File is an in-memory upload decoded from a request body.
type File struct {
	Data        []byte
	Ext         string
	ContentType string
}

// DecodeBase64Image parses a "data:image/<ext>;base64,<payload>" URI.
func DecodeBase64Image(data string) (*File, error) {
	if !strings.HasPrefix(data, "data:image/") {
		return nil, domain.ErrInvalidImage
	}

	header, payload, ok := strings.Cut(data, ";base64,")
	if !ok || payload == "" {
		return nil, domain.ErrInvalidImage
	}

	ext := "." + strings.ToLower(strings.TrimPrefix(header, "data:image/"))
	if !slices.Contains(AllowImage, ext) {
		return nil, domain.ErrInvalidImage
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.ErrInvalidImage
	}

	contentType := http.DetectContentType(raw)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domain.ErrInvalidImage
	}

	return &File{Data: raw, Ext: ext, ContentType: contentType}, nil
}
