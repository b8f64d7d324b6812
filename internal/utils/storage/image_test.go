package storage

import (
	"context"
	"testing"

	"Foodgram-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const onePixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestDecodeBase64Image(t *testing.T) {
	file, err := DecodeBase64Image(onePixelPNG)
	require.NoError(t, err)
	assert.Equal(t, ".png", file.Ext)
	assert.Equal(t, "image/png", file.ContentType)
	assert.NotEmpty(t, file.Data)
}

func TestDecodeBase64ImageRejects(t *testing.T) {
	cases := map[string]string{
		"plain string":   "not an image",
		"non image data": "data:text/plain;base64,aGVsbG8=",
		"missing marker": "data:image/png,iVBORw0KGgo=",
		"bad base64":     "data:image/png;base64,%%%",
		"bad extension":  "data:image/tiff;base64,iVBORw0KGgo=",
		"not image body": "data:image/png;base64,aGVsbG8gd29ybGQ=",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeBase64Image(in)
			assert.ErrorIs(t, err, domain.ErrInvalidImage)
		})
	}
}

func TestMemoryLinks(t *testing.T) {
	m := NewMemory("http://media.local")
	file, err := DecodeBase64Image(onePixelPNG)
	require.NoError(t, err)

	key, err := m.UploadFile(context.Background(), "abc", file, "recipes", AllowImage...)
	require.NoError(t, err)
	assert.Equal(t, "recipes/abc.png", key)

	link := m.GetPublicLinkKey(key)
	assert.Equal(t, "http://media.local/recipes/abc.png", link)
	assert.Empty(t, m.GetPublicLinkKey(""))

	require.NoError(t, m.DeleteFile(context.Background(), key))
	assert.False(t, m.Has(key))
}
