package storage

import (
	"context"
	"path"
	"slices"
	"sync"

	"Foodgram-Backend/domain"
)

// Memory is an AwsS3 kept in process memory. It backs tests and local runs
// without a bucket.
type Memory struct {
	mu      sync.Mutex
	Base    string
	Objects map[string]*File
}

func NewMemory(base string) *Memory {
	return &Memory{Base: base, Objects: make(map[string]*File)}
}

func (m *Memory) UploadFile(_ context.Context, filename string, file *File, folder string, allowed ...string) (string, error) {
	if file == nil || (len(allowed) > 0 && !slices.Contains(allowed, file.Ext)) {
		return "", domain.ErrInvalidImage
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := path.Join(folder, filename+file.Ext)
	m.Objects[key] = file
	return key, nil
}

func (m *Memory) DeleteFile(_ context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, objectKey)
	return nil
}

func (m *Memory) Has(objectKey string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[objectKey]
	return ok
}

func (m *Memory) GetPublicLinkKey(objectKey string) string {
	return PublicLink(m.Base, objectKey)
}
