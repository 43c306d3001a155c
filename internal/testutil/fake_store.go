package testutil

import (
	"context"
	"sync"

	"github.com/alex/dev-tools-portal/internal/storage"
)

// FakeObjectStore stands in for the S3 client in tests, recording every
// object it was asked to write.
type FakeObjectStore struct {
	cdnBase string

	mu       sync.Mutex
	Saved    []storage.SaveInput
	Keys     []string
	FailWith error
}

func NewFakeObjectStore(cdnBase string) *FakeObjectStore {
	return &FakeObjectStore{cdnBase: cdnBase}
}

func (f *FakeObjectStore) Save(ctx context.Context, input storage.SaveInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailWith != nil {
		return "", f.FailWith
	}

	key := input.Key
	if key == "" {
		key = storage.ObjectKey(input.ContentType)
	}
	f.Saved = append(f.Saved, input)
	f.Keys = append(f.Keys, key)

	return storage.PublicURL(f.cdnBase, key), nil
}
