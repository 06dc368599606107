// Package repofake provides an in-memory credentials.Repo for testing.
package repofake

import (
	"sync"

	"github.com/Git-Commit-Therapy/sancommitto-client/credentials"
)

// FakeRepo is an in-memory implementation of credentials.Repo. It can be
// primed with values and instructed to fail, which makes persistence
// error paths testable.
type FakeRepo struct {
	mu     sync.Mutex
	values map[string]string

	// FailWith, when non-nil, is returned by every operation.
	FailWith error
}

// NewFakeRepo creates an empty fake repo.
func NewFakeRepo() *FakeRepo {
	return &FakeRepo{values: make(map[string]string)}
}

func (r *FakeRepo) Get(key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return "", r.FailWith
	}
	v, ok := r.values[key]
	if !ok {
		return "", credentials.ErrNotFound
	}
	return v, nil
}

func (r *FakeRepo) Set(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.values[key] = value
	return nil
}

func (r *FakeRepo) Remove(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	delete(r.values, key)
	return nil
}

// Stored returns a copy of the current contents.
func (r *FakeRepo) Stored() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
