package tokenrepofake

import (
	"sync"

	"github.com/jrsteele09/panel-console/tokens"
)

var _ tokens.Repo = (*FakeTokenRepo)(nil)

// FakeTokenRepo is an in-memory tokens.Repo that also counts writes, which
// tests use to assert that no storage access happened.
type FakeTokenRepo struct {
	values map[string]string
	lock   sync.RWMutex

	Gets    int
	Sets    int
	Deletes int
}

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{
		values: make(map[string]string),
	}
}

func (tr *FakeTokenRepo) Get(key string) (string, error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	tr.Gets++
	value, ok := tr.values[key]
	if !ok {
		return "", tokens.ErrNotFound
	}
	return value, nil
}

func (tr *FakeTokenRepo) Set(key, value string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	tr.Sets++
	tr.values[key] = value
	return nil
}

func (tr *FakeTokenRepo) Delete(key string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	tr.Deletes++
	delete(tr.values, key)
	return nil
}

// Has reports whether key currently holds a value.
func (tr *FakeTokenRepo) Has(key string) bool {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	_, ok := tr.values[key]
	return ok
}
