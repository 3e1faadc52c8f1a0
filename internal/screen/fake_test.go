package screen

import (
	"context"
	"errors"
	"sync"

	"inkwell/internal/apiclient"
	"inkwell/internal/models"
)

var errBoom = errors.New("boom")

// fakeCollection is an in-memory Collection with per-operation error
// injection and call counting.
type fakeCollection[T any, F any] struct {
	mu    sync.Mutex
	items []T
	idOf  func(T) uint
	build func(uint, F) T

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	// When set, Create and Update signal entered and then wait on release.
	entered chan struct{}
	release chan struct{}

	calls   map[string]int
	created []F
	updated map[uint]F
	nextID  uint
}

func (f *fakeCollection[T, F]) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[op]++
}

func (f *fakeCollection[T, F]) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeCollection[T, F]) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
}

func (f *fakeCollection[T, F]) List(_ context.Context) (*apiclient.Response[[]T], error) {
	f.record("list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]T{}, f.items...)
	return &apiclient.Response[[]T]{Data: out}, nil
}

func (f *fakeCollection[T, F]) Get(_ context.Context, id uint) (*apiclient.Response[T], error) {
	f.record("get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if f.idOf(item) == id {
			return &apiclient.Response[T]{Data: item}, nil
		}
	}
	return nil, &apiclient.HTTPError{Method: "GET", StatusCode: 404}
}

func (f *fakeCollection[T, F]) Create(_ context.Context, fields F) (*apiclient.Response[T], error) {
	f.record("create")
	f.wait()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	item := f.build(f.nextID, fields)
	f.items = append(f.items, item)
	f.created = append(f.created, fields)
	return &apiclient.Response[T]{Data: item}, nil
}

func (f *fakeCollection[T, F]) Update(_ context.Context, id uint, fields F) (*apiclient.Response[T], error) {
	f.record("update")
	f.wait()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updated == nil {
		f.updated = map[uint]F{}
	}
	f.updated[id] = fields
	item := f.build(id, fields)
	for i := range f.items {
		if f.idOf(f.items[i]) == id {
			f.items[i] = item
		}
	}
	return &apiclient.Response[T]{Data: item}, nil
}

func (f *fakeCollection[T, F]) Delete(_ context.Context, id uint) (*apiclient.Response[struct{}], error) {
	f.record("delete")
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, item := range f.items {
		if f.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return &apiclient.Response[struct{}]{}, nil
}

func newPosts(items ...models.Post) *fakeCollection[models.Post, models.PostFields] {
	var last uint
	for _, p := range items {
		if p.ID > last {
			last = p.ID
		}
	}
	return &fakeCollection[models.Post, models.PostFields]{
		items:  items,
		nextID: last,
		idOf:   func(p models.Post) uint { return p.ID },
		build: func(id uint, f models.PostFields) models.Post {
			p := models.Post{ID: id}
			p.Apply(f)
			return p
		},
	}
}

func newAuthors(items ...models.Author) *fakeCollection[models.Author, models.AuthorFields] {
	var last uint
	for _, a := range items {
		if a.ID > last {
			last = a.ID
		}
	}
	return &fakeCollection[models.Author, models.AuthorFields]{
		items:  items,
		nextID: last,
		idOf:   func(a models.Author) uint { return a.ID },
		build: func(id uint, f models.AuthorFields) models.Author {
			a := models.Author{ID: id}
			a.Apply(f)
			return a
		},
	}
}

func yes(string) bool { return true }
func no(string) bool  { return false }

var (
	ada   = models.Author{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PhoneNumber: "555-0100"}
	grace = models.Author{ID: 2, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", PhoneNumber: "555-0101"}
)
