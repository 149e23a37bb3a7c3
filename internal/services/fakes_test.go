package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
	"github.com/franciscosanchezn/pizzaone-api/internal/repository"
)

// fakeStore is an in-memory repository.Store that records calls
type fakeStore struct {
	mu       sync.Mutex
	lines    map[int64]models.OrderLine
	nextID   int64
	calls    int
	patches  []models.OrderPatch
	invoices map[int64]string

	createErr error
	updateErr error
	deleteErr error
	clearErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{lines: map[int64]models.OrderLine{}, invoices: map[int64]string{}}
}

func (s *fakeStore) Create(_ context.Context, line models.OrderLine) (models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.createErr != nil {
		return models.OrderLine{}, s.createErr
	}
	s.nextID++
	line.ID = s.nextID
	s.lines[line.ID] = line
	return line, nil
}

func (s *fakeStore) List(context.Context) ([]models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	out := make([]models.OrderLine, 0, len(s.lines))
	for _, line := range s.lines {
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	line, ok := s.lines[id]
	if !ok {
		return models.OrderLine{}, repository.ErrNotFound
	}
	return line, nil
}

func (s *fakeStore) Update(_ context.Context, id int64, patch models.OrderPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.patches = append(s.patches, patch)
	if s.updateErr != nil {
		return s.updateErr
	}
	if patch.IsEmpty() {
		return repository.ErrNothingToUpdate
	}
	if _, ok := s.lines[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.lines, id)
	return nil
}

func (s *fakeStore) ClearAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.lines = map[int64]models.OrderLine{}
	return nil
}

func (s *fakeStore) MarkInvoiceIssued(_ context.Context, id int64, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if _, ok := s.lines[id]; !ok {
		return repository.ErrNotFound
	}
	s.invoices[id] = url
	return nil
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *fakeStore) invoice(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoices[id]
}

// fakeArtifacts keeps stored files in memory
type fakeArtifacts struct {
	files  map[string][]byte
	putErr error
}

func newFakeArtifacts() *fakeArtifacts {
	return &fakeArtifacts{files: map[string][]byte{}}
}

func (a *fakeArtifacts) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	if a.putErr != nil {
		return "", a.putErr
	}
	a.files[name] = data
	return "mem://" + name, nil
}

type fakeRenderer struct {
	err error
}

func (r fakeRenderer) RenderPDF(_ context.Context, html []byte) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]byte("%PDF-1.4\n"), html[:10]...), nil
}

type fakeMemory struct {
	last models.Customer
	err  error
}

func (m *fakeMemory) RememberCustomer(c models.Customer) error {
	m.last = c
	return m.err
}

var errOffline = errors.New("database offline")
