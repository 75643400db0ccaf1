package application

import (
	"context"
	"sync"

	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/room/domain"
)

// RoomAPI is the slice of the room client the store depends on.
type RoomAPI interface {
	List(ctx context.Context) ([]domain.Salle, error)
	Get(ctx context.Context, id int64) (domain.Salle, error)
	Create(ctx context.Context, dto domain.CreateSalleDTO) (domain.Salle, error)
	Update(ctx context.Context, id int64, dto domain.UpdateSalleDTO) (domain.Salle, error)
	Delete(ctx context.Context, id int64) error
}

// Store is the client-side cache of salle entities. Every operation
// follows the same three-phase contract: loading set and error cleared on
// entry, then either the result applied or the error message stored.
// The list mirrors the server's return order; create appends, delete
// filters by id.
type Store struct {
	client RoomAPI

	mu       sync.Mutex
	salles   []domain.Salle
	selected *domain.Salle
	loading  bool
	err      string
}

func NewStore(client RoomAPI) *Store {
	return &Store{client: client}
}

// FetchAll replaces the entire cached list with the server's collection.
func (s *Store) FetchAll(ctx context.Context) error {
	s.begin()
	salles, err := s.client.List(ctx)
	return s.finish(err, func() {
		s.salles = salles
	})
}

// FetchByID loads one salle into the selection slot.
func (s *Store) FetchByID(ctx context.Context, id int64) error {
	s.begin()
	salle, err := s.client.Get(ctx, id)
	return s.finish(err, func() {
		s.selected = &salle
	})
}

// Create submits a new salle and appends the server-returned entity.
func (s *Store) Create(ctx context.Context, dto domain.CreateSalleDTO) error {
	s.begin()
	created, err := s.client.Create(ctx, dto)
	return s.finish(err, func() {
		s.salles = append(s.salles, created)
	})
}

// Update replaces the entity in place by id; a matching selection is
// refreshed too.
func (s *Store) Update(ctx context.Context, id int64, dto domain.UpdateSalleDTO) error {
	s.begin()
	updated, err := s.client.Update(ctx, id, dto)
	return s.finish(err, func() {
		for i := range s.salles {
			if s.salles[i].ID == updated.ID {
				s.salles[i] = updated
				break
			}
		}
		if s.selected != nil && s.selected.ID == updated.ID {
			selected := updated
			s.selected = &selected
		}
	})
}

// Delete removes the entity by id; a matching selection is cleared.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.begin()
	err := s.client.Delete(ctx, id)
	return s.finish(err, func() {
		kept := s.salles[:0]
		for _, salle := range s.salles {
			if salle.ID != id {
				kept = append(kept, salle)
			}
		}
		s.salles = kept
		if s.selected != nil && s.selected.ID == id {
			s.selected = nil
		}
	})
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *Store) finish(err error, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}
	apply()
	return nil
}

// Select sets the entity an edit form is working on. Pass nil to clear.
func (s *Store) Select(salle *domain.Salle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if salle == nil {
		s.selected = nil
		return
	}
	selected := *salle
	s.selected = &selected
}

// Selected returns the entity currently being edited, or nil.
func (s *Store) Selected() *domain.Salle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	selected := *s.selected
	return &selected
}

// Salles returns a copy of the cached list in server order.
func (s *Store) Salles() []domain.Salle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Salle, len(s.salles))
	copy(out, s.salles)
	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Error returns the display error, "" when none.
func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ClearError resets the display error without touching the cache.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}
