package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/room/domain"
)

// fakeRoomAPI acts as a tiny room service with server-assigned ids.
type fakeRoomAPI struct {
	mu     sync.Mutex
	salles []domain.Salle
	nextID int64

	failWith    error
	listCalls   int
	updateCalls []domain.UpdateSalleDTO
}

func newFakeRoomAPI(salles ...domain.Salle) *fakeRoomAPI {
	api := &fakeRoomAPI{salles: salles, nextID: 100}
	return api
}

func (f *fakeRoomAPI) List(context.Context) ([]domain.Salle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return append([]domain.Salle(nil), f.salles...), nil
}

func (f *fakeRoomAPI) Get(_ context.Context, id int64) (domain.Salle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return domain.Salle{}, f.failWith
	}
	for _, salle := range f.salles {
		if salle.ID == id {
			return salle, nil
		}
	}
	return domain.Salle{}, errors.New("Failed to fetch salle")
}

func (f *fakeRoomAPI) Create(_ context.Context, dto domain.CreateSalleDTO) (domain.Salle, error) {
	if err := dto.Validate(); err != nil {
		return domain.Salle{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return domain.Salle{}, f.failWith
	}
	f.nextID++
	created := domain.Salle{
		ID: f.nextID, Nom: dto.Nom, Capacite: dto.Capacite,
		Type: dto.Type, Disponible: dto.Disponible,
	}
	f.salles = append(f.salles, created)
	return created, nil
}

func (f *fakeRoomAPI) Update(_ context.Context, id int64, dto domain.UpdateSalleDTO) (domain.Salle, error) {
	if err := dto.Validate(); err != nil {
		return domain.Salle{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, dto)
	if f.failWith != nil {
		return domain.Salle{}, f.failWith
	}
	updated := domain.Salle{
		ID: id, Nom: dto.Nom, Capacite: dto.Capacite,
		Type: dto.Type, Disponible: dto.Disponible,
	}
	for i := range f.salles {
		if f.salles[i].ID == id {
			f.salles[i] = updated
		}
	}
	return updated, nil
}

func (f *fakeRoomAPI) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	kept := f.salles[:0]
	for _, salle := range f.salles {
		if salle.ID != id {
			kept = append(kept, salle)
		}
	}
	f.salles = kept
	return nil
}

func salle(id int64, nom string) domain.Salle {
	return domain.Salle{ID: id, Nom: nom, Capacite: 30, Type: "Cours", Disponible: true}
}

func TestStore_FetchAllMirrorsServerList(t *testing.T) {
	api := newFakeRoomAPI(salle(2, "B"), salle(1, "A"), salle(3, "C"))
	store := NewStore(api)

	require.NoError(t, store.FetchAll(context.Background()))

	got := store.Salles()
	require.Len(t, got, 3)
	assert.Equal(t, int64(2), got[0].ID, "server order preserved")
	assert.Equal(t, int64(1), got[1].ID)
	assert.False(t, store.Loading())
	assert.Empty(t, store.Error())
}

func TestStore_CreateAppendsServerEntity(t *testing.T) {
	api := newFakeRoomAPI(salle(1, "A"))
	store := NewStore(api)
	require.NoError(t, store.FetchAll(context.Background()))

	require.NoError(t, store.Create(context.Background(), domain.CreateSalleDTO{
		Nom: "Nouvelle", Capacite: 25, Type: "TD", Disponible: true,
	}))

	got := store.Salles()
	require.Len(t, got, 2)
	assert.Equal(t, int64(101), got[1].ID, "id comes from the server")
	assert.Equal(t, "Nouvelle", got[1].Nom)
}

func TestStore_CreateInvalidNeverCallsServer(t *testing.T) {
	api := newFakeRoomAPI()
	store := NewStore(api)

	err := store.Create(context.Background(), domain.CreateSalleDTO{Nom: "X", Capacite: 0})

	assert.ErrorIs(t, err, domain.ErrCapaciteInvalide)
	assert.Equal(t, "La capacité doit être supérieure à 0", store.Error())
	assert.Empty(t, api.salles)
}

func TestStore_UpdateReplacesInPlace(t *testing.T) {
	api := newFakeRoomAPI(salle(1, "A"), salle(2, "B"))
	store := NewStore(api)
	require.NoError(t, store.FetchAll(context.Background()))

	require.NoError(t, store.Update(context.Background(), 1, domain.UpdateSalleDTO{
		Nom: "A rénovée", Capacite: 50, Type: "Cours", Disponible: false,
	}))

	got := store.Salles()
	require.Len(t, got, 2)
	assert.Equal(t, "A rénovée", got[0].Nom)
	assert.Equal(t, int64(1), got[0].ID, "position unchanged")
	assert.Equal(t, "B", got[1].Nom)
}

func TestStore_UpdateRefreshesMatchingSelection(t *testing.T) {
	api := newFakeRoomAPI(salle(1, "A"))
	store := NewStore(api)
	require.NoError(t, store.FetchAll(context.Background()))
	first := store.Salles()[0]
	store.Select(&first)

	require.NoError(t, store.Update(context.Background(), 1, domain.UpdateSalleDTO{
		Nom: "A bis", Capacite: 30, Type: "Cours", Disponible: true,
	}))

	selected := store.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "A bis", selected.Nom)
}

func TestStore_EditRoundTripSubmitsUnchangedFields(t *testing.T) {
	original := domain.Salle{ID: 4, Nom: "Amphi", Capacite: 200, Type: "Amphithéâtre", Disponible: false}
	api := newFakeRoomAPI(original)
	store := NewStore(api)
	require.NoError(t, store.FetchAll(context.Background()))
	store.Select(&original)

	// Form pre-populated from the selection, saved without edits.
	selected := store.Selected()
	dto := domain.UpdateSalleDTO{
		Nom:        selected.Nom,
		Capacite:   selected.Capacite,
		Type:       selected.Type,
		Disponible: selected.Disponible,
	}
	require.NoError(t, store.Update(context.Background(), selected.ID, dto))

	require.Len(t, api.updateCalls, 1)
	assert.Equal(t, domain.UpdateSalleDTO{
		Nom: "Amphi", Capacite: 200, Type: "Amphithéâtre", Disponible: false,
	}, api.updateCalls[0])
}

func TestStore_DeleteFiltersByID(t *testing.T) {
	api := newFakeRoomAPI(salle(1, "A"), salle(2, "B"), salle(3, "C"))
	store := NewStore(api)
	require.NoError(t, store.FetchAll(context.Background()))

	require.NoError(t, store.Delete(context.Background(), 2))

	got := store.Salles()
	require.Len(t, got, 2)
	for _, s := range got {
		assert.NotEqual(t, int64(2), s.ID)
	}
}

func TestStore_DeleteClearsMatchingSelection(t *testing.T) {
	api := newFakeRoomAPI(salle(1, "A"))
	store := NewStore(api)
	require.NoError(t, store.FetchAll(context.Background()))
	first := store.Salles()[0]
	store.Select(&first)

	require.NoError(t, store.Delete(context.Background(), 1))
	assert.Nil(t, store.Selected())
}

func TestStore_DeleteKeepsUnrelatedSelection(t *testing.T) {
	api := newFakeRoomAPI(salle(1, "A"), salle(2, "B"))
	store := NewStore(api)
	require.NoError(t, store.FetchAll(context.Background()))
	first := store.Salles()[0]
	store.Select(&first)

	require.NoError(t, store.Delete(context.Background(), 2))

	selected := store.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, int64(1), selected.ID)
}

func TestStore_FailureStoresMessageAndClearsOnRetry(t *testing.T) {
	api := newFakeRoomAPI(salle(1, "A"))
	api.failWith = errors.New("Failed to fetch salles")
	store := NewStore(api)

	require.Error(t, store.FetchAll(context.Background()))
	assert.Equal(t, "Failed to fetch salles", store.Error())
	assert.False(t, store.Loading())

	api.mu.Lock()
	api.failWith = nil
	api.mu.Unlock()

	require.NoError(t, store.FetchAll(context.Background()))
	assert.Empty(t, store.Error())
	assert.Len(t, store.Salles(), 1)
}

func TestStore_ClearError(t *testing.T) {
	api := newFakeRoomAPI()
	api.failWith = errors.New("boom")
	store := NewStore(api)
	_ = store.FetchAll(context.Background())
	require.NotEmpty(t, store.Error())

	store.ClearError()
	assert.Empty(t, store.Error())
}
