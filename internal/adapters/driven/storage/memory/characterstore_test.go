package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

func character(id, name string, created time.Time) *domain.Character {
	return &domain.Character{
		ID: id,
		Profile: domain.CharacterProfile{
			Name:         name,
			Persona:      "A cat girl.",
			UserNickname: domain.UserPlaceholder,
			SourceFormat: domain.SourceFormatTavernV2,
		},
		SourceFile: name + ".png",
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func TestNewCharacterStore(t *testing.T) {
	store := NewCharacterStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.characters)
}

func TestCharacterStore_SaveAndGet(t *testing.T) {
	store := NewCharacterStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, character("c-1", "Aria", now)))

	got, err := store.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Aria", got.Profile.Name)
	assert.Equal(t, "Aria.png", got.SourceFile)
	assert.True(t, now.Equal(got.CreatedAt))
}

func TestCharacterStore_Save_Update(t *testing.T) {
	store := NewCharacterStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, character("c-1", "Aria", now)))
	require.NoError(t, store.Save(ctx, character("c-1", "Aria II", now)))

	got, err := store.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Aria II", got.Profile.Name)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCharacterStore_Save_Invalid(t *testing.T) {
	store := NewCharacterStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(ctx, &domain.Character{}), domain.ErrInvalidInput)
}

func TestCharacterStore_Get_NotFound(t *testing.T) {
	_, err := NewCharacterStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCharacterStore_Get_ReturnsCopy(t *testing.T) {
	store := NewCharacterStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, character("c-1", "Aria", time.Now())))

	got, err := store.Get(ctx, "c-1")
	require.NoError(t, err)
	got.Profile.Name = "changed"

	again, err := store.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Aria", again.Profile.Name)
}

func TestCharacterStore_List_OldestFirst(t *testing.T) {
	store := NewCharacterStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, character("c", "Third", base.Add(2*time.Hour))))
	require.NoError(t, store.Save(ctx, character("a", "First", base)))
	require.NoError(t, store.Save(ctx, character("b", "Second", base.Add(time.Hour))))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "First", all[0].Profile.Name)
	assert.Equal(t, "Second", all[1].Profile.Name)
	assert.Equal(t, "Third", all[2].Profile.Name)
}

func TestCharacterStore_List_Empty(t *testing.T) {
	all, err := NewCharacterStore().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCharacterStore_Delete(t *testing.T) {
	store := NewCharacterStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, character("c-1", "Aria", time.Now())))

	require.NoError(t, store.Delete(ctx, "c-1"))

	_, err := store.Get(ctx, "c-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "c-1"), domain.ErrNotFound)
}

func TestCharacterStore_Concurrency(t *testing.T) {
	store := NewCharacterStore()
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("c-%d", i)
			_ = store.Save(ctx, character(id, id, now))
			_, _ = store.Get(ctx, id)
			_, _ = store.List(ctx)
		}(i)
	}
	wg.Wait()

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
