package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chyinan/Kokoro-Engine-sub000/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func testCharacter(id, name string, created time.Time) *domain.Character {
	return &domain.Character{
		ID: id,
		Profile: domain.CharacterProfile{
			Name:         name,
			Persona:      "A cat girl.\n\nPersonality: playful",
			UserNickname: domain.UserPlaceholder,
			SourceFormat: domain.SourceFormatTavernV3,
		},
		SourceFile: name + ".png",
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

// ==================== Store Creation ====================

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "kokoro.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_MigrationsRecorded(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestNewStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.CharacterStore().Save(ctx, testCharacter("c-1", "Aria", time.Now())))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.CharacterStore().Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Aria", got.Profile.Name)

	version, err := second.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestNewStore_InvalidDir(t *testing.T) {
	store, err := NewStore("/dev/null/cannot/create")
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestMigrate_SkipsAppliedAndUnnumbered(t *testing.T) {
	store := setupTestStore(t)

	fsys := fstest.MapFS{
		"001_characters.up.sql": {Data: []byte("THIS WOULD FAIL IF RUN")},
		"003_extra.up.sql":      {Data: []byte("CREATE TABLE extra (id TEXT)")},
		"003_extra.down.sql":    {Data: []byte("DROP TABLE extra")},
		"readme.up.sql":         {Data: []byte("garbage")},
	}
	require.NoError(t, store.migrate(fsys))

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, version)

	_, err = store.db.Exec("INSERT INTO extra (id) VALUES ('x')")
	assert.NoError(t, err)
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	store := setupTestStore(t)

	fsys := fstest.MapFS{
		"005_broken.up.sql": {Data: []byte("CREATE TABLE broken (")},
	}
	err := store.migrate(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "005_broken.up.sql")

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

// ==================== Character Store ====================

func TestCharacterStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t).CharacterStore()
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	want := testCharacter("c-1", "アリア", created)
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Profile, got.Profile)
	assert.Equal(t, want.SourceFile, got.SourceFile)
	assert.True(t, created.Equal(got.CreatedAt), "created_at = %v", got.CreatedAt)
	assert.True(t, created.Equal(got.UpdatedAt), "updated_at = %v", got.UpdatedAt)
}

func TestCharacterStore_Save_UpdateKeepsCreatedAt(t *testing.T) {
	store := setupTestStore(t).CharacterStore()
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, testCharacter("c-1", "Aria", created)))

	updated := testCharacter("c-1", "Aria Prime", created.Add(48*time.Hour))
	updated.UpdatedAt = created.Add(72 * time.Hour)
	require.NoError(t, store.Save(ctx, updated))

	got, err := store.Get(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Aria Prime", got.Profile.Name)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.True(t, updated.UpdatedAt.Equal(got.UpdatedAt))
}

func TestCharacterStore_Save_Defaults(t *testing.T) {
	store := setupTestStore(t).CharacterStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Character{
		ID:      "bare",
		Profile: domain.CharacterProfile{Name: "Bare"},
	}))

	got, err := store.Get(ctx, "bare")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFormatTavernV2, got.Profile.SourceFormat)
	assert.False(t, got.CreatedAt.IsZero())
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
}

func TestCharacterStore_Save_Invalid(t *testing.T) {
	store := setupTestStore(t).CharacterStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(ctx, &domain.Character{}), domain.ErrInvalidInput)
}

func TestCharacterStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t).CharacterStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCharacterStore_List_OldestFirst(t *testing.T) {
	store := setupTestStore(t).CharacterStore()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, testCharacter("c", "Third", base.Add(2*time.Minute))))
	require.NoError(t, store.Save(ctx, testCharacter("a", "First", base)))
	require.NoError(t, store.Save(ctx, testCharacter("b", "Second", base.Add(time.Minute))))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"First", "Second", "Third"},
		[]string{all[0].Profile.Name, all[1].Profile.Name, all[2].Profile.Name})
}

func TestCharacterStore_List_Empty(t *testing.T) {
	store := setupTestStore(t).CharacterStore()

	all, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestCharacterStore_Delete(t *testing.T) {
	store := setupTestStore(t).CharacterStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testCharacter("c-1", "Aria", time.Now())))

	require.NoError(t, store.Delete(ctx, "c-1"))

	_, err := store.Get(ctx, "c-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "c-1"), domain.ErrNotFound)
}

func TestCharacterStore_Concurrency(t *testing.T) {
	store := setupTestStore(t).CharacterStore()
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("c-%02d", i)
			if err := store.Save(ctx, testCharacter(id, id, now)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent save: %v", err)
	}

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}
