package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore_Success(t *testing.T) {
	store, dir := newStore(t)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestDefaultDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)

	got, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	store, err := NewConfigStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestDefaultDir_Home(t *testing.T) {
	t.Setenv(EnvHome, "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	got, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".kokoro"), got)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Set("storage.data_dir", "/srv/kokoro"))
	require.NoError(t, store.Set("import.max_file_size", int64(1024)))
	require.NoError(t, store.Set("log.verbose", true))
	require.NoError(t, store.Set("watch.exts", []string{".png", ".json"}))

	assert.Equal(t, "/srv/kokoro", store.GetString("storage.data_dir"))
	assert.Equal(t, 1024, store.GetInt("import.max_file_size"))
	assert.True(t, store.GetBool("log.verbose"))
	assert.Equal(t, []string{".png", ".json"}, store.GetStringSlice("watch.exts"))

	// Wrong types fall back to zero values.
	assert.Empty(t, store.GetString("import.max_file_size"))
	assert.Zero(t, store.GetInt("storage.data_dir"))
	assert.False(t, store.GetBool("storage.data_dir"))
	assert.Nil(t, store.GetStringSlice("log.verbose"))

	// Missing keys.
	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence(t *testing.T) {
	store, dir := newStore(t)

	require.NoError(t, store.Set("storage.data_dir", "/data"))
	require.NoError(t, store.Set("import.max_file_size", int64(2048)))
	require.NoError(t, store.Set("log.verbose", true))
	require.NoError(t, store.Set("watch.dir", "/inbox"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "/data", reloaded.GetString("storage.data_dir"))
	assert.Equal(t, 2048, reloaded.GetInt("import.max_file_size"))
	assert.True(t, reloaded.GetBool("log.verbose"))
	assert.Equal(t, "/inbox", reloaded.GetString("watch.dir"))
	assert.Equal(t, []string{"import.max_file_size", "log.verbose", "storage.data_dir", "watch.dir"}, reloaded.Keys())
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("import.max_file_size", int64(4096)))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[import]")
	assert.Contains(t, string(data), "max_file_size = 4096")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := "[storage]\ndata_dir = '/var/lib/kokoro'\n\n[log]\nverbose = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/kokoro", store.GetString("storage.data_dir"))
	assert.True(t, store.GetBool("log.verbose"))
}

func TestConfigStore_LeafAndTableConflict(t *testing.T) {
	store, dir := newStore(t)
	require.NoError(t, store.Set("watch", "flat"))
	require.NoError(t, store.Set("watch.dir", "/inbox"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "flat", reloaded.GetString("watch"))
	assert.Equal(t, "/inbox", reloaded.GetString("watch.dir"))
}

func TestConfigStore_Unset(t *testing.T) {
	store, dir := newStore(t)
	require.NoError(t, store.Set("watch.dir", "/inbox"))
	require.NoError(t, store.Unset("watch.dir"))
	require.NoError(t, store.Unset("never.set"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok := reloaded.Get("watch.dir")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("log.verbose", false))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	store, dir := newStore(t)

	store.mu.Lock()
	store.data["watch.dir"] = "/manual"
	store.mu.Unlock()

	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "/manual", reloaded.GetString("watch.dir"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newStore(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "concurrent.key" + string(rune('0'+id))
			_ = store.Set(key, int64(id))
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(dir)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNestMap(t *testing.T) {
	got := nestMap(map[string]any{
		"a.b":   1,
		"a.c.d": "x",
		"e":     true,
	})

	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": 1,
			"c": map[string]any{"d": "x"},
		},
		"e": true,
	}, got)
}
