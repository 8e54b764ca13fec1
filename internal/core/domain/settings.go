package domain

// DefaultMaxFileSize is the largest card file imported when
// import.max_file_size is not configured (32 MiB).
const DefaultMaxFileSize int64 = 32 << 20

// Setting keys as stored in the configuration file.
const (
	KeyStorageDataDir    = "storage.data_dir"
	KeyImportMaxFileSize = "import.max_file_size"
	KeyLogVerbose        = "log.verbose"
	KeyWatchDir          = "watch.dir"
)

// SettingKeys lists every recognised setting key in display order.
func SettingKeys() []string {
	return []string{KeyStorageDataDir, KeyImportMaxFileSize, KeyLogVerbose, KeyWatchDir}
}

// AppSettings contains all user-configurable settings.
type AppSettings struct {
	Storage StorageSettings
	Import  ImportSettings
	Log     LogSettings
	Watch   WatchSettings
}

// StorageSettings configures where characters are persisted.
type StorageSettings struct {
	// DataDir holds the SQLite database. Empty means <config dir>/data.
	DataDir string
}

// ImportSettings configures card imports.
type ImportSettings struct {
	// MaxFileSize is the largest file size in bytes. 0 disables the limit.
	MaxFileSize int64
}

// Allows reports whether a file of size bytes may be imported.
func (s ImportSettings) Allows(size int64) bool {
	return s.MaxFileSize <= 0 || size <= s.MaxFileSize
}

// LogSettings configures console logging.
type LogSettings struct {
	Verbose bool
}

// WatchSettings configures the directory watcher.
type WatchSettings struct {
	// Dir is watched when `watch` runs without an argument.
	Dir string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Import: ImportSettings{MaxFileSize: DefaultMaxFileSize},
	}
}
