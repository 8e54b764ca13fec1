package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath turns a user-supplied location into a clean absolute path.
// It accepts file:// URIs, bare paths and a leading "~/" for the home directory.
func ResolvePath(location string) (string, error) {
	path := strings.TrimPrefix(location, "file://")

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	return filepath.Abs(path)
}
