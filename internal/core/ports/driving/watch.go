package driving

import "context"

// WatchService imports card files as they appear in a directory.
type WatchService interface {
	// Watch imports cards dropped into dir until ctx is cancelled.
	// When includeExisting is set, cards already in dir are imported first.
	// report, if non-nil, is called once per file.
	Watch(ctx context.Context, dir string, includeExisting bool, report func(WatchEvent)) error
}

// WatchEvent is the outcome of importing one watched file.
type WatchEvent struct {
	// Path is the file that was picked up.
	Path string

	// Result is set on success.
	Result *ImportResult

	// Err is set on failure.
	Err error
}
