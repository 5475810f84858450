package ports

import "context"

// FileWatcherPort reports changes to a set of files. Each receive on the
// returned channel stands for one or more debounced changes.
type FileWatcherPort interface {
	Watch(ctx context.Context, paths []string) (<-chan string, error)
	Close() error
}
