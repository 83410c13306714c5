package dgram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WaitForAddr blocks until a socket file exists at socketAddr, so a
// client can start before the daemon it talks to has bound its address.
// It watches the containing directory, which must already exist. It
// returns ctx.Err() if ctx is cancelled first.
//
// A file appearing at the path is not proof a live endpoint is bound
// there; a stale socket file satisfies the wait too. The first Send
// will surface that as a refused-connection SendError.
func WaitForAddr(ctx context.Context, socketAddr string) error {
	socketAddr = filepath.Clean(socketAddr)
	dir := filepath.Dir(socketAddr)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create a filesystem watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("could not watch directory %q: %w", dir, err)
	}

	// The file may have appeared before the watch was in place.
	if _, err := os.Stat(socketAddr); err == nil {
		return nil
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("filesystem watch on %q ended unexpectedly", dir)
			}
			if filepath.Clean(event.Name) == socketAddr && event.Op&fsnotify.Create == fsnotify.Create {
				return nil
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("filesystem watch on %q ended unexpectedly", dir)
			}
			return fmt.Errorf("problem watching directory %q: %w", dir, werr)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
