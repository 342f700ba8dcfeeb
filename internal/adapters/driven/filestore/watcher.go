package filestore

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch hot-reloads the store when the data file changes on disk, so
// hand edits to the guestbook file show up without a restart. The
// watcher runs until the context is cancelled. Writes made by the
// store itself also trigger a reload; that is a redundant read of data
// already in the cache, not a correctness problem.
func (s *FileStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				log.Println("Stopping file watcher.")
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// the watch is on the directory; only our data file matters
				if filepath.Clean(event.Name) != filepath.Clean(s.filename) {
					continue
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					log.Printf("File change detected: %s. Reloading data.", event.Name)

					if err := s.reload(); err != nil {
						log.Printf("ERROR: failed to hot-reload data: %v", err)
					}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("ERROR: file watcher error: %v", err)
			}
		}
	}()

	// watching the directory rather than the file survives editors that
	// replace the file on save
	if err := watcher.Add(filepath.Dir(s.filename)); err != nil {
		return err
	}

	log.Printf("Watching for changes to data file: %s", s.filename)

	return nil
}
