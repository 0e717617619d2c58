package media

import (
	"errors"
	"io/fs"
	"os"
)

// RemoveArtifacts deletes the given files, ignoring paths that are already
// gone. Returns the first unexpected error together with the number of
// files actually removed.
func RemoveArtifacts(paths ...string) (int, error) {
	removed := 0
	var firstErr error
	for _, path := range paths {
		if path == "" {
			continue
		}
		err := os.Remove(path)
		if err == nil {
			removed++
			continue
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return removed, firstErr
}
