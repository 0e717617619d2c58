package setup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"
)

// installManagedYtdlp downloads (or reuses) the managed yt-dlp binary and
// places a copy at dest so the rest of the pipeline has a stable path that
// does not depend on the library's internal cache layout.
func installManagedYtdlp(ctx context.Context, dest string) error {
	resolved, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{})
	if err != nil {
		return fmt.Errorf("install yt-dlp: %w", err)
	}
	if err := copyExecutable(resolved.Executable, dest); err != nil {
		return fmt.Errorf("place yt-dlp in tool cache: %w", err)
	}
	return nil
}

func copyExecutable(src, dest string) error {
	if src == dest {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".yt-dlp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o755); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
