package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

const ffprobePathEnv = "SUB2BDNXML_FFPROBE_PATH"

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath string
)

// EnsureFFprobe resolves the ffprobe binary once per process: an explicit
// path from SUB2BDNXML_FFPROBE_PATH wins, otherwise PATH is searched.
// An explicit path gets its directory prepended to PATH so library code
// that spawns a bare "ffprobe" resolves the same binary.
func EnsureFFprobe() (string, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = resolve()
	})
	return ensurePath, ensureErr
}

func resolve() (string, error) {
	if path := os.Getenv(ffprobePathEnv); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%s: %w", ffprobePathEnv, err)
		}
		dir := filepath.Dir(path)
		if err := os.Setenv("PATH",
			dir+string(os.PathListSeparator)+os.Getenv("PATH")); err != nil {
			return "", fmt.Errorf("failed to extend PATH: %w", err)
		}
		return path, nil
	}

	found, err := exec.LookPath("ffprobe")
	if err != nil {
		return "", fmt.Errorf(
			"ffprobe not found: install FFmpeg or set %s", ffprobePathEnv,
		)
	}
	return found, nil
}
