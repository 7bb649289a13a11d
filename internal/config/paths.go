package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default runtime directories, relative to the executable. Paths in the
// config file override them; relative overrides are also rooted there.
const (
	logsSubdir         = "logs"
	staticSubdir       = "static"
	originPhotosSubdir = "static/photos"
	photosSubdir       = "media/photos"
	letterSubdir       = "static/letter"
)

// ExecutableDir returns the directory holding the running binary, or the
// working directory when that cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err == nil && strings.TrimSpace(exe) != "" {
		if resolved, resolveErr := filepath.EvalSymlinks(exe); resolveErr == nil && strings.TrimSpace(resolved) != "" {
			exe = resolved
		}
		return filepath.Dir(exe)
	}

	if wd, wdErr := os.Getwd(); wdErr == nil && strings.TrimSpace(wd) != "" {
		return wd
	}
	return "."
}

// ResolveRuntimePath resolves a configured runtime directory (logs, static
// assets, the origin and working photo dirs, the letter) against the
// executable directory, falling back to subdir when raw is blank.
func ResolveRuntimePath(raw string, subdir string) string {
	return resolveUnder(ExecutableDir(), raw, subdir)
}

func resolveUnder(base, raw, subdir string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = strings.TrimSpace(subdir)
	}
	if target == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(base, target)
}
