package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the application paths.
// Everything is relative to the executable, never the working directory.
type Paths struct {
	ExecutableDir string
	DataFile      string
	LogsDir       string
	ExportsDir    string
}

// GetPaths returns the application paths relative to the executable location
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return newPaths(filepath.Dir(exe)), nil
}

func newPaths(exeDir string) *Paths {
	// Layout next to the executable:
	//   indicadores_grupo_linhares.xlsx
	//   logs/
	//   exports/
	return &Paths{
		ExecutableDir: exeDir,
		DataFile:      filepath.Join(exeDir, DefaultDataFileName),
		LogsDir:       filepath.Join(exeDir, DefaultLogsDir),
		ExportsDir:    filepath.Join(exeDir, DefaultExportsDir),
	}
}

// Resolve returns p unchanged when absolute, otherwise joined to the
// executable directory.
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.ExecutableDir, path)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
