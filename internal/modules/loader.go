package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mell-lang/mell/internal/ast"
	"github.com/mell-lang/mell/internal/config"
	"github.com/mell-lang/mell/internal/parser"
)

// Loader resolves load paths to parsed source units. Paths resolve
// against the loading file's directory first, then the project's extra
// search paths. Units are re-read on every load, so loading twice runs
// the file twice.
type Loader struct {
	BaseDir string
	Paths   []string
}

func NewLoader(baseDir string, paths []string) *Loader {
	return &Loader{BaseDir: baseDir, Paths: paths}
}

func (l *Loader) Load(path string) (*ast.Program, error) {
	resolved, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(resolved)
	if err != nil {
		return nil, err
	}
	program, err := parser.Parse(resolved, string(src))
	if err != nil {
		return nil, err
	}
	return program, nil
}

func (l *Loader) resolve(path string) (string, error) {
	if !hasSourceExtension(path) {
		path += config.SourceFileExtensions[0]
	}

	candidates := make([]string, 0, len(l.Paths)+1)
	if filepath.IsAbs(path) {
		candidates = append(candidates, path)
	} else {
		candidates = append(candidates, filepath.Join(l.BaseDir, path))
		for _, dir := range l.Paths {
			candidates = append(candidates, filepath.Join(dir, path))
		}
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("module %q not found (searched %s)", path, strings.Join(candidates, ", "))
}

func hasSourceExtension(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
