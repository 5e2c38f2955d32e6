// Package imports implements the @import file loader: the external
// collaborator spec §1 describes as "fetch bytes for a resolved path,
// return a subtree" and whose interface (not implementation) is in
// scope for this engine.
//
// Grounded on the teacher's file-reading conventions (plain os.ReadFile
// calls guarded by existence checks throughout convert/), generalized
// into a small injectable interface so the evaluator never talks to the
// filesystem directly — tests substitute an in-memory Loader.
package imports

import (
	"os"
	"path/filepath"
)

// Loader resolves an @import URI relative to the file that referenced it
// and returns the target's bytes. A missing file is reported as an error
// satisfying os.IsNotExist — the evaluator treats that as a silent skip
// (spec §5/§7), not a fatal condition.
type Loader interface {
	// Load returns the contents at uri resolved against baseDir, and the
	// directory of the resolved path (used as the base for any further
	// nested imports).
	Load(baseDir, uri string) (data []byte, resolvedDir string, err error)
}

// FileLoader is the default filesystem-backed Loader.
type FileLoader struct{}

// Load reads uri as a path relative to baseDir (or absolute, if it is
// one).
func (FileLoader) Load(baseDir, uri string) ([]byte, string, error) {
	path := uri
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, uri)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, filepath.Dir(path), nil
}
