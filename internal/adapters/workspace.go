package adapters

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ros-cargo-build/internal/ports"
)

// WorkspaceAdapter finds package.xml files in a package source tree. Build
// outputs of colcon and cargo are never descended into.
type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

var skippedSourceDirs = map[string]struct{}{
	"install": {},
	"build":   {},
	"log":     {},
	"target":  {},
	".git":    {},
	".colcon": {},
	".cargo":  {},
	".ros":    {},
}

func (a WorkspaceAdapter) FindPackageXML(root string) ([]string, error) {
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source root is empty")
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skippedSourceDirs[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == "package.xml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan source tree").
			WithCause(err)
	}
	// Shallowest first, so the package root wins over vendored packages.
	sort.SliceStable(paths, func(i, j int) bool {
		di, dj := depth(paths[i]), depth(paths[j])
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})
	return paths, nil
}

func depth(path string) int {
	count := 0
	for _, r := range filepath.ToSlash(path) {
		if r == '/' {
			count++
		}
	}
	return count
}

var _ ports.WorkspacePort = WorkspaceAdapter{}
