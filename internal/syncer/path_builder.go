package syncer

import (
	"path/filepath"
)

// PathBuilder maps a repository name onto its working copy directory.
type PathBuilder struct {
	basePath string
}

func NewPathBuilder(basePath string) PathBuilder {
	return PathBuilder{basePath: basePath}
}

// BuildPath builds the working copy path for a repository name.
func (p PathBuilder) BuildPath(name string) string {
	return filepath.Join(p.basePath, name)
}
