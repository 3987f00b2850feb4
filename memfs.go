// Package memfs provides a volatile, process-local hierarchical namespace
// with filesystem semantics: directories and files addressed by shell-like
// absolute paths, held entirely in memory. It re-exports the core types so
// most callers only need this package.
package memfs

import (
	"github.com/memfs-dev/memfs/config"
	"github.com/memfs-dev/memfs/filesystem"
)

// Core types re-exported from the filesystem package.
type (
	FS        = filesystem.FileSystem
	Node      = filesystem.Node
	NodeType  = filesystem.NodeType
	PathError = filesystem.PathError
)

// Node variant tags.
const (
	FileType = filesystem.FileType
	DirType  = filesystem.DirType
)

// Error kinds; match with errors.Is.
var (
	ErrPathEmpty         = filesystem.ErrPathEmpty
	ErrPathNotFound      = filesystem.ErrPathNotFound
	ErrNotADirectory     = filesystem.ErrNotADirectory
	ErrNotAFile          = filesystem.ErrNotAFile
	ErrAlreadyExists     = filesystem.ErrAlreadyExists
	ErrDirectoryNotEmpty = filesystem.ErrDirectoryNotEmpty
	ErrInvalidOperation  = filesystem.ErrInvalidOperation
)

// New creates an empty in-memory filesystem given your config.
// A nil config uses the defaults.
func New(cfg *config.Config) *FS {
	return filesystem.New(cfg)
}
