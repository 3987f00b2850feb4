package filesystem

import (
	"github.com/memfs-dev/memfs/config"
	"github.com/memfs-dev/memfs/internal/util"
)

// FileSystem is a volatile, process-local tree of named binary blobs with
// shell-like absolute path addressing. Nothing ever touches disk.
//
// The tree is single-writer by contract: operations do their work
// synchronously with no internal locking, so callers exposing a FileSystem
// to concurrent use must serialize access externally.
type FileSystem struct {
	cfg  *config.Config
	root *Node
}

// New creates an empty filesystem containing only the root directory.
// A nil cfg uses the defaults.
func New(cfg *config.Config) *FileSystem {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &FileSystem{cfg: cfg, root: newRootNode()}
}

// Root returns the root directory node.
func (fs *FileSystem) Root() *Node {
	return fs.root
}

// CreateDirectory creates every missing directory component along the path,
// equivalent to `mkdir -p`. Existing directories along the way are fine; a
// component that already exists as a file aborts with ErrAlreadyExists.
// The root path is a no-op.
func (fs *FileSystem) CreateDirectory(path string) error {
	const op = "mkdir"
	logger := util.GetLogger("CreateDirectory")

	if err := checkAbsolute(op, path); err != nil {
		return err
	}

	cur := fs.root
	created := 0
	for _, name := range splitPath(path) {
		if name == ".." {
			if cur.parent != nil {
				cur = cur.parent
			}
			continue
		}
		if child, ok := cur.child(name); ok {
			if !child.IsDir() {
				return pathErr(op, path, ErrAlreadyExists)
			}
			cur = child
			continue
		}
		if err := fs.checkName(op, path, name); err != nil {
			return err
		}
		dir := NewDirNode(name)
		cur.addChild(dir)
		cur = dir
		created++
	}
	if created > 0 {
		logger.Debug().Str("path", path).Int("created", created).Msg("Created missing directories")
	}
	return nil
}

// CreateFile ensures an empty file exists at path, like `touch`. An existing
// file is left untouched; an existing directory fails with ErrNotAFile.
func (fs *FileSystem) CreateFile(path string) error {
	const op = "touch"

	parent, name, err := fs.resolveParentAndName(op, path)
	if err != nil {
		return err
	}
	if existing, ok := parent.child(name); ok {
		if existing.IsDir() {
			return pathErr(op, path, ErrNotAFile)
		}
		return nil
	}
	if err := fs.checkName(op, path, name); err != nil {
		return err
	}
	parent.addChild(NewFileNode(name, nil))
	return nil
}

// WriteFile creates or replaces the file at path with the given content.
// Whatever node previously held that name is discarded, except a directory,
// which fails with ErrNotAFile. The content slice is copied.
func (fs *FileSystem) WriteFile(path string, content []byte) error {
	const op = "write"
	logger := util.GetLogger("WriteFile")

	parent, name, err := fs.resolveParentAndName(op, path)
	if err != nil {
		return err
	}
	if existing, ok := parent.child(name); ok && existing.IsDir() {
		return pathErr(op, path, ErrNotAFile)
	}
	if err := fs.checkName(op, path, name); err != nil {
		return err
	}
	if len(content) > fs.cfg.MaxFileSize {
		return pathErr(op, path, ErrInvalidOperation)
	}

	owned := make([]byte, len(content))
	copy(owned, content)
	parent.addChild(NewFileNode(name, owned))
	logger.Trace().Str("path", path).Int("bytes", len(owned)).Msg("Wrote file")
	return nil
}

// WriteFileString is WriteFile for text content.
func (fs *FileSystem) WriteFileString(path, content string) error {
	return fs.WriteFile(path, []byte(content))
}

// Append appends content to the file at path in place. The path must
// designate an existing file.
func (fs *FileSystem) Append(path string, content []byte) error {
	const op = "append"

	node, err := fs.resolvePath(op, path)
	if err != nil {
		return err
	}
	if node.IsDir() {
		return pathErr(op, path, ErrNotAFile)
	}
	if len(node.content)+len(content) > fs.cfg.MaxFileSize {
		return pathErr(op, path, ErrInvalidOperation)
	}
	node.content = append(node.content, content...)
	return nil
}

// AppendString is Append for text content.
func (fs *FileSystem) AppendString(path, content string) error {
	return fs.Append(path, []byte(content))
}

// ReadFile returns a copy of the file's content. Mutating the returned slice
// never affects the tree.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	const op = "read"

	node, err := fs.resolvePath(op, path)
	if err != nil {
		return nil, err
	}
	if node.IsDir() {
		return nil, pathErr(op, path, ErrNotAFile)
	}
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// ReadFileAsText returns the file's content as a string.
func (fs *FileSystem) ReadFileAsText(path string) (string, error) {
	content, err := fs.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// ExportFile returns the leaf name and a copy of the content of the file at
// path, the two pieces an execution collaborator needs to stage it outside
// the tree.
func (fs *FileSystem) ExportFile(path string) (string, []byte, error) {
	const op = "export"

	node, err := fs.resolvePath(op, path)
	if err != nil {
		return "", nil, err
	}
	if node.IsDir() {
		return "", nil, pathErr(op, path, ErrNotAFile)
	}
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return node.name, content, nil
}

// Remove detaches the node at path from its parent, releasing the whole
// subtree. Removing a non-empty directory requires recursive; removing the
// root is never allowed.
func (fs *FileSystem) Remove(path string, recursive bool) error {
	const op = "remove"
	logger := util.GetLogger("Remove")

	parent, name, err := fs.resolveParentAndName(op, path)
	if err != nil {
		return err
	}
	child, ok := parent.child(name)
	if !ok {
		return pathErr(op, path, ErrPathNotFound)
	}
	if child.IsDir() && !recursive && len(child.children) > 0 {
		return pathErr(op, path, ErrDirectoryNotEmpty)
	}
	parent.removeChild(name)
	logger.Debug().Str("path", path).Bool("recursive", recursive).Msg("Removed node")
	return nil
}

// List returns the directory's child names sorted lexicographically, with
// directories suffixed by the path delimiter.
func (fs *FileSystem) List(path string) ([]string, error) {
	const op = "list"

	node, err := fs.resolvePath(op, path)
	if err != nil {
		return nil, err
	}
	if !node.IsDir() {
		return nil, pathErr(op, path, ErrNotADirectory)
	}
	return node.childNames(), nil
}

// Exists reports whether the path resolves. It is the only operation that
// suppresses errors; any failure collapses to false.
func (fs *FileSystem) Exists(path string) bool {
	_, err := fs.resolvePath("exists", path)
	return err == nil
}

// TypeOf returns the variant of the node at path.
func (fs *FileSystem) TypeOf(path string) (NodeType, error) {
	node, err := fs.resolvePath("stat", path)
	if err != nil {
		return "", err
	}
	return node.Kind(), nil
}

// Size returns a file's content length or a directory's recursive byte
// total.
func (fs *FileSystem) Size(path string) (int, error) {
	node, err := fs.resolvePath("size", path)
	if err != nil {
		return 0, err
	}
	return node.size(), nil
}

// checkName enforces the configured cap on a single new path component.
func (fs *FileSystem) checkName(op, path, name string) error {
	if len(name) > fs.cfg.MaxNameLen {
		return pathErr(op, path, ErrInvalidOperation)
	}
	return nil
}
