package filesystem

import (
	"errors"
	"strings"
)

// Delimiter separates path components. All paths are absolute; the root path
// is the delimiter alone.
const Delimiter = "/"

// splitPath breaks a path into traversal components. Empty components (from
// repeated delimiters) and "." are dropped; ".." is kept for the resolver to
// interpret.
func splitPath(path string) []string {
	parts := strings.Split(path, Delimiter)
	comps := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		comps = append(comps, part)
	}
	return comps
}

// checkAbsolute rejects the empty path and any path missing the leading
// delimiter. Relative paths are not supported anywhere in the API.
func checkAbsolute(op, path string) error {
	if path == "" {
		return pathErr(op, path, ErrPathEmpty)
	}
	if !strings.HasPrefix(path, Delimiter) {
		return pathErr(op, path, ErrInvalidOperation)
	}
	return nil
}

// resolvePath walks the tree from the root and returns the node the path
// designates. The tree is not mutated.
//
// ".." ascends one level and clamps at the root. A file in a non-terminal
// position fails with ErrNotADirectory; a file in terminal position is
// returned directly.
func (fs *FileSystem) resolvePath(op, path string) (*Node, error) {
	if err := checkAbsolute(op, path); err != nil {
		return nil, err
	}

	cur := fs.root
	comps := splitPath(path)
	for i, comp := range comps {
		if comp == ".." {
			if cur.parent != nil {
				cur = cur.parent
			}
			continue
		}
		child, ok := cur.child(comp)
		if !ok {
			return nil, pathErr(op, path, ErrPathNotFound)
		}
		if !child.IsDir() {
			if i < len(comps)-1 {
				return nil, pathErr(op, path, ErrNotADirectory)
			}
			return child, nil
		}
		cur = child
	}
	return cur, nil
}

// resolveParentAndName splits off the final component as the leaf name and
// resolves everything before it to a directory. Used by operations that
// create, replace, or detach a child.
//
// The root path has no leaf and is rejected, as are trailing-delimiter paths
// (no implicit leaf name) and "." / ".." leaves.
func (fs *FileSystem) resolveParentAndName(op, path string) (*Node, string, error) {
	if err := checkAbsolute(op, path); err != nil {
		return nil, "", err
	}
	if path == RootName {
		return nil, "", pathErr(op, path, ErrInvalidOperation)
	}

	cut := strings.LastIndex(path, Delimiter)
	parentPath := path[:cut]
	if parentPath == "" {
		parentPath = RootName
	}
	leaf := path[cut+1:]
	if leaf == "" || leaf == "." || leaf == ".." {
		return nil, "", pathErr(op, path, ErrInvalidOperation)
	}

	parent, err := fs.resolvePath(op, parentPath)
	if err != nil {
		return nil, "", err
	}
	if !parent.IsDir() {
		return nil, "", pathErr(op, parentPath, ErrNotADirectory)
	}
	return parent, leaf, nil
}

// resolveDestination supports the two destination shapes used by copy and
// move: an existing directory, in which case the source's own name is reused
// as the leaf, or a not-yet-existing path acting as the full new name.
func (fs *FileSystem) resolveDestination(op, dest, sourceName string) (*Node, string, error) {
	node, err := fs.resolvePath(op, dest)
	if err == nil {
		if !node.IsDir() {
			// Destination exists and is a file.
			return nil, "", pathErr(op, dest, ErrAlreadyExists)
		}
		if _, ok := node.child(sourceName); ok {
			return nil, "", pathErr(op, dest+Delimiter+sourceName, ErrAlreadyExists)
		}
		return node, sourceName, nil
	}
	if errors.Is(err, ErrPathNotFound) {
		return fs.resolveParentAndName(op, dest)
	}
	return nil, "", err
}
