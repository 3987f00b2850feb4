package filesystem

import (
	"github.com/memfs-dev/memfs/internal/util"
)

// Copy duplicates the node at source to dest. dest may be an existing
// directory, in which case the copy keeps the source's own name inside it,
// or a not-yet-existing path acting as the full new name.
//
// The duplicate subtree is built fully detached and attached to the
// destination mapping in one step, so a copy never leaves a half-populated
// destination behind. Source and copy share no content buffers; mutating one
// never affects the other.
func (fs *FileSystem) Copy(source, dest string) error {
	const op = "copy"
	logger := util.GetLogger("Copy")

	src, err := fs.resolvePath(op, source)
	if err != nil {
		return err
	}
	destDir, newName, err := fs.resolveDestination(op, dest, src.name)
	if err != nil {
		return err
	}
	if err := fs.checkName(op, dest, newName); err != nil {
		return err
	}

	destDir.addChild(src.clone(newName))
	logger.Debug().Str("source", source).Str("dest", dest).Str("name", newName).Msg("Copied node")
	return nil
}

// Move detaches the node at source and re-homes it under the destination,
// with the same two destination shapes as Copy. It is the only operation
// that changes a node's name and owner; both sides of the ownership edge are
// updated together.
//
// Moving the root, or moving a directory into itself or any of its
// descendants, fails with ErrInvalidOperation.
func (fs *FileSystem) Move(source, dest string) error {
	const op = "move"
	logger := util.GetLogger("Move")

	src, err := fs.resolvePath(op, source)
	if err != nil {
		return err
	}
	if src.IsRoot() {
		return pathErr(op, source, ErrInvalidOperation)
	}
	oldParent := src.parent
	// The only parentless node reachable by resolution is the root, which was
	// rejected above. A mismatched parent mapping here is a corrupted tree,
	// not a user error.
	if got, ok := oldParent.child(src.name); !ok || got != src {
		panic("filesystem: node back-reference does not match parent mapping")
	}

	destDir, newName, err := fs.resolveDestination(op, dest, src.name)
	if err != nil {
		return err
	}
	if err := fs.checkName(op, dest, newName); err != nil {
		return err
	}
	// Walk upward from the destination; reaching the source means the move
	// would place a directory inside its own subtree.
	if src.isOrAncestorOf(destDir) {
		return pathErr(op, dest, ErrInvalidOperation)
	}

	oldParent.removeChild(src.name)
	src.name = newName
	destDir.addChild(src)
	logger.Debug().Str("source", source).Str("dest", dest).Str("name", newName).Msg("Moved node")
	return nil
}
