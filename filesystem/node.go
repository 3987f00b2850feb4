package filesystem

import "sort"

// NodeType tags the two node variants.
type NodeType string

const (
	FileType NodeType = "file"
	DirType  NodeType = "dir"
)

// RootName is the fixed name of the root directory. It is never a lookup key
// since the root has no parent mapping to live in.
const RootName = "/"

// Node is a single entry in the tree, either a file or a directory. The
// variant is fixed at construction: content is only meaningful for files,
// children only for directories.
//
// parent is an upward pointer, not an ownership edge: the owning reference is
// the entry in the parent's children map. Detaching a subtree from that map
// releases it regardless of any back-references inside it.
type Node struct {
	name     string
	kind     NodeType
	parent   *Node
	content  []byte
	children map[string]*Node
}

// NewFileNode creates a detached file node. The content slice is owned by the
// node after the call.
func NewFileNode(name string, content []byte) *Node {
	return &Node{name: name, kind: FileType, content: content}
}

// NewDirNode creates a detached directory node with no children.
func NewDirNode(name string) *Node {
	return &Node{name: name, kind: DirType, children: make(map[string]*Node)}
}

func newRootNode() *Node {
	return NewDirNode(RootName)
}

// Kind returns the node's variant tag.
func (n *Node) Kind() NodeType {
	return n.kind
}

// Name returns the node's name, its key in the owning directory's mapping.
func (n *Node) Name() string {
	return n.name
}

// IsDir reports whether the node is the directory variant.
func (n *Node) IsDir() bool {
	return n.kind == DirType
}

// IsRoot reports whether the node is the tree's root directory.
func (n *Node) IsRoot() bool {
	return n.parent == nil && n.name == RootName
}

// addChild inserts child into the node's children map and sets the child's
// parent back-reference. A same-named previous child is overwritten and
// detached.
func (n *Node) addChild(child *Node) {
	if prev, ok := n.children[child.name]; ok {
		prev.parent = nil
	}
	n.children[child.name] = child
	child.parent = n
}

// removeChild detaches the named child, clearing its back-reference.
// Returns false if no such child exists.
func (n *Node) removeChild(name string) bool {
	child, ok := n.children[name]
	if !ok {
		return false
	}
	child.parent = nil
	delete(n.children, name)
	return true
}

// child looks up a direct child by name.
func (n *Node) child(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// childNames returns the children sorted lexicographically, directory names
// suffixed with the path delimiter. Map iteration order is never exposed.
func (n *Node) childNames() []string {
	names := make([]string, 0, len(n.children))
	for name, child := range n.children {
		if child.IsDir() {
			name += Delimiter
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// size returns a file's content length or a directory's recursive total.
// Recomputed on every call; the read-mostly workload does not justify
// memoizing per-directory totals.
func (n *Node) size() int {
	if n.kind == FileType {
		return len(n.content)
	}
	total := 0
	for _, child := range n.children {
		total += child.size()
	}
	return total
}

// clone deep-copies the node under a new name. The result is fully detached:
// no parent, independent content buffers, recursively cloned children. Used
// by the copy engine to build the duplicate subtree before attaching it.
func (n *Node) clone(name string) *Node {
	if n.kind == FileType {
		content := make([]byte, len(n.content))
		copy(content, n.content)
		return NewFileNode(name, content)
	}
	dir := NewDirNode(name)
	for childName, child := range n.children {
		dir.addChild(child.clone(childName))
	}
	return dir
}

// isOrAncestorOf reports whether n is target or an ancestor of target,
// walking target's back-references upward. Used to refuse moving a directory
// into its own subtree.
func (n *Node) isOrAncestorOf(target *Node) bool {
	for cur := target; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}
