package manifest

// EntryType discriminates manifest entries the same way the tree
// discriminates nodes.
type EntryType string

const (
	FileEntryType EntryType = "file"
	DirEntryType  EntryType = "dir"
)

// EntryDTO is the serialized form of a manifest entry, shared by the file
// and directory variants.
type EntryDTO struct {
	Path string    `json:"path"`
	Type EntryType `json:"type"`
	UUID *string   `json:"uuid,omitempty"` // Optional stable ID; generated when omitted
}

// FileEntryDTO is the serialized form of a file entry. Content is inline,
// interpreted through the named encoding.
type FileEntryDTO struct {
	EntryDTO
	Content  *string `json:"content,omitempty"`
	Encoding *string `json:"encoding,omitempty"` // "raw" (default), "base64" or "hex"
}

// DirEntryDTO is the serialized form of a directory entry.
type DirEntryDTO struct {
	EntryDTO
}

// FileEntry is a decoded file entry ready to be written into a tree.
type FileEntry struct {
	Path    string
	UUID    string
	Content []byte
}

// DirEntry is a decoded directory entry.
type DirEntry struct {
	Path string
	UUID string
}
