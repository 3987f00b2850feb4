package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memfs-dev/memfs/config"
)

func TestCreateDirectory(t *testing.T) {
	fs := New(nil)

	require.NoError(t, fs.CreateDirectory("/a/b/c"))

	assert.True(t, fs.Exists("/a/b/c"))
	entries, err := fs.List("/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b/"}, entries)
}

// Calling CreateDirectory twice produces the same tree as calling it once.
func TestCreateDirectory_Idempotent(t *testing.T) {
	fs := New(nil)

	require.NoError(t, fs.CreateDirectory("/a/b/c"))
	require.NoError(t, fs.CreateDirectory("/a/b/c"))

	entries, err := fs.List("/a/b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c/"}, entries)
	entries, err = fs.List("/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/"}, entries)
}

func TestCreateDirectory_RootNoop(t *testing.T) {
	fs := New(nil)

	require.NoError(t, fs.CreateDirectory("/"))

	entries, err := fs.List("/")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateDirectory_FileCollision(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.WriteFileString("/blocker", "x"))

	err := fs.CreateDirectory("/blocker/sub")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	err = fs.CreateDirectory("/blocker")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateFile(t *testing.T) {
	fs := New(nil)

	require.NoError(t, fs.CreateFile("/empty.txt"))

	kind, err := fs.TypeOf("/empty.txt")
	require.NoError(t, err)
	assert.Equal(t, FileType, kind)
	size, err := fs.Size("/empty.txt")
	require.NoError(t, err)
	assert.Equal(t, 0, size)
}

// Touching an existing file leaves its content alone.
func TestCreateFile_ExistingFileNoop(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.WriteFileString("/f.txt", "keep me"))

	require.NoError(t, fs.CreateFile("/f.txt"))

	text, err := fs.ReadFileAsText("/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "keep me", text)
}

func TestCreateFile_DirCollision(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.CreateDirectory("/d"))

	err := fs.CreateFile("/d")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAFile)
}

func TestWriteFile_ReadFile_Roundtrip(t *testing.T) {
	fs := New(nil)
	content := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	require.NoError(t, fs.WriteFile("/data.bin", content))

	got, err := fs.ReadFile("/data.bin")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestWriteFile_ReplacesExisting(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.WriteFileString("/f.txt", "old content"))

	require.NoError(t, fs.WriteFileString("/f.txt", "new"))

	text, err := fs.ReadFileAsText("/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", text)
}

func TestWriteFile_DirCollision(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.CreateDirectory("/d"))

	err := fs.WriteFileString("/d", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAFile)
}

func TestWriteFile_TrailingDelimiter(t *testing.T) {
	fs := New(nil)

	err := fs.WriteFileString("/f.txt/", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

// The tree owns its own buffers: neither the written slice nor the read
// slice alias tree content.
func TestWriteFile_DefensiveCopies(t *testing.T) {
	fs := New(nil)
	content := []byte("abc")
	require.NoError(t, fs.WriteFile("/f.txt", content))

	content[0] = 'X'
	got, err := fs.ReadFile("/f.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'Y'
	again, err := fs.ReadFile("/f.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestWriteFile_MaxFileSize(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.MaxFileSize = 4
	fs := New(cfg)

	require.NoError(t, fs.WriteFileString("/ok.txt", "1234"))

	err := fs.WriteFileString("/big.txt", "12345")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestWriteFile_MaxNameLen(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.MaxNameLen = 8
	fs := New(cfg)

	err := fs.WriteFileString("/much_too_long_name.txt", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	err = fs.CreateDirectory("/also_much_too_long")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestAppend(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.WriteFileString("/f.txt", "hello"))

	require.NoError(t, fs.AppendString("/f.txt", " world"))

	text, err := fs.ReadFileAsText("/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestAppend_Errors(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.CreateDirectory("/d"))

	err := fs.AppendString("/d", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAFile)

	err = fs.AppendString("/missing.txt", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestAppend_MaxFileSize(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.MaxFileSize = 6
	fs := New(cfg)
	require.NoError(t, fs.WriteFileString("/f.txt", "1234"))

	err := fs.AppendString("/f.txt", "567")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	// Content unchanged after the rejected append
	text, err := fs.ReadFileAsText("/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "1234", text)
}

func TestReadFile_Errors(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.CreateDirectory("/d"))

	_, err := fs.ReadFile("/d")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAFile)

	_, err = fs.ReadFile("/missing.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestExportFile(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.CreateDirectory("/bin"))
	require.NoError(t, fs.WriteFile("/bin/tool", []byte{0x7F, 'E', 'L', 'F'}))

	name, content, err := fs.ExportFile("/bin/tool")
	require.NoError(t, err)
	assert.Equal(t, "tool", name)
	assert.Equal(t, []byte{0x7F, 'E', 'L', 'F'}, content)

	_, _, err = fs.ExportFile("/bin")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAFile)
}

func TestRemove(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.CreateDirectory("/d"))
	require.NoError(t, fs.CreateFile("/d/x"))

	// Non-recursive removal of a non-empty directory fails
	err := fs.Remove("/d", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDirectoryNotEmpty)

	require.NoError(t, fs.Remove("/d", true))
	assert.False(t, fs.Exists("/d"))
	assert.False(t, fs.Exists("/d/x"))
}

func TestRemove_EmptyDirNonRecursive(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.CreateDirectory("/empty"))

	require.NoError(t, fs.Remove("/empty", false))
	assert.False(t, fs.Exists("/empty"))
}

func TestRemove_File(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.WriteFileString("/f.txt", "x"))

	require.NoError(t, fs.Remove("/f.txt", false))
	assert.False(t, fs.Exists("/f.txt"))
}

func TestRemove_Errors(t *testing.T) {
	fs := New(nil)

	err := fs.Remove("/", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	err = fs.Remove("/missing", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestList(t *testing.T) {
	fs := newTestFS(t)

	entries, err := fs.List("/docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt", "sub/"}, entries)
}

func TestList_NotADirectory(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.List("/f.bin")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotADirectory)
}

func TestExists_NeverPropagates(t *testing.T) {
	fs := newTestFS(t)

	assert.True(t, fs.Exists("/docs/notes.txt"))
	assert.False(t, fs.Exists("/missing"))
	assert.False(t, fs.Exists(""))
	assert.False(t, fs.Exists("relative"))
	assert.False(t, fs.Exists("/f.bin/deeper"))
}

func TestTypeOf(t *testing.T) {
	fs := newTestFS(t)

	kind, err := fs.TypeOf("/docs")
	require.NoError(t, err)
	assert.Equal(t, DirType, kind)

	kind, err = fs.TypeOf("/f.bin")
	require.NoError(t, err)
	assert.Equal(t, FileType, kind)

	_, err = fs.TypeOf("/missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestSize_File(t *testing.T) {
	fs := New(nil)
	require.NoError(t, fs.WriteFileString("/f.txt", "hello"))

	size, err := fs.Size("/f.txt")
	require.NoError(t, err)
	assert.Equal(t, 5, size)
}

// The root's size equals the sum of every reachable file's size.
func TestSize_RootEqualsSumOfFiles(t *testing.T) {
	fs := New(nil)
	files := map[string]string{
		"/a.txt":       "one",
		"/d/b.txt":     "twotwo",
		"/d/e/c.bin":   "three",
		"/other/x.dat": "fourfour",
	}
	require.NoError(t, fs.CreateDirectory("/d/e"))
	require.NoError(t, fs.CreateDirectory("/other"))

	total := 0
	for path, content := range files {
		require.NoError(t, fs.WriteFileString(path, content))
		total += len(content)
	}

	rootSize, err := fs.Size("/")
	require.NoError(t, err)
	assert.Equal(t, total, rootSize)

	for path, content := range files {
		size, err := fs.Size(path)
		require.NoError(t, err)
		assert.Equal(t, len(content), size)
	}
}

func TestPathError_CarriesOpAndPath(t *testing.T) {
	fs := New(nil)

	_, err := fs.ReadFile("/missing.txt")
	require.Error(t, err)

	var pe *PathError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "read", pe.Op)
	assert.Equal(t, "/missing.txt", pe.Path)
	assert.ErrorIs(t, pe.Err, ErrPathNotFound)
}
