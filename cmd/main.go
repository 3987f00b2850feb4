package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/memfs-dev/memfs"
	"github.com/memfs-dev/memfs/config"
	"github.com/memfs-dev/memfs/filesystem"
	"github.com/memfs-dev/memfs/internal/util"
	"github.com/memfs-dev/memfs/manifest"
	"github.com/memfs-dev/memfs/runner"
)

func main() {
	// Parse command line arguments
	var (
		configPath   string
		manifestPath string
		execPath     string
		verbose      int
	)
	flag.StringVar(&configPath, "config", "", "Path to config override file (yaml or json)")
	flag.StringVar(&manifestPath, "manifest", "", "Path to manifest file seeding the tree")
	flag.StringVar(&manifestPath, "n", "", "--manifest (shorthand)")
	flag.StringVar(&execPath, "exec", "", "In-memory path of a file to stage and execute after the demo")
	flag.IntVar(&verbose, "verbose", 3, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", 3, "--verbose (shorthand)")
	flag.Parse()

	// Initialize logger
	cfg := config.NewConfig(&config.ConfigOverride{LogLvl: &verbose})
	if configPath != "" {
		override, err := config.LoadConfigOverrideFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config file: %v\n", err)
			os.Exit(1)
		}
		cfg.Merge(override)
	}
	util.InitializeLogger(cfg.LogLvl)
	logger := util.GetLogger("main")
	logger.Info().Int("verbose", verbose).Str("manifest", manifestPath).Msg("memfs demo initializing")

	manifest.RegisterBuiltins()

	fs := memfs.New(cfg)
	if manifestPath != "" {
		seedTree(fs, manifestPath)
	}

	fmt.Println("memfs demonstration")

	// --- 1. Basic setup: directories and files ---
	printHeader("1. Basic Setup")
	must(fs.CreateDirectory("/home"))
	must(fs.CreateDirectory("/home/user/documents"))
	must(fs.CreateDirectory("/tmp"))
	must(fs.WriteFileString("/home/user/notes.txt", "This is a test file in the memory file system."))
	must(fs.WriteFile("/home/user/data.bin", []byte{0xDE, 0xAD, 0xBE, 0xEF}))
	fmt.Println("Created directory structure and files.")
	printListing(fs, "/home/user")

	// --- 2. Size calculation ---
	printHeader("2. Size Calculation")
	printSize(fs, "/home/user/notes.txt")
	printSize(fs, "/home/user/data.bin")
	printSize(fs, "/home/user")

	// --- 3. Binary content ---
	printHeader("3. Binary Content")
	data, err := fs.ReadFile("/home/user/data.bin")
	must(err)
	fmt.Printf("Binary content (hex): %s\n", hex.EncodeToString(data))

	// --- 4. Copy and move ---
	printHeader("4. Copy and Move")
	must(fs.CreateDirectory("/backup"))
	must(fs.Copy("/home/user/notes.txt", "/backup"))
	fmt.Println("Copied notes.txt into /backup (name retained).")
	must(fs.Move("/home/user/data.bin", "/tmp/data_moved.bin"))
	fmt.Println("Moved data.bin to /tmp/data_moved.bin (renamed).")
	printListing(fs, "/backup")
	printListing(fs, "/tmp")

	text, err := fs.ReadFileAsText("/backup/notes.txt")
	must(err)
	fmt.Printf("Copied content: %q\n", text)

	// --- 5. Append ---
	printHeader("5. Append")
	must(fs.AppendString("/home/user/notes.txt", " And this is appended."))
	text, err = fs.ReadFileAsText("/home/user/notes.txt")
	must(err)
	fmt.Printf("After append: %q\n", text)

	// --- 6. Error handling showcase ---
	printHeader("6. Error Handling")
	showError(fs.Remove("/home/user", false))
	showError(fs.Move("/home", "/home/user"))
	if _, err := fs.ReadFile("/no/such/file"); err != nil {
		showError(err)
	}
	fmt.Printf("exists(\"/no/such/file\") = %v\n", fs.Exists("/no/such/file"))

	// --- 7. Cleanup with recursive remove ---
	printHeader("7. Recursive Remove")
	must(fs.Remove("/backup", true))
	fmt.Printf("Removed /backup; exists = %v\n", fs.Exists("/backup"))

	// --- 8. Optional staged execution ---
	if execPath != "" {
		printHeader("8. Staged Execution")
		name, content, err := fs.ExportFile(execPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", execPath).Msg("Cannot export file for execution")
		}
		status, err := runner.New(cfg).Run(context.Background(), name, content)
		if err != nil {
			logger.Error().Err(err).Str("path", execPath).Msg("Staged execution did not complete")
		}
		fmt.Printf("Exit status of %s: %d\n", execPath, status)
	}
}

// seedTree populates the filesystem from a manifest file, one entry at a
// time, the same way nodes arrive over any other entry point.
func seedTree(fs *memfs.FS, path string) {
	logger := util.GetLogger("seedTree")

	raws, err := manifest.Load(path)
	if err != nil {
		logger.Fatal().Err(err).Str("manifest", path).Msg("Failed to load manifest file")
	}

	dirCnt := 0
	fileCnt := 0
	for _, raw := range raws {
		entryType, err := manifest.GetEntryType(raw)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to get entry type")
			continue
		}

		switch entryType {
		case manifest.DirEntryType:
			entry, err := manifest.UnmarshalDirEntry(raw)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to unmarshal directory entry")
				continue
			}
			if err := fs.CreateDirectory(entry.Path); err != nil {
				logger.Error().Err(err).Str("path", entry.Path).Msg("Failed to create directory")
				continue
			}
			dirCnt++

		case manifest.FileEntryType:
			entry, err := manifest.UnmarshalFileEntry(raw)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to unmarshal file entry")
				continue
			}
			if err := fs.WriteFile(entry.Path, entry.Content); err != nil {
				logger.Error().Err(err).Str("path", entry.Path).Msg("Failed to write file")
				continue
			}
			fileCnt++

		default:
			logger.Warn().Str("type", string(entryType)).Msg("Unknown entry type")
		}
	}
	logger.Info().Int("directories", dirCnt).Int("files", fileCnt).Msg("Seeded tree from manifest")
}

func printHeader(title string) {
	fmt.Printf("\n--- %s ---\n", title)
}

func printListing(fs *memfs.FS, path string) {
	entries, err := fs.List(path)
	must(err)
	fmt.Printf("Contents of %s:\n", path)
	for _, entry := range entries {
		fmt.Printf("  - %s\n", entry)
	}
}

func printSize(fs *memfs.FS, path string) {
	size, err := fs.Size(path)
	must(err)
	fmt.Printf("Size of %q: %d bytes\n", path, size)
}

// showError prints an expected demo failure along with its error kind.
func showError(err error) {
	var pathErr *filesystem.PathError
	if errors.As(err, &pathErr) {
		fmt.Printf("Expected failure: %v (kind: %v)\n", err, pathErr.Err)
		return
	}
	fmt.Printf("Expected failure: %v\n", err)
}

func must(err error) {
	if err != nil {
		logger := util.GetLogger("main")
		logger.Fatal().Err(err).Msg("Demo operation failed")
	}
}
