package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Load reads a manifest file and returns one raw message per entry. Both
// JSON and YAML files are accepted; YAML documents are normalized through
// JSON so entry unmarshaling has a single wire form.
func Load(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		var doc []any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal manifest file: %w", err)
		}
		data, err = json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize manifest file: %w", err)
		}
	case ".json":
	default:
		return nil, fmt.Errorf("unknown manifest file extension: %s", path)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest entries: %w", err)
	}
	return raws, nil
}

// GetEntryType extracts the entry type from JSON without full unmarshaling
func GetEntryType(data []byte) (EntryType, error) {
	var meta struct {
		Type EntryType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalFileEntry handles file-specific unmarshaling, decoding the inline
// content through the registered encoding decoder.
func UnmarshalFileEntry(data []byte) (*FileEntry, error) {
	var dto FileEntryDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	encoding := valueOrDefault(dto.Encoding, "raw")
	decode, err := GetDecoder(encoding)
	if err != nil {
		return nil, err
	}
	content, err := decode(valueOrDefault(dto.Content, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q content for %s: %w", encoding, dto.Path, err)
	}

	return &FileEntry{
		Path:    dto.Path,
		UUID:    valueOrDefault(dto.UUID, uuid.New().String()),
		Content: content,
	}, nil
}

// UnmarshalDirEntry handles explicit directory unmarshaling (no content)
func UnmarshalDirEntry(data []byte) (*DirEntry, error) {
	var dto DirEntryDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	return &DirEntry{
		Path: dto.Path,
		UUID: valueOrDefault(dto.UUID, uuid.New().String()),
	}, nil
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
