package watchlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// document is the on-disk layout: {"watchlist": [...]}.
type document struct {
	Watchlist Watchlist `json:"watchlist"`
}

// Load reads the watchlist file at path. A missing or blank file yields an
// empty list so a fresh deployment can boot. Unparsable content returns an
// error wrapping ErrCorruptState.
func Load(path string) (Watchlist, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Watchlist{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read watchlist %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Watchlist{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptState, path, err)
	}
	return doc.Watchlist.Clone(), nil
}

// Save writes the whole list to path, replacing previous content. The write
// goes through a temp file and a rename so readers never see a partial file.
func Save(path string, w Watchlist) error {
	data, err := json.MarshalIndent(document{Watchlist: w.Clone()}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPersistenceWrite, err)
	}
	data = append(data, '\n')
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".watchlist-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
