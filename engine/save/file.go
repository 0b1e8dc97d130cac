package save

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/stageplay/types"
)

// Ext is the file extension of snapshot files.
const Ext = ".json"

// FileStore keeps one JSON snapshot per slot in a directory.
type FileStore struct {
	Dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on
// the first save, not here.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Location returns the path of the slot's snapshot file.
func (s *FileStore) Location(slot string) string {
	return filepath.Join(s.Dir, slot+Ext)
}

// Save writes the snapshot atomically: a temp file in the same directory is
// synced and then renamed over the slot file.
func (s *FileStore) Save(ctx context.Context, slot string, w *types.World) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	data, err := Encode(w)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, "tmp-"+slot+"-*"+Ext)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Location(slot)); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// Load reads and decodes a slot. It returns ErrNoSaveLocation when the
// directory is missing and ErrSlotNotFound when the slot file is.
func (s *FileStore) Load(ctx context.Context, slot string) (*types.World, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	if info, err := os.Stat(s.Dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoSaveLocation, s.Dir)
	}

	data, err := os.ReadFile(s.Location(slot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data)
}

// List returns the slot names present in the directory, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list saves: %w", err)
	}

	slots := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != Ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		slots = append(slots, strings.TrimSuffix(name, Ext))
	}
	sort.Strings(slots)
	return slots, nil
}
