// Package store provides filesystem-backed stores for generated artifacts.
//
// Vaani persists two kinds of artifacts: synthesized reply audio and generated
// HTML forms. Both are append-mostly, keyed by filename, and served back over
// HTTP. Keys embed a millisecond timestamp plus a random suffix so concurrent
// requests cannot collide.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get when no artifact exists under the given key.
var ErrNotFound = errors.New("store: not found")

// Store is a directory-backed artifact store.
type Store struct {
	dir string
}

// New creates the backing directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the on-disk path for a key. The key is reduced to its base
// name so callers cannot escape the store directory.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}

// Put writes content under key. The write goes to a temporary file first and
// is renamed into place, so readers never observe a partial artifact.
func (s *Store) Put(key string, content []byte) error {
	dst := s.Path(key)
	tmp, err := os.CreateTemp(s.dir, ".put-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

// Get returns the content stored under key, or ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	content, err := os.ReadFile(s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return content, nil
}

// Exists reports whether an artifact is stored under key.
func (s *Store) Exists(key string) bool {
	_, err := os.Stat(s.Path(key))
	return err == nil
}

// FormFilename builds the filename for a generated application form:
// welfare_scheme_form_<YYYYMMDD>_<suffix>.html, where suffix is the low-order
// six digits of the millisecond timestamp. Two generations within the same
// millisecond would collide, which is acceptable for this artifact class —
// the content would be identical.
func FormFilename(now time.Time) string {
	ms := now.UnixMilli()
	suffix := fmt.Sprintf("%06d", ms%1_000_000)
	return fmt.Sprintf("welfare_scheme_form_%s_%s.html", now.Format("20060102"), suffix)
}

// AudioFilename builds the filename for a synthesized reply:
// response_<unix-ms>_<random>.mp3. The random suffix makes names unique even
// for requests landing on the same millisecond.
func AudioFilename(now time.Time) string {
	return fmt.Sprintf("response_%d_%s.mp3", now.UnixMilli(), shortID())
}

// UploadFilename builds a unique name for a temporary uploaded audio file,
// preserving the original extension so downstream engines can sniff the
// container format.
func UploadFilename(original string) string {
	ext := filepath.Ext(original)
	if ext == "" {
		ext = ".webm"
	}
	return fmt.Sprintf("audio-%d-%s%s", time.Now().UnixMilli(), shortID(), ext)
}

func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
