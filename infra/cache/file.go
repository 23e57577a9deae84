package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CrestNiraj12/tootline/domain"
)

// FileStore keeps one JSON file per timeline under dir.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// cachedStatus is the on-disk form of domain.Status.
type cachedStatus struct {
	ID          int64     `json:"id"`
	AccountKey  string    `json:"account_key"`
	AuthorID    string    `json:"author_id"`
	Author      string    `json:"author"`
	Acct        string    `json:"acct"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	URL         string    `json:"url,omitempty"`
	InReplyToID string    `json:"in_reply_to_id,omitempty"`
	RebloggedBy string    `json:"reblogged_by,omitempty"`
	IsGap       bool      `json:"is_gap,omitempty"`
}

// Path returns the file backing key. Each key part is escaped so that no
// part can leave dir, and "." is escaped too since it joins the parts.
func (s *FileStore) Path(key []string) (string, error) {
	if len(key) == 0 {
		return "", errors.New("empty cache key")
	}
	parts := make([]string, len(key))
	for i, k := range key {
		if strings.TrimSpace(k) == "" {
			return "", fmt.Errorf("empty cache key part at %d", i)
		}
		parts[i] = strings.ReplaceAll(url.PathEscape(k), ".", "%2E")
	}
	return filepath.Join(s.dir, strings.Join(parts, ".")+".json"), nil
}

// Load reads the statuses cached for key. A missing file yields an error
// wrapping fs.ErrNotExist.
func (s *FileStore) Load(key []string) ([]domain.Status, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cache %s: %w", path, err)
	}

	var cached []cachedStatus
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("parsing cache %s: %w", path, err)
	}
	out := make([]domain.Status, len(cached))
	for i, c := range cached {
		out[i] = domain.Status(c)
	}
	return out, nil
}

// Save replaces the cache file for key. The file is written next to the
// target and renamed into place so readers never see a partial file.
func (s *FileStore) Save(key []string, statuses []domain.Status) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	cached := make([]cachedStatus, len(statuses))
	for i, st := range statuses {
		cached[i] = cachedStatus(st)
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing cache %s: %w", path, err)
	}
	return nil
}

// Remove deletes the cache file for key. Missing files are not an error.
func (s *FileStore) Remove(key []string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing cache %s: %w", path, err)
	}
	return nil
}
