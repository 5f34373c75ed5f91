// Package history persists routing decisions and dispatch artifacts as
// content-addressed JSON records under the config directory.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/railwise/switchyard/pkg/router"
)

// Record captures one routing (and optional dispatch) event.
type Record struct {
	Kind         string           `json:"kind"`
	Summary      string           `json:"summary,omitempty"`
	Decision     *router.Decision `json:"decision"`
	ArtifactHash string           `json:"artifact_hash,omitempty"`
	Adapter      string           `json:"adapter,omitempty"`
	Model        string           `json:"model,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Store manages the content-addressed history directory.
type Store struct {
	BasePath string
}

// NewStore creates a history store rooted at basePath. An empty basePath
// defaults to ~/.switchyard/history.
func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		basePath = filepath.Join(home, ".switchyard", "history")
	}

	if err := os.MkdirAll(filepath.Join(basePath, "records"), 0755); err != nil {
		return nil, err
	}
	return &Store{BasePath: basePath}, nil
}

// Append stores a record by its SHA256 content hash in a sharded directory
// structure. It returns the record's hash.
func (s *Store) Append(rec Record) (string, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}

	hashBytes := sha256.Sum256(data)
	hash := hex.EncodeToString(hashBytes[:])

	// Shard by first 2 chars
	dir := filepath.Join(s.BasePath, "records", hash[:2])
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, hash+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return hash, nil
}

// List returns all stored records, oldest first.
func (s *Store) List() ([]Record, error) {
	root := filepath.Join(s.BasePath, "records")
	var records []Record

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.Before(records[j].CreatedAt) })
	return records, nil
}
