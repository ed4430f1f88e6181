package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	dataExt = ".txt"
	metaExt = ".json"
)

// ContentCache keeps remotely fetched file contents on disk.
type ContentCache struct {
	dir     string
	maxSize int64         // max total cache size in bytes
	ttl     time.Duration // cache entry TTL
}

// Key identifies one file at one ref of one repository.
type Key struct {
	Owner string
	Repo  string
	Ref   string
	Path  string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s@%s:%s", k.Owner, k.Repo, k.Ref, k.Path)
}

// CacheMeta is stored next to each cached file.
type CacheMeta struct {
	Owner    string    `json:"owner"`
	Repo     string    `json:"repo"`
	Ref      string    `json:"ref"`
	FilePath string    `json:"path"`
	StoredAt time.Time `json:"stored_at"`
}

// CacheEntry is a cached file with computed fields.
type CacheEntry struct {
	CacheMeta
	Name    string // hashed base name shared by the data and meta files
	Size    int64
	ModTime time.Time
}

func NewContentCache(dir string, maxSizeMB int, ttl time.Duration) (*ContentCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create content cache dir: %w", err)
	}
	return &ContentCache{
		dir:     dir,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		ttl:     ttl,
	}, nil
}

func entryName(k Key) string {
	sum := sha256.Sum256([]byte(k.String()))
	return hex.EncodeToString(sum[:])
}

func (c *ContentCache) dataPath(name string) string {
	return filepath.Join(c.dir, name+dataExt)
}

func (c *ContentCache) metaPath(name string) string {
	return filepath.Join(c.dir, name+metaExt)
}

// Get returns the cached contents for k if present and younger than the TTL.
func (c *ContentCache) Get(k Key) (string, bool) {
	path := c.dataPath(entryName(k))
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) >= c.ttl {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Put stores contents for k, replacing any previous entry.
func (c *ContentCache) Put(k Key, contents string) error {
	name := entryName(k)
	if err := writeFileAtomic(c.dataPath(name), []byte(contents)); err != nil {
		return fmt.Errorf("store %s: %w", k, err)
	}

	meta := CacheMeta{
		Owner:    k.Owner,
		Repo:     k.Repo,
		Ref:      k.Ref,
		FilePath: k.Path,
		StoredAt: time.Now(),
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(c.metaPath(name), data); err != nil {
		return fmt.Errorf("store meta for %s: %w", k, err)
	}
	return nil
}

// Delete removes the entry for k. Deleting a missing entry is not an error.
func (c *ContentCache) Delete(k Key) error {
	return c.remove(entryName(k))
}

func (c *ContentCache) remove(name string) error {
	for _, p := range []string{c.dataPath(name), c.metaPath(name)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// List scans the cache directory and returns all entries.
func (c *ContentCache) List() ([]CacheEntry, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var result []CacheEntry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), dataExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(e.Name(), dataExt)
		entry := CacheEntry{
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		// Entries without readable metadata are still listed so Evict can
		// reclaim them.
		if data, err := os.ReadFile(c.metaPath(name)); err == nil {
			if json.Unmarshal(data, &entry.CacheMeta) == nil {
				if metaInfo, err := os.Stat(c.metaPath(name)); err == nil {
					entry.Size += metaInfo.Size()
				}
			}
		}
		result = append(result, entry)
	}
	return result, nil
}

// Evict removes expired entries, then the oldest ones until the cache fits
// under its size cap.
func (c *ContentCache) Evict() error {
	entries, err := c.List()
	if err != nil {
		return err
	}

	var totalSize int64
	now := time.Now()
	remaining := entries[:0]
	for _, e := range entries {
		if now.Sub(e.ModTime) >= c.ttl {
			if err := c.remove(e.Name); err != nil {
				return err
			}
			continue
		}
		totalSize += e.Size
		remaining = append(remaining, e)
	}
	entries = remaining

	if totalSize > c.maxSize {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].ModTime.Before(entries[j].ModTime)
		})
		for _, e := range entries {
			if totalSize <= c.maxSize {
				break
			}
			if err := c.remove(e.Name); err != nil {
				return err
			}
			totalSize -= e.Size
		}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
