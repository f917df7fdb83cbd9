package schema

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"modernc.org/sqlite"
)

// cacheFileName is the on-disk SQLite database file a cache directory holds.
const cacheFileName = "bali-schema-cache.db"

// Cache is a SQLite-backed store of resolved schema descriptions, keyed by a
// caller-supplied UUID, that lets repeated validator construction against
// the same schema skip re-parsing its TOML source (spec.md §4.J). It
// changes nothing about engine semantics; it only shortcuts Load's TOML
// decode step on a cache hit.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if necessary) a schema cache rooted at dir.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, cacheFileName))
	if err != nil {
		return nil, wrapCacheError(err)
	}

	c := &Cache{db: db}
	if err := c.init(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS schemas (
			id       TEXT PRIMARY KEY,
			digest   TEXT NOT NULL,
			resolved TEXT NOT NULL
		)
	`)
	if err != nil {
		return wrapCacheError(err)
	}
	return nil
}

// Close releases the cache's underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Load resolves the schema description at path, using the entry keyed by id
// in the cache if its stored digest matches the file's current contents;
// otherwise it parses the TOML fresh and stores the result back under id.
func (c *Cache) Load(id uuid.UUID, path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	digest := digestOf(data)

	var storedDigest, resolvedB64 string
	row := c.db.QueryRow(`SELECT digest, resolved FROM schemas WHERE id = ?`, id.String())
	err = row.Scan(&storedDigest, &resolvedB64)
	if err == nil && storedDigest == digest {
		resolved, decErr := base64.StdEncoding.DecodeString(resolvedB64)
		if decErr != nil {
			return nil, fmt.Errorf("decode cached schema: %w", decErr)
		}
		var f tomlFile
		n, decErr := rezi.DecBinary(resolved, &f)
		if decErr != nil {
			return nil, fmt.Errorf("REZI decode cached schema: %w", decErr)
		}
		if n != len(resolved) {
			return nil, fmt.Errorf("REZI decoded byte count mismatch; only consumed %d/%d bytes", n, len(resolved))
		}
		return buildSchema(&f)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, wrapCacheError(err)
	}

	var f tomlFile
	if decErr := toml.Unmarshal(data, &f); decErr != nil {
		return nil, fmt.Errorf("parse schema TOML: %w", decErr)
	}

	encoded := rezi.EncBinary(&f)
	_, err = c.db.Exec(`
		INSERT INTO schemas (id, digest, resolved) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET digest = excluded.digest, resolved = excluded.resolved
	`, id.String(), digest, base64.StdEncoding.EncodeToString(encoded))
	if err != nil {
		return nil, wrapCacheError(err)
	}

	return buildSchema(&f)
}

func digestOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func wrapCacheError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	}
	return err
}
