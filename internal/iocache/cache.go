// Package iocache persists bulk ID mappings (gene → QID, taxon → QID)
// between runs in a Badger key-value store under the cache directory.
// Fetching a full property mapping from WDQS takes minutes; the cache
// makes repeated runs cheap. The existing-statement index is never
// cached: a stale index would cause duplicate writes.
package iocache

import (
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"

	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/ortho"
)

// Cache manages the Badger store of ID mappings, keyed by Wikidata
// property (e.g. "P594").
type Cache struct {
	dir string
	db  *badger.DB
}

// New creates a cache manager at the specified directory, creating the
// directory if needed.
func New(cacheDir string) (*Cache, error) {
	if err := gnsys.MakeDir(cacheDir); err != nil {
		return nil, OpenError(cacheDir, err)
	}
	return &Cache{dir: cacheDir}, nil
}

// Open opens the Badger database for the cache.
func (c *Cache) Open() error {
	if c.db != nil {
		slog.Warn("Mapping cache is already open")
		return nil
	}

	options := badger.DefaultOptions(c.dir)
	options.Logger = nil // Disable badger's internal logging

	db, err := badger.Open(options)
	if err != nil {
		return OpenError(c.dir, err)
	}

	c.db = db
	return nil
}

// Close closes the Badger database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Clear removes all cached mappings. Used by --refresh-mappings.
func (c *Cache) Clear() error {
	if c.db != nil {
		if err := c.Close(); err != nil {
			return err
		}
	}
	if err := gnsys.CleanDir(c.dir); err != nil {
		return OpenError(c.dir, err)
	}
	return nil
}

// StoreMapping stores a property mapping, encoded with GOB.
func (c *Cache) StoreMapping(property string, m ortho.Mapping) error {
	if c.db == nil {
		return NotOpenError()
	}

	enc := gnfmt.GNgob{}
	valBytes, err := enc.Encode(m)
	if err != nil {
		return CodecError(property, err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(property), valBytes)
	})
	if err != nil {
		return OpenError(c.dir, err)
	}

	slog.Info("Cached ID mapping", "property", property, "size", len(m))
	return nil
}

// GetMapping retrieves a property mapping from the cache and decodes it
// from GOB. Returns nil without error when the property is not cached.
func (c *Cache) GetMapping(property string) (ortho.Mapping, error) {
	if c.db == nil {
		return nil, NotOpenError()
	}

	var valBytes []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(property))
		if err == badger.ErrKeyNotFound {
			return nil // Not an error, just not found
		}
		if err != nil {
			return err
		}
		valBytes, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, OpenError(c.dir, err)
	}
	if valBytes == nil {
		return nil, nil
	}

	enc := gnfmt.GNgob{}
	var m ortho.Mapping
	if err = enc.Decode(valBytes, &m); err != nil {
		return nil, CodecError(property, err)
	}
	return m, nil
}
