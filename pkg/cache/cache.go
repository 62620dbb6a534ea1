// Package cache stores validation results between runs.
//
// A run is fully determined by its inputs: the bytes of both tables, the
// linkage method, and the detector options. [Keyer] turns those into keys,
// and a [Cache] maps keys to opaque bytes with an optional time to live.
//
// Two implementations are provided:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [NullCache]: stores nothing, used when caching is disabled
//
// # Keys
//
// Input tables are identified by the SHA-256 of their bytes (see [Hash]),
// never by path, so editing a file in place invalidates its entries:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ReportKey(cache.Hash(tree), cache.Hash(links), cache.ReportKeyOpts{Method: "serial"})
//	data, ok, err := c.Get(ctx, key)
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TTLReport is how long a cached report stays valid.
const TTLReport = 24 * time.Hour

// TTLArtifact is how long a cached rendered artifact stays valid.
const TTLArtifact = 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// ReportKeyOpts lists the run options that change a report.
type ReportKeyOpts struct {
	Method   string `json:"method"`
	MaxSteps int    `json:"max_steps,omitempty"`
}

// ArtifactKeyOpts lists the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ReportKey identifies a report by the hashes of its inputs.
	ReportKey(treeHash, linkHash string, opts ReportKeyOpts) string
	// ArtifactKey identifies an artifact rendered from a report.
	ArtifactKey(reportKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ReportKey implements [Keyer].
func (DefaultKeyer) ReportKey(treeHash, linkHash string, opts ReportKeyOpts) string {
	return hashKey("report", treeHash, linkHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(reportKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", reportKey, opts)
}

// hashKey builds "prefix:sha256(json(parts))". Parts are plain strings and
// option structs, which always marshal.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data, the same digest table.Table records
// for its source bytes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache stores nothing; every Get is a miss. The CLI uses it for
// --no-cache and when [cache] enabled = false.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
