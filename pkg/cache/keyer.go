package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact of the document
	// whose content hash is docHash.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every render option that changes artifact bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	VizType    string  `json:"viz_type"`
	Scale      float64 `json:"scale"`
	Margin     float64 `json:"margin"`
	Background string  `json:"background,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
}

// DefaultKeyer builds unscoped keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes the document hash together with the options.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	// json.Marshal of a string and a flat struct cannot fail.
	payload, _ := json.Marshal([]any{docHash, opts})
	return "artifact:" + Hash(payload)
}

// ScopedKeyer prefixes the keys of another keyer, e.g. "nnetplot:staging:",
// so that several deployments can share one redis database.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}

// Hash is the hex SHA-256 of data. Documents are keyed by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
