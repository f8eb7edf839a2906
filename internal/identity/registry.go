// Package identity maintains the persistent slug → stable identifier map.
//
// Stable identifiers are opaque 128-bit random tokens used in output URLs,
// so renaming a post's title (and therefore its slug/filename) cannot break
// previously published links as long as the mapping survives. The map is
// append-only: once a slug has an identifier it never changes, and an
// identifier is never reused for a different slug.
package identity

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	ierrors "github.com/inkwell/inkwell/internal/errors"
)

// Registry resolves slugs to stable identifiers, persisting the mapping as a
// JSON file between builds.
type Registry struct {
	path  string
	ids   map[string]string
	dirty bool
}

// Load reads the registry file, starting empty when none exists yet.
func Load(path string) (*Registry, error) {
	r := &Registry{path: path, ids: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, ierrors.FileSystemError("read identity registry", err)
	}
	if err := json.Unmarshal(data, &r.ids); err != nil {
		return nil, ierrors.Wrap(err, ierrors.CategoryInternal, ierrors.SeverityFatal, "identity registry is corrupt").
			WithContext("path", path)
	}
	return r, nil
}

// Resolve returns the stable identifier for a slug, minting a new one for a
// slug seen for the first time. Minting marks the registry dirty.
func (r *Registry) Resolve(slug string) string {
	if id, ok := r.ids[slug]; ok {
		return id
	}
	id := NewID()
	r.ids[slug] = id
	r.dirty = true
	return id
}

// Bind records an explicit identifier for a slug, used when a post source
// pins its identity in frontmatter. An existing identical binding is a
// no-op; a conflicting one is rejected to keep the map append-only.
func (r *Registry) Bind(slug, id string) error {
	if existing, ok := r.ids[slug]; ok {
		if existing == id {
			return nil
		}
		return ierrors.New(ierrors.CategoryContent, ierrors.SeverityFatal, "slug is already bound to a different identifier").
			WithContext("slug", slug)
	}
	r.ids[slug] = id
	r.dirty = true
	return nil
}

// Dirty reports whether the registry has unsaved mutations.
func (r *Registry) Dirty() bool { return r.dirty }

// Len returns the number of slug bindings.
func (r *Registry) Len() int { return len(r.ids) }

// Flush persists the registry, but only when it was mutated since load.
func (r *Registry) Flush() error {
	if !r.dirty {
		return nil
	}
	data, err := json.MarshalIndent(r.ids, "", "  ")
	if err != nil {
		return ierrors.InternalError("failed to encode identity registry", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return ierrors.FileSystemError("create state directory", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return ierrors.FileSystemError("write identity registry", err)
	}
	r.dirty = false
	return nil
}

// NewID returns a fresh opaque identifier: 128 random bits, hex-encoded.
func NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
