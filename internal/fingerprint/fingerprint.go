// Package fingerprint decides whether a build is needed by comparing content
// digests of every build-relevant input against the map persisted by the
// previous successful build.
//
// MD5 is deliberate: this is change detection, not security. Any stable
// digest would do.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	ierrors "github.com/inkwell/inkwell/internal/errors"
)

// Map associates a logical input key with the hex digest of its content.
// Two builds over byte-identical inputs produce identical Maps.
type Map map[string]string

// Input names one build-relevant file under a stable logical key. Keys for
// fixed inputs (templates, stylesheet) stay constant across builds; content
// files use their path so additions and deletions change the key set.
type Input struct {
	Key  string
	Path string
}

// Compute hashes every input in full. An unreadable input fails the whole
// step: partial fingerprinting would let a broken input escape detection.
func Compute(inputs []Input) (Map, error) {
	m := make(Map, len(inputs))
	for _, in := range inputs {
		digest, err := hashFile(in.Path)
		if err != nil {
			return nil, ierrors.Wrap(err, ierrors.CategoryFileSystem, ierrors.SeverityFatal, "failed to fingerprint input").
				WithContext("key", in.Key).
				WithContext("path", in.Path)
		}
		m[in.Key] = digest
	}
	return m, nil
}

// ShouldBuild reports whether the two maps differ as sets of (key, digest)
// pairs. A nil previous map (first run) always triggers a build. Added or
// removed keys and changed digests all count; ordering cannot matter.
func ShouldBuild(previous, current Map) bool {
	if previous == nil {
		return true
	}
	if len(previous) != len(current) {
		return true
	}
	for key, digest := range current {
		if prev, ok := previous[key]; !ok || prev != digest {
			return true
		}
	}
	return false
}

// Load reads a persisted fingerprint map. A missing file yields a nil map,
// which ShouldBuild treats as "always build".
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ierrors.FileSystemError("read fingerprint store", err)
	}
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, ierrors.Wrap(err, ierrors.CategoryInternal, ierrors.SeverityFatal, "fingerprint store is corrupt").
			WithContext("path", path)
	}
	return m, nil
}

// Save persists the fingerprint map. Called only after a fully successful
// build and deploy.
func Save(path string, m Map) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return ierrors.InternalError("failed to encode fingerprint map", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ierrors.FileSystemError("create state directory", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ierrors.FileSystemError("write fingerprint store", err)
	}
	return nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
