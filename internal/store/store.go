// Package store persists user color schemes as XML files in a directory.
// Bundled schemes never touch disk; everything the user creates or edits
// lives here, one file per scheme.
package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/wilbur182/schemer/internal/scheme"
)

const schemeExt = ".xml"

// Serializing refreshes the modified stamp, so it is held out of the digest;
// otherwise consecutive saves would differ by the timestamp alone and the
// skip would never fire.
var modifiedStampRe = regexp.MustCompile(
	`<property name="` + scheme.MetaModifiedTime + `">[^<]*</property>`)

func digest(data []byte) uint64 {
	return xxhash.Sum64(modifiedStampRe.ReplaceAll(data, nil))
}

// Store reads and writes scheme files under a single directory. Digests of
// the serialized form let Save skip disk writes when nothing changed.
type Store struct {
	dir      string
	resolver scheme.ParentResolver

	mu      sync.Mutex
	digests map[string]uint64 // file name -> xxhash of last seen content
}

// Open prepares a store rooted at dir, creating the directory if needed.
// The resolver maps parent_scheme references in loaded files to bundled
// schemes.
func Open(dir string, resolver scheme.ParentResolver) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", dir, err)
	}
	return &Store{
		dir:      dir,
		resolver: resolver,
		digests:  make(map[string]uint64),
	}, nil
}

// Dir returns the store's root directory.
func (st *Store) Dir() string { return st.dir }

// LoadAll parses every scheme file in the directory. Files that fail to
// parse are logged and skipped so one corrupt scheme cannot hide the rest;
// a file written by a newer application version is skipped the same way.
func (st *Store) LoadAll() ([]*scheme.Scheme, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", st.dir, err)
	}

	var schemes []*scheme.Scheme
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), schemeExt) {
			continue
		}
		s, err := st.loadFile(entry.Name())
		if err != nil {
			log.Printf("store: skipping %s: %v", entry.Name(), err)
			continue
		}
		schemes = append(schemes, s)
	}
	return schemes, nil
}

// Load parses a single scheme file by name.
func (st *Store) Load(file string) (*scheme.Scheme, error) {
	return st.loadFile(file)
}

func (st *Store) loadFile(file string) (*scheme.Scheme, error) {
	data, err := os.ReadFile(filepath.Join(st.dir, file))
	if err != nil {
		return nil, err
	}

	root, err := scheme.ParseDocument(data)
	if err != nil {
		return nil, err
	}
	s := scheme.New("", scheme.WithParentResolver(st.resolver))
	if err := s.ReadExternal(root); err != nil {
		return nil, err
	}
	if s.Name() == "" {
		return nil, fmt.Errorf("scheme file carries no name")
	}

	st.mu.Lock()
	st.digests[file] = digest(data)
	st.mu.Unlock()
	return s, nil
}

// Save serializes the scheme to its file. The write is skipped when the
// serialized form matches the digest recorded at load or last save, so
// unchanged schemes do not churn the watcher.
func (st *Store) Save(s *scheme.Scheme) error {
	root := scheme.NewElement("scheme")
	if err := s.WriteExternal(root); err != nil {
		return fmt.Errorf("store: serialize %s: %w", s.Name(), err)
	}
	data, err := root.Serialize()
	if err != nil {
		return fmt.Errorf("store: serialize %s: %w", s.Name(), err)
	}

	file := FileName(s.Name())
	sum := digest(data)

	st.mu.Lock()
	prev, seen := st.digests[file]
	st.mu.Unlock()
	if seen && prev == sum {
		s.SetSaveNeeded(false)
		return nil
	}

	if err := os.WriteFile(filepath.Join(st.dir, file), data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", file, err)
	}

	st.mu.Lock()
	st.digests[file] = sum
	st.mu.Unlock()
	s.SetSaveNeeded(false)
	return nil
}

// Delete removes the scheme's file. Missing files are not an error.
func (st *Store) Delete(name string) error {
	file := FileName(name)
	if err := os.Remove(filepath.Join(st.dir, file)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store: delete %s: %w", file, err)
	}
	st.mu.Lock()
	delete(st.digests, file)
	st.mu.Unlock()
	return nil
}

// FileName maps a scheme name to its on-disk file name. Path separators and
// other characters that are unsafe in file names become underscores.
func FileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == 0:
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String() + schemeExt
}
