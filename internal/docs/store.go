// Package docs serves the provider documentation the optimizer agent reads
// through its tools. Documents are markdown files laid out as
// <root>/<provider>/<name>.md.
package docs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"
)

// MaxDocChars bounds how much of a document is fed back into the
// conversation, to keep prompt growth in check.
const MaxDocChars = 12000

const truncationMarker = "\n\n[Truncated - apply the patterns you've learned]"

var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrDocNotFound      = errors.New("document not found")
)

// Store reads provider documentation from a directory tree. Concurrent
// optimization runs frequently read the same guideline file, so reads for
// the same (provider, doc) pair are collapsed via singleflight.
type Store struct {
	root string
	sf   singleflight.Group
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Providers returns the providers that have at least one markdown document.
func (s *Store) Providers() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	var providers []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if names, err := s.List(e.Name()); err == nil && len(names) > 0 {
			providers = append(providers, e.Name())
		}
	}
	sort.Strings(providers)
	return providers
}

// List returns the sorted markdown document names for a provider.
func (s *Store) List(provider string) ([]string, error) {
	if !safeName(provider) {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotFound, provider)
	}
	dir := filepath.Join(s.root, strings.ToLower(provider))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrProviderNotFound, provider)
		}
		return nil, fmt.Errorf("list docs: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Read returns a document's text prefixed with a provenance header and
// truncated at MaxDocChars. The ".md" extension is appended when missing.
func (s *Store) Read(provider, name string) (string, error) {
	if !safeName(provider) {
		return "", fmt.Errorf("%w: %q", ErrProviderNotFound, provider)
	}
	if !safeName(name) {
		return "", fmt.Errorf("%w: %q", ErrDocNotFound, name)
	}
	name = NormalizeDocName(name)
	key := strings.ToLower(provider) + "/" + name

	content, err, _ := s.sf.Do(key, func() (interface{}, error) {
		path := filepath.Join(s.root, strings.ToLower(provider), name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %q", ErrDocNotFound, name)
			}
			return nil, fmt.Errorf("read doc: %w", err)
		}
		text := string(data)
		if utf8.RuneCountInString(text) > MaxDocChars {
			runes := []rune(text)
			text = string(runes[:MaxDocChars]) + truncationMarker
		}
		return fmt.Sprintf("=== %s: %s ===\n\n%s", strings.ToUpper(provider), name, text), nil
	})
	if err != nil {
		return "", err
	}
	return content.(string), nil
}

// safeName rejects model-supplied path components that could escape the
// docs root before they reach filepath.Join.
func safeName(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && !strings.Contains(s, "..")
}

// NormalizeDocName appends the ".md" extension when absent.
func NormalizeDocName(name string) string {
	if !strings.HasSuffix(name, ".md") {
		return name + ".md"
	}
	return name
}
