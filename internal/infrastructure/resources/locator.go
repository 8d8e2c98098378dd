// Package resources locates language data (sentence tokenizer data, stopword
// lists, sentiment lexicons) across an ordered list of search roots. A path
// segment ending in ".zip" is looked up inside the archive.
package resources

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

// DataEnv holds extra search roots, separated by os.PathListSeparator.
const DataEnv = "TEXTDESK_DATA"

// Locator is immutable and safe for concurrent use.
type Locator struct {
	roots []string
}

func NewLocator(roots ...string) *Locator {
	seen := make(map[string]struct{}, len(roots))
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		out = append(out, root)
	}
	return &Locator{roots: out}
}

// DefaultRoots returns the standard search roots, extra roots first.
func DefaultRoots(extra string) []string {
	var roots []string
	if extra != "" {
		roots = append(roots, filepath.SplitList(extra)...)
	}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, "textdesk_data"))
	}
	return append(roots, "/usr/local/share/textdesk_data", "/usr/share/textdesk_data")
}

// WithBundled returns a locator that searches dir before every other root,
// provided dir exists. Otherwise the receiver is returned unchanged.
func (l *Locator) WithBundled(dir string) *Locator {
	if dir == "" {
		return l
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return l
	}
	return NewLocator(append([]string{dir}, l.roots...)...)
}

func (l *Locator) Roots() []string {
	out := make([]string, len(l.roots))
	copy(out, l.roots)
	return out
}

// AnyRootExists reports whether at least one search root is a directory.
func (l *Locator) AnyRootExists() bool {
	for _, root := range l.roots {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// Find returns a printable location of the named resource.
func (l *Locator) Find(name string) (string, error) {
	m, err := l.lookup(name)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// Open opens the named resource, which must be a file.
func (l *Locator) Open(name string) (io.ReadCloser, error) {
	m, err := l.lookup(name)
	if err != nil {
		return nil, err
	}
	return m.open()
}

type match struct {
	path  string
	inner string
}

func (m match) String() string {
	if m.inner == "" {
		return m.path
	}
	return m.path + "/" + m.inner
}

func (m match) open() (io.ReadCloser, error) {
	if m.inner == "" {
		info, err := os.Stat(m.path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("resource %s is a directory", m.path)
		}
		return os.Open(m.path)
	}

	archive, err := zip.OpenReader(m.path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", m.path, err)
	}
	for _, f := range archive.File {
		if f.Name != m.inner {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			archive.Close()
			return nil, fmt.Errorf("open %s in %s: %w", m.inner, m.path, err)
		}
		return &zipEntry{ReadCloser: rc, archive: archive}, nil
	}
	archive.Close()
	return nil, fmt.Errorf("resource %s is a directory", m.String())
}

type zipEntry struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (z *zipEntry) Close() error {
	err := z.ReadCloser.Close()
	if cerr := z.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

func (l *Locator) lookup(name string) (match, error) {
	clean, err := cleanName(name)
	if err != nil {
		return match{}, err
	}
	for _, root := range l.roots {
		if m, ok := findInRoot(root, clean); ok {
			return m, nil
		}
	}
	return match{}, fmt.Errorf("%w: %s (searched %d roots)", domain.ErrResourceNotFound, clean, len(l.roots))
}

func cleanName(name string) (string, error) {
	name = strings.Trim(strings.TrimSpace(name), "/")
	if name == "" {
		return "", fmt.Errorf("%w: empty resource name", domain.ErrResourceNotFound)
	}
	clean := path.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, "../") || strings.Contains(clean, "/../") {
		return "", fmt.Errorf("%w: invalid resource name %q", domain.ErrResourceNotFound, name)
	}
	return clean, nil
}

func findInRoot(root, name string) (match, bool) {
	segments := strings.Split(name, "/")
	for i, seg := range segments {
		if !strings.HasSuffix(seg, ".zip") {
			continue
		}
		archivePath := filepath.Join(root, filepath.Join(segments[:i+1]...))
		inner := strings.Join(segments[i+1:], "/")
		if !isFile(archivePath) {
			return match{}, false
		}
		if inner == "" {
			return match{path: archivePath}, true
		}
		if zipContains(archivePath, inner) {
			return match{path: archivePath, inner: inner}, true
		}
		return match{}, false
	}

	plain := filepath.Join(root, filepath.FromSlash(name))
	if _, err := os.Stat(plain); err == nil {
		return match{path: plain}, true
	}

	// "tokenizers/punkt" may also ship as tokenizers/punkt.zip holding punkt/...
	base := segments[len(segments)-1]
	archivePath := filepath.Join(root, filepath.FromSlash(name)+".zip")
	if isFile(archivePath) && zipContains(archivePath, base) {
		return match{path: archivePath, inner: base}, true
	}
	return match{}, false
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func zipContains(archivePath, inner string) bool {
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return false
	}
	defer archive.Close()
	prefix := strings.TrimSuffix(inner, "/") + "/"
	for _, f := range archive.File {
		if f.Name == inner || strings.HasPrefix(f.Name, prefix) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means the resource does not exist anywhere.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrResourceNotFound) || errors.Is(err, fs.ErrNotExist)
}
