package tokenize

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kirillkom/textdesk/internal/capability"
	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
)

// ErrStopwordsUnavailable wraps domain.ErrResourceNotFound so callers can
// treat it like any other missing language resource.
var ErrStopwordsUnavailable = &domain.KindError{Name: "StopwordsUnavailableError", Msg: "stopwords unavailable", Parent: domain.ErrResourceNotFound}

type Stopwords map[string]struct{}

func (s Stopwords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// LoadStopwords reads the stopword list for language through the locator,
// then from the bundled data directory. It never returns an empty set
// silently: when neither source has the list it fails.
func LoadStopwords(locator ports.ResourceLocator, bundledDir, language string) (Stopwords, error) {
	if !capability.ValidLanguage(language) {
		return nil, fmt.Errorf("%w: malformed language %q", ErrStopwordsUnavailable, language)
	}

	if locator != nil {
		rc, err := locator.Open(capability.StopwordsResource(language))
		if err == nil {
			defer rc.Close()
			return ParseStopwords(rc)
		}
	}

	if bundledDir != "" {
		f, err := os.Open(capability.BundledStopwordsPath(bundledDir, language))
		if err == nil {
			defer f.Close()
			return ParseStopwords(f)
		}
	}

	return nil, fmt.Errorf("%w for %q", ErrStopwordsUnavailable, language)
}

// ParseStopwords reads one word per line; blank lines and #-comments are
// skipped.
func ParseStopwords(r io.Reader) (Stopwords, error) {
	out := make(Stopwords)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		out[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stopwords: %w", err)
	}
	return out, nil
}
