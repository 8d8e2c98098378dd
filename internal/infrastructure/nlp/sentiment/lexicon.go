// Package sentiment scores text against a VADER-format lexicon: one token
// per line, tab-separated, mean valence in the second column.
package sentiment

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kirillkom/textdesk/internal/capability"
	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
)

var (
	ErrEmptyLexicon     = &domain.KindError{Name: "EmptyLexiconError", Msg: "lexicon has no entries"}
	ErrMalformedLexicon = &domain.KindError{Name: "MalformedLexiconError", Msg: "malformed lexicon"}
)

type Lexicon map[string]float64

func ParseLexicon(r io.Reader) (Lexicon, error) {
	lex := make(Lexicon)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected token and valence", ErrMalformedLexicon, line)
		}
		valence, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedLexicon, line, err)
		}
		lex[strings.ToLower(strings.TrimSpace(fields[0]))] = valence
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	if len(lex) == 0 {
		return nil, ErrEmptyLexicon
	}
	return lex, nil
}

// Factory builds analyzers from the installed lexicon. The lexicon is read on
// every call so a reinstalled file is picked up without a restart.
func Factory(locator ports.ResourceLocator) ports.AnalyzerFactory {
	return func() (ports.SentimentAnalyzer, error) {
		if locator == nil {
			return nil, fmt.Errorf("%w: no resource locator", domain.ErrResourceNotFound)
		}
		rc, err := locator.Open(capability.VaderLexiconResource)
		if err != nil {
			return nil, fmt.Errorf("open lexicon: %w", err)
		}
		defer rc.Close()
		lex, err := ParseLexicon(rc)
		if err != nil {
			return nil, err
		}
		return NewAnalyzer(lex), nil
	}
}
