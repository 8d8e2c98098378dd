package tokenize

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/neurosnap/sentences"

	"github.com/kirillkom/textdesk/internal/capability"
	"github.com/kirillkom/textdesk/internal/core/domain"
	"github.com/kirillkom/textdesk/internal/core/ports"
)

var defaultAbbreviations = map[string][]string{
	"english": {"mr", "mrs", "ms", "dr", "prof", "sr", "jr", "st", "vs", "etc", "e.g", "i.e", "inc", "ltd", "co", "corp", "jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec", "no", "fig", "approx"},
	"spanish": {"sr", "sra", "srta", "dr", "dra", "lic", "ing", "prof", "etc", "ej", "p.ej", "pág", "págs", "núm", "aprox", "av", "avda", "dto", "ud", "uds", "vd", "vds", "ee.uu", "s.a", "cía"},
}

var paragraphBreak = regexp.MustCompile(`\n[ \t\r]*\n`)

// SentenceSplitter segments text with a Punkt model.
type SentenceSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func NewSentenceSplitter(training *sentences.Storage) *SentenceSplitter {
	if training == nil {
		training = sentences.NewStorage()
	}
	return &SentenceSplitter{tokenizer: sentences.NewSentenceTokenizer(training)}
}

// AbbreviationTraining is a Punkt model that knows only abbreviation types,
// stored lower-case without the final period.
func AbbreviationTraining(abbreviations []string) *sentences.Storage {
	training := sentences.NewStorage()
	for _, a := range abbreviations {
		if a = strings.Trim(strings.ToLower(strings.TrimSpace(a)), "."); a != "" {
			training.AbbrevTypes.Add(a)
		}
	}
	return training
}

// LoadSentenceSplitter requires the tokenizer data directory. A trained model
// at tokenizers/punkt/<language>.json wins; otherwise the built-in
// abbreviations are extended with tokenizers/punkt/<language>.abbrev.
func LoadSentenceSplitter(locator ports.ResourceLocator, language string) (*SentenceSplitter, error) {
	if locator == nil {
		return nil, fmt.Errorf("%w: no resource locator", domain.ErrResourceNotFound)
	}
	if _, err := locator.Find(capability.PunktResource); err != nil {
		return nil, fmt.Errorf("sentence tokenizer: %w", err)
	}

	base := capability.PunktResource + "/" + language
	raw, err := readResource(locator, base+".json")
	switch {
	case err == nil:
		training, err := sentences.LoadTraining(raw)
		if err != nil {
			return nil, fmt.Errorf("load punkt model %s.json: %w", language, err)
		}
		return NewSentenceSplitter(training), nil
	case !domain.IsKind(err, domain.ErrResourceNotFound):
		return nil, fmt.Errorf("open punkt model: %w", err)
	}

	abbrevs := append([]string(nil), defaultAbbreviations[language]...)
	raw, err = readResource(locator, base+".abbrev")
	switch {
	case err == nil:
		for _, line := range strings.Split(string(raw), "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "#") {
				abbrevs = append(abbrevs, line)
			}
		}
	case !domain.IsKind(err, domain.ErrResourceNotFound):
		return nil, fmt.Errorf("open abbreviations: %w", err)
	}
	return NewSentenceSplitter(AbbreviationTraining(abbrevs)), nil
}

// Split returns sentences in order with whitespace collapsed. Blank lines
// always end a sentence.
func (s *SentenceSplitter) Split(text string) []string {
	var out []string
	for _, paragraph := range paragraphBreak.Split(text, -1) {
		for _, sentence := range s.tokenizer.Tokenize(paragraph) {
			if fields := strings.Fields(sentence.Text); len(fields) > 0 {
				out = append(out, strings.Join(fields, " "))
			}
		}
	}
	return out
}

func readResource(locator ports.ResourceLocator, name string) ([]byte, error) {
	rc, err := locator.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
