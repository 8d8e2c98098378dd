// Package session keeps per-browser state on the server: the last texts
// worked on, the last results and pending toasts. Entries are bounded in
// number and expire after a period of inactivity.
package session

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

var toastCategories = []string{"success", "danger", "warning", "info", "primary", "secondary", "light", "dark"}

type Toast struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type Data struct {
	OriginalText  string
	HumanizedText string
	Sentiment     *domain.SentimentResult

	PDFName          string
	PDFSummary       string
	PDFSummaryLang   string
	PDFSentences     int
	PDFSummaryFailed bool

	ScreenshotFile  string
	ScreenshotMTime int64

	Keywords []string
	Toasts   []Toast
}

func (d Data) clone() Data {
	out := d
	out.Keywords = slices.Clone(d.Keywords)
	out.Toasts = slices.Clone(d.Toasts)
	if d.Sentiment != nil {
		s := *d.Sentiment
		out.Sentiment = &s
	}
	return out
}

type Store struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, Data]
}

func NewStore(maxEntries int, ttl time.Duration) *Store {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Store{cache: expirable.NewLRU[string, Data](maxEntries, nil, ttl)}
}

func NewID() string {
	return uuid.NewString()
}

// Get returns a copy of the session data.
func (s *Store) Get(id string) (Data, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.cache.Get(id)
	if !ok {
		return Data{}, false
	}
	return d.clone(), true
}

// Update applies fn to the session, creating it when absent.
func (s *Store) Update(id string, fn func(*Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, _ := s.cache.Get(id)
	d = d.clone()
	fn(&d)
	s.cache.Add(id, d)
}

func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(id)
}

// Flash queues a toast. Unknown categories become "info".
func (s *Store) Flash(id, category, message string) {
	if !slices.Contains(toastCategories, category) {
		category = "info"
	}
	s.Update(id, func(d *Data) {
		d.Toasts = append(d.Toasts, Toast{Category: category, Message: message})
	})
}

// PopToasts returns and removes the pending toasts.
func (s *Store) PopToasts(id string) []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.cache.Get(id)
	if !ok || len(d.Toasts) == 0 {
		return nil
	}
	toasts := d.Toasts
	d.Toasts = nil
	s.cache.Add(id, d)
	return toasts
}

func (s *Store) Len() int {
	return s.cache.Len()
}
