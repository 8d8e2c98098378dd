package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

func TestUpdateCreatesAndGetCopies(t *testing.T) {
	s := NewStore(10, time.Minute)
	id := NewID()

	_, ok := s.Get(id)
	assert.False(t, ok)

	s.Update(id, func(d *Data) {
		d.OriginalText = "hola"
		d.Keywords = []string{"a"}
		d.Sentiment = &domain.SentimentResult{Label: domain.SentimentPositive}
	})

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "hola", got.OriginalText)

	got.Keywords[0] = "mutated"
	got.Sentiment.Label = domain.SentimentNegative
	again, _ := s.Get(id)
	assert.Equal(t, []string{"a"}, again.Keywords)
	assert.Equal(t, domain.SentimentPositive, again.Sentiment.Label)
}

func TestToastsArePoppedOnce(t *testing.T) {
	s := NewStore(10, time.Minute)
	id := NewID()

	s.Flash(id, "success", "done")
	s.Flash(id, "bogus", "normalized")

	toasts := s.PopToasts(id)
	require.Len(t, toasts, 2)
	assert.Equal(t, Toast{Category: "success", Message: "done"}, toasts[0])
	assert.Equal(t, "info", toasts[1].Category)
	assert.Empty(t, s.PopToasts(id))
}

func TestClearAndBoundedSize(t *testing.T) {
	s := NewStore(2, time.Minute)
	for _, id := range []string{"a", "b", "c"} {
		s.Update(id, func(d *Data) { d.OriginalText = id })
	}
	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok, "oldest session should be evicted")

	s.Clear("b")
	_, ok = s.Get("b")
	assert.False(t, ok)
}

func TestSessionsExpire(t *testing.T) {
	s := NewStore(10, 20*time.Millisecond)
	s.Update("x", func(d *Data) { d.OriginalText = "x" })
	assert.Eventually(t, func() bool {
		_, ok := s.Get("x")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
