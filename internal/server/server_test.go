package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/positivipy/internal/models"
)

type fakeQuotes struct {
	result models.QuoteResult
	err    error
	panic  bool

	newLang       string
	redisplayed   string
	redisplayLang string
	translate     bool
	matches       []models.Match
}

func (f *fakeQuotes) NewQuote(_ context.Context, lang string) (models.QuoteResult, error) {
	if f.panic {
		panic("boom")
	}
	f.newLang = lang
	return f.result, f.err
}

func (f *fakeQuotes) Redisplay(_ context.Context, quote, lang string, translate bool, matches []models.Match) models.QuoteResult {
	f.redisplayed = quote
	f.redisplayLang = lang
	f.translate = translate
	f.matches = matches
	return models.QuoteResult{Text: quote, Language: lang, Matches: matches}
}

type fakeVotes struct {
	votes   []models.Vote
	upvotes []string
}

func (f *fakeVotes) RecordVote(_ context.Context, quote string, direction models.VoteDirection, at time.Time) {
	f.votes = append(f.votes, models.Vote{Quote: quote, Direction: direction, Date: at})
}

func (f *fakeVotes) RecentUpvotes(context.Context) []string {
	return f.upvotes
}

func newTestServer(t *testing.T, q *fakeQuotes, v *fakeVotes) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := NewServer(q, v)
	require.NoError(t, err)
	return s
}

// attrEscape mirrors how html/template writes a URL into an attribute.
var attrEscape = strings.NewReplacer("&", "&amp;", "+", "&#43;").Replace

func do(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func sampleResult() models.QuoteResult {
	return models.QuoteResult{
		Text:     "Be kind.",
		Language: "en",
		Matches: []models.Match{
			{Author: "Alice", Quote: "Be kind.", Ratio: 100, Scored: true},
			models.PlaceholderMatch(),
		},
		Sentiment: models.Sentiment{Score: 0.53, Label: "positive"},
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, &fakeQuotes{}, &fakeVotes{upvotes: []string{"Stay strong."}})

	rec := do(s, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "start positivipy")
	assert.Contains(t, body, "<td>zh-TW</td>")
	assert.Contains(t, body, "Stay strong.")
	assert.Contains(t, body, "positivipy API")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestGetQuote_New(t *testing.T) {
	q := &fakeQuotes{result: sampleResult()}
	s := newTestServer(t, q, &fakeVotes{})

	rec := do(s, http.MethodPost, "/get_quote?l=en&q=new&t=no")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Equal(t, "en", q.newLang)
	assert.Contains(t, body, "<h1>Be kind.</h1>")
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "Translate (es)")

	translate := url.Values{"l": {"es"}, "t": {"yes"}, "q": {"Be kind."}, "one": {"100"}, "two": {""}, "a": {"Alice,Unknown"}}
	assert.Contains(t, body, attrEscape("/get_quote?"+translate.Encode()))
	assert.Contains(t, body, `action="/add_vote_to_db?q=Be&#43;kind.&amp;v=up"`)
}

func TestGetQuote_DefaultsToNewQuote(t *testing.T) {
	q := &fakeQuotes{result: sampleResult()}
	s := newTestServer(t, q, &fakeVotes{})

	rec := do(s, http.MethodGet, "/get_quote")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", q.newLang)
	assert.Empty(t, q.redisplayed)
}

func TestGetQuote_Redisplay(t *testing.T) {
	q := &fakeQuotes{}
	s := newTestServer(t, q, &fakeVotes{})

	target := "/get_quote?" + url.Values{
		"l": {"es"}, "t": {"yes"}, "q": {"Be <b>kind</b>."}, "one": {"100"}, "two": {"40"}, "a": {"Alice,Bob"},
	}.Encode()
	rec := do(s, http.MethodGet, target)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "Be kind.", q.redisplayed)
	assert.Equal(t, "es", q.redisplayLang)
	assert.True(t, q.translate)
	require.Len(t, q.matches, 2)
	assert.Equal(t, "Bob", q.matches[1].Author)
	assert.Equal(t, 40, q.matches[1].Ratio)
	assert.Contains(t, rec.Body.String(), "Translate (en)")
}

func TestGetQuote_ErrorRendersApology(t *testing.T) {
	q := &fakeQuotes{err: models.NewError(models.FetchError, "corpus.Load", errors.New("404"))}
	s := newTestServer(t, q, &fakeVotes{})

	rec := do(s, http.MethodGet, "/get_quote?q=new")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Apology, rec.Body.String())
}

func TestGetQuote_PanicRendersApology(t *testing.T) {
	s := newTestServer(t, &fakeQuotes{panic: true}, &fakeVotes{})

	rec := do(s, http.MethodGet, "/get_quote?q=new")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Apology, rec.Body.String())
}

func TestAddVote(t *testing.T) {
	v := &fakeVotes{}
	s := newTestServer(t, &fakeQuotes{}, v)
	fixed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	rec := do(s, http.MethodPost, "/add_vote_to_db?q=Be+kind.&v=up")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/get_quote", rec.Header().Get("Location"))
	assert.Equal(t, []models.Vote{{Quote: "Be kind.", Direction: models.VoteUp, Date: fixed}}, v.votes)
}

func TestAddVote_InvalidIsNotRecorded(t *testing.T) {
	v := &fakeVotes{}
	s := newTestServer(t, &fakeQuotes{}, v)

	for _, target := range []string{"/add_vote_to_db?q=Be+kind.&v=sideways", "/add_vote_to_db?v=down"} {
		rec := do(s, http.MethodGet, target)
		assert.Equal(t, http.StatusFound, rec.Code)
	}
	assert.Empty(t, v.votes)
}

func TestAmbientRoutes(t *testing.T) {
	s := newTestServer(t, &fakeQuotes{}, &fakeVotes{})

	ping := do(s, http.MethodGet, "/ping")
	assert.Equal(t, http.StatusOK, ping.Code)
	assert.JSONEq(t, `{"message":"pong"}`, ping.Body.String())

	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/favicon.ico").Code)

	css := do(s, http.MethodGet, "/static/styles/styles.css")
	assert.Equal(t, http.StatusOK, css.Code)
	assert.Contains(t, css.Body.String(), "meter")
}

func TestRequestID_PropagatesValidHeader(t *testing.T) {
	s := newTestServer(t, &fakeQuotes{}, &fakeVotes{})
	id := "4f7c5a52-3f7e-4a51-9c0e-6f0d1a7b2c3d"

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, id)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, id, rec.Header().Get(requestIDHeader))
}

func TestLanguages(t *testing.T) {
	assert.Len(t, Languages, 55)
	seen := map[string]bool{}
	for _, l := range Languages {
		assert.False(t, seen[l.Code], "duplicate code %s", l.Code)
		seen[l.Code] = true
	}
	assert.Contains(t, Languages, RandomLanguage())
}
