package server

import (
	"html"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/positivipy/internal/models"
	"github.com/spacesedan/positivipy/internal/monitoring"
	"github.com/spacesedan/positivipy/internal/quotes"
	"github.com/spacesedan/positivipy/internal/translation"
)

const newQuoteParam = "new"

type footerData struct {
	Languages []Language
	Example   Language
	About     template.HTML
}

type quotePage struct {
	footerData
	Quote        models.QuoteResult
	AltLang      string
	AnotherURL   string
	TranslateURL string
	UpvoteURL    string
	DownvoteURL  string
}

type indexPage struct {
	footerData
	StartURL string
	Upvotes  []string
}

func (s *Server) footer() footerData {
	return footerData{Languages: Languages, Example: RandomLanguage(), About: s.about}
}

func (s *Server) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", indexPage{
		footerData: s.footer(),
		StartURL:   quoteURL(url.Values{"l": {translation.DefaultLanguage}, "q": {newQuoteParam}, "t": {"no"}}),
		Upvotes:    s.votes.RecentUpvotes(c.Request.Context()),
	})
}

// GetQuote serves a new quote for q=new (or no q) and otherwise redisplays q
// with the attributions carried in the query.
func (s *Server) GetQuote(c *gin.Context) {
	ctx := c.Request.Context()
	q := s.sanitize(c.Query("q"))
	lang := s.sanitize(c.DefaultQuery("l", translation.DefaultLanguage))
	if lang == "" {
		lang = translation.DefaultLanguage
	}

	var result models.QuoteResult
	if q == "" || q == newQuoteParam || strings.EqualFold(q, "none") {
		var err error
		result, err = s.quotes.NewQuote(ctx, lang)
		if err != nil {
			logger(c).Error("[Server] Failed to build quote", slog.String("error", err.Error()))
			c.String(http.StatusOK, Apology)
			return
		}
	} else {
		matches := quotes.MatchesFromQuery(s.sanitize(c.Query("a")), c.Query("one"), c.Query("two"))
		result = s.quotes.Redisplay(ctx, q, lang, c.Query("t") == "yes", matches)
	}

	alt := translation.AlternateLanguage(lang)
	page := quotePage{
		footerData: s.footer(),
		Quote:      result,
		AltLang:    alt,
		AnotherURL: quoteURL(url.Values{"l": {lang}, "q": {newQuoteParam}}),
		TranslateURL: quoteURL(url.Values{
			"l":   {alt},
			"t":   {"yes"},
			"q":   {result.Text},
			"one": {ratioParam(result.Matches, 0)},
			"two": {ratioParam(result.Matches, 1)},
			"a":   {quotes.AuthorsParam(result.Matches)},
		}),
		UpvoteURL:   voteURL(result.Text, models.VoteUp),
		DownvoteURL: voteURL(result.Text, models.VoteDown),
	}
	c.HTML(http.StatusOK, "quote.html", page)
}

func (s *Server) AddVote(c *gin.Context) {
	quote := s.sanitize(c.Query("q"))
	direction, err := models.ParseVoteDirection(c.Query("v"))
	switch {
	case err != nil:
		logger(c).Warn("[Server] Ignoring vote", slog.String("error", err.Error()))
	case quote == "":
		logger(c).Warn("[Server] Ignoring vote without a quote")
	default:
		s.votes.RecordVote(c.Request.Context(), quote, direction, s.now())
		monitoring.VotesRecorded.WithLabelValues(string(direction)).Inc()
	}
	c.Redirect(http.StatusFound, "/get_quote")
}

// sanitize drops markup from user input; output escaping is left to the
// templates.
func (s *Server) sanitize(raw string) string {
	return strings.TrimSpace(html.UnescapeString(s.strip.Sanitize(raw)))
}

func quoteURL(v url.Values) string {
	return "/get_quote?" + v.Encode()
}

func voteURL(quote string, direction models.VoteDirection) string {
	return "/add_vote_to_db?" + url.Values{"q": {quote}, "v": {string(direction)}}.Encode()
}

func ratioParam(matches []models.Match, i int) string {
	if i >= len(matches) {
		return ""
	}
	return matches[i].RatioLabel()
}
