// Package server exposes the quote pipeline over HTTP.
package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/positivipy/internal/models"
)

//go:embed assets
var assets embed.FS

type QuoteService interface {
	NewQuote(ctx context.Context, lang string) (models.QuoteResult, error)
	Redisplay(ctx context.Context, quote, lang string, translate bool, matches []models.Match) models.QuoteResult
}

type VoteRecorder interface {
	RecordVote(ctx context.Context, quote string, direction models.VoteDirection, at time.Time)
	RecentUpvotes(ctx context.Context) []string
}

type Server struct {
	router *gin.Engine
	quotes QuoteService
	votes  VoteRecorder
	about  template.HTML
	strip  *bluemonday.Policy
	now    func() time.Time
}

func NewServer(quotes QuoteService, votes VoteRecorder) (*Server, error) {
	tmpl, err := template.New("").ParseFS(assets, "assets/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	about, err := renderMarkdown("assets/about.md")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(assets, "assets/static")
	if err != nil {
		return nil, fmt.Errorf("opening static assets: %w", err)
	}

	router := gin.New()
	router.Use(RequestID(), RequestLogger(), Recovery())
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		router: router,
		quotes: quotes,
		votes:  votes,
		about:  about,
		strip:  bluemonday.StrictPolicy(),
		now:    time.Now,
	}
	s.setupRoutes(http.FS(static))
	return s, nil
}

func (s *Server) setupRoutes(static http.FileSystem) {
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.StaticFileFS("/favicon.ico", "favicon.ico", static)
	s.router.StaticFS("/static", static)

	s.router.GET("/", s.Index)
	s.router.GET("/get_quote", s.GetQuote)
	s.router.POST("/get_quote", s.GetQuote)
	s.router.GET("/add_vote_to_db", s.AddVote)
	s.router.POST("/add_vote_to_db", s.AddVote)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// renderMarkdown turns an embedded markdown file into sanitized HTML.
func renderMarkdown(name string) (template.HTML, error) {
	raw, err := assets.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	rendered := blackfriday.Run(raw)
	return template.HTML(bluemonday.UGCPolicy().SanitizeBytes(rendered)), nil
}
