package api

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/service"
)

// FeedHandler serves syndication documents
type FeedHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(services *service.Services, log zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		services: services,
		log:      log.With().Str("handler", "feed").Logger(),
	}
}

// RSS handles GET /feed.xml
func (h *FeedHandler) RSS(c *gin.Context) {
	feed, err := h.services.Feed.RSS(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Unable to build rss feed")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(feed))
}

// Atom handles GET /feed.atom
func (h *FeedHandler) Atom(c *gin.Context) {
	feed, err := h.services.Feed.Atom(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Unable to build atom feed")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(feed))
}

// Sitemap handles GET /sitemap.xml
func (h *FeedHandler) Sitemap(c *gin.Context) {
	buf := new(bytes.Buffer)
	if err := h.services.Feed.Sitemap(c.Request.Context(), buf); err != nil {
		h.log.Error().Err(err).Msg("Unable to build sitemap")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}
