package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/service"
)

// BlogHandler handles blog post endpoints
type BlogHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(services *service.Services, log zerolog.Logger) *BlogHandler {
	return &BlogHandler{
		services: services,
		log:      log.With().Str("handler", "blog").Logger(),
	}
}

// List handles GET /api/blogs?status=published&limit=N
func (h *BlogHandler) List(c *gin.Context) {
	filter := listFilter(c)
	filter.FeaturedOnly = false
	c.JSON(http.StatusOK, h.services.Blog.List(c.Request.Context(), filter))
}

// Get handles GET /api/blogs/:id, where :id may also be a slug.
// Slug lookups only return published posts.
func (h *BlogHandler) Get(c *gin.Context) {
	post, err := h.services.Blog.Get(c.Request.Context(), c.Param("id"), false)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// HTML handles GET /api/blogs/:id/html
func (h *BlogHandler) HTML(c *gin.Context) {
	html, err := h.services.Feed.PostHTML(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Create handles POST /api/blogs
func (h *BlogHandler) Create(c *gin.Context) {
	var in models.BlogPostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	post, err := h.services.Blog.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// Update handles PUT and PATCH /api/blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	var in models.BlogPostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	post, err := h.services.Blog.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	post, err := h.services.Blog.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Blog post deleted successfully",
		"blog":    post,
	})
}

// Publish handles POST /api/blogs/:id/publish
func (h *BlogHandler) Publish(c *gin.Context) { h.setPublished(c, true) }

// Unpublish handles POST /api/blogs/:id/unpublish
func (h *BlogHandler) Unpublish(c *gin.Context) { h.setPublished(c, false) }

func (h *BlogHandler) setPublished(c *gin.Context, published bool) {
	post, err := h.services.Blog.SetPublished(c.Request.Context(), c.Param("id"), published)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
