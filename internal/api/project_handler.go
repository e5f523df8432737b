package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/service"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(services *service.Services, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		services: services,
		log:      log.With().Str("handler", "project").Logger(),
	}
}

// List handles GET /api/projects?status=published&featured=true&limit=N
func (h *ProjectHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Project.List(c.Request.Context(), listFilter(c)))
}

// Get handles GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.services.Project.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Create handles POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var in models.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	project, err := h.services.Project.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// Update handles PUT and PATCH /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var in models.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	project, err := h.services.Project.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	project, err := h.services.Project.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
		"project": project,
	})
}

// Publish handles POST /api/projects/:id/publish
func (h *ProjectHandler) Publish(c *gin.Context) { h.setPublished(c, true) }

// Unpublish handles POST /api/projects/:id/unpublish
func (h *ProjectHandler) Unpublish(c *gin.Context) { h.setPublished(c, false) }

func (h *ProjectHandler) setPublished(c *gin.Context, published bool) {
	project, err := h.services.Project.SetPublished(c.Request.Context(), c.Param("id"), published)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
