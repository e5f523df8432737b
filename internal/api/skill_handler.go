package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/service"
)

// SkillHandler handles skill endpoints
type SkillHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSkillHandler creates a new SkillHandler
func NewSkillHandler(services *service.Services, log zerolog.Logger) *SkillHandler {
	return &SkillHandler{
		services: services,
		log:      log.With().Str("handler", "skill").Logger(),
	}
}

// List handles GET /api/skills
func (h *SkillHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Skill.List(c.Request.Context()))
}

// Get handles GET /api/skills/:id
func (h *SkillHandler) Get(c *gin.Context) {
	skill, err := h.services.Skill.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

// Create handles POST /api/skills
func (h *SkillHandler) Create(c *gin.Context) {
	var in models.SkillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	skill, err := h.services.Skill.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, skill)
}

// Update handles PUT and PATCH /api/skills/:id
func (h *SkillHandler) Update(c *gin.Context) {
	var in models.SkillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	skill, err := h.services.Skill.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

// Delete handles DELETE /api/skills/:id
func (h *SkillHandler) Delete(c *gin.Context) {
	skill, err := h.services.Skill.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Skill deleted successfully",
		"skill":   skill,
	})
}
