package controllers

import (
	"net/http"

	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

type AssistantController struct {
	Assistant *services.AssistantService
}

func NewAssistantController(a *services.AssistantService) *AssistantController {
	return &AssistantController{Assistant: a}
}

// POST /api/ai/generate-response  {"message":"what should I eat?"}
func (h *AssistantController) GenerateResponse(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.Assistant.GenerateResponse(c.Request.Context(), uid, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AssistantController) NutritionalAnalysis(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	out, err := h.Assistant.NutritionalAnalysis(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AssistantController) WorkoutRecommendations(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Assistant.WorkoutRecommendations(c.Request.Context(), uid))
}

func (h *AssistantController) HealthInsights(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	out, err := h.Assistant.HealthInsights(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
