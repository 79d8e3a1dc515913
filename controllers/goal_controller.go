package controllers

import (
	"net/http"

	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	Goals *services.GoalService
}

func NewGoalController(goals *services.GoalService) *GoalController {
	return &GoalController{Goals: goals}
}

func (h *GoalController) ListGoals(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	goals, err := h.Goals.ListGoals(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// PUT /api/goals/:id  {"current": 5}
func (h *GoalController) UpdateProgress(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in services.GoalProgressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	goal, err := h.Goals.UpdateGoalProgress(c.Request.Context(), uid, id, in.Current)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalController) ListChallenges(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	challenges, err := h.Goals.ListChallenges(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenges)
}
