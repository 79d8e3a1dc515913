package controllers

import (
	"net/http"

	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

type HabitController struct {
	Habits *services.HabitService
}

func NewHabitController(habits *services.HabitService) *HabitController {
	return &HabitController{Habits: habits}
}

func (h *HabitController) List(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	habits, err := h.Habits.ListHabits(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

func (h *HabitController) Create(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var in services.HabitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	habit, err := h.Habits.CreateHabit(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

func (h *HabitController) Update(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var p services.HabitPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	habit, err := h.Habits.UpdateHabit(c.Request.Context(), uid, id, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (h *HabitController) Delete(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.Habits.DeleteHabit(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Habit not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
