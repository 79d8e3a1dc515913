package controllers

import (
	"context"
	"fmt"
	"net/http"

	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

// PhotoUploader stores a base64 data-URI image and returns its public URL.
type PhotoUploader interface {
	UploadBase64Image(ctx context.Context, base64Data, keyPrefix string) (string, error)
}

type MealController struct {
	Meals  *services.MealService
	Photos PhotoUploader
}

func NewMealController(meals *services.MealService, photos PhotoUploader) *MealController {
	return &MealController{Meals: meals, Photos: photos}
}

// GET /api/meals?date=2024-03-28
func (h *MealController) List(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	meals, err := h.Meals.ListMeals(c.Request.Context(), uid, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *MealController) Get(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	meal, err := h.Meals.GetMeal(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealController) Create(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	var in services.MealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.Meals.CreateMeal(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *MealController) Update(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var p services.MealPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.Meals.UpdateMeal(c.Request.Context(), uid, id, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MealController) Delete(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.Meals.DeleteMeal(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/meals/summary?date=2024-03-28
func (h *MealController) Summary(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	out, err := h.Meals.DailySummary(c.Request.Context(), uid, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/meals/:id/photo  {"image_base64":"data:image/jpeg;base64,..."}
func (h *MealController) UploadPhoto(c *gin.Context) {
	uid, ok := mustUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if h.Photos == nil {
		respondError(c, services.ErrFeatureDisabled)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Meals.GetMeal(ctx, uid, id); err != nil {
		respondError(c, err)
		return
	}
	url, err := h.Photos.UploadBase64Image(ctx, req.ImageBase64, fmt.Sprintf("meals/%d/%d", uid, id))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upload failed", "detail": err.Error()})
		return
	}
	meal, err := h.Meals.AttachPhoto(ctx, uid, id, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}
