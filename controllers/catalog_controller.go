package controllers

import (
	"errors"
	"net/http"

	"nutritrack/models"
	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog     *services.CatalogService
	Matcher     *services.MatcherService
	Recognition *services.RecognitionService
}

func NewCatalogController(catalog *services.CatalogService, matcher *services.MatcherService, rec *services.RecognitionService) *CatalogController {
	return &CatalogController{Catalog: catalog, Matcher: matcher, Recognition: rec}
}

// GET /api/ingredients?q=chicken
func (h *CatalogController) ListIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.SearchIngredients(c.Query("q")))
}

func (h *CatalogController) GetIngredient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ing, found := h.Catalog.FindIngredient(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *CatalogController) ListCookingMethods(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.ListCookingMethods())
}

// GET /api/premade-meals?q=salad
func (h *CatalogController) ListPremadeMeals(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.SearchPremadeMeals(c.Query("q")))
}

func (h *CatalogController) GetPremadeMeal(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	meal, found := h.Catalog.FindPremadeMeal(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

type calculateReq struct {
	Ingredients []models.MealIngredientUsage `json:"ingredients" binding:"omitempty,dive"`
	Detailed    bool                         `json:"detailed"`
}

// POST /api/calculate-nutrition  {"ingredients":[{"ingredient_id":1,"quantity":150,"cooking_method_id":5}]}
func (h *CatalogController) CalculateNutrition(c *gin.Context) {
	var req calculateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Detailed {
		c.JSON(http.StatusOK, h.Catalog.ComputeNutritionDetailed(req.Ingredients))
		return
	}
	c.JSON(http.StatusOK, h.Catalog.ComputeNutrition(req.Ingredients))
}

type suggestReq struct {
	MealName    string   `json:"meal_name"`
	Ingredients []string `json:"ingredients"`
}

// POST /api/premade-meals/suggest  {"meal_name":"Lunch","ingredients":["chicken","rice"]}
func (h *CatalogController) SuggestPremadeMeal(c *gin.Context) {
	var req suggestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, found := h.Matcher.SuggestPremadeMeal(req.MealName, req.Ingredients)
	if !found {
		c.JSON(http.StatusOK, gin.H{"match": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": meal})
}

// POST /api/ingredients/recognize  {"image_base64":"data:image/jpeg;base64,..."}
func (h *CatalogController) RecognizeIngredients(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.Recognition == nil {
		respondError(c, services.ErrFeatureDisabled)
		return
	}
	out, err := h.Recognition.Recognize(c.Request.Context(), req.ImageBase64)
	if err != nil {
		if errors.Is(err, services.ErrFeatureDisabled) || errors.Is(err, services.ErrInvalidImage) {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
