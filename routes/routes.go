package routes

import (
	"net/http"

	"nutritrack/controllers"
	"nutritrack/middlewares"
	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs; built once in main.
type Deps struct {
	JWTSecret []byte

	Catalog   *controllers.CatalogController
	Meals     *controllers.MealController
	Habits    *controllers.HabitController
	Goals     *controllers.GoalController
	Settings  *controllers.SettingsController
	Auth      *controllers.AuthController
	Assistant *controllers.AssistantController
	Admin     *controllers.AdminController
	Realtime  *controllers.RealtimeController
	Devices   *controllers.DeviceController
	Dev       *controllers.DevController // nil in production

	AdminCheck *services.SettingsService
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.RequestID())

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.POST("/forgot-password", d.Auth.ForgotPassword)
		auth.POST("/reset-password", d.Auth.ResetPassword)
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(d.JWTSecret))
	{
		api.GET("/me", d.Auth.Me)

		api.GET("/ingredients", d.Catalog.ListIngredients)
		api.GET("/ingredients/:id", d.Catalog.GetIngredient)
		api.POST("/ingredients/recognize", d.Catalog.RecognizeIngredients)
		api.GET("/cooking-methods", d.Catalog.ListCookingMethods)
		api.GET("/premade-meals", d.Catalog.ListPremadeMeals)
		api.GET("/premade-meals/:id", d.Catalog.GetPremadeMeal)
		api.POST("/premade-meals/suggest", d.Catalog.SuggestPremadeMeal)
		api.POST("/calculate-nutrition", d.Catalog.CalculateNutrition)

		api.GET("/meals", d.Meals.List)
		api.POST("/meals", d.Meals.Create)
		api.GET("/meals/summary", d.Meals.Summary)
		api.GET("/meals/:id", d.Meals.Get)
		api.PUT("/meals/:id", d.Meals.Update)
		api.DELETE("/meals/:id", d.Meals.Delete)
		api.POST("/meals/:id/photo", d.Meals.UploadPhoto)

		api.GET("/habits", d.Habits.List)
		api.POST("/habits", d.Habits.Create)
		api.PUT("/habits/:id", d.Habits.Update)
		api.DELETE("/habits/:id", d.Habits.Delete)

		api.GET("/goals", d.Goals.ListGoals)
		api.PUT("/goals/:id", d.Goals.UpdateProgress)
		api.GET("/challenges", d.Goals.ListChallenges)

		api.GET("/settings", d.Settings.Get)
		api.PUT("/settings", d.Settings.Update)
		api.POST("/notifications/toggle", d.Settings.ToggleNotifications)

		ai := api.Group("/ai")
		ai.POST("/generate-response", d.Assistant.GenerateResponse)
		ai.GET("/nutritional-analysis", d.Assistant.NutritionalAnalysis)
		ai.GET("/workout-recommendations", d.Assistant.WorkoutRecommendations)
		ai.GET("/health-insights", d.Assistant.HealthInsights)

		api.GET("/alerts", d.Realtime.ListAlerts)
		api.GET("/realtime/ws", d.Realtime.EventsWS)
		api.POST("/devices", d.Devices.Register)

		api.GET("/admin/check", d.Admin.Check)
		admin := api.Group("/admin")
		admin.Use(middlewares.AdminOnly(d.AdminCheck))
		admin.GET("/users", d.Admin.Users)
		admin.GET("/analytics", d.Admin.Analytics)

		if d.Dev != nil {
			api.POST("/dev/alert", d.Dev.TestAlert)
		}
	}

	return r
}
