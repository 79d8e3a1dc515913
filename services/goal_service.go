package services

import (
	"context"

	"nutritrack/models"
)

// Starter goals and challenges for a new account, all at zero progress.
var (
	defaultGoals = []models.Goal{
		{Name: "Drink water (2L)", Target: 8, Unit: "glasses", Color: "bg-blue-500"},
		{Name: "Eat vegetables (300g)", Target: 300, Unit: "g", Color: "bg-green-500"},
		{Name: "Limit sugar (25g)", Target: 25, Unit: "g", Color: "bg-red-500"},
		{Name: "No junk food", Target: 1, Unit: "", Color: "bg-green-500"},
	}
	defaultChallenges = []models.Challenge{
		{Title: "7 Day Protein Challenge", Description: "Reach your daily protein goals for 7 consecutive days", Target: 7, BgColor: "from-blue-500 to-indigo-600"},
		{Title: "Sugar Detox Week", Description: "Stay under 25g of added sugar each day for a week", Target: 7, BgColor: "from-green-500 to-teal-600"},
		{Title: "Hydration Quest", Description: "Drink 2L of water daily for 10 consecutive days", Target: 10, BgColor: "from-purple-500 to-pink-600"},
	}
)

type GoalService struct {
	repo   GoalRepository
	alerts *AlertBus
}

func NewGoalService(repo GoalRepository, alerts *AlertBus) *GoalService {
	return &GoalService{repo: repo, alerts: alerts}
}

type GoalProgressInput struct {
	Current float64 `json:"current" binding:"gte=0"`
}

func (s *GoalService) ListGoals(ctx context.Context, userID uint) ([]models.Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

func (s *GoalService) ListChallenges(ctx context.Context, userID uint) ([]models.Challenge, error) {
	return s.repo.ListChallenges(ctx, userID)
}

// UpdateGoalProgress sets the current value; the goal is completed once
// current reaches the target. Crossing into completed emits an info alert.
func (s *GoalService) UpdateGoalProgress(ctx context.Context, userID, goalID uint, current float64) (models.Goal, error) {
	var justCompleted bool
	g, err := s.repo.UpdateGoal(ctx, userID, goalID, func(g *models.Goal) error {
		was := g.Completed
		g.Current = current
		g.Completed = g.Target > 0 && g.Current >= g.Target
		justCompleted = g.Completed && !was
		return nil
	})
	if err != nil {
		return g, err
	}
	if justCompleted && s.alerts != nil {
		s.alerts.Emit(ctx, userID, "info", "Goal reached: "+g.Name)
	}
	return g, nil
}

func (s *GoalService) seedDefaults(ctx context.Context, userID uint) error {
	if err := s.repo.CreateGoals(ctx, userID, defaultGoals); err != nil {
		return err
	}
	return s.repo.CreateChallenges(ctx, userID, defaultChallenges)
}
