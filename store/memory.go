package store

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"nutritrack/models"
)

// MemoryStore keeps every per-user collection in process memory.
//
// Collections are copy-on-write: readers take a snapshot under mu, writers
// hold the user's key lock for the whole read-modify-write and swap the new
// slice in under mu. Two concurrent edits of one user's meals therefore
// cannot lose each other's update.
type MemoryStore struct {
	mu    sync.RWMutex
	users *KeyedMutex[uint]

	userRows   map[uint]models.User
	meals      map[uint][]models.UserMeal
	habits     map[uint][]models.Habit
	goals      map[uint][]models.Goal
	challenges map[uint][]models.Challenge
	settings   map[uint]models.UserSettings
	alerts     map[uint][]models.Alert
	devices    map[uint][]models.UserDevice

	nextUser, nextMeal, nextHabit, nextGoal, nextChallenge, nextAlert, nextDevice uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      NewKeyedMutex[uint](),
		userRows:   make(map[uint]models.User),
		meals:      make(map[uint][]models.UserMeal),
		habits:     make(map[uint][]models.Habit),
		goals:      make(map[uint][]models.Goal),
		challenges: make(map[uint][]models.Challenge),
		settings:   make(map[uint]models.UserSettings),
		alerts:     make(map[uint][]models.Alert),
		devices:    make(map[uint][]models.UserDevice),
	}
}

func (s *MemoryStore) nextID(counter *uint) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	*counter++
	return *counter
}

// ---------- meals ----------

func (s *MemoryStore) ListMeals(_ context.Context, userID uint) ([]models.UserMeal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMeals(s.meals[userID]), nil
}

func (s *MemoryStore) GetMeal(_ context.Context, userID, mealID uint) (models.UserMeal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.meals[userID] {
		if m.ID == mealID {
			return cloneMeal(m), nil
		}
	}
	return models.UserMeal{}, models.ErrNotFound
}

func (s *MemoryStore) CreateMeal(_ context.Context, meal models.UserMeal) (models.UserMeal, error) {
	unlock := s.users.Lock(meal.UserID)
	defer unlock()

	now := time.Now()
	meal.ID = s.nextID(&s.nextMeal)
	meal.CreatedAt, meal.UpdatedAt = now, now
	meal = cloneMeal(meal)

	s.mu.Lock()
	s.meals[meal.UserID] = append(cloneMeals(s.meals[meal.UserID]), meal)
	s.mu.Unlock()
	return cloneMeal(meal), nil
}

func (s *MemoryStore) UpdateMeal(_ context.Context, userID, mealID uint, mutate func(*models.UserMeal) error) (models.UserMeal, error) {
	unlock := s.users.Lock(userID)
	defer unlock()

	s.mu.RLock()
	meals := cloneMeals(s.meals[userID])
	s.mu.RUnlock()

	i := slices.IndexFunc(meals, func(m models.UserMeal) bool { return m.ID == mealID })
	if i < 0 {
		return models.UserMeal{}, models.ErrNotFound
	}
	updated := meals[i]
	if err := mutate(&updated); err != nil {
		return models.UserMeal{}, err
	}
	updated.ID, updated.UserID = mealID, userID
	updated.UpdatedAt = time.Now()
	meals[i] = cloneMeal(updated)

	s.mu.Lock()
	s.meals[userID] = meals
	s.mu.Unlock()
	return cloneMeal(updated), nil
}

func (s *MemoryStore) DeleteMeal(_ context.Context, userID, mealID uint) (bool, error) {
	unlock := s.users.Lock(userID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	meals := s.meals[userID]
	i := slices.IndexFunc(meals, func(m models.UserMeal) bool { return m.ID == mealID })
	if i < 0 {
		return false, nil
	}
	s.meals[userID] = slices.Delete(slices.Clone(meals), i, i+1)
	return true, nil
}

func cloneMeal(m models.UserMeal) models.UserMeal {
	m.Ingredients = slices.Clone(m.Ingredients)
	return m
}

func cloneMeals(in []models.UserMeal) []models.UserMeal {
	out := make([]models.UserMeal, len(in))
	for i, m := range in {
		out[i] = cloneMeal(m)
	}
	return out
}

// ---------- habits ----------

func (s *MemoryStore) ListHabits(_ context.Context, userID uint) ([]models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Habit{}, s.habits[userID]...), nil
}

func (s *MemoryStore) CreateHabit(_ context.Context, habit models.Habit) (models.Habit, error) {
	unlock := s.users.Lock(habit.UserID)
	defer unlock()

	habit.ID = s.nextID(&s.nextHabit)
	s.mu.Lock()
	s.habits[habit.UserID] = append(slices.Clone(s.habits[habit.UserID]), habit)
	s.mu.Unlock()
	return habit, nil
}

func (s *MemoryStore) UpdateHabit(_ context.Context, userID, habitID uint, mutate func(*models.Habit) error) (models.Habit, error) {
	unlock := s.users.Lock(userID)
	defer unlock()

	s.mu.RLock()
	habits := slices.Clone(s.habits[userID])
	s.mu.RUnlock()

	i := slices.IndexFunc(habits, func(h models.Habit) bool { return h.ID == habitID })
	if i < 0 {
		return models.Habit{}, models.ErrNotFound
	}
	updated := habits[i]
	if err := mutate(&updated); err != nil {
		return models.Habit{}, err
	}
	updated.ID, updated.UserID = habitID, userID
	habits[i] = updated

	s.mu.Lock()
	s.habits[userID] = habits
	s.mu.Unlock()
	return updated, nil
}

func (s *MemoryStore) DeleteHabit(_ context.Context, userID, habitID uint) (bool, error) {
	unlock := s.users.Lock(userID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	habits := s.habits[userID]
	i := slices.IndexFunc(habits, func(h models.Habit) bool { return h.ID == habitID })
	if i < 0 {
		return false, nil
	}
	s.habits[userID] = slices.Delete(slices.Clone(habits), i, i+1)
	return true, nil
}

// ---------- goals & challenges ----------

func (s *MemoryStore) ListGoals(_ context.Context, userID uint) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Goal{}, s.goals[userID]...), nil
}

func (s *MemoryStore) CreateGoals(_ context.Context, userID uint, goals []models.Goal) error {
	unlock := s.users.Lock(userID)
	defer unlock()

	added := make([]models.Goal, len(goals))
	for i, g := range goals {
		g.ID = s.nextID(&s.nextGoal)
		g.UserID = userID
		added[i] = g
	}
	s.mu.Lock()
	s.goals[userID] = append(slices.Clone(s.goals[userID]), added...)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) UpdateGoal(_ context.Context, userID, goalID uint, mutate func(*models.Goal) error) (models.Goal, error) {
	unlock := s.users.Lock(userID)
	defer unlock()

	s.mu.RLock()
	goals := slices.Clone(s.goals[userID])
	s.mu.RUnlock()

	i := slices.IndexFunc(goals, func(g models.Goal) bool { return g.ID == goalID })
	if i < 0 {
		return models.Goal{}, models.ErrNotFound
	}
	updated := goals[i]
	if err := mutate(&updated); err != nil {
		return models.Goal{}, err
	}
	updated.ID, updated.UserID = goalID, userID
	goals[i] = updated

	s.mu.Lock()
	s.goals[userID] = goals
	s.mu.Unlock()
	return updated, nil
}

func (s *MemoryStore) ListChallenges(_ context.Context, userID uint) ([]models.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Challenge{}, s.challenges[userID]...), nil
}

func (s *MemoryStore) CreateChallenges(_ context.Context, userID uint, challenges []models.Challenge) error {
	unlock := s.users.Lock(userID)
	defer unlock()

	added := make([]models.Challenge, len(challenges))
	for i, c := range challenges {
		c.ID = s.nextID(&s.nextChallenge)
		c.UserID = userID
		added[i] = c
	}
	s.mu.Lock()
	s.challenges[userID] = append(slices.Clone(s.challenges[userID]), added...)
	s.mu.Unlock()
	return nil
}

// ---------- settings ----------

func (s *MemoryStore) GetSettings(_ context.Context, userID uint) (models.UserSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.settings[userID]
	if !ok {
		return models.UserSettings{}, models.ErrNotFound
	}
	return st, nil
}

func (s *MemoryStore) UpdateSettings(_ context.Context, userID uint, defaults models.UserSettings, mutate func(*models.UserSettings)) (models.UserSettings, error) {
	unlock := s.users.Lock(userID)
	defer unlock()

	s.mu.RLock()
	st, ok := s.settings[userID]
	s.mu.RUnlock()
	if !ok {
		st = defaults
	}
	mutate(&st)
	st.UserID = userID

	s.mu.Lock()
	s.settings[userID] = st
	s.mu.Unlock()
	return st, nil
}

// ---------- users ----------

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.userRows {
		if strings.EqualFold(u.Email, user.Email) || strings.EqualFold(u.Username, user.Username) {
			return models.User{}, models.ErrConflict
		}
	}
	s.nextUser++
	user.ID = s.nextUser
	user.CreatedAt = time.Now()
	s.userRows[user.ID] = user
	return user, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id uint) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.userRows[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *MemoryStore) FindUserByResetToken(_ context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, models.ErrNotFound
	}
	return s.findUser(func(u models.User) bool { return u.ResetToken == token })
}

func (s *MemoryStore) findUser(match func(models.User) bool) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.userRows {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (s *MemoryStore) UpdateUser(_ context.Context, id uint, mutate func(*models.User) error) (models.User, error) {
	unlock := s.users.Lock(id)
	defer unlock()

	s.mu.RLock()
	u, ok := s.userRows[id]
	s.mu.RUnlock()
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	if err := mutate(&u); err != nil {
		return models.User{}, err
	}
	u.ID = id

	s.mu.Lock()
	s.userRows[id] = u
	s.mu.Unlock()
	return u, nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.userRows))
	for _, u := range s.userRows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------- alerts ----------

func (s *MemoryStore) CreateAlert(_ context.Context, alert models.Alert) (models.Alert, error) {
	alert.ID = s.nextID(&s.nextAlert)
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}
	s.mu.Lock()
	s.alerts[alert.UserID] = append(s.alerts[alert.UserID], alert)
	s.mu.Unlock()
	return alert, nil
}

// ListAlerts returns newest first.
func (s *MemoryStore) ListAlerts(_ context.Context, userID uint) ([]models.Alert, error) {
	s.mu.RLock()
	out := append([]models.Alert{}, s.alerts[userID]...)
	s.mu.RUnlock()
	slices.Reverse(out)
	return out, nil
}

// ---------- devices ----------

func (s *MemoryStore) UpsertDevice(_ context.Context, device models.UserDevice) (models.UserDevice, error) {
	unlock := s.users.Lock(device.UserID)
	defer unlock()

	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	devices := slices.Clone(s.devices[device.UserID])
	for i, d := range devices {
		if d.TokenHash == device.TokenHash {
			d.EndpointARN = device.EndpointARN
			d.Platform = device.Platform
			d.UpdatedAt = now
			devices[i] = d
			s.devices[device.UserID] = devices
			return d, nil
		}
	}
	s.nextDevice++
	device.ID = s.nextDevice
	device.Enabled = true
	device.CreatedAt, device.UpdatedAt = now, now
	s.devices[device.UserID] = append(devices, device)
	return device, nil
}

func (s *MemoryStore) ListEnabledDevices(_ context.Context, userID uint) ([]models.UserDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.UserDevice{}
	for _, d := range s.devices[userID] {
		if d.Enabled {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *MemoryStore) SetDevicesEnabled(_ context.Context, userID uint, enabled bool) error {
	unlock := s.users.Lock(userID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	devices := slices.Clone(s.devices[userID])
	for i := range devices {
		devices[i].Enabled = enabled
	}
	s.devices[userID] = devices
	return nil
}
