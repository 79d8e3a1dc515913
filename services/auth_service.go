package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"nutritrack/models"
	"nutritrack/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrInvalidResetToken = errors.New("invalid or expired token")

const resetTokenTTL = 15 * time.Minute

// Mailer sends password reset codes.
type Mailer interface {
	SendResetEmail(ctx context.Context, to, token string) error
}

type AuthService struct {
	users       UserRepository
	settings    *SettingsService
	goals       *GoalService
	mailer      Mailer
	jwtSecret   []byte
	adminEmails map[string]bool
}

func NewAuthService(users UserRepository, settings *SettingsService, goals *GoalService, mailer Mailer, jwtSecret []byte, adminEmails []string) *AuthService {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = true
		}
	}
	return &AuthService{
		users:       users,
		settings:    settings,
		goals:       goals,
		mailer:      mailer,
		jwtSecret:   jwtSecret,
		adminEmails: admins,
	}
}

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates the account and its starting data: default settings
// (admin when the email is listed in ADMIN_EMAILS) and the starter goals and
// challenges.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	user, err := s.users.CreateUser(ctx, models.User{
		Username:  strings.TrimSpace(in.Username),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Password:  hashed,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return models.User{}, err
	}

	if err := s.settings.initSettings(ctx, user.ID, s.adminEmails[user.Email]); err != nil {
		return user, fmt.Errorf("init settings: %w", err)
	}
	if err := s.goals.seedDefaults(ctx, user.ID); err != nil {
		return user, fmt.Errorf("seed goals: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, in.Email)
	if errors.Is(err, models.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !utils.CheckPasswordHash(in.Password, user.Password) {
		return "", ErrInvalidCredentials
	}
	return utils.GenerateJWT(s.jwtSecret, user.ID, user.Email)
}

// ForgotPassword stores a 6-character reset code and e-mails it. Unknown
// emails are not reported to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if s.mailer == nil {
		return ErrFeatureDisabled
	}

	token := utils.GenerateRandomToken(6)
	if _, err := s.users.UpdateUser(ctx, user.ID, func(u *models.User) error {
		u.ResetToken = token
		u.ResetTokenExp = time.Now().Add(resetTokenTTL)
		return nil
	}); err != nil {
		return err
	}

	if err := s.mailer.SendResetEmail(ctx, user.Email, token); err != nil {
		log.Printf("reset email user=%d: %v", user.ID, err)
		return err
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.FindUserByResetToken(ctx, token)
	if errors.Is(err, models.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = s.users.UpdateUser(ctx, user.ID, func(u *models.User) error {
		// re-checked under the user lock so a token is only used once
		if u.ResetToken != token || time.Now().After(u.ResetTokenExp) {
			return ErrInvalidResetToken
		}
		u.Password = hashed
		u.ResetToken = ""
		u.ResetTokenExp = time.Time{}
		return nil
	})
	return err
}

func (s *AuthService) Me(ctx context.Context, userID uint) (models.User, error) {
	return s.users.GetUser(ctx, userID)
}
