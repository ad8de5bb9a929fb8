package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Dan9191/property-service/internal/config"
	"github.com/Dan9191/property-service/internal/integrations/sheets"
	"github.com/Dan9191/property-service/internal/integrations/webhook"
	"github.com/Dan9191/property-service/internal/middleware"
	"github.com/Dan9191/property-service/internal/models"
	"github.com/Dan9191/property-service/internal/report"
	"github.com/Dan9191/property-service/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned when no user is in the request context
	ErrUnauthenticated = errors.New("user ID not found in context")

	// ErrForbidden is returned when a property belongs to another user
	ErrForbidden = errors.New("property does not belong to user")

	// ErrNotConfigured is returned when an optional integration is missing
	ErrNotConfigured = errors.New("integration not configured")
)

// ListingSource supplies property listings
type ListingSource interface {
	Listings(ctx context.Context) ([]models.Listing, error)
}

// Spreadsheet stores flattened analysis rows
type Spreadsheet interface {
	AppendAnalysis(ctx context.Context, in report.Input) error
	Info(ctx context.Context) (*sheets.Info, error)
}

// AddressSubmitter delivers address captures to the intake webhook
type AddressSubmitter interface {
	Send(ctx context.Context, addr models.Address) (*webhook.Result, error)
	Ping(ctx context.Context) *webhook.PingResult
}

// ReportMailer emails rendered reports
type ReportMailer interface {
	SendReport(to string, in report.Input, doc *report.Document) error
}

// Integrations are the optional external collaborators of the service
type Integrations struct {
	Listings ListingSource
	Sheet    Spreadsheet
	Webhook  AddressSubmitter
	Mailer   ReportMailer
}

// Service handles business logic
type Service struct {
	repo     *repository.Repository
	log      *logrus.Logger
	config   *config.Config
	validate *validator.Validate
	ext      Integrations
	now      func() time.Time
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, ext Integrations) *Service {
	return &Service{
		repo:     repo,
		log:      log,
		config:   cfg,
		validate: newValidator(),
		ext:      ext,
		now:      time.Now,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(creds models.Credentials) (*models.User, error) {
	if err := s.validateStruct(creds); err != nil {
		return nil, err
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     creds.Username,
		Email:        creds.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", err
	}

	s.log.Infof("User logged in: %s", user.Email)
	return token, nil
}

func (s *Service) issueToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

func currentUser(ctx context.Context) (int64, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return 0, ErrUnauthenticated
	}
	return userID, nil
}
