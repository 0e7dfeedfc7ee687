package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/minhlp/rental-service/internal/config"
	"github.com/minhlp/rental-service/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Notifier sends best-effort email notifications. Delivery failures are
// logged, never propagated.
type Notifier interface {
	SendDepositReceipt(to string, deposit *models.Deposit) error
	SendSnapshotReport(to string, date time.Time, summary SnapshotSummary) error
}

// Service handles business logic
type Service struct {
	repo     Store
	cashbook *CashbookService
	mailer   Notifier
	log      *logrus.Logger
	config   *config.Config
}

// NewService initializes a new service
func NewService(repo Store, cashbook *CashbookService, mailer Notifier, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, cashbook: cashbook, mailer: mailer, log: log, config: cfg}
}

// Cashbook returns the cashbook engine
func (s *Service) Cashbook() *CashbookService {
	return s.cashbook
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, phone, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Phone:        phone,
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
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// GetProfile returns the authenticated user's profile
func (s *Service) GetProfile(ctx context.Context) (*models.User, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindUserByID(userID)
}

// userIDFromContext extracts the authenticated user id set by the auth
// middleware.
func userIDFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
