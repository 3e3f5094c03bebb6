package service

import (
	"alcyxob/coach-studio/internal/domain"
	"alcyxob/coach-studio/internal/repository"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// TrainerAccount is the single configured trainer login.
type TrainerAccount struct {
	Email    string
	Name     string
	Password string
}

// --- Service Interface ---
type AuthService interface {
	RegisterClient(ctx context.Context, name, email, password string) (*domain.Client, error)
	Login(ctx context.Context, email, password string) (token string, account *domain.Account, err error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
	GetJWTSecret() string
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	mu                  sync.Mutex
	clientRepo          repository.ClientRepository
	sessionRepo         repository.SessionRepository
	trainer             domain.Account
	trainerPasswordHash []byte
	jwtSecret           string
	jwtExpiration       time.Duration
	now                 func() time.Time
}

// NewAuthService creates a new instance of authService.
// The trainer password is hashed once here and never kept in clear.
func NewAuthService(clientRepo repository.ClientRepository, sessionRepo repository.SessionRepository, trainer TrainerAccount, jwtSecret string, jwtExpiration time.Duration) (AuthService, error) {
	if jwtSecret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1 // Default to 1 hour if not set properly
	}

	s := &authService{
		clientRepo:    clientRepo,
		sessionRepo:   sessionRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		now:           time.Now,
	}
	if trainer.Email != "" && trainer.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(trainer.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		s.trainerPasswordHash = hash
		s.trainer = domain.Account{
			ID:    normalizeEmail(trainer.Email),
			Email: normalizeEmail(trainer.Email),
			Name:  trainer.Name,
			Role:  domain.RoleTrainer,
		}
	} else {
		log.Warn("no trainer account configured, trainer login is disabled")
	}
	return s, nil
}

type registerInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterClient stores a new client record. The email is the client's roster ID.
func (s *authService) RegisterClient(ctx context.Context, name, email, password string) (*domain.Client, error) {
	in := registerInput{Name: strings.TrimSpace(name), Email: normalizeEmail(email), Password: password}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Email == s.trainer.Email {
		return nil, ErrUserAlreadyExists
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if normalizeEmail(rec.Email) == in.Email {
			return nil, ErrUserAlreadyExists
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	record := domain.ClientRecord{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.clientRepo.SaveAll(ctx, append(records, record)); err != nil {
		return nil, err
	}
	client := record.ToClient()
	return &client, nil
}

// Login authenticates the trainer or a registered client, marks the session
// as authenticated and returns a signed JWT.
func (s *authService) Login(ctx context.Context, email, password string) (token string, account *domain.Account, err error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, ErrAuthenticationFailed
	}

	account, err = s.authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err = s.generateJWT(account)
	if err != nil {
		log.Errorf("sign token for %s: %s", account.ID, err)
		return "", nil, ErrTokenGeneration
	}

	if err := s.sessionRepo.SetAuthenticated(ctx, true); err != nil {
		return "", nil, err
	}
	return token, account, nil
}

func (s *authService) authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	if s.trainerPasswordHash != nil && email == s.trainer.Email {
		if bcrypt.CompareHashAndPassword(s.trainerPasswordHash, []byte(password)) != nil {
			return nil, ErrAuthenticationFailed
		}
		trainer := s.trainer
		return &trainer, nil
	}

	records, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if normalizeEmail(rec.Email) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
			return nil, ErrAuthenticationFailed
		}
		return &domain.Account{
			ID:    rec.Email,
			Email: rec.Email,
			Name:  rec.Name,
			Role:  domain.RoleClient,
		}, nil
	}
	return nil, ErrAuthenticationFailed
}

// Logout clears the authenticated marker.
func (s *authService) Logout(ctx context.Context) error {
	return s.sessionRepo.SetAuthenticated(ctx, false)
}

func (s *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.sessionRepo.IsAuthenticated(ctx)
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`  // Email of the account
	Role   domain.Role `json:"role"` // Account role
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given account.
func (s *authService) generateJWT(account *domain.Account) (string, error) {
	now := s.now()
	claims := &jwtClaims{
		UserID: account.ID,
		Role:   account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "coach-studio",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
