package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/purposeful/purposeful-backend/internal/config"
	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	appUserRepo     repository.AppUserRepository
	regularUserRepo repository.RegularUserRepository
	cfg             *config.Config
}

func NewAuthService(appUserRepo repository.AppUserRepository, regularUserRepo repository.RegularUserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		appUserRepo:     appUserRepo,
		regularUserRepo: regularUserRepo,
		cfg:             cfg,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	// Authorities defaults to User when empty
	Authorities []domain.Authority
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User        *domain.AppUser
	RegularUser *domain.RegularUser
	AccessToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, domain.BadRequest(domain.MsgEmptyEmailShort)
	}
	if input.Password == "" {
		return nil, domain.BadRequest(domain.MsgEmptyPassword)
	}

	existing, err := s.appUserRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.BadRequest(domain.MsgEmailTaken)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	authorities := input.Authorities
	if len(authorities) == 0 {
		authorities = []domain.Authority{domain.AuthorityUser}
	}

	user := &domain.AppUser{
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: string(hashedPassword),
	}
	user.SetAuthorities(authorities...)

	if err := s.appUserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	regular := &domain.RegularUser{AppUserID: user.ID, AppUser: user}
	if err := s.regularUserRepo.Create(ctx, regular); err != nil {
		return nil, fmt.Errorf("failed to create profile for %s: %w", email, err)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, RegularUser: regular, AccessToken: token}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.appUserRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.Unauthorized(domain.MsgInvalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.Unauthorized(domain.MsgInvalidCredentials)
	}

	regular, err := s.regularUserRepo.GetByAppUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, RegularUser: regular, AccessToken: token}, nil
}

func (s *AuthService) generateAccessToken(user *domain.AppUser) (string, error) {
	authorities := user.AuthorityList()
	names := make([]string, len(authorities))
	for i, a := range authorities {
		names[i] = a.String()
	}

	claims := jwt.MapClaims{
		"sub":         user.ID,
		"email":       user.Email,
		"authorities": names,
		"exp":         time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, errors.New("invalid token")
}

// CallerFromToken validates the token and builds the identity it carries
func (s *AuthService) CallerFromToken(tokenString string) (domain.Caller, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return domain.Caller{}, err
	}

	sub, _ := (*claims)["sub"].(string)
	email, _ := (*claims)["email"].(string)
	if sub == "" || email == "" {
		return domain.Caller{}, errors.New("invalid token claims")
	}

	caller := domain.Caller{AppUserID: sub, Email: email}
	if raw, ok := (*claims)["authorities"].([]interface{}); ok {
		for _, item := range raw {
			name, _ := item.(string)
			if a, ok := domain.ParseAuthority(name); ok {
				caller.Authorities = append(caller.Authorities, a)
			}
		}
	}
	return caller, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.AppUser, error) {
	return s.appUserRepo.GetByID(ctx, id)
}

// SetAuthorities replaces the authorities of the account with the given email
func (s *AuthService) SetAuthorities(ctx context.Context, email string, authorities ...domain.Authority) (*domain.AppUser, error) {
	user, err := s.appUserRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.BadRequest(domain.MsgAccountNotFound)
		}
		return nil, err
	}

	user.SetAuthorities(authorities...)
	if err := s.appUserRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("authorities of %s set to %v", user.Email, user.AuthorityList())
	return user, nil
}
