package services

import (
	"errors"
	"strings"
	"time"

	"github.com/reconized/LittleLemon/entity"
	"github.com/reconized/LittleLemon/pkg/apperr"
	"github.com/reconized/LittleLemon/repository"
	"github.com/reconized/LittleLemon/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

func (s *AuthService) Register(username, email, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || password == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "username and password are required")
	}

	count, err := s.userRepo.CountByUsername(username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Wrapf(apperr.ErrConflict, "username %s is already taken", username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(user); err != nil {
		// Two registrations racing past the count check land here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Wrapf(apperr.ErrConflict, "username %s is already taken", username)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(username, password string) (string, *entity.User, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		return "", nil, apperr.Wrap(apperr.ErrValidation, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Wrap(apperr.ErrValidation, "invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}
