package auth

import (
	"context"
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"coworking/internal/domain"
	"coworking/internal/pkg/jwt"
	"coworking/internal/repository"
)

var phonePattern = regexp.MustCompile(`^\d{1,10}$`)

type Service struct {
	users *repository.UserRepository
	jwt   *jwt.Service
}

func NewService(users *repository.UserRepository, jwtSvc *jwt.Service) *Service {
	return &Service{users: users, jwt: jwtSvc}
}

type SignupRequest struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
	Email     string
	Phone     string
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	if req.Username == "" || req.FirstName == "" || req.LastName == "" || req.Password == "" || req.Email == "" {
		return nil, ErrValidation
	}
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return nil, ErrValidation
	}

	if taken, err := s.users.UsernameTaken(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.users.EmailTaken(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}
	if req.Phone != "" {
		if taken, err := s.users.PhoneTaken(ctx, req.Phone); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrPhoneTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         domain.RoleUser,
		WalletStatus: domain.WalletActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type LoginResult struct {
	User  *domain.User
	Token string
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}
