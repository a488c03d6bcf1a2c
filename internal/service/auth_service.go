package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/mapper"
	"notekeeper-be/internal/metrics"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/session"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Session(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	Logout(ctx context.Context, tokenId string, expiresAt time.Time) error
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	denylist   contract.TokenDenylist
	jwtSecret  []byte
	tokenTTL   time.Duration
	logger     logger.ILogger

	bcryptCost int
	now        func() time.Time
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	denylist contract.TokenDenylist,
	jwtSecret []byte,
	tokenTTL time.Duration,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		denylist:   denylist,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		logger:     log,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Login authenticates by email and password. An unknown email is provisioned on the spot, and a
// known user without a password adopts the first one presented.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperror.ErrValidation)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}

	result := "success"
	switch {
	case user == nil:
		user, err = s.provision(ctx, uow, email, req.Password)
		if err != nil {
			return nil, err
		}
		result = "provisioned"
	case user.PasswordHash == nil:
		hash, err := s.hash(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	default:
		if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			s.logger.Warn("auth", "login rejected", map[string]interface{}{"user_id": user.Id.String()})
			return nil, apperror.ErrInvalidCredentials
		}
	}

	token, claims, err := session.Issue(s.jwtSecret, user, s.tokenTTL, s.now())
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues(result).Inc()
	s.logger.Info("auth", "user logged in", map[string]interface{}{
		"user_id": user.Id.String(),
		"outcome": result,
	})

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: claims.ExpiresAt.Time,
		User:      mapper.ToUserResponse(user),
	}, nil
}

func (s *authService) provision(ctx context.Context, uow unitofwork.UnitOfWork, email, password string) (*entity.User, error) {
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	name, _, _ := strings.Cut(email, "@")
	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		// A concurrent login may have created the same email first.
		existing, findErr := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
		if findErr != nil || existing == nil {
			return nil, err
		}
		if existing.PasswordHash == nil ||
			bcrypt.CompareHashAndPassword([]byte(*existing.PasswordHash), []byte(password)) != nil {
			return nil, apperror.ErrInvalidCredentials
		}
		return existing, nil
	}

	s.logger.Info("auth", "user provisioned", map[string]interface{}{"user_id": user.Id.String()})
	return user, nil
}

func (s *authService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password is too long", apperror.ErrValidation)
		}
		return "", err
	}
	return string(hash), nil
}

func (s *authService) Session(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Valid token for a user that no longer exists.
		return nil, apperror.ErrUnauthenticated
	}

	res := mapper.ToUserResponse(user)
	return &res, nil
}

// Logout revokes the token id until the token's own expiry.
func (s *authService) Logout(ctx context.Context, tokenId string, expiresAt time.Time) error {
	if tokenId == "" {
		return apperror.ErrUnauthenticated
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, tokenId, ttl); err != nil {
		return err
	}

	s.logger.Info("auth", "token revoked", map[string]interface{}{"token_id": tokenId})
	return nil
}
