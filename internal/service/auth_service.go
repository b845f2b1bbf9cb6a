package service

import (
	"context"
	"errors"
	"time"

	"github.com/Ines207/ARI/internal/config"
	"github.com/Ines207/ARI/internal/dto"
	"github.com/Ines207/ARI/internal/entity"
	"github.com/Ines207/ARI/internal/pkg/logger"
	"github.com/Ines207/ARI/internal/repository/contract"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	store          contract.UserStore
	sessionService ISessionService
	authCfg        config.AuthConfig
	logger         logger.ILogger
}

func NewAuthService(store contract.UserStore, sessionService ISessionService, authCfg config.AuthConfig, log logger.ILogger) IAuthService {
	return &authService{
		store:          store,
		sessionService: sessionService,
		authCfg:        authCfg,
		logger:         log,
	}
}

// Register creates a new user record. The password is stored only as a bcrypt
// digest. A second register with the same username never mutates the
// existing record.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	gender := entity.Gender(req.Gender)
	if gender == "" {
		gender = entity.GenderUnspecified
	}

	user := &entity.User{
		Username:       req.Username,
		CredentialHash: string(hash),
		Profile: entity.Profile{
			Age:    req.Age,
			Gender: gender,
		},
		Sessions: make(map[string]*entity.Session),
	}

	if err := s.store.Insert(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.logger.Info("auth", "user registered", map[string]interface{}{"username": req.Username})

	return &dto.RegisterResponse{Username: user.Username}, nil
}

// Login authenticates and issues an access token. When the user has no
// session yet one is created and activated, so a fresh login always lands in
// a usable conversation.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.store.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.CredentialHash), []byte(req.Password)); err != nil {
		return nil, ErrWrongPassword
	}

	activeID := user.ActiveSessionID
	if user.ActiveSession() == nil {
		created, err := s.sessionService.Create(ctx, user.Username)
		if err != nil {
			return nil, err
		}
		activeID = created.ID
	}

	claims := jwt.MapClaims{
		"username": user.Username,
		"exp":      time.Now().Add(s.authCfg.TokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.authCfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	s.logger.Info("auth", "user logged in", map[string]interface{}{"username": user.Username})

	return &dto.LoginResponse{
		AccessToken:     signedToken,
		Username:        user.Username,
		ActiveSessionID: activeID,
	}, nil
}
