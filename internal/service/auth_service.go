package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/ecommerce/internal/constants"
	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// LoginResult 登入/註冊結果
type LoginResult struct {
	AccessToken string
	ExpiresIn   int
	User        *model.User
}

type IAuthService interface {
	Register(ctx context.Context, name, email, password string, role model.UserRole) (*LoginResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type AuthService struct {
	userRepo   db.IUserRepository
	tokenMaker token.Maker
}

func NewAuthService(userRepo db.IUserRepository, tokenMaker token.Maker) *AuthService {
	if userRepo == nil {
		panic("userRepo cannot be nil")
	}
	if tokenMaker == nil {
		panic("tokenMaker cannot be nil")
	}
	return &AuthService{userRepo: userRepo, tokenMaker: tokenMaker}
}

// Register 註冊新用戶並直接簽發token
func (a *AuthService) Register(ctx context.Context, name, email, password string, role model.UserRole) (*LoginResult, error) {
	exists, err := a.userRepo.ExistsUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = model.RoleUser
	}

	user, err := a.userRepo.CreateUser(ctx, &model.User{
		UserName:       name,
		UserEmail:      email,
		HashedPassword: string(hashed),
		Role:           role,
	})
	if err != nil {
		return nil, err
	}

	return a.issueToken(user)
}

// Login 帳密登入
// 用戶不存在與密碼錯誤回一樣的錯，不洩漏帳號是否存在
func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, db.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return a.issueToken(user)
}

func (a *AuthService) issueToken(user *model.User) (*LoginResult, error) {
	duration := time.Duration(constants.AccessTokenDuration) * time.Hour
	accessToken, payload, err := a.tokenMaker.CreateToken(user.UserEmail, string(user.Role), duration)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: accessToken,
		ExpiresIn:   int(payload.ExpiredAt.Sub(payload.IssuedAt).Seconds()),
		User:        user,
	}, nil
}

var _ IAuthService = (*AuthService)(nil)
