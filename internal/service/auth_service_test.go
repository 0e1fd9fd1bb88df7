package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/token"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testTokenKey = "12345678901234567890123456789012"

type AuthServiceTestSuite struct {
	suite.Suite
	store       *fakeStore
	tokenMaker  token.Maker
	authService *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.store = newFakeStore()
	maker, err := token.NewJWTMaker(testTokenKey)
	require.NoError(suite.T(), err)
	suite.tokenMaker = maker
	suite.authService = NewAuthService(suite.store, maker)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) TestRegister() {
	ctx := context.Background()

	result, err := suite.authService.Register(ctx, "Test User", "test@example.com", "secret123", model.RoleUser)

	require.NoError(suite.T(), err)
	require.NotEmpty(suite.T(), result.AccessToken)
	require.Greater(suite.T(), result.ExpiresIn, 0)
	require.Equal(suite.T(), model.RoleUser, result.User.Role)

	// 簽出來的token要可驗證且帶對的身份
	payload, err := suite.tokenMaker.VerifyToken(result.AccessToken)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "test@example.com", payload.UPN)
	require.Equal(suite.T(), string(model.RoleUser), payload.Role)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	ctx := context.Background()

	_, err := suite.authService.Register(ctx, "Test User", "test@example.com", "secret123", model.RoleUser)
	require.NoError(suite.T(), err)

	_, err = suite.authService.Register(ctx, "Another User", "test@example.com", "secret456", model.RoleUser)
	require.ErrorIs(suite.T(), err, ErrEmailAlreadyExists)
}

func (suite *AuthServiceTestSuite) TestRegisterDoesNotStorePlaintext() {
	ctx := context.Background()

	_, err := suite.authService.Register(ctx, "Test User", "test@example.com", "secret123", model.RoleUser)
	require.NoError(suite.T(), err)

	user, err := suite.store.GetUserByEmail(ctx, "test@example.com")
	require.NoError(suite.T(), err)
	require.NotEqual(suite.T(), "secret123", user.HashedPassword)
	require.NotEmpty(suite.T(), user.HashedPassword)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	ctx := context.Background()

	_, err := suite.authService.Register(ctx, "Test User", "test@example.com", "secret123", model.RoleUser)
	require.NoError(suite.T(), err)

	result, err := suite.authService.Login(ctx, "test@example.com", "secret123")

	require.NoError(suite.T(), err)
	require.NotEmpty(suite.T(), result.AccessToken)

	payload, err := suite.tokenMaker.VerifyToken(result.AccessToken)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "test@example.com", payload.UPN)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	ctx := context.Background()

	_, err := suite.authService.Register(ctx, "Test User", "test@example.com", "secret123", model.RoleUser)
	require.NoError(suite.T(), err)

	_, err = suite.authService.Login(ctx, "test@example.com", "wrong-password")
	require.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	ctx := context.Background()

	// 帳號不存在跟密碼錯誤要回一樣的錯
	_, err := suite.authService.Login(ctx, "nobody@example.com", "secret123")
	require.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}
