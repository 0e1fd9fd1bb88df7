package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecretKey = "12345678901234567890123456789012"

func TestJWTMaker(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	upn := "test@example.com"
	role := "USER"
	duration := time.Minute

	issuedAt := time.Now()
	expiredAt := issuedAt.Add(duration)

	tokenStr, payload, err := maker.CreateToken(upn, role, duration)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	require.NotNil(t, payload)

	payload, err = maker.VerifyToken(tokenStr)
	require.NoError(t, err)
	require.NotZero(t, payload.ID)
	require.Equal(t, upn, payload.UPN)
	require.Equal(t, role, payload.Role)
	require.WithinDuration(t, issuedAt, payload.IssuedAt, time.Second)
	require.WithinDuration(t, expiredAt, payload.ExpiredAt, time.Second)
}

func TestJWTMakerShortSecretKey(t *testing.T) {
	_, err := NewJWTMaker("too-short")
	require.Error(t, err)
}

func TestExpiredJWTToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	tokenStr, _, err := maker.CreateToken("test@example.com", "USER", -time.Minute)
	require.NoError(t, err)

	payload, err := maker.VerifyToken(tokenStr)
	require.ErrorIs(t, err, ErrExpiredToken)
	require.Nil(t, payload)
}

func TestInvalidJWTToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	payload, err := maker.VerifyToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, payload)
}

func TestJWTTokenWrongKey(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	tokenStr, _, err := maker.CreateToken("test@example.com", "USER", time.Minute)
	require.NoError(t, err)

	otherMaker, err := NewJWTMaker("abcdefghijklmnopqrstuvwxyz123456")
	require.NoError(t, err)

	payload, err := otherMaker.VerifyToken(tokenStr)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, payload)
}
