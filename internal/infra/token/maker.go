package token

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Payload token內容
// UPN使用email，core只把它當作不透明的principal identity
type Payload struct {
	ID        uuid.UUID `json:"id"`
	UPN       string    `json:"upn"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

func NewPayload(upn string, role string, duration time.Duration) (*Payload, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Payload{
		ID:        tokenID,
		UPN:       upn,
		Role:      role,
		IssuedAt:  now,
		ExpiredAt: now.Add(duration),
	}, nil
}

func (p *Payload) Valid() error {
	if time.Now().After(p.ExpiredAt) {
		return ErrExpiredToken
	}
	return nil
}

// Maker token製作與驗證介面
type Maker interface {
	// CreateToken 為指定principal簽發token
	CreateToken(upn string, role string, duration time.Duration) (string, *Payload, error)

	// VerifyToken 驗證token並取出payload
	VerifyToken(tokenStr string) (*Payload, error)
}
