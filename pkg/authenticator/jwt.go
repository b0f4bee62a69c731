package authenticator

import (
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/neftit-lab/backend/config"
)

var ErrNoSecret = errors.New("token secret is not configured")

type TokenEngine[T any] interface {
	Generate(sub string, obj T) (string, error)
	Verify(token string) (sub string, obj T, err error)
}

type claims[T any] struct {
	jwt.RegisteredClaims
	Object T `json:"obj,omitempty"`
}

type jwtTokenEngine[T any] struct {
	secret     []byte
	expiration time.Duration
	counter    atomic.Int64
}

func NewTokenEngine[T any](cfg config.TokenConfigs) *jwtTokenEngine[T] {
	return &jwtTokenEngine[T]{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
	}
}

func (e *jwtTokenEngine[T]) Generate(sub string, obj T) (string, error) {
	if len(e.secret) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now()
	c := claims[T]{
		Object: obj,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(e.expiration)),
			ID:        strconv.FormatInt(e.counter.Add(1), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   sub,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(e.secret)
}

func (e *jwtTokenEngine[T]) Verify(token string) (string, T, error) {
	var c claims[T]
	if len(e.secret) == 0 {
		return "", c.Object, ErrNoSecret
	}

	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return e.secret, nil
	})
	if err != nil {
		var zero T
		return "", zero, err
	}

	return c.Subject, c.Object, nil
}
