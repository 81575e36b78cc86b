package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leon37/ExpenseBot/internal/config"
	"golang.org/x/crypto/bcrypt"
)

const tokenSubject = "service"

var (
	ErrInvalidAPIKey = errors.New("invalid api key")
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrJWTDisabled   = errors.New("jwt secret not configured")
)

// AuthService 校验 API Key，并用它换取短期 JWT
// 进程内只保存 API Key 的 bcrypt 哈希，以及第一次校验通过后的 SHA-256 摘要
type AuthService struct {
	keyHash   []byte
	verified  atomic.Pointer[[sha256.Size]byte]
	jwtSecret []byte
	expire    time.Duration
}

func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	if cfg.APIKeySecret == "" {
		return nil, errors.New("api key secret is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.APIKeySecret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash api key: %w", err)
	}

	expireHours := cfg.JWTExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	return &AuthService{
		keyHash:   hash,
		jwtSecret: []byte(cfg.JWTSecret),
		expire:    time.Duration(expireHours) * time.Hour,
	}, nil
}

// VerifyAPIKey 命中缓存的摘要时只做一次常量时间比较，否则走 bcrypt
func (s *AuthService) VerifyAPIKey(key string) bool {
	if key == "" {
		return false
	}
	digest := sha256.Sum256([]byte(key))
	if cached := s.verified.Load(); cached != nil && subtle.ConstantTimeCompare(cached[:], digest[:]) == 1 {
		return true
	}

	if bcrypt.CompareHashAndPassword(s.keyHash, []byte(key)) != nil {
		return false
	}
	s.verified.Store(&digest)
	return true
}

// IssueToken 用 API Key 换 JWT
func (s *AuthService) IssueToken(apiKey string) (string, time.Time, error) {
	if len(s.jwtSecret) == 0 {
		return "", time.Time{}, ErrJWTDisabled
	}
	if !s.VerifyAPIKey(apiKey) {
		return "", time.Time{}, ErrInvalidAPIKey
	}

	now := time.Now()
	expiresAt := now.Add(s.expire)
	claims := jwt.RegisteredClaims{
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return ss, expiresAt, nil
}

// ParseToken 校验签名、算法和过期时间
func (s *AuthService) ParseToken(tokenString string) (*jwt.RegisteredClaims, error) {
	if len(s.jwtSecret) == 0 {
		return nil, ErrJWTDisabled
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithSubject(tokenSubject), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
