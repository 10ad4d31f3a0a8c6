package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bloghub/internal/apperror"
	"bloghub/internal/config"
	"bloghub/internal/microservices/http-api/models"
)

// TokenClaims is what a verified token asserts about its bearer.
type TokenClaims struct {
	UserID    int64
	Username  string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenService interface {
	Issue(user *models.User) (token string, expiresAt time.Time, err error)
	Verify(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// accessClaims is the JWT payload: sub carries the decimal user id.
type accessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenOptions configures a TokenService. Now defaults to time.Now.
type TokenOptions struct {
	Secret    []byte
	Algorithm string
	TTL       time.Duration
	Now       func() time.Time
}

type tokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenService builds the token service from process configuration.
func NewTokenService(cfg *config.Config) (TokenService, error) {
	return NewTokenServiceWithOptions(TokenOptions{
		Secret:    []byte(cfg.JWTSecret),
		Algorithm: cfg.JWTAlgorithm,
		TTL:       cfg.JWTExpiry,
	})
}

func NewTokenServiceWithOptions(opts TokenOptions) (TokenService, error) {
	var method jwt.SigningMethod
	switch opts.Algorithm {
	case "HS256", "":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", opts.Algorithm)
	}
	if len(opts.Secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	if opts.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	secret := make([]byte, len(opts.Secret))
	copy(secret, opts.Secret)

	return &tokenService{
		secret: secret,
		method: method,
		ttl:    opts.TTL,
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{method.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithStrictDecoding(),
			jwt.WithTimeFunc(now),
		),
	}, nil
}

func (s *tokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for user that expires ttl from now.
func (s *tokenService) Issue(user *models.User) (string, time.Time, error) {
	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := accessClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperror.NewInternal("failed to sign token", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature first and the expiry second, so a correctly
// signed token past its expiry is reported as Expired.
func (s *tokenService) Verify(tokenString string) (*TokenClaims, error) {
	if strings.Count(tokenString, ".") != 2 {
		return nil, apperror.New(apperror.Malformed, "token must have three segments", nil)
	}

	claims := &accessClaims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, s.classify(tokenString, token, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, apperror.New(apperror.Malformed, "token subject is not a user id", err)
	}

	out := &TokenClaims{
		UserID:   userID,
		Username: claims.Username,
		TokenID:  claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func (s *tokenService) classify(tokenString string, token *jwt.Token, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperror.New(apperror.Expired, "token expired", err)

	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// the parser reports a disallowed alg as a signature failure
		if token != nil && token.Method != nil && token.Method.Alg() != s.method.Alg() {
			return apperror.New(apperror.Malformed, "unexpected signing algorithm", err)
		}
		return apperror.New(apperror.InvalidSignature, "signature mismatch", err)

	case errors.Is(err, jwt.ErrTokenMalformed):
		// header and claims decode, so the broken part is the signature segment
		if _, _, uerr := s.parser.ParseUnverified(tokenString, &accessClaims{}); uerr == nil {
			return apperror.New(apperror.InvalidSignature, "signature mismatch", err)
		}
		return apperror.New(apperror.Malformed, "token is malformed", err)

	default:
		// unknown alg, missing exp and other claim failures
		return apperror.New(apperror.Malformed, "token is malformed", err)
	}
}
