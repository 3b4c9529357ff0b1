package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"apartment_rent/types"
	"apartment_rent/utils/errDefs"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "apartment_rent"

var ErrInvalidToken = fmt.Errorf("%w: invalid token", errDefs.ErrBadRequest)

type Claims struct {
	AccountId int64
	Login     string
	Role      types.Role
}

// Signer issues session tokens for accounts that passed a credential check.
type Signer struct {
	secret   []byte
	lifetime time.Duration
}

func NewSigner(secret []byte, lifetime time.Duration) (*Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("secret key is not set")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime needs to be positive but it is %v", lifetime)
	}
	return &Signer{secret: secret, lifetime: lifetime}, nil
}

type sessionClaims struct {
	Login string     `json:"login"`
	Role  types.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *Signer) Issue(account *types.Account) (string, error) {
	if account == nil || account.Login == "" {
		return "", errors.New("login cannot be empty")
	}
	if account.Role == "" {
		return "", errors.New("role cannot be empty")
	}

	now := time.Now()
	claims := sessionClaims{
		Login: account.Login,
		Role:  account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(account.Id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify is the counterpart of Issue for handlers that accept a token handed out at login.
// It checks the signature, issuer and expiry and returns the embedded claims.
func (s *Signer) Verify(token string) (Claims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: subject %q", ErrInvalidToken, claims.Subject)
	}
	return Claims{AccountId: id, Login: claims.Login, Role: claims.Role}, nil
}
