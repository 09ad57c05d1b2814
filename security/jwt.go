package security

import (
	"dating-chat-api/config/common"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer      = "dating-chat-api"
	userIDClaim = "user_id"
	DefaultTTL  = time.Hour
)

var ErrMissingUserID = errors.New("token carries no user id")

// JWT verifies the bearer tokens the auth provider issues. GenerateToken
// exists for tooling and tests; issuing credentials is not this service's job.
type JWT struct {
	config *common.Config
}

func NewJWT(config *common.Config) *JWT {
	return &JWT{config: config}
}

func (j *JWT) GenerateToken(userID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	claims := jwt.MapClaims{
		userIDClaim: userID,
		"aud":       issuer,
		"iss":       issuer,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(j.config.GetJwtConfig())
}

func (j *JWT) VerifyJwtToken(token string) (jwt.MapClaims, error) {
	secretKey := j.config.GetJwtConfig()

	tokenParse, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := tokenParse.Claims.(jwt.MapClaims)
	if !ok || !tokenParse.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Identify returns the user a token belongs to and when it stops being valid.
func (j *JWT) Identify(token string) (string, time.Time, error) {
	claims, err := j.VerifyJwtToken(token)
	if err != nil {
		return "", time.Time{}, err
	}

	userID, err := UserIDFromClaims(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", time.Time{}, jwt.ErrTokenRequiredClaimMissing
	}
	return userID, exp.Time, nil
}

func UserIDFromClaims(claims jwt.MapClaims) (string, error) {
	userID, ok := claims[userIDClaim].(string)
	if !ok || userID == "" {
		return "", ErrMissingUserID
	}
	return userID, nil
}
