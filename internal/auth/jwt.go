package auth

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// JwtIssuer is the issuer claim of every access token this service signs.
const JwtIssuer = "nexus-job-platform"

var (
	keyMu     sync.RWMutex
	secretKey = []byte(os.Getenv("SECRET_KEY"))
	tokenTTL  = 7 * 24 * time.Hour
)

// Configure sets the signing secret and token lifetime.
func Configure(secret string, ttl time.Duration) {
	keyMu.Lock()
	defer keyMu.Unlock()
	secretKey = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func signingConfig() ([]byte, time.Duration) {
	keyMu.RLock()
	defer keyMu.RUnlock()
	return secretKey, tokenTTL
}

// GenerateStandardToken issues a signed access token whose subject is the
// user id and whose lifetime is the configured token TTL.
func GenerateStandardToken(userID uuid.UUID) (string, error) {
	_, ttl := signingConfig()
	token, _, err := GenerateTokenWithDuration(userID, ttl, JwtIssuer)
	return token, err
}

// GenerateTokenWithDuration issues a token valid for d. Every token carries a
// unique id so it can be revoked on logout.
func GenerateTokenWithDuration(userID uuid.UUID, d time.Duration, iss string) (string, *jwt.RegisteredClaims, error) {
	key, _ := signingConfig()
	now := time.Now()

	claims := &jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    iss,
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", nil, fmt.Errorf("Failed to sign token: %w", err)
	}
	return signedToken, claims, nil
}

// ValidatedToken parses and verifies encodeToken. The returned token carries
// *jwt.RegisteredClaims.
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	key, _ := signingConfig()
	return jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return key, nil
	})
}
