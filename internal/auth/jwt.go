package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jozemario/todos-backend/internal/models"
)

// DefaultAudiences covers the two historical token issuance paths; tokens
// minted by either are accepted.
var DefaultAudiences = []string{"todos:auth", "todos:verify"}

type JWTStrategy struct {
	secret    []byte
	lifetime  time.Duration
	audiences []string
}

func NewJWTStrategy(secret string, lifetime time.Duration, audiences []string) *JWTStrategy {
	if len(audiences) == 0 {
		audiences = DefaultAudiences
	}
	return &JWTStrategy{
		secret:    []byte(secret),
		lifetime:  lifetime,
		audiences: audiences,
	}
}

func (s *JWTStrategy) WriteToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":      user.ID.String(),
		"email":        user.Email,
		"is_superuser": user.IsSuperuser,
		"aud":          s.audiences,
		"iat":          now.Unix(),
		"exp":          now.Add(s.lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ReadToken validates signature and expiry, then checks the audience claim
// against every recognized audience. The claim may be encoded as a single
// string or a list; either form is accepted as long as one recognized
// audience matches.
func (s *JWTStrategy) ReadToken(tokenString string) (*Identity, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthenticated
	}

	aud, err := claims.GetAudience()
	if err != nil || !AudienceAllowed(aud, s.audiences) {
		return nil, ErrUnauthenticated
	}

	sub, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	email, _ := claims["email"].(string)
	isSuperuser, _ := claims["is_superuser"].(bool)

	return &Identity{
		UserID:      userID,
		Email:       email,
		IsSuperuser: isSuperuser,
	}, nil
}

// AudienceAllowed reports whether any recognized audience appears in the
// token's audience claim. Claims parsed from either encoding (single
// string or list) arrive here as ClaimStrings.
func AudienceAllowed(tokenAud jwt.ClaimStrings, recognized []string) bool {
	for _, r := range recognized {
		for _, aud := range tokenAud {
			if aud == r {
				return true
			}
		}
	}
	return false
}
