package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nmaksimov/estore/internal/models"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

type TokenService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

// TokenPair is the wire shape of an issued pair.
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

func Sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func signAccessToken(userID uint, isAdmin bool, secret []byte) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": float64(userID),
		"adm": isAdmin,
		"iat": now.Unix(),
		"exp": now.Add(AccessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func signRefreshToken(userID uint, jti string, secret []byte) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(RefreshTTL)
	claims := jwt.MapClaims{
		"sub": float64(userID),
		"typ": "refresh",
		"jti": jti,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secret)
	return signed, exp, err
}

// IssueTokens produces an access/refresh pair for the user and persists the
// refresh hash so it can later be revoked. Pairs issued separately are
// independent: revoking one leaves the other valid.
func (t *TokenService) IssueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := signAccessToken(user.ID, user.IsAdmin, t.JWTSecret)
	if err != nil {
		return nil, err
	}

	jti := uuid.NewString()
	refresh, exp, err := signRefreshToken(user.ID, jti, t.RefreshSecret)
	if err != nil {
		return nil, err
	}

	record := models.RefreshToken{
		TokenHash: Sha256Hex(refresh),
		JTI:       jti,
		UserID:    user.ID,
		ExpiresAt: exp.Unix(),
	}
	if err := t.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &TokenPair{Refresh: refresh, Access: access}, nil
}

// ParseAccess verifies a bearer access token and returns its claims.
func (t *TokenService) ParseAccess(rawToken string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(rawToken, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", tok.Header["alg"])
		}
		return t.JWTSecret, nil
	})
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: invalid access token", ErrAuthenticationFailed)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse claims", ErrAuthenticationFailed)
	}
	return claims, nil
}

// ValidateRefresh checks the signature, the refresh type claim and the
// stored revocation record.
func (t *TokenService) ValidateRefresh(ctx context.Context, rawToken string) (*models.RefreshToken, error) {
	tok, err := jwt.Parse(rawToken, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", tok.Header["alg"])
		}
		return t.RefreshSecret, nil
	})
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrToken)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse claims", ErrToken)
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, fmt.Errorf("%w: not a refresh token", ErrToken)
	}

	var stored models.RefreshToken
	if err := t.DB.WithContext(ctx).Where("token_hash = ?", Sha256Hex(rawToken)).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: refresh token not found", ErrToken)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if stored.Revoked {
		return nil, fmt.Errorf("%w: refresh token revoked", ErrToken)
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, fmt.Errorf("%w: refresh token expired", ErrToken)
	}

	return &stored, nil
}

// InvalidateToken blacklists a refresh token so it can never be used again.
// Malformed, expired, unknown and already-revoked tokens all fail with
// ErrToken.
func (t *TokenService) InvalidateToken(ctx context.Context, rawToken string) error {
	stored, err := t.ValidateRefresh(ctx, rawToken)
	if err != nil {
		return err
	}

	res := t.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("jti = ?", stored.JTI).
		Update("revoked", true)
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	return nil
}
