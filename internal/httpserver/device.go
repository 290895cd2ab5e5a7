// internal/httpserver/device.go
//
// Device identity. Guess lists are private to a device, the way browser
// local storage is private to a browser. The device ID is a UUID carried in
// an HS256-signed cookie so that clients cannot read another device's lists
// by guessing IDs. The signing key is derived from DEVICE_SECRET with HKDF.

package httpserver

import (
	"context"
	"crypto/sha256"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/hkdf"
)

const (
	deviceCookieName = "freebee_device"
	deviceTTL        = 400 * 24 * time.Hour
	devSecret        = "dev_secret_change_me"
)

// ctxDeviceKey is the context key type for the device ID.
type ctxDeviceKey struct{}

// deriveDeviceKey stretches the configured secret into a 32-byte HMAC key.
func deriveDeviceKey(secret string) []byte {
	if secret == "" {
		secret = devSecret
	}
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("freebee device token v1"))
	if _, err := io.ReadFull(r, key); err != nil {
		log.Fatal().Err(err).Msg("derive device key")
	}
	return key
}

// signDevice issues a token for id.
func (s *Server) signDevice(id string, now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(deviceTTL)),
	})
	return t.SignedString(s.devKey)
}

// parseDevice returns the device ID in tok, or "" if the token is unusable.
func (s *Server) parseDevice(tok string) string {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.devKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return ""
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return ""
	}
	return claims.Subject
}

// withDevice resolves the caller's device from its cookie, minting a new one
// when the cookie is missing or invalid.
func (s *Server) withDevice(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(deviceCookieName); err == nil && c.Value != "" {
			id = s.parseDevice(c.Value)
		}
		if id == "" {
			id = uuid.NewString()
			s.setDeviceCookie(w, id)
		}
		ctx := context.WithValue(r.Context(), ctxDeviceKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) setDeviceCookie(w http.ResponseWriter, id string) {
	now := time.Now()
	tok, err := s.signDevice(id, now)
	if err != nil {
		log.Error().Err(err).Msg("sign device token")
		return
	}
	sameSite := http.SameSiteLaxMode
	if s.cfg.Secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: sameSite,
		Expires:  now.Add(deviceTTL),
	})
}

// deviceID returns the device resolved by withDevice.
func deviceID(r *http.Request) string {
	id, _ := r.Context().Value(ctxDeviceKey{}).(string)
	return id
}
