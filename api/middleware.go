package api

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dojsystem/process-api/config"
)

// Auth wires the go-guardian authenticator for the service: a shared-secret
// strategy on the x-api-key header for the chat gateway, and a cached bearer
// strategy for tokens minted through CreateToken.
type Auth struct {
	Config config.Config
}

var authenticator auth.Authenticator
var cache store.Cache

const apiKeyStrategyKey auth.StrategyKey = "apikey.strategy"

// Middleware adds header authentication around accessing the routes
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugf("caller %s authenticated\n", user.UserName())
		next.ServeHTTP(w, r)
	})
}

// SetupGoGuardian sets up the go-guardian strategies.
func (a Auth) SetupGoGuardian() {
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), time.Hour*24)
	tokenStrategy := bearer.New(bearer.NoOpAuthenticate, cache)

	authenticator.EnableStrategy(apiKeyStrategyKey, apiKeyStrategy{cfg: a.Config})
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// apiKeyStrategy validates the x-api-key header against the configured
// shared secret. When a bcrypt hash is configured it takes precedence over
// the plain key.
type apiKeyStrategy struct {
	cfg config.Config
}

func (s apiKeyStrategy) Authenticate(_ context.Context, r *http.Request) (auth.Info, error) {
	key := r.Header.Get("x-api-key")
	if key == "" {
		return nil, fmt.Errorf("missing x-api-key header")
	}

	if s.cfg.APIKeyHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.APIKeyHash), []byte(key)); err != nil {
			return nil, fmt.Errorf("invalid api key")
		}
		return auth.NewDefaultUser("gateway", "gateway", nil, nil), nil
	}

	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("no api key configured")
	}
	expected := sha256.Sum256([]byte(s.cfg.APIKey))
	got := sha256.Sum256([]byte(key))
	if subtle.ConstantTimeCompare(expected[:], got[:]) != 1 {
		return nil, fmt.Errorf("invalid api key")
	}
	return auth.NewDefaultUser("gateway", "gateway", nil, nil), nil
}

type tokenRequest struct {
	ActorID string `json:"actorId"`
	Tag     string `json:"tag"`
}

// CreateToken mints a signed token for a gateway actor and registers it
// with the cached bearer strategy. The route itself sits behind the
// x-api-key middleware.
func (a Auth) CreateToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActorID == "" {
		config.ErrorStatus("actorId is required", http.StatusBadRequest, w, err)
		return
	}

	if a.Config.JWTSecret == "" {
		config.ErrorStatus("jwt secret not configured", http.StatusInternalServerError, w, fmt.Errorf("missing jwt_secret"))
		return
	}

	claims := jwt.MapClaims{
		"sub":   req.ActorID,
		"tag":   req.Tag,
		"scope": "gateway",
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.Config.JWTSecret))
	if err != nil {
		config.ErrorStatus("token generation failed", http.StatusInternalServerError, w, err)
		return
	}

	authUser := auth.NewDefaultUser(req.ActorID, req.ActorID, nil, nil)
	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Append(tokenStrategy, signed, authUser, r)

	responseBody, err := json.Marshal(map[string]string{"token": signed, "actorId": req.ActorID})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Write(responseBody)
}

// RevokeToken revokes a minted token.
func RevokeToken(w http.ResponseWriter, r *http.Request) {
	reqToken := r.Header.Get("Authorization")
	splitToken := strings.Split(reqToken, "Bearer ")
	if len(splitToken) < 2 {
		config.ErrorStatus("missing bearer token", http.StatusBadRequest, w, fmt.Errorf("no Authorization header"))
		return
	}
	reqToken = splitToken[1]

	tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
	auth.Revoke(tokenStrategy, reqToken, r)
	body := fmt.Sprintf(`{"revoked token": "%s"}`, reqToken)
	w.Write([]byte(body))
}
