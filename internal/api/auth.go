package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillbridge/skillbridge/internal/catalog"
	"github.com/skillbridge/skillbridge/internal/storage"
)

type ctxKey int

const userIDKey ctxKey = 0

// jwtAuth validates the Bearer token and puts the user id on the request
// context.
func jwtAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				httpError(w, http.StatusUnauthorized, "authentication_error", "missing bearer token")
				return
			}

			token, err := jwt.ParseWithClaims(auth[len(prefix):], &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				httpError(w, http.StatusUnauthorized, "authentication_error", "invalid token")
				return
			}

			claims, ok := token.Claims.(*jwt.RegisteredClaims)
			if !ok || claims.Subject == "" {
				httpError(w, http.StatusUnauthorized, "authentication_error", "invalid token claims")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, claims.Subject)))
		})
	}
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func issueToken(secret string, ttlHours int, userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlHours) * time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

type registerRequest struct {
	FullName        string   `json:"fullName" validate:"required,min=2"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	Education       string   `json:"education"`
	Department      string   `json:"department"`
	ExperienceLevel string   `json:"experienceLevel" validate:"omitempty,oneof=Fresher Junior Mid Senior"`
	PreferredTrack  string   `json:"preferredTrack"`
	Skills          []string `json:"skills"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

// userView is the API shape of a user; password hash and CV text stay server
// side.
type userView struct {
	ID              string   `json:"id"`
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	Education       string   `json:"education"`
	Department      string   `json:"department"`
	ExperienceLevel string   `json:"experienceLevel"`
	PreferredTrack  string   `json:"preferredTrack"`
	Skills          []string `json:"skills"`
	CreatedAt       string   `json:"createdAt"`
}

func viewOf(u storage.User) userView {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return userView{
		ID:              u.ID,
		FullName:        u.FullName,
		Email:           u.Email,
		Education:       u.Education,
		Department:      u.Department,
		ExperienceLevel: string(u.ExperienceLevel),
		PreferredTrack:  u.PreferredTrack,
		Skills:          skills,
		CreatedAt:       u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func handleRegister(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "validation failed: %v", err)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to hash password")
			return
		}

		level := catalog.ExperienceLevel(req.ExperienceLevel)
		if level == "" {
			level = catalog.Fresher
		}
		user := storage.User{
			ID:              uuid.NewString(),
			FullName:        req.FullName,
			Email:           strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash:    string(hash),
			Education:       req.Education,
			Department:      req.Department,
			ExperienceLevel: level,
			PreferredTrack:  req.PreferredTrack,
			Skills:          req.Skills,
			CreatedAt:       time.Now().UTC(),
		}

		if err := deps.Store.CreateUser(user); err != nil {
			if errors.Is(err, storage.ErrEmailTaken) {
				httpError(w, http.StatusConflict, "invalid_request_error", "email already registered")
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "failed to create user: %v", err)
			return
		}

		token, err := issueToken(deps.JWTSecret, deps.TokenTTL, user.ID)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to issue token: %v", err)
			return
		}

		writeJSON(w, http.StatusCreated, authResponse{Token: token, User: viewOf(user)})
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func handleLogin(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "validation failed: %v", err)
			return
		}

		user, err := deps.Store.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusUnauthorized, "authentication_error", "invalid email or password")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to look up user: %v", err)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			httpError(w, http.StatusUnauthorized, "authentication_error", "invalid email or password")
			return
		}

		token, err := issueToken(deps.JWTSecret, deps.TokenTTL, user.ID)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to issue token: %v", err)
			return
		}

		writeJSON(w, http.StatusOK, authResponse{Token: token, User: viewOf(user)})
	}
}

func handleMe(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := deps.Store.GetUser(userID(r))
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get user: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(user))
	}
}

type profileRequest struct {
	FullName        *string   `json:"fullName" validate:"omitempty,min=2"`
	Education       *string   `json:"education"`
	Department      *string   `json:"department"`
	ExperienceLevel *string   `json:"experienceLevel" validate:"omitempty,oneof=Fresher Junior Mid Senior"`
	PreferredTrack  *string   `json:"preferredTrack"`
	Skills          *[]string `json:"skills"`
}

func handleUpdateProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "validation failed: %v", err)
			return
		}

		upd := storage.ProfileUpdate{
			FullName:       req.FullName,
			Education:      req.Education,
			Department:     req.Department,
			PreferredTrack: req.PreferredTrack,
			Skills:         req.Skills,
		}
		if req.ExperienceLevel != nil {
			level := catalog.ExperienceLevel(*req.ExperienceLevel)
			upd.ExperienceLevel = &level
		}

		user, err := deps.Store.UpdateUserProfile(userID(r), upd)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to update profile: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(user))
	}
}
