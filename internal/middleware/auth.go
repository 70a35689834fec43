package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fasalmitra/internal/models"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// userSource is the slice of the user repository BasicAuth needs.
type userSource interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// BasicAuth verifies HTTP Basic credentials (email as username, plaintext
// password) against the stored bcrypt hash on every request.
type BasicAuth struct {
	users userSource
}

func NewBasicAuth(users userSource) *BasicAuth {
	return &BasicAuth{users: users}
}

// Middleware authenticates the request and attaches the user id to the
// context. A 401 always carries a WWW-Authenticate: Basic challenge.
func (a *BasicAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok {
			a.challenge(w, r)
			return
		}

		user, err := a.users.GetByEmail(r.Context(), email)
		if err != nil {
			a.challenge(w, r)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			a.challenge(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *BasicAuth) challenge(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Basic")
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password")
}

// GetUserID extracts the authenticated user id from the request context.
func GetUserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return id
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{Detail: detail, Code: code})
}
