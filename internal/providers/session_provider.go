package providers

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"sid/internal/structures"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoSession = errors.New("missing or invalid session token")

// Session is the identity the rest of the daemon trusts as given.
type Session struct {
	UserID  string
	IsAdmin bool
}

type SessionProviderInterface interface {
	Issue(userID string, isAdmin bool, now time.Time) (string, error)
	Verify(token string) (*Session, error)
	AdminUser() string
	VerifyAdminSecret(secret string) bool
}

type sessionClaims struct {
	Admin bool `json:"adm"`
	jwt.RegisteredClaims
}

type SessionProvider struct {
	secret      []byte
	ttl         time.Duration
	adminUser   string
	adminSecret string
}

func NewSessionProvider(conf *structures.Config) SessionProviderInterface {
	return &SessionProvider{
		secret:      []byte(conf.Session.Secret),
		ttl:         conf.Session.TTL,
		adminUser:   conf.Admin.User,
		adminSecret: conf.Admin.Secret,
	}
}

func (sp *SessionProvider) Issue(userID string, isAdmin bool, now time.Time) (string, error) {
	claims := sessionClaims{
		Admin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sp.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sp.secret)
}

func (sp *SessionProvider) Verify(token string) (*Session, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrNoSession
		}
		return sp.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, ErrNoSession
	}
	return &Session{UserID: claims.Subject, IsAdmin: claims.Admin}, nil
}

func (sp *SessionProvider) AdminUser() string {
	return sp.adminUser
}

func (sp *SessionProvider) VerifyAdminSecret(secret string) bool {
	return subtle.ConstantTimeCompare([]byte(secret), []byte(sp.adminSecret)) == 1
}

type sessionCtxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(*Session)
	return s, ok
}

// bearerToken pulls the token out of an "Authorization: Bearer xxx" header.
func bearerToken(r *http.Request) string {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(authz) > 7 && strings.EqualFold(authz[:7], "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}

// SessionMiddleware rejects requests without a valid bearer token and puts
// the verified session on the request context. Paths listed in skip (the
// login endpoint) pass through untouched.
func SessionMiddleware(sessions SessionProviderInterface, logger Logger, next http.Handler, skip ...string) http.Handler {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := skipped[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		session, err := sessions.Verify(token)
		if err != nil {
			logger.Warnf(TypeAuth, "Rejected token on %s: %s", r.URL.Path, err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}
