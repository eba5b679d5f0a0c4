package controllers

import (
	"errors"
	"net/http"
	"sid/internal/export"
	"sid/internal/models"
	"sid/internal/providers"
	"sid/internal/sequence"
	"sid/internal/services"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// Cache keys for the admin read endpoints. Both views change on every save
// and login, so those paths invalidate them.
const (
	cacheKeyAnalytics = "analytics"
	cacheKeyUsers     = "users"
)

type ApiController struct {
	logger    providers.Logger
	processor services.ProcessorServiceInterface
	registry  services.RegistryServiceInterface
	sessions  providers.SessionProviderInterface
	cache     providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, processor services.ProcessorServiceInterface, registry services.RegistryServiceInterface, sessions providers.SessionProviderInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		processor: processor,
		registry:  registry,
		sessions:  sessions,
		cache:     cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (ac *ApiController) session(w http.ResponseWriter, r *http.Request) *providers.Session {
	session, ok := providers.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	return session
}

func (ac *ApiController) adminSession(w http.ResponseWriter, r *http.Request) *providers.Session {
	session := ac.session(w, r)
	if session == nil {
		return nil
	}
	if !session.IsAdmin {
		ac.logger.Warnf(providers.TypeAuth, "User %s denied on %s", session.UserID, r.URL.Path)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil
	}
	return session
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

type loginRequest struct {
	UserID string `json:"user_id"`
	Secret string `json:"secret"`
}

type loginResponse struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"is_admin"`
}

func (ac *ApiController) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	userID := strings.TrimSpace(payload.UserID)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	isAdmin := userID == ac.sessions.AdminUser()
	if isAdmin && !ac.sessions.VerifyAdminSecret(payload.Secret) {
		ac.logger.Warnf(providers.TypeAuth, "Failed admin login for %s", userID)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	ac.registry.RegisterLogin(userID, now)
	ac.cache.Del(cacheKeyAnalytics)
	ac.cache.Del(cacheKeyUsers)

	token, err := ac.sessions.Issue(userID, isAdmin, now)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.logger.Infof(providers.TypeAuth, "User %s logged in (admin=%t)", userID, isAdmin)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, IsAdmin: isAdmin})
}

type executeRequest struct {
	Text string `json:"text"`
}

func (ac *ApiController) Execute(w http.ResponseWriter, r *http.Request) {
	session := ac.session(w, r)
	if session == nil {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload executeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result, err := ac.processor.Process(session.UserID, payload.Text, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyInput),
			errors.Is(err, models.ErrNoIdentifiers),
			errors.Is(err, models.ErrNoSequential):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			ac.logger.Errorf(providers.TypePost, "Execute failed for %s: %s", session.UserID, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	ac.cache.Del(cacheKeyAnalytics)
	ac.cache.Del(cacheKeyUsers)
	writeJSON(w, http.StatusOK, result)
}

func (ac *ApiController) Heartbeat(w http.ResponseWriter, r *http.Request) {
	session := ac.session(w, r)
	if session == nil {
		return
	}
	ac.registry.Heartbeat(session.UserID, time.Now())
	w.WriteHeader(http.StatusNoContent)
}

// recordFilter builds the query filter from request parameters: date (exact),
// q (substring) and digits (11, 15 or "all").
func recordFilter(r *http.Request) models.RecordFilter {
	filter := models.RecordFilter{
		Date:   r.URL.Query().Get("date"),
		Search: r.URL.Query().Get("q"),
	}
	if digits := r.URL.Query().Get("digits"); digits != "" && digits != "all" {
		if n := cast.ToInt(digits); n == sequence.LenShort || n == sequence.LenLong {
			filter.Digits = n
		}
	}
	return filter
}

func (ac *ApiController) Records(w http.ResponseWriter, r *http.Request) {
	session := ac.session(w, r)
	if session == nil {
		return
	}
	writeJSON(w, http.StatusOK, ac.registry.Records(session.UserID, recordFilter(r)))
}

func (ac *ApiController) Stats(w http.ResponseWriter, r *http.Request) {
	session := ac.session(w, r)
	if session == nil {
		return
	}
	writeJSON(w, http.StatusOK, ac.registry.UserStats(session.UserID, time.Now()))
}

func (ac *ApiController) Export(w http.ResponseWriter, r *http.Request) {
	session := ac.session(w, r)
	if session == nil {
		return
	}

	records := ac.registry.Records(session.UserID, recordFilter(r))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="records.csv"`)
	if err := export.WriteRecordsCSV(w, records); err != nil {
		ac.logger.Errorf(providers.TypeGet, "CSV export failed for %s: %s", session.UserID, err)
	}
}

func (ac *ApiController) Analytics(w http.ResponseWriter, r *http.Request) {
	if ac.adminSession(w, r) == nil {
		return
	}
	ac.serveFromCacheOrCompute(w, cacheKeyAnalytics, func() (any, error) {
		return ac.registry.GlobalSnapshot(), nil
	})
}

func (ac *ApiController) Users(w http.ResponseWriter, r *http.Request) {
	if ac.adminSession(w, r) == nil {
		return
	}
	ac.serveFromCacheOrCompute(w, cacheKeyUsers, func() (any, error) {
		return ac.registry.AllUsers(time.Now()), nil
	})
}
