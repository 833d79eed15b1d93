package reportserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"surveylex/internal/store"
)

type api struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewHandler builds the router for the response browser and JSON API.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.DB == nil {
		return nil, errors.New("reportserver: db is required")
	}
	a := &api{db: cfg.DB, logger: logger(cfg)}

	r := mux.NewRouter()
	r.HandleFunc("/", a.index).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}", a.sessionPage).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/sessions", a.listSessions).Methods(http.MethodGet)
	apiRouter.HandleFunc("/sessions/{id}", a.getSession).Methods(http.MethodGet)
	apiRouter.HandleFunc("/sessions/{id}/responses", a.listResponses).Methods(http.MethodGet)
	return r, nil
}

func (a *api) index(w http.ResponseWriter, r *http.Request) {
	sessions, err := store.ListSessions(r.Context(), a.db)
	if err != nil {
		a.fail(w, err)
		return
	}
	templ.Handler(IndexPage(sessions)).ServeHTTP(w, r)
}

func (a *api) sessionPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	session, err := store.GetSession(r.Context(), a.db, id)
	if err != nil {
		a.fail(w, err)
		return
	}
	responses, err := store.ListResponses(r.Context(), a.db, id)
	if err != nil {
		a.fail(w, err)
		return
	}
	templ.Handler(SessionPage(session, responses)).ServeHTTP(w, r)
}

func (a *api) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := store.ListSessions(r.Context(), a.db)
	if err != nil {
		a.fail(w, err)
		return
	}
	if sessions == nil {
		sessions = []store.SessionRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (a *api) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := store.GetSession(r.Context(), a.db, mux.Vars(r)["id"])
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

func (a *api) listResponses(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := store.GetSession(r.Context(), a.db, id); err != nil {
		a.fail(w, err)
		return
	}
	responses, err := store.ListResponses(r.Context(), a.db, id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if responses == nil {
		responses = []store.ResponseRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"responses": responses})
}

func (a *api) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	a.logger.Error("report request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
