package http

import (
	"errors"
	"net/http"

	"bioportal/internal/core/domain"
	"bioportal/internal/core/logger"
	"bioportal/internal/web/components"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) *PageResponse {
	next := safeNext(r.URL.Query().Get("next"))
	if s.deps.Auth.Authorized(sessionFrom(r.Context())) {
		return &PageResponse{Redirect: next}
	}
	return &PageResponse{Title: "Login", Body: components.Login(next, "")}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) *PageResponse {
	if err := s.parseForm(w, r); err != nil {
		return &PageResponse{Title: "Login", Code: http.StatusBadRequest, Body: components.Login("/", userMessage(err))}
	}
	next := safeNext(r.PostFormValue("next"))

	err := s.deps.Auth.Login(r.Context(), sessionFrom(r.Context()), clientKey(r), r.PostFormValue("password"))
	switch {
	case err == nil:
		RecordLogin("success")
		return &PageResponse{Redirect: next}
	case errors.Is(err, domain.ErrTooManyAttempts):
		RecordLogin("throttled")
		return &PageResponse{
			Title: "Login",
			Code:  http.StatusTooManyRequests,
			Body:  components.Login(next, "Too many login attempts. Try again in a minute."),
		}
	case errors.Is(err, domain.ErrInvalidPassword):
		RecordLogin("rejected")
		return &PageResponse{
			Title: "Login",
			Code:  http.StatusUnauthorized,
			Body:  components.Login(next, "Invalid password"),
		}
	default:
		return errorPage(http.StatusInternalServerError, "Internal server error", "Sorry, there was an internal server error.", err)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFrom(r.Context()); sess != nil {
		if err := s.deps.Auth.Logout(r.Context(), sess); err != nil {
			logger.ErrorContext(r.Context(), "Failed to end session", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	target := "/"
	if s.deps.Auth.Enabled() {
		target = "/login"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
