package http

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/a-h/templ"

	"bioportal/internal/adapters/upload"
	"bioportal/internal/core/circuitbreaker"
	"bioportal/internal/core/domain"
	"bioportal/internal/core/logger"
	"bioportal/internal/web/components"
)

// PageResponse is what a page handler hands back for rendering inside the
// shared layout.
type PageResponse struct {
	Title    string
	Active   string
	Code     int
	Body     templ.Component
	Redirect string
	Error    error
}

type PageHandler func(http.ResponseWriter, *http.Request) *PageResponse

func (s *Server) page(h PageHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		resp := h(w, r)

		if resp.Error != nil {
			logger.ErrorContext(ctx, "Page handler failed", "path", r.URL.Path, "error", resp.Error)
		}
		if resp.Redirect != "" {
			http.Redirect(w, r, resp.Redirect, http.StatusSeeOther)
			return
		}

		sess := sessionFrom(ctx)
		data := components.PageData{
			Title:         resp.Title,
			Active:        resp.Active,
			AuthEnabled:   s.deps.Auth.Enabled(),
			Authenticated: sess != nil && sess.Authenticated,
		}

		var buf bytes.Buffer
		if err := components.Page(data, resp.Body).Render(ctx, &buf); err != nil {
			logger.ErrorContext(ctx, "Failed to render page", "path", r.URL.Path, "error", err)
			http.Error(w, "failed to render page", http.StatusInternalServerError)
			return
		}

		code := resp.Code
		if code == 0 {
			code = http.StatusOK
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(code)
		_, _ = w.Write(buf.Bytes())
	}
}

func errorPage(code int, title, msg string, err error) *PageResponse {
	return &PageResponse{
		Title: title,
		Code:  code,
		Body:  components.ErrorCard(code, title, msg),
		Error: err,
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) *PageResponse {
	return errorPage(http.StatusNotFound, "Not found", "Sorry, we couldn't find the page you were looking for.", nil)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) *PageResponse {
	return errorPage(http.StatusMethodNotAllowed, "Method not allowed", "Sorry, that action is not supported on this page.", nil)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) *PageResponse {
	return &PageResponse{Body: components.Home(domain.Catalog)}
}

// parseForm reads a POST body within the upload cap. Multipart bodies keep at
// most maxUpload bytes in memory.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.deps.MaxUploadBytes+1<<20)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if ct == "multipart/form-data" {
		err = r.ParseMultipartForm(s.deps.MaxUploadBytes)
	} else {
		err = r.ParseForm()
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: upload exceeds the size limit", domain.ErrInvalidInput)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func (s *Server) readUpload(r *http.Request, field string, allowed []string) (*upload.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	return upload.Read(r, field, allowed, s.deps.MaxUploadBytes)
}

// notice turns a tool error into an inline message. Caller errors keep
// their text; anything else is logged and shown generically.
func notice(r *http.Request, err error) components.Notice {
	switch {
	case errors.Is(err, domain.ErrNotImplemented):
		return components.Notice{Kind: components.MessageInfo, Text: userMessage(err)}
	case errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrUnknownBackend):
		return components.Notice{Kind: components.MessageError, Text: userMessage(err)}
	case errors.Is(err, domain.ErrInvalidInput):
		return components.Notice{Kind: components.MessageWarning, Text: userMessage(err)}
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return components.Notice{Kind: components.MessageError, Text: "The backend is temporarily unavailable. Try again shortly."}
	default:
		logger.ErrorContext(r.Context(), "Tool run failed", "path", r.URL.Path, "error", err)
		return components.Notice{Kind: components.MessageError, Text: "Something went wrong: " + err.Error()}
	}
}

var sentinels = []error{
	domain.ErrUnsupportedFormat,
	domain.ErrEmptyInput,
	domain.ErrInvalidInput,
	domain.ErrNotImplemented,
	domain.ErrUnknownBackend,
}

// userMessage strips the sentinel prefix from a wrapped error and
// capitalizes the rest: "invalid input: please upload..." becomes
// "Please upload...".
func userMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range sentinels {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			msg = rest
			break
		}
	}
	msg = strings.ReplaceAll(msg, "\n", " ")
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

func success(text string) components.Notice {
	return components.Notice{Kind: components.MessageSuccess, Text: text}
}

func warning(text string) components.Notice {
	return components.Notice{Kind: components.MessageWarning, Text: text}
}
