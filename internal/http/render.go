package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"gradebook/internal/auth"
	"gradebook/internal/grades"
	"gradebook/internal/models"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"index.html",
	"login.html",
	"points.html",
	"students.html",
	"student_grades.html",
	"ects_grades.html",
}

var templateFuncs = template.FuncMap{
	"ects": func(value *float64) string {
		if g, ok := grades.ECTS(value); ok {
			return string(g)
		}
		return "-"
	},
	"score": func(value *float64) string {
		if value == nil {
			return "-"
		}
		return strconv.FormatFloat(*value, 'f', -1, 64)
	},
}

// view is the data every page template receives.
type view struct {
	User    *models.Session
	Flashes []auth.Flash
	Data    interface{}
}

func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(templateFuncs).ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	return templates, nil
}

// render buffers the page so a template error can still become a 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}, flashes ...auth.Flash) {
	tmpl, ok := s.templates[page]
	if !ok {
		s.serverError(w, r, fmt.Errorf("unknown template %s", page))
		return
	}

	v := view{
		Flashes: append(s.popFlashes(w, r), flashes...),
		Data:    data,
	}
	if sess, ok := auth.SessionFromContext(r.Context()); ok {
		v.User = &sess
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", v); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// flash queues a message for the next rendered page.
func (s *Server) flash(w http.ResponseWriter, category, message string) {
	value, err := s.flashes.Encode(auth.Flash{Category: category, Message: message})
	if err != nil {
		s.logger.Warn("flash encode failed", zap.Error(err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.FlashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []auth.Flash {
	cookie, err := r.Cookie(auth.FlashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	flashes, err := s.flashes.Decode(cookie.Value)
	if err != nil {
		s.logger.Debug("dropping invalid flash cookie", zap.Error(err))
		return nil
	}
	return flashes
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
