package http

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gradebook/internal/auth"
	"gradebook/internal/config"
	"gradebook/internal/grades"
	"gradebook/internal/models"
	"gradebook/internal/report"
	"gradebook/internal/repository"
)

const contentSecurityPolicy = "script-src 'self'"

type Server struct {
	cfg       config.Config
	store     *repository.Store
	auth      *auth.Authenticator
	flashes   *auth.FlashSigner
	templates map[string]*template.Template
	logger    *zap.Logger
}

func NewServer(cfg config.Config, store *repository.Store, authenticator *auth.Authenticator, logger *zap.Logger) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:       cfg,
		store:     store,
		auth:      authenticator,
		flashes:   auth.NewFlashSigner(cfg.SecretKey),
		templates: templates,
		logger:    logger,
	}, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(securityHeaders)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(auth.LoadSession(s.auth))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", s.handleIndex)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Get("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(s.redirectToLogin))
		r.Get("/points", s.handlePoints)
		r.Get("/ects_grades", s.handleECTSGrades)
		r.Get("/ects_grades.xlsx", s.handleECTSExport)
		r.Get("/students", s.handleStudents)
		r.Get("/student/{id}", s.handleStudentGrades)
	})

	return r
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			zap.String("requestID", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	s.flash(w, "info", "Please log in to view this page.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index.html", nil)
}

type loginData struct {
	Username string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", loginData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	sess, err := s.auth.Login(r.Context(), username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.render(w, r, http.StatusOK, "login.html", loginData{Username: username},
			auth.Flash{Category: "error", Message: "Invalid username or password"})
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.flash(w, "info", "You have been logged out.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

type pointsData struct {
	Grades []repository.PointRow
}

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.ListPoints(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "points.html", pointsData{Grades: rows})
}

type ectsData struct {
	Courses []grades.Distribution
	Order   []grades.Grade
}

func (s *Server) handleECTSGrades(w http.ResponseWriter, r *http.Request) {
	samples, err := s.store.ListCourseSamples(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "ects_grades.html", ectsData{
		Courses: grades.Tally(samples),
		Order:   grades.Order,
	})
}

func (s *Server) handleECTSExport(w http.ResponseWriter, r *http.Request) {
	samples, err := s.store.ListCourseSamples(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="ects_grades.xlsx"`)
	if err := report.WriteECTS(w, grades.Tally(samples)); err != nil {
		s.logger.Error("ects export failed", zap.Error(err))
	}
}

type studentsData struct {
	Students []models.Student
}

func (s *Server) handleStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.store.ListStudents(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "students.html", studentsData{Students: students})
}

type studentGradesData struct {
	StudentName string
	Grades      []repository.StudentPointRow
}

func (s *Server) handleStudentGrades(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	student, err := s.store.GetStudent(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	rows, err := s.store.ListStudentPoints(r.Context(), id)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "student_grades.html", studentGradesData{
		StudentName: student.Name,
		Grades:      rows,
	})
}
