// Package server serves the two dashboard views, Prediction and Analytics,
// as HTML pages and as JSON.
package server

import (
	// Go Internal Packages
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"net/http"

	// Local Packages
	errors "fraudwatch/errors"
	resources "fraudwatch/resources"
	analytics "fraudwatch/services/analytics"
	prediction "fraudwatch/services/prediction"
	utils "fraudwatch/utils"

	// External Packages
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	Logger    *zap.Logger
	Resources *resources.Resources
	Predictor *prediction.Service
	Analytics *analytics.Service

	predictTmpl   *template.Template
	analyticsTmpl *template.Template
}

// New wires the views to whatever resources loaded. A view whose resource
// failed stays reachable and reports the load error instead of its content.
func New(logger *zap.Logger, res *resources.Resources, failures prediction.FailureSink) (*Server, error) {
	s := &Server{
		Logger:    logger,
		Resources: res,
		Analytics: analytics.NewService(logger),
	}
	if res.Model != nil {
		s.Predictor = prediction.NewService(logger, res.Model, failures)
	}

	var err error
	if s.predictTmpl, err = parsePage("templates/predict.html"); err != nil {
		return nil, err
	}
	if s.analyticsTmpl, err = parsePage("templates/analytics.html"); err != nil {
		return nil, err
	}
	return s, nil
}

func parsePage(page string) (*template.Template, error) {
	return template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", page)
}

var funcs = template.FuncMap{
	"percent": utils.FormatPercent,
	"field": func(name, label string, options []string, selected string) selectField {
		return selectField{Name: name, Label: label, Options: options, Selected: selected}
	},
	"contains": func(values []string, v string) bool {
		for _, x := range values {
			if x == v {
				return true
			}
		}
		return false
	},
	"bar": func(count, total int, color string) template.CSS {
		share := 0.0
		if total > 0 {
			share = 100 * float64(count) / float64(total)
		}
		return template.CSS(fmt.Sprintf("width: %.2f%%; background: %s", share, color))
	},
	"coef": func(c analytics.Coefficient) string {
		if !c.Valid() {
			return "NaN"
		}
		return utils.FormatFixed2(float64(c))
	},
	"heat": func(c analytics.Coefficient) template.CSS {
		if !c.Valid() {
			return "background: #ffffff"
		}
		alpha := math.Abs(float64(c))
		return template.CSS(fmt.Sprintf("background: rgba(8, 81, 156, %.2f); color: %s", alpha, textColor(alpha)))
	},
}

func textColor(alpha float64) string {
	if alpha > 0.5 {
		return "#ffffff"
	}
	return "#222222"
}

type selectField struct {
	Name     string
	Label    string
	Options  []string
	Selected string
}

// Layout is the data every page's navigation needs.
type Layout struct {
	Title      string
	Active     string
	ModelErr   string
	DatasetErr string
}

func (s *Server) layout(title, active string) Layout {
	l := Layout{Title: title, Active: active}
	if s.Resources.ModelErr != nil {
		l.ModelErr = s.Resources.ModelErr.Error()
	}
	if s.Resources.DatasetErr != nil {
		l.DatasetErr = s.Resources.DatasetErr.Error()
	}
	return l
}

// Router returns the mux with every route and middleware attached.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, s.logRequests, s.recoverPanics)
	r.NotFoundHandler = RequestID(http.HandlerFunc(s.notFound))

	r.Handle("/", http.RedirectHandler("/predict", http.StatusFound)).Methods(http.MethodGet)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	r.HandleFunc("/predict", s.predictForm).Methods(http.MethodGet)
	r.HandleFunc("/predict", s.predictSubmit).Methods(http.MethodPost)
	r.HandleFunc("/analytics", s.analyticsView).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/predict", s.predictAPI).Methods(http.MethodPost)
	api.HandleFunc("/analytics", s.analyticsAPI).Methods(http.MethodGet)
	return r
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, errors.E(errors.NotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path), nil))
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	status := map[string]string{"model": "ok", "dataset": "ok"}
	if s.Resources.ModelErr != nil {
		status["model"] = s.Resources.ModelErr.Error()
	}
	if s.Resources.DatasetErr != nil {
		status["dataset"] = s.Resources.DatasetErr.Error()
	}
	s.respondJSON(w, http.StatusOK, status)
}

func (s *Server) render(w http.ResponseWriter, status int, page *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.ExecuteTemplate(w, "layout", data); err != nil {
		s.Logger.Error("cannot render page", zap.Error(err))
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.Logger.Error("cannot encode response", zap.Error(err))
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error(), Kind: errors.KindOf(err).String()}
	var ve *errors.ValidationError
	if errors.As(err, &ve) {
		resp.Fields = ve.Fields
	}
	s.respondJSON(w, statusFor(err), resp)
}

func statusFor(err error) int {
	switch errors.KindOf(err) {
	case errors.Invalid:
		return http.StatusUnprocessableEntity
	case errors.ResourceLoad:
		return http.StatusServiceUnavailable
	case errors.NotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
