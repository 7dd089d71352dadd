package sense

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/utils"
)

// maxRequestBytes ограничивает тело запроса (SVG разметка).
const maxRequestBytes = 5 << 20

// Server обслуживает маршруты Icon Sense.
//
//	POST /api/icon-sense  {icon, iconName, iconTags} → {name, tags}
//	POST /api/tag-sense   {iconName}                 → {name, tags}
//
// Ошибки: 400 на отсутствующий вход, 500 с {error, name:"", tags:[]}
// на сбой модели.
type Server struct {
	analyzer *Analyzer
	mux      *http.ServeMux
}

// NewServer создает сервер поверх Analyzer.
func NewServer(a *Analyzer) *Server {
	s := &Server{analyzer: a, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST "+IconSensePath, s.handle(true))
	s.mux.HandleFunc("POST "+TagSensePath, s.handle(false))
	return s
}

// ServeHTTP реализует http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type errorResponse struct {
	Error string   `json:"error"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
}

func (s *Server) handle(visual bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var req Request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body", Tags: []string{}})
			return
		}

		if visual && req.Icon == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: `Missing or invalid "icon" (SVG) input`, Tags: []string{}})
			return
		}
		if !visual && req.IconName == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: `Missing or invalid "iconName" input`, Tags: []string{}})
			return
		}

		sug, err := s.analyzer.Analyze(r.Context(), req, visual)
		if err != nil {
			utils.Error("Icon analysis failed",
				"path", r.URL.Path,
				"icon", req.IconName,
				"error", err)

			msg := "Internal server error during icon analysis"
			if errors.Is(err, ErrMalformedSuggestion) {
				msg = "Invalid model response format"
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msg, Tags: []string{}})
			return
		}

		utils.Info("Icon analyzed",
			"path", r.URL.Path,
			"icon", req.IconName,
			"name", sug.Name,
			"tags", len(sug.Tags),
			"duration_ms", time.Since(start).Milliseconds())

		writeJSON(w, http.StatusOK, sug)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Warn("Failed to write response", "error", err)
	}
}
