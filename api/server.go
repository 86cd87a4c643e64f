// Package api provides HTTP API capabilities for the tournament summary parser.
// This is a capability module that can be enabled via the CLI or used programmatically.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aqlanhadi/pokertrack/analysis"
	"github.com/aqlanhadi/pokertrack/extractor"
	"github.com/aqlanhadi/pokertrack/extractor/common"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Config holds the API server configuration
type Config struct {
	Port      string
	LogPrefix string
	MaxMemory int64
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:      ":8080",
		LogPrefix: "API: ",
		MaxMemory: 32 << 20,
	}
}

// Server represents the HTTP API server
type Server struct {
	config    Config
	processor *extractor.Processor
	mux       *http.ServeMux
}

// New creates a new API server with the given configuration
func New(cfg Config, processor *extractor.Processor) *Server {
	if processor == nil {
		processor = extractor.NewProcessor(nil)
	}
	s := &Server{
		config:    cfg,
		processor: processor,
		mux:       http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// registerRoutes sets up the API endpoints
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/extract", s.handleExtract)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server
// This allows the server to be used with custom http.Server configurations
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	log.Printf("%sStarting server on %s", s.config.LogPrefix, s.config.Port)
	return http.ListenAndServe(s.config.Port, s.mux)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ExtractResponse is the JSON body returned by /extract
type ExtractResponse struct {
	Rows      []analysis.Row   `json:"rows"`
	Summary   analysis.Summary `json:"summary"`
	GameTypes []string         `json:"game_types"`
	Errors    []string         `json:"errors,omitempty"`
}

// handleExtract parses every uploaded summary and returns the filtered table
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	log.Printf("%sReceived request from %s", s.config.LogPrefix, r.RemoteAddr)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(s.config.MaxMemory); err != nil {
		log.Printf("%sError parsing multipart form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	uploads := r.MultipartForm.File["file"]
	if len(uploads) == 0 {
		http.Error(w, "Could not get uploaded file: no file field", http.StatusBadRequest)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, "Invalid filter: "+err.Error(), http.StatusBadRequest)
		return
	}

	var reports []common.TournamentReport
	var failures []string
	for _, upload := range uploads {
		file, err := upload.Open()
		if err != nil {
			log.Printf("%sError opening %s: %v", s.config.LogPrefix, upload.Filename, err)
			failures = append(failures, fmt.Sprintf("%s: %v", upload.Filename, err))
			continue
		}
		report, err := s.processor.ProcessReader(file, upload.Filename)
		file.Close()
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		reports = append(reports, report)
	}

	all := analysis.Build(reports)
	rows := filter.Apply(all)

	if r.FormValue("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="out.csv"`)
		if err := analysis.WriteCSV(w, rows); err != nil {
			log.Printf("%sError writing CSV: %v", s.config.LogPrefix, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ExtractResponse{
		Rows:      rows,
		Summary:   analysis.Summarize(rows),
		GameTypes: analysis.GameTypes(all),
		Errors:    failures,
	})
}

// parseFilter reads filter values from form fields or query params.
// r.Form merges both once the multipart form is parsed.
func parseFilter(r *http.Request) (analysis.Filter, error) {
	value := func(key string) string {
		return strings.TrimSpace(r.FormValue(key))
	}

	var f analysis.Filter
	var err error

	if v := value("since"); v != "" {
		if f.Since, err = time.Parse(dateLayout, v); err != nil {
			return f, fmt.Errorf("since: %w", err)
		}
	}
	if v := value("until"); v != "" {
		if f.Until, err = time.Parse(dateLayout, v); err != nil {
			return f, fmt.Errorf("until: %w", err)
		}
	}
	if f.MinBuyIn, err = optionalDecimal(value("min_buy_in")); err != nil {
		return f, fmt.Errorf("min_buy_in: %w", err)
	}
	if f.MaxBuyIn, err = optionalDecimal(value("max_buy_in")); err != nil {
		return f, fmt.Errorf("max_buy_in: %w", err)
	}
	if f.MinPlayers, err = optionalInt(value("min_players")); err != nil {
		return f, fmt.Errorf("min_players: %w", err)
	}
	if f.MaxPlayers, err = optionalInt(value("max_players")); err != nil {
		return f, fmt.Errorf("max_players: %w", err)
	}

	for _, tag := range r.Form["tag"] {
		if tag = strings.TrimSpace(tag); tag != "" {
			f.Tags = append(f.Tags, tag)
		}
	}
	f.GameType = value("game_type")

	return f, nil
}

func optionalDecimal(v string) (*decimal.Decimal, error) {
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalInt(v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
