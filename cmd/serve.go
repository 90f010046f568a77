package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/midivary/chord"
	"github.com/jsphweid/midivary/config"
	"github.com/jsphweid/midivary/logger"
	"github.com/jsphweid/midivary/midi"
	"github.com/jsphweid/midivary/model"
	"github.com/jsphweid/midivary/variation"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const (
	maxUploadBytes     = 32 << 20
	sentryFlushTimeout = 2 * time.Second
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the HTTP API",
	Long:  `Serves GET /modules, POST /analyze-chords and POST /generate on $PORT.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cfg, registry)
	},
}

func serve(cfg *config.Config, reg *variation.Registry) error {
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Debug:       !cfg.IsProduction(),
		}); err != nil {
			logger.Warn("Failed to initialize Sentry", logger.Fields{"error": err.Error()})
		} else {
			defer sentry.Flush(sentryFlushTimeout)
		}
	}

	// discover up front so a broken module fails startup, not the first request
	if err := reg.Load(); err != nil {
		return err
	}

	sentryHandler := sentryhttp.New(sentryhttp.Options{Repanic: true})
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	handler := corsHandler.Handler(sentryHandler.Handle(NewRouter(reg)))

	logger.Info("Starting server", logger.Fields{"port": cfg.Port})
	return http.ListenAndServe(":"+cfg.Port, handler)
}

func NewRouter(reg *variation.Registry) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(requestTracking)
	router.HandleFunc("/modules", handleModules(reg)).Methods(http.MethodGet)
	router.HandleFunc("/analyze-chords", handleAnalyzeChords).Methods(http.MethodPost)
	router.HandleFunc("/generate", handleGenerate(reg)).Methods(http.MethodPost)
	return router
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestTracking(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("API request completed", logger.Fields{
			"request_id":  requestID,
			"method":      r.Method,
			"path":        r.URL.Path,
			"status_code": rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, variation.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, variation.ErrInvalidInput), errors.Is(err, midi.ErrInvalidMidi):
		status = http.StatusBadRequest
	}

	detail := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", err, logger.Fields{
			"request_id": w.Header().Get("X-Request-ID"),
			"path":       r.URL.Path,
		})
		detail = "internal error"
	}
	writeJSON(w, status, model.ErrorResponse{Error: detail})
}

func readUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("%w: expected a multipart form with a file: %v", variation.ErrInvalidInput, err)
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: missing file: %v", variation.ErrInvalidInput, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func handleModules(reg *variation.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		descriptions, err := describeModules(reg)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, descriptions)
	}
}

func handleAnalyzeChords(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	timeline, err := midi.Decode(data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.AnalyzeResponse{Chords: chord.Analyze(timeline)})
}

func handleGenerate(reg *variation.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("module")
		// unknown modules are reported before the upload is read
		if _, err := reg.Get(name); err != nil {
			writeError(w, r, err)
			return
		}

		data, err := readUpload(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		chords, err := parseChords(r.FormValue("chords"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		out, err := runGeneration(reg, name, data, r.FormValue("parameters"), chords)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "audio/midi")
		w.Write(out)
	}
}
