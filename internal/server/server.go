// Package server exposes the vaani HTTP API.
//
// Endpoints: multipart audio processing, generated-audio serving, form
// retrieval with a read-through cache, a dependency status probe, and the
// Swagger UI. Everything here is thin plumbing around the pipeline.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/vaanihq/vaani/internal/message"
	"github.com/vaanihq/vaani/internal/store"
)

// maxUploadBytes bounds the inbound audio payload.
const maxUploadBytes = 25 << 20

// Processor runs one request through the audio pipeline.
type Processor interface {
	Process(ctx context.Context, req *message.ProcessRequest) (*message.PipelineResult, error)
}

// FormSource retrieves generated forms from the logic service and answers
// availability probes.
type FormSource interface {
	FetchForm(ctx context.Context, filename string) ([]byte, error)
	Ping(ctx context.Context) error
}

// EnginePinger probes the text-generation engine.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// Server is the vaani HTTP API server.
type Server struct {
	port      int
	uploadDir string
	pipeline  Processor
	logic     FormSource
	engine    EnginePinger
	audio     *store.Store
	forms     *store.Store
	server    *http.Server
}

// New creates a Server. Uploaded audio is spooled to uploadDir; the pipeline
// owns and removes each spooled file.
func New(port int, uploadDir string, pipeline Processor, logicSvc FormSource,
	enginePinger EnginePinger, audio, forms *store.Store) *Server {
	return &Server{
		port:      port,
		uploadDir: uploadDir,
		pipeline:  pipeline,
		logic:     logicSvc,
		engine:    enginePinger,
		audio:     audio,
		forms:     forms,
	}
}

// Routes builds the API route table.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/process-audio", s.handleProcessAudio)
	mux.HandleFunc("GET /audio/{filename}", s.handleAudio)
	mux.HandleFunc("GET /form/{form_filename}", s.handleForm)
	mux.HandleFunc("GET /api/status", s.handleStatus)

	// Swagger UI — serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return cors(mux)
}

// ListenAndServe starts the API server. It blocks until the context is
// cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("api server listening", "port", s.port)

	go func() {
		<-ctx.Done()
		slog.Info("api server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("api listen: %w", err)
	}
	return nil
}

// Close gracefully shuts down the API server.
func (s *Server) Close() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleProcessAudio runs an uploaded audio clip through the pipeline.
//
// @Summary     Process a spoken request
// @Description Accepts a multipart audio clip plus user id, language code, and JSON conversation
// @Description history. The audio is translated to English, answered by the welfare-scheme logic
// @Description service (or a local fallback), localized, and synthesized to speech.
// @Tags        pipeline
// @Accept      multipart/form-data
// @Produce     json
// @Param       audio                formData  file    true   "Audio clip (webm/wav/mp3)"
// @Param       userId               formData  string  false  "User identifier"              default(default_user)
// @Param       language             formData  string  false  "ISO-639-1 language code"      default(en)
// @Param       conversationHistory  formData  string  false  "JSON array of prior turns"
// @Success     200  {object}  message.PipelineResult
// @Failure     400  {object}  map[string]string  "No audio file provided"
// @Failure     500  {object}  map[string]string  "Processing failure"
// @Router      /api/process-audio [post]
func (s *Server) handleProcessAudio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No audio file provided."})
		return
	}
	defer file.Close()

	audioPath, err := s.spoolUpload(file, header.Filename)
	if err != nil {
		slog.Error("could not spool uploaded audio", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to process audio.",
			"details": err.Error(),
		})
		return
	}

	req := &message.ProcessRequest{
		AudioPath: audioPath,
		UserID:    formValue(r, "userId", "default_user"),
		Language:  formValue(r, "language", "en"),
		History:   message.ParseHistory(r.FormValue("conversationHistory")),
	}
	slog.Info("processing audio request", "user_id", req.UserID, "language", req.Language, "upload", filepath.Base(audioPath))

	result, err := s.pipeline.Process(r.Context(), req)
	if err != nil {
		slog.Error("pipeline failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to process audio.",
			"details": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// spoolUpload writes the uploaded audio to a uniquely named temporary file.
func (s *Server) spoolUpload(file io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}
	path := filepath.Join(s.uploadDir, store.UploadFilename(originalName))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return path, nil
}

// handleAudio serves synthesized reply audio.
//
// @Summary  Fetch generated reply audio
// @Tags     pipeline
// @Produce  audio/mpeg
// @Param    filename  path  string  true  "Audio filename from audioUrl"
// @Success  200  {file}    binary
// @Failure  404  {string}  string  "Not found"
// @Router   /audio/{filename} [get]
func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	if !s.audio.Exists(filename) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.audio.Path(filename))
}

// handleForm serves a generated HTML form, read-through cached: a local store
// hit is served directly, a miss is fetched from the logic service's base
// endpoint and written through before serving.
//
// @Summary  Fetch a generated application form
// @Tags     forms
// @Produce  html
// @Param    form_filename  path  string  true  "Form filename"
// @Success  200  {string}  string  "Form HTML"
// @Failure  404  {string}  string  "Form not found or could not be retrieved"
// @Router   /form/{form_filename} [get]
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("form_filename")
	logger := slog.With("form", filename)

	content, err := s.forms.Get(filename)
	if err == nil {
		logger.Debug("serving locally stored form")
		writeHTML(w, content)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		logger.Error("form store read failed", "error", err)
		http.Error(w, "Form not found or could not be retrieved", http.StatusNotFound)
		return
	}

	logger.Info("form not found locally, fetching from logic service")
	content, err = s.logic.FetchForm(r.Context(), filename)
	if err != nil {
		logger.Warn("form fetch failed", "error", err)
		http.Error(w, "Form not found or could not be retrieved", http.StatusNotFound)
		return
	}

	if err := s.forms.Put(filename, content); err != nil {
		// Serve the fetched content anyway; only the cache write failed.
		logger.Error("form write-through failed", "error", err)
	}
	writeHTML(w, content)
}

// serviceStatus reports one probed dependency.
type serviceStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// statusResponse is the aggregate health report.
type statusResponse struct {
	Status    string                   `json:"status"`
	Services  map[string]serviceStatus `json:"services"`
	Timestamp string                   `json:"timestamp"`
}

// handleStatus probes the text engine and the logic service and reports
// aggregate health. healthy requires every probed dependency online; the
// synthesis engine is not probed and does not affect the aggregate.
//
// @Summary  Report dependency health
// @Tags     status
// @Produce  json
// @Success  200  {object}  statusResponse
// @Router   /api/status [get]
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	services := map[string]serviceStatus{
		"server":         {Status: "online"},
		"groq_api":       {Status: "online"},
		"external_api":   {Status: "online"},
		"elevenlabs_api": {Status: "unprobed"},
	}
	healthy := true

	if err := s.engine.Ping(r.Context()); err != nil {
		services["groq_api"] = serviceStatus{Status: "offline", Error: err.Error()}
		healthy = false
	}
	if err := s.logic.Ping(r.Context()); err != nil {
		services["external_api"] = serviceStatus{Status: "offline", Error: err.Error()}
		healthy = false
	}

	status := "healthy"
	if !healthy {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:    status,
		Services:  services,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func formValue(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, content []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(content)
}

// cors allows browser frontends on other origins to call the API.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
