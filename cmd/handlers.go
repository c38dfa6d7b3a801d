package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/dealdesk/loi-parser/internal/config"
	"github.com/dealdesk/loi-parser/internal/extract"
	"github.com/dealdesk/loi-parser/internal/model"
	"github.com/dealdesk/loi-parser/pkg/docgen"
)

const (
	serviceName    = "CRE LOI Parser API"
	serviceVersion = "1.0.0"
)

// extractor is the slice of extract.Service the handlers depend on.
type extractor interface {
	ExtractWithConfidence(ctx context.Context, transcript string) (*model.LOIFieldsWithConfidence, error)
}

type parseRequest struct {
	Transcript string `json:"transcript"`
}

type parseResponse struct {
	Success             bool              `json:"success"`
	Data                *model.LOIFields  `json:"data"`
	Message             string            `json:"message"`
	FieldConfidences    model.Confidences `json:"field_confidences"`
	LowConfidenceFields []string          `json:"low_confidence_fields"`
}

type generateDocRequest struct {
	LOIData json.RawMessage `json:"loi_data"`
}

// newRouter wires the HTTP facade. Configuration and collaborators are
// passed in explicitly; handlers hold no global state.
func newRouter(cfg *config.Config, svc extractor, doc docgen.Client) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/", handleRoot)
	r.Get("/health", handleHealth(cfg, doc))
	r.Post("/parse", handleParse(cfg, svc))
	r.Post("/parse/mock", handleParseMock)
	r.Post("/generate-document", handleGenerateDocument(doc))
	r.Get("/schema", handleSchema)

	return r
}

// requestLogger logs each request with structured zap fields.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "online",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// handleHealth reports service status and fires a detached best-effort wake
// ping to the document service. The ping's outcome is never surfaced.
func handleHealth(cfg *config.Config, doc docgen.Client) http.HandlerFunc {
	wakeTimeout := time.Duration(cfg.DocService.WakeTimeoutSecs) * time.Second
	return func(w http.ResponseWriter, _ *http.Request) {
		go wakeDocumentService(doc, wakeTimeout)

		respondJSON(w, http.StatusOK, map[string]any{
			"status":           "healthy",
			"llm_configured":   cfg.Anthropic.Key != "",
			"document_service": cfg.DocService.BaseURL,
		})
	}
}

// wakeDocumentService pings the document service health endpoint with a
// long timeout so its hosting tier has time to boot a cold instance.
// Failure is swallowed.
func wakeDocumentService(doc docgen.Client, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := doc.Health(ctx); err != nil {
		zap.L().Debug("document service wake ping failed", zap.Error(err))
	}
}

func handleParse(cfg *config.Config, svc extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req parseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if utf8.RuneCountInString(strings.TrimSpace(req.Transcript)) < cfg.Parse.MinTranscriptChars {
			respondError(w, http.StatusBadRequest,
				"Transcript too short. Please provide a meaningful conversation.")
			return
		}

		// Deliberately not the request context: a client disconnect must not
		// abort the in-flight LLM call.
		result, err := svc.ExtractWithConfidence(context.Background(), req.Transcript)
		if err != nil {
			respondExtractionError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, parseResponse{
			Success:             true,
			Data:                &result.Data,
			Message:             "LOI fields extracted successfully",
			FieldConfidences:    result.FieldConfidences,
			LowConfidenceFields: result.LowConfidenceFields,
		})
	}
}

// respondExtractionError maps extraction failures to HTTP statuses: schema
// and envelope problems are client errors (richer transcript needed),
// collaborator failures are gateway errors, anything else is a generic 500
// with full detail logged server-side only.
func respondExtractionError(w http.ResponseWriter, err error) {
	var malformed *extract.MalformedResponseError
	var schemaErr *extract.SchemaError
	var incomplete *extract.IncompleteExtractionError
	var timeout *extract.CollaboratorTimeoutError
	var unavailable *extract.CollaboratorUnavailableError

	switch {
	case errors.As(err, &malformed) || errors.As(err, &schemaErr) || errors.As(err, &incomplete):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &timeout):
		respondError(w, http.StatusGatewayTimeout, "LLM service timed out. Please retry.")
	case errors.As(err, &unavailable):
		respondError(w, http.StatusServiceUnavailable, "LLM service unavailable. Please retry later.")
	default:
		zap.L().Error("extraction failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Extraction failed due to an internal error.")
	}
}

func handleParseMock(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, parseResponse{
		Success:             true,
		Data:                extract.CreateMock(),
		Message:             "Mock LOI generated for testing (no confidence scoring for mock data)",
		FieldConfidences:    model.Confidences{},
		LowConfidenceFields: []string{},
	})
}

func handleGenerateDocument(doc docgen.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateDocRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.LOIData) == 0 {
			respondError(w, http.StatusBadRequest, "loi_data is required")
			return
		}

		fields, err := model.ParseLOIFields(req.LOIData)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid loi_data: "+err.Error())
			return
		}

		// Same rule as /parse: the collaborator call is not tied to the
		// inbound request's context.
		body, err := doc.Generate(context.Background(), fields)
		if err != nil {
			respondDocServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// respondDocServiceError maps document-service failures: non-200 answers
// are gateway errors, timeouts get a retry hint, connection failures are
// service-unavailable.
func respondDocServiceError(w http.ResponseWriter, err error) {
	var statusErr *docgen.StatusError
	var urlErr *url.Error

	switch {
	case errors.As(err, &statusErr):
		zap.L().Error("document service returned error status",
			zap.Int("status", statusErr.Code),
			zap.String("body", statusErr.Body),
		)
		respondError(w, http.StatusBadGateway,
			fmt.Sprintf("Document service error (%d): %s", statusErr.Code, statusErr.Body))
	case docgen.IsTimeout(err):
		zap.L().Error("document service timed out", zap.Error(err))
		respondError(w, http.StatusGatewayTimeout,
			"Document service timed out. It may be starting up; please retry in 30 seconds.")
	case errors.As(err, &urlErr):
		zap.L().Error("document service connection error", zap.Error(err))
		respondError(w, http.StatusServiceUnavailable, "Document service unavailable.")
	default:
		zap.L().Error("document generation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Document generation failed.")
	}
}

func handleSchema(w http.ResponseWriter, _ *http.Request) {
	schema, err := model.Schema()
	if err != nil {
		zap.L().Error("schema reflection failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "schema unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(schema)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}
