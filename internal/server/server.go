package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/downpayment"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"github.com/iwvelando/loan-calculator/pkg/pmi"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	calc        *calculator.Calculator
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		calc:        calculator.New(logger),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/version", h.handleVersion)
		r.Post("/calculate", h.handleCalculate)
		r.Post("/downpayment/edit", h.handleDownPaymentEdit)
		r.Post("/pmi/classify", h.handlePMIClassify)
	})

	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request served",
			zap.String("op", "server.logRequests"),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type calculateResponse struct {
	RunID              string           `json:"runId"`
	Results            []scenarioResult `json:"results"`
	Warnings           []string         `json:"warnings"`
	ValidationWarnings []string         `json:"validationWarnings,omitempty"`
	Duration           string           `json:"duration"`
}

type scenarioResult struct {
	calculator.LoanResult
	CSV            string                 `json:"csv"`
	PhaseBreakdown *output.PhaseBreakdown `json:"phaseBreakdown,omitempty"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	var conf config.Configuration
	if status, err := h.decodeJSON(w, r, &conf); err != nil {
		h.respondError(w, status, err.Error(), op)
		return
	}
	if err := conf.Normalize(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	validationWarnings := conf.ValidateConfiguration()

	comparison, err := h.calc.Compare(conf)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to calculate: %v", err), op)
		return
	}

	response := calculateResponse{
		RunID:              comparison.RunID,
		Results:            make([]scenarioResult, 0, len(comparison.Results)),
		Warnings:           comparison.Warnings,
		ValidationWarnings: validationWarnings,
	}
	if response.Warnings == nil {
		response.Warnings = []string{}
	}
	for _, result := range comparison.Results {
		entry := scenarioResult{LoanResult: result}
		var buf bytes.Buffer
		if err := output.WriteScheduleCSV(&buf, result.Schedule); err != nil {
			h.respondError(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		entry.CSV = buf.String()
		if result.PhaseTotals.InterestOnly.Payments > 0 {
			breakdown := output.NewPhaseBreakdown(result.PhaseTotals)
			entry.PhaseBreakdown = &breakdown
		}
		response.Results = append(response.Results, entry)
	}

	elapsed := time.Since(start)
	response.Duration = elapsed.String()
	h.logger.Info("calculation served",
		zap.String("op", op),
		zap.String("run_id", comparison.RunID),
		zap.Int("scenarios", len(response.Results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

type editRequest struct {
	State downpayment.State `json:"state"`
	Edit  *editPayload      `json:"edit"`
	Edits []editPayload     `json:"edits"`
}

type editPayload struct {
	Field downpayment.Field `json:"field"`
	Value looseNumber       `json:"value"`
}

// handleDownPaymentEdit applies a single edit or an ordered stream of edits
// to the posted state.
func (h *handler) handleDownPaymentEdit(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDownPaymentEdit"

	var req editRequest
	if status, err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, status, err.Error(), op)
		return
	}
	if req.Edit == nil && len(req.Edits) == 0 {
		h.respondError(w, http.StatusBadRequest, "missing edit", op)
		return
	}

	payloads := req.Edits
	if req.Edit != nil {
		payloads = append([]editPayload{*req.Edit}, payloads...)
	}
	edits := make([]downpayment.Edit, 0, len(payloads))
	for _, p := range payloads {
		edits = append(edits, downpayment.Edit{Field: p.Field, Value: float64(p.Value)})
	}

	h.writeJSON(w, http.StatusOK, downpayment.Apply(req.State, edits...))
}

type classifyRequest struct {
	PropertyValue looseNumber `json:"propertyValue"`
	DownPayment   looseNumber `json:"downPayment"`
	PMIRate       looseNumber `json:"pmiRate"`
	Threshold     looseNumber `json:"threshold"`
}

func (h *handler) handlePMIClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if status, err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, status, err.Error(), "server.handlePMIClassify")
		return
	}

	h.writeJSON(w, http.StatusOK, pmi.Classify(
		float64(req.PropertyValue),
		float64(req.DownPayment),
		float64(req.PMIRate),
		float64(req.Threshold),
	))
}

// looseNumber accepts a JSON number or a free-form string such as "$500,000".
// Anything unparseable decodes to 0.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*n = looseNumber(v)
	case string:
		*n = looseNumber(mathutil.ParseLoose(v))
	default:
		*n = 0
	}
	return nil
}

// decodeJSON reads a size-limited JSON body into dst and reports the status
// to respond with on failure.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds limit of %d bytes", h.maxBodySize)
		}
		return http.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err)
	}
	return http.StatusOK, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before committing the status so an encoding
// failure is reported as a 500 rather than an empty success.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Int("status", status),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(map[string]string{"error": "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}
