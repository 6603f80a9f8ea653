package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/reddotai/sg-property-analyser/internal/analysis"
	"github.com/reddotai/sg-property-analyser/pkg/models"
	"github.com/reddotai/sg-property-analyser/pkg/utils"
)

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AnalyzeRequest is the request body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Listing models.Listing      `json:"listing"`
	Buyer   models.BuyerProfile `json:"buyer"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":   "ok",
			"time_sgt": utils.NowSGT().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidatePrice(req.Listing.Price); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateSize(req.Listing.SizeSqft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateDistrict(req.Listing.District); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Buyer.Category == "" {
		req.Buyer.Category = models.BuyerCitizenFirst
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	market, err := s.agg.FetchMarketData(ctx, req.Listing.District, req.Listing.PropertyType)
	if err != nil {
		writeError(w, http.StatusBadGateway, "market data: "+err.Error())
		return
	}

	result, err := s.eng.Analyze(req.Listing, req.Buyer, market.Transactions, utils.NowSGT())
	if err != nil {
		writeError(w, statusForAnalysisError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"result": result,
			"source": market.Source,
		},
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	district, err := strconv.Atoi(r.URL.Query().Get("district"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "district is required")
		return
	}
	if err := utils.ValidateDistrict(district); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	propertyType := models.PropertyType(r.URL.Query().Get("type"))
	if propertyType == "" {
		propertyType = models.PropertyCondo
	}

	market, err := s.agg.FetchMarketData(r.Context(), district, propertyType)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"transactions": market.Transactions,
			"source":       market.Source,
		},
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	propertyType := models.PropertyType(r.URL.Query().Get("type"))
	if propertyType == "" {
		propertyType = models.PropertyCondo
	}

	history := s.agg.Simulator().GetPriceHistory(r.Context(), r.URL.Query().Get("address"), propertyType)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    history,
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"bsd_tiers":      s.cfg.Duties.BSDTiers,
			"absd_rates":     s.cfg.Duties.ABSDRates,
			"ltv_limits":     s.cfg.Duties.LTVLimits,
			"rates":          s.cfg.Rates,
			"rating_bands":   s.cfg.Rating,
			"lease_warnings": s.cfg.Lease,
		},
	})
}

// statusForAnalysisError maps engine error classes to HTTP statuses:
// bad inputs are the client's problem, missing schedule entries are a
// server configuration problem.
func statusForAnalysisError(err error) int {
	var validationErr *analysis.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	var lookupErr *analysis.LookupError
	if errors.As(err, &lookupErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
