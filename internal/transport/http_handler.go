// Package transport exposes the block order worker over HTTP and the
// daemon's admin gRPC server.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/goodnatureofminers/swapbroker/internal/blockorder"
	"github.com/goodnatureofminers/swapbroker/internal/engine"
	"github.com/goodnatureofminers/swapbroker/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxRequestBody = 1 << 16

// CreateBlockOrderRequest is the body of POST /v1/block_orders. Amount and
// LimitPrice are in common units; exactly one of LimitPrice and
// IsMarketOrder is set.
type CreateBlockOrderRequest struct {
	Market        string           `json:"market"`
	Side          string           `json:"side"`
	Amount        decimal.Decimal  `json:"amount"`
	LimitPrice    *decimal.Decimal `json:"limitPrice,omitempty"`
	IsMarketOrder bool             `json:"isMarketOrder,omitempty"`
	TimeInForce   string           `json:"timeInForce,omitempty"`
}

type CreateBlockOrderResponse struct {
	BlockOrderID string `json:"blockOrderId"`
}

type GetBlockOrdersResponse struct {
	BlockOrders []model.BlockOrderSummary `json:"blockOrders"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPHandler serves the block order API.
type HTTPHandler struct {
	blockOrders BlockOrders
	logger      *zap.Logger
	mux         *http.ServeMux
}

func NewHTTPHandler(blockOrders BlockOrders, logger *zap.Logger) *HTTPHandler {
	h := &HTTPHandler{
		blockOrders: blockOrders,
		logger:      logger.Named("http_handler"),
		mux:         http.NewServeMux(),
	}
	h.mux.HandleFunc("POST /v1/block_orders", h.createBlockOrder)
	h.mux.HandleFunc("GET /v1/block_orders", h.getBlockOrders)
	h.mux.HandleFunc("GET /v1/block_orders/{id}", h.getBlockOrder)
	h.mux.HandleFunc("DELETE /v1/block_orders/{id}", h.cancelBlockOrder)
	return h
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *HTTPHandler) createBlockOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockOrderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: decode request: %v", model.ErrInvalidParams, err))
		return
	}
	params, err := req.params()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := h.blockOrders.CreateBlockOrder(r.Context(), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, CreateBlockOrderResponse{BlockOrderID: id})
}

func (req CreateBlockOrderRequest) params() (blockorder.CreateParams, error) {
	side, err := model.ParseSide(req.Side)
	if err != nil {
		return blockorder.CreateParams{}, err
	}
	if req.IsMarketOrder == (req.LimitPrice != nil) {
		return blockorder.CreateParams{}, fmt.Errorf("%w: set either limitPrice or isMarketOrder", model.ErrInvalidParams)
	}
	return blockorder.CreateParams{
		MarketName:  req.Market,
		Side:        side,
		Amount:      req.Amount,
		Price:       req.LimitPrice,
		TimeInForce: model.TimeInForce(req.TimeInForce),
	}, nil
}

func (h *HTTPHandler) getBlockOrders(w http.ResponseWriter, r *http.Request) {
	market := r.URL.Query().Get("market")
	if market == "" {
		h.writeError(w, r, fmt.Errorf("%w: market is required", model.ErrInvalidParams))
		return
	}
	blockOrders, err := h.blockOrders.GetBlockOrders(r.Context(), market)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res := GetBlockOrdersResponse{BlockOrders: make([]model.BlockOrderSummary, 0, len(blockOrders))}
	for _, bo := range blockOrders {
		res.BlockOrders = append(res.BlockOrders, bo.SerializeSummary())
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *HTTPHandler) getBlockOrder(w http.ResponseWriter, r *http.Request) {
	bo, err := h.blockOrders.GetBlockOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, bo.Serialize())
}

func (h *HTTPHandler) cancelBlockOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.blockOrders.CancelBlockOrder(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrBlockOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidParams),
		errors.Is(err, model.ErrMissingParam),
		errors.Is(err, model.ErrUnknownCurrency),
		errors.Is(err, model.ErrAmountTooPrecise),
		errors.Is(err, blockorder.ErrUnknownMarket),
		errors.Is(err, engine.ErrNoEngine):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrBlockOrderNotActive):
		return http.StatusConflict
	case errors.Is(err, blockorder.ErrInsufficientFunds),
		errors.Is(err, blockorder.ErrInsufficientDepth):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
	h.writeJSON(w, code, errorResponse{Error: err.Error()})
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}
