package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/service"
	"github.com/shopspring/decimal"
)

// ProductRequest is shared by create and update.
type ProductRequest struct {
	Title        string          `json:"title" validate:"required,max=255"`
	Slug         string          `json:"slug" validate:"required,max=255"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory" validate:"gte=0"`
	CollectionID int64           `json:"collection_id" validate:"required,gt=0"`
}

var minUnitPrice = decimal.NewFromInt(1)

// validateProduct runs tag validation plus the price floor, which the
// validator cannot express for a decimal.
func validateProduct(w http.ResponseWriter, req ProductRequest) bool {
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return false
	}
	if req.UnitPrice.LessThan(minUnitPrice) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "validation failed", Fields: []string{"UnitPrice"}})
		return false
	}
	return true
}

func CreateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if !validateProduct(w, req) {
			return
		}

		p, err := productService.CreateProduct(r.Context(), &models.Product{
			Title:        req.Title,
			Slug:         req.Slug,
			Description:  req.Description,
			UnitPrice:    req.UnitPrice,
			Inventory:    req.Inventory,
			CollectionID: req.CollectionID,
		})
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusCreated, p)
	}
}

// ListProductsHandler handles GET /api/products with an optional
// ?collection_id= filter.
func ListProductsHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListProductsHandler"
		logger := log.With(slog.String("op", op))

		var collectionID *int64
		if raw := r.URL.Query().Get("collection_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid collection_id")
				return
			}
			collectionID = &id
		}

		products, err := productService.ListProducts(r.Context(), collectionID)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, products)
	}
}

func GetProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid product id")
			return
		}

		p, err := productService.GetProduct(r.Context(), id)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, p)
	}
}

func UpdateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid product id")
			return
		}

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if !validateProduct(w, req) {
			return
		}

		p, err := productService.UpdateProduct(r.Context(), &models.Product{
			ID:           id,
			Title:        req.Title,
			Slug:         req.Slug,
			Description:  req.Description,
			UnitPrice:    req.UnitPrice,
			Inventory:    req.Inventory,
			CollectionID: req.CollectionID,
		})
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, p)
	}
}

// DeleteProductHandler rejects deletion of a product referenced by order
// items (409).
func DeleteProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid product id")
			return
		}

		if err := productService.DeleteProduct(r.Context(), id); err != nil {
			writeServiceError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
