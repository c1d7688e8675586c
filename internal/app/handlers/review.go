package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/storefront/internal/service"
)

// ReviewRequest is shared by create and update.
type ReviewRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

func reviewIDs(w http.ResponseWriter, r *http.Request, withReviewID bool) (productID, reviewID int64, ok bool) {
	var err error
	productID, err = strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return 0, 0, false
	}
	if withReviewID {
		reviewID, err = strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid review id")
			return 0, 0, false
		}
	}
	return productID, reviewID, true
}

// CreateReviewHandler handles POST /api/products/{productID}/reviews.
func CreateReviewHandler(log *slog.Logger, reviewService service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateReviewHandler"
		logger := log.With(slog.String("op", op))

		productID, _, ok := reviewIDs(w, r, false)
		if !ok {
			return
		}

		var req ReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		rev, err := reviewService.CreateReview(r.Context(), productID, req.Name, req.Description)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusCreated, rev)
	}
}

func ListReviewsHandler(log *slog.Logger, reviewService service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListReviewsHandler"
		logger := log.With(slog.String("op", op))

		productID, _, ok := reviewIDs(w, r, false)
		if !ok {
			return
		}

		reviews, err := reviewService.ListReviews(r.Context(), productID)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, reviews)
	}
}

func GetReviewHandler(log *slog.Logger, reviewService service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetReviewHandler"
		logger := log.With(slog.String("op", op))

		productID, reviewID, ok := reviewIDs(w, r, true)
		if !ok {
			return
		}

		rev, err := reviewService.GetReview(r.Context(), productID, reviewID)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, rev)
	}
}

func UpdateReviewHandler(log *slog.Logger, reviewService service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateReviewHandler"
		logger := log.With(slog.String("op", op))

		productID, reviewID, ok := reviewIDs(w, r, true)
		if !ok {
			return
		}

		var req ReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		rev, err := reviewService.UpdateReview(r.Context(), productID, reviewID, req.Name, req.Description)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, rev)
	}
}

func DeleteReviewHandler(log *slog.Logger, reviewService service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteReviewHandler"
		logger := log.With(slog.String("op", op))

		productID, reviewID, ok := reviewIDs(w, r, true)
		if !ok {
			return
		}

		if err := reviewService.DeleteReview(r.Context(), productID, reviewID); err != nil {
			writeServiceError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
