package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/storefront/internal/service"
)

// CollectionRequest is shared by create and update.
type CollectionRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

func CreateCollectionHandler(log *slog.Logger, collectionService service.CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCollectionHandler"
		logger := log.With(slog.String("op", op))

		var req CollectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		c, err := collectionService.CreateCollection(r.Context(), req.Title)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusCreated, c)
	}
}

func ListCollectionsHandler(log *slog.Logger, collectionService service.CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCollectionsHandler"
		logger := log.With(slog.String("op", op))

		collections, err := collectionService.ListCollections(r.Context())
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, collections)
	}
}

func GetCollectionHandler(log *slog.Logger, collectionService service.CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCollectionHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid collection id")
			return
		}

		c, err := collectionService.GetCollection(r.Context(), id)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, c)
	}
}

func UpdateCollectionHandler(log *slog.Logger, collectionService service.CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCollectionHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid collection id")
			return
		}

		var req CollectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		c, err := collectionService.UpdateCollection(r.Context(), id, req.Title)
		if err != nil {
			writeServiceError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, c)
	}
}

// DeleteCollectionHandler rejects deletion of a collection that still has
// products (409).
func DeleteCollectionHandler(log *slog.Logger, collectionService service.CollectionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCollectionHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid collection id")
			return
		}

		if err := collectionService.DeleteCollection(r.Context(), id); err != nil {
			writeServiceError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
