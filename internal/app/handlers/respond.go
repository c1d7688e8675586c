package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/storefront/internal/service"
	"github.com/linemk/storefront/internal/storage"
)

var validate = validator.New()

// ErrorResponse is the uniform error body. Fields is filled only for
// validation failures and lists the offending field names.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func writeJSON(log *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

// writeValidationError renders a 400 with the list of offending fields.
func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "validation failed", Fields: fields})
		return
	}
	writeError(w, http.StatusBadRequest, "validation failed")
}

// writeServiceError translates service and storage errors into client
// responses. Anything unrecognized becomes a generic 500 so internals
// never leak to the caller.
func writeServiceError(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, storage.ErrCollectionNotFound),
		errors.Is(err, storage.ErrProductNotFound),
		errors.Is(err, storage.ErrCartNotFound),
		errors.Is(err, storage.ErrCartItemNotFound),
		errors.Is(err, storage.ErrOrderNotFound),
		errors.Is(err, storage.ErrPaymentNotFound),
		errors.Is(err, storage.ErrReviewNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrEmailTaken),
		errors.Is(err, service.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, trimOp(err))
	case errors.Is(err, storage.ErrUserHasOrders),
		errors.Is(err, storage.ErrCollectionInUse),
		errors.Is(err, storage.ErrProductInUse),
		errors.Is(err, storage.ErrPaymentExists),
		errors.Is(err, service.ErrOrderPaid):
		writeError(w, http.StatusConflict, trimOp(err))
	default:
		log.Error("unhandled service error", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// trimOp unwraps the service-level "op:" prefix chain down to the sentinel
// message, which is safe to show to the client.
func trimOp(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
