package response

import (
	"encoding/json"
	"net/http"

	"github.com/mrops-br/catalog-api/internal/app/validation"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, err error) {
	JSON(w, status, ErrorResponse{
		Error:   errorType(status),
		Message: err.Error(),
	})
}

// ValidationError sends a 422 listing every offending form field
func ValidationError(w http.ResponseWriter, errs validation.Errors) {
	status := http.StatusUnprocessableEntity
	JSON(w, status, ErrorResponse{
		Error:   errorType(status),
		Message: "product form is invalid",
		Fields:  errs.Fields(),
	})
}

func errorType(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnprocessableEntity:
		return "validation_failed"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusInternalServerError:
		return "internal_server_error"
	default:
		return "error"
	}
}
