package mockapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/gophershop/internal/client/models"
)

type envelope struct {
	Success    bool                `json:"success"`
	Code       int                 `json:"code"`
	Message    string              `json:"message"`
	Data       any                 `json:"data,omitempty"`
	Pagination *models.Pagination  `json:"pagination,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Code: status, Message: message, Data: data})
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Code: status, Message: message})
}

// invalid answers 400 with per-field messages.
func invalid(w http.ResponseWriter, message string, fields map[string][]string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Code: http.StatusBadRequest, Message: message, Errors: fields})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// paginate cuts items to the requested page. page and limit below one
// fall back to 1 and def.
func paginate[T any](items []T, page, limit, def int) ([]T, models.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	total := len(items)
	pages := (total + limit - 1) / limit
	if pages == 0 {
		pages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := min(start+limit, total)

	return items[start:end], models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
	}
}
