package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"calyx/faults"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"message": msg})
}

// RespondWithFault translates a core failure into the HTTP shape clients
// expect: 400 with the failure message for business errors, a field-error
// payload for validation errors, and a generic 400 for everything else.
func RespondWithFault(w http.ResponseWriter, err error) {
	if v, ok := faults.AsValidation(err); ok {
		RespondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": v.Error(),
			"errors":  []interface{}{v},
		})
		return
	}
	if faults.IsBusiness(err) {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("internal error: %v", err)
	RespondWithError(w, http.StatusBadRequest, "Something went wrong. Please try again.")
}

type M map[string]interface{}
