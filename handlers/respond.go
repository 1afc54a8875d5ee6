package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"seventyFiveHardAPI/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"message": message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// gate violations are 403, missing entities 404, precondition failures 400,
// everything else a generic 500 with the detail kept server-side.
func respondServiceError(w http.ResponseWriter, err error) {
	var gate *services.AccessGateError
	switch {
	case errors.As(err, &gate):
		respondWithError(w, http.StatusForbidden, gate.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrDayNotFound),
		errors.Is(err, services.ErrPhotoNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNoActiveChallenge),
		errors.Is(err, services.ErrTasksIncomplete),
		errors.Is(err, services.ErrInvalidDayNumber):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Internal error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Server error")
	}
}
