package endpoints

import (
	"encoding/json"
	"net/http"
)

// respondWithDetail writes the error body shape used across the API:
// {"detail": "..."}.
func respondWithDetail(w http.ResponseWriter, code int, detail string) {
	respondWithJSON(w, code, map[string]string{"detail": detail})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
