package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Placeholder endpoints kept for frontend compatibility. They return
// static success payloads until the corresponding features land.

func Tasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "tasks": []interface{}{}})
}

func GreenhouseSensors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "sensors": map[string]interface{}{}})
}

func MarketPrices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "prices": map[string]interface{}{}})
}

func Weather(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"location": location,
		"forecast": map[string]interface{}{},
	})
}
