package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bethouse/models"
)

// defaultWindowDays is the trailing report window applied when neither
// bound is supplied
const defaultWindowDays = 30

// parseWindow reads the from/to query parameters (RFC 3339) into a report
// window, defaulting to the trailing 30 days
func parseWindow(r *http.Request) (models.TimeRange, error) {
	now := time.Now().UTC()
	window := models.TimeRange{From: now.AddDate(0, 0, -defaultWindowDays), To: now}

	if v := r.URL.Query().Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return models.TimeRange{}, fmt.Errorf("invalid from parameter: %w", err)
		}
		window.From = from.UTC()
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return models.TimeRange{}, fmt.Errorf("invalid to parameter: %w", err)
		}
		window.To = to.UTC()
	}

	if !window.To.After(window.From) {
		return models.TimeRange{}, fmt.Errorf("from must be before to")
	}

	return window, nil
}

// parseTenantID reads the optional tenant_id filter
func parseTenantID(r *http.Request) *string {
	if v := r.URL.Query().Get("tenant_id"); v != "" {
		return &v
	}
	return nil
}

// parseGroupBy reads the group_by parameter, defaulting to day
func parseGroupBy(r *http.Request) (models.GroupBy, error) {
	switch v := r.URL.Query().Get("group_by"); v {
	case "", "day":
		return models.GroupByDay, nil
	case "week":
		return models.GroupByWeek, nil
	case "month":
		return models.GroupByMonth, nil
	default:
		return "", fmt.Errorf("invalid group_by parameter: %s", v)
	}
}

// parseIntParam reads an optional integer query parameter
func parseIntParam(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %w", name, err)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
