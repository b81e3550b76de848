package roundel

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

type errorPayload struct {
	Error string `json:"error"`
}

func buildErrorPayload(msg string) []byte {
	b, _ := json.Marshal(errorPayload{Error: msg})
	return b
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buildErrorPayload(err.Error()))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func parseBool(name, s string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, &QueryError{Msg: name + " must be true or false."}
	}
	return v, nil
}

func parsePositiveInt(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return 0, &QueryError{Msg: name + " must be a positive integer."}
	}
	return v, nil
}

func normalizeVehicleMode(s string) (string, error) {
	switch m := strings.ToLower(strings.TrimSpace(s)); m {
	case "", "bus", "rail":
		return m, nil
	default:
		return "", &QueryError{Msg: "Unsupported vehicleMode: " + s}
	}
}
