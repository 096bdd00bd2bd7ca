package respond

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// Success writes the standard success envelope.
func Success(w http.ResponseWriter, r *http.Request, code int, message string, data interface{}) {
	JSON(w, r, code, envelope{Success: true, Message: message, Data: data})
}

// Error writes the standard error envelope. Details is optional structured
// payload, e.g. a validation violation list.
func Error(w http.ResponseWriter, r *http.Request, code int, errCode, message string, details interface{}) {
	JSON(w, r, code, envelope{Success: false, Error: &errorBody{Code: errCode, Message: message, Details: details}})
}
