package errors

import (
	"encoding/json"
	"net/http"
)

// errorResponse controla exactamente qué campos se envían al cliente.
type errorResponse struct {
	Status        string   `json:"status"`
	ErrCode       int      `json:"errcode"`
	Message       string   `json:"message"`
	MissingInputs []string `json:"missingInputs,omitempty"`
}

// WriteError escribe la respuesta JSON de error estándar
// {"status":"error","errcode":...,"message":...}.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := FromError(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(apiErr.HTTPStatus)

	_ = json.NewEncoder(w).Encode(errorResponse{
		Status:        "error",
		ErrCode:       apiErr.ErrCode,
		Message:       apiErr.Message,
		MissingInputs: apiErr.MissingInputs,
	})
}
