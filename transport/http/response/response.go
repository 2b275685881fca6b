package response

import (
	"encoding/json"
	"net/http"
	"tick/shared/constant"
	"tick/shared/logger"
)

type Message struct {
	Message *string `json:"message,omitempty"`
}

// Redirect sends the requester to another page. State-changing handlers use
// See Other so a refresh never resubmits the form.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// RedirectToLogin is the short-circuit for anonymous requests on protected routes.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, constant.PathLogin, http.StatusFound)
}

// WithMessage sends a response with a simple text message
func WithMessage(w http.ResponseWriter, code int, message string) {
	response(w, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(w http.ResponseWriter, code int, jsonPayload interface{}) {
	response(w, code, jsonPayload)
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(w http.ResponseWriter) {
	WithMessage(w, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(w http.ResponseWriter) {
	WithMessage(w, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func response(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	w.WriteHeader(code)
	_, err = w.Write(body)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
