package flash

import (
	"encoding/base64"
	"net/http"
	"tick/shared/constant"
)

// Flash carries a one-shot message across a redirect in a short-lived
// cookie: set on one response, shown on the next render, then gone. The
// value is base64-encoded to stay cookie-safe.

// Set queues a message for the next rendered page.
func Set(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     constant.FlashCookieName,
		Value:    base64.URLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the queued message, if any, and clears it.
func Pop(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(constant.FlashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constant.FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	message, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}

	return string(message)
}
