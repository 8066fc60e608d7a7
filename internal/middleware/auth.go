package middleware

import (
	"encoding/json"
	"net/http"
)

// AdminHeader carries the shared admin secret
const AdminHeader = "X-Admin-Password"

// CredentialChecker validates an admin credential. It is injected so the
// shared-secret check can be swapped for a real auth scheme later.
type CredentialChecker interface {
	Check(credential string) bool
}

// StaticCredential is a CredentialChecker backed by a single shared secret
type StaticCredential string

// Check reports whether the presented credential matches the secret
func (s StaticCredential) Check(credential string) bool {
	return credential != "" && credential == string(s)
}

// AdminAuth creates a middleware guarding admin routes with the injected
// credential checker
func AdminAuth(checker CredentialChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !checker.Check(r.Header.Get(AdminHeader)) {
				respondError(w, "Invalid admin password", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// respondError sends an error envelope
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
