package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/identity"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/liberr"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/utils"
)

type contextKey string

// ContextAdminEmail holds the verified admin identity for downstream
// handlers.
const ContextAdminEmail contextKey = "admin_email"

// AdminAuth gates a route subtree behind bearer token verification plus
// the admin allow-list. Missing or malformed credentials are 401, a
// valid token without admin rights is 403.
func AdminAuth(verifier *identity.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				utils.JSONError(w, "Missing or invalid Authorization header.", http.StatusUnauthorized)
				return
			}

			id, err := verifier.VerifyAdmin(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				utils.JSONError(w, err.Error(), liberr.HTTPStatus(err))
				return
			}

			ctx := context.WithValue(r.Context(), ContextAdminEmail, id.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
