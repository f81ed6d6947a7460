package auth

import (
	"fmt"
	"net/http"

	"github.com/nstepura/matmarket/internal/catalog"
)

// Header names set by the identity provider at the edge.
const (
	HeaderRole   = "X-Role"
	HeaderVendor = "X-Vendor-Id"
	HeaderUser   = "X-User-Id"
)

// Middleware extracts the caller identity from request headers and stores
// it on the context. A missing role header means a public caller; a vendor
// caller must carry a vendor id.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := catalog.Role(r.Header.Get(HeaderRole))
		if role == "" {
			role = catalog.RolePublic
		}
		if !role.Valid() {
			http.Error(w, fmt.Sprintf("unknown role %q", role), http.StatusBadRequest)
			return
		}

		caller := Caller{
			UserID:   r.Header.Get(HeaderUser),
			VendorID: r.Header.Get(HeaderVendor),
			Role:     role,
		}
		if caller.Role == catalog.RoleVendor && caller.VendorID == "" {
			http.Error(w, "Unauthorized: Missing "+HeaderVendor+" header", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}
