// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/campusconnect/campushub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrincipalCtx returns the caller's role (lowercased), name, Mongo
// ObjectID, and a found flag. A missing principal or malformed ID in
// the token yields ok=false, so ok=true always means a valid,
// authenticated caller with a usable ObjectID.
func PrincipalCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		// Malformed subject in the token; fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(p.Role), p.Name, userID, true
}
