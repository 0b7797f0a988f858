package testutil

import (
	"context"
	"net/http"

	"github.com/campusconnect/campushub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// StudentPrincipal returns a principal with the student role.
func StudentPrincipal(id primitive.ObjectID) *auth.Principal {
	return &auth.Principal{ID: id.Hex(), Role: "student", Name: "Test Student"}
}

// ClubPrincipal returns a principal with the club role.
func ClubPrincipal(id primitive.ObjectID) *auth.Principal {
	return &auth.Principal{ID: id.Hex(), Role: "club", Name: "Test Club"}
}

// DepartmentPrincipal returns a principal with the department role.
func DepartmentPrincipal(id primitive.ObjectID) *auth.Principal {
	return &auth.Principal{ID: id.Hex(), Role: "department", Name: "Test Department"}
}

// WithPrincipal injects a principal into the request context, bypassing
// bearer-token parsing the way handler tests need.
func WithPrincipal(r *http.Request, p *auth.Principal) *http.Request {
	return auth.WithTestPrincipal(r, p)
}
