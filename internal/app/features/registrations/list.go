// internal/app/features/registrations/list.go
package registrations

import (
	"context"
	"net/http"

	registrationstore "github.com/campusconnect/campushub/internal/app/store/registrations"
	"github.com/campusconnect/campushub/internal/app/system/apperr"
	"github.com/campusconnect/campushub/internal/app/system/authz"
	"github.com/campusconnect/campushub/internal/app/system/httpjson"
	"github.com/campusconnect/campushub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleListMyRegistrations handles GET /registrations/student: the
// calling student's registrations, newest first.
func (h *Handler) HandleListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	_, _, studentID, ok := authz.PrincipalCtx(r)
	if !ok {
		httpjson.WriteError(w, apperr.New(apperr.NotAuthorized, "authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	regs, err := registrationstore.New(h.DB).ListByStudent(ctx, studentID)
	if err != nil {
		h.Log.Error("list student registrations failed", zap.Error(err), zap.String("student_id", studentID.Hex()))
		httpjson.WriteError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, regs)
}
