package middleware

import (
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/jobs"
	"github.com/nimbus-hr/hrms-backend-go/internal/service/autoleave"
)

// ReconcileAfterWrite enqueues an auto-leave reconciliation for the
// authenticated user after every successful request that passes through it.
// The queue serializes per user, so a burst of requests collapses into
// harmless repeat checks. Enqueue failures are deliberately ignored: the next
// request or sync cycle retriggers the same check.
func ReconcileAfterWrite(queue *jobs.Queue, loc *time.Location) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if ww.Status() < 200 || ww.Status() >= 300 {
				return
			}
			userID := UserID(r)
			if userID == "" {
				return
			}

			now := time.Now().In(loc)
			_ = queue.Enqueue(jobs.Job{
				ID:      uuid.NewString(),
				Key:     userID,
				Payload: autoleave.Trigger{UserID: userID, Day: now},
			})
		})
	}
}
