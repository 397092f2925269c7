// internal/app/features/reports/overview.go
package reports

import (
	"context"
	"net/http"

	"github.com/kindbridge/kindbridge/internal/app/store/audit"
	donationstore "github.com/kindbridge/kindbridge/internal/app/store/donations"
	"github.com/kindbridge/kindbridge/internal/app/system/httpjson"
	"github.com/kindbridge/kindbridge/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// overviewResponse is the admin dashboard snapshot.
type overviewResponse struct {
	UsersByRole      map[string]int64            `json:"users_by_role"`
	DonationTotals   []donationstore.StatusTotal `json:"donation_totals"`
	RecentAuthEvents []recentEvent               `json:"recent_auth_events"`
}

// recentEvent is the trimmed audit row shown on the dashboard.
type recentEvent struct {
	EventType string `json:"event_type"`
	Success   bool   `json:"success"`
	IP        string `json:"ip,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ServeOverview returns platform-wide counts for the admin dashboard.
//
// Route: GET /reports/overview
func (h *Handler) ServeOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	usersByRole, err := h.Users.CountByRole(ctx)
	if err != nil {
		h.Log.Error("reports: user counts failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to build report.")
		return
	}

	totals, err := h.Donations.TotalsByStatus(ctx, nil)
	if err != nil {
		h.Log.Error("reports: donation totals failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to build report.")
		return
	}

	events, err := h.Events.ListRecent(ctx, audit.CategoryAuth, 20)
	if err != nil {
		h.Log.Error("reports: recent events failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to build report.")
		return
	}

	recent := make([]recentEvent, 0, len(events))
	for _, e := range events {
		row := recentEvent{
			EventType: e.EventType,
			Success:   e.Success,
			IP:        e.IP,
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if e.UserID != nil {
			row.UserID = e.UserID.Hex()
		}
		recent = append(recent, row)
	}

	httpjson.Respond(w, http.StatusOK, overviewResponse{
		UsersByRole:      usersByRole,
		DonationTotals:   totals,
		RecentAuthEvents: recent,
	})
}
