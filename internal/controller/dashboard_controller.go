// internal/controller/dashboard_controller.go
package controller

import (
    "encoding/json"
    "net/http"
    "strconv"

    appErrors "github.com/unclebandit/donorpulse-backend/internal/errors"
    "github.com/unclebandit/donorpulse-backend/internal/logger"
    "github.com/unclebandit/donorpulse-backend/internal/service"
)

type DashboardController struct {
    DashboardService *service.DashboardService
}

// cycleOptions builds per-request overrides from query parameters. Every
// request is an independent render cycle; ?seed= pins the random source.
func cycleOptions(r *http.Request) (service.CycleOptions, error) {
    var opts service.CycleOptions

    if raw := r.URL.Query().Get("seed"); raw != "" {
        seed, err := strconv.ParseInt(raw, 10, 64)
        if err != nil {
            return opts, appErrors.NewInvalidArgument("seed", "must be an integer")
        }
        opts.Seed = &seed
    }

    intParams := map[string]*int{
        "donor_count":    &opts.DonorCount,
        "donation_count": &opts.DonationCount,
        "top_n":          &opts.ChurnTopN,
        "count":          &opts.NudgeCount,
    }
    for name, dst := range intParams {
        if raw := r.URL.Query().Get(name); raw != "" {
            v, err := strconv.Atoi(raw)
            if err != nil {
                return opts, appErrors.NewInvalidArgument(name, "must be an integer")
            }
            if v <= 0 {
                return opts, appErrors.NewInvalidArgument(name, "must be a positive integer")
            }
            *dst = v
        }
    }

    return opts, nil
}

func writeJSON(w http.ResponseWriter, payload any) {
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
    status := http.StatusInternalServerError
    if appErrors.IsInvalidArgument(err) {
        status = http.StatusBadRequest
    }
    if appErrors.IsDataIntegrityViolation(err) {
        logger.Log.Error("Integrity violation during render cycle: ", err)
    }
    http.Error(w, err.Error(), status)
}

func (c *DashboardController) render(r *http.Request) (*service.Snapshot, error) {
    opts, err := cycleOptions(r)
    if err != nil {
        return nil, err
    }
    return c.DashboardService.RenderCycle(opts)
}

// GetDashboard returns the full snapshot: all tables plus KPIs.
func (c *DashboardController) GetDashboard(w http.ResponseWriter, r *http.Request) {
    snapshot, err := c.render(r)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, snapshot)
}

func (c *DashboardController) ListDonors(w http.ResponseWriter, r *http.Request) {
    snapshot, err := c.render(r)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, map[string]any{
        "data":         snapshot.Donors,
        "generated_at": snapshot.GeneratedAt,
    })
}

func (c *DashboardController) ListDonations(w http.ResponseWriter, r *http.Request) {
    snapshot, err := c.render(r)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, map[string]any{
        "data":         snapshot.Donations,
        "generated_at": snapshot.GeneratedAt,
    })
}

func (c *DashboardController) GetSegments(w http.ResponseWriter, r *http.Request) {
    snapshot, err := c.render(r)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, map[string]any{
        "data":         snapshot.SegmentCounts,
        "generated_at": snapshot.GeneratedAt,
    })
}

func (c *DashboardController) GetChurnRisks(w http.ResponseWriter, r *http.Request) {
    snapshot, err := c.render(r)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, map[string]any{
        "data":         snapshot.ChurnRisks,
        "generated_at": snapshot.GeneratedAt,
    })
}

func (c *DashboardController) GetNudges(w http.ResponseWriter, r *http.Request) {
    snapshot, err := c.render(r)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, map[string]any{
        "data":         snapshot.Nudges,
        "generated_at": snapshot.GeneratedAt,
    })
}

func (c *DashboardController) GetCampaignPerformance(w http.ResponseWriter, r *http.Request) {
    snapshot, err := c.render(r)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, map[string]any{
        "data":         snapshot.CampaignTotals,
        "metrics":      snapshot.Metrics,
        "generated_at": snapshot.GeneratedAt,
    })
}

type launchRequest struct {
    Seed *int64 `json:"seed"`
}

func (c *DashboardController) launch(w http.ResponseWriter, r *http.Request, campaignType string) {
    var body launchRequest
    if r.Body != nil && r.ContentLength != 0 {
        if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
            http.Error(w, "invalid body", http.StatusBadRequest)
            return
        }
    }

    result, err := c.DashboardService.LaunchOutreachCampaign(campaignType, service.CycleOptions{Seed: body.Seed})
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, result)
}

// LaunchRetentionCampaign queues a re-engagement send for at-risk donors.
func (c *DashboardController) LaunchRetentionCampaign(w http.ResponseWriter, r *http.Request) {
    c.launch(w, r, service.CampaignTypeRetention)
}

// LaunchNudgeCampaign queues personalized ask messages for sampled donors.
func (c *DashboardController) LaunchNudgeCampaign(w http.ResponseWriter, r *http.Request) {
    c.launch(w, r, service.CampaignTypeNudge)
}

func (c *DashboardController) Healthz(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, map[string]string{"status": "ok"})
}
