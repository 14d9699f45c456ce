// internal/service/outreach_service.go
package service

import (
    "fmt"
    "strings"

    "github.com/google/uuid"

    appErrors "github.com/unclebandit/donorpulse-backend/internal/errors"
    "github.com/unclebandit/donorpulse-backend/internal/logger"
    "github.com/unclebandit/donorpulse-backend/internal/queue"
)

// Campaign types for outreach launches.
const (
    CampaignTypeRetention = "retention"
    CampaignTypeNudge     = "nudge"
)

const (
    retentionTemplate = "Hi {name}, it's been a while since your last gift. We'd love to reconnect - your support makes a real difference."
    nudgeTemplate     = "Hi {name}, would you consider a gift of ${suggested_ask}? Every contribution counts."
)

// Result struct for LaunchOutreachCampaign
type LaunchResult struct {
    LaunchID       string `json:"launch_id"`
    CampaignType   string `json:"campaign_type"`
    MessagesQueued int    `json:"messages_queued"`
    Status         string `json:"status"`
}

// RenderTemplate fills {placeholder} slots in an outreach template.
func RenderTemplate(template string, data map[string]string) string {
    result := template
    for k, v := range data {
        result = strings.ReplaceAll(result, "{"+k+"}", v)
    }
    return result
}

// LaunchOutreachCampaign runs a render cycle, picks the target list for the
// campaign type (at-risk donors for retention, nudge candidates for nudge)
// and queues one outreach send per donor.
func (s *DashboardService) LaunchOutreachCampaign(campaignType string, opts CycleOptions) (*LaunchResult, error) {
    if campaignType != CampaignTypeRetention && campaignType != CampaignTypeNudge {
        return nil, appErrors.NewInvalidArgument("campaign_type", "must be retention or nudge")
    }

    snapshot, err := s.RenderCycle(opts)
    if err != nil {
        return nil, err
    }

    result := &LaunchResult{
        LaunchID:     uuid.NewString(),
        CampaignType: campaignType,
        Status:       "queued",
    }

    var jobs []queue.OutreachJob
    switch campaignType {
    case CampaignTypeRetention:
        for _, r := range snapshot.ChurnRisks {
            jobs = append(jobs, queue.OutreachJob{
                LaunchID:     result.LaunchID,
                CampaignType: campaignType,
                DonorID:      r.DonorID,
                Name:         r.Name,
                Channel:      "Phone",
                Body:         RenderTemplate(retentionTemplate, map[string]string{"name": r.Name}),
            })
        }
    case CampaignTypeNudge:
        for _, n := range snapshot.Nudges {
            jobs = append(jobs, queue.OutreachJob{
                LaunchID:     result.LaunchID,
                CampaignType: campaignType,
                DonorID:      n.DonorID,
                Name:         n.Name,
                Channel:      n.SuggestedChannel,
                SuggestedAsk: n.SuggestedAsk,
                Body: RenderTemplate(nudgeTemplate, map[string]string{
                    "name":          n.Name,
                    "suggested_ask": fmt.Sprintf("%.0f", n.SuggestedAsk),
                }),
            })
        }
    }

    for _, job := range jobs {
        if err := s.Queue.Publish(queue.TopicOutreachSends, job); err != nil {
            logger.Log.Warn("Failed to enqueue outreach for donor ", job.DonorID, ": ", err)
            continue
        }
        result.MessagesQueued++
    }

    return result, nil
}
