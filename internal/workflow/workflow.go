// Package workflow orchestrates multi-step operations against the Kameleoon
// API: duplicating entities across sites and restoring tracking scripts from
// local backups. Batch operations accumulate per-target outcomes instead of
// failing wholesale.
package workflow

import (
	"context"
	"fmt"

	"github.com/kamctl/kamctl/internal/api"
	"github.com/kamctl/kamctl/internal/backup"
	"github.com/kamctl/kamctl/internal/utils"
)

// Gateway is the slice of the API client the orchestrators need.
type Gateway interface {
	ListSites(ctx context.Context, token string) ([]api.Site, error)
	GetSite(ctx context.Context, token string, id int) (*api.Site, error)
	GetSiteByCode(ctx context.Context, token, code string) (*api.Site, error)
	UpdateTrackingScript(ctx context.Context, token string, id int, script string) (*api.Site, error)
	GetGoal(ctx context.Context, token string, id int) (*api.Goal, error)
	CreateGoal(ctx context.Context, token string, req api.CreateGoalRequest) (*api.Goal, error)
	GetSegment(ctx context.Context, token string, id int) (*api.Segment, error)
	CreateSegment(ctx context.Context, token string, req api.CreateSegmentRequest) (*api.Segment, error)
}

// GoalCopy records one successfully duplicated goal.
type GoalCopy struct {
	SiteCode string `json:"siteCode"`
	GoalID   int    `json:"goalId"`
}

// SegmentCopy records one successfully duplicated segment.
type SegmentCopy struct {
	SiteCode  string `json:"siteCode"`
	SegmentID int    `json:"segmentId"`
}

// TargetFailure records why one target site was skipped.
type TargetFailure struct {
	SiteCode string `json:"siteCode"`
	Error    string `json:"error"`
}

// GoalDuplication is the outcome of copying a goal to every other site.
type GoalDuplication struct {
	Successes    []GoalCopy      `json:"successes"`
	Failures     []TargetFailure `json:"failures"`
	TotalTargets int             `json:"totalTargets"`
}

// SegmentDuplication is the outcome of copying a segment to named sites.
type SegmentDuplication struct {
	Successes    []SegmentCopy   `json:"successes"`
	Failures     []TargetFailure `json:"failures"`
	TotalTargets int             `json:"totalTargets"`
}

// ScriptDuplication is the outcome of pushing one site's tracking script to
// every other site.
type ScriptDuplication struct {
	SourceSiteCode string          `json:"sourceSiteCode"`
	Updated        []string        `json:"updated"`
	Failures       []TargetFailure `json:"failures"`
	TotalTargets   int             `json:"totalTargets"`
	Warning        string          `json:"warning,omitempty"`
}

// Restoration is the outcome of restoring a tracking script from a backup.
type Restoration struct {
	Site           *api.Site      `json:"site"`
	Backup         *backup.Backup `json:"backup"`
	SafetyBackupAt string         `json:"safetyBackupAt,omitempty"`
	Warning        string         `json:"warning,omitempty"`
}

// DuplicateGoalToAllSites copies the goal onto every site except the one it
// already belongs to. Individual target failures are recorded and do not stop
// the batch.
func DuplicateGoalToAllSites(ctx context.Context, gw Gateway, token string, goalID int) (*GoalDuplication, error) {
	goal, err := gw.GetGoal(ctx, token, goalID)
	if err != nil {
		return nil, err
	}
	sites, err := gw.ListSites(ctx, token)
	if err != nil {
		return nil, err
	}

	result := &GoalDuplication{}
	for _, site := range sites {
		if site.ID == goal.SiteID {
			continue
		}
		result.TotalTargets++
		created, err := gw.CreateGoal(ctx, token, api.CreateGoalRequest{
			Name:                   goal.Name,
			Type:                   goal.Type,
			SiteID:                 site.ID,
			HasMultipleConversions: goal.HasMultipleConversions,
			Description:            goal.Description,
			Params:                 goal.Params,
		})
		if err != nil {
			utils.Log.Debugf("goal duplication to %s failed: %v", site.Code, err)
			result.Failures = append(result.Failures, TargetFailure{SiteCode: site.Code, Error: err.Error()})
			continue
		}
		result.Successes = append(result.Successes, GoalCopy{SiteCode: site.Code, GoalID: created.ID})
	}
	return result, nil
}

// DuplicateSegment copies the segment onto each site named by code. A source
// segment with no conditionsData cannot be recreated, so the whole call fails
// before touching any target.
func DuplicateSegment(ctx context.Context, gw Gateway, token string, segmentID int, siteCodes []string) (*SegmentDuplication, error) {
	seg, err := gw.GetSegment(ctx, token, segmentID)
	if err != nil {
		return nil, err
	}
	if len(seg.ConditionsData) == 0 {
		return nil, fmt.Errorf("segment %d has no conditionsData and cannot be duplicated", segmentID)
	}
	segmentType := seg.SegmentType
	if segmentType == "" {
		segmentType = "STANDARD"
	}

	result := &SegmentDuplication{TotalTargets: len(siteCodes)}
	for _, code := range siteCodes {
		site, err := gw.GetSiteByCode(ctx, token, code)
		if err != nil {
			result.Failures = append(result.Failures, TargetFailure{SiteCode: code, Error: err.Error()})
			continue
		}
		created, err := gw.CreateSegment(ctx, token, api.CreateSegmentRequest{
			Name:             seg.Name,
			SiteID:           site.ID,
			SegmentType:      segmentType,
			ConditionsData:   seg.ConditionsData,
			Description:      seg.Description,
			AudienceTracking: seg.AudienceTracking,
			Tags:             seg.Tags,
		})
		if err != nil {
			utils.Log.Debugf("segment duplication to %s failed: %v", code, err)
			result.Failures = append(result.Failures, TargetFailure{SiteCode: code, Error: err.Error()})
			continue
		}
		result.Successes = append(result.Successes, SegmentCopy{SiteCode: code, SegmentID: created.ID})
	}
	return result, nil
}

// DuplicateTrackingScript pushes the source site's tracking script to every
// other site. An empty source script is pushed as-is, clearing the targets;
// the result carries a warning so callers can surface it.
func DuplicateTrackingScript(ctx context.Context, gw Gateway, token, sourceSiteCode string) (*ScriptDuplication, error) {
	source, err := gw.GetSiteByCode(ctx, token, sourceSiteCode)
	if err != nil {
		return nil, err
	}
	sites, err := gw.ListSites(ctx, token)
	if err != nil {
		return nil, err
	}

	result := &ScriptDuplication{SourceSiteCode: source.Code}
	if source.TrackingScript == "" {
		result.Warning = "source site has an empty tracking script; targets will be cleared"
	}
	for _, site := range sites {
		if site.ID == source.ID {
			continue
		}
		result.TotalTargets++
		if _, err := gw.UpdateTrackingScript(ctx, token, site.ID, source.TrackingScript); err != nil {
			utils.Log.Debugf("tracking script push to %s failed: %v", site.Code, err)
			result.Failures = append(result.Failures, TargetFailure{SiteCode: site.Code, Error: err.Error()})
			continue
		}
		result.Updated = append(result.Updated, site.Code)
	}
	return result, nil
}

// RestoreTrackingScript replaces a site's live tracking script with the one
// saved at savedAt. The backup lookup happens before any remote call. The
// live script is snapshotted first so the restore itself can be undone; a
// failed snapshot only produces a warning.
func RestoreTrackingScript(ctx context.Context, gw Gateway, backups *backup.Store, token string, siteID int, savedAt string) (*Restoration, error) {
	b, err := backups.Get(siteID, savedAt)
	if err != nil {
		return nil, err
	}

	result := &Restoration{Backup: b}
	if saved, warn := SnapshotBeforeUpdate(ctx, gw, backups, token, siteID, "restore"); warn != "" {
		result.Warning = warn
	} else {
		result.SafetyBackupAt = saved
	}

	site, err := gw.UpdateTrackingScript(ctx, token, siteID, b.TrackingScript)
	if err != nil {
		return nil, err
	}
	result.Site = site
	return result, nil
}

// SnapshotBeforeUpdate saves the site's current tracking script before a
// mutation. An empty live script is not worth a backup and is skipped
// silently. It is best effort: on failure it returns a warning instead of an
// error so the mutation can proceed.
func SnapshotBeforeUpdate(ctx context.Context, gw Gateway, backups *backup.Store, token string, siteID int, triggeredBy string) (savedAt, warning string) {
	site, err := gw.GetSite(ctx, token, siteID)
	if err != nil {
		return "", fmt.Sprintf("could not snapshot current tracking script: %v", err)
	}
	if site.TrackingScript == "" {
		return "", ""
	}
	b, err := backups.Save(site.ID, site.Code, site.Name, site.TrackingScript, triggeredBy)
	if err != nil {
		return "", fmt.Sprintf("could not save safety backup: %v", err)
	}
	return b.SavedAt, ""
}
