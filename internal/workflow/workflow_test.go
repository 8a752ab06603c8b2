package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamctl/kamctl/internal/api"
	"github.com/kamctl/kamctl/internal/backup"
)

// fakeGateway serves canned entities and fails on request for specific sites.
type fakeGateway struct {
	sites    []api.Site
	goal     *api.Goal
	segment  *api.Segment
	failSite map[int]error // site ID -> error for create/update calls

	createdGoals    []api.CreateGoalRequest
	createdSegments []api.CreateSegmentRequest
	scriptUpdates   []int
	getSiteErr      error
}

func (f *fakeGateway) ListSites(context.Context, string) ([]api.Site, error) {
	return f.sites, nil
}

func (f *fakeGateway) GetSite(_ context.Context, _ string, id int) (*api.Site, error) {
	if f.getSiteErr != nil {
		return nil, f.getSiteErr
	}
	for i := range f.sites {
		if f.sites[i].ID == id {
			return &f.sites[i], nil
		}
	}
	return nil, &api.NotFoundError{Resource: "site", ID: "?"}
}

func (f *fakeGateway) GetSiteByCode(_ context.Context, _ string, code string) (*api.Site, error) {
	for i := range f.sites {
		if f.sites[i].Code == code {
			return &f.sites[i], nil
		}
	}
	return nil, &api.NotFoundError{Resource: "site", ID: code}
}

func (f *fakeGateway) UpdateTrackingScript(_ context.Context, _ string, id int, _ string) (*api.Site, error) {
	if err := f.failSite[id]; err != nil {
		return nil, err
	}
	f.scriptUpdates = append(f.scriptUpdates, id)
	for i := range f.sites {
		if f.sites[i].ID == id {
			return &f.sites[i], nil
		}
	}
	return nil, &api.NotFoundError{Resource: "site", ID: "?"}
}

func (f *fakeGateway) GetGoal(context.Context, string, int) (*api.Goal, error) {
	if f.goal == nil {
		return nil, &api.NotFoundError{Resource: "goal", ID: "?"}
	}
	return f.goal, nil
}

func (f *fakeGateway) CreateGoal(_ context.Context, _ string, req api.CreateGoalRequest) (*api.Goal, error) {
	if err := f.failSite[req.SiteID]; err != nil {
		return nil, err
	}
	f.createdGoals = append(f.createdGoals, req)
	return &api.Goal{ID: 100 + req.SiteID, Name: req.Name, Type: req.Type, SiteID: req.SiteID}, nil
}

func (f *fakeGateway) GetSegment(context.Context, string, int) (*api.Segment, error) {
	if f.segment == nil {
		return nil, &api.NotFoundError{Resource: "segment", ID: "?"}
	}
	return f.segment, nil
}

func (f *fakeGateway) CreateSegment(_ context.Context, _ string, req api.CreateSegmentRequest) (*api.Segment, error) {
	if err := f.failSite[req.SiteID]; err != nil {
		return nil, err
	}
	f.createdSegments = append(f.createdSegments, req)
	return &api.Segment{ID: 200 + req.SiteID, Name: req.Name, SiteID: req.SiteID}, nil
}

func threeSites() []api.Site {
	return []api.Site{
		{ID: 1, Code: "one", Name: "One", TrackingScript: "track-one"},
		{ID: 2, Code: "two", Name: "Two"},
		{ID: 3, Code: "three", Name: "Three"},
	}
}

func TestDuplicateGoalContinuesPastFailures(t *testing.T) {
	gw := &fakeGateway{
		sites:    threeSites(),
		goal:     &api.Goal{ID: 50, Name: "Checkout", Type: "CLICK", SiteID: 1},
		failSite: map[int]error{2: errors.New("quota exceeded")},
	}

	result, err := DuplicateGoalToAllSites(context.Background(), gw, "tok", 50)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalTargets, "the source site is not a target")
	require.Len(t, result.Successes, 1)
	assert.Equal(t, "three", result.Successes[0].SiteCode)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "two", result.Failures[0].SiteCode)
	assert.Contains(t, result.Failures[0].Error, "quota exceeded")
}

func TestDuplicateSegmentRequiresConditions(t *testing.T) {
	gw := &fakeGateway{
		sites:   threeSites(),
		segment: &api.Segment{ID: 9, Name: "Mobile", SiteID: 1, SegmentType: "STANDARD"},
	}

	_, err := DuplicateSegment(context.Background(), gw, "tok", 9, []string{"two", "three"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conditionsData")
	assert.Empty(t, gw.createdSegments, "no target may be touched when the source is unusable")
}

func TestDuplicateSegmentToNamedSites(t *testing.T) {
	gw := &fakeGateway{
		sites: threeSites(),
		segment: &api.Segment{
			ID: 9, Name: "Mobile", SiteID: 1, SegmentType: "STANDARD",
			ConditionsData: map[string]interface{}{"firstLevel": []interface{}{}},
		},
	}

	result, err := DuplicateSegment(context.Background(), gw, "tok", 9, []string{"two", "no-such-site"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalTargets)
	require.Len(t, result.Successes, 1)
	assert.Equal(t, "two", result.Successes[0].SiteCode)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "no-such-site", result.Failures[0].SiteCode)
}

func TestDuplicateSegmentDefaultsMissingType(t *testing.T) {
	gw := &fakeGateway{
		sites: threeSites(),
		segment: &api.Segment{
			ID: 9, Name: "Mobile", SiteID: 1,
			ConditionsData: map[string]interface{}{"firstLevel": []interface{}{}},
		},
	}

	result, err := DuplicateSegment(context.Background(), gw, "tok", 9, []string{"two"})
	require.NoError(t, err)
	require.Len(t, result.Successes, 1)
	require.Len(t, gw.createdSegments, 1)
	assert.Equal(t, "STANDARD", gw.createdSegments[0].SegmentType)
}

func TestDuplicateTrackingScriptEmptySourceWarns(t *testing.T) {
	gw := &fakeGateway{sites: threeSites()}

	result, err := DuplicateTrackingScript(context.Background(), gw, "tok", "two")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warning)
	assert.ElementsMatch(t, []string{"one", "three"}, result.Updated)
}

func TestRestoreMissingBackupMakesNoRemoteCalls(t *testing.T) {
	gw := &fakeGateway{sites: threeSites()}
	backups := backup.NewStore(t.TempDir())

	_, err := RestoreTrackingScript(context.Background(), gw, backups, "tok", 1, "2020-01-01T00:00:00.000Z")
	require.Error(t, err)
	assert.Empty(t, gw.scriptUpdates)
}

func TestRestoreIssuesOneUpdateAndSafetySnapshot(t *testing.T) {
	gw := &fakeGateway{sites: threeSites()}
	backups := backup.NewStore(t.TempDir())
	saved, err := backups.Save(1, "one", "One", "old-script", "update")
	require.NoError(t, err)

	result, err := RestoreTrackingScript(context.Background(), gw, backups, "tok", 1, saved.SavedAt)
	require.NoError(t, err)

	assert.Equal(t, []int{1}, gw.scriptUpdates)
	assert.Empty(t, result.Warning)
	assert.NotEmpty(t, result.SafetyBackupAt)

	// the live script was snapshotted before the restore overwrote it
	snap, err := backups.Get(1, result.SafetyBackupAt)
	require.NoError(t, err)
	assert.Equal(t, "track-one", snap.TrackingScript)
}

func TestRestoreSkipsSnapshotOfEmptyScript(t *testing.T) {
	gw := &fakeGateway{sites: threeSites()}
	backups := backup.NewStore(t.TempDir())
	saved, err := backups.Save(2, "two", "Two", "old-script", "update")
	require.NoError(t, err)

	// site 2 has no live tracking script, so nothing is worth snapshotting
	result, err := RestoreTrackingScript(context.Background(), gw, backups, "tok", 2, saved.SavedAt)
	require.NoError(t, err)

	assert.Empty(t, result.SafetyBackupAt)
	assert.Empty(t, result.Warning)
	assert.Equal(t, []int{2}, gw.scriptUpdates)

	all, err := backups.List(2)
	require.NoError(t, err)
	require.Len(t, all, 1, "no empty-script snapshot may be written")
	assert.Equal(t, "old-script", all[0].TrackingScript)
}

func TestRestoreProceedsWhenSnapshotFails(t *testing.T) {
	gw := &fakeGateway{sites: threeSites(), getSiteErr: errors.New("api down")}
	backups := backup.NewStore(t.TempDir())
	saved, err := backups.Save(1, "one", "One", "old-script", "update")
	require.NoError(t, err)

	result, err := RestoreTrackingScript(context.Background(), gw, backups, "tok", 1, saved.SavedAt)
	require.NoError(t, err)

	assert.Contains(t, result.Warning, "api down")
	assert.Equal(t, []int{1}, gw.scriptUpdates)
}
