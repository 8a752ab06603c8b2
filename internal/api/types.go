package api

// Site is a tracked web property. TrackingScript is the one mutable field
// kamctl versions locally via internal/backup.
type Site struct {
	ID             int      `json:"id"`
	URL            string   `json:"url"`
	Name           string   `json:"name"`
	Code           string   `json:"code"`
	Type           string   `json:"type,omitempty"`
	SiteType       string   `json:"siteType,omitempty"`
	MainGoal       int      `json:"mainGoal,omitempty"`
	DateCreated    string   `json:"dateCreated,omitempty"`
	DomainNames    []string `json:"domainNames,omitempty"`
	TrackingScript string   `json:"trackingScript,omitempty"`
}

type CreateSiteRequest struct {
	URL         string   `json:"url"`
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"`
	SiteType    string   `json:"siteType,omitempty"`
	MainGoal    int      `json:"mainGoal,omitempty"`
	DomainNames []string `json:"domainNames,omitempty"`
}

type UpdateSiteRequest struct {
	Name           string `json:"name,omitempty"`
	TrackingScript string `json:"trackingScript,omitempty"`
}

// Goal is a conversion tracking objective attached to a site.
type Goal struct {
	ID                     int                    `json:"id"`
	Name                   string                 `json:"name"`
	Type                   string                 `json:"type"`
	Status                 string                 `json:"status,omitempty"`
	SiteID                 int                    `json:"siteId"`
	Description            string                 `json:"description,omitempty"`
	HasMultipleConversions *bool                  `json:"hasMultipleConversions,omitempty"`
	DateCreated            string                 `json:"dateCreated,omitempty"`
	DateModified           string                 `json:"dateModified,omitempty"`
	Params                 map[string]interface{} `json:"params,omitempty"`
}

type CreateGoalRequest struct {
	Name                   string                 `json:"name"`
	Type                   string                 `json:"type"`
	SiteID                 int                    `json:"siteId"`
	HasMultipleConversions *bool                  `json:"hasMultipleConversions,omitempty"`
	Description            string                 `json:"description,omitempty"`
	Params                 map[string]interface{} `json:"params,omitempty"`
}

type UpdateGoalRequest struct {
	Name                   string `json:"name,omitempty"`
	Status                 string `json:"status,omitempty"`
	Description            string `json:"description,omitempty"`
	HasMultipleConversions *bool  `json:"hasMultipleConversions,omitempty"`
}

// Experiment statuses accepted by UpdateExperimentStatus.
const (
	ExperimentStatusActive      = "ACTIVE"
	ExperimentStatusPaused      = "PAUSED"
	ExperimentStatusStopped     = "STOPPED"
	ExperimentStatusDeactivated = "DEACTIVATED"
)

type Experiment struct {
	ID                      int    `json:"id"`
	Name                    string `json:"name"`
	Description             string `json:"description,omitempty"`
	Status                  string `json:"status"`
	Type                    string `json:"type"`
	SiteID                  int    `json:"siteId"`
	SiteCode                string `json:"siteCode,omitempty"`
	DateCreated             string `json:"dateCreated,omitempty"`
	DateModified            string `json:"dateModified,omitempty"`
	BaseURL                 string `json:"baseURL,omitempty"`
	TrafficAllocationMethod string `json:"trafficAllocationMethod,omitempty"`
	Variations              []int  `json:"variations,omitempty"`
	Goals                   []int  `json:"goals,omitempty"`
}

type CreateExperimentRequest struct {
	Name                    string `json:"name"`
	Description             string `json:"description,omitempty"`
	SiteID                  int    `json:"siteId"`
	Type                    string `json:"type"`
	BaseURL                 string `json:"baseURL"`
	Status                  string `json:"status,omitempty"`
	TrafficAllocationMethod string `json:"trafficAllocationMethod,omitempty"`
}

// UpdateExperimentRequest is a partial update. Status is never sent in the
// body: UpdateExperiment translates it into an action query parameter.
type UpdateExperimentRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	BaseURL     string `json:"baseURL,omitempty"`
}

// CustomData is a visitor data definition (collected via GTM, SDK, Adobe
// Analytics, etc.).
type CustomData struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Index            int    `json:"index,omitempty"`
	Type             string `json:"type,omitempty"`
	Method           string `json:"method"`
	Format           string `json:"format,omitempty"`
	SiteID           int    `json:"siteId"`
	Description      string `json:"description,omitempty"`
	IsLocalOnly      *bool  `json:"isLocalOnly,omitempty"`
	IsConstant       *bool  `json:"isConstant,omitempty"`
	DateCreated      string `json:"dateCreated,omitempty"`
	ModificationDate string `json:"modificationDate,omitempty"`
}

type CreateCustomDataRequest struct {
	Name        string `json:"name"`
	Method      string `json:"method"`
	SiteID      int    `json:"siteId"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
	IsLocalOnly *bool  `json:"isLocalOnly,omitempty"`

	// Method-specific fields.
	GTMVariableName            string `json:"gtmVariableName,omitempty"`
	AdobeAnalyticsVariableName string `json:"adobeAnalyticsVariableName,omitempty"`
	CustomEvalCode             string `json:"customEvalCode,omitempty"`
}

type UpdateCustomDataRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Segment is an audience definition. ConditionsData carries the remote
// condition tree opaquely; kamctl never interprets it, only copies it.
type Segment struct {
	ID               int                    `json:"id"`
	Name             string                 `json:"name"`
	SiteID           int                    `json:"siteId"`
	SegmentType      string                 `json:"segmentType"`
	ConditionsData   map[string]interface{} `json:"conditionsData"`
	Description      string                 `json:"description,omitempty"`
	AudienceTracking *bool                  `json:"audienceTracking,omitempty"`
	Tags             []string               `json:"tags,omitempty"`
	UserVisible      *bool                  `json:"userVisible,omitempty"`
	IsFavorite       *bool                  `json:"isFavorite,omitempty"`
	DateCreated      string                 `json:"dateCreated,omitempty"`
	DateModified     string                 `json:"dateModified,omitempty"`
}

type CreateSegmentRequest struct {
	Name             string                 `json:"name"`
	SiteID           int                    `json:"siteId"`
	SegmentType      string                 `json:"segmentType"`
	ConditionsData   map[string]interface{} `json:"conditionsData"`
	Description      string                 `json:"description,omitempty"`
	AudienceTracking *bool                  `json:"audienceTracking,omitempty"`
	Tags             []string               `json:"tags,omitempty"`
	UserVisible      *bool                  `json:"userVisible,omitempty"`
	IsFavorite       *bool                  `json:"isFavorite,omitempty"`
}

// Account is a remote user of the organization, distinct from a stored
// credential client.
type Account struct {
	ID              int                      `json:"id"`
	Email           string                   `json:"email"`
	FirstName       string                   `json:"firstName"`
	LastName        string                   `json:"lastName"`
	DateCreated     string                   `json:"dateCreated,omitempty"`
	ImageURL        string                   `json:"imageURL,omitempty"`
	PreferredLocale string                   `json:"preferredLocale,omitempty"`
	Roles           []map[string]interface{} `json:"roles,omitempty"`
	Solutions       []string                 `json:"solutions,omitempty"`
	Status          string                   `json:"status,omitempty"`
	TeamID          int                      `json:"teamId,omitempty"`
}

type CreateAccountRequest struct {
	Email           string                   `json:"email"`
	FirstName       string                   `json:"firstName"`
	LastName        string                   `json:"lastName"`
	Password        string                   `json:"password,omitempty"`
	PasswordConfirm string                   `json:"passwordConfirm,omitempty"`
	PreferredLocale string                   `json:"preferredLocale,omitempty"`
	Roles           []map[string]interface{} `json:"roles,omitempty"`
	Solutions       []string                 `json:"solutions,omitempty"`
}

type UpdateAccountRequest struct {
	Email           string                   `json:"email,omitempty"`
	FirstName       string                   `json:"firstName,omitempty"`
	LastName        string                   `json:"lastName,omitempty"`
	PreferredLocale string                   `json:"preferredLocale,omitempty"`
	Roles           []map[string]interface{} `json:"roles,omitempty"`
	Solutions       []string                 `json:"solutions,omitempty"`
	Status          string                   `json:"status,omitempty"`
}
