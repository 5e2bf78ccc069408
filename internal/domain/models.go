package domain

import "time"

type BlockerCategory string

const (
	CategoryProcess            BlockerCategory = "Process"
	CategoryTechnical          BlockerCategory = "Technical"
	CategoryDependency         BlockerCategory = "Dependency"
	CategoryInfrastructure     BlockerCategory = "Infrastructure"
	CategoryCommunication      BlockerCategory = "Communication"
	CategoryResource           BlockerCategory = "Resource"
	CategoryKnowledge          BlockerCategory = "Knowledge"
	CategoryAccess             BlockerCategory = "Access"
	CategoryExternal           BlockerCategory = "External"
	CategoryReview             BlockerCategory = "Review"
	CategoryCustomerEscalation BlockerCategory = "Customer Escalation"
	CategoryOther              BlockerCategory = "Other"
)

// Categories lists every valid blocker category.
var Categories = []BlockerCategory{
	CategoryProcess,
	CategoryTechnical,
	CategoryDependency,
	CategoryInfrastructure,
	CategoryCommunication,
	CategoryResource,
	CategoryKnowledge,
	CategoryAccess,
	CategoryExternal,
	CategoryReview,
	CategoryCustomerEscalation,
	CategoryOther,
}

type BlockerSeverity string

const (
	SeverityLow    BlockerSeverity = "Low"
	SeverityMedium BlockerSeverity = "Medium"
	SeverityHigh   BlockerSeverity = "High"
)

type BlockerStatus string

const (
	StatusOpen     BlockerStatus = "Open"
	StatusResolved BlockerStatus = "Resolved"
	StatusIgnored  BlockerStatus = "Ignored"
)

type Blocker struct {
	UID            string          `json:"uid"`
	TeamMemberUID  string          `json:"teamMember"`
	Description    string          `json:"description"`
	Category       BlockerCategory `json:"category"`
	Severity       BlockerSeverity `json:"severity"`
	Status         BlockerStatus   `json:"status"`
	ReportedVia    string          `json:"reportedVia"`
	Timestamp      time.Time       `json:"timestamp"`
	ManagerNotes   string          `json:"managerNotes,omitempty"`
	SlackMessageID string          `json:"slackMessageId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt,omitempty"`
}

// BlockerFilter narrows blocker listings. Zero values mean "no constraint";
// the store applies Limit, so callers must set it explicitly.
type BlockerFilter struct {
	MemberUID string
	Team      string
	Category  BlockerCategory
	Severity  BlockerSeverity
	Status    BlockerStatus
	FromDate  time.Time
	Limit     int
	Skip      int
}

type WeekCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

type BlockerStats struct {
	Total       int                     `json:"total"`
	ByCategory  map[BlockerCategory]int `json:"byCategory"`
	BySeverity  map[BlockerSeverity]int `json:"bySeverity"`
	ByStatus    map[BlockerStatus]int   `json:"byStatus"`
	WeeklyTrend []WeekCount             `json:"weeklyTrend"`
}

type MemberStatus string

const (
	MemberActive   MemberStatus = "Active"
	MemberInactive MemberStatus = "Inactive"
)

type TeamMember struct {
	UID         string       `json:"uid"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Email       string       `json:"email"`
	SlackID     string       `json:"slackId,omitempty"`
	ProfilePic  string       `json:"profilePic,omitempty"`
	Designation string       `json:"designation,omitempty"`
	Team        string       `json:"team,omitempty"`
	IsManager   bool         `json:"isManager"`
	JoinedDate  string       `json:"joinedDate,omitempty"`
	Status      MemberStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt,omitempty"`
	UpdatedAt   time.Time    `json:"updatedAt,omitempty"`
}

func (m *TeamMember) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

type Team struct {
	UID         string       `json:"uid"`
	Name        string       `json:"name"`
	TeamID      string       `json:"teamId"`
	Description string       `json:"description,omitempty"`
	ManagerUID  string       `json:"managerUid,omitempty"`
	Manager     *TeamMember  `json:"manager,omitempty"`
	MemberUIDs  []string     `json:"memberUids"`
	Members     []TeamMember `json:"members,omitempty"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"createdAt,omitempty"`
	UpdatedAt   time.Time    `json:"updatedAt,omitempty"`
}

type ReportPeriod string

const (
	PeriodWeekly  ReportPeriod = "weekly"
	PeriodMonthly ReportPeriod = "monthly"
)

func (p ReportPeriod) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly
}

type ReportType string

const (
	ReportIndividual ReportType = "individual"
	ReportTeam       ReportType = "team"
)

type ActionItem struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	Priority          string `json:"priority"`
	Severity          string `json:"severity,omitempty"`
	Category          string `json:"category,omitempty"`
	SuggestedSolution string `json:"suggestedSolution,omitempty"`
	TeamToInvolve     string `json:"teamToInvolve,omitempty"`
	EstimatedEffort   string `json:"estimatedEffort,omitempty"`
	// RelatedBlockers holds short descriptions of the blockers this item
	// addresses, so a reader can trace it back without the full report.
	RelatedBlockers []string `json:"relatedBlockers,omitempty"`
}

// Analysis is the synthesized output of one generation run, either from the
// text-generation service or from the deterministic fallback.
type Analysis struct {
	Summary     string       `json:"summary"`
	ActionItems []ActionItem `json:"actionItems"`
	Insights    []string     `json:"insights"`
}

// Report is immutable after creation; regeneration always produces a new
// record. Exactly one of TargetMemberUID / TargetTeam is set, matching Type.
type Report struct {
	UID             string       `json:"uid"`
	Title           string       `json:"title"`
	Type            ReportType   `json:"reportType"`
	TargetMemberUID string       `json:"targetMember,omitempty"`
	TargetTeam      string       `json:"targetTeam,omitempty"`
	Period          ReportPeriod `json:"reportPeriod"`
	Summary         string       `json:"summary"`
	ActionItems     []ActionItem `json:"actionItems"`
	Insights        []string     `json:"insights"`
	GeneratedAt     time.Time    `json:"generatedAt"`
	CreatedAt       time.Time    `json:"createdAt,omitempty"`
	UpdatedAt       time.Time    `json:"updatedAt,omitempty"`
	IsExisting      bool         `json:"isExisting,omitempty"`
}

// Actor is the authenticated principal attached to a request.
type Actor struct {
	UID       string `json:"uid"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsManager bool   `json:"isManager"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
	Team      string `json:"team,omitempty"`
}
