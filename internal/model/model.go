package model

import "strings"

// Status is the activity lifecycle state. The backend stores the Spanish
// labels verbatim, so these are the wire values, not display strings.
type Status string

const (
	StatusOnTrack   Status = "En Curso"
	StatusDone      Status = "Completada"
	StatusCancelled Status = "Cancelada"
)

// AllStatuses in the order the UI cycles through them.
func AllStatuses() []Status {
	return []Status{StatusOnTrack, StatusDone, StatusCancelled}
}

// RoleAdmin is the only role value the backend gates on; every other value
// (including the lowercase "collaborator" default) is a plain collaborator.
const RoleAdmin = "Admin"

type User struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	FullName  string     `json:"full_name,omitempty"`
	Role      string     `json:"role,omitempty"`
	LastLogin *Timestamp `json:"last_login,omitempty"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// DisplayName prefers the full name when present.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.FullName) != "" {
		return strings.TrimSpace(u.FullName)
	}
	return u.Username
}

type Activity struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	InjectedBy  string     `json:"injected_by"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	DueDate     *Timestamp `json:"due_date,omitempty"`
	Timestamp   Timestamp  `json:"timestamp"`
	UpdatedAt   *Timestamp `json:"updated_at,omitempty"`
}

// ActivityPage is the paginated list envelope returned by GET /activities.
type ActivityPage struct {
	Total   int        `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
	Items   []Activity `json:"items"`
}

// TotalPages derives the page count from the envelope. A total of zero still
// yields one (empty) page so pagination state stays in range.
func (p ActivityPage) TotalPages() int {
	if p.PerPage <= 0 {
		return 1
	}
	n := (p.Total + p.PerPage - 1) / p.PerPage
	if n < 1 {
		return 1
	}
	return n
}

type Subtask struct {
	ID          int    `json:"id"`
	ActivityID  int    `json:"activity_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
}

type ActivityFile struct {
	ID         int    `json:"id"`
	ActivityID int    `json:"activity_id"`
	Filename   string `json:"filename"`
	FileSize   int64  `json:"file_size"`
}

type Invitation struct {
	ID           int        `json:"id"`
	ActivityID   int        `json:"activity_id"`
	InvitedEmail string     `json:"invited_email"`
	Token        string     `json:"token,omitempty"`
	CreatedAt    Timestamp  `json:"created_at"`
	ExpiresAt    *Timestamp `json:"expires_at,omitempty"`
	AcceptedBy   string     `json:"accepted_by,omitempty"`
}

func (i Invitation) Accepted() bool { return strings.TrimSpace(i.AcceptedBy) != "" }

// InvitationPreview is the unauthenticated GET /invite/{token} response.
type InvitationPreview struct {
	ActivityID   int        `json:"activity_id"`
	InvitedEmail string     `json:"invited_email"`
	ExpiresAt    *Timestamp `json:"expires_at,omitempty"`
}

type Webhook struct {
	ID    int    `json:"id"`
	URL   string `json:"url"`
	Event string `json:"event"`
}

type HistoryRecord struct {
	ID           int       `json:"id"`
	ActivityID   int       `json:"activity_id"`
	ChangedBy    string    `json:"changed_by"`
	ChangedField string    `json:"changed_field"`
	OldValue     string    `json:"old_value"`
	NewValue     string    `json:"new_value"`
	Timestamp    Timestamp `json:"timestamp"`
}

type WeeklyDashboard struct {
	Period      string             `json:"period"`
	InProgress  int                `json:"in_progress"`
	Done        int                `json:"done"`
	Cancelled   int                `json:"cancelled"`
	Total       int                `json:"total"`
	Percentages map[string]float64 `json:"percentages"`
}

// DueActivity is the trimmed shape returned by GET /activities/due.
type DueActivity struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	DueDate    *Timestamp `json:"due_date,omitempty"`
	Status     Status     `json:"status"`
	AssignedTo string     `json:"assigned_to,omitempty"`
	OwnerID    int        `json:"owner_id"`
}

// ReminderResult is one entry of the send-reminders summary.
type ReminderResult struct {
	ActivityID int    `json:"activity_id"`
	To         string `json:"to"`
	Sent       bool   `json:"sent"`
	Reason     string `json:"reason,omitempty"`
}

type ReminderSummary struct {
	Count   int              `json:"count"`
	Results []ReminderResult `json:"results"`
}
