package domain

// Role is a user role within the fleet organisation
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleInspector Role = "Inspector"
	RoleEngineer  Role = "Engineer"
)

// ShipStatus describes the operational state of a ship
type ShipStatus string

const (
	ShipActive           ShipStatus = "Active"
	ShipUnderMaintenance ShipStatus = "Under Maintenance"
	ShipOutOfService     ShipStatus = "Out of Service"
)

// JobType classifies a maintenance job
type JobType string

const (
	JobInspection  JobType = "Inspection"
	JobRepair      JobType = "Repair"
	JobReplacement JobType = "Replacement"
	JobOverhaul    JobType = "Overhaul"
)

// JobPriority ranks how urgent a job is
type JobPriority string

const (
	PriorityLow      JobPriority = "Low"
	PriorityMedium   JobPriority = "Medium"
	PriorityHigh     JobPriority = "High"
	PriorityCritical JobPriority = "Critical"
)

// JobStatus is the lifecycle state of a maintenance job
type JobStatus string

const (
	JobOpen       JobStatus = "Open"
	JobInProgress JobStatus = "In Progress"
	JobCompleted  JobStatus = "Completed"
	JobCancelled  JobStatus = "Cancelled"
)

// NotificationType identifies which job event produced a notification
type NotificationType string

const (
	NotifJobCreated   NotificationType = "JobCreated"
	NotifJobUpdated   NotificationType = "JobUpdated"
	NotifJobCompleted NotificationType = "JobCompleted"
)

// User represents a dashboard account. Accounts are seeded once and
// immutable afterwards; the password is stored as-is and compared exactly.
type User struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Ship represents a vessel in the fleet
type Ship struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	IMO    string     `json:"imo"`
	Flag   string     `json:"flag"`
	Status ShipStatus `json:"status"`
}

// Component is a piece of equipment installed on exactly one ship.
// LastMaintenanceDate is a date-only string (YYYY-MM-DD) and is advanced
// automatically when an associated job completes.
type Component struct {
	ID                  string `json:"id"`
	ShipID              string `json:"shipId"`
	Name                string `json:"name"`
	SerialNumber        string `json:"serialNumber"`
	InstallDate         string `json:"installDate"`
	LastMaintenanceDate string `json:"lastMaintenanceDate"`
}

// Job is a maintenance job on a component. ShipID is a denormalized copy of
// the owning component's shipId and must stay consistent with it.
type Job struct {
	ID                 string      `json:"id"`
	ComponentID        string      `json:"componentId"`
	ShipID             string      `json:"shipId"`
	Type               JobType     `json:"type"`
	Priority           JobPriority `json:"priority"`
	Status             JobStatus   `json:"status"`
	AssignedEngineerID string      `json:"assignedEngineerId"`
	ScheduledDate      string      `json:"scheduledDate"`
	CompletedDate      string      `json:"completedDate,omitempty"`
	Notes              string      `json:"notes,omitempty"`
}

// Notification is produced exclusively as a side effect of job creation and
// job status changes. JobID may point at a job that no longer exists; job
// deletion does not clean up notifications that reference it.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Timestamp string           `json:"timestamp"`
	Read      bool             `json:"read"`
	JobID     string           `json:"jobId,omitempty"`
}

// State is the whole application document. Every operation reads the full
// document, applies one change and persists the full document back.
type State struct {
	Users         []User         `json:"users"`
	Ships         []Ship         `json:"ships"`
	Components    []Component    `json:"components"`
	Jobs          []Job          `json:"jobs"`
	Notifications []Notification `json:"notifications"`
}

// UserByID returns the user with the given id, or nil
func (s *State) UserByID(id string) *User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// ShipByID returns the ship with the given id, or nil
func (s *State) ShipByID(id string) *Ship {
	for i := range s.Ships {
		if s.Ships[i].ID == id {
			return &s.Ships[i]
		}
	}
	return nil
}

// ComponentByID returns the component with the given id, or nil
func (s *State) ComponentByID(id string) *Component {
	for i := range s.Components {
		if s.Components[i].ID == id {
			return &s.Components[i]
		}
	}
	return nil
}

// JobByID returns the job with the given id, or nil
func (s *State) JobByID(id string) *Job {
	for i := range s.Jobs {
		if s.Jobs[i].ID == id {
			return &s.Jobs[i]
		}
	}
	return nil
}
