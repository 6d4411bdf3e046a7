package models

// ProjectStatus is a production stage. The stages form an ordered progression
// used for progress display only; any stage may be set directly.
type ProjectStatus string

const (
	StatusConception ProjectStatus = "Conception"
	StatusTournage   ProjectStatus = "Tournage"
	StatusMontage    ProjectStatus = "Montage"
	StatusPret       ProjectStatus = "Prêt"
	StatusEnvoye     ProjectStatus = "Envoyé"
	StatusTermine    ProjectStatus = "Terminé"
)

// ProjectStatuses lists every stage in progression order.
var ProjectStatuses = []ProjectStatus{
	StatusConception,
	StatusTournage,
	StatusMontage,
	StatusPret,
	StatusEnvoye,
	StatusTermine,
}

// Index returns the ordinal position of the stage, or -1 for an unknown value.
func (s ProjectStatus) Index() int {
	switch s {
	case StatusConception:
		return 0
	case StatusTournage:
		return 1
	case StatusMontage:
		return 2
	case StatusPret:
		return 3
	case StatusEnvoye:
		return 4
	case StatusTermine:
		return 5
	}
	return -1
}

func (s ProjectStatus) Valid() bool { return s.Index() >= 0 }

// Progress reports, for each stage in order, whether it has been reached.
func (s ProjectStatus) Progress() []bool {
	steps := make([]bool, len(ProjectStatuses))
	for i := range steps {
		steps[i] = i <= s.Index()
	}
	return steps
}

// Color returns the badge classes the dashboard uses for the stage.
func (s ProjectStatus) Color() string {
	switch s {
	case StatusConception:
		return "bg-yellow-200 text-yellow-700"
	case StatusTournage:
		return "bg-blue-200 text-blue-700"
	case StatusMontage:
		return "bg-purple-200 text-purple-700"
	case StatusPret:
		return "bg-green-200 text-green-700"
	case StatusEnvoye:
		return "bg-blue-500 text-white"
	case StatusTermine:
		return "bg-gray-500 text-white"
	}
	return ""
}

// ProjectType is the kind of shoot.
type ProjectType string

const (
	TypePhoto ProjectType = "Photo"
	TypeVideo ProjectType = "Video"
)

func (t ProjectType) Valid() bool {
	switch t {
	case TypePhoto, TypeVideo:
		return true
	}
	return false
}

// PaymentStatus tracks how much of a project's budget has been collected.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Payé"
	PaymentDeposit PaymentStatus = "Acompte"
	PaymentUnpaid  PaymentStatus = "Non payé"
)

var PaymentStatuses = []PaymentStatus{PaymentPaid, PaymentDeposit, PaymentUnpaid}

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPaid, PaymentDeposit, PaymentUnpaid:
		return true
	}
	return false
}

// Realized reports whether the budget counts as earned revenue.
func (p PaymentStatus) Realized() bool {
	switch p {
	case PaymentPaid:
		return true
	case PaymentDeposit, PaymentUnpaid:
		return false
	}
	return false
}

// ClientStatus distinguishes signed clients from prospects.
type ClientStatus string

const (
	ClientStatusClient   ClientStatus = "Client"
	ClientStatusProspect ClientStatus = "Prospect"
)

var ClientStatuses = []ClientStatus{ClientStatusClient, ClientStatusProspect}

func (c ClientStatus) Valid() bool {
	switch c {
	case ClientStatusClient, ClientStatusProspect:
		return true
	}
	return false
}

// TaskPriority orders organisation tasks; Urgente sorts first.
type TaskPriority string

const (
	PriorityUrgent TaskPriority = "Urgente"
	PriorityNormal TaskPriority = "Normale"
	PriorityLow    TaskPriority = "Faible"
)

// Rank returns the sort ordinal. Unknown values sort after Faible.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityNormal:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

func (p TaskPriority) Valid() bool { return p.Rank() < 3 }

// TaskStatus is the completion state of an organisation task.
type TaskStatus string

const (
	TaskInProgress TaskStatus = "En cours"
	TaskDone       TaskStatus = "Terminée"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskInProgress, TaskDone:
		return true
	}
	return false
}

// Toggle flips between En cours and Terminée.
func (s TaskStatus) Toggle() TaskStatus {
	switch s {
	case TaskDone:
		return TaskInProgress
	case TaskInProgress:
		return TaskDone
	}
	return TaskDone
}

// RecurrencePattern is the period of a recurring task.
type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
)

func (r RecurrencePattern) Valid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}
