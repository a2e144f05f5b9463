package order

import "strings"

// Status is the normalized lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	// StatusUnknown covers any raw value the service sends that is not
	// recognized. Unknown orders expose no transitions.
	StatusUnknown Status = "unknown"
)

// transitions is the only definition of which status changes are legal.
// An order that is already being prepared can no longer be cancelled.
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  nil,
	StatusCancelled:  nil,
	StatusUnknown:    nil,
}

// aliases maps both the canonical vocabulary and the one used by the order
// service (Spanish, upper case) onto the normalized state.
var aliases = map[string]Status{
	"pending":     StatusPending,
	"pendiente":   StatusPending,
	"in_progress": StatusInProgress,
	"en_progreso": StatusInProgress,
	"completed":   StatusCompleted,
	"completado":  StatusCompleted,
	"cancelled":   StatusCancelled,
	"cancelado":   StatusCancelled,
}

// Normalize maps a raw status string from any source onto a Status.
// Matching ignores case and surrounding space; anything unrecognized is
// StatusUnknown.
func Normalize(raw string) Status {
	if s, ok := aliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusUnknown
}

// External is the value sent to the order service when requesting s.
func (s Status) External() string {
	switch s {
	case StatusPending:
		return "PENDIENTE"
	case StatusInProgress:
		return "EN_PROGRESO"
	case StatusCompleted:
		return "COMPLETED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return ""
	}
}

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusInProgress:
		return "En Preparación"
	case StatusCompleted:
		return "Completado"
	case StatusCancelled:
		return "Cancelado"
	default:
		return "Desconocido"
	}
}

func (s Status) ColorClass() string {
	switch s {
	case StatusPending:
		return "bg-yellow-100 text-yellow-800"
	case StatusInProgress:
		return "bg-blue-100 text-blue-800"
	case StatusCompleted:
		return "bg-green-100 text-green-800"
	case StatusCancelled:
		return "bg-red-100 text-red-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}

// AllowedNext returns a fresh slice of the states s may move to.
func (s Status) AllowedNext() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, n := range transitions[s] {
		if n == target {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) IsKnown() bool {
	_, ok := transitions[s]
	return ok && s != StatusUnknown
}

// All lists the known states in lifecycle order.
func All() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
}
