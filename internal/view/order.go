package view

import (
	"fmt"
	"time"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/order"
)

type Action struct {
	Target order.Status `json:"target"`
	Label  string       `json:"label"`
	Class  string       `json:"class"`
}

type OrderLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
	Subtotal string `json:"subtotal"`
}

type OrderCard struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Customer    string       `json:"customer"`
	CreatedAt   string       `json:"createdAt"`
	Status      order.Status `json:"status"`
	RawStatus   string       `json:"rawStatus,omitempty"`
	StatusLabel string       `json:"statusLabel"`
	StatusClass string       `json:"statusClass"`
	Total       string       `json:"total"`
	Lines       []OrderLine  `json:"lines"`
	Actions     []Action     `json:"actions"`
}

// NewOrderCard builds the display model for o. Actions are only offered on
// the staff board and only for transitions the lifecycle allows.
func NewOrderCard(o order.Order, staffView bool) OrderCard {
	lines := make([]OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		name := it.MenuItemName
		if name == "" {
			name = "Producto"
		}
		lines = append(lines, OrderLine{
			Name:     name,
			Quantity: it.Quantity,
			Notes:    it.Notes,
			Subtotal: it.Subtotal().Display(),
		})
	}

	actions := []Action{}
	if staffView {
		for _, next := range o.Status.AllowedNext() {
			actions = append(actions, actionFor(next))
		}
	}

	return OrderCard{
		ID:          o.ID,
		Title:       "Pedido #" + o.ID,
		Customer:    o.CustomerDisplay(),
		CreatedAt:   FormatDate(o.CreatedAt),
		Status:      o.Status,
		RawStatus:   o.RawStatus,
		StatusLabel: o.Status.Label(),
		StatusClass: o.Status.ColorClass(),
		Total:       o.Total.Display(),
		Lines:       lines,
		Actions:     actions,
	}
}

func NewOrderCards(orders []order.Order, staffView bool) []OrderCard {
	out := make([]OrderCard, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderCard(o, staffView))
	}
	return out
}

func actionFor(target order.Status) Action {
	switch target {
	case order.StatusInProgress:
		return Action{Target: target, Label: "Iniciar Preparación", Class: "bg-blue-600 hover:bg-blue-700 text-white"}
	case order.StatusCancelled:
		return Action{Target: target, Label: "Cancelar", Class: "bg-red-600 hover:bg-red-700 text-white"}
	case order.StatusCompleted:
		return Action{Target: target, Label: "Marcar como Completado", Class: "bg-green-600 hover:bg-green-700 text-white"}
	case order.StatusPending, order.StatusUnknown:
		return Action{Target: target, Label: target.Label(), Class: "bg-gray-600 text-white"}
	default:
		return Action{Target: target, Label: target.Label(), Class: "bg-gray-600 text-white"}
	}
}

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders t as "1 de mayo de 2024, 10:05". Zero times render empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d de %s de %d, %02d:%02d", t.Day(), months[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
