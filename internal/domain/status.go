package domain

import "strings"

// Order lifecycle statuses. Every materialized draft starts as pending.
const (
	OrderStatusPending = iota
	OrderStatusApproved
	OrderStatusOrdered
	OrderStatusReceived
	OrderStatusCancelled
)

var orderStatusLabels = map[int]string{
	OrderStatusPending:   "pending",
	OrderStatusApproved:  "approved",
	OrderStatusOrdered:   "ordered",
	OrderStatusReceived:  "received",
	OrderStatusCancelled: "cancelled",
}

var orderStatusCodes = map[string]int{
	"pending":   OrderStatusPending,
	"approved":  OrderStatusApproved,
	"ordered":   OrderStatusOrdered,
	"received":  OrderStatusReceived,
	"cancelled": OrderStatusCancelled,
}

// orderStatusTransitions lists which statuses each status may move to.
// Received and cancelled are terminal.
var orderStatusTransitions = map[int][]int{
	OrderStatusPending:  {OrderStatusApproved, OrderStatusCancelled},
	OrderStatusApproved: {OrderStatusOrdered, OrderStatusCancelled},
	OrderStatusOrdered:  {OrderStatusReceived, OrderStatusCancelled},
}

// OrderStatusLabel returns a human-readable label for an order status code.
func OrderStatusLabel(status int) string {
	if label, ok := orderStatusLabels[status]; ok {
		return label
	}

	return "unknown"
}

// ParseOrderStatus returns the status code for a given label (case-insensitive).
func ParseOrderStatus(label string) (int, bool) {
	code, ok := orderStatusCodes[strings.ToLower(strings.TrimSpace(label))]

	return code, ok
}

// CanTransitionOrderStatus reports whether an order may move from one status
// to another.
func CanTransitionOrderStatus(from, to int) bool {
	for _, next := range orderStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
