// model/order.go
package model

import "time"

type OrderStatus string

const (
	OrderUnpaid    OrderStatus = "unpaid"
	OrderPaid      OrderStatus = "paid"
	OrderDelivered OrderStatus = "delivered"
	OrderCanceled  OrderStatus = "canceled"
	OrderFinished  OrderStatus = "finished"
)

// transitions is the only legal movement of an order. canceled and finished
// are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	OrderUnpaid:    {OrderPaid, OrderCanceled},
	OrderPaid:      {OrderDelivered, OrderCanceled},
	OrderDelivered: {OrderFinished, OrderCanceled},
	OrderCanceled:  {},
	OrderFinished:  {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// Order. Buyer is nil once the buyer account is unregistered; such orders
// can no longer be paid or canceled by anyone.
type Order struct {
	ID         string      `json:"id"`
	Buyer      *string     `json:"buyer"`
	StoreID    string      `json:"store_id"`
	TotalPrice int64       `json:"total_price"` // snapshot sum, immune to catalog edits
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

type OrderLine struct {
	OrderID string `json:"order_id"`
	BookID  string `json:"book_id"`
	Count   int64  `json:"count"`
	Price   int64  `json:"price"` // per-unit price at order creation
}
