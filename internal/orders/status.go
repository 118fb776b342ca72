package orders

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// PaymentStatus is the payment state of an order, mutated independently of
// the fulfilment status.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentSuccess, PaymentFailed:
		return true
	}
	return false
}

// OrderStatuses and PaymentStatuses feed the status modal's selects.
var (
	OrderStatuses   = []OrderStatus{OrderPending, OrderDelivered, OrderCancelled}
	PaymentStatuses = []PaymentStatus{PaymentPending, PaymentSuccess, PaymentFailed}
)
