package models

import "time"

// Order statuses form a linear state machine with one escape hatch:
// Pending -> Confirmed -> Packed -> Shipped -> Out for Delivery -> Delivered,
// and Pending/Confirmed/Packed may jump to Cancelled.
const (
	OrderStatusPending        = "Pending"
	OrderStatusConfirmed      = "Confirmed"
	OrderStatusPacked         = "Packed"
	OrderStatusShipped        = "Shipped"
	OrderStatusOutForDelivery = "Out for Delivery"
	OrderStatusDelivered      = "Delivered"
	OrderStatusCancelled      = "Cancelled"
)

const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
)

// PaymentMethodCOD is the only method that stays Pending after checkout;
// every other method is a simulated electronic payment and settles instantly.
const PaymentMethodCOD = "cod"

var orderStatusRank = map[string]int{
	OrderStatusPending:        0,
	OrderStatusConfirmed:      1,
	OrderStatusPacked:         2,
	OrderStatusShipped:        3,
	OrderStatusOutForDelivery: 4,
	OrderStatusDelivered:      5,
}

// IsForwardTransition reports whether to is the immediate next step after
// from. Admin status updates may only walk the chain one step at a time.
func IsForwardTransition(from, to string) bool {
	fr, ok := orderStatusRank[from]
	tr, ok2 := orderStatusRank[to]
	return ok && ok2 && tr == fr+1
}

// IsCancellable reports whether the owner may still cancel. Once the parcel
// has shipped the order can only run to completion.
func IsCancellable(status string) bool {
	r, ok := orderStatusRank[status]
	return ok && r <= orderStatusRank[OrderStatusPacked]
}

// CancellableStatuses is used in conditional UPDATEs so a concurrent or
// repeated cancel can never restore stock twice.
func CancellableStatuses() []string {
	return []string{OrderStatusPending, OrderStatusConfirmed, OrderStatusPacked}
}

type Order struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	UserID            uint        `gorm:"not null;index" json:"user_id"`
	User              User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TotalAmount       float64     `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	OrderStatus       string      `gorm:"type:varchar(50);not null;default:'Pending'" json:"order_status"`
	PaymentStatus     string      `gorm:"type:varchar(50);not null;default:'Pending'" json:"payment_status"`
	PaymentMethod     string      `gorm:"type:varchar(50)" json:"payment_method"`
	PaymentReference  string      `gorm:"type:varchar(100)" json:"payment_reference,omitempty"`
	TrackingNumber    string      `gorm:"type:varchar(50);uniqueIndex" json:"tracking_number"`
	ShippingAddress   string      `gorm:"type:text" json:"shipping_address"`
	EstimatedDelivery *time.Time  `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems        []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}
