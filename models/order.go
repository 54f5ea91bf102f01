package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string
type RefuseReason string

const (
	// Order statuses (storefront flow)
	OrderStatusPending   OrderStatus = "pending"   // Created by checkout, awaiting handling
	OrderStatusPrepared  OrderStatus = "prepared"  // Packed and ready for dispatch
	OrderStatusRefused   OrderStatus = "refused"   // Rejected by the seller, see RefuseReason
	OrderStatusSent      OrderStatus = "sent"      // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the item

	// Refuse reasons
	RefuseReasonOutOfStock  RefuseReason = "out of stock"
	RefuseReasonNotIncluded RefuseReason = "product not included anymore"
	RefuseReasonTooMuch     RefuseReason = "quantity is too much"
)

// Order is the immutable record of one confirmed cart line. Quantity and
// TotalPrice are snapshots taken at confirmation time; later catalog changes
// never touch them. Only Status, RefuseReason, Delivered and Quantity may be
// changed afterwards, and only through the order service.
type Order struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	OrderRef     string       `gorm:"uniqueIndex" json:"order_ref"`
	UserID       string       `gorm:"index;not null" json:"userId"`
	ProductID    uint         `json:"productId"`
	Quantity     int          `json:"quantity"`
	TotalPrice   float64      `json:"totalPrice"`
	Status       OrderStatus  `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Delivered    bool         `gorm:"default:false" json:"delivered"`
	RefuseReason RefuseReason `gorm:"type:VARCHAR(40)" json:"refuseReason,omitempty"`

	// Shipping snapshot, copied verbatim from the confirm request.
	Fullname        string `json:"fullname"`
	Email           string `json:"email,omitempty"`
	PhoneNumber     string `json:"phoneNumber"`
	City            string `json:"city"`
	ShippingAddress string `json:"shippingAddress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrInvalidRefuseReason = errors.New("invalid refuse reason")
)

// ParseOrderStatus maps a request string onto the status enumeration.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusPrepared):
		return OrderStatusPrepared, nil
	case string(OrderStatusRefused):
		return OrderStatusRefused, nil
	case string(OrderStatusSent):
		return OrderStatusSent, nil
	case string(OrderStatusDelivered):
		return OrderStatusDelivered, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// ParseRefuseReason maps a request string onto the refuse-reason enumeration.
func ParseRefuseReason(reason string) (RefuseReason, error) {
	switch strings.ToLower(strings.TrimSpace(reason)) {
	case string(RefuseReasonOutOfStock):
		return RefuseReasonOutOfStock, nil
	case string(RefuseReasonNotIncluded):
		return RefuseReasonNotIncluded, nil
	case string(RefuseReasonTooMuch):
		return RefuseReasonTooMuch, nil
	default:
		return "", ErrInvalidRefuseReason
	}
}
