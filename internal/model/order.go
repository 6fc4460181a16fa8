package model

import "time"

const Currency = "USD"

const DeliveryAddress = "123 Main St, Anytown, USA"

const (
	PaymentCreditCard     = "Credit Card"
	PaymentDebitCard      = "Debit Card"
	PaymentNetBanking     = "Net Banking"
	PaymentCashOnDelivery = "Cash on Delivery"
	PaymentUPI            = "UPI"
)

const (
	StatusOrderPlaced    = "Order Placed"
	StatusPreparing      = "Preparing"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
)

var PaymentModes = []string{
	PaymentCreditCard,
	PaymentDebitCard,
	PaymentNetBanking,
	PaymentCashOnDelivery,
	PaymentUPI,
}

var Statuses = []string{
	StatusOrderPlaced,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
}

// CustomerNotes is nil when the customer left no note.
type Order struct {
	ID                   string    `json:"order_id"`
	RestaurantName       string    `json:"restaurant_name"`
	Items                []string  `json:"items"`
	TotalAmount          float64   `json:"total_amount"`
	Currency             string    `json:"currency"`
	OrderedAt            time.Time `json:"ordered_at"`
	EstimatedArrivalTime time.Time `json:"estimated_arrival_time"`
	PaymentMode          string    `json:"payment_mode"`
	Status               string    `json:"status"`
	DeliveryAddress      string    `json:"delivery_address"`
	CustomerNotes        *string   `json:"customer_notes"`
}
