package domain

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

func (d DeliveryType) Valid() bool {
	return d == DeliveryTypeDelivery || d == DeliveryTypePickup
}

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentMethodCOD || p == PaymentMethodOnline
}

type Address struct {
	Label   string `json:"label,omitempty"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

// CheckoutDraft is what the shopper filled in on the checkout page.
type CheckoutDraft struct {
	Address       Address       `json:"address"`
	DeliveryType  DeliveryType  `json:"delivery_type"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Notes         string        `json:"notes,omitempty"`
}

// PaymentRef identifies a completed gateway payment.
type PaymentRef struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Signature string `json:"signature,omitempty"`
}
