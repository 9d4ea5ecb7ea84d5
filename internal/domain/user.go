package domain

// User is the authenticated account as returned by the backend.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

const (
	RoleCustomer        = "customer"
	RoleAdmin           = "admin"
	RoleDeliveryPartner = "delivery_partner"
)
