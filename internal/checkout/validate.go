package checkout

import (
	"regexp"
	"strings"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
)

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

const minPhoneDigits = 10

// ValidateDraft checks the draft without touching the cart or the network.
// The address is required for pickup orders as well.
func ValidateDraft(d domain.CheckoutDraft) error {
	if !d.DeliveryType.Valid() {
		return &ValidationError{Field: "delivery_type", Message: "must be delivery or pickup"}
	}
	if !d.PaymentMethod.Valid() {
		return &ValidationError{Field: "payment_method", Message: "must be cod or online"}
	}
	return ValidateAddress(d.Address)
}

func ValidateAddress(a domain.Address) error {
	switch {
	case strings.TrimSpace(a.Line1) == "":
		return &ValidationError{Field: "line1", Message: "address line is required"}
	case strings.TrimSpace(a.City) == "":
		return &ValidationError{Field: "city", Message: "city is required"}
	case !pincodePattern.MatchString(strings.TrimSpace(a.Pincode)):
		return &ValidationError{Field: "pincode", Message: "pincode must be 6 digits"}
	case strings.TrimSpace(a.Phone) == "":
		return &ValidationError{Field: "phone", Message: "phone is required"}
	case digits(a.Phone) < minPhoneDigits:
		return &ValidationError{Field: "phone", Message: "phone must have at least 10 digits"}
	}
	return nil
}

// digits counts ASCII digits only, the same set the pincode accepts.
func digits(s string) int {
	n := 0
	for _, r := range s {
		if '0' <= r && r <= '9' {
			n++
		}
	}
	return n
}
