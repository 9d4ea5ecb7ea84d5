package domain

// Weight is a packaging size a product is priced and sold in.
type Weight string

const (
	Weight250g Weight = "250g"
	Weight500g Weight = "500g"
	Weight1kg  Weight = "1kg"
)

// Weights lists the sizes in display order.
var Weights = []Weight{Weight250g, Weight500g, Weight1kg}

// PriceKey returns the key of the product price table for w.
func (w Weight) PriceKey() (string, bool) {
	switch w {
	case Weight250g:
		return "g250", true
	case Weight500g:
		return "g500", true
	case Weight1kg:
		return "g1000", true
	}
	return "", false
}

func (w Weight) Valid() bool {
	_, ok := w.PriceKey()
	return ok
}

// ParseWeight validates a raw weight label.
func ParseWeight(s string) (Weight, error) {
	w := Weight(s)
	if !w.Valid() {
		return "", ErrUnknownWeight
	}
	return w, nil
}

func (w Weight) String() string {
	return string(w)
}
