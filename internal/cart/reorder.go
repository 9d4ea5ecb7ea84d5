package cart

import (
	"context"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
)

// Reorder adds the lines of a previous order back into the cart at the
// prices the order was placed with. Lines with an unknown weight, or that
// would push a line past the quantity limit, are skipped and reported.
func (e *Engine) Reorder(ctx context.Context, order domain.Order) (skipped []domain.OrderItem) {
	for _, it := range order.Items {
		err := e.AddLine(ctx, domain.LineItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Weight:      it.Weight,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Image:       it.Image,
		})
		if err != nil {
			skipped = append(skipped, it)
		}
	}
	return skipped
}
