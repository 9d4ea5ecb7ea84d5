package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func sampleOrders() []domain.Order {
	code := "FIRST50"
	return []domain.Order{
		{
			ID:             "o1",
			OrderNumber:    "RR-1001",
			Status:         domain.OrderStatusOutForDelivery,
			DeliveryType:   domain.DeliveryTypeDelivery,
			PaymentMethod:  domain.PaymentMethodCOD,
			CouponCode:     &code,
			Subtotal:       domain.Rupees(600),
			DeliveryCharge: domain.Rupees(0),
			Discount:       domain.Rupees(50),
			Total:          domain.Rupees(550),
			CreatedAt:      time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
			Items: []domain.OrderItem{
				{ProductID: "kaju", ProductName: "Kaju Katli", Weight: domain.Weight250g, Quantity: 2, Price: domain.Rupees(250)},
				{ProductID: "ladoo", ProductName: "Besan Ladoo", Weight: domain.Weight1kg, Quantity: 1, Price: domain.Rupees(100)},
			},
		},
		{
			ID:            "o2",
			OrderNumber:   "RR-1002",
			Status:        domain.OrderStatusCancelled,
			DeliveryType:  domain.DeliveryTypePickup,
			PaymentMethod: domain.PaymentMethodOnline,
			Subtotal:      domain.Rupees(480),
			Total:         domain.Rupees(480),
			CreatedAt:     time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
			Items: []domain.OrderItem{
				{ProductID: "kaju", ProductName: "Kaju Katli", Weight: domain.Weight500g, Quantity: 1, Price: domain.Rupees(480)},
			},
		},
	}
}

func TestWriteOrderHistory(t *testing.T) {
	catalog := i18n.MustLoad()
	var buf bytes.Buffer

	err := WriteOrderHistory(&buf, sampleOrders(), func(key string) string { return catalog.T(i18n.English, key) })
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	orders, ok := file.Sheet[OrdersSheet]
	require.True(t, ok)
	require.Len(t, orders.Rows, 3)
	assert.Equal(t, "Order No.", orders.Rows[0].Cells[0].String())
	assert.Equal(t, "RR-1001", orders.Rows[1].Cells[0].String())
	assert.Equal(t, "2024-05-01 10:30:00", orders.Rows[1].Cells[1].String())
	assert.Equal(t, "Out for Delivery", orders.Rows[1].Cells[2].String())
	assert.Equal(t, "Home Delivery", orders.Rows[1].Cells[3].String())
	assert.Equal(t, "FIRST50", orders.Rows[1].Cells[5].String())
	total, err := orders.Rows[1].Cells[9].Float()
	require.NoError(t, err)
	assert.Equal(t, 550.0, total)

	assert.Equal(t, "Cancelled", orders.Rows[2].Cells[2].String())
	assert.Equal(t, "Store Pickup", orders.Rows[2].Cells[3].String())
	assert.Equal(t, "Online Payment", orders.Rows[2].Cells[4].String())

	items, ok := file.Sheet[ItemsSheet]
	require.True(t, ok)
	require.Len(t, items.Rows, 4)
	assert.Equal(t, "Kaju Katli", items.Rows[1].Cells[1].String())
	assert.Equal(t, "250g", items.Rows[1].Cells[2].String())
	qty, err := items.Rows[1].Cells[3].Int()
	require.NoError(t, err)
	assert.Equal(t, 2, qty)
	line, err := items.Rows[1].Cells[5].Float()
	require.NoError(t, err)
	assert.Equal(t, 500.0, line)
	assert.Equal(t, "RR-1002", items.Rows[3].Cells[0].String())
}

func TestWriteOrderHistory_EmptyHasHeadersOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrderHistory(&buf, nil, nil))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheet[OrdersSheet].Rows, 1)
	assert.Equal(t, "orderNumber", file.Sheet[OrdersSheet].Rows[0].Cells[0].String())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "rasraj-orders-20240501.xlsx", Filename(time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)))
}
