// Package export renders a shopper's order history as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	OrdersSheet = "Orders"
	ItemsSheet  = "Items"

	dateLayout = "2006-01-02 15:04:05"
)

// Translator maps a catalog key to display text.
type Translator func(key string) string

// Filename is the download name for an export taken at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("rasraj-orders-%s.xlsx", now.Format("20060102"))
}

// WriteOrderHistory writes one row per order to the Orders sheet and one row
// per line item to the Items sheet.
func WriteOrderHistory(w io.Writer, orders []domain.Order, t Translator) error {
	if t == nil {
		t = func(key string) string { return key }
	}

	file := xlsx.NewFile()
	summary, err := file.AddSheet(OrdersSheet)
	if err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", OrdersSheet, err)
	}
	items, err := file.AddSheet(ItemsSheet)
	if err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", ItemsSheet, err)
	}

	header(summary, t, "orderNumber", "orderDate", "status", "deliveryType", "paymentMethod",
		"couponCode", "subtotal", "deliveryCharge", "discount", "total")
	header(items, t, "orderNumber", "product", "weight", "quantity", "price", "lineTotal")

	for _, o := range orders {
		row := summary.AddRow()
		row.AddCell().SetString(o.OrderNumber)
		row.AddCell().SetString(o.CreatedAt.Format(dateLayout))
		row.AddCell().SetString(t(string(o.Status)))
		row.AddCell().SetString(t(deliveryKey(o.DeliveryType)))
		row.AddCell().SetString(t(string(o.PaymentMethod)))
		coupon := ""
		if o.CouponCode != nil {
			coupon = *o.CouponCode
		}
		row.AddCell().SetString(coupon)
		money(row, o.Subtotal)
		money(row, o.DeliveryCharge)
		money(row, o.Discount)
		money(row, o.Total)

		for _, it := range o.Items {
			r := items.AddRow()
			r.AddCell().SetString(o.OrderNumber)
			r.AddCell().SetString(it.ProductName)
			r.AddCell().SetString(it.Weight.String())
			r.AddCell().SetInt(it.Quantity)
			money(r, it.Price)
			money(r, it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func header(sheet *xlsx.Sheet, t Translator, keys ...string) {
	row := sheet.AddRow()
	for _, k := range keys {
		row.AddCell().SetString(t(k))
	}
}

func money(row *xlsx.Row, v decimal.Decimal) {
	row.AddCell().SetFloatWithFormat(v.InexactFloat64(), "0.00")
}

func deliveryKey(dt domain.DeliveryType) string {
	if dt == domain.DeliveryTypePickup {
		return "storePickup"
	}
	return "homeDelivery"
}
