package http

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMain(m *testing.M) {
	// amounts travel as JSON numbers, as configured by the storefront binary
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}
