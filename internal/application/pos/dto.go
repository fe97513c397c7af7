package pos

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompleteSaleRequest carries a finalized POS cart ready for checkout.
type CompleteSaleRequest struct {
	ORNumber          string
	TransactionDate   time.Time
	PaymentMethod     string
	RegularDiscount   decimal.Decimal
	StatutoryDiscount decimal.Decimal
	VATIncluded       decimal.Decimal
	VATExcluded       decimal.Decimal
	TotalAmount       decimal.Decimal
	AmountTendered    decimal.Decimal
	ChangeAmount      decimal.Decimal
	CashierName       string
	TerminalID        string
	Cart              []SaleLineRequest
}

// SaleLineRequest is one line of a checkout cart. Discount lines carry no
// stock and skip the allocation engine.
type SaleLineRequest struct {
	Name          string
	Qty           int
	PricePerUnit  decimal.Decimal
	Sku           string
	IsRegularItem bool
	IsDiscount    bool
}

// RefundRequest asks for a partial or full refund of one receipt line.
// IsBroken selects the write-off path: the refunded units leave circulation
// instead of returning to sellable stock.
type RefundRequest struct {
	TransactionHeaderID int
	TransactionDetailID int
	Quantity            int
	Reason              string
	IsBroken            bool
}
