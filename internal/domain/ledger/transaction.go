package ledger

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionHeader is a completed POS receipt. ORNumber is unique per store
// and is the reference credit memos are checked against before a void.
type TransactionHeader struct {
	shared.BaseEntity
	shared.SoftDelete
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
	IsVoided          bool
	Details           []TransactionDetail
}

// MarkVoided flags the whole receipt reversed.
func (h *TransactionHeader) MarkVoided(actor string) error {
	if h.IsVoided {
		return shared.ErrAlreadyVoided
	}
	h.IsVoided = true
	h.Touch(actor)
	return nil
}

// TransactionDetail is one line of a receipt. Only regular items drive the
// allocation engine; discount lines carry no stock.
type TransactionDetail struct {
	shared.BaseEntity
	shared.SoftDelete
	TransactionHeaderID int
	Name                string
	Qty                 int
	PricePerUnit        decimal.Decimal
	Sku                 string
	IsRegularItem       bool
	IsDiscount          bool
}

// DrivesAllocation reports whether the line consumes stock.
func (d *TransactionDetail) DrivesAllocation() bool {
	return d.IsRegularItem && !d.IsDeleted()
}
