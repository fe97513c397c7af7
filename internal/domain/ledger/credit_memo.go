package ledger

import (
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreditMemoNumberFormat is the human-readable sequential numbering scheme.
const CreditMemoNumberFormat = "CM-%09d"

// CreditMemo is a refund record. SaleID is set only when the written-off item
// produced a compensating write-off sale (broken-item refunds). Voiding a
// memo is itself an audited, reversible ledger action.
type CreditMemo struct {
	shared.BaseEntity
	CreditMemoNumber    string
	TransactionORNumber string
	TransactionDetailID int
	Sku                 string
	ProductName         string
	SaleID              *int
	Qty                 int
	Amount              decimal.Decimal
	TotalAmount         decimal.Decimal
	Reason              string
	IsBroken            bool
	IsVoided            bool
	IssuedBy            string
	IssuedAt            time.Time
}

// NewCreditMemo issues a memo against a sale line. sequence is the next
// number in the CM series, read inside the issuing transaction.
func NewCreditMemo(sequence int, detail *TransactionDetail, header *TransactionHeader, qty int, reason string, isBroken bool, saleID *int, actor string) (*CreditMemo, error) {
	if qty <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Refund quantity must be positive")
	}
	return &CreditMemo{
		BaseEntity:          shared.NewBaseEntity(actor),
		CreditMemoNumber:    fmt.Sprintf(CreditMemoNumberFormat, sequence),
		TransactionORNumber: header.ORNumber,
		TransactionDetailID: detail.ID,
		Sku:                 detail.Sku,
		ProductName:         detail.Name,
		SaleID:              saleID,
		Qty:                 qty,
		Amount:              detail.PricePerUnit,
		TotalAmount:         detail.PricePerUnit.Mul(decimal.NewFromInt(int64(qty))),
		Reason:              reason,
		IsBroken:            isBroken,
		IssuedBy:            actor,
		IssuedAt:            time.Now(),
	}, nil
}

// CanVoid reports whether the memo may be reverted. Broken-item memos wrote
// stock off instead of restoring it, so they cannot be un-issued through this
// path, and a memo voids at most once.
func (m *CreditMemo) CanVoid() error {
	if m.IsBroken {
		return shared.ErrBrokenItemNotRevertible
	}
	if m.IsVoided {
		return shared.ErrAlreadyVoided
	}
	return nil
}

// MarkVoided transitions the memo from Issued to Voided.
func (m *CreditMemo) MarkVoided(actor string) error {
	if err := m.CanVoid(); err != nil {
		return err
	}
	m.IsVoided = true
	m.Touch(actor)
	return nil
}
