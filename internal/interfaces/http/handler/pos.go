package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/application/pos"
	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// POSHandler handles checkout, void, refund and display-channel endpoints
type POSHandler struct {
	BaseHandler
	coordinator *pos.Coordinator
}

// NewPOSHandler creates a new POSHandler
func NewPOSHandler(coordinator *pos.Coordinator) *POSHandler {
	return &POSHandler{coordinator: coordinator}
}

// CompleteSaleRequest is the request body for completing a sale
type CompleteSaleRequest struct {
	ORNumber          string            `json:"or_number" binding:"required"`
	TransactionDate   string            `json:"transaction_date"`
	PaymentMethod     string            `json:"payment_method"`
	RegularDiscount   decimal.Decimal   `json:"regular_discount"`
	StatutoryDiscount decimal.Decimal   `json:"statutory_discount"`
	VATIncluded       decimal.Decimal   `json:"vat_included"`
	VATExcluded       decimal.Decimal   `json:"vat_excluded"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	AmountTendered    decimal.Decimal   `json:"amount_tendered"`
	ChangeAmount      decimal.Decimal   `json:"change_amount"`
	CashierName       string            `json:"cashier_name"`
	TerminalID        string            `json:"terminal_id"`
	Cart              []SaleLineRequest `json:"cart" binding:"required,min=1"`
}

// SaleLineRequest is one cart line in a sale request
type SaleLineRequest struct {
	Name          string          `json:"name" binding:"required"`
	Qty           int             `json:"qty"`
	PricePerUnit  decimal.Decimal `json:"price_per_unit"`
	Sku           string          `json:"sku"`
	IsRegularItem bool            `json:"is_regular_item"`
	IsDiscount    bool            `json:"is_discount"`
}

// RefundRequest is the request body for issuing a refund
type RefundRequest struct {
	TransactionDetailID int    `json:"transaction_detail_id" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required,gt=0"`
	Reason              string `json:"reason"`
	IsBroken            bool   `json:"is_broken"`
}

// DisplayRequest is the request body for displaying retail-lot stock
type DisplayRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// ReleaseRequest is the request body for releasing displayed stock
type ReleaseRequest struct {
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	SalesChannel string `json:"sales_channel"`
	Reason       string `json:"reason"`
}

// SaleResponse summarizes a completed sale
type SaleResponse struct {
	ID        int    `json:"id"`
	ORNumber  string `json:"or_number"`
	LineCount int    `json:"line_count"`
	IsVoided  bool   `json:"is_voided"`
}

// CreditMemoResponse summarizes an issued credit memo
type CreditMemoResponse struct {
	ID               int             `json:"id"`
	CreditMemoNumber string          `json:"credit_memo_number"`
	ORNumber         string          `json:"or_number"`
	Sku              string          `json:"sku"`
	Qty              int             `json:"qty"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	IsBroken         bool            `json:"is_broken"`
	IsVoided         bool            `json:"is_voided"`
}

func creditMemoResponse(memo *ledger.CreditMemo) CreditMemoResponse {
	return CreditMemoResponse{
		ID:               memo.ID,
		CreditMemoNumber: memo.CreditMemoNumber,
		ORNumber:         memo.TransactionORNumber,
		Sku:              memo.Sku,
		Qty:              memo.Qty,
		TotalAmount:      memo.TotalAmount,
		IsBroken:         memo.IsBroken,
		IsVoided:         memo.IsVoided,
	}
}

// CompleteSale handles POST /api/v1/sales
func (h *POSHandler) CompleteSale(c *gin.Context) {
	var req CompleteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transactionDate := time.Now()
	if req.TransactionDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.TransactionDate)
		if err != nil {
			h.BadRequest(c, "transaction_date must be RFC3339")
			return
		}
		transactionDate = parsed
	}

	appReq := pos.CompleteSaleRequest{
		ORNumber:          req.ORNumber,
		TransactionDate:   transactionDate,
		PaymentMethod:     req.PaymentMethod,
		RegularDiscount:   req.RegularDiscount,
		StatutoryDiscount: req.StatutoryDiscount,
		VATIncluded:       req.VATIncluded,
		VATExcluded:       req.VATExcluded,
		TotalAmount:       req.TotalAmount,
		AmountTendered:    req.AmountTendered,
		ChangeAmount:      req.ChangeAmount,
		CashierName:       req.CashierName,
		TerminalID:        req.TerminalID,
	}
	for _, line := range req.Cart {
		appReq.Cart = append(appReq.Cart, pos.SaleLineRequest{
			Name:          line.Name,
			Qty:           line.Qty,
			PricePerUnit:  line.PricePerUnit,
			Sku:           line.Sku,
			IsRegularItem: line.IsRegularItem,
			IsDiscount:    line.IsDiscount,
		})
	}

	header, err := h.coordinator.CompleteSale(c.Request.Context(), appReq, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, SaleResponse{
		ID:        header.ID,
		ORNumber:  header.ORNumber,
		LineCount: len(header.Details),
		IsVoided:  header.IsVoided,
	})
}

// VoidSale handles POST /api/v1/sales/:id/void
func (h *POSHandler) VoidSale(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid sale id")
		return
	}
	if err := h.coordinator.VoidSale(c.Request.Context(), id, getActor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id, "is_voided": true})
}

// IssueRefund handles POST /api/v1/refunds
func (h *POSHandler) IssueRefund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	memo, err := h.coordinator.IssueRefund(c.Request.Context(), pos.RefundRequest{
		TransactionDetailID: req.TransactionDetailID,
		Quantity:            req.Quantity,
		Reason:              req.Reason,
		IsBroken:            req.IsBroken,
	}, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, creditMemoResponse(memo))
}

// VoidCreditMemo handles POST /api/v1/credit-memos/:id/void
func (h *POSHandler) VoidCreditMemo(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid credit memo id")
		return
	}
	memo, err := h.coordinator.VoidCreditMemo(c.Request.Context(), id, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, creditMemoResponse(memo))
}

// MarkAsDisplayed handles POST /api/v1/retail-lots/:id/display
func (h *POSHandler) MarkAsDisplayed(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid retail lot id")
		return
	}
	var req DisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	entry, err := h.coordinator.MarkAsDisplayed(c.Request.Context(), id, req.Quantity, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{
		"id":                 entry.ID,
		"retail_lot_id":      entry.RetailLotID,
		"quantity_displayed": entry.QuantityDisplayed,
	})
}

// MarkAsReleased handles POST /api/v1/display-entries/:id/release
func (h *POSHandler) MarkAsReleased(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid display entry id")
		return
	}
	var req ReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	channel := req.SalesChannel
	if channel == "" {
		channel = ledger.SalesChannelOutItems
	}
	sale, err := h.coordinator.MarkAsReleased(c.Request.Context(), id, req.Quantity, channel, req.Reason, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{
		"id":            sale.ID,
		"quantity":      sale.Quantity,
		"total_price":   sale.TotalPrice,
		"sales_channel": sale.SalesChannel,
	})
}
