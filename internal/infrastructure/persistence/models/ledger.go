package models

import (
	"time"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// BulkLotModel is the persistence model for bulk lots
type BulkLotModel struct {
	BaseModel
	SoftDeleteModel
	BatchNo         string          `gorm:"size:64;not null;uniqueIndex"`
	SKU             string          `gorm:"size:128;not null;index"`
	CostPerUnit     decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	PricePerUnit    decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	InitialQuantity int             `gorm:"not null"`
	CurrentQuantity int             `gorm:"not null"`
	Status          string          `gorm:"size:16;not null"`
	ProductID       int             `gorm:"index"`
	SupplierID      int             `gorm:"index"`
	ExpiryDate      *time.Time
}

// TableName specifies the table name
func (BulkLotModel) TableName() string { return "bulk_lots" }

// ToDomain converts the model to a domain entity
func (m *BulkLotModel) ToDomain() *ledger.BulkLot {
	return &ledger.BulkLot{
		BaseEntity:      m.BaseModel.ToDomain(),
		SoftDelete:      m.SoftDeleteModel.ToDomain(),
		BatchNo:         m.BatchNo,
		SKU:             m.SKU,
		CostPerUnit:     m.CostPerUnit,
		PricePerUnit:    m.PricePerUnit,
		InitialQuantity: m.InitialQuantity,
		CurrentQuantity: m.CurrentQuantity,
		Status:          ledger.BulkLotStatus(m.Status),
		ProductID:       m.ProductID,
		SupplierID:      m.SupplierID,
		ExpiryDate:      m.ExpiryDate,
	}
}

// FromDomain populates the model from a domain entity
func (m *BulkLotModel) FromDomain(e *ledger.BulkLot) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.FromDomainSoftDelete(e.SoftDelete)
	m.BatchNo = e.BatchNo
	m.SKU = e.SKU
	m.CostPerUnit = e.CostPerUnit
	m.PricePerUnit = e.PricePerUnit
	m.InitialQuantity = e.InitialQuantity
	m.CurrentQuantity = e.CurrentQuantity
	m.Status = string(e.Status)
	m.ProductID = e.ProductID
	m.SupplierID = e.SupplierID
	m.ExpiryDate = e.ExpiryDate
}

// RetailLotModel is the persistence model for retail lots
type RetailLotModel struct {
	BaseModel
	SoftDeleteModel
	BulkLotID                    int             `gorm:"not null;index"`
	ProductID                    int             `gorm:"index"`
	ProductName                  string          `gorm:"size:256;not null"`
	UnitOfMeasure                string          `gorm:"size:32;not null"`
	PricePerUnit                 decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	QuantityValue                int             `gorm:"not null"`
	InitialQty                   int             `gorm:"not null"`
	SoldQty                      int             `gorm:"not null;default:0"`
	QuantityDisplayed            int             `gorm:"not null;default:0"`
	QuantityDisplayedToPOS       int             `gorm:"not null;default:0"`
	QuantityDisplayedToInventory int             `gorm:"not null;default:0"`
	VariantSku                   string          `gorm:"size:512;not null;index"`
}

// TableName specifies the table name
func (RetailLotModel) TableName() string { return "retail_lots" }

// ToDomain converts the model to a domain entity
func (m *RetailLotModel) ToDomain() *ledger.RetailLot {
	return &ledger.RetailLot{
		BaseEntity:                   m.BaseModel.ToDomain(),
		SoftDelete:                   m.SoftDeleteModel.ToDomain(),
		BulkLotID:                    m.BulkLotID,
		ProductID:                    m.ProductID,
		ProductName:                  m.ProductName,
		UnitOfMeasure:                m.UnitOfMeasure,
		PricePerUnit:                 m.PricePerUnit,
		QuantityValue:                m.QuantityValue,
		InitialQty:                   m.InitialQty,
		SoldQty:                      m.SoldQty,
		QuantityDisplayed:            m.QuantityDisplayed,
		QuantityDisplayedToPOS:       m.QuantityDisplayedToPOS,
		QuantityDisplayedToInventory: m.QuantityDisplayedToInventory,
		VariantSku:                   m.VariantSku,
	}
}

// FromDomain populates the model from a domain entity
func (m *RetailLotModel) FromDomain(e *ledger.RetailLot) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.FromDomainSoftDelete(e.SoftDelete)
	m.BulkLotID = e.BulkLotID
	m.ProductID = e.ProductID
	m.ProductName = e.ProductName
	m.UnitOfMeasure = e.UnitOfMeasure
	m.PricePerUnit = e.PricePerUnit
	m.QuantityValue = e.QuantityValue
	m.InitialQty = e.InitialQty
	m.SoldQty = e.SoldQty
	m.QuantityDisplayed = e.QuantityDisplayed
	m.QuantityDisplayedToPOS = e.QuantityDisplayedToPOS
	m.QuantityDisplayedToInventory = e.QuantityDisplayedToInventory
	m.VariantSku = e.VariantSku
}

// CatalogItemModel is the persistence model for POS catalog items
type CatalogItemModel struct {
	BaseModel
	SoftDeleteModel
	Name         string          `gorm:"size:256;not null"`
	Sku          string          `gorm:"size:512;not null;uniqueIndex"`
	PricePerUnit decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	QtyDisplayed int             `gorm:"not null;default:0"`
	QtySold      int             `gorm:"not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true"`
}

// TableName specifies the table name
func (CatalogItemModel) TableName() string { return "catalog_items" }

// ToDomain converts the model to a domain entity
func (m *CatalogItemModel) ToDomain() *ledger.CatalogItem {
	return &ledger.CatalogItem{
		BaseEntity:   m.BaseModel.ToDomain(),
		SoftDelete:   m.SoftDeleteModel.ToDomain(),
		Name:         m.Name,
		Sku:          m.Sku,
		PricePerUnit: m.PricePerUnit,
		QtyDisplayed: m.QtyDisplayed,
		QtySold:      m.QtySold,
		IsActive:     m.IsActive,
	}
}

// FromDomain populates the model from a domain entity
func (m *CatalogItemModel) FromDomain(e *ledger.CatalogItem) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.FromDomainSoftDelete(e.SoftDelete)
	m.Name = e.Name
	m.Sku = e.Sku
	m.PricePerUnit = e.PricePerUnit
	m.QtyDisplayed = e.QtyDisplayed
	m.QtySold = e.QtySold
	m.IsActive = e.IsActive
}

// AllocationLineModel is the persistence model for allocation lines
type AllocationLineModel struct {
	BaseModel
	SoftDeleteModel
	TransactionDetailID int  `gorm:"not null;index"`
	RetailLotID         int  `gorm:"not null;index"`
	AllocatedQty        int  `gorm:"not null"`
	Voided              bool `gorm:"not null;default:false"`
}

// TableName specifies the table name
func (AllocationLineModel) TableName() string { return "allocation_lines" }

// ToDomain converts the model to a domain entity
func (m *AllocationLineModel) ToDomain() *ledger.AllocationLine {
	return &ledger.AllocationLine{
		BaseEntity:          m.BaseModel.ToDomain(),
		SoftDelete:          m.SoftDeleteModel.ToDomain(),
		TransactionDetailID: m.TransactionDetailID,
		RetailLotID:         m.RetailLotID,
		AllocatedQty:        m.AllocatedQty,
		Voided:              m.Voided,
	}
}

// FromDomain populates the model from a domain entity
func (m *AllocationLineModel) FromDomain(e *ledger.AllocationLine) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.FromDomainSoftDelete(e.SoftDelete)
	m.TransactionDetailID = e.TransactionDetailID
	m.RetailLotID = e.RetailLotID
	m.AllocatedQty = e.AllocatedQty
	m.Voided = e.Voided
}

// CreditMemoModel is the persistence model for credit memos
type CreditMemoModel struct {
	BaseModel
	CreditMemoNumber    string          `gorm:"size:32;not null;uniqueIndex"`
	TransactionORNumber string          `gorm:"size:64;not null;index"`
	TransactionDetailID int             `gorm:"not null;index"`
	Sku                 string          `gorm:"size:512;not null"`
	ProductName         string          `gorm:"size:256;not null"`
	SaleID              *int            `gorm:"index"`
	Qty                 int             `gorm:"not null"`
	Amount              decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	TotalAmount         decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Reason              string          `gorm:"size:512"`
	IsBroken            bool            `gorm:"not null;default:false"`
	IsVoided            bool            `gorm:"not null;default:false"`
	IssuedBy            string          `gorm:"size:128;not null"`
	IssuedAt            time.Time       `gorm:"not null"`
}

// TableName specifies the table name
func (CreditMemoModel) TableName() string { return "credit_memos" }

// ToDomain converts the model to a domain entity
func (m *CreditMemoModel) ToDomain() *ledger.CreditMemo {
	return &ledger.CreditMemo{
		BaseEntity:          m.BaseModel.ToDomain(),
		CreditMemoNumber:    m.CreditMemoNumber,
		TransactionORNumber: m.TransactionORNumber,
		TransactionDetailID: m.TransactionDetailID,
		Sku:                 m.Sku,
		ProductName:         m.ProductName,
		SaleID:              m.SaleID,
		Qty:                 m.Qty,
		Amount:              m.Amount,
		TotalAmount:         m.TotalAmount,
		Reason:              m.Reason,
		IsBroken:            m.IsBroken,
		IsVoided:            m.IsVoided,
		IssuedBy:            m.IssuedBy,
		IssuedAt:            m.IssuedAt,
	}
}

// FromDomain populates the model from a domain entity
func (m *CreditMemoModel) FromDomain(e *ledger.CreditMemo) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.CreditMemoNumber = e.CreditMemoNumber
	m.TransactionORNumber = e.TransactionORNumber
	m.TransactionDetailID = e.TransactionDetailID
	m.Sku = e.Sku
	m.ProductName = e.ProductName
	m.SaleID = e.SaleID
	m.Qty = e.Qty
	m.Amount = e.Amount
	m.TotalAmount = e.TotalAmount
	m.Reason = e.Reason
	m.IsBroken = e.IsBroken
	m.IsVoided = e.IsVoided
	m.IssuedBy = e.IssuedBy
	m.IssuedAt = e.IssuedAt
}

// SaleModel is the persistence model for channel-release sales
type SaleModel struct {
	BaseModel
	SoftDeleteModel
	BulkLotID      int             `gorm:"not null;index"`
	RetailLotID    int             `gorm:"not null;index"`
	DisplayEntryID int             `gorm:"not null;index"`
	Quantity       int             `gorm:"not null"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	SalesChannel   string          `gorm:"size:64;not null;index"`
	Reason         string          `gorm:"size:512"`
	SoldBy         string          `gorm:"size:128;not null"`
	DateSold       time.Time       `gorm:"not null;index"`
}

// TableName specifies the table name
func (SaleModel) TableName() string { return "sales" }

// ToDomain converts the model to a domain entity
func (m *SaleModel) ToDomain() *ledger.Sale {
	return &ledger.Sale{
		BaseEntity:     m.BaseModel.ToDomain(),
		SoftDelete:     m.SoftDeleteModel.ToDomain(),
		BulkLotID:      m.BulkLotID,
		RetailLotID:    m.RetailLotID,
		DisplayEntryID: m.DisplayEntryID,
		Quantity:       m.Quantity,
		TotalPrice:     m.TotalPrice,
		SalesChannel:   m.SalesChannel,
		Reason:         m.Reason,
		SoldBy:         m.SoldBy,
		DateSold:       m.DateSold,
	}
}

// FromDomain populates the model from a domain entity
func (m *SaleModel) FromDomain(e *ledger.Sale) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.FromDomainSoftDelete(e.SoftDelete)
	m.BulkLotID = e.BulkLotID
	m.RetailLotID = e.RetailLotID
	m.DisplayEntryID = e.DisplayEntryID
	m.Quantity = e.Quantity
	m.TotalPrice = e.TotalPrice
	m.SalesChannel = e.SalesChannel
	m.Reason = e.Reason
	m.SoldBy = e.SoldBy
	m.DateSold = e.DateSold
}

// DisplayEntryModel is the persistence model for display entries
type DisplayEntryModel struct {
	BaseModel
	SoftDeleteModel
	RetailLotID       int       `gorm:"not null;index"`
	QuantityDisplayed int       `gorm:"not null"`
	QuantitySold      int       `gorm:"not null;default:0"`
	IsSoldOut         bool      `gorm:"not null;default:false"`
	DisplayedBy       string    `gorm:"size:128;not null"`
	DisplayedOn       time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (DisplayEntryModel) TableName() string { return "display_entries" }

// ToDomain converts the model to a domain entity
func (m *DisplayEntryModel) ToDomain() *ledger.DisplayEntry {
	return &ledger.DisplayEntry{
		BaseEntity:        m.BaseModel.ToDomain(),
		SoftDelete:        m.SoftDeleteModel.ToDomain(),
		RetailLotID:       m.RetailLotID,
		QuantityDisplayed: m.QuantityDisplayed,
		QuantitySold:      m.QuantitySold,
		IsSoldOut:         m.IsSoldOut,
		DisplayedBy:       m.DisplayedBy,
		DisplayedOn:       m.DisplayedOn,
	}
}

// FromDomain populates the model from a domain entity
func (m *DisplayEntryModel) FromDomain(e *ledger.DisplayEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.FromDomainSoftDelete(e.SoftDelete)
	m.RetailLotID = e.RetailLotID
	m.QuantityDisplayed = e.QuantityDisplayed
	m.QuantitySold = e.QuantitySold
	m.IsSoldOut = e.IsSoldOut
	m.DisplayedBy = e.DisplayedBy
	m.DisplayedOn = e.DisplayedOn
}

// TransactionHeaderModel is the persistence model for POS receipts
type TransactionHeaderModel struct {
	BaseModel
	SoftDeleteModel
	ORNumber          string                   `gorm:"size:64;not null;uniqueIndex"`
	TransactionDate   time.Time                `gorm:"not null;index"`
	PaymentMethod     string                   `gorm:"size:32;not null"`
	RegularDiscount   decimal.Decimal          `gorm:"type:numeric(14,4);not null;default:0"`
	StatutoryDiscount decimal.Decimal          `gorm:"type:numeric(14,4);not null;default:0"`
	VATIncluded       decimal.Decimal          `gorm:"type:numeric(14,4);not null;default:0"`
	VATExcluded       decimal.Decimal          `gorm:"type:numeric(14,4);not null;default:0"`
	TotalAmount       decimal.Decimal          `gorm:"type:numeric(14,4);not null"`
	AmountTendered    decimal.Decimal          `gorm:"type:numeric(14,4);not null;default:0"`
	ChangeAmount      decimal.Decimal          `gorm:"type:numeric(14,4);not null;default:0"`
	CashierName       string                   `gorm:"size:128;not null"`
	TerminalID        string                   `gorm:"size:64"`
	IsVoided          bool                     `gorm:"not null;default:false"`
	Details           []TransactionDetailModel `gorm:"foreignKey:TransactionHeaderID"`
}

// TableName specifies the table name
func (TransactionHeaderModel) TableName() string { return "transaction_headers" }

// ToDomain converts the model to a domain entity
func (m *TransactionHeaderModel) ToDomain() *ledger.TransactionHeader {
	h := &ledger.TransactionHeader{
		BaseEntity:        m.BaseModel.ToDomain(),
		SoftDelete:        m.SoftDeleteModel.ToDomain(),
		ORNumber:          m.ORNumber,
		TransactionDate:   m.TransactionDate,
		PaymentMethod:     m.PaymentMethod,
		RegularDiscount:   m.RegularDiscount,
		StatutoryDiscount: m.StatutoryDiscount,
		VATIncluded:       m.VATIncluded,
		VATExcluded:       m.VATExcluded,
		TotalAmount:       m.TotalAmount,
		AmountTendered:    m.AmountTendered,
		ChangeAmount:      m.ChangeAmount,
		CashierName:       m.CashierName,
		TerminalID:        m.TerminalID,
		IsVoided:          m.IsVoided,
	}
	for i := range m.Details {
		h.Details = append(h.Details, *m.Details[i].ToDomain())
	}
	return h
}

// FromDomain populates the model from a domain entity
func (m *TransactionHeaderModel) FromDomain(e *ledger.TransactionHeader) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.FromDomainSoftDelete(e.SoftDelete)
	m.ORNumber = e.ORNumber
	m.TransactionDate = e.TransactionDate
	m.PaymentMethod = e.PaymentMethod
	m.RegularDiscount = e.RegularDiscount
	m.StatutoryDiscount = e.StatutoryDiscount
	m.VATIncluded = e.VATIncluded
	m.VATExcluded = e.VATExcluded
	m.TotalAmount = e.TotalAmount
	m.AmountTendered = e.AmountTendered
	m.ChangeAmount = e.ChangeAmount
	m.CashierName = e.CashierName
	m.TerminalID = e.TerminalID
	m.IsVoided = e.IsVoided
	m.Details = m.Details[:0]
	for i := range e.Details {
		var d TransactionDetailModel
		d.FromDomain(&e.Details[i])
		m.Details = append(m.Details, d)
	}
}

// TransactionDetailModel is the persistence model for receipt lines
type TransactionDetailModel struct {
	BaseModel
	SoftDeleteModel
	TransactionHeaderID int             `gorm:"not null;index"`
	Name                string          `gorm:"size:256;not null"`
	Qty                 int             `gorm:"not null"`
	PricePerUnit        decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Sku                 string          `gorm:"size:512;index"`
	IsRegularItem       bool            `gorm:"not null;default:true"`
	IsDiscount          bool            `gorm:"not null;default:false"`
}

// TableName specifies the table name
func (TransactionDetailModel) TableName() string { return "transaction_details" }

// ToDomain converts the model to a domain entity
func (m *TransactionDetailModel) ToDomain() *ledger.TransactionDetail {
	return &ledger.TransactionDetail{
		BaseEntity:          m.BaseModel.ToDomain(),
		SoftDelete:          m.SoftDeleteModel.ToDomain(),
		TransactionHeaderID: m.TransactionHeaderID,
		Name:                m.Name,
		Qty:                 m.Qty,
		PricePerUnit:        m.PricePerUnit,
		Sku:                 m.Sku,
		IsRegularItem:       m.IsRegularItem,
		IsDiscount:          m.IsDiscount,
	}
}

// FromDomain populates the model from a domain entity
func (m *TransactionDetailModel) FromDomain(e *ledger.TransactionDetail) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.FromDomainSoftDelete(e.SoftDelete)
	m.TransactionHeaderID = e.TransactionHeaderID
	m.Name = e.Name
	m.Qty = e.Qty
	m.PricePerUnit = e.PricePerUnit
	m.Sku = e.Sku
	m.IsRegularItem = e.IsRegularItem
	m.IsDiscount = e.IsDiscount
}

// AuditLogModel is the persistence model for audit entries
type AuditLogModel struct {
	ID          int       `gorm:"primaryKey;autoIncrement"`
	Action      string    `gorm:"size:32;not null"`
	EntityName  string    `gorm:"size:64;not null;index"`
	EntityID    string    `gorm:"size:128;not null;index"`
	Description string    `gorm:"size:1024"`
	PerformedBy string    `gorm:"size:128;not null"`
	Timestamp   time.Time `gorm:"not null;index"`
}

// TableName specifies the table name
func (AuditLogModel) TableName() string { return "audit_logs" }

// ToDomain converts the model to a domain entity
func (m *AuditLogModel) ToDomain() *ledger.AuditLog {
	return &ledger.AuditLog{
		ID:          m.ID,
		Action:      m.Action,
		EntityName:  m.EntityName,
		EntityID:    m.EntityID,
		Description: m.Description,
		PerformedBy: m.PerformedBy,
		Timestamp:   m.Timestamp,
	}
}

// FromDomain populates the model from a domain entity
func (m *AuditLogModel) FromDomain(e *ledger.AuditLog) {
	m.ID = e.ID
	m.Action = e.Action
	m.EntityName = e.EntityName
	m.EntityID = e.EntityID
	m.Description = e.Description
	m.PerformedBy = e.PerformedBy
	m.Timestamp = e.Timestamp
}

// AllModels returns every ledger model for schema migration
func AllModels() []interface{} {
	return []interface{}{
		&BulkLotModel{},
		&RetailLotModel{},
		&CatalogItemModel{},
		&AllocationLineModel{},
		&CreditMemoModel{},
		&SaleModel{},
		&DisplayEntryModel{},
		&TransactionHeaderModel{},
		&TransactionDetailModel{},
		&AuditLogModel{},
	}
}
