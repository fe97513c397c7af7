package pos

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/retailpos/backend/internal/domain/ledger"
	"github.com/retailpos/backend/internal/domain/shared"
)

// In-memory repositories backing the service and coordinator tests. IDs are
// assigned sequentially per repository, mirroring autoincrement columns.

type memoryBulkLots struct {
	nextID int
	lots   map[int]*ledger.BulkLot
}

func newMemoryBulkLots() *memoryBulkLots {
	return &memoryBulkLots{nextID: 1, lots: make(map[int]*ledger.BulkLot)}
}

func (m *memoryBulkLots) FindByID(_ context.Context, id int) (*ledger.BulkLot, error) {
	lot, ok := m.lots[id]
	if !ok || lot.IsDeleted() {
		return nil, shared.ErrNotFound
	}
	return lot, nil
}

func (m *memoryBulkLots) Save(_ context.Context, lot *ledger.BulkLot) error {
	if lot.ID == 0 {
		lot.ID = m.nextID
		m.nextID++
	}
	m.lots[lot.ID] = lot
	return nil
}

type memoryRetailLots struct {
	nextID int
	lots   map[int]*ledger.RetailLot
}

func newMemoryRetailLots() *memoryRetailLots {
	return &memoryRetailLots{nextID: 1, lots: make(map[int]*ledger.RetailLot)}
}

func (m *memoryRetailLots) FindByID(_ context.Context, id int) (*ledger.RetailLot, error) {
	lot, ok := m.lots[id]
	if !ok || lot.IsDeleted() {
		return nil, shared.ErrNotFound
	}
	return lot, nil
}

func (m *memoryRetailLots) FindAllocatable(_ context.Context, variantSku string) ([]*ledger.RetailLot, error) {
	var out []*ledger.RetailLot
	for _, lot := range m.lots {
		if lot.IsDeleted() || lot.VariantSku != variantSku {
			continue
		}
		if lot.QuantityDisplayedToPOS <= 0 || lot.AvailableQty() <= 0 {
			continue
		}
		out = append(out, lot)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memoryRetailLots) Save(_ context.Context, lot *ledger.RetailLot) error {
	if lot.ID == 0 {
		lot.ID = m.nextID
		m.nextID++
	}
	m.lots[lot.ID] = lot
	return nil
}

type memoryCatalogItems struct {
	nextID int
	items  map[string]*ledger.CatalogItem
}

func newMemoryCatalogItems() *memoryCatalogItems {
	return &memoryCatalogItems{nextID: 1, items: make(map[string]*ledger.CatalogItem)}
}

func (m *memoryCatalogItems) FindBySku(_ context.Context, sku string) (*ledger.CatalogItem, error) {
	item, ok := m.items[sku]
	if !ok || item.IsDeleted() {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (m *memoryCatalogItems) Save(_ context.Context, item *ledger.CatalogItem) error {
	if item.ID == 0 {
		item.ID = m.nextID
		m.nextID++
	}
	m.items[item.Sku] = item
	return nil
}

type memoryAllocationLines struct {
	nextID int
	lines  []*ledger.AllocationLine
}

func newMemoryAllocationLines() *memoryAllocationLines {
	return &memoryAllocationLines{nextID: 1}
}

func (m *memoryAllocationLines) FindByDetail(_ context.Context, transactionDetailID int) ([]*ledger.AllocationLine, error) {
	var out []*ledger.AllocationLine
	for _, line := range m.lines {
		if line.TransactionDetailID == transactionDetailID && !line.IsDeleted() {
			out = append(out, line)
		}
	}
	return out, nil
}

func (m *memoryAllocationLines) Create(_ context.Context, line *ledger.AllocationLine) error {
	line.ID = m.nextID
	m.nextID++
	m.lines = append(m.lines, line)
	return nil
}

func (m *memoryAllocationLines) Save(_ context.Context, _ *ledger.AllocationLine) error {
	return nil
}

type memoryCreditMemos struct {
	nextID int
	memos  []*ledger.CreditMemo
}

func newMemoryCreditMemos() *memoryCreditMemos {
	return &memoryCreditMemos{nextID: 1}
}

func (m *memoryCreditMemos) FindByID(_ context.Context, id int) (*ledger.CreditMemo, error) {
	for _, memo := range m.memos {
		if memo.ID == id {
			return memo, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memoryCreditMemos) SumActiveQtyByDetail(_ context.Context, transactionDetailID int) (int, error) {
	total := 0
	for _, memo := range m.memos {
		if memo.TransactionDetailID == transactionDetailID && !memo.IsVoided {
			total += memo.Qty
		}
	}
	return total, nil
}

func (m *memoryCreditMemos) FindActiveByORNumber(_ context.Context, orNumber string) (*ledger.CreditMemo, error) {
	for _, memo := range m.memos {
		if memo.TransactionORNumber == orNumber && !memo.IsVoided {
			return memo, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memoryCreditMemos) MaxSequence(_ context.Context) (int, error) {
	maxSeq := 0
	for _, memo := range m.memos {
		suffix := strings.TrimPrefix(memo.CreditMemoNumber, "CM-")
		seq, err := strconv.Atoi(suffix)
		if err != nil {
			return 0, fmt.Errorf("malformed credit memo number %q: %w", memo.CreditMemoNumber, err)
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq, nil
}

func (m *memoryCreditMemos) Create(_ context.Context, memo *ledger.CreditMemo) error {
	memo.ID = m.nextID
	m.nextID++
	m.memos = append(m.memos, memo)
	return nil
}

func (m *memoryCreditMemos) Save(_ context.Context, _ *ledger.CreditMemo) error {
	return nil
}

type memorySales struct {
	nextID int
	sales  []*ledger.Sale
}

func newMemorySales() *memorySales {
	return &memorySales{nextID: 1}
}

func (m *memorySales) Create(_ context.Context, sale *ledger.Sale) error {
	sale.ID = m.nextID
	m.nextID++
	m.sales = append(m.sales, sale)
	return nil
}

type memoryDisplayEntries struct {
	nextID  int
	entries map[int]*ledger.DisplayEntry
}

func newMemoryDisplayEntries() *memoryDisplayEntries {
	return &memoryDisplayEntries{nextID: 1, entries: make(map[int]*ledger.DisplayEntry)}
}

func (m *memoryDisplayEntries) FindByID(_ context.Context, id int) (*ledger.DisplayEntry, error) {
	entry, ok := m.entries[id]
	if !ok || entry.IsDeleted() {
		return nil, shared.ErrNotFound
	}
	return entry, nil
}

func (m *memoryDisplayEntries) Create(_ context.Context, entry *ledger.DisplayEntry) error {
	entry.ID = m.nextID
	m.nextID++
	m.entries[entry.ID] = entry
	return nil
}

func (m *memoryDisplayEntries) Save(_ context.Context, entry *ledger.DisplayEntry) error {
	m.entries[entry.ID] = entry
	return nil
}

type memoryTransactions struct {
	nextHeaderID int
	nextDetailID int
	headers      map[int]*ledger.TransactionHeader
}

func newMemoryTransactions() *memoryTransactions {
	return &memoryTransactions{nextHeaderID: 1, nextDetailID: 1, headers: make(map[int]*ledger.TransactionHeader)}
}

func (m *memoryTransactions) FindHeaderByID(_ context.Context, id int) (*ledger.TransactionHeader, error) {
	header, ok := m.headers[id]
	if !ok || header.IsDeleted() {
		return nil, shared.ErrNotFound
	}
	return header, nil
}

func (m *memoryTransactions) FindDetailByID(_ context.Context, id int) (*ledger.TransactionDetail, error) {
	for _, header := range m.headers {
		for i := range header.Details {
			if header.Details[i].ID == id {
				return &header.Details[i], nil
			}
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memoryTransactions) CreateHeader(_ context.Context, header *ledger.TransactionHeader) error {
	header.ID = m.nextHeaderID
	m.nextHeaderID++
	for i := range header.Details {
		header.Details[i].ID = m.nextDetailID
		header.Details[i].TransactionHeaderID = header.ID
		m.nextDetailID++
	}
	m.headers[header.ID] = header
	return nil
}

func (m *memoryTransactions) SaveHeader(_ context.Context, header *ledger.TransactionHeader) error {
	m.headers[header.ID] = header
	return nil
}

type memoryAuditLogs struct {
	entries []*ledger.AuditLog
}

func newMemoryAuditLogs() *memoryAuditLogs {
	return &memoryAuditLogs{}
}

func (m *memoryAuditLogs) Append(_ context.Context, entry *ledger.AuditLog) error {
	entry.ID = len(m.entries) + 1
	m.entries = append(m.entries, entry)
	return nil
}

// fixture bundles the in-memory repositories behind a NoOpTransactionScope.
type fixture struct {
	bulkLots        *memoryBulkLots
	retailLots      *memoryRetailLots
	catalogItems    *memoryCatalogItems
	allocationLines *memoryAllocationLines
	creditMemos     *memoryCreditMemos
	sales           *memorySales
	displayEntries  *memoryDisplayEntries
	transactions    *memoryTransactions
	auditLogs       *memoryAuditLogs
	scope           *NoOpTransactionScope
}

func newFixture() *fixture {
	f := &fixture{
		bulkLots:        newMemoryBulkLots(),
		retailLots:      newMemoryRetailLots(),
		catalogItems:    newMemoryCatalogItems(),
		allocationLines: newMemoryAllocationLines(),
		creditMemos:     newMemoryCreditMemos(),
		sales:           newMemorySales(),
		displayEntries:  newMemoryDisplayEntries(),
		transactions:    newMemoryTransactions(),
		auditLogs:       newMemoryAuditLogs(),
	}
	f.scope = NewNoOpTransactionScope(
		f.bulkLots, f.retailLots, f.catalogItems, f.allocationLines,
		f.creditMemos, f.sales, f.displayEntries, f.transactions, f.auditLogs,
	)
	return f
}
