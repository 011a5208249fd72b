// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementKind represents the economic role of a transaction.
// Exactly one kind applies per transaction.
type MovementKind string

const (
	MovementKindIncome    MovementKind = "income"
	MovementKindExpense   MovementKind = "expense"
	MovementKindTransfer  MovementKind = "transfer"
	MovementKindFinancial MovementKind = "financial"
)

// FinancialSubtype qualifies transactions of kind "financial".
type FinancialSubtype string

const (
	FinancialSubtypeDebtPayment       FinancialSubtype = "debt_payment"
	FinancialSubtypeSavingsInvestment FinancialSubtype = "savings_or_investment"
	FinancialSubtypeLoanGiven         FinancialSubtype = "loan_given"
	FinancialSubtypeAsset             FinancialSubtype = "asset"
	FinancialSubtypeOther             FinancialSubtype = "other"
)

// TransactionOrigin records how a transaction entered the ledger.
type TransactionOrigin string

const (
	OriginManual TransactionOrigin = "manual"
	OriginCSV    TransactionOrigin = "csv"
	OriginImport TransactionOrigin = "import"
	OriginAPI    TransactionOrigin = "api"
)

// CategoryCodeMin and CategoryCodeMax bound the closed consumption
// taxonomy (COICOP divisions "01" through "13").
const (
	CategoryCodeMin = 1
	CategoryCodeMax = 13
)

// ExpenseTags classifies a consumption expense along three independent
// dimensions. Each stored flag implies its complement (a non-essential
// expense is discretionary, a non-fixed one is variable, and so on).
type ExpenseTags struct {
	Essential bool
	Fixed     bool
	Recurring bool
}

// Transaction represents a single classified financial movement in the
// append-only ledger. Transactions are immutable once recorded;
// corrections are made with new entries.
type Transaction struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Kind   MovementKind
	Amount decimal.Decimal

	// OccurredAt is the real-world date of the movement and drives all
	// period bucketing. RecordedAt is the capture timestamp and is kept
	// for audit only.
	OccurredAt time.Time
	RecordedAt time.Time

	Description string
	Origin      TransactionOrigin

	// CategoryCode is set only when Kind is expense ("01".."13").
	CategoryCode string
	// Tags are meaningful only when Kind is expense.
	Tags ExpenseTags

	// FinancialSubtype is set only when Kind is financial.
	FinancialSubtype FinancialSubtype

	// IsInternalTransfer marks a movement between the user's own
	// accounts. Such movements are excluded from every KPI.
	IsInternalTransfer bool
}

// Excluded reports whether the transaction is excluded from all KPI
// totals (moving money between own accounts is not economic activity).
func (t *Transaction) Excluded() bool {
	return t.Kind == MovementKindTransfer || t.IsInternalTransfer
}

// NewIncome creates an income transaction.
func NewIncome(userID uuid.UUID, occurredAt time.Time, amount decimal.Decimal, description string, origin TransactionOrigin) *Transaction {
	return newTransaction(userID, MovementKindIncome, occurredAt, amount, description, origin)
}

// NewExpense creates a consumption expense against the closed category
// taxonomy.
func NewExpense(userID uuid.UUID, occurredAt time.Time, amount decimal.Decimal, categoryCode string, tags ExpenseTags, description string, origin TransactionOrigin) *Transaction {
	t := newTransaction(userID, MovementKindExpense, occurredAt, amount, description, origin)
	t.CategoryCode = categoryCode
	t.Tags = tags
	return t
}

// NewFinancial creates a financial movement (debt service, investment,
// loan given, asset purchase or other non-consumption outflow).
func NewFinancial(userID uuid.UUID, occurredAt time.Time, amount decimal.Decimal, subtype FinancialSubtype, description string, origin TransactionOrigin) *Transaction {
	t := newTransaction(userID, MovementKindFinancial, occurredAt, amount, description, origin)
	t.FinancialSubtype = subtype
	return t
}

// NewTransfer creates a transfer. Transfers never contribute to KPIs.
func NewTransfer(userID uuid.UUID, occurredAt time.Time, amount decimal.Decimal, internal bool, description string, origin TransactionOrigin) *Transaction {
	t := newTransaction(userID, MovementKindTransfer, occurredAt, amount, description, origin)
	t.IsInternalTransfer = internal
	return t
}

func newTransaction(userID uuid.UUID, kind MovementKind, occurredAt time.Time, amount decimal.Decimal, description string, origin TransactionOrigin) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Kind:        kind,
		Amount:      amount,
		OccurredAt:  occurredAt,
		RecordedAt:  time.Now().UTC(),
		Description: description,
		Origin:      origin,
	}
}

// ValidCategoryCode reports whether code belongs to the closed
// consumption taxonomy ("01".."13").
func ValidCategoryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	if code[0] < '0' || code[0] > '9' || code[1] < '0' || code[1] > '9' {
		return false
	}
	n := int(code[0]-'0')*10 + int(code[1]-'0')
	return n >= CategoryCodeMin && n <= CategoryCodeMax
}

// ValidFinancialSubtype reports whether the subtype is one of the known
// financial qualifiers.
func ValidFinancialSubtype(s FinancialSubtype) bool {
	switch s {
	case FinancialSubtypeDebtPayment,
		FinancialSubtypeSavingsInvestment,
		FinancialSubtypeLoanGiven,
		FinancialSubtypeAsset,
		FinancialSubtypeOther:
		return true
	}
	return false
}

// ValidMovementKind reports whether the kind is one of the four
// mutually exclusive transaction roles.
func ValidMovementKind(k MovementKind) bool {
	switch k {
	case MovementKindIncome, MovementKindExpense, MovementKindTransfer, MovementKindFinancial:
		return true
	}
	return false
}

// ValidOrigin reports whether the origin is a known capture channel.
func ValidOrigin(o TransactionOrigin) bool {
	switch o {
	case OriginManual, OriginCSV, OriginImport, OriginAPI:
		return true
	}
	return false
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
