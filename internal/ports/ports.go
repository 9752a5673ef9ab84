package ports

import (
	"context"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
)

// HealthChecker is used to probe dependencies.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// WashSaleInput is a fully validated wash authorization. The store commits
// the sale line, the customer upsert, the bay session and (when UseCredit)
// the membership debit as one atomic unit.
type WashSaleInput struct {
	Plate         string
	CustomerName  string
	CustomerPhone string
	VehicleType   string
	Lines         []domain.ReceiptLine
	ServiceDetail string
	Total         int64
	Method        domain.PaymentMethod
	Staff         string
	UseCredit     bool
}

// LoungeSaleInput is a validated lounge checkout. Stock for every line is
// decremented in the same unit as the sale insert.
type LoungeSaleInput struct {
	Lines  []domain.ReceiptLine
	Total  int64
	Method domain.PaymentMethod
	Staff  string
}

type CheckoutStore interface {
	CreateWash(ctx context.Context, in WashSaleInput) (*domain.Receipt, error)
	CreateLounge(ctx context.Context, in LoungeSaleInput) (*domain.Receipt, error)
}

type SaleStore interface {
	List(ctx context.Context, limit int) ([]domain.Sale, error)
	ListBetween(ctx context.Context, from, to *time.Time) ([]domain.Sale, error)
}

type BayStore interface {
	Get(ctx context.Context, plate string) (*domain.BaySession, error)
	ListActive(ctx context.Context) ([]domain.BaySession, error)
	Advance(ctx context.Context, plate, staff string) (*domain.BaySession, error)
	Delete(ctx context.Context, plate string) error
}

type IssueMembershipInput struct {
	Plate     string
	CardType  string
	Credits   int
	SalePrice int64
}

type MembershipStore interface {
	Get(ctx context.Context, plate string) (*domain.Membership, error)
	List(ctx context.Context) ([]domain.Membership, error)
	Issue(ctx context.Context, in IssueMembershipInput) (*domain.Membership, error)
	ConsumeOne(ctx context.Context, plate string) (int, error)
	TopUp(ctx context.Context, plate string, newBalance int) (*domain.Membership, error)
	Delete(ctx context.Context, plate string) error
}

type CatalogStore interface {
	ServicePrices(ctx context.Context) ([]domain.WashService, error)
	UpsertService(ctx context.Context, name string, price int64) (*domain.WashService, error)
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	UpsertItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)
}

type CustomerStore interface {
	Get(ctx context.Context, plate string) (*domain.Customer, error)
	List(ctx context.Context, limit int) ([]domain.Customer, error)
}

type StaffStore interface {
	Get(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, u domain.User) (*domain.User, error)
	SetActive(ctx context.Context, username string, active bool) error
	// AvailableByDepartment reports active users of a department that are
	// not assigned to any live bay. Recomputed on every call; never cached.
	AvailableByDepartment(ctx context.Context, dept domain.Department) ([]domain.User, error)
}

type ExpenseStore interface {
	Create(ctx context.Context, item string, amount int64, category string) (*domain.Expense, error)
	List(ctx context.Context, limit int) ([]domain.Expense, error)
}

type EventStore interface {
	Append(ctx context.Context, message string) error
	List(ctx context.Context, limit int) ([]domain.Notification, error)
}

// StaffPerformance aggregates wash-type sales per staff member.
type StaffPerformance struct {
	Staff   string
	Washes  int64
	Revenue int64
}

type ReportStore interface {
	RevenueByType(ctx context.Context) (map[domain.SaleType]int64, error)
	CardRevenue(ctx context.Context) (int64, error)
	ExpenseTotal(ctx context.Context) (int64, error)
	StaffPerformance(ctx context.Context) ([]StaffPerformance, error)
	SalesSeries(ctx context.Context, days int) ([]SalesPoint, error)
}

type SalesPoint struct {
	Label  string
	Amount int64
}
