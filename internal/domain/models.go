package domain

import "time"

// Enumerations
const (
	RoleStaff   UserRole = "staff"
	RoleManager UserRole = "manager"

	DeptWetBay     Department = "wet_bay"
	DeptDryBay     Department = "dry_bay"
	DeptReception  Department = "reception"
	DeptManagement Department = "management"

	BayWet BayStatus = "wet_bay"
	BayDry BayStatus = "dry_bay"

	PayCash     PaymentMethod = "cash"
	PayTransfer PaymentMethod = "transfer"
	PayPOS      PaymentMethod = "pos"
	PayCredit   PaymentMethod = "credit"

	SaleWash   SaleType = "wash"
	SaleLounge SaleType = "lounge"
)

type UserRole string
type Department string
type BayStatus string
type PaymentMethod string
type SaleType string

// ParseDepartment maps a request value onto the closed department set.
func ParseDepartment(s string) (Department, bool) {
	switch Department(s) {
	case DeptWetBay, DeptDryBay, DeptReception, DeptManagement:
		return Department(s), true
	}
	return "", false
}

// ParsePaymentMethod maps a request value onto the closed payment set.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PayCash, PayTransfer, PayPOS, PayCredit:
		return PaymentMethod(s), true
	}
	return "", false
}

// Next returns the following bay stage. Sessions in the dry bay have no
// next stage; they can only be released.
func (s BayStatus) Next() (BayStatus, bool) {
	if s == BayWet {
		return BayDry, true
	}
	return "", false
}

// Department returns the staff department that services a bay stage.
func (s BayStatus) Department() Department {
	if s == BayDry {
		return DeptDryBay
	}
	return DeptWetBay
}

type Money struct {
	Amount   int64
	Currency string
}

type Customer struct {
	Plate     string
	Name      string
	Phone     string
	Visits    int
	LastVisit time.Time
}

// Sale is an append-only ledger line. Plate is nil for walk-in lounge
// sales with no vehicle attached.
type Sale struct {
	ID        int64
	Plate     *string
	Services  string
	Total     Money
	Method    PaymentMethod
	Staff     string
	Type      SaleType
	CreatedAt time.Time
}

// BaySession is one active occupancy of the wash pipeline, keyed by plate.
type BaySession struct {
	Plate         string
	Status        BayStatus
	EntryTime     time.Time
	Staff         string
	VehicleType   string
	ServiceDetail string
}

// Elapsed reports how long the vehicle has been in the pipeline.
func (b BaySession) Elapsed(now time.Time) time.Duration {
	return now.Sub(b.EntryTime)
}

// Overdue flags sessions that have exceeded the escalation threshold.
// It never forces a transition; the board only highlights the card.
func (b BaySession) Overdue(now time.Time, threshold time.Duration) bool {
	return b.Elapsed(now) >= threshold
}

type Membership struct {
	Plate     string
	Balance   int
	CardType  string
	SalePrice Money
	UpdatedAt time.Time
}

// MembershipIssue records one card issuance. Issues are never rewritten, so
// card revenue survives a later re-issue for the same plate.
type MembershipIssue struct {
	ID        int64
	Plate     string
	CardType  string
	Credits   int
	SalePrice Money
	CreatedAt time.Time
}

type WashService struct {
	Name  string
	Price Money
}

type InventoryItem struct {
	Name  string
	Stock int
	Unit  string
	Price Money
}

type Expense struct {
	ID        int64
	Item      string
	Amount    Money
	Category  string
	CreatedAt time.Time
}

type User struct {
	Username     string
	Name         string
	PasswordHash *string
	Role         UserRole
	Dept         Department
	Active       bool
	CreatedAt    time.Time
}

type Notification struct {
	ID        int64
	Message   string
	CreatedAt time.Time
}

type ReceiptLine struct {
	Name  string
	Price int64
	Qty   int
}

// Receipt is the value returned from an authorized transaction; the UI uses
// it for the printable slip.
type Receipt struct {
	Code            string
	Plate           *string
	Type            SaleType
	Lines           []ReceiptLine
	Total           Money
	Method          PaymentMethod
	Staff           string
	IssuedAt        time.Time
	RemainingCredit *int
	LowCredit       bool
}
