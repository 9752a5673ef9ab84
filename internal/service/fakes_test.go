package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/ports"
)

// In-memory stores backing the service tests. They mirror the conditional
// update semantics of the real repositories.

type memMembershipStore struct {
	mu     sync.Mutex
	cards  map[string]*domain.Membership
	issues []domain.MembershipIssue
}

func newMemMembershipStore() *memMembershipStore {
	return &memMembershipStore{cards: make(map[string]*domain.Membership)}
}

func (s *memMembershipStore) Get(ctx context.Context, plate string) (*domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.cards[plate]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *memMembershipStore) List(ctx context.Context) ([]domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Membership, 0, len(s.cards))
	for _, m := range s.cards {
		out = append(out, *m)
	}
	return out, nil
}

func (s *memMembershipStore) Issue(ctx context.Context, in ports.IssueMembershipInput) (*domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &domain.Membership{
		Plate:     in.Plate,
		Balance:   in.Credits,
		CardType:  in.CardType,
		SalePrice: domain.Money{Amount: in.SalePrice, Currency: "NGN"},
		UpdatedAt: time.Now(),
	}
	s.cards[in.Plate] = m
	s.issues = append(s.issues, domain.MembershipIssue{
		Plate:     in.Plate,
		CardType:  in.CardType,
		Credits:   in.Credits,
		SalePrice: domain.Money{Amount: in.SalePrice, Currency: "NGN"},
		CreatedAt: time.Now(),
	})
	cp := *m
	return &cp, nil
}

func (s *memMembershipStore) ConsumeOne(ctx context.Context, plate string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.cards[plate]
	if !ok || m.Balance <= 0 {
		return 0, domain.ErrInsufficientCredit
	}
	m.Balance--
	return m.Balance, nil
}

func (s *memMembershipStore) TopUp(ctx context.Context, plate string, newBalance int) (*domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.cards[plate]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.Balance = newBalance
	cp := *m
	return &cp, nil
}

func (s *memMembershipStore) Delete(ctx context.Context, plate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[plate]; !ok {
		return domain.ErrNotFound
	}
	delete(s.cards, plate)
	return nil
}

type memCustomerStore struct {
	mu    sync.Mutex
	users map[string]domain.Customer
}

func newMemCustomerStore() *memCustomerStore {
	return &memCustomerStore{users: make(map[string]domain.Customer)}
}

func (s *memCustomerStore) Get(ctx context.Context, plate string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.users[plate]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *memCustomerStore) List(ctx context.Context, limit int) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Customer, 0, len(s.users))
	for _, c := range s.users {
		out = append(out, c)
	}
	return out, nil
}

// memStaffStore mirrors the set-difference the real repository runs:
// availability is recomputed from the live sessions on every call.
type memStaffStore struct {
	mu    sync.Mutex
	users map[string]domain.User
	busy  map[string]bool
	bays  *memBayStore
}

func newMemStaffStore(users ...domain.User) *memStaffStore {
	s := &memStaffStore{users: make(map[string]domain.User), busy: make(map[string]bool)}
	for _, u := range users {
		s.users[u.Username] = u
	}
	return s
}

func (s *memStaffStore) Get(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *memStaffStore) List(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *memStaffStore) Save(ctx context.Context, u domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Username] = u
	return &u, nil
}

func (s *memStaffStore) SetActive(ctx context.Context, username string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return domain.ErrNotFound
	}
	u.Active = active
	s.users[username] = u
	return nil
}

func (s *memStaffStore) AvailableByDepartment(ctx context.Context, dept domain.Department) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assigned := make(map[string]bool)
	if s.bays != nil {
		s.bays.mu.Lock()
		for _, sess := range s.bays.sessions {
			assigned[sess.Staff] = true
		}
		s.bays.mu.Unlock()
	}
	var out []domain.User
	for _, u := range s.users {
		if u.Active && u.Dept == dept && !s.busy[u.Username] && !assigned[u.Username] {
			out = append(out, u)
		}
	}
	return out, nil
}

// slowStaffStore stretches the gap between the availability read and the
// session write that follows it.
type slowStaffStore struct {
	*memStaffStore
	delay time.Duration
}

func (s slowStaffStore) AvailableByDepartment(ctx context.Context, dept domain.Department) ([]domain.User, error) {
	users, err := s.memStaffStore.AvailableByDepartment(ctx, dept)
	time.Sleep(s.delay)
	return users, err
}

type memEventStore struct {
	mu       sync.Mutex
	messages []string
}

func (s *memEventStore) Append(ctx context.Context, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

func (s *memEventStore) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, 0, len(s.messages))
	for i, m := range s.messages {
		out = append(out, domain.Notification{ID: int64(i + 1), Message: m})
	}
	return out, nil
}

type memBayStore struct {
	mu       sync.Mutex
	sessions map[string]domain.BaySession
}

func newMemBayStore() *memBayStore {
	return &memBayStore{sessions: make(map[string]domain.BaySession)}
}

func (s *memBayStore) Get(ctx context.Context, plate string) (*domain.BaySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[plate]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sess, nil
}

func (s *memBayStore) ListActive(ctx context.Context) ([]domain.BaySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.BaySession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out, nil
}

func (s *memBayStore) Advance(ctx context.Context, plate, staff string) (*domain.BaySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[plate]
	if !ok {
		return nil, domain.ErrNotFound
	}
	next, ok := sess.Status.Next()
	if !ok {
		return nil, fmt.Errorf("%w: session is already in the dry bay", domain.ErrConflict)
	}
	sess.Status = next
	sess.Staff = staff
	s.sessions[plate] = sess
	return &sess, nil
}

func (s *memBayStore) Delete(ctx context.Context, plate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[plate]; !ok {
		return domain.ErrNotFound
	}
	delete(s.sessions, plate)
	return nil
}

// memCheckoutStore commits a wash the way the real store does: sale, visit
// counter, bay session and optional credit debit as one unit.
type memCheckoutStore struct {
	mu          sync.Mutex
	customers   *memCustomerStore
	bays        *memBayStore
	memberships *memMembershipStore
	inventory   map[string]*domain.InventoryItem
	sales       []domain.Sale
}

func (s *memCheckoutStore) CreateWash(ctx context.Context, in ports.WashSaleInput) (*domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var remaining *int
	if in.UseCredit {
		bal, err := s.memberships.ConsumeOne(ctx, in.Plate)
		if err != nil {
			return nil, err
		}
		remaining = &bal
		in.Total = 0
	}

	s.bays.mu.Lock()
	if _, exists := s.bays.sessions[in.Plate]; exists {
		s.bays.mu.Unlock()
		return nil, fmt.Errorf("%w: %s already has an active session", domain.ErrConflict, in.Plate)
	}
	s.bays.sessions[in.Plate] = domain.BaySession{
		Plate:         in.Plate,
		Status:        domain.BayWet,
		EntryTime:     time.Now(),
		Staff:         in.Staff,
		VehicleType:   in.VehicleType,
		ServiceDetail: in.ServiceDetail,
	}
	s.bays.mu.Unlock()

	s.customers.mu.Lock()
	cust := s.customers.users[in.Plate]
	cust.Plate = in.Plate
	if in.CustomerName != "" {
		cust.Name = in.CustomerName
	}
	if in.CustomerPhone != "" {
		cust.Phone = in.CustomerPhone
	}
	cust.Visits++
	cust.LastVisit = time.Now()
	s.customers.users[in.Plate] = cust
	s.customers.mu.Unlock()

	plate := in.Plate
	s.sales = append(s.sales, domain.Sale{
		Plate:    &plate,
		Services: in.ServiceDetail,
		Total:    domain.Money{Amount: in.Total, Currency: "NGN"},
		Method:   in.Method,
		Staff:    in.Staff,
		Type:     domain.SaleWash,
	})

	return &domain.Receipt{
		Code:            fmt.Sprintf("WSH-%d", len(s.sales)),
		Plate:           &plate,
		Type:            domain.SaleWash,
		Lines:           in.Lines,
		Total:           domain.Money{Amount: in.Total, Currency: "NGN"},
		Method:          in.Method,
		Staff:           in.Staff,
		IssuedAt:        time.Now(),
		RemainingCredit: remaining,
	}, nil
}

func (s *memCheckoutStore) CreateLounge(ctx context.Context, in ports.LoungeSaleInput) (*domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range in.Lines {
		item, ok := s.inventory[line.Name]
		if !ok || item.Stock < line.Qty {
			return nil, fmt.Errorf("%w: %s", domain.ErrOutOfStock, line.Name)
		}
	}
	for _, line := range in.Lines {
		s.inventory[line.Name].Stock -= line.Qty
	}

	s.sales = append(s.sales, domain.Sale{
		Total:  domain.Money{Amount: in.Total, Currency: "NGN"},
		Method: in.Method,
		Staff:  in.Staff,
		Type:   domain.SaleLounge,
	})
	return &domain.Receipt{
		Code:     fmt.Sprintf("LNG-%d", len(s.sales)),
		Type:     domain.SaleLounge,
		Lines:    in.Lines,
		Total:    domain.Money{Amount: in.Total, Currency: "NGN"},
		Method:   in.Method,
		Staff:    in.Staff,
		IssuedAt: time.Now(),
	}, nil
}

type memCatalogStore struct {
	services  []domain.WashService
	inventory map[string]*domain.InventoryItem
}

func (s *memCatalogStore) ServicePrices(ctx context.Context) ([]domain.WashService, error) {
	return s.services, nil
}

func (s *memCatalogStore) UpsertService(ctx context.Context, name string, price int64) (*domain.WashService, error) {
	svc := domain.WashService{Name: name, Price: domain.Money{Amount: price, Currency: "NGN"}}
	s.services = append(s.services, svc)
	return &svc, nil
}

func (s *memCatalogStore) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	out := make([]domain.InventoryItem, 0, len(s.inventory))
	for _, it := range s.inventory {
		out = append(out, *it)
	}
	return out, nil
}

func (s *memCatalogStore) UpsertItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	s.inventory[item.Name] = &item
	return &item, nil
}

type memReportStore struct {
	byType   map[domain.SaleType]int64
	cards    int64
	expenses int64
}

func (s *memReportStore) RevenueByType(ctx context.Context) (map[domain.SaleType]int64, error) {
	return s.byType, nil
}

func (s *memReportStore) CardRevenue(ctx context.Context) (int64, error) {
	return s.cards, nil
}

func (s *memReportStore) ExpenseTotal(ctx context.Context) (int64, error) {
	return s.expenses, nil
}

func (s *memReportStore) StaffPerformance(ctx context.Context) ([]ports.StaffPerformance, error) {
	return nil, nil
}

func (s *memReportStore) SalesSeries(ctx context.Context, days int) ([]ports.SalesPoint, error) {
	return nil, nil
}
