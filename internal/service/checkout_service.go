package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/ports"
)

// CheckoutService authorizes wash and lounge transactions. All validation
// happens before any store mutation, and mutations for one plate (or one
// inventory item) are serialized through Locks.
type CheckoutService struct {
	Store   ports.CheckoutStore
	Catalog ports.CatalogStore
	Staff   ports.StaffStore
	Events  ports.EventStore
	Locks   *KeyLocks
	Logger  *slog.Logger
}

type AuthorizeWashInput struct {
	Plate         string
	CustomerName  string
	CustomerPhone string
	VehicleType   string
	Services      []string
	Method        string
	Staff         string
}

type LoungeItem struct {
	Name string
	Qty  int
}

type AuthorizeLoungeInput struct {
	Items  []LoungeItem
	Method string
	Staff  string
}

func (s CheckoutService) AuthorizeWash(ctx context.Context, in AuthorizeWashInput) (*domain.Receipt, error) {
	plate := strings.ToUpper(strings.TrimSpace(in.Plate))
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", domain.ErrValidation)
	}
	if len(in.Services) == 0 {
		return nil, fmt.Errorf("%w: select at least one service", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Staff) == "" {
		return nil, fmt.Errorf("%w: staff is required", domain.ErrValidation)
	}
	method, ok := domain.ParsePaymentMethod(in.Method)
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, in.Method)
	}

	priced, err := s.Catalog.ServicePrices(ctx)
	if err != nil {
		return nil, err
	}
	prices := make(map[string]int64, len(priced))
	for _, p := range priced {
		prices[p.Name] = p.Price.Amount
	}

	var (
		lines []domain.ReceiptLine
		total int64
		names []string
	)
	for _, name := range in.Services {
		price, ok := prices[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown service %q", domain.ErrValidation, name)
		}
		lines = append(lines, domain.ReceiptLine{Name: name, Price: price, Qty: 1})
		total += price
		names = append(names, name)
	}
	detail := strings.Join(names, ", ")

	// Plate lock first, then staff lock, the same order Advance uses. The
	// availability read and the session write happen under the staff lock,
	// so two plates cannot both claim the last free washer.
	unlock := s.Locks.Lock(plate)
	defer unlock()
	unlockStaff := s.Locks.Lock("staff:" + in.Staff)
	defer unlockStaff()

	if err := s.requireAvailable(ctx, domain.DeptWetBay, in.Staff); err != nil {
		return nil, err
	}

	receipt, err := s.Store.CreateWash(ctx, ports.WashSaleInput{
		Plate:         plate,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		VehicleType:   in.VehicleType,
		Lines:         lines,
		ServiceDetail: detail,
		Total:         total,
		Method:        method,
		Staff:         in.Staff,
		UseCredit:     method == domain.PayCredit,
	})
	if err != nil {
		return nil, err
	}

	s.appendEvent(ctx, fmt.Sprintf("%s checked into the wet bay: %s (staff %s)", plate, detail, in.Staff))
	if receipt.RemainingCredit != nil {
		s.appendEvent(ctx, fmt.Sprintf("1 wash credit debited for %s (%d left)", plate, *receipt.RemainingCredit))
	}
	return receipt, nil
}

func (s CheckoutService) AuthorizeLounge(ctx context.Context, in AuthorizeLoungeInput) (*domain.Receipt, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: select at least one item", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Staff) == "" {
		return nil, fmt.Errorf("%w: staff is required", domain.ErrValidation)
	}
	method, ok := domain.ParsePaymentMethod(in.Method)
	if !ok || method == domain.PayCredit {
		// Wash credits only cover washes.
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, in.Method)
	}

	stock, err := s.Catalog.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	prices := make(map[string]int64, len(stock))
	for _, it := range stock {
		prices[it.Name] = it.Price.Amount
	}

	var (
		lines []domain.ReceiptLine
		total int64
		seen  = make(map[string]struct{}, len(in.Items))
		keys  []string
	)
	for _, item := range in.Items {
		price, ok := prices[item.Name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown item %q", domain.ErrValidation, item.Name)
		}
		qty := item.Qty
		if qty <= 0 {
			qty = 1
		}
		lines = append(lines, domain.ReceiptLine{Name: item.Name, Price: price, Qty: qty})
		total += price * int64(qty)
		if _, dup := seen[item.Name]; !dup {
			seen[item.Name] = struct{}{}
			keys = append(keys, item.Name)
		}
	}

	// Item locks are taken once per distinct item, in sorted order, so two
	// overlapping lounge sales cannot deadlock and a sale listing the same
	// item twice cannot block on itself.
	sort.Strings(keys)
	for _, key := range keys {
		unlock := s.Locks.Lock("item:" + key)
		defer unlock()
	}

	receipt, err := s.Store.CreateLounge(ctx, ports.LoungeSaleInput{
		Lines:  lines,
		Total:  total,
		Method: method,
		Staff:  in.Staff,
	})
	if err != nil {
		return nil, err
	}

	s.appendEvent(ctx, fmt.Sprintf("lounge sale %s by %s", receipt.Code, in.Staff))
	return receipt, nil
}

// requireAvailable checks the assignment precondition: active, in the
// department, and not on any live bay right now.
func (s CheckoutService) requireAvailable(ctx context.Context, dept domain.Department, username string) error {
	avail, err := s.Staff.AvailableByDepartment(ctx, dept)
	if err != nil {
		return err
	}
	for _, u := range avail {
		if u.Username == username {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not available in %s", domain.ErrConflict, username, dept)
}

func (s CheckoutService) appendEvent(ctx context.Context, msg string) {
	if err := s.Events.Append(ctx, msg); err != nil && s.Logger != nil {
		s.Logger.Warn("failed to append event", "err", err, "message", msg)
	}
}
