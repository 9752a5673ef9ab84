package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/notify"
	"github.com/aibeeinyass/rideboss-system/internal/ports"
)

// MembershipService is the prepaid credit ledger: issue, consume, top-up,
// delete. Credit mutations for one plate are serialized through Locks on
// top of the store's own conditional decrement.
type MembershipService struct {
	Store     ports.MembershipStore
	Customers ports.CustomerStore
	Events    ports.EventStore
	Locks     *KeyLocks
	WhatsApp  notify.WhatsApp
	Logger    *slog.Logger
}

// ConsumeResult reports the balance after a debit. LowCredit is advisory;
// TopUpLink is set when the account holder can be messaged.
type ConsumeResult struct {
	Plate     string
	Balance   int
	LowCredit bool
	TopUpLink string
}

func (s MembershipService) Issue(ctx context.Context, plate, cardType string, credits int, salePrice int64) (*domain.Membership, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", domain.ErrValidation)
	}
	if strings.TrimSpace(cardType) == "" {
		return nil, fmt.Errorf("%w: card type is required", domain.ErrValidation)
	}
	if credits <= 0 {
		return nil, fmt.Errorf("%w: credits must be positive", domain.ErrValidation)
	}

	unlock := s.Locks.Lock(plate)
	defer unlock()

	m, err := s.Store.Issue(ctx, ports.IssueMembershipInput{
		Plate:     plate,
		CardType:  cardType,
		Credits:   credits,
		SalePrice: salePrice,
	})
	if err != nil {
		return nil, err
	}
	s.appendEvent(ctx, fmt.Sprintf("%s membership issued to %s with %d credits", cardType, plate, credits))
	return m, nil
}

// ConsumeOne debits a single wash credit for the plate.
func (s MembershipService) ConsumeOne(ctx context.Context, plate string) (*ConsumeResult, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", domain.ErrValidation)
	}

	unlock := s.Locks.Lock(plate)
	defer unlock()

	balance, err := s.Store.ConsumeOne(ctx, plate)
	if err != nil {
		return nil, err
	}

	res := &ConsumeResult{
		Plate:     plate,
		Balance:   balance,
		LowCredit: balance <= 1,
	}
	if res.LowCredit {
		if cust, err := s.Customers.Get(ctx, plate); err == nil && cust.Phone != "" {
			res.TopUpLink = s.WhatsApp.LowCredit(cust.Phone, cust.Name, balance)
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	s.appendEvent(ctx, fmt.Sprintf("1 wash credit debited for %s (%d left)", plate, balance))
	return res, nil
}

func (s MembershipService) TopUp(ctx context.Context, plate string, newBalance int) (*domain.Membership, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", domain.ErrValidation)
	}
	if newBalance < 0 {
		return nil, fmt.Errorf("%w: balance cannot be negative", domain.ErrValidation)
	}

	unlock := s.Locks.Lock(plate)
	defer unlock()

	m, err := s.Store.TopUp(ctx, plate, newBalance)
	if err != nil {
		return nil, err
	}
	s.appendEvent(ctx, fmt.Sprintf("membership for %s topped up to %d credits", plate, newBalance))
	return m, nil
}

func (s MembershipService) Delete(ctx context.Context, plate string) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return fmt.Errorf("%w: plate is required", domain.ErrValidation)
	}

	unlock := s.Locks.Lock(plate)
	defer unlock()

	if err := s.Store.Delete(ctx, plate); err != nil {
		return err
	}
	s.appendEvent(ctx, fmt.Sprintf("membership for %s deleted", plate))
	return nil
}

func (s MembershipService) Get(ctx context.Context, plate string) (*domain.Membership, error) {
	return s.Store.Get(ctx, strings.ToUpper(strings.TrimSpace(plate)))
}

func (s MembershipService) List(ctx context.Context) ([]domain.Membership, error) {
	return s.Store.List(ctx)
}

func (s MembershipService) appendEvent(ctx context.Context, msg string) {
	if err := s.Events.Append(ctx, msg); err != nil && s.Logger != nil {
		s.Logger.Warn("failed to append event", "err", err, "message", msg)
	}
}
