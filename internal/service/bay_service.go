package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/notify"
	"github.com/aibeeinyass/rideboss-system/internal/ports"
)

// BayService drives the wash pipeline: wet bay, dry bay, release. Release
// deletes the session outright; the pipeline keeps no history.
type BayService struct {
	Bays      ports.BayStore
	Customers ports.CustomerStore
	Staff     ports.StaffStore
	Events    ports.EventStore
	Locks     *KeyLocks
	WhatsApp  notify.WhatsApp
	Overdue   time.Duration
	Logger    *slog.Logger
}

// BayView is a board row: the session plus its derived timing fields.
type BayView struct {
	domain.BaySession
	Elapsed time.Duration
	Overdue bool
}

// ReleaseResult carries the outbound pickup link when the customer has a
// contact number on file.
type ReleaseResult struct {
	Plate      string
	NotifyLink string
}

// Advance moves a wet-bay session to the dry bay under a new detailer.
func (s BayService) Advance(ctx context.Context, plate, staff string) (*domain.BaySession, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", domain.ErrValidation)
	}
	if strings.TrimSpace(staff) == "" {
		return nil, fmt.Errorf("%w: staff is required", domain.ErrValidation)
	}

	// Plate lock first, then staff lock, the same order checkout uses.
	// The staff lock keeps two plates from both reading the detailer as
	// free before either assignment commits.
	unlock := s.Locks.Lock(plate)
	defer unlock()
	unlockStaff := s.Locks.Lock("staff:" + staff)
	defer unlockStaff()

	avail, err := s.Staff.AvailableByDepartment(ctx, domain.DeptDryBay)
	if err != nil {
		return nil, err
	}
	found := false
	for _, u := range avail {
		if u.Username == staff {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s is not available in the dry bay", domain.ErrConflict, staff)
	}

	session, err := s.Bays.Advance(ctx, plate, staff)
	if err != nil {
		return nil, err
	}
	s.appendEvent(ctx, fmt.Sprintf("%s moved to the dry bay (staff %s)", plate, staff))
	return session, nil
}

// Release removes the session from either stage and builds the pickup
// message link. Releasing an unknown plate is a soft ErrNotFound; nothing
// else is touched.
func (s BayService) Release(ctx context.Context, plate string) (*ReleaseResult, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", domain.ErrValidation)
	}

	unlock := s.Locks.Lock(plate)
	defer unlock()

	if err := s.Bays.Delete(ctx, plate); err != nil {
		return nil, err
	}

	res := &ReleaseResult{Plate: plate}
	cust, err := s.Customers.Get(ctx, plate)
	switch {
	case err == nil && cust.Phone != "":
		res.NotifyLink = s.WhatsApp.PickupReady(cust.Phone, cust.Name, plate)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	s.appendEvent(ctx, fmt.Sprintf("%s released and ready for pickup", plate))
	return res, nil
}

// Board lists active sessions with elapsed time and the overdue flag.
func (s BayService) Board(ctx context.Context) ([]BayView, error) {
	sessions, err := s.Bays.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	views := make([]BayView, 0, len(sessions))
	for _, sess := range sessions {
		views = append(views, BayView{
			BaySession: sess,
			Elapsed:    sess.Elapsed(now),
			Overdue:    sess.Overdue(now, s.Overdue),
		})
	}
	return views, nil
}

// Availability lists free detailers for a department.
func (s BayService) Availability(ctx context.Context, dept string) ([]domain.User, error) {
	d, ok := domain.ParseDepartment(dept)
	if !ok {
		return nil, fmt.Errorf("%w: unknown department %q", domain.ErrValidation, dept)
	}
	return s.Staff.AvailableByDepartment(ctx, d)
}

func (s BayService) appendEvent(ctx context.Context, msg string) {
	if err := s.Events.Append(ctx, msg); err != nil && s.Logger != nil {
		s.Logger.Warn("failed to append event", "err", err, "message", msg)
	}
}
