package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/notify"
)

type bayFixture struct {
	svc       BayService
	bays      *memBayStore
	customers *memCustomerStore
	staff     *memStaffStore
	events    *memEventStore
}

func newBayFixture() bayFixture {
	bays := newMemBayStore()
	customers := newMemCustomerStore()
	staff := newMemStaffStore(
		domain.User{Username: "tunde", Name: "Tunde", Role: domain.RoleStaff, Dept: domain.DeptWetBay, Active: true},
		domain.User{Username: "chidi", Name: "Chidi", Role: domain.RoleStaff, Dept: domain.DeptDryBay, Active: true},
		domain.User{Username: "sacked", Name: "Sacked", Role: domain.RoleStaff, Dept: domain.DeptDryBay, Active: false},
	)
	staff.bays = bays
	events := &memEventStore{}
	return bayFixture{
		svc: BayService{
			Bays:      bays,
			Customers: customers,
			Staff:     staff,
			Events:    events,
			Locks:     NewKeyLocks(),
			WhatsApp:  notify.WhatsApp{BusinessName: "RideBoss Autos"},
			Overdue:   40 * time.Minute,
		},
		bays:      bays,
		customers: customers,
		staff:     staff,
		events:    events,
	}
}

func (fx bayFixture) seedSession(plate string, status domain.BayStatus, entry time.Time) {
	fx.bays.sessions[plate] = domain.BaySession{
		Plate:     plate,
		Status:    status,
		EntryTime: entry,
		Staff:     "tunde",
	}
}

func TestBayAdvance(t *testing.T) {
	ctx := context.Background()
	fx := newBayFixture()
	fx.seedSession("XYZ999", domain.BayWet, time.Now())

	sess, err := fx.svc.Advance(ctx, "xyz999", "chidi")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if sess.Status != domain.BayDry {
		t.Fatalf("status = %q, want %q", sess.Status, domain.BayDry)
	}
	if sess.Staff != "chidi" {
		t.Fatalf("staff = %q, want chidi", sess.Staff)
	}
}

func TestBayAdvanceErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("already dry", func(t *testing.T) {
		fx := newBayFixture()
		fx.seedSession("XYZ999", domain.BayDry, time.Now())
		if _, err := fx.svc.Advance(ctx, "XYZ999", "chidi"); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("got %v, want ErrConflict", err)
		}
	})
	t.Run("unknown plate", func(t *testing.T) {
		fx := newBayFixture()
		if _, err := fx.svc.Advance(ctx, "NOPE01", "chidi"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})
	t.Run("inactive detailer", func(t *testing.T) {
		fx := newBayFixture()
		fx.seedSession("XYZ999", domain.BayWet, time.Now())
		if _, err := fx.svc.Advance(ctx, "XYZ999", "sacked"); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("got %v, want ErrConflict", err)
		}
	})
	t.Run("wet bay staff in dry role", func(t *testing.T) {
		fx := newBayFixture()
		fx.seedSession("XYZ999", domain.BayWet, time.Now())
		if _, err := fx.svc.Advance(ctx, "XYZ999", "tunde"); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("got %v, want ErrConflict", err)
		}
	})
	t.Run("busy detailer", func(t *testing.T) {
		fx := newBayFixture()
		fx.seedSession("XYZ999", domain.BayWet, time.Now())
		fx.staff.busy["chidi"] = true
		if _, err := fx.svc.Advance(ctx, "XYZ999", "chidi"); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("got %v, want ErrConflict", err)
		}
	})
}

func TestBayAdvanceStaffSingleAssignment(t *testing.T) {
	ctx := context.Background()
	fx := newBayFixture()
	fx.seedSession("AAA111", domain.BayWet, time.Now())
	fx.seedSession("BBB222", domain.BayWet, time.Now())
	fx.svc.Staff = slowStaffStore{memStaffStore: fx.staff, delay: 20 * time.Millisecond}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for _, plate := range []string{"AAA111", "BBB222"} {
		wg.Add(1)
		go func(plate string) {
			defer wg.Done()
			_, err := fx.svc.Advance(ctx, plate, "chidi")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(plate)
	}
	wg.Wait()

	if succeeded != 1 || conflicts != 1 {
		t.Fatalf("got %d successes and %d conflicts, want exactly 1 of each", succeeded, conflicts)
	}
}

func TestBayRelease(t *testing.T) {
	ctx := context.Background()
	fx := newBayFixture()
	fx.seedSession("XYZ999", domain.BayDry, time.Now())
	fx.customers.users["XYZ999"] = domain.Customer{Plate: "XYZ999", Name: "Bola", Phone: "+2348011112222"}

	res, err := fx.svc.Release(ctx, "XYZ999")
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if res.NotifyLink == "" {
		t.Fatalf("expected a pickup link for a customer with a phone")
	}
	if _, err := fx.bays.Get(ctx, "XYZ999"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("session should be gone after release")
	}
}

func TestBayReleaseIdempotent(t *testing.T) {
	ctx := context.Background()
	fx := newBayFixture()
	fx.seedSession("XYZ999", domain.BayDry, time.Now())

	if _, err := fx.svc.Release(ctx, "XYZ999"); err != nil {
		t.Fatalf("first release: %v", err)
	}
	events := len(fx.events.messages)

	if _, err := fx.svc.Release(ctx, "XYZ999"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second release: got %v, want ErrNotFound", err)
	}
	if len(fx.events.messages) != events {
		t.Fatalf("repeated release must not log an event")
	}
}

func TestBayBoardOverdue(t *testing.T) {
	ctx := context.Background()
	fx := newBayFixture()
	fx.seedSession("FRESH1", domain.BayWet, time.Now().Add(-5*time.Minute))
	fx.seedSession("STALE1", domain.BayWet, time.Now().Add(-45*time.Minute))

	views, err := fx.svc.Board(ctx)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	byPlate := make(map[string]BayView, len(views))
	for _, v := range views {
		byPlate[v.Plate] = v
	}
	if byPlate["FRESH1"].Overdue {
		t.Fatalf("fresh session flagged overdue")
	}
	if !byPlate["STALE1"].Overdue {
		t.Fatalf("45-minute session should be overdue at a 40-minute threshold")
	}
	if byPlate["STALE1"].Status != domain.BayWet {
		t.Fatalf("overdue flag must not change the stage")
	}
}

func TestBayAvailability(t *testing.T) {
	ctx := context.Background()
	fx := newBayFixture()

	users, err := fx.svc.Availability(ctx, "dry_bay")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(users) != 1 || users[0].Username != "chidi" {
		t.Fatalf("dry bay availability = %v, want just chidi", users)
	}

	if _, err := fx.svc.Availability(ctx, "paint_shop"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown department: got %v, want ErrValidation", err)
	}
}
