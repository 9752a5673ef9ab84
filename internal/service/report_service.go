package service

import (
	"context"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/ports"
	"golang.org/x/sync/errgroup"
)

// ReportService assembles the finance dashboard from on-demand aggregates.
type ReportService struct {
	Store ports.ReportStore
}

// Summary is the net-profit partition: wash revenue + lounge revenue +
// card sales minus expenses.
type Summary struct {
	WashRevenue   int64
	LoungeRevenue int64
	CardRevenue   int64
	Expenses      int64
	NetProfit     int64
}

func (s ReportService) Summary(ctx context.Context) (*Summary, error) {
	var (
		byType   map[domain.SaleType]int64
		cards    int64
		expenses int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byType, err = s.Store.RevenueByType(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = s.Store.CardRevenue(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.Store.ExpenseTotal(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := &Summary{
		WashRevenue:   byType[domain.SaleWash],
		LoungeRevenue: byType[domain.SaleLounge],
		CardRevenue:   cards,
		Expenses:      expenses,
	}
	sum.NetProfit = sum.WashRevenue + sum.LoungeRevenue + sum.CardRevenue - sum.Expenses
	return sum, nil
}

func (s ReportService) StaffPerformance(ctx context.Context) ([]ports.StaffPerformance, error) {
	return s.Store.StaffPerformance(ctx)
}

func (s ReportService) SalesSeries(ctx context.Context, days int) ([]ports.SalesPoint, error) {
	if days <= 0 {
		days = 30
	}
	return s.Store.SalesSeries(ctx, days)
}
