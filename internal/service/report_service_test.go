package service

import (
	"context"
	"testing"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
)

func TestReportSummary(t *testing.T) {
	svc := ReportService{Store: &memReportStore{
		byType: map[domain.SaleType]int64{
			domain.SaleWash:   120000,
			domain.SaleLounge: 8500,
		},
		cards:    40000,
		expenses: 25000,
	}}

	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.WashRevenue != 120000 || sum.LoungeRevenue != 8500 {
		t.Fatalf("revenue split = %d/%d, want 120000/8500", sum.WashRevenue, sum.LoungeRevenue)
	}
	if sum.NetProfit != 120000+8500+40000-25000 {
		t.Fatalf("net profit = %d, want %d", sum.NetProfit, 120000+8500+40000-25000)
	}
}

func TestReportSummaryEmpty(t *testing.T) {
	svc := ReportService{Store: &memReportStore{byType: map[domain.SaleType]int64{}}}

	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.NetProfit != 0 {
		t.Fatalf("net profit on an empty ledger = %d, want 0", sum.NetProfit)
	}
}
