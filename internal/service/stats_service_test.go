package service

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/entity"
)

func TestBuildDailyStats(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("always thirty buckets oldest first", func(t *testing.T) {
		buckets := BuildDailyStats(nil, now)
		if len(buckets) != 30 {
			t.Fatalf("expected 30 buckets, got %d", len(buckets))
		}
		if buckets[0].Period != "15/02/2024" {
			t.Errorf("expected oldest bucket 15/02/2024, got %s", buckets[0].Period)
		}
		if buckets[29].Period != "15/03/2024" {
			t.Errorf("expected newest bucket 15/03/2024, got %s", buckets[29].Period)
		}
	})

	t.Run("only delivered orders count", func(t *testing.T) {
		orders := []*entity.Order{
			{OrderDate: now, Status: entity.StatusDelivered, TotalAmount: 500, Items: []entity.OrderItem{{}, {}}},
			{OrderDate: now, Status: entity.StatusPending, TotalAmount: 900},
			{OrderDate: now, Status: entity.StatusShipping, TotalAmount: 700},
		}

		buckets := BuildDailyStats(orders, now)
		last := buckets[29]
		if last.Orders != 1 {
			t.Errorf("expected 1 order, got %d", last.Orders)
		}
		if last.Revenue != 500 {
			t.Errorf("expected revenue 500, got %d", last.Revenue)
		}
		if last.Units != 2 {
			t.Errorf("expected 2 units, got %d", last.Units)
		}
	})

	t.Run("missing status does not count even with completedAt", func(t *testing.T) {
		completed := now.Add(-time.Hour)
		orders := []*entity.Order{
			{OrderDate: now, TotalAmount: 300, CompletedAt: &completed},
		}

		buckets := BuildDailyStats(orders, now)
		if buckets[29].Revenue != 0 {
			t.Errorf("expected zero revenue, got %d", buckets[29].Revenue)
		}
	})

	t.Run("orders outside the window are dropped", func(t *testing.T) {
		orders := []*entity.Order{
			{OrderDate: now.AddDate(0, 0, -31), Status: entity.StatusDelivered, TotalAmount: 100},
		}

		total := 0
		for _, b := range BuildDailyStats(orders, now) {
			total += b.Revenue
		}
		if total != 0 {
			t.Errorf("expected no revenue in window, got %d", total)
		}
	})
}

func TestBuildMonthlyStats(t *testing.T) {
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("always twelve buckets without skipping short months", func(t *testing.T) {
		buckets := BuildMonthlyStats(nil, now)
		if len(buckets) != 12 {
			t.Fatalf("expected 12 buckets, got %d", len(buckets))
		}
		if buckets[0].Period != "4/2023" {
			t.Errorf("expected oldest bucket 4/2023, got %s", buckets[0].Period)
		}
		if buckets[10].Period != "2/2024" {
			t.Errorf("expected february bucket 2/2024, got %s", buckets[10].Period)
		}
		if buckets[11].Period != "3/2024" {
			t.Errorf("expected newest bucket 3/2024, got %s", buckets[11].Period)
		}
	})

	t.Run("orders match by month and year", func(t *testing.T) {
		orders := []*entity.Order{
			{OrderDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), Status: entity.StatusDelivered, TotalAmount: 200},
			{OrderDate: time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), Status: entity.StatusDelivered, TotalAmount: 800},
		}

		buckets := BuildMonthlyStats(orders, now)
		if buckets[10].Revenue != 200 {
			t.Errorf("expected february 2024 revenue 200, got %d", buckets[10].Revenue)
		}
	})
}

func TestGetDashboard(t *testing.T) {
	now := time.Now()
	userRepo := newFakeUserRepo(
		&entity.User{Username: "alice", Email: "a@x.com"},
		&entity.User{Username: "bob", Email: "b@x.com"},
	)
	productRepo := newFakeProductRepo(
		&entity.Product{Name: "A", Price: 100},
		&entity.Product{Name: "B", Price: 100},
		&entity.Product{Name: "C", Price: 100},
	)
	orderRepo := newFakeOrderRepo(
		&entity.Order{OrderDate: now, Status: entity.StatusDelivered, TotalAmount: 400},
		&entity.Order{OrderDate: now, Status: entity.StatusPending, TotalAmount: 100},
		&entity.Order{OrderDate: now.AddDate(0, 0, -2), Status: entity.StatusDelivered, TotalAmount: 999},
	)

	svc := NewStatsService(userRepo, productRepo, orderRepo)
	dashboard, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dashboard.TotalUsers != 2 {
		t.Errorf("expected 2 users, got %d", dashboard.TotalUsers)
	}
	if dashboard.TotalProducts != 3 {
		t.Errorf("expected 3 products, got %d", dashboard.TotalProducts)
	}
	if dashboard.TodayOrders != 1 {
		t.Errorf("expected 1 delivered order today, got %d", dashboard.TodayOrders)
	}
	if dashboard.TodayRevenue != 400 {
		t.Errorf("expected today revenue 400, got %d", dashboard.TodayRevenue)
	}
}
