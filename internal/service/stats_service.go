package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront-service/internal/entity"
)

const (
	dailyWindowDays   = 30
	monthlyWindowSize = 12
)

// StatsService computes the admin dashboard numbers and the per-period
// revenue reports.
type StatsService struct {
	userRepo    UserRepo
	productRepo ProductRepo
	orderRepo   OrderRepo
}

func NewStatsService(userRepo UserRepo, productRepo ProductRepo, orderRepo OrderRepo) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// PeriodBucket is one aggregation window: a day or a month.
type PeriodBucket struct {
	Period  string `json:"period"`
	Orders  int    `json:"orders"`
	Revenue int    `json:"revenue"`
	Units   int    `json:"units"`
}

// DailyStats aggregates delivered orders over the last 30 days, oldest
// bucket first. Every day appears, including empty ones.
func (s *StatsService) DailyStats(ctx context.Context) ([]PeriodBucket, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDailyStats(orders, time.Now()), nil
}

// MonthlyStats aggregates delivered orders over the last 12 months,
// oldest bucket first.
func (s *StatsService) MonthlyStats(ctx context.Context) ([]PeriodBucket, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	return BuildMonthlyStats(orders, time.Now()), nil
}

// delivered reports whether an order counts toward revenue. Only an
// explicit delivered status counts; a missing status does not, even when
// the legacy record carries a completedAt stamp.
func delivered(order *entity.Order) bool {
	return order.Status == entity.StatusDelivered
}

// BuildDailyStats produces exactly 30 buckets ending at now's calendar
// day. Orders land in the bucket matching the calendar date of orderDate.
func BuildDailyStats(orders []*entity.Order, now time.Time) []PeriodBucket {
	buckets := make([]PeriodBucket, 0, dailyWindowDays)
	index := make(map[string]int, dailyWindowDays)

	for i := dailyWindowDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := day.Format("02/01/2006")
		index[key] = len(buckets)
		buckets = append(buckets, PeriodBucket{Period: key})
	}

	for _, order := range orders {
		if !delivered(order) {
			continue
		}
		key := order.OrderDate.Format("02/01/2006")
		pos, ok := index[key]
		if !ok {
			continue
		}
		buckets[pos].Orders++
		buckets[pos].Revenue += order.TotalAmount
		buckets[pos].Units += len(order.Items)
	}

	return buckets
}

// BuildMonthlyStats produces exactly 12 buckets ending at now's month.
// Orders are matched by (month, year) of orderDate, not by elapsed time.
func BuildMonthlyStats(orders []*entity.Order, now time.Time) []PeriodBucket {
	buckets := make([]PeriodBucket, 0, monthlyWindowSize)
	index := make(map[string]int, monthlyWindowSize)

	// Normalize to the first of the month before stepping back, so a
	// 31st does not skip short months.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := monthlyWindowSize - 1; i >= 0; i-- {
		month := first.AddDate(0, -i, 0)
		key := monthKey(month)
		index[key] = len(buckets)
		buckets = append(buckets, PeriodBucket{Period: key})
	}

	for _, order := range orders {
		if !delivered(order) {
			continue
		}
		pos, ok := index[monthKey(order.OrderDate)]
		if !ok {
			continue
		}
		buckets[pos].Orders++
		buckets[pos].Revenue += order.TotalAmount
		buckets[pos].Units += len(order.Items)
	}

	return buckets
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Year())
}

// Dashboard is the admin landing numbers.
type Dashboard struct {
	TotalProducts int `json:"totalProducts"`
	TotalUsers    int `json:"totalUsers"`
	TodayOrders   int `json:"todayOrders"`
	TodayRevenue  int `json:"todayRevenue"`
}

// GetDashboard fetches the three collections concurrently and waits for
// all of them before aggregating.
func (s *StatsService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var (
		products []*entity.Product
		users    []*entity.User
		orders   []*entity.Order
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.productRepo.GetProducts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.userRepo.GetUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.orderRepo.GetOrders(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Error loading dashboard data")
		return nil, err
	}

	dashboard := &Dashboard{
		TotalProducts: len(products),
		TotalUsers:    len(users),
	}

	today := time.Now().Format("02/01/2006")
	for _, order := range orders {
		if !delivered(order) {
			continue
		}
		if order.OrderDate.Format("02/01/2006") != today {
			continue
		}
		dashboard.TodayOrders++
		dashboard.TodayRevenue += order.TotalAmount
	}

	return dashboard, nil
}
