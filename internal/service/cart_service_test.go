package service

import (
	"context"
	"testing"

	"storefront-service/internal/entity"
)

func TestJoinCart(t *testing.T) {
	products := []*entity.Product{
		{ID: 1, Name: "Air Max", Price: 100, FinalPrice: 80, Image: "air-max.png"},
		{ID: 2, Name: "Suede", Price: 50},
	}

	t.Run("discounted price times quantity", func(t *testing.T) {
		items := []*entity.CartItem{{ID: 1, ProductID: 1, Quantity: 2}}

		lines := JoinCart(items, products)
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(lines))
		}
		if lines[0].Price != 80 {
			t.Errorf("expected price 80, got %d", lines[0].Price)
		}
		if lines[0].LineTotal != 160 {
			t.Errorf("expected line total 160, got %d", lines[0].LineTotal)
		}
		if lines[0].Name != "Air Max" {
			t.Errorf("expected product name, got %q", lines[0].Name)
		}
	})

	t.Run("stored price wins over product price", func(t *testing.T) {
		items := []*entity.CartItem{{ID: 1, ProductID: 1, Quantity: 1, Price: 70}}

		lines := JoinCart(items, products)
		if lines[0].Price != 70 {
			t.Errorf("expected stored price 70, got %d", lines[0].Price)
		}
	})

	t.Run("list price when no discount", func(t *testing.T) {
		items := []*entity.CartItem{{ID: 1, ProductID: 2, Quantity: 3}}

		lines := JoinCart(items, products)
		if lines[0].Price != 50 {
			t.Errorf("expected list price 50, got %d", lines[0].Price)
		}
		if lines[0].LineTotal != 150 {
			t.Errorf("expected line total 150, got %d", lines[0].LineTotal)
		}
	})

	t.Run("missing product renders placeholder and zero", func(t *testing.T) {
		items := []*entity.CartItem{{ID: 1, ProductID: 999, Quantity: 2}}

		lines := JoinCart(items, products)
		if lines[0].Price != 0 || lines[0].LineTotal != 0 {
			t.Errorf("expected zero price, got price=%d total=%d", lines[0].Price, lines[0].LineTotal)
		}
		if lines[0].Name != "Unknown product" {
			t.Errorf("expected fallback name, got %q", lines[0].Name)
		}
		if lines[0].Image != entity.PlaceholderImage {
			t.Errorf("expected placeholder image, got %q", lines[0].Image)
		}
	})

	t.Run("zero quantity counts as one", func(t *testing.T) {
		items := []*entity.CartItem{{ID: 1, ProductID: 2, Quantity: 0}}

		lines := JoinCart(items, products)
		if lines[0].LineTotal != 50 {
			t.Errorf("expected line total 50, got %d", lines[0].LineTotal)
		}
	})
}

func TestCartServiceAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("merges same product size and color", func(t *testing.T) {
		cartRepo := newFakeCartRepo(&entity.CartItem{UserID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 2})
		svc := NewCartService(cartRepo, newFakeProductRepo())

		added, err := svc.AddItem(ctx, &entity.CartItem{UserID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if added.Quantity != 5 {
			t.Errorf("expected merged quantity 5, got %d", added.Quantity)
		}

		items, _ := cartRepo.GetItemsByUser(ctx, 1)
		if len(items) != 1 {
			t.Errorf("expected a single row after merge, got %d", len(items))
		}
	})

	t.Run("different size gets its own row", func(t *testing.T) {
		cartRepo := newFakeCartRepo(&entity.CartItem{UserID: 1, ProductID: 5, Size: "42", Color: "black", Quantity: 1})
		svc := NewCartService(cartRepo, newFakeProductRepo())

		if _, err := svc.AddItem(ctx, &entity.CartItem{UserID: 1, ProductID: 5, Size: "43", Color: "black", Quantity: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		items, _ := cartRepo.GetItemsByUser(ctx, 1)
		if len(items) != 2 {
			t.Errorf("expected 2 rows, got %d", len(items))
		}
	})

	t.Run("non-positive quantity becomes one", func(t *testing.T) {
		cartRepo := newFakeCartRepo()
		svc := NewCartService(cartRepo, newFakeProductRepo())

		added, err := svc.AddItem(ctx, &entity.CartItem{UserID: 1, ProductID: 7, Quantity: 0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if added.Quantity != 1 {
			t.Errorf("expected quantity 1, got %d", added.Quantity)
		}
	})
}

func TestCartServiceSetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("floors at one", func(t *testing.T) {
		cartRepo := newFakeCartRepo(&entity.CartItem{ID: 1, UserID: 1, ProductID: 5, Quantity: 4})
		svc := NewCartService(cartRepo, newFakeProductRepo())

		item, err := svc.SetQuantity(ctx, 1, -2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.Quantity != 1 {
			t.Errorf("expected quantity floored to 1, got %d", item.Quantity)
		}
	})

	t.Run("missing row is not found", func(t *testing.T) {
		svc := NewCartService(newFakeCartRepo(), newFakeProductRepo())

		if _, err := svc.SetQuantity(ctx, 99, 2); err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCartServiceBadgeCount(t *testing.T) {
	cartRepo := newFakeCartRepo(
		&entity.CartItem{UserID: 1, ProductID: 1, Quantity: 2},
		&entity.CartItem{UserID: 1, ProductID: 2, Quantity: 3},
		&entity.CartItem{UserID: 2, ProductID: 1, Quantity: 9},
	)
	svc := NewCartService(cartRepo, newFakeProductRepo())

	count, err := svc.BadgeCount(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 5 {
		t.Errorf("expected badge count 5, got %d", count)
	}
}

func TestGetCartView(t *testing.T) {
	cartRepo := newFakeCartRepo(
		&entity.CartItem{UserID: 1, ProductID: 1, Quantity: 2},
		&entity.CartItem{UserID: 1, ProductID: 2, Quantity: 1},
	)
	productRepo := newFakeProductRepo(
		&entity.Product{ID: 1, Name: "Air Max", Price: 100, FinalPrice: 80},
		&entity.Product{ID: 2, Name: "Suede", Price: 50},
	)
	svc := NewCartService(cartRepo, productRepo)

	view, err := svc.GetCartView(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Total != 210 {
		t.Errorf("expected total 210, got %d", view.Total)
	}
	if view.Count != 3 {
		t.Errorf("expected count 3, got %d", view.Count)
	}
	if len(view.Lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(view.Lines))
	}
}
