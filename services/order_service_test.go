package services

import (
	"context"
	"errors"
	"testing"

	"github.com/abdelemjid/carpet-shop-sub000/models"
	"github.com/abdelemjid/carpet-shop-sub000/repository"
	"github.com/abdelemjid/carpet-shop-sub000/repository/memory"
)

func seedOrder(t *testing.T, store *memory.Store, o models.Order) uint {
	t.Helper()
	if err := store.Orders().CreateBatch(context.Background(), []models.Order{o}); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	orders := store.AllOrders()
	return orders[len(orders)-1].ID
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestStatusDeliveredCoupling(t *testing.T) {
	statuses := []string{"pending", "prepared", "refused", "sent", "delivered"}
	for _, status := range statuses {
		t.Run(status, func(t *testing.T) {
			store := memory.NewStore()
			svc := NewOrderService(store)
			id := seedOrder(t, store, models.Order{UserID: "u1", ProductID: 1, Quantity: 2, TotalPrice: 30})

			in := UpdateOrderInput{Status: strptr(status)}
			if status == "refused" {
				in.RefuseReason = strptr("out of stock")
			}
			order, err := svc.Update(context.Background(), id, in)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			wantDelivered := status == "delivered"
			if order.Delivered != wantDelivered {
				t.Errorf("delivered = %v after status %q, want %v", order.Delivered, status, wantDelivered)
			}
		})
	}
}

func TestDeliveredFlagResetOnStatusChange(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store)
	id := seedOrder(t, store, models.Order{UserID: "u1", Quantity: 1, TotalPrice: 10})
	ctx := context.Background()

	if _, err := svc.Update(ctx, id, UpdateOrderInput{Status: strptr("delivered")}); err != nil {
		t.Fatalf("set delivered: %v", err)
	}
	order, err := svc.Update(ctx, id, UpdateOrderInput{Status: strptr("sent")})
	if err != nil {
		t.Fatalf("set sent: %v", err)
	}
	if order.Delivered {
		t.Error("delivered flag survived a non-delivered status")
	}
}

func TestRefusedIsSoftState(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store)
	id := seedOrder(t, store, models.Order{UserID: "u1", Quantity: 1, TotalPrice: 10})
	ctx := context.Background()

	if _, err := svc.Update(ctx, id, UpdateOrderInput{
		Status: strptr("refused"), RefuseReason: strptr("quantity is too much"),
	}); err != nil {
		t.Fatalf("refuse: %v", err)
	}
	order, err := svc.Update(ctx, id, UpdateOrderInput{Status: strptr("prepared")})
	if err != nil {
		t.Fatalf("un-refuse: %v", err)
	}
	if order.Status != models.OrderStatusPrepared {
		t.Errorf("status = %q, want prepared", order.Status)
	}
}

func TestInvalidStatusRejectedBeforeStore(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store)
	id := seedOrder(t, store, models.Order{UserID: "u1", Quantity: 1, TotalPrice: 10, Status: models.OrderStatusPending})

	if _, err := svc.Update(context.Background(), id, UpdateOrderInput{Status: strptr("cancelled")}); !errors.Is(err, models.ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
	order, _ := store.Orders().FindByID(context.Background(), id)
	if order.Status != models.OrderStatusPending {
		t.Errorf("status changed despite rejection: %q", order.Status)
	}
}

func TestInvalidRefuseReasonRejected(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store)
	id := seedOrder(t, store, models.Order{UserID: "u1", Quantity: 1, TotalPrice: 10})

	_, err := svc.Update(context.Background(), id, UpdateOrderInput{RefuseReason: strptr("customer was rude")})
	if !errors.Is(err, models.ErrInvalidRefuseReason) {
		t.Fatalf("expected ErrInvalidRefuseReason, got %v", err)
	}
}

func TestZeroQuantityDeletesOrder(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store)
	id := seedOrder(t, store, models.Order{UserID: "u1", Quantity: 2, TotalPrice: 30})

	order, err := svc.Update(context.Background(), id, UpdateOrderInput{Quantity: intptr(0)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if order != nil {
		t.Fatalf("expected deletion, got %+v", order)
	}
	if _, err := svc.Get(context.Background(), id); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("order still present: %v", err)
	}
}

func TestNegativeQuantityRejected(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store)
	id := seedOrder(t, store, models.Order{UserID: "u1", Quantity: 2, TotalPrice: 30})

	if _, err := svc.Update(context.Background(), id, UpdateOrderInput{Quantity: intptr(-1)}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestQuantityUpdateKeepsUnitPrice(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store)
	id := seedOrder(t, store, models.Order{UserID: "u1", Quantity: 2, TotalPrice: 30})

	order, err := svc.Update(context.Background(), id, UpdateOrderInput{Quantity: intptr(3)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if order.Quantity != 3 || order.TotalPrice != 45 {
		t.Errorf("order = qty %d / total %v, want 3 / 45", order.Quantity, order.TotalPrice)
	}
}

func TestUpdateMissingOrder(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store)
	if _, err := svc.Update(context.Background(), 4242, UpdateOrderInput{Status: strptr("sent")}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
