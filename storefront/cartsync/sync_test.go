package cartsync

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/abdelemjid/carpet-shop-sub000/models"
)

type fakeLocal struct {
	lines []models.CartLine
}

func (f *fakeLocal) Lines() []models.CartLine { return f.lines }

func (f *fakeLocal) ReplaceAll(lines []models.CartLine) error {
	f.lines = lines
	return nil
}

type fakeRemote struct {
	lines      []models.CartLine
	fetchErr   error
	replaceErr error
	replaces   int
}

func (f *fakeRemote) Fetch(ctx context.Context) ([]models.CartLine, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.lines, nil
}

func (f *fakeRemote) Replace(ctx context.Context, lines []models.CartLine) (int, int, error) {
	if f.replaceErr != nil {
		return 0, 0, f.replaceErr
	}
	f.replaces++
	f.lines = lines
	return len(lines), 0, nil
}

func TestMergeLocalQuantityWinsRemoteMetadataKept(t *testing.T) {
	local := []models.CartLine{{ProductID: 1, OrderQuantity: 2}}
	remote := []models.CartLine{
		{ProductID: 1, OrderQuantity: 5, ProductName: "Red Carpet", ProductPrice: 10},
		{ProductID: 2, OrderQuantity: 1, ProductName: "Blue Carpet", ProductPrice: 20},
	}

	merged := Merge(local, remote)
	want := []models.CartLine{
		{ProductID: 1, OrderQuantity: 2, ProductName: "Red Carpet", ProductPrice: 10},
		{ProductID: 2, OrderQuantity: 1, ProductName: "Blue Carpet", ProductPrice: 20},
	}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("merged = %+v, want %+v", merged, want)
	}
}

func TestMergeAppendsLocalOnlyLines(t *testing.T) {
	local := []models.CartLine{{ProductID: 3, OrderQuantity: 1, ProductName: "Green Carpet"}}
	remote := []models.CartLine{{ProductID: 1, OrderQuantity: 5, ProductName: "Red Carpet"}}

	merged := Merge(local, remote)
	if len(merged) != 2 {
		t.Fatalf("merged = %d lines, want 2", len(merged))
	}
	if merged[0].ProductID != 1 || merged[1].ProductID != 3 {
		t.Errorf("merge order = %+v, want remote base then local extras", merged)
	}
}

func TestSyncBothEmptyIsNoOp(t *testing.T) {
	local := &fakeLocal{}
	remote := &fakeRemote{}
	if err := NewReconciler(local, remote).Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if remote.replaces != 0 {
		t.Error("server written during no-op sync")
	}
}

func TestSyncPushesLocalWhenRemoteEmpty(t *testing.T) {
	local := &fakeLocal{lines: []models.CartLine{{ProductID: 1, OrderQuantity: 3, ProductName: "Kilim", ProductPrice: 15}}}
	remote := &fakeRemote{}

	if err := NewReconciler(local, remote).Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(remote.lines) != 1 || remote.lines[0].OrderQuantity != 3 {
		t.Fatalf("remote = %+v, want the local cart", remote.lines)
	}
}

func TestSyncAdoptsRemoteWhenLocalEmpty(t *testing.T) {
	local := &fakeLocal{}
	remote := &fakeRemote{lines: []models.CartLine{{ProductID: 2, OrderQuantity: 1, ProductName: "Blue Carpet"}}}

	if err := NewReconciler(local, remote).Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if remote.replaces != 0 {
		t.Error("server rewritten when adopting the remote cart")
	}
	if len(local.lines) != 1 || local.lines[0].ProductID != 2 {
		t.Fatalf("local = %+v, want the remote cart", local.lines)
	}
}

func TestSyncMergesWhenBothPresent(t *testing.T) {
	local := &fakeLocal{lines: []models.CartLine{{ProductID: 1, OrderQuantity: 2}}}
	remote := &fakeRemote{lines: []models.CartLine{
		{ProductID: 1, OrderQuantity: 5, ProductName: "Red Carpet", ProductPrice: 10},
		{ProductID: 2, OrderQuantity: 1, ProductName: "Blue Carpet", ProductPrice: 20},
	}}

	if err := NewReconciler(local, remote).Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(remote.lines) != 2 || remote.lines[0].OrderQuantity != 2 {
		t.Fatalf("remote after merge = %+v", remote.lines)
	}
	if !reflect.DeepEqual(local.lines, remote.lines) {
		t.Error("local and remote diverged after merge")
	}
}

func TestSyncIgnoresConfirmedRemoteLines(t *testing.T) {
	local := &fakeLocal{}
	remote := &fakeRemote{lines: []models.CartLine{
		{ProductID: 1, OrderQuantity: 1, Confirmed: true},
		{ProductID: 2, OrderQuantity: 2},
	}}

	if err := NewReconciler(local, remote).Sync(context.Background()); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(local.lines) != 1 || local.lines[0].ProductID != 2 {
		t.Fatalf("local = %+v, want only the pending line", local.lines)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	local := &fakeLocal{lines: []models.CartLine{{ProductID: 1, OrderQuantity: 2}}}
	remote := &fakeRemote{lines: []models.CartLine{{ProductID: 1, OrderQuantity: 5, ProductName: "Red Carpet"}}}
	r := NewReconciler(local, remote)

	if err := r.Sync(context.Background()); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	first := append([]models.CartLine(nil), remote.lines...)
	if err := r.Sync(context.Background()); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if !reflect.DeepEqual(remote.lines, first) {
		t.Errorf("second sync changed the result: %+v vs %+v", remote.lines, first)
	}
}

func TestSyncFetchFailureKeepsLocalCart(t *testing.T) {
	local := &fakeLocal{lines: []models.CartLine{{ProductID: 1, OrderQuantity: 2}}}
	remote := &fakeRemote{fetchErr: errors.New("network down")}

	if err := NewReconciler(local, remote).Sync(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(local.lines) != 1 {
		t.Errorf("local cart lost on failure: %+v", local.lines)
	}
}

func TestSyncPushFailureKeepsLocalCart(t *testing.T) {
	local := &fakeLocal{lines: []models.CartLine{{ProductID: 1, OrderQuantity: 2}}}
	remote := &fakeRemote{
		lines:      []models.CartLine{{ProductID: 2, OrderQuantity: 1}},
		replaceErr: errors.New("server error"),
	}

	if err := NewReconciler(local, remote).Sync(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(local.lines) != 1 || local.lines[0].ProductID != 1 {
		t.Errorf("local cart lost on push failure: %+v", local.lines)
	}
}
