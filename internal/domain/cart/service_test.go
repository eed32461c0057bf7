// internal/domain/cart/service_test.go
package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
)

// memStore is an in-memory Store with transactional semantics: a
// failed InTransaction restores the pre-transaction state, and the
// whole transaction runs under one mutex so same-cart operations are
// serialized the way the row lock serializes them in postgres.
type memStore struct {
	mu    sync.Mutex
	state memState
}

type memState struct {
	nextCartID uint
	nextItemID uint
	carts      map[uint]*Cart // keyed by owner
}

func newMemStore() *memStore {
	return &memStore{state: memState{carts: make(map[uint]*Cart)}}
}

func (s *memState) clone() memState {
	carts := make(map[uint]*Cart, len(s.carts))
	for owner, c := range s.carts {
		cp := *c
		cp.Items = append([]CartItem(nil), c.Items...)
		carts[owner] = &cp
	}
	return memState{nextCartID: s.nextCartID, nextItemID: s.nextItemID, carts: carts}
}

func (s *memStore) InTransaction(ctx context.Context, fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(&memTx{state: &s.state}); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *memStore) FindByOwner(ctx context.Context, ownerID uint) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{state: &s.state}).FindByOwner(ctx, ownerID)
}

func (s *memStore) Create(ctx context.Context, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{state: &s.state}).Create(ctx, c)
}

func (s *memStore) SaveItem(ctx context.Context, item *CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{state: &s.state}).SaveItem(ctx, item)
}

func (s *memStore) DeleteItem(ctx context.Context, item *CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{state: &s.state}).DeleteItem(ctx, item)
}

func (s *memStore) DeleteItems(ctx context.Context, cartID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{state: &s.state}).DeleteItems(ctx, cartID)
}

func (s *memStore) Touch(ctx context.Context, cartID uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memTx{state: &s.state}).Touch(ctx, cartID, at)
}

// memTx operates on the state directly; the enclosing InTransaction
// holds the lock.
type memTx struct {
	state *memState
}

func (t *memTx) InTransaction(ctx context.Context, fn func(tx Store) error) error {
	return fn(t)
}

func (t *memTx) FindByOwner(ctx context.Context, ownerID uint) (*Cart, error) {
	c, ok := t.state.carts[ownerID]
	if !ok {
		return nil, ErrCartNotFound
	}
	cp := *c
	cp.Items = append([]CartItem(nil), c.Items...)
	return &cp, nil
}

func (t *memTx) Create(ctx context.Context, c *Cart) error {
	t.state.nextCartID++
	c.ID = t.state.nextCartID
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt

	cp := *c
	cp.Items = append([]CartItem(nil), c.Items...)
	t.state.carts[c.UserID] = &cp
	return nil
}

func (t *memTx) SaveItem(ctx context.Context, item *CartItem) error {
	if item.ID == 0 {
		t.state.nextItemID++
		item.ID = t.state.nextItemID
		item.CreatedAt = time.Now().UTC()
	}
	for _, c := range t.state.carts {
		if c.ID != item.CartID {
			continue
		}
		for i := range c.Items {
			if c.Items[i].ID == item.ID {
				c.Items[i] = *item
				return nil
			}
		}
		c.Items = append(c.Items, *item)
		return nil
	}
	return errors.New("cart not found for item")
}

func (t *memTx) DeleteItem(ctx context.Context, item *CartItem) error {
	for _, c := range t.state.carts {
		if c.ID != item.CartID {
			continue
		}
		for i := range c.Items {
			if c.Items[i].ID == item.ID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (t *memTx) DeleteItems(ctx context.Context, cartID uint) error {
	for _, c := range t.state.carts {
		if c.ID == cartID {
			c.Items = nil
		}
	}
	return nil
}

func (t *memTx) Touch(ctx context.Context, cartID uint, at time.Time) error {
	for _, c := range t.state.carts {
		if c.ID == cartID {
			c.UpdatedAt = at
		}
	}
	return nil
}

type fakeProducts struct {
	products map[uint]ProductInfo
}

func (f *fakeProducts) FindByID(ctx context.Context, productID uint) (*ProductInfo, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

type fakeUsers struct {
	ids map[uint]bool
}

func (f *fakeUsers) Exists(ctx context.Context, userID uint) (bool, error) {
	return f.ids[userID], nil
}

const (
	testUser    uint = 1
	testProduct uint = 100
	otherProd   uint = 200
)

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()

	store := newMemStore()
	products := &fakeProducts{products: map[uint]ProductInfo{
		testProduct: {ID: testProduct, Stock: 10, UnitPrice: 2500},
		otherProd:   {ID: otherProd, Stock: 3, UnitPrice: 999},
	}}
	users := &fakeUsers{ids: map[uint]bool{testUser: true}}

	return NewService(store, products, users, &config.Config{}), store
}

func mustSnapshot(t *testing.T, svc *Service, owner uint) *Snapshot {
	t.Helper()
	snap, err := svc.GetCart(context.Background(), owner)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	return snap
}

func TestAddItem_CreatesCartLazily(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.GetCart(ctx, testUser); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound before first add, got %v", err)
	}

	if err := svc.AddItem(ctx, testUser, testProduct, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	snap := mustSnapshot(t, svc, testUser)
	if snap.CartID == 0 {
		t.Error("expected cart to have an assigned id")
	}
	if len(snap.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(snap.Items))
	}
	if snap.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", snap.Items[0].Quantity)
	}
	if snap.Items[0].LineAmount != 5000 {
		t.Errorf("expected line amount 5000, got %d", snap.Items[0].LineAmount)
	}
}

func TestAddItem_MergesRepeatedAdds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.AddItem(ctx, testUser, testProduct, 3); err != nil {
		t.Fatalf("first AddItem failed: %v", err)
	}
	if err := svc.AddItem(ctx, testUser, testProduct, 2); err != nil {
		t.Fatalf("second AddItem failed: %v", err)
	}

	snap := mustSnapshot(t, svc, testUser)
	if len(snap.Items) != 1 {
		t.Fatalf("expected a single merged line item, got %d", len(snap.Items))
	}
	if snap.Items[0].Quantity != 5 {
		t.Errorf("expected merged quantity 5, got %d", snap.Items[0].Quantity)
	}
	if snap.Items[0].LineAmount != 5*2500 {
		t.Errorf("expected line amount %d, got %d", 5*2500, snap.Items[0].LineAmount)
	}
}

func TestAddItem_RejectsOverStock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	// Stock for testProduct is 10.
	if err := svc.AddItem(ctx, testUser, testProduct, 7); err != nil {
		t.Fatalf("AddItem within stock failed: %v", err)
	}

	err := svc.AddItem(ctx, testUser, testProduct, 5)
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock for 7+5 > 10, got %v", err)
	}

	snap := mustSnapshot(t, svc, testUser)
	if snap.Items[0].Quantity != 7 {
		t.Errorf("failed add must leave quantity unchanged: expected 7, got %d", snap.Items[0].Quantity)
	}
}

func TestAddItem_FailedFirstAddLeavesNoCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	// otherProd has stock 3; the transaction creating the cart must
	// roll back with the rejected add.
	if err := svc.AddItem(ctx, testUser, otherProd, 4); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}

	if _, err := svc.GetCart(ctx, testUser); !errors.Is(err, ErrCartNotFound) {
		t.Errorf("expected no cart after rolled-back add, got %v", err)
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.AddItem(ctx, testUser, 9999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAddItem_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.AddItem(ctx, 42, testProduct, 1); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, qty := range []int{0, -1} {
		if err := svc.AddItem(ctx, testUser, testProduct, qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestGetOrCreateCart_ReturnsSameCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.GetOrCreateCart(ctx, testUser)
	if err != nil {
		t.Fatalf("GetOrCreateCart failed: %v", err)
	}
	second, err := svc.GetOrCreateCart(ctx, testUser)
	if err != nil {
		t.Fatalf("second GetOrCreateCart failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected the same cart on repeat calls, got %d and %d", first.ID, second.ID)
	}
}

func TestRemoveItem_PartialThenFull(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.AddItem(ctx, testUser, testProduct, 5); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := svc.RemoveItem(ctx, testUser, testProduct, 2); err != nil {
		t.Fatalf("partial RemoveItem failed: %v", err)
	}
	snap := mustSnapshot(t, svc, testUser)
	if snap.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3 after removing 2 of 5, got %d", snap.Items[0].Quantity)
	}
	if snap.Items[0].LineAmount != 3*2500 {
		t.Errorf("expected line amount recomputed to %d, got %d", 3*2500, snap.Items[0].LineAmount)
	}

	// Removing the remaining quantity deletes the row rather than
	// leaving a zero-quantity line.
	if err := svc.RemoveItem(ctx, testUser, testProduct, 3); err != nil {
		t.Fatalf("full RemoveItem failed: %v", err)
	}
	snap = mustSnapshot(t, svc, testUser)
	if len(snap.Items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(snap.Items))
	}
}

func TestRemoveItem_MoreThanPresentDeletesRow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.AddItem(ctx, testUser, testProduct, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := svc.RemoveItem(ctx, testUser, testProduct, 10); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}

	snap := mustSnapshot(t, svc, testUser)
	if len(snap.Items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(snap.Items))
	}
}

func TestRemoveItem_AbsentProductIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.AddItem(ctx, testUser, testProduct, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := svc.RemoveItem(ctx, testUser, otherProd, 1); err != nil {
		t.Fatalf("removing an absent product must not error, got %v", err)
	}

	snap := mustSnapshot(t, svc, testUser)
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 2 {
		t.Errorf("cart must be unchanged by the no-op remove")
	}
}

func TestRemoveItem_NoCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.RemoveItem(ctx, testUser, testProduct, 1); !errors.Is(err, ErrCartNotFound) {
		t.Errorf("expected ErrCartNotFound, got %v", err)
	}
}

func TestClearCart_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.AddItem(ctx, testUser, testProduct, 4); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := svc.ClearCart(ctx, testUser); err != nil {
		t.Fatalf("first ClearCart failed: %v", err)
	}
	snap := mustSnapshot(t, svc, testUser)
	if len(snap.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", len(snap.Items))
	}

	// The cart row survives a clear, so clearing again succeeds too.
	if err := svc.ClearCart(ctx, testUser); err != nil {
		t.Fatalf("second ClearCart failed: %v", err)
	}
	snap = mustSnapshot(t, svc, testUser)
	if len(snap.Items) != 0 {
		t.Errorf("expected cart to stay empty, got %d items", len(snap.Items))
	}
}

func TestClearCart_NoCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.ClearCart(ctx, testUser); !errors.Is(err, ErrCartNotFound) {
		t.Errorf("expected ErrCartNotFound, got %v", err)
	}
}

func TestGetCart_SnapshotTotals(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.AddItem(ctx, testUser, testProduct, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := svc.AddItem(ctx, testUser, otherProd, 3); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	snap := mustSnapshot(t, svc, testUser)
	if len(snap.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(snap.Items))
	}
	want := int64(2*2500 + 3*999)
	if snap.TotalAmount != want {
		t.Errorf("expected total amount %d, got %d", want, snap.TotalAmount)
	}
	if snap.UpdatedAt.IsZero() {
		t.Error("expected snapshot to carry the cart's modification timestamp")
	}
}

func TestAddItem_RefreshesCartTimestamp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.AddItem(ctx, testUser, testProduct, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	before := mustSnapshot(t, svc, testUser).UpdatedAt

	time.Sleep(5 * time.Millisecond)
	if err := svc.AddItem(ctx, testUser, testProduct, 1); err != nil {
		t.Fatalf("second AddItem failed: %v", err)
	}
	after := mustSnapshot(t, svc, testUser).UpdatedAt

	if !after.After(before) {
		t.Errorf("expected updated_at to advance: before=%v after=%v", before, after)
	}
}

func TestAddItem_ConcurrentAddsDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()

	store := newMemStore()
	products := &fakeProducts{products: map[uint]ProductInfo{
		testProduct: {ID: testProduct, Stock: 1000, UnitPrice: 100},
	}}
	users := &fakeUsers{ids: map[uint]bool{testUser: true}}
	svc := NewService(store, products, users, &config.Config{})

	const workers = 25
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.AddItem(ctx, testUser, testProduct, 1)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent AddItem failed: %v", err)
		}
	}

	snap := mustSnapshot(t, svc, testUser)
	if len(snap.Items) != 1 {
		t.Fatalf("expected one merged line item, got %d", len(snap.Items))
	}
	if snap.Items[0].Quantity != workers {
		t.Errorf("lost update: expected quantity %d, got %d", workers, snap.Items[0].Quantity)
	}
}
