package sale

import (
	"context"
	"testing"

	"github.com/mhammadjaber00/almasasuite/internal/core/apperror"
	"github.com/mhammadjaber00/almasasuite/internal/core/id"
	"github.com/mhammadjaber00/almasasuite/internal/core/types"
	"github.com/mhammadjaber00/almasasuite/internal/domain/audit"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/product"
	"github.com/mhammadjaber00/almasasuite/internal/domain/catalogs/vendor"
	"github.com/mhammadjaber00/almasasuite/internal/domain/registers/stockmutation"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSaleRepo struct {
	sales map[id.ID]*Sale
}

func (r *fakeSaleRepo) Create(_ context.Context, s *Sale) error {
	r.sales[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, saleID id.ID) (*Sale, error) {
	if s, ok := r.sales[saleID]; ok {
		return s, nil
	}
	return nil, apperror.NewNotFound("sale", saleID.String())
}

func (r *fakeSaleRepo) GetForUpdate(ctx context.Context, saleID id.ID) (*Sale, error) {
	return r.GetByID(ctx, saleID)
}

func (r *fakeSaleRepo) List(_ context.Context, limit, offset int) ([]*Sale, error) {
	var out []*Sale
	for _, s := range r.sales {
		if !s.IsDeleted {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) MarkDeleted(_ context.Context, s *Sale) error {
	r.sales[s.ID] = s
	return nil
}

type fakeProductRepo struct {
	products map[id.ID]*product.Product
}

func (r *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	if p, ok := r.products[productID]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("product", productID.String())
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.GetByID(ctx, productID)
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*product.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", sku)
}

func (r *fakeProductRepo) List(_ context.Context, activeOnly bool) ([]*product.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta int) error {
	p, err := r.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	p.QuantityInStock += delta
	return nil
}

type fakeStockRepo struct {
	mutations []*stockmutation.Mutation
}

func (r *fakeStockRepo) Record(_ context.Context, m *stockmutation.Mutation) error {
	r.mutations = append(r.mutations, m)
	return nil
}

func (r *fakeStockRepo) ListByProduct(_ context.Context, productID id.ID, limit int) ([]*stockmutation.Mutation, error) {
	return nil, nil
}

func (r *fakeStockRepo) ListByDocument(_ context.Context, documentID id.ID) ([]*stockmutation.Mutation, error) {
	var out []*stockmutation.Mutation
	for _, m := range r.mutations {
		if m.DocumentID != nil && *m.DocumentID == documentID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeVendorRepo struct {
	vendors map[id.ID]*vendor.Vendor
}

func (r *fakeVendorRepo) FindOrCreate(_ context.Context, name string, contactInfo *string) (*vendor.Vendor, error) {
	v := vendor.New(name, contactInfo)
	r.vendors[v.ID] = v
	return v, nil
}

func (r *fakeVendorRepo) GetByID(_ context.Context, vendorID id.ID) (*vendor.Vendor, error) {
	if v, ok := r.vendors[vendorID]; ok {
		return v, nil
	}
	return nil, apperror.NewNotFound("vendor", vendorID.String())
}

func (r *fakeVendorRepo) GetForUpdate(ctx context.Context, vendorID id.ID) (*vendor.Vendor, error) {
	return r.GetByID(ctx, vendorID)
}

func (r *fakeVendorRepo) List(_ context.Context, activeOnly bool) ([]*vendor.Vendor, error) {
	return nil, nil
}

func (r *fakeVendorRepo) Update(_ context.Context, v *vendor.Vendor) error {
	r.vendors[v.ID] = v
	return nil
}

func (r *fakeVendorRepo) ApplyIntakeLiability(ctx context.Context, vendorID id.ID, metalValueOwed types.Money) (*vendor.Vendor, error) {
	v, err := r.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	v.RecordIntakeLiability(metalValueOwed)
	return v, nil
}

func (r *fakeVendorRepo) ApplyPayment(ctx context.Context, vendorID id.ID, amount types.Money) (*vendor.Vendor, error) {
	v, err := r.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if err := v.RecordPayment(amount); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *fakeVendorRepo) ReduceForSale(ctx context.Context, vendorID id.ID, metalValueSold types.Money) (*vendor.Vendor, types.Money, error) {
	v, err := r.GetByID(ctx, vendorID)
	if err != nil {
		return nil, types.ZeroMoney(), err
	}
	return v, v.WriteOffForSale(metalValueSold), nil
}

type fixture struct {
	svc      *Service
	sales    *fakeSaleRepo
	products *fakeProductRepo
	stock    *fakeStockRepo
	vendors  *fakeVendorRepo
}

func newFixture() *fixture {
	f := &fixture{
		sales:    &fakeSaleRepo{sales: make(map[id.ID]*Sale)},
		products: &fakeProductRepo{products: make(map[id.ID]*product.Product)},
		stock:    &fakeStockRepo{},
		vendors:  &fakeVendorRepo{vendors: make(map[id.ID]*vendor.Vendor)},
	}
	vendorService := vendor.NewService(f.vendors, passthroughTx{})
	f.svc = NewService(f.sales, f.products, f.stock, vendorService, passthroughTx{}, audit.Noop{})
	return f
}

// addProduct seeds a product with stock, optionally vendor-sourced.
func (f *fixture) addProduct(t *testing.T, sku string, cost, price string, stock int, vendorID *id.ID) *product.Product {
	t.Helper()
	p := product.New(sku, "Gold Ring "+sku, product.TypeRing)
	p.Karat = 18
	p.PurchasePrice = types.MustMoney(cost)
	p.SellingPrice = types.MustMoney(price)
	p.QuantityInStock = stock
	p.VendorID = vendorID
	if err := f.products.Create(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestCreate_ComputesTotalsAndProfit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p1 := f.addProduct(t, "R1", "100", "150", 5, nil)
	p2 := f.addProduct(t, "R2", "40", "70", 3, nil)

	s, err := f.svc.Create(ctx, Request{
		Items: []ItemRequest{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
		PaymentMethod: PaymentCash,
	}, "cashier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !s.TotalAmount.Equal(types.MustMoney("370")) {
		t.Errorf("total amount = %s, want 370", s.TotalAmount)
	}
	if !s.TotalCost.Equal(types.MustMoney("240")) {
		t.Errorf("total cost = %s, want 240", s.TotalCost)
	}
	if !s.Profit.Equal(types.MustMoney("130")) {
		t.Errorf("profit = %s, want 130", s.Profit)
	}

	if p1.QuantityInStock != 3 {
		t.Errorf("p1 stock = %d, want 3", p1.QuantityInStock)
	}
	if p2.QuantityInStock != 2 {
		t.Errorf("p2 stock = %d, want 2", p2.QuantityInStock)
	}

	mutations, _ := f.stock.ListByDocument(ctx, s.ID)
	if len(mutations) != 2 {
		t.Errorf("expected 2 stock mutations, got %d", len(mutations))
	}
	for _, m := range mutations {
		if m.Reason != stockmutation.ReasonSale {
			t.Errorf("mutation reason = %s, want SALE", m.Reason)
		}
	}
}

func TestCreate_InsufficientStock(t *testing.T) {
	f := newFixture()

	p := f.addProduct(t, "R1", "100", "150", 1, nil)

	_, err := f.svc.Create(context.Background(), Request{
		Items:         []ItemRequest{{ProductID: p.ID, Quantity: 2}},
		PaymentMethod: PaymentCash,
	}, "cashier")

	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInsufficientStock {
		t.Fatalf("expected InsufficientStock, got %v", err)
	}
	if appErr.Details["requested"] != 2 || appErr.Details["available"] != 1 {
		t.Errorf("details = %v, want requested 2 available 1", appErr.Details)
	}
}

func TestCreate_InactiveProduct(t *testing.T) {
	f := newFixture()

	p := f.addProduct(t, "R1", "100", "150", 5, nil)
	p.Deactivate()

	_, err := f.svc.Create(context.Background(), Request{
		Items:         []ItemRequest{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: PaymentCash,
	}, "cashier")

	if !apperror.IsValidation(err) {
		t.Errorf("expected validation error for inactive product, got %v", err)
	}
}

func TestCreate_ReducesVendorLiability(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	v, _ := f.vendors.FindOrCreate(ctx, "Ahmad Gold Workshop", nil)
	v.RecordIntakeLiability(types.MustMoney("500"))

	p := f.addProduct(t, "G1", "200", "260", 2, &v.ID)

	if _, err := f.svc.Create(ctx, Request{
		Items:         []ItemRequest{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: PaymentCard,
	}, "cashier"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Selling 200 of purchase value writes off 200 of the 500 owed.
	if !v.TotalLiabilityBalance.Equal(types.MustMoney("300")) {
		t.Errorf("vendor balance = %s, want 300", v.TotalLiabilityBalance)
	}
	if !v.TotalPaid.IsZero() {
		t.Errorf("total paid = %s, want 0 (write-off is not a payment)", v.TotalPaid)
	}
}

func TestCreate_WriteOffFloorsAtZero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	v, _ := f.vendors.FindOrCreate(ctx, "Ahmad Gold Workshop", nil)
	v.RecordIntakeLiability(types.MustMoney("150"))

	// Purchase value 200 exceeds the 150 owed; sale still succeeds.
	p := f.addProduct(t, "G1", "200", "260", 1, &v.ID)

	s, err := f.svc.Create(ctx, Request{
		Items:         []ItemRequest{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: PaymentCash,
	}, "cashier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !v.TotalLiabilityBalance.IsZero() {
		t.Errorf("vendor balance = %s, want 0", v.TotalLiabilityBalance)
	}
	if !s.Profit.Equal(types.MustMoney("60")) {
		t.Errorf("profit = %s, want 60", s.Profit)
	}
}

func TestCreate_VanishedVendorDoesNotBlockSale(t *testing.T) {
	f := newFixture()

	ghost := id.New()
	p := f.addProduct(t, "G1", "200", "260", 1, &ghost)

	s, err := f.svc.Create(context.Background(), Request{
		Items:         []ItemRequest{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: PaymentCash,
	}, "cashier")
	if err != nil {
		t.Fatalf("sale must succeed even when the vendor is gone: %v", err)
	}
	if !s.TotalAmount.Equal(types.MustMoney("260")) {
		t.Errorf("total amount = %s, want 260", s.TotalAmount)
	}
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addProduct(t, "R1", "100", "150", 5, nil)

	if _, err := f.svc.Create(ctx, Request{
		Items:         nil,
		PaymentMethod: PaymentCash,
	}, "cashier"); !apperror.IsValidation(err) {
		t.Errorf("expected validation error for empty items, got %v", err)
	}

	if _, err := f.svc.Create(ctx, Request{
		Items:         []ItemRequest{{ProductID: p.ID, Quantity: 0}},
		PaymentMethod: PaymentCash,
	}, "cashier"); !apperror.IsValidation(err) {
		t.Errorf("expected validation error for zero quantity, got %v", err)
	}

	if _, err := f.svc.Create(ctx, Request{
		Items:         []ItemRequest{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: "CRYPTO",
	}, "cashier"); !apperror.IsValidation(err) {
		t.Errorf("expected validation error for bad payment method, got %v", err)
	}
}

func TestDelete_RefundsStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "R1", "100", "150", 5, nil)

	s, err := f.svc.Create(ctx, Request{
		Items:         []ItemRequest{{ProductID: p.ID, Quantity: 2}},
		PaymentMethod: PaymentCash,
	}, "cashier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.QuantityInStock != 3 {
		t.Fatalf("stock after sale = %d, want 3", p.QuantityInStock)
	}

	if err := f.svc.Delete(ctx, s.ID, "manager"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.QuantityInStock != 5 {
		t.Errorf("stock after refund = %d, want 5", p.QuantityInStock)
	}
	if !s.IsDeleted {
		t.Error("sale must be marked deleted")
	}
	if s.DeletedBy == nil || *s.DeletedBy != "manager" {
		t.Error("DeletedBy must record who deleted")
	}

	var refunds int
	for _, m := range f.stock.mutations {
		if m.Reason == stockmutation.ReasonSaleRefund {
			refunds++
		}
	}
	if refunds != 1 {
		t.Errorf("expected 1 refund mutation, got %d", refunds)
	}
}

func TestDelete_DoesNotRestoreLiability(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	v, _ := f.vendors.FindOrCreate(ctx, "Ahmad Gold Workshop", nil)
	v.RecordIntakeLiability(types.MustMoney("500"))
	p := f.addProduct(t, "G1", "200", "260", 1, &v.ID)

	s, err := f.svc.Create(ctx, Request{
		Items:         []ItemRequest{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: PaymentCash,
	}, "cashier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.TotalLiabilityBalance.Equal(types.MustMoney("300")) {
		t.Fatalf("balance after sale = %s, want 300", v.TotalLiabilityBalance)
	}

	if err := f.svc.Delete(ctx, s.ID, "manager"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Stock comes back, the write-off does not.
	if p.QuantityInStock != 1 {
		t.Errorf("stock after refund = %d, want 1", p.QuantityInStock)
	}
	if !v.TotalLiabilityBalance.Equal(types.MustMoney("300")) {
		t.Errorf("balance after refund = %s, want 300 (write-off stands)", v.TotalLiabilityBalance)
	}
}

func TestDelete_AlreadyDeleted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addProduct(t, "R1", "100", "150", 5, nil)
	s, err := f.svc.Create(ctx, Request{
		Items:         []ItemRequest{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: PaymentCash,
	}, "cashier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.svc.Delete(ctx, s.ID, "manager"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = f.svc.Delete(ctx, s.ID, "manager")
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeConflict {
		t.Errorf("expected Conflict for double delete, got %v", err)
	}
}
