package inventory

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/msorganics/organics/internal/catalog"
	"github.com/msorganics/organics/internal/domain"
	"github.com/msorganics/organics/pkg/rest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *catalog.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Image{}, &domain.Product{}, &domain.StockBatch{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	productRepo := catalog.NewGormRepository(db)
	return NewService(NewGormRepository(db), productRepo), catalog.NewService(productRepo), db
}

func mustCreateProduct(t *testing.T, c *catalog.Service, name string) *domain.Product {
	t.Helper()
	p, err := c.Create(context.Background(), catalog.CreatePayload{
		Name:           name,
		Description:    "test " + name,
		ImageName:      name + ".jpg",
		ImageSourceURL: "http://x/" + name + ".jpg",
		PricePerKg:     100,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func mustCreateBatch(t *testing.T, s *Service, productID int64, start, end time.Time) *domain.StockBatch {
	t.Helper()
	b, err := s.Create(context.Background(), CreatePayload{
		FkIDProduct:      productID,
		QuantityProduced: 100,
		StartDate:        start,
		EndDate:          end,
		PricePerKg:       90,
	})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	return b
}

func asRestError(t *testing.T, err error) *rest.Error {
	t.Helper()
	var restErr *rest.Error
	if !errors.As(err, &restErr) {
		t.Fatalf("expected client error, got %v", err)
	}
	return restErr
}

func intPtr(n int) *int { return &n }

func i64Ptr(n int64) *int64 { return &n }

func f64Ptr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }

func TestCreateValidation(t *testing.T) {
	s, c, db := newTestService(t)
	ctx := context.Background()
	p := mustCreateProduct(t, c, "almonds")
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 10)

	// Unknown product.
	_, err := s.Create(ctx, CreatePayload{FkIDProduct: 999, QuantityProduced: 10, StartDate: start, EndDate: end})
	restErr := asRestError(t, err)
	if restErr.StatusCode != http.StatusBadRequest || restErr.Message != "Product not found" {
		t.Fatalf("unexpected error: %+v", restErr)
	}

	// Inactive product counts as not found.
	hidden := mustCreateProduct(t, c, "hidden")
	if _, err := c.SoftDeleteByID(ctx, hidden.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	_, err = s.Create(ctx, CreatePayload{FkIDProduct: hidden.ID, QuantityProduced: 10, StartDate: start, EndDate: end})
	if asRestError(t, err).Message != "Product not found" {
		t.Fatalf("unexpected error: %v", err)
	}

	// Quantity must be strictly positive.
	_, err = s.Create(ctx, CreatePayload{FkIDProduct: p.ID, QuantityProduced: 0, StartDate: start, EndDate: end})
	if asRestError(t, err).Message != "Quantity produced must be greater than 0" {
		t.Fatalf("unexpected error: %v", err)
	}

	// start >= end is rejected, including equality.
	_, err = s.Create(ctx, CreatePayload{FkIDProduct: p.ID, QuantityProduced: 10, StartDate: end, EndDate: start})
	if asRestError(t, err).Message != "Start date must be before end date" {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = s.Create(ctx, CreatePayload{FkIDProduct: p.ID, QuantityProduced: 10, StartDate: start, EndDate: start})
	if asRestError(t, err).Message != "Start date must be before end date" {
		t.Fatalf("unexpected error: %v", err)
	}

	var batches int64
	db.Model(&domain.StockBatch{}).Count(&batches)
	if batches != 0 {
		t.Fatalf("validation failures must not create batches, found %d", batches)
	}
}

func TestCreateDefaults(t *testing.T) {
	s, c, _ := newTestService(t)
	p := mustCreateProduct(t, c, "almonds")
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 10)

	b := mustCreateBatch(t, s, p.ID, start, end)
	if b.QuantityAllocated != 0 {
		t.Fatalf("quantity_allocated = %v, want 0", b.QuantityAllocated)
	}
	if !b.IsActive {
		t.Fatal("created batch must be active")
	}
	if b.BatchCode == "" {
		t.Fatal("batch code must not be empty")
	}
	if want := GenerateBatchCode(p.ID, start, end); b.BatchCode != want {
		t.Fatalf("batch code = %q, want %q", b.BatchCode, want)
	}
}

func TestFetchFilters(t *testing.T) {
	s, c, _ := newTestService(t)
	ctx := context.Background()
	p1 := mustCreateProduct(t, c, "almonds")
	p2 := mustCreateProduct(t, c, "walnuts")

	b1 := mustCreateBatch(t, s, p1.ID, date(2024, time.January, 1), date(2024, time.January, 10))
	b2 := mustCreateBatch(t, s, p1.ID, date(2024, time.February, 1), date(2024, time.February, 10))
	b3 := mustCreateBatch(t, s, p2.ID, date(2024, time.March, 1), date(2024, time.March, 10))

	// Deactivate one batch; default fetch hides it.
	if _, err := s.UpdateByID(ctx, b2.ID, UpdatePayload{IsActive: boolPtr(false)}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	res, err := s.Fetch(ctx, BatchFilter{}, nil, nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Batches) != 2 {
		t.Fatalf("default fetch returned %d batches, want 2", len(res.Batches))
	}

	// onlyActive=false drops the active filter entirely.
	res, err = s.Fetch(ctx, BatchFilter{OnlyActive: boolPtr(false)}, nil, nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Batches) != 3 {
		t.Fatalf("onlyActive=false returned %d batches, want 3", len(res.Batches))
	}

	// Product membership.
	res, err = s.Fetch(ctx, BatchFilter{ProductIDs: []int64{p2.ID}}, nil, nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Batches) != 1 || res.Batches[0].ID != b3.ID {
		t.Fatalf("productIds filter = %+v", res.Batches)
	}

	// Case-insensitive batch code substring.
	res, err = s.Fetch(ctx, BatchFilter{BatchCode: "sb"}, nil, nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Batches) != 2 {
		t.Fatalf("batchCode filter returned %d batches, want 2", len(res.Batches))
	}

	// Inclusive date range on start date: both bounds apply together.
	res, err = s.Fetch(ctx, BatchFilter{
		FromStartDate: timePtr(date(2024, time.January, 1)),
		ToStartDate:   timePtr(date(2024, time.January, 31)),
	}, nil, nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Batches) != 1 || res.Batches[0].ID != b1.ID {
		t.Fatalf("start date range = %+v", res.Batches)
	}

	// End date range.
	res, err = s.Fetch(ctx, BatchFilter{
		FromEndDate: timePtr(date(2024, time.March, 1)),
	}, nil, nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Batches) != 1 || res.Batches[0].ID != b3.ID {
		t.Fatalf("end date range = %+v", res.Batches)
	}
}

func TestFetchOrderedByEndDate(t *testing.T) {
	s, c, _ := newTestService(t)
	ctx := context.Background()
	p := mustCreateProduct(t, c, "almonds")

	// Created out of end-date order on purpose.
	mustCreateBatch(t, s, p.ID, date(2024, time.March, 1), date(2024, time.March, 10))
	mustCreateBatch(t, s, p.ID, date(2024, time.January, 1), date(2024, time.January, 10))
	mustCreateBatch(t, s, p.ID, date(2024, time.February, 1), date(2024, time.February, 10))

	res, err := s.Fetch(ctx, BatchFilter{}, nil, nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	for i := 1; i < len(res.Batches); i++ {
		if res.Batches[i].EndDate.Before(res.Batches[i-1].EndDate) {
			t.Fatal("batches must be ordered ascending by end date")
		}
	}
}

func TestFetchPagination(t *testing.T) {
	s, c, _ := newTestService(t)
	ctx := context.Background()
	p := mustCreateProduct(t, c, "almonds")

	for i := 0; i < 7; i++ {
		mustCreateBatch(t, s, p.ID,
			date(2024, time.January, 1+i), date(2024, time.February, 1+i))
	}

	res, err := s.Fetch(ctx, BatchFilter{}, intPtr(3), intPtr(0))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	pg := res.Pagination
	if len(res.Batches) > pg.Limit {
		t.Fatalf("returned %d batches for limit %d", len(res.Batches), pg.Limit)
	}
	if pg.TotalCount != 7 || pg.Limit != 3 || pg.Offset != 0 {
		t.Fatalf("pagination = %+v", pg)
	}
	if !pg.HasNextPage || pg.CurrentPage != 1 || pg.TotalPages != 3 {
		t.Fatalf("pagination = %+v", pg)
	}

	// Middle page.
	res, err = s.Fetch(ctx, BatchFilter{}, intPtr(3), intPtr(3))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if res.Pagination.CurrentPage != 2 || !res.Pagination.HasNextPage {
		t.Fatalf("pagination = %+v", res.Pagination)
	}

	// Last page has no next.
	res, err = s.Fetch(ctx, BatchFilter{}, intPtr(3), intPtr(6))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Batches) != 1 || res.Pagination.HasNextPage {
		t.Fatalf("last page = %d batches, pagination %+v", len(res.Batches), res.Pagination)
	}

	// Oversized limit clamps to the per-page maximum.
	res, err = s.Fetch(ctx, BatchFilter{}, intPtr(500), nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if res.Pagination.Limit != MaxLimitPerPage {
		t.Fatalf("limit = %d, want %d", res.Pagination.Limit, MaxLimitPerPage)
	}

	// Negative values fall back to the defaults.
	res, err = s.Fetch(ctx, BatchFilter{}, intPtr(-1), intPtr(-10))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if res.Pagination.Limit != MaxLimitPerPage || res.Pagination.Offset != 0 {
		t.Fatalf("pagination = %+v", res.Pagination)
	}
}

func TestUpdateByID(t *testing.T) {
	s, c, _ := newTestService(t)
	ctx := context.Background()
	p := mustCreateProduct(t, c, "almonds")
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 10)
	b := mustCreateBatch(t, s, p.ID, start, end)

	_, err := s.UpdateByID(ctx, 999, UpdatePayload{})
	if asRestError(t, err).Message != "Stock batch not found" {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = s.UpdateByID(ctx, b.ID, UpdatePayload{QuantityProduced: f64Ptr(-1)})
	if asRestError(t, err).Message != "Quantity produced must be greater than 0" {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = s.UpdateByID(ctx, b.ID, UpdatePayload{EndDate: timePtr(start.AddDate(0, 0, -1))})
	if asRestError(t, err).Message != "End date must be after start date" {
		t.Fatalf("unexpected error: %v", err)
	}

	// Partial update leaves the rest alone and never touches the code.
	newEnd := date(2024, time.June, 30)
	got, err := s.UpdateByID(ctx, b.ID, UpdatePayload{
		QuantityAllocated: f64Ptr(25),
		EndDate:           timePtr(newEnd),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.QuantityAllocated != 25 {
		t.Fatalf("quantity_allocated = %v", got.QuantityAllocated)
	}
	if got.QuantityProduced != 100 {
		t.Fatalf("quantity_produced mutated to %v", got.QuantityProduced)
	}
	if !got.EndDate.Equal(newEnd) {
		t.Fatalf("end_date = %v", got.EndDate)
	}
	if got.BatchCode != b.BatchCode {
		t.Fatalf("batch code regenerated: %q -> %q", b.BatchCode, got.BatchCode)
	}

	// Re-pointing the product reference.
	p2 := mustCreateProduct(t, c, "walnuts")
	got, err = s.UpdateByID(ctx, b.ID, UpdatePayload{FkIDProduct: i64Ptr(p2.ID)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.FkIDProduct != p2.ID {
		t.Fatalf("fk_id_product = %d", got.FkIDProduct)
	}

	// Inactive batches are out of reach.
	if _, err := s.UpdateByID(ctx, b.ID, UpdatePayload{IsActive: boolPtr(false)}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, err = s.UpdateByID(ctx, b.ID, UpdatePayload{QuantityAllocated: f64Ptr(1)})
	if asRestError(t, err).Message != "Stock batch not found" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteByID(t *testing.T) {
	s, c, db := newTestService(t)
	ctx := context.Background()
	p := mustCreateProduct(t, c, "almonds")
	b := mustCreateBatch(t, s, p.ID, date(2024, time.January, 1), date(2024, time.January, 10))

	id, err := s.DeleteByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if id != b.ID {
		t.Fatalf("deleted id = %d, want %d", id, b.ID)
	}

	// Hard delete: the row is gone.
	var count int64
	db.Model(&domain.StockBatch{}).Where("id = ?", b.ID).Count(&count)
	if count != 0 {
		t.Fatal("batch must be permanently removed")
	}

	_, err = s.DeleteByID(ctx, b.ID)
	if asRestError(t, err).Message != "Stock batch not found" {
		t.Fatalf("second delete must fail with client error, got %v", err)
	}
}

func TestProductBatchScenario(t *testing.T) {
	s, c, _ := newTestService(t)
	ctx := context.Background()

	p, err := c.Create(ctx, catalog.CreatePayload{
		Name:           "Almonds",
		Description:    "Raw almonds",
		ImageName:      "almonds.jpg",
		ImageSourceURL: "http://x/a.jpg",
		PricePerKg:     500,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if !p.IsActive {
		t.Fatal("created product must be active")
	}

	b, err := s.Create(ctx, CreatePayload{
		FkIDProduct:      p.ID,
		QuantityProduced: 100,
		StartDate:        date(2024, time.January, 1),
		EndDate:          date(2024, time.January, 10),
		PricePerKg:       480,
	})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if b.QuantityAllocated != 0 || b.BatchCode == "" {
		t.Fatalf("batch defaults wrong: %+v", b)
	}

	res, err := s.Fetch(ctx, BatchFilter{ProductIDs: []int64{p.ID}}, nil, nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(res.Batches) != 1 || res.Batches[0].ID != b.ID {
		t.Fatalf("fetch by product = %+v", res.Batches)
	}
}
