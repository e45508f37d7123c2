package app

import (
	"testing"
	"time"

	"github.com/msorganics/organics/config"
	"github.com/msorganics/organics/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	a := NewApplication(config.LoadConfig(""))
	a.OverrideDB(db)
	a.checkSettings()
	return a
}

func seedContactMessage(t *testing.T, db *gorm.DB, age time.Duration) {
	t.Helper()
	msg := domain.ContactMessage{
		Name:      "Asha",
		Message:   "hello",
		CreatedAt: time.Now().Add(-age),
	}
	if err := db.Create(&msg).Error; err != nil {
		t.Fatalf("seed contact message: %v", err)
	}
}

func contactCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&domain.ContactMessage{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestPurgeContactMessagesDefaultRetention(t *testing.T) {
	a := newTestApplication(t)

	seedContactMessage(t, a.gormDB, 400*24*time.Hour)
	seedContactMessage(t, a.gormDB, 24*time.Hour)

	a.SchedPurgeContactMessages()

	if n := contactCount(t, a.gormDB); n != 1 {
		t.Fatalf("messages after purge = %d, want 1", n)
	}
	var remaining domain.ContactMessage
	if err := a.gormDB.First(&remaining).Error; err != nil {
		t.Fatalf("load remaining: %v", err)
	}
	if time.Since(remaining.CreatedAt) > 2*24*time.Hour {
		t.Fatalf("wrong message survived: created %v", remaining.CreatedAt)
	}
}

func TestPurgeContactMessagesConfiguredRetention(t *testing.T) {
	a := newTestApplication(t)

	err := a.gormDB.Model(&domain.SysConfig{}).
		Where("type = ? AND name = ?", "contact", "retention_days").
		Update("value", "30").Error
	if err != nil {
		t.Fatalf("set retention: %v", err)
	}

	seedContactMessage(t, a.gormDB, 40*24*time.Hour)
	seedContactMessage(t, a.gormDB, 20*24*time.Hour)

	a.SchedPurgeContactMessages()

	if n := contactCount(t, a.gormDB); n != 1 {
		t.Fatalf("messages after purge = %d, want 1", n)
	}
}

func TestInventorySnapshotLeavesDataUntouched(t *testing.T) {
	a := newTestApplication(t)

	img := domain.Image{Name: "a.jpg", SourceURL: "http://x/a.jpg"}
	if err := a.gormDB.Create(&img).Error; err != nil {
		t.Fatalf("seed image: %v", err)
	}
	p := domain.Product{Name: "Almonds", Description: "Raw", PricePerKg: 500, IsActive: true, FkIDImage: img.ID}
	if err := a.gormDB.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	b := domain.StockBatch{
		FkIDProduct:      p.ID,
		QuantityProduced: 100,
		StartDate:        time.Now().Add(-48 * time.Hour),
		EndDate:          time.Now().Add(-24 * time.Hour),
		BatchCode:        "SB1-TEST",
		IsActive:         true,
	}
	if err := a.gormDB.Create(&b).Error; err != nil {
		t.Fatalf("seed batch: %v", err)
	}

	// Read-only: the snapshot must not mutate anything.
	a.SchedInventorySnapshot()

	var products, batches int64
	a.gormDB.Model(&domain.Product{}).Count(&products)
	a.gormDB.Model(&domain.StockBatch{}).Count(&batches)
	if products != 1 || batches != 1 {
		t.Fatalf("products=%d batches=%d after snapshot", products, batches)
	}
}
