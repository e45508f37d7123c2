package app

import (
	"time"

	"github.com/msorganics/organics/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 1h", func() {
		a.SchedInventorySnapshot()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedPurgeContactMessages()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedInventorySnapshot logs a point-in-time summary of the catalog and
// batch tables. Read-only; useful for spotting drift in long-running
// deployments.
func (a *Application) SchedInventorySnapshot() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if !a.configManager.GetBool("inventory", "snapshot_enabled") {
		return
	}

	var activeProducts, activeBatches, expiredBatches int64
	a.gormDB.Model(&domain.Product{}).Where("is_active = ?", true).Count(&activeProducts)
	a.gormDB.Model(&domain.StockBatch{}).Where("is_active = ?", true).Count(&activeBatches)
	a.gormDB.Model(&domain.StockBatch{}).
		Where("is_active = ? AND end_date < ?", true, time.Now()).
		Count(&expiredBatches)

	zap.L().Info("inventory snapshot",
		zap.Int64("active_products", activeProducts),
		zap.Int64("active_batches", activeBatches),
		zap.Int64("expired_active_batches", expiredBatches))
}

// SchedPurgeContactMessages removes contact messages past retention.
func (a *Application) SchedPurgeContactMessages() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	idays := a.configManager.GetInt("contact", "retention_days")
	if idays == 0 {
		idays = 365
	}
	a.gormDB.
		Where("created_at < ?", time.Now().
			Add(-time.Hour*24*time.Duration(idays))).Delete(domain.ContactMessage{})
}
