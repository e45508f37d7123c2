package app

import (
	"time"

	"github.com/msorganics/organics/internal/domain"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// ConfigManager reads tunables from the sys_config table.
type ConfigManager struct {
	app *Application
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{app: app}
}

func (m *ConfigManager) getValue(category, name string) string {
	var cfg domain.SysConfig
	err := m.app.gormDB.
		Where("type = ? AND name = ?", category, name).
		First(&cfg).Error
	if err != nil {
		return ""
	}
	return cfg.Value
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.getValue(category, name)
}

func (m *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(m.getValue(category, name))
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.getValue(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.getValue(category, name))
}

type settingSchema struct {
	Category    string
	Name        string
	Default     string
	Description string
}

var defaultSettings = []settingSchema{
	{"catalog", "default_page_size", "20", "Default page size for product listings"},
	{"contact", "retention_days", "365", "Days to keep contact messages before purging"},
	{"inventory", "snapshot_enabled", "true", "Emit the periodic inventory snapshot log"},
}

// checkSettings initializes missing sys_config entries with defaults.
func (a *Application) checkSettings() {
	for sort, schema := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? AND name = ?", schema.Category, schema.Name).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := a.gormDB.Create(&domain.SysConfig{
			Sort:      sort,
			Type:      schema.Category,
			Name:      schema.Name,
			Value:     schema.Default,
			Remark:    schema.Description,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default setting",
				zap.String("category", schema.Category),
				zap.String("name", schema.Name),
				zap.Error(err))
		} else {
			zap.L().Info("initialized setting",
				zap.String("category", schema.Category),
				zap.String("name", schema.Name),
				zap.String("default", schema.Default))
		}
	}
}
