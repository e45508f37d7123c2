package restapi

import (
	"github.com/msorganics/organics/internal/app"
	"github.com/msorganics/organics/internal/catalog"
	"github.com/msorganics/organics/internal/inventory"
	"gorm.io/gorm"
)

var (
	appCtx       app.AppContext
	catalogSvc   *catalog.Service
	inventorySvc *inventory.Service
)

// Init wires the services and registers every API route. The webserver
// must already be initialized.
func Init(db *gorm.DB, actx app.AppContext) {
	appCtx = actx
	productRepo := catalog.NewGormRepository(db)
	catalogSvc = catalog.NewService(productRepo)
	inventorySvc = inventory.NewService(inventory.NewGormRepository(db), productRepo)

	registerProductRoutes()
	registerStockBatchRoutes()
	registerCartRoutes()
	registerOrderRoutes()
	registerContactRoutes()
}
