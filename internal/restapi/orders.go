package restapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/msorganics/organics/internal/domain"
	"github.com/msorganics/organics/internal/webserver"
	"gorm.io/gorm"
)

// registerOrderRoutes registers the order maintenance endpoints. Order
// placement itself lives outside this service.
func registerOrderRoutes() {
	webserver.ApiGET("/order/fetch", fetchOrders)
	webserver.ApiGET("/order/count", getOrdersCount)
	webserver.ApiGET("/order/details", fetchOrderDetails)
	webserver.ApiPUT("/order/confirm-customer/:orderUniqueId", confirmOrderByCustomer)
	webserver.ApiPUT("/order/confirm-admin/:orderUniqueId", confirmOrderByAdmin)
	webserver.ApiPUT("/order/cancel-admin/:orderUniqueId", cancelOrderByAdmin)
}

// applyOrderFilters narrows the order query by the optional search params.
func applyOrderFilters(c echo.Context, db *gorm.DB) (*gorm.DB, error) {
	if v := strings.TrimSpace(c.QueryParam("orderUniqueId")); v != "" {
		db = db.Where("order_unique_id = ?", v)
	}
	ciLike := func(db *gorm.DB, column, term string) *gorm.DB {
		if strings.EqualFold(db.Name(), "postgres") {
			return db.Where(column+" ILIKE ?", "%"+term+"%")
		}
		return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	if v := strings.TrimSpace(c.QueryParam("customerName")); v != "" {
		db = ciLike(db, "customer_name", v)
	}
	if v := strings.TrimSpace(c.QueryParam("customerEmail")); v != "" {
		db = ciLike(db, "customer_email", v)
	}
	if v := strings.TrimSpace(c.QueryParam("customerMobile")); v != "" {
		db = db.Where("customer_mobile LIKE ?", "%"+v+"%")
	}
	from, err := parseDateQuery(c, "deliveryDateFrom")
	if err != nil {
		return nil, err
	}
	if from != nil {
		db = db.Where("delivery_date >= ?", *from)
	}
	to, err := parseDateQuery(c, "deliveryDateTo")
	if err != nil {
		return nil, err
	}
	if to != nil {
		db = db.Where("delivery_date <= ?", *to)
	}
	return db, nil
}

func fetchOrders(c echo.Context) error {
	limit := parseIntQuery(c, "limit", 10)
	offset := parseIntQuery(c, "offset", 0)
	if limit < 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	db, err := applyOrderFilters(c, GetDB(c).Model(&domain.Order{}))
	if err != nil {
		return fail(c, err)
	}

	var orders []domain.Order
	if err := db.Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return fail(c, err)
	}
	return ok(c, "Orders fetched successfully", orders)
}

func getOrdersCount(c echo.Context) error {
	db, err := applyOrderFilters(c, GetDB(c).Model(&domain.Order{}))
	if err != nil {
		return fail(c, err)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, err)
	}
	return ok(c, "Orders count fetched successfully", map[string]interface{}{"count": total})
}

func fetchOrderDetails(c echo.Context) error {
	ids := parseIDList(c.QueryParam("orderIds"))
	uniqueIDs := parseStringList(c.QueryParam("orderUniqueIds"))
	if len(ids) == 0 && len(uniqueIDs) == 0 {
		return failMsg(c, http.StatusBadRequest, "orderIds or orderUniqueIds is required")
	}

	db := GetDB(c).Model(&domain.Order{})
	switch {
	case len(ids) > 0 && len(uniqueIDs) > 0:
		db = db.Where("id IN ? OR order_unique_id IN ?", ids, uniqueIDs)
	case len(ids) > 0:
		db = db.Where("id IN ?", ids)
	default:
		db = db.Where("order_unique_id IN ?", uniqueIDs)
	}

	var orders []domain.Order
	if err := db.Preload("Items").Preload("Items.Product").Find(&orders).Error; err != nil {
		return fail(c, err)
	}
	return ok(c, "Order details fetched successfully", orders)
}

// transitionOrder moves the order named in the path to next when its
// current status is in allowedFrom.
func transitionOrder(c echo.Context, allowedFrom []string, next, message string) error {
	uniqueID := strings.TrimSpace(c.Param("orderUniqueId"))
	if uniqueID == "" {
		return failMsg(c, http.StatusBadRequest, "orderUniqueId is required")
	}

	db := GetDB(c)
	var order domain.Order
	err := db.Where("order_unique_id = ?", uniqueID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failMsg(c, http.StatusBadRequest, "Order not found")
	} else if err != nil {
		return fail(c, err)
	}

	allowed := false
	for _, s := range allowedFrom {
		if order.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return failMsg(c, http.StatusBadRequest, "Order cannot be "+strings.ToLower(next)+" from status "+order.Status)
	}

	if err := db.Model(&order).Updates(map[string]interface{}{
		"status":     next,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return fail(c, err)
	}
	order.Status = next
	return ok(c, message, order)
}

func confirmOrderByCustomer(c echo.Context) error {
	return transitionOrder(c,
		[]string{domain.OrderStatusPlaced},
		domain.OrderStatusCustomerConfirmed,
		"Order confirmed by customer")
}

func confirmOrderByAdmin(c echo.Context) error {
	return transitionOrder(c,
		[]string{domain.OrderStatusCustomerConfirmed},
		domain.OrderStatusConfirmed,
		"Order confirmed by admin")
}

func cancelOrderByAdmin(c echo.Context) error {
	return transitionOrder(c,
		[]string{domain.OrderStatusPlaced, domain.OrderStatusCustomerConfirmed, domain.OrderStatusConfirmed},
		domain.OrderStatusCancelled,
		"Order cancelled by admin")
}
