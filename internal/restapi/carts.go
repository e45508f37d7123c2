package restapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/msorganics/organics/internal/domain"
	"github.com/msorganics/organics/internal/webserver"
	"github.com/msorganics/organics/pkg/common"
	"gorm.io/gorm"
)

type cartItemPayload struct {
	FkIDProduct int64   `json:"fk_id_product" validate:"required,gt=0"`
	QuantityKg  float64 `json:"quantity_kg" validate:"required,gt=0"`
}

type cartPayload struct {
	CustomerName   string            `json:"customer_name"`
	CustomerEmail  string            `json:"customer_email"`
	CustomerMobile string            `json:"customer_mobile"`
	Items          []cartItemPayload `json:"items" validate:"omitempty,dive"`
}

// registerCartRoutes registers the cart endpoints
func registerCartRoutes() {
	webserver.ApiPOST("/cart/create", createCart)
	webserver.ApiGET("/cart/fetch", fetchCart)
}

func createCart(c echo.Context) error {
	var payload cartPayload
	if err := c.Bind(&payload); err != nil {
		return failMsg(c, http.StatusBadRequest, "Unable to parse cart parameters")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	db := GetDB(c)

	// Every referenced product must be an active catalog entry.
	for _, item := range payload.Items {
		var count int64
		err := db.Model(&domain.Product{}).
			Where("id = ? AND is_active = ?", item.FkIDProduct, true).
			Count(&count).Error
		if err != nil {
			return fail(c, err)
		}
		if count == 0 {
			return failMsg(c, http.StatusBadRequest, "Product not found")
		}
	}

	cart := domain.Cart{
		ID:             common.UUIDint64(),
		CartUniqueID:   uuid.NewString(),
		CustomerName:   payload.CustomerName,
		CustomerEmail:  payload.CustomerEmail,
		CustomerMobile: payload.CustomerMobile,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	for _, item := range payload.Items {
		cart.Items = append(cart.Items, domain.CartItem{
			FkIDProduct: item.FkIDProduct,
			QuantityKg:  item.QuantityKg,
		})
	}

	if err := db.Create(&cart).Error; err != nil {
		return fail(c, err)
	}
	return ok(c, "Cart created successfully", cart)
}

func fetchCart(c echo.Context) error {
	uniqueID := strings.TrimSpace(c.QueryParam("cartUniqueId"))
	if uniqueID == "" {
		return failMsg(c, http.StatusBadRequest, "cartUniqueId is required")
	}

	var cart domain.Cart
	err := GetDB(c).
		Preload("Items").
		Preload("Items.Product").
		Where("cart_unique_id = ?", uniqueID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failMsg(c, http.StatusBadRequest, "Cart not found")
	} else if err != nil {
		return fail(c, err)
	}
	return ok(c, "Cart fetched successfully", cart)
}
