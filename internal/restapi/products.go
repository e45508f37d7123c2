package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/msorganics/organics/internal/catalog"
	"github.com/msorganics/organics/internal/webserver"
)

// registerProductRoutes registers the catalog endpoints
func registerProductRoutes() {
	webserver.ApiGET("/product/fetch-products", fetchProducts)
	webserver.ApiGET("/product/count", getProductsCount)
	webserver.ApiPOST("/product", createProduct)
	webserver.ApiPUT("/product/:id", updateProduct)
	webserver.ApiDELETE("/product/:id", deleteProduct)
}

// defaultPageSize reads the configured catalog page size, falling back
// when the setting is absent or zero.
func defaultPageSize() int {
	if n := appCtx.GetSettingsInt64Value("catalog", "default_page_size"); n > 0 {
		return int(n)
	}
	return 20
}

func fetchProducts(c echo.Context) error {
	term := c.QueryParam("q")
	limit := parseIntQuery(c, "limit", defaultPageSize())
	offset := parseIntQuery(c, "offset", 0)

	products, err := catalogSvc.Fetch(c.Request().Context(), term, limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Products fetched successfully", products)
}

func getProductsCount(c echo.Context) error {
	count, err := catalogSvc.Count(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Products count fetched successfully", map[string]interface{}{"count": count})
}

func createProduct(c echo.Context) error {
	var payload catalog.CreatePayload
	if err := c.Bind(&payload); err != nil {
		return failMsg(c, http.StatusBadRequest, "Unable to parse product parameters")
	}
	created, err := catalogSvc.Create(c.Request().Context(), payload)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Product created successfully", created)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return failMsg(c, http.StatusBadRequest, "Invalid product ID")
	}
	var payload catalog.UpdatePayload
	if err := c.Bind(&payload); err != nil {
		return failMsg(c, http.StatusBadRequest, "Unable to parse product parameters")
	}
	updated, err := catalogSvc.UpdateByID(c.Request().Context(), id, payload)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Product updated successfully", updated)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return failMsg(c, http.StatusBadRequest, "Invalid product ID")
	}
	deleted, err := catalogSvc.SoftDeleteByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Product deleted successfully", deleted)
}
