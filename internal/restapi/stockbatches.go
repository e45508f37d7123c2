package restapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/msorganics/organics/internal/inventory"
	"github.com/msorganics/organics/internal/webserver"
)

// registerStockBatchRoutes registers the inventory batch endpoints
func registerStockBatchRoutes() {
	webserver.ApiGET("/stock-batch/fetch", fetchStockBatches)
	webserver.ApiPOST("/stock-batch", createStockBatch)
	webserver.ApiPUT("/stock-batch/:id", updateStockBatch)
	webserver.ApiDELETE("/stock-batch/:id", deleteStockBatch)
}

func fetchStockBatches(c echo.Context) error {
	filter := inventory.BatchFilter{
		BatchCode:  c.QueryParam("batchCode"),
		ProductIDs: parseIDList(c.QueryParam("productIds")),
	}

	var err error
	if filter.FromStartDate, err = parseDateQuery(c, "fromStartDate"); err != nil {
		return fail(c, err)
	}
	if filter.ToStartDate, err = parseDateQuery(c, "toStartDate"); err != nil {
		return fail(c, err)
	}
	if filter.FromEndDate, err = parseDateQuery(c, "fromEndDate"); err != nil {
		return fail(c, err)
	}
	if filter.ToEndDate, err = parseDateQuery(c, "toEndDate"); err != nil {
		return fail(c, err)
	}

	// Absent onlyActive defaults to true; anything except an explicit
	// "false" keeps the active-only filter.
	if v := c.QueryParam("onlyActive"); v != "" {
		onlyActive := !strings.EqualFold(v, "false")
		filter.OnlyActive = &onlyActive
	}

	result, err := inventorySvc.Fetch(c.Request().Context(), filter,
		parseOptionalInt(c, "limit"), parseOptionalInt(c, "offset"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Stock batches fetched successfully", result)
}

func createStockBatch(c echo.Context) error {
	var payload inventory.CreatePayload
	if err := c.Bind(&payload); err != nil {
		return failMsg(c, http.StatusBadRequest, "Unable to parse stock batch parameters")
	}
	created, err := inventorySvc.Create(c.Request().Context(), payload)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Stock batch created successfully", created)
}

func updateStockBatch(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return failMsg(c, http.StatusBadRequest, "Invalid stock batch ID")
	}
	var payload inventory.UpdatePayload
	if err := c.Bind(&payload); err != nil {
		return failMsg(c, http.StatusBadRequest, "Unable to parse stock batch parameters")
	}
	updated, err := inventorySvc.UpdateByID(c.Request().Context(), id, payload)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Stock batch updated successfully", updated)
}

func deleteStockBatch(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return failMsg(c, http.StatusBadRequest, "Invalid stock batch ID")
	}
	deletedID, err := inventorySvc.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Stock batch deleted successfully", map[string]interface{}{"id": deletedID})
}
