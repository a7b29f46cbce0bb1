package handler

import (
	"net/http"
	"strconv"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// :idをint64に
func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// page/limitのクエリを読む（default 1/20）
func pageLimit(c echo.Context) (int, int, error) {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid page")
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = l
	}

	return page, limit, nil
}

// /pizzas /drinks のカタログAPI
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// 公開ルート（閲覧）を登録
func (h *CatalogHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.GET("/pizzas", h.listPizzas)
	e.GET("/pizzas/:id", h.getPizza)
	e.GET("/drinks", h.listDrinks)
	e.GET("/drinks/:id", h.getDrink)
}

// スタッフ専用ルート（編集）を登録
func (h *CatalogHandler) RegisterStaffRoutes(g *echo.Group) {
	g.POST("/pizzas", h.createPizza)
	g.PUT("/pizzas/:id", h.updatePizza)
	g.DELETE("/pizzas/:id", h.deletePizza)
	g.POST("/pizzas/:id/discount", h.applyPizzaDiscount)

	g.POST("/drinks", h.createDrink)
	g.PUT("/drinks/:id", h.updateDrink)
	g.DELETE("/drinks/:id", h.deleteDrink)
}

func (h *CatalogHandler) listPizzas(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ListPizzas(c.Request().Context(), usecase.ListInput{Page: page, Limit: limit})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) getPizza(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetPizza(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type pizzaRequest struct {
	Flavor    string          `json:"flavor"`
	Size      string          `json:"size"`
	BasePrice decimal.Decimal `json:"base_price"`
}

func (h *CatalogHandler) createPizza(c echo.Context) error {
	var req pizzaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	id, err := h.uc.CreatePizza(c.Request().Context(), usecase.PizzaInput{
		Flavor:    req.Flavor,
		Size:      model.PizzaSize(req.Size),
		BasePrice: req.BasePrice,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (h *CatalogHandler) updatePizza(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req pizzaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	if err := h.uc.UpdatePizza(c.Request().Context(), id, usecase.PizzaInput{
		Flavor:    req.Flavor,
		Size:      model.PizzaSize(req.Size),
		BasePrice: req.BasePrice,
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) deletePizza(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeletePizza(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type discountRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

// POST /staff/pizzas/:id/discount
func (h *CatalogHandler) applyPizzaDiscount(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req discountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	p, err := h.uc.ApplyPizzaDiscount(c.Request().Context(), id, req.Percent)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) listDrinks(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ListDrinks(c.Request().Context(), usecase.ListInput{Page: page, Limit: limit})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) getDrink(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	d, err := h.uc.GetDrink(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

type drinkRequest struct {
	Flavor string          `json:"flavor"`
	Size   string          `json:"size"`
	Price  decimal.Decimal `json:"price"`
}

func (h *CatalogHandler) createDrink(c echo.Context) error {
	var req drinkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	id, err := h.uc.CreateDrink(c.Request().Context(), usecase.DrinkInput{
		Flavor: req.Flavor,
		Size:   model.DrinkSize(req.Size),
		Price:  req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (h *CatalogHandler) updateDrink(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req drinkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	if err := h.uc.UpdateDrink(c.Request().Context(), id, usecase.DrinkInput{
		Flavor: req.Flavor,
		Size:   model.DrinkSize(req.Size),
		Price:  req.Price,
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) deleteDrink(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteDrink(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
