package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 配達見積もりと料金表のAPI
type ShippingHandler struct {
	uc *usecase.ShippingUsecase
}

// DI
func NewShippingHandler(uc *usecase.ShippingUsecase) *ShippingHandler {
	return &ShippingHandler{uc: uc}
}

// 認証済みユーザー向け（見積もり）
func (h *ShippingHandler) RegisterAuthRoutes(g *echo.Group) {
	g.GET("/shipping/cep/:cep", h.lookupCEP)
	g.GET("/shipping/route", h.quoteRoute)
	g.GET("/shipping/fee", h.quoteFee)
}

// スタッフ専用（料金表の管理）
func (h *ShippingHandler) RegisterStaffRoutes(g *echo.Group) {
	g.GET("/fee-tiers", h.listFeeTiers)
	g.POST("/fee-tiers", h.createFeeTier)
	g.PUT("/fee-tiers/:id", h.updateFeeTier)
	g.DELETE("/fee-tiers/:id", h.deleteFeeTier)
}

// GET /shipping/cep/:cep
func (h *ShippingHandler) lookupCEP(c echo.Context) error {
	out, err := h.uc.LookupCEP(c.Request().Context(), c.Param("cep"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /shipping/route?origin=&dest=
func (h *ShippingHandler) quoteRoute(c echo.Context) error {
	out, err := h.uc.QuoteRoute(c.Request().Context(), c.QueryParam("origin"), c.QueryParam("dest"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /shipping/fee?cep=
func (h *ShippingHandler) quoteFee(c echo.Context) error {
	out, err := h.uc.QuoteDeliveryFee(c.Request().Context(), c.QueryParam("cep"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type feeTierRequest struct {
	Label         string          `json:"label"`
	MaxDistanceKM decimal.Decimal `json:"max_distance_km"`
	Fee           decimal.Decimal `json:"fee"`
}

func (h *ShippingHandler) listFeeTiers(c echo.Context) error {
	out, err := h.uc.ListFeeTiers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShippingHandler) createFeeTier(c echo.Context) error {
	var req feeTierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	id, err := h.uc.CreateFeeTier(c.Request().Context(), usecase.FeeTierInput{
		Label:         req.Label,
		MaxDistanceKM: req.MaxDistanceKM,
		Fee:           req.Fee,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (h *ShippingHandler) updateFeeTier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req feeTierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	if err := h.uc.UpdateFeeTier(c.Request().Context(), id, usecase.FeeTierInput{
		Label:         req.Label,
		MaxDistanceKM: req.MaxDistanceKM,
		Fee:           req.Fee,
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ShippingHandler) deleteFeeTier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteFeeTier(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
