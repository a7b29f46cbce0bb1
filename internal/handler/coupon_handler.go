package handler

import (
	"net/http"
	"time"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /coupons のAPI
type CouponHandler struct {
	uc *usecase.CouponUsecase
}

// DI
func NewCouponHandler(uc *usecase.CouponUsecase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

// 認証済みユーザー向け（照合のみ）
func (h *CouponHandler) RegisterAuthRoutes(g *echo.Group) {
	g.GET("/coupons/validate", h.validate)
}

// スタッフ専用（管理）
func (h *CouponHandler) RegisterStaffRoutes(g *echo.Group) {
	g.GET("/coupons", h.list)
	g.GET("/coupons/:id", h.get)
	g.POST("/coupons", h.create)
	g.PUT("/coupons/:id", h.update)
	g.DELETE("/coupons/:id", h.delete)
}

type couponRequest struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ExpiresOn       string          `json:"expires_on"` // YYYY-MM-DD
	Active          bool            `json:"active"`
}

func (req couponRequest) toInput() (usecase.CouponInput, error) {
	var expiresOn time.Time
	if req.ExpiresOn != "" {
		d, err := time.Parse("2006-01-02", req.ExpiresOn)
		if err != nil {
			return usecase.CouponInput{}, err
		}
		expiresOn = d
	}
	return usecase.CouponInput{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		ExpiresOn:       expiresOn,
		Active:          req.Active,
	}, nil
}

func (h *CouponHandler) create(c echo.Context) error {
	var req couponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expires_on must be YYYY-MM-DD"})
	}

	id, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

func (h *CouponHandler) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req couponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expires_on must be YYYY-MM-DD"})
	}

	if err := h.uc.Update(c.Request().Context(), id, in); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CouponHandler) list(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListInput{Page: page, Limit: limit})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CouponHandler) get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CouponHandler) delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /coupons/validate?code=XXX
func (h *CouponHandler) validate(c echo.Context) error {
	out, err := h.uc.Validate(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
