package handler

import (
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /orders のAPI
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// 認証済みユーザー向け
func (h *OrderHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/orders", h.create)
	g.GET("/orders", h.listMine)
	g.GET("/orders/:id", h.detail)
	g.PUT("/orders/:id", h.update)
	g.POST("/orders/:id/cancel", h.cancel)
}

// スタッフ専用
func (h *OrderHandler) RegisterStaffRoutes(g *echo.Group) {
	g.GET("/orders", h.listStaff)
	g.PATCH("/orders/:id/status", h.updateStatus)
	g.POST("/orders/:id/courier", h.assignCourier)
}

// JWTミドルウェアが入れた値からActorを組み立てる
func actorFromContext(c echo.Context) usecase.Actor {
	var actor usecase.Actor
	if v, ok := c.Get(middleware.CtxUserIDKey).(int64); ok {
		actor.UserID = v
	}
	if v, ok := c.Get(middleware.CtxUserRoleKey).(string); ok {
		actor.Role = model.Role(v)
	}
	return actor
}

type orderLineRequest struct {
	PizzaID  *int64 `json:"pizza_id"`
	DrinkID  *int64 `json:"drink_id"`
	Quantity int64  `json:"quantity"`
}

func toLineInputs(lines []orderLineRequest) []usecase.OrderLineInput {
	out := make([]usecase.OrderLineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, usecase.OrderLineInput{
			PizzaID:  l.PizzaID,
			DrinkID:  l.DrinkID,
			Quantity: l.Quantity,
		})
	}
	return out
}

type createOrderRequest struct {
	CustomerID      *int64             `json:"customer_id"`
	FulfillmentType string             `json:"fulfillment_type"`
	DeliveryAddress string             `json:"delivery_address"`
	DeliveryFee     *decimal.Decimal   `json:"delivery_fee"`
	CouponCode      string             `json:"coupon_code"`
	PaymentMethod   string             `json:"payment_method"`
	ChangeFor       *decimal.Decimal   `json:"change_for"`
	Notes           string             `json:"notes"`
	Items           []orderLineRequest `json:"items"`
}

// POST /orders
func (h *OrderHandler) create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), actorFromContext(c), usecase.CreateOrderInput{
		CustomerID:      req.CustomerID,
		FulfillmentType: model.FulfillmentType(req.FulfillmentType),
		DeliveryAddress: req.DeliveryAddress,
		DeliveryFee:     req.DeliveryFee,
		CouponCode:      req.CouponCode,
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
		ChangeFor:       req.ChangeFor,
		Notes:           req.Notes,
		Items:           toLineInputs(req.Items),
	})
	middleware.RecordOrderOperation("create", err == nil)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

type updateOrderRequest struct {
	Items           []orderLineRequest `json:"items"`
	CouponCode      *string            `json:"coupon_code"`
	FulfillmentType *string            `json:"fulfillment_type"`
	DeliveryAddress *string            `json:"delivery_address"`
	DeliveryFee     *decimal.Decimal   `json:"delivery_fee"`
	PaymentMethod   *string            `json:"payment_method"`
	ChangeFor       *decimal.Decimal   `json:"change_for"`
	Notes           *string            `json:"notes"`
}

// PUT /orders/:id
func (h *OrderHandler) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	in := usecase.UpdateOrderInput{
		CouponCode:      req.CouponCode,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryFee:     req.DeliveryFee,
		ChangeFor:       req.ChangeFor,
		Notes:           req.Notes,
	}
	if req.Items != nil {
		in.Items = toLineInputs(req.Items)
	}
	if req.FulfillmentType != nil {
		ft := model.FulfillmentType(*req.FulfillmentType)
		in.FulfillmentType = &ft
	}
	if req.PaymentMethod != nil {
		pm := model.PaymentMethod(*req.PaymentMethod)
		in.PaymentMethod = &pm
	}

	out, err := h.uc.UpdateOrder(c.Request().Context(), actorFromContext(c), id, in)
	middleware.RecordOrderOperation("update", err == nil)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /orders
func (h *OrderHandler) listMine(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), actorFromContext(c), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /orders/:id
func (h *OrderHandler) detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrderDetail(c.Request().Context(), actorFromContext(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /orders/:id/cancel
func (h *OrderHandler) cancel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Cancel(c.Request().Context(), actorFromContext(c), id)
	middleware.RecordOrderOperation("cancel", err == nil)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /staff/orders?status=&from=&to=
func (h *OrderHandler) listStaff(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}

	f := repo.StaffOrderListFilter{Page: page, Limit: limit}

	if v := c.QueryParam("status"); v != "" {
		f.Status = v
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from must be YYYY-MM-DD"})
		}
		f.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "to must be YYYY-MM-DD"})
		}
		//toは当日いっぱいまで
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}

	out, err := h.uc.ListStaff(c.Request().Context(), actorFromContext(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type statusRequest struct {
	Status string `json:"status"`
}

// PATCH /staff/orders/:id/status
func (h *OrderHandler) updateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), actorFromContext(c), id, model.OrderStatus(req.Status))
	middleware.RecordOrderOperation("status", err == nil)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type assignCourierRequest struct {
	CourierID int64 `json:"courier_id"`
}

// POST /staff/orders/:id/courier
func (h *OrderHandler) assignCourier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req assignCourierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}

	out, err := h.uc.AssignCourier(c.Request().Context(), actorFromContext(c), id, req.CourierID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
