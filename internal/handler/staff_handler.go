package handler

import (
	"net/http"
	"time"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 従業員・配達員・顧客のスタッフ向け管理API
type StaffHandler struct {
	uc *usecase.StaffUsecase
}

// DI
func NewStaffHandler(uc *usecase.StaffUsecase) *StaffHandler {
	return &StaffHandler{uc: uc}
}

func (h *StaffHandler) RegisterStaffRoutes(g *echo.Group) {
	g.GET("/employees", h.listEmployees)
	g.GET("/employees/:id", h.getEmployee)
	g.POST("/employees", h.createEmployee)
	g.PUT("/employees/:id", h.updateEmployee)
	g.DELETE("/employees/:id", h.deleteEmployee)

	g.GET("/couriers", h.listCouriers)
	g.GET("/couriers/:id", h.getCourier)
	g.POST("/couriers", h.createCourier)
	g.PUT("/couriers/:id", h.updateCourier)
	g.DELETE("/couriers/:id", h.deleteCourier)

	g.GET("/customers", h.listCustomers)
	g.GET("/customers/:id", h.getCustomer)
	g.PUT("/customers/:id", h.updateCustomer)
	g.DELETE("/customers/:id", h.deleteCustomer)
}

type profileRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
	CPF       string `json:"cpf"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`

	Position string `json:"position"`

	MotorcycleDoc string `json:"motorcycle_doc"`
	PlateNumber   string `json:"plate_number"`
}

func (req profileRequest) toInput() (usecase.ProfileInput, error) {
	var birthDate time.Time
	if req.BirthDate != "" {
		d, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return usecase.ProfileInput{}, err
		}
		birthDate = d
	}
	return usecase.ProfileInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		BirthDate:     birthDate,
		CPF:           req.CPF,
		Address:       req.Address,
		Phone:         req.Phone,
		Position:      req.Position,
		MotorcycleDoc: req.MotorcycleDoc,
		PlateNumber:   req.PlateNumber,
	}, nil
}

func bindProfile(c echo.Context) (usecase.ProfileInput, bool) {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return usecase.ProfileInput{}, false
	}
	in, err := req.toInput()
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "birth_date must be YYYY-MM-DD"})
		return usecase.ProfileInput{}, false
	}
	return in, true
}

// ---- 従業員 ----

func (h *StaffHandler) listEmployees(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListEmployees(c.Request().Context(), usecase.ListInput{Page: page, Limit: limit})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) getEmployee(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	out, err := h.uc.GetEmployee(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) createEmployee(c echo.Context) error {
	in, ok := bindProfile(c)
	if !ok {
		return nil
	}
	out, err := h.uc.CreateEmployee(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *StaffHandler) updateEmployee(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	in, ok := bindProfile(c)
	if !ok {
		return nil
	}
	out, err := h.uc.UpdateEmployee(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) deleteEmployee(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.DeleteEmployee(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- 配達員 ----

func (h *StaffHandler) listCouriers(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListCouriers(c.Request().Context(), usecase.ListInput{Page: page, Limit: limit})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) getCourier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	out, err := h.uc.GetCourier(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) createCourier(c echo.Context) error {
	in, ok := bindProfile(c)
	if !ok {
		return nil
	}
	out, err := h.uc.CreateCourier(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *StaffHandler) updateCourier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	in, ok := bindProfile(c)
	if !ok {
		return nil
	}
	out, err := h.uc.UpdateCourier(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) deleteCourier(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.DeleteCourier(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- 顧客 ----

func (h *StaffHandler) listCustomers(c echo.Context) error {
	page, limit, err := pageLimit(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListCustomers(c.Request().Context(), usecase.ListInput{Page: page, Limit: limit})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) getCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	out, err := h.uc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) updateCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	in, ok := bindProfile(c)
	if !ok {
		return nil
	}
	out, err := h.uc.UpdateCustomer(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *StaffHandler) deleteCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.uc.DeleteCustomer(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
