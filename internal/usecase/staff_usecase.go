package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	auth "app/internal/usecase/auth_usecase"
	"app/internal/validator"
)

// 従業員・配達員・顧客のスタッフ向け管理
type StaffUsecase struct {
	tx     repo.TransactionManager
	hasher auth.PasswordHasher
	clock  func() time.Time
}

// DI
func NewStaffUsecase(tx repo.TransactionManager, hasher auth.PasswordHasher, clock func() time.Time) *StaffUsecase {
	if clock == nil {
		clock = time.Now
	}
	return &StaffUsecase{tx: tx, hasher: hasher, clock: clock}
}

type ProfileInput struct {
	Name      string
	Email     string
	Password  string
	BirthDate time.Time
	CPF       string
	Address   string
	Phone     string

	//従業員のみ
	Position string

	//配達員のみ
	MotorcycleDoc string
	PlateNumber   string
}

// 共通の形式チェック。passwordは新規作成のときだけ見る
func (in ProfileInput) validate(withPassword bool) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if !validator.IsEmailLike(in.Email) {
		return NewHTTPError(http.StatusBadRequest, "invalid email format")
	}
	if !validator.IsCPF(in.CPF) {
		return NewHTTPError(http.StatusBadRequest, "cpf must be 11 digits")
	}
	if !validator.IsPhone(in.Phone) {
		return NewHTTPError(http.StatusBadRequest, "phone must be 10 or 11 digits")
	}
	if withPassword && len(in.Password) < 8 {
		return NewHTTPError(http.StatusBadRequest, "password too short")
	}
	return nil
}

// emailとCPFが既に使われていないか。excludeは更新時の自分自身
func checkProfileConflicts(ctx context.Context, r interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
}, email string, cpf string) error {
	used, err := r.ExistsByEmail(ctx, email)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if used {
		return NewHTTPError(http.StatusConflict, "email already exists")
	}
	used, err = r.ExistsByCPF(ctx, cpf)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if used {
		return NewHTTPError(http.StatusConflict, "cpf already exists")
	}
	return nil
}

// ログインUserを作る。emailの重複もここで弾く
func (u *StaffUsecase) createLoginUser(ctx context.Context, r repo.TxRepos, email string, password string, role model.Role) (int64, error) {
	existing, err := r.Users().FindByEmail(ctx, email)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing != nil {
		return 0, NewHTTPError(http.StatusConflict, "email already exists")
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := u.clock()
	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.Users().Create(ctx, user); err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user.ID, nil
}

// ---- 従業員 ----

func (u *StaffUsecase) CreateEmployee(ctx context.Context, in ProfileInput) (model.Employee, error) {
	if err := in.validate(true); err != nil {
		return model.Employee{}, err
	}
	if strings.TrimSpace(in.Position) == "" {
		return model.Employee{}, NewHTTPError(http.StatusBadRequest, "position required")
	}

	var out model.Employee

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := checkProfileConflicts(ctx, r.Employees(), in.Email, in.CPF); err != nil {
			return err
		}

		userID, err := u.createLoginUser(ctx, r, in.Email, in.Password, model.RoleStaff)
		if err != nil {
			return err
		}

		now := u.clock()
		e := model.Employee{
			UserID:    userID,
			Name:      strings.TrimSpace(in.Name),
			CPF:       in.CPF,
			Phone:     in.Phone,
			Email:     in.Email,
			Position:  strings.TrimSpace(in.Position),
			CreatedAt: now,
			UpdatedAt: now,
		}
		id, err := r.Employees().Create(ctx, e)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		e.ID = id
		out = e
		return nil
	})
	if err != nil {
		return model.Employee{}, err
	}
	return out, nil
}

func (u *StaffUsecase) UpdateEmployee(ctx context.Context, employeeID int64, in ProfileInput) (model.Employee, error) {
	if employeeID <= 0 {
		return model.Employee{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(false); err != nil {
		return model.Employee{}, err
	}

	var out model.Employee

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		e, err := r.Employees().FindByID(ctx, employeeID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		e.Name = strings.TrimSpace(in.Name)
		e.CPF = in.CPF
		e.Phone = in.Phone
		e.Email = in.Email
		if strings.TrimSpace(in.Position) != "" {
			e.Position = strings.TrimSpace(in.Position)
		}
		e.UpdatedAt = u.clock()

		if err := r.Employees().Update(ctx, e); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = e
		return nil
	})
	if err != nil {
		return model.Employee{}, err
	}
	return out, nil
}

type EmployeeListOutput struct {
	Items []model.Employee `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (u *StaffUsecase) ListEmployees(ctx context.Context, in ListInput) (EmployeeListOutput, error) {
	if err := in.validate(); err != nil {
		return EmployeeListOutput{}, err
	}

	var out EmployeeListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, total, err := r.Employees().List(ctx, in.Page, in.Limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = EmployeeListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}
		return nil
	})
	if err != nil {
		return EmployeeListOutput{}, err
	}
	return out, nil
}

func (u *StaffUsecase) GetEmployee(ctx context.Context, employeeID int64) (model.Employee, error) {
	if employeeID <= 0 {
		return model.Employee{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out model.Employee
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		e, err := r.Employees().FindByID(ctx, employeeID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = e
		return nil
	})
	if err != nil {
		return model.Employee{}, err
	}
	return out, nil
}

// DeleteEmployeeはプロフィールとログインUserを一緒に消す
func (u *StaffUsecase) DeleteEmployee(ctx context.Context, employeeID int64) error {
	if employeeID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		e, err := r.Employees().FindByID(ctx, employeeID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Employees().Delete(ctx, employeeID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Users().Delete(ctx, e.UserID); err != nil && err != repo.ErrUserNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// ---- 配達員 ----

func (u *StaffUsecase) CreateCourier(ctx context.Context, in ProfileInput) (model.Courier, error) {
	if err := in.validate(true); err != nil {
		return model.Courier{}, err
	}
	if strings.TrimSpace(in.MotorcycleDoc) == "" {
		return model.Courier{}, NewHTTPError(http.StatusBadRequest, "motorcycle_doc required")
	}

	var out model.Courier

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := checkProfileConflicts(ctx, r.Couriers(), in.Email, in.CPF); err != nil {
			return err
		}

		userID, err := u.createLoginUser(ctx, r, in.Email, in.Password, model.RoleCourier)
		if err != nil {
			return err
		}

		now := u.clock()
		c := model.Courier{
			UserID:        userID,
			Name:          strings.TrimSpace(in.Name),
			CPF:           in.CPF,
			BirthDate:     in.BirthDate,
			Phone:         in.Phone,
			Address:       in.Address,
			Email:         in.Email,
			MotorcycleDoc: strings.TrimSpace(in.MotorcycleDoc),
			PlateNumber:   strings.TrimSpace(in.PlateNumber),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		id, err := r.Couriers().Create(ctx, c)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		c.ID = id
		out = c
		return nil
	})
	if err != nil {
		return model.Courier{}, err
	}
	return out, nil
}

func (u *StaffUsecase) UpdateCourier(ctx context.Context, courierID int64, in ProfileInput) (model.Courier, error) {
	if courierID <= 0 {
		return model.Courier{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(false); err != nil {
		return model.Courier{}, err
	}

	var out model.Courier

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Couriers().FindByID(ctx, courierID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		c.Name = strings.TrimSpace(in.Name)
		c.CPF = in.CPF
		if !in.BirthDate.IsZero() {
			c.BirthDate = in.BirthDate
		}
		c.Phone = in.Phone
		c.Address = in.Address
		c.Email = in.Email
		if strings.TrimSpace(in.MotorcycleDoc) != "" {
			c.MotorcycleDoc = strings.TrimSpace(in.MotorcycleDoc)
		}
		if strings.TrimSpace(in.PlateNumber) != "" {
			c.PlateNumber = strings.TrimSpace(in.PlateNumber)
		}
		c.UpdatedAt = u.clock()

		if err := r.Couriers().Update(ctx, c); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = c
		return nil
	})
	if err != nil {
		return model.Courier{}, err
	}
	return out, nil
}

type CourierListOutput struct {
	Items []model.Courier `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *StaffUsecase) ListCouriers(ctx context.Context, in ListInput) (CourierListOutput, error) {
	if err := in.validate(); err != nil {
		return CourierListOutput{}, err
	}

	var out CourierListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, total, err := r.Couriers().List(ctx, in.Page, in.Limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = CourierListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}
		return nil
	})
	if err != nil {
		return CourierListOutput{}, err
	}
	return out, nil
}

func (u *StaffUsecase) GetCourier(ctx context.Context, courierID int64) (model.Courier, error) {
	if courierID <= 0 {
		return model.Courier{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out model.Courier
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Couriers().FindByID(ctx, courierID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = c
		return nil
	})
	if err != nil {
		return model.Courier{}, err
	}
	return out, nil
}

func (u *StaffUsecase) DeleteCourier(ctx context.Context, courierID int64) error {
	if courierID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Couriers().FindByID(ctx, courierID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Couriers().Delete(ctx, courierID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Users().Delete(ctx, c.UserID); err != nil && err != repo.ErrUserNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// ---- 顧客（スタッフ向け閲覧・修正） ----

type CustomerListOutput struct {
	Items []model.Customer `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (u *StaffUsecase) ListCustomers(ctx context.Context, in ListInput) (CustomerListOutput, error) {
	if err := in.validate(); err != nil {
		return CustomerListOutput{}, err
	}

	var out CustomerListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, total, err := r.Customers().List(ctx, in.Page, in.Limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = CustomerListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}
		return nil
	})
	if err != nil {
		return CustomerListOutput{}, err
	}
	return out, nil
}

func (u *StaffUsecase) GetCustomer(ctx context.Context, customerID int64) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out model.Customer
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Customers().FindByID(ctx, customerID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = c
		return nil
	})
	if err != nil {
		return model.Customer{}, err
	}
	return out, nil
}

func (u *StaffUsecase) UpdateCustomer(ctx context.Context, customerID int64, in ProfileInput) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(false); err != nil {
		return model.Customer{}, err
	}

	var out model.Customer

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Customers().FindByID(ctx, customerID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		c.Name = strings.TrimSpace(in.Name)
		c.CPF = in.CPF
		if !in.BirthDate.IsZero() {
			c.BirthDate = in.BirthDate
		}
		c.Address = in.Address
		c.Email = in.Email
		c.Phone = in.Phone
		c.UpdatedAt = u.clock()

		if err := r.Customers().Update(ctx, c); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = c
		return nil
	})
	if err != nil {
		return model.Customer{}, err
	}
	return out, nil
}

func (u *StaffUsecase) DeleteCustomer(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Customers().FindByID(ctx, customerID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Customers().Delete(ctx, customerID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Users().Delete(ctx, c.UserID); err != nil && err != repo.ErrUserNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
