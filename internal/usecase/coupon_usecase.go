package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// クーポンの管理と照合
type CouponUsecase struct {
	couponRepo repo.CouponRepository
	clock      func() time.Time
}

// DI
func NewCouponUsecase(couponRepo repo.CouponRepository, clock func() time.Time) *CouponUsecase {
	if clock == nil {
		clock = time.Now
	}
	return &CouponUsecase{couponRepo: couponRepo, clock: clock}
}

type CouponInput struct {
	Code            string
	DiscountPercent decimal.Decimal
	ExpiresOn       time.Time
	Active          bool
}

// 作成と更新で共通の形式チェック
func (u *CouponUsecase) validateInput(in CouponInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return NewHTTPError(http.StatusBadRequest, "code required")
	}
	min := decimal.NewFromFloat(0.01)
	max := decimal.NewFromInt(100)
	if in.DiscountPercent.LessThan(min) || in.DiscountPercent.GreaterThan(max) {
		return NewHTTPError(http.StatusBadRequest, "discount_percent must be between 0.01 and 100.00")
	}
	if in.ExpiresOn.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "expires_on required")
	}
	return nil
}

func (u *CouponUsecase) Create(ctx context.Context, in CouponInput) (int64, error) {
	if err := u.validateInput(in); err != nil {
		return 0, err
	}

	//新規クーポンは過去日では作れない
	today := u.clock()
	if in.ExpiresOn.Before(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())) {
		return 0, NewHTTPError(http.StatusBadRequest, "expires_on must not be in the past")
	}

	code := strings.ToUpper(strings.TrimSpace(in.Code))

	used, err := u.couponRepo.ExistsByCode(ctx, code, 0)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if used {
		return 0, NewHTTPError(http.StatusConflict, "code already in use")
	}

	now := u.clock()
	id, err := u.couponRepo.Create(ctx, model.Coupon{
		Code:            code,
		DiscountPercent: in.DiscountPercent.Round(2),
		ExpiresOn:       in.ExpiresOn,
		Active:          in.Active,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *CouponUsecase) Update(ctx context.Context, couponID int64, in CouponInput) error {
	if couponID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid coupon id")
	}
	if err := u.validateInput(in); err != nil {
		return err
	}

	code := strings.ToUpper(strings.TrimSpace(in.Code))

	//自分以外で同じコードが使われていないか
	used, err := u.couponRepo.ExistsByCode(ctx, code, couponID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if used {
		return NewHTTPError(http.StatusConflict, "code already in use")
	}

	err = u.couponRepo.Update(ctx, model.Coupon{
		ID:              couponID,
		Code:            code,
		DiscountPercent: in.DiscountPercent.Round(2),
		ExpiresOn:       in.ExpiresOn,
		Active:          in.Active,
		UpdatedAt:       u.clock(),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type CouponListOutput struct {
	Items []model.Coupon `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (u *CouponUsecase) List(ctx context.Context, in ListInput) (CouponListOutput, error) {
	if err := in.validate(); err != nil {
		return CouponListOutput{}, err
	}

	items, total, err := u.couponRepo.List(ctx, in.Page, in.Limit)
	if err != nil {
		return CouponListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CouponListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *CouponUsecase) Get(ctx context.Context, couponID int64) (model.Coupon, error) {
	if couponID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid coupon id")
	}

	c, err := u.couponRepo.FindByID(ctx, couponID)
	if err == repo.ErrNotFound {
		return model.Coupon{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CouponUsecase) Delete(ctx context.Context, couponID int64) error {
	if couponID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid coupon id")
	}

	err := u.couponRepo.Delete(ctx, couponID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type CouponValidationOutput struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ExpiresOn       time.Time       `json:"expires_on"`
}

// Validateはコードのクーポンが今日使えるかを返す。
// 存在しなければ404、期限切れ・停止中は400
func (u *CouponUsecase) Validate(ctx context.Context, code string) (CouponValidationOutput, error) {
	if strings.TrimSpace(code) == "" {
		return CouponValidationOutput{}, NewHTTPError(http.StatusBadRequest, "code required")
	}

	c, err := u.couponRepo.FindByCode(ctx, strings.TrimSpace(code))
	if err == repo.ErrNotFound {
		return CouponValidationOutput{}, NewHTTPError(http.StatusNotFound, "coupon not found")
	}
	if err != nil {
		return CouponValidationOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !c.IsValid(u.clock()) {
		return CouponValidationOutput{}, NewHTTPError(http.StatusBadRequest, "coupon invalid or expired")
	}

	return CouponValidationOutput{
		Code:            c.Code,
		DiscountPercent: c.DiscountPercent,
		ExpiresOn:       c.ExpiresOn,
	}, nil
}
