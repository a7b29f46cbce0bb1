package unit

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCouponUsecase(couponRepo *CouponRepoMock) *usecase.CouponUsecase {
	return usecase.NewCouponUsecase(couponRepo, fixedClock)
}

func TestCouponUsecase_Create_NormalizesCode(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(CouponRepoMock)

	couponRepo.On("ExistsByCode", mock.Anything, "PIZZA10", int64(0)).Return(false, nil)
	couponRepo.On("Create", mock.Anything, mock.MatchedBy(func(c model.Coupon) bool {
		return c.Code == "PIZZA10"
	})).Return(int64(1), nil)

	uc := newCouponUsecase(couponRepo)

	id, err := uc.Create(ctx, usecase.CouponInput{
		Code:            "  pizza10 ",
		DiscountPercent: dec("10.00"),
		ExpiresOn:       fixedClock().AddDate(0, 1, 0),
		Active:          true,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)
	couponRepo.AssertExpectations(t)
}

func TestCouponUsecase_Create_DuplicateCodeConflict(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(CouponRepoMock)

	couponRepo.On("ExistsByCode", mock.Anything, "PIZZA10", int64(0)).Return(true, nil)

	uc := newCouponUsecase(couponRepo)

	_, err := uc.Create(ctx, usecase.CouponInput{
		Code:            "PIZZA10",
		DiscountPercent: dec("10.00"),
		ExpiresOn:       fixedClock().AddDate(0, 1, 0),
		Active:          true,
	})

	assertHTTPStatus(t, err, http.StatusConflict)
	couponRepo.AssertNotCalled(t, "Create")
}

func TestCouponUsecase_Create_PastExpiryRejected(t *testing.T) {
	uc := newCouponUsecase(new(CouponRepoMock))

	_, err := uc.Create(context.Background(), usecase.CouponInput{
		Code:            "OLD",
		DiscountPercent: dec("10.00"),
		ExpiresOn:       fixedClock().AddDate(0, 0, -1),
		Active:          true,
	})

	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCouponUsecase_Create_PercentOutOfRange(t *testing.T) {
	uc := newCouponUsecase(new(CouponRepoMock))

	_, err := uc.Create(context.Background(), usecase.CouponInput{
		Code:            "ZERO",
		DiscountPercent: dec("0.00"),
		ExpiresOn:       fixedClock().AddDate(0, 1, 0),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.Create(context.Background(), usecase.CouponInput{
		Code:            "TOOMUCH",
		DiscountPercent: dec("100.01"),
		ExpiresOn:       fixedClock().AddDate(0, 1, 0),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCouponUsecase_Validate_Success(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(CouponRepoMock)

	couponRepo.On("FindByCode", mock.Anything, "PIZZA10").
		Return(model.Coupon{
			ID:              1,
			Code:            "PIZZA10",
			DiscountPercent: dec("10.00"),
			ExpiresOn:       fixedClock(),
			Active:          true,
		}, nil)

	uc := newCouponUsecase(couponRepo)

	out, err := uc.Validate(ctx, "PIZZA10")
	assert.NoError(t, err)
	assert.Equal(t, "PIZZA10", out.Code)
	assert.Equal(t, "10.00", out.DiscountPercent.StringFixed(2))
}

func TestCouponUsecase_Validate_UnknownCode(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(CouponRepoMock)

	couponRepo.On("FindByCode", mock.Anything, "NOPE").
		Return(model.Coupon{}, repo.ErrNotFound)

	uc := newCouponUsecase(couponRepo)

	_, err := uc.Validate(ctx, "NOPE")
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCouponUsecase_Validate_Expired(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(CouponRepoMock)

	couponRepo.On("FindByCode", mock.Anything, "OLD").
		Return(model.Coupon{
			ID:              1,
			Code:            "OLD",
			DiscountPercent: dec("10.00"),
			ExpiresOn:       fixedClock().AddDate(0, 0, -1),
			Active:          true,
		}, nil)

	uc := newCouponUsecase(couponRepo)

	_, err := uc.Validate(ctx, "OLD")
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCouponUsecase_Update_DuplicateExcludesSelf(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(CouponRepoMock)

	//自分自身のコードはOK
	couponRepo.On("ExistsByCode", mock.Anything, "PIZZA10", int64(5)).Return(false, nil)
	couponRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := newCouponUsecase(couponRepo)

	err := uc.Update(ctx, 5, usecase.CouponInput{
		Code:            "PIZZA10",
		DiscountPercent: dec("15.00"),
		ExpiresOn:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:          true,
	})
	assert.NoError(t, err)
	couponRepo.AssertExpectations(t)
}
