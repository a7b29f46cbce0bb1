package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/domain/pricing"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// ピザとドリンクのカタログ管理
type CatalogUsecase struct {
	pizzaRepo repo.PizzaRepository
	drinkRepo repo.DrinkRepository
}

// DI
func NewCatalogUsecase(pizzaRepo repo.PizzaRepository, drinkRepo repo.DrinkRepository) *CatalogUsecase {
	return &CatalogUsecase{
		pizzaRepo: pizzaRepo,
		drinkRepo: drinkRepo,
	}
}

type ListInput struct {
	Page  int
	Limit int
}

func (in ListInput) validate() error {
	if in.Page < 1 {
		return NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	return nil
}

type PizzaListOutput struct {
	Items []model.Pizza `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (u *CatalogUsecase) ListPizzas(ctx context.Context, in ListInput) (PizzaListOutput, error) {
	if err := in.validate(); err != nil {
		return PizzaListOutput{}, err
	}

	items, total, err := u.pizzaRepo.List(ctx, in.Page, in.Limit)
	if err != nil {
		return PizzaListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return PizzaListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *CatalogUsecase) GetPizza(ctx context.Context, pizzaID int64) (model.Pizza, error) {
	if pizzaID <= 0 {
		return model.Pizza{}, NewHTTPError(http.StatusBadRequest, "invalid pizza id")
	}

	p, err := u.pizzaRepo.FindByID(ctx, pizzaID)
	if err == repo.ErrNotFound {
		return model.Pizza{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Pizza{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type PizzaInput struct {
	Flavor    string
	Size      model.PizzaSize
	BasePrice decimal.Decimal
}

func (in PizzaInput) validate() error {
	if strings.TrimSpace(in.Flavor) == "" {
		return NewHTTPError(http.StatusBadRequest, "flavor required")
	}
	if !in.Size.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid size")
	}
	if in.BasePrice.IsNegative() || in.BasePrice.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "base_price must be > 0")
	}
	return nil
}

func (u *CatalogUsecase) CreatePizza(ctx context.Context, in PizzaInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	now := time.Now()
	id, err := u.pizzaRepo.Create(ctx, model.Pizza{
		Flavor:    strings.TrimSpace(in.Flavor),
		Size:      in.Size,
		BasePrice: in.BasePrice.Round(2),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *CatalogUsecase) UpdatePizza(ctx context.Context, pizzaID int64, in PizzaInput) error {
	if pizzaID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid pizza id")
	}
	if err := in.validate(); err != nil {
		return err
	}

	p, err := u.pizzaRepo.FindByID(ctx, pizzaID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//定価を変えたらセール価格は一旦リセット
	p.Flavor = strings.TrimSpace(in.Flavor)
	p.Size = in.Size
	if !p.BasePrice.Equal(in.BasePrice.Round(2)) {
		p.BasePrice = in.BasePrice.Round(2)
		p.PromoPrice = nil
		p.DiscountedAt = nil
	}
	p.UpdatedAt = time.Now()

	if err := u.pizzaRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) DeletePizza(ctx context.Context, pizzaID int64) error {
	if pizzaID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid pizza id")
	}

	err := u.pizzaRepo.Delete(ctx, pizzaID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ApplyPizzaDiscountは定価から指定%引きのセール価格を付ける。
// percentは0より大きく100未満
func (u *CatalogUsecase) ApplyPizzaDiscount(ctx context.Context, pizzaID int64, percent decimal.Decimal) (model.Pizza, error) {
	if pizzaID <= 0 {
		return model.Pizza{}, NewHTTPError(http.StatusBadRequest, "invalid pizza id")
	}
	if !percent.IsPositive() || percent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return model.Pizza{}, NewHTTPError(http.StatusBadRequest, "percent must be between 0 and 100")
	}

	p, err := u.pizzaRepo.FindByID(ctx, pizzaID)
	if err == repo.ErrNotFound {
		return model.Pizza{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Pizza{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	promo := pricing.DiscountedPrice(p.BasePrice, percent)
	now := time.Now()
	p.PromoPrice = &promo
	p.DiscountedAt = &now
	p.UpdatedAt = now

	if err := u.pizzaRepo.Update(ctx, p); err != nil {
		return model.Pizza{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type DrinkListOutput struct {
	Items []model.Drink `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (u *CatalogUsecase) ListDrinks(ctx context.Context, in ListInput) (DrinkListOutput, error) {
	if err := in.validate(); err != nil {
		return DrinkListOutput{}, err
	}

	items, total, err := u.drinkRepo.List(ctx, in.Page, in.Limit)
	if err != nil {
		return DrinkListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DrinkListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *CatalogUsecase) GetDrink(ctx context.Context, drinkID int64) (model.Drink, error) {
	if drinkID <= 0 {
		return model.Drink{}, NewHTTPError(http.StatusBadRequest, "invalid drink id")
	}

	d, err := u.drinkRepo.FindByID(ctx, drinkID)
	if err == repo.ErrNotFound {
		return model.Drink{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Drink{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return d, nil
}

type DrinkInput struct {
	Flavor string
	Size   model.DrinkSize
	Price  decimal.Decimal
}

func (in DrinkInput) validate() error {
	if strings.TrimSpace(in.Flavor) == "" {
		return NewHTTPError(http.StatusBadRequest, "flavor required")
	}
	if !in.Size.Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid size")
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	return nil
}

func (u *CatalogUsecase) CreateDrink(ctx context.Context, in DrinkInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	now := time.Now()
	id, err := u.drinkRepo.Create(ctx, model.Drink{
		Flavor:    strings.TrimSpace(in.Flavor),
		Size:      in.Size,
		Price:     in.Price.Round(2),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *CatalogUsecase) UpdateDrink(ctx context.Context, drinkID int64, in DrinkInput) error {
	if drinkID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid drink id")
	}
	if err := in.validate(); err != nil {
		return err
	}

	err := u.drinkRepo.Update(ctx, model.Drink{
		ID:        drinkID,
		Flavor:    strings.TrimSpace(in.Flavor),
		Size:      in.Size,
		Price:     in.Price.Round(2),
		UpdatedAt: time.Now(),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) DeleteDrink(ctx context.Context, drinkID int64) error {
	if drinkID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid drink id")
	}

	err := u.drinkRepo.Delete(ctx, drinkID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
