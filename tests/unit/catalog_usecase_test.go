package unit

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCatalogUsecase_ListPizzas_InvalidPage(t *testing.T) {
	uc := usecase.NewCatalogUsecase(new(PizzaRepoMock), new(DrinkRepoMock))

	_, err := uc.ListPizzas(context.Background(), usecase.ListInput{Page: 0, Limit: 20})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCatalogUsecase_ListPizzas_Success(t *testing.T) {
	ctx := context.Background()
	pizzaRepo := new(PizzaRepoMock)

	items := []model.Pizza{{ID: 1, Flavor: "Margherita", Size: model.PizzaSizeLarge, BasePrice: dec("50.00")}}
	pizzaRepo.On("List", mock.Anything, 1, 20).Return(items, int64(1), nil)

	uc := usecase.NewCatalogUsecase(pizzaRepo, new(DrinkRepoMock))

	out, err := uc.ListPizzas(ctx, usecase.ListInput{Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Items, 1)
}

func TestCatalogUsecase_CreatePizza_InvalidSize(t *testing.T) {
	uc := usecase.NewCatalogUsecase(new(PizzaRepoMock), new(DrinkRepoMock))

	_, err := uc.CreatePizza(context.Background(), usecase.PizzaInput{
		Flavor:    "Margherita",
		Size:      "HUGE",
		BasePrice: dec("50.00"),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCatalogUsecase_CreatePizza_ZeroPriceRejected(t *testing.T) {
	uc := usecase.NewCatalogUsecase(new(PizzaRepoMock), new(DrinkRepoMock))

	_, err := uc.CreatePizza(context.Background(), usecase.PizzaInput{
		Flavor:    "Margherita",
		Size:      model.PizzaSizeSmall,
		BasePrice: dec("0.00"),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// 定価変更でセール価格がリセットされる
func TestCatalogUsecase_UpdatePizza_BasePriceChangeResetsPromo(t *testing.T) {
	ctx := context.Background()
	pizzaRepo := new(PizzaRepoMock)

	promo := dec("36.00")
	now := fixedClock()
	pizzaRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Pizza{ID: 1, Flavor: "Calabresa", Size: model.PizzaSizeMedium, BasePrice: dec("45.00"), PromoPrice: &promo, DiscountedAt: &now}, nil)
	pizzaRepo.On("Update", mock.Anything, mock.MatchedBy(func(p model.Pizza) bool {
		return p.PromoPrice == nil && p.DiscountedAt == nil && p.BasePrice.StringFixed(2) == "55.00"
	})).Return(nil)

	uc := usecase.NewCatalogUsecase(pizzaRepo, new(DrinkRepoMock))

	err := uc.UpdatePizza(ctx, 1, usecase.PizzaInput{
		Flavor:    "Calabresa",
		Size:      model.PizzaSizeMedium,
		BasePrice: dec("55.00"),
	})
	assert.NoError(t, err)
	pizzaRepo.AssertExpectations(t)
}

func TestCatalogUsecase_ApplyPizzaDiscount(t *testing.T) {
	ctx := context.Background()
	pizzaRepo := new(PizzaRepoMock)

	pizzaRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Pizza{ID: 1, Flavor: "Margherita", Size: model.PizzaSizeLarge, BasePrice: dec("50.00")}, nil)
	pizzaRepo.On("Update", mock.Anything, mock.MatchedBy(func(p model.Pizza) bool {
		return p.PromoPrice != nil && p.PromoPrice.StringFixed(2) == "40.00"
	})).Return(nil)

	uc := usecase.NewCatalogUsecase(pizzaRepo, new(DrinkRepoMock))

	p, err := uc.ApplyPizzaDiscount(ctx, 1, dec("20.00"))
	assert.NoError(t, err)
	assert.Equal(t, "40.00", p.PromoPrice.StringFixed(2))
	assert.NotNil(t, p.DiscountedAt)
}

func TestCatalogUsecase_ApplyPizzaDiscount_PercentOutOfRange(t *testing.T) {
	uc := usecase.NewCatalogUsecase(new(PizzaRepoMock), new(DrinkRepoMock))

	_, err := uc.ApplyPizzaDiscount(context.Background(), 1, dec("0.00"))
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.ApplyPizzaDiscount(context.Background(), 1, dec("100.00"))
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCatalogUsecase_GetDrink_NotFound(t *testing.T) {
	ctx := context.Background()
	drinkRepo := new(DrinkRepoMock)

	drinkRepo.On("FindByID", mock.Anything, int64(9)).
		Return(model.Drink{}, repo.ErrNotFound)

	uc := usecase.NewCatalogUsecase(new(PizzaRepoMock), drinkRepo)

	_, err := uc.GetDrink(ctx, 9)
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCatalogUsecase_CreateDrink_InvalidSize(t *testing.T) {
	uc := usecase.NewCatalogUsecase(new(PizzaRepoMock), new(DrinkRepoMock))

	_, err := uc.CreateDrink(context.Background(), usecase.DrinkInput{
		Flavor: "Guarana",
		Size:   "3L",
		Price:  dec("12.00"),
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCatalogUsecase_DeletePizza_NotFound(t *testing.T) {
	ctx := context.Background()
	pizzaRepo := new(PizzaRepoMock)

	pizzaRepo.On("Delete", mock.Anything, int64(9)).Return(repo.ErrNotFound)

	uc := usecase.NewCatalogUsecase(pizzaRepo, new(DrinkRepoMock))

	err := uc.DeletePizza(ctx, 9)
	assertHTTPStatus(t, err, http.StatusNotFound)
}
