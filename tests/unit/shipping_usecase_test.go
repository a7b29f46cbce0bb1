package unit

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	"app/internal/infra/shipping"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CEPClientMock struct{ mock.Mock }

func (m *CEPClientMock) Lookup(ctx context.Context, cep string) (shipping.CEPAddress, error) {
	args := m.Called(ctx, cep)
	a, _ := args.Get(0).(shipping.CEPAddress)
	return a, args.Error(1)
}

type RouteClientMock struct{ mock.Mock }

func (m *RouteClientMock) Geocode(ctx context.Context, text string) (shipping.Coordinates, error) {
	args := m.Called(ctx, text)
	c, _ := args.Get(0).(shipping.Coordinates)
	return c, args.Error(1)
}

func (m *RouteClientMock) DirectionsMotorcycle(ctx context.Context, origin shipping.Coordinates, dest shipping.Coordinates) (shipping.Route, error) {
	args := m.Called(ctx, origin, dest)
	r, _ := args.Get(0).(shipping.Route)
	return r, args.Error(1)
}

const storeCEP = "01310100"

func feeTiers() []model.DeliveryFeeTier {
	return []model.DeliveryFeeTier{
		{ID: 1, Label: "perto", MaxDistanceKM: dec("3.00"), Fee: dec("5.00")},
		{ID: 2, Label: "medio", MaxDistanceKM: dec("7.00"), Fee: dec("9.00")},
		{ID: 3, Label: "longe", MaxDistanceKM: dec("12.00"), Fee: dec("15.00")},
	}
}

func TestPickFeeTier_FirstMatchingTier(t *testing.T) {
	tier, ok := usecase.PickFeeTier(feeTiers(), dec("2.50"))
	assert.True(t, ok)
	assert.Equal(t, "perto", tier.Label)

	//境界ちょうどは含む
	tier, ok = usecase.PickFeeTier(feeTiers(), dec("7.00"))
	assert.True(t, ok)
	assert.Equal(t, "medio", tier.Label)

	tier, ok = usecase.PickFeeTier(feeTiers(), dec("7.01"))
	assert.True(t, ok)
	assert.Equal(t, "longe", tier.Label)
}

func TestPickFeeTier_OutOfRange(t *testing.T) {
	_, ok := usecase.PickFeeTier(feeTiers(), dec("12.01"))
	assert.False(t, ok)
}

func TestShippingUsecase_LookupCEP_InvalidFormat(t *testing.T) {
	uc := usecase.NewShippingUsecase(new(CEPClientMock), new(RouteClientMock), new(FeeTierRepoMock), storeCEP)

	_, err := uc.LookupCEP(context.Background(), "123")
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// ハイフン付きCEPも受ける
func TestShippingUsecase_LookupCEP_NormalizesHyphen(t *testing.T) {
	ctx := context.Background()
	cepClient := new(CEPClientMock)

	cepClient.On("Lookup", mock.Anything, "01310100").
		Return(shipping.CEPAddress{CEP: "01310-100", Street: "Avenida Paulista", City: "São Paulo", State: "SP"}, nil)

	uc := usecase.NewShippingUsecase(cepClient, new(RouteClientMock), new(FeeTierRepoMock), storeCEP)

	out, err := uc.LookupCEP(ctx, "01310-100")
	assert.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", out.Street)
	cepClient.AssertExpectations(t)
}

func TestShippingUsecase_LookupCEP_NotFound(t *testing.T) {
	ctx := context.Background()
	cepClient := new(CEPClientMock)

	cepClient.On("Lookup", mock.Anything, "99999999").
		Return(shipping.CEPAddress{}, shipping.ErrCEPNotFound)

	uc := usecase.NewShippingUsecase(cepClient, new(RouteClientMock), new(FeeTierRepoMock), storeCEP)

	_, err := uc.LookupCEP(ctx, "99999999")
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestShippingUsecase_QuoteDeliveryFee_PicksTier(t *testing.T) {
	ctx := context.Background()
	cepClient := new(CEPClientMock)
	routeClient := new(RouteClientMock)
	tierRepo := new(FeeTierRepoMock)

	storeAddr := shipping.CEPAddress{Street: "Avenida Paulista", City: "São Paulo", State: "SP"}
	destAddr := shipping.CEPAddress{Street: "Rua Augusta", City: "São Paulo", State: "SP"}

	cepClient.On("Lookup", mock.Anything, storeCEP).Return(storeAddr, nil)
	cepClient.On("Lookup", mock.Anything, "01410000").Return(destAddr, nil)

	origin := shipping.Coordinates{-46.656, -23.561}
	dest := shipping.Coordinates{-46.660, -23.553}
	routeClient.On("Geocode", mock.Anything, storeAddr.FullText()).Return(origin, nil)
	routeClient.On("Geocode", mock.Anything, destAddr.FullText()).Return(dest, nil)
	routeClient.On("DirectionsMotorcycle", mock.Anything, origin, dest).
		Return(shipping.Route{DistanceMeters: 4200, DurationSeconds: 780}, nil)

	tierRepo.On("ListOrdered", mock.Anything).Return(feeTiers(), nil)

	uc := usecase.NewShippingUsecase(cepClient, routeClient, tierRepo, storeCEP)

	out, err := uc.QuoteDeliveryFee(ctx, "01410-000")
	assert.NoError(t, err)
	assert.Equal(t, "4.20", out.DistanceKM.StringFixed(2))
	assert.Equal(t, "medio", out.TierLabel)
	assert.Equal(t, "9.00", out.Fee.StringFixed(2))
}

func TestShippingUsecase_QuoteDeliveryFee_OutsideArea(t *testing.T) {
	ctx := context.Background()
	cepClient := new(CEPClientMock)
	routeClient := new(RouteClientMock)
	tierRepo := new(FeeTierRepoMock)

	storeAddr := shipping.CEPAddress{Street: "Avenida Paulista", City: "São Paulo", State: "SP"}
	destAddr := shipping.CEPAddress{Street: "Estrada Velha", City: "Campinas", State: "SP"}

	cepClient.On("Lookup", mock.Anything, storeCEP).Return(storeAddr, nil)
	cepClient.On("Lookup", mock.Anything, "13010000").Return(destAddr, nil)

	origin := shipping.Coordinates{-46.656, -23.561}
	dest := shipping.Coordinates{-47.057, -22.905}
	routeClient.On("Geocode", mock.Anything, storeAddr.FullText()).Return(origin, nil)
	routeClient.On("Geocode", mock.Anything, destAddr.FullText()).Return(dest, nil)
	routeClient.On("DirectionsMotorcycle", mock.Anything, origin, dest).
		Return(shipping.Route{DistanceMeters: 95000, DurationSeconds: 5400}, nil)

	tierRepo.On("ListOrdered", mock.Anything).Return(feeTiers(), nil)

	uc := usecase.NewShippingUsecase(cepClient, routeClient, tierRepo, storeCEP)

	_, err := uc.QuoteDeliveryFee(ctx, "13010000")
	assertHTTPStatus(t, err, http.StatusUnprocessableEntity)
}

func TestShippingUsecase_QuoteRoute_RoundsToTwoDecimals(t *testing.T) {
	ctx := context.Background()
	cepClient := new(CEPClientMock)
	routeClient := new(RouteClientMock)

	a := shipping.CEPAddress{Street: "Rua A", City: "São Paulo", State: "SP"}
	b := shipping.CEPAddress{Street: "Rua B", City: "São Paulo", State: "SP"}

	cepClient.On("Lookup", mock.Anything, "01310100").Return(a, nil)
	cepClient.On("Lookup", mock.Anything, "01410000").Return(b, nil)

	ca := shipping.Coordinates{-46.656, -23.561}
	cb := shipping.Coordinates{-46.660, -23.553}
	routeClient.On("Geocode", mock.Anything, a.FullText()).Return(ca, nil)
	routeClient.On("Geocode", mock.Anything, b.FullText()).Return(cb, nil)
	routeClient.On("DirectionsMotorcycle", mock.Anything, ca, cb).
		Return(shipping.Route{DistanceMeters: 1234.5, DurationSeconds: 333}, nil)

	uc := usecase.NewShippingUsecase(cepClient, routeClient, new(FeeTierRepoMock), storeCEP)

	out, err := uc.QuoteRoute(ctx, "01310-100", "01410-000")
	assert.NoError(t, err)
	assert.Equal(t, "1.23", out.DistanceKM.StringFixed(2))
	assert.Equal(t, "5.55", out.DurationMin.StringFixed(2))
}

func TestShippingUsecase_QuoteDeliveryFee_GeocodeMiss(t *testing.T) {
	ctx := context.Background()
	cepClient := new(CEPClientMock)
	routeClient := new(RouteClientMock)

	storeAddr := shipping.CEPAddress{Street: "Avenida Paulista", City: "São Paulo", State: "SP"}
	destAddr := shipping.CEPAddress{Street: "Rua Sem Nome", City: "Nowhere", State: "SP"}

	cepClient.On("Lookup", mock.Anything, storeCEP).Return(storeAddr, nil)
	cepClient.On("Lookup", mock.Anything, "01410000").Return(destAddr, nil)

	routeClient.On("Geocode", mock.Anything, storeAddr.FullText()).Return(shipping.Coordinates{-46.656, -23.561}, nil)
	routeClient.On("Geocode", mock.Anything, destAddr.FullText()).Return(shipping.Coordinates{}, shipping.ErrNoCoordinates)

	uc := usecase.NewShippingUsecase(cepClient, routeClient, new(FeeTierRepoMock), storeCEP)

	_, err := uc.QuoteDeliveryFee(ctx, "01410000")
	assertHTTPStatus(t, err, http.StatusUnprocessableEntity)
}
