package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/infra/shipping"
	repo "app/internal/repository"
	"app/internal/validator"

	"github.com/shopspring/decimal"
)

// CEPから住所を引く
type CEPClient interface {
	Lookup(ctx context.Context, cep string) (shipping.CEPAddress, error)
}

// 住所→座標と2点間のバイク経路
type RouteClient interface {
	Geocode(ctx context.Context, text string) (shipping.Coordinates, error)
	DirectionsMotorcycle(ctx context.Context, origin shipping.Coordinates, dest shipping.Coordinates) (shipping.Route, error)
}

// 配達可否・料金の見積もり
type ShippingUsecase struct {
	cep      CEPClient
	routes   RouteClient
	tierRepo repo.DeliveryFeeTierRepository

	//店舗のCEP。配達はここを起点に測る
	storeCEP string
}

// DI
func NewShippingUsecase(cep CEPClient, routes RouteClient, tierRepo repo.DeliveryFeeTierRepository, storeCEP string) *ShippingUsecase {
	return &ShippingUsecase{
		cep:      cep,
		routes:   routes,
		tierRepo: tierRepo,
		storeCEP: storeCEP,
	}
}

type CEPLookupOutput struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// LookupCEPは8桁CEPの住所を返す
func (u *ShippingUsecase) LookupCEP(ctx context.Context, cep string) (CEPLookupOutput, error) {
	cep = validator.NormalizeCEP(cep)
	if !validator.IsCEP(cep) {
		return CEPLookupOutput{}, NewHTTPError(http.StatusBadRequest, "cep must be 8 digits")
	}

	addr, err := u.cep.Lookup(ctx, cep)
	if err != nil {
		return CEPLookupOutput{}, cepError(err)
	}

	return CEPLookupOutput{
		CEP:          addr.CEP,
		Street:       addr.Street,
		Complement:   addr.Complement,
		Neighborhood: addr.Neighborhood,
		City:         addr.City,
		State:        addr.State,
	}, nil
}

type RouteQuoteOutput struct {
	OriginCEP   string          `json:"origin_cep"`
	DestCEP     string          `json:"dest_cep"`
	DistanceKM  decimal.Decimal `json:"distance_km"`
	DurationMin decimal.Decimal `json:"duration_min"`
}

// QuoteRouteは2つのCEP間のバイク経路の距離(km)と時間(分)を返す。小数2桁
func (u *ShippingUsecase) QuoteRoute(ctx context.Context, originCEP string, destCEP string) (RouteQuoteOutput, error) {
	originCEP = validator.NormalizeCEP(originCEP)
	destCEP = validator.NormalizeCEP(destCEP)
	if !validator.IsCEP(originCEP) || !validator.IsCEP(destCEP) {
		return RouteQuoteOutput{}, NewHTTPError(http.StatusBadRequest, "cep must be 8 digits")
	}

	route, err := u.routeBetween(ctx, originCEP, destCEP)
	if err != nil {
		return RouteQuoteOutput{}, err
	}

	return RouteQuoteOutput{
		OriginCEP:   originCEP,
		DestCEP:     destCEP,
		DistanceKM:  decimal.NewFromFloat(route.DistanceMeters / 1000).Round(2),
		DurationMin: decimal.NewFromFloat(route.DurationSeconds / 60).Round(2),
	}, nil
}

type FeeQuoteOutput struct {
	DestCEP    string          `json:"dest_cep"`
	DistanceKM decimal.Decimal `json:"distance_km"`
	TierLabel  string          `json:"tier_label"`
	Fee        decimal.Decimal `json:"fee"`
}

// QuoteDeliveryFeeは店舗から宛先CEPまでの距離で料金表を引く。
// どの段階にも収まらない距離は配達対象外
func (u *ShippingUsecase) QuoteDeliveryFee(ctx context.Context, destCEP string) (FeeQuoteOutput, error) {
	destCEP = validator.NormalizeCEP(destCEP)
	if !validator.IsCEP(destCEP) {
		return FeeQuoteOutput{}, NewHTTPError(http.StatusBadRequest, "cep must be 8 digits")
	}

	route, err := u.routeBetween(ctx, u.storeCEP, destCEP)
	if err != nil {
		return FeeQuoteOutput{}, err
	}

	distanceKM := decimal.NewFromFloat(route.DistanceMeters / 1000).Round(2)

	tiers, err := u.tierRepo.ListOrdered(ctx)
	if err != nil {
		return FeeQuoteOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	tier, ok := PickFeeTier(tiers, distanceKM)
	if !ok {
		return FeeQuoteOutput{}, NewHTTPError(http.StatusUnprocessableEntity, "address outside the delivery area")
	}

	return FeeQuoteOutput{
		DestCEP:    destCEP,
		DistanceKM: distanceKM,
		TierLabel:  tier.Label,
		Fee:        tier.Fee,
	}, nil
}

// PickFeeTierは昇順の料金表から距離が収まる最初の段階を返す
func PickFeeTier(tiers []model.DeliveryFeeTier, distanceKM decimal.Decimal) (model.DeliveryFeeTier, bool) {
	for _, t := range tiers {
		if distanceKM.LessThanOrEqual(t.MaxDistanceKM) {
			return t, true
		}
	}
	return model.DeliveryFeeTier{}, false
}

// CEP→住所→座標→経路の一連
func (u *ShippingUsecase) routeBetween(ctx context.Context, originCEP string, destCEP string) (shipping.Route, error) {
	origin, err := u.cep.Lookup(ctx, originCEP)
	if err != nil {
		return shipping.Route{}, cepError(err)
	}
	dest, err := u.cep.Lookup(ctx, destCEP)
	if err != nil {
		return shipping.Route{}, cepError(err)
	}

	originCoord, err := u.routes.Geocode(ctx, origin.FullText())
	if err != nil {
		return shipping.Route{}, geoError(err)
	}
	destCoord, err := u.routes.Geocode(ctx, dest.FullText())
	if err != nil {
		return shipping.Route{}, geoError(err)
	}

	route, err := u.routes.DirectionsMotorcycle(ctx, originCoord, destCoord)
	if err != nil {
		return shipping.Route{}, geoError(err)
	}
	return route, nil
}

func cepError(err error) error {
	if err == shipping.ErrCEPNotFound {
		return NewHTTPError(http.StatusNotFound, "cep not found")
	}
	return NewHTTPError(http.StatusBadGateway, "address service unavailable")
}

func geoError(err error) error {
	if err == shipping.ErrNoCoordinates {
		return NewHTTPError(http.StatusUnprocessableEntity, "could not resolve coordinates for address")
	}
	return NewHTTPError(http.StatusBadGateway, "routing service unavailable")
}

// ---- 料金表の管理（スタッフ向け） ----

type FeeTierInput struct {
	Label         string
	MaxDistanceKM decimal.Decimal
	Fee           decimal.Decimal
}

func (in FeeTierInput) validate() error {
	if strings.TrimSpace(in.Label) == "" {
		return NewHTTPError(http.StatusBadRequest, "label required")
	}
	if !in.MaxDistanceKM.IsPositive() {
		return NewHTTPError(http.StatusBadRequest, "max_distance_km must be > 0")
	}
	if in.Fee.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "fee must not be negative")
	}
	return nil
}

func (u *ShippingUsecase) ListFeeTiers(ctx context.Context) ([]model.DeliveryFeeTier, error) {
	tiers, err := u.tierRepo.ListOrdered(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return tiers, nil
}

func (u *ShippingUsecase) CreateFeeTier(ctx context.Context, in FeeTierInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}

	now := time.Now()
	id, err := u.tierRepo.Create(ctx, model.DeliveryFeeTier{
		Label:         strings.TrimSpace(in.Label),
		MaxDistanceKM: in.MaxDistanceKM.Round(2),
		Fee:           in.Fee.Round(2),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *ShippingUsecase) UpdateFeeTier(ctx context.Context, tierID int64, in FeeTierInput) error {
	if tierID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return err
	}

	err := u.tierRepo.Update(ctx, model.DeliveryFeeTier{
		ID:            tierID,
		Label:         strings.TrimSpace(in.Label),
		MaxDistanceKM: in.MaxDistanceKM.Round(2),
		Fee:           in.Fee.Round(2),
		UpdatedAt:     time.Now(),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ShippingUsecase) DeleteFeeTier(ctx context.Context, tierID int64) error {
	if tierID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.tierRepo.Delete(ctx, tierID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
