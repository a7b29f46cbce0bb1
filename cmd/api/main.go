package main

import (
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/infra/shipping"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くても動く（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Employee{},
		&model.Courier{},
		&model.Pizza{},
		&model.Drink{},
		&model.Coupon{},
		&model.Order{},
		&model.OrderItem{},
		&model.DeliveryFeeTier{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	courierRepo := infraRepo.NewCourierGormRepository(gormDB)
	employeeRepo := infraRepo.NewEmployeeGormRepository(gormDB)
	pizzaRepo := infraRepo.NewPizzaGormRepository(gormDB)
	drinkRepo := infraRepo.NewDrinkGormRepository(gormDB)
	couponRepo := infraRepo.NewCouponGormRepository(gormDB)
	tierRepo := infraRepo.NewDeliveryFeeTierGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := newJWTIssuer(cfg.JWTSecret)

	//外部API（ViaCEP / OpenRouteService）
	cepClient := shipping.NewViaCEPClient(cfg.ExternalTimeout)
	orsClient := shipping.NewORSClient(cfg.ORSAPIKey, cfg.ExternalTimeout)

	//Usecase生成
	registerUC := auth.NewRegisterCustomerUsecase(txManager, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, customerRepo, verifier, issuer, clock)
	catalogUC := usecase.NewCatalogUsecase(pizzaRepo, drinkRepo)
	couponUC := usecase.NewCouponUsecase(couponRepo, time.Now)
	orderUC := usecase.NewOrderUsecase(txManager, customerRepo, courierRepo, employeeRepo, time.Now)
	staffUC := usecase.NewStaffUsecase(txManager, hasher, time.Now)
	shippingUC := usecase.NewShippingUsecase(cepClient, orsClient, tierRepo, cfg.StoreCEP)

	//Handler生成
	h := server.Handlers{
		Auth:     handler.NewAuthHandler(registerUC, loginUC),
		Catalog:  handler.NewCatalogHandler(catalogUC),
		Coupon:   handler.NewCouponHandler(couponUC),
		Order:    handler.NewOrderHandler(orderUC),
		Staff:    handler.NewStaffHandler(staffUC),
		Shipping: handler.NewShippingHandler(shippingUC),
	}

	//Server起動
	e := server.New(cfg, h)
	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
