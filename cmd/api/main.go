package main

import (
	"fmt"
	"os"
	"time"

	"greenbasket/internal/config"
	"greenbasket/internal/domain/model"
	"greenbasket/internal/handler"
	"greenbasket/internal/infra/db"
	infraRepo "greenbasket/internal/infra/repository"
	"greenbasket/internal/notify"
	"greenbasket/internal/server"
	"greenbasket/internal/usecase"
	auth "greenbasket/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", userID),
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
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := config.NewLogger(cfg)

	conn, err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	if err := conn.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.Category{},
		&model.Product{},
		&model.CartItem{},
		&model.Coupon{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.DeliveryAssignment{},
		&model.WalletTransaction{},
		&model.Notification{},
	); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	// リポジトリ
	userRepo := infraRepo.NewUserGormRepository(conn)
	addressRepo := infraRepo.NewAddressGormRepository(conn)
	productRepo := infraRepo.NewProductGormRepository(conn)
	categoryRepo := infraRepo.NewCategoryGormRepository(conn)
	inventoryRepo := infraRepo.NewInventoryGormRepository(conn)
	cartItemRepo := infraRepo.NewCartItemGormRepository(conn)
	couponRepo := infraRepo.NewCouponGormRepository(conn)
	orderRepo := infraRepo.NewOrderGormRepository(conn)
	walletRepo := infraRepo.NewWalletGormRepository(conn)
	notificationRepo := infraRepo.NewNotificationGormRepository(conn)
	txManager := infraRepo.NewTxManagerGorm(conn)

	idGen := &uuidGenerator{}
	clock := &realClock{}
	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret), accessTTL: 15 * time.Minute}
	hasher := auth.NewBcryptPasswordHasher(0)
	verifier := auth.NewBcryptPasswordVerifier()

	dispatcher := notify.NewDispatcher(
		&notify.LogSMSSender{Log: log},
		&notify.LogEmailSender{Log: log},
		log,
		time.Duration(cfg.NotifyTimeoutSec)*time.Second,
	)

	// ユースケース
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, inventoryRepo)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, addressRepo, idGen)
	orderUC := usecase.NewOrderUsecase(txManager)
	statusUC := usecase.NewOrderStatusUsecase(txManager, dispatcher)
	paymentUC := usecase.NewPaymentUsecase(txManager, idGen, dispatcher)
	deliveryUC := usecase.NewDeliveryUsecase(txManager, dispatcher)
	walletUC := usecase.NewWalletUsecase(walletRepo)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	couponUC := usecase.NewCouponUsecase(couponRepo)
	statsUC := usecase.NewAdminStatsUsecase(orderRepo, productRepo)

	srv := server.New(cfg, log, server.Handlers{
		Auth:     handler.NewAuthHandler(registerUC, loginUC),
		Product:  handler.NewProductHandler(productUC),
		Cart:     handler.NewCartHandler(cartUC),
		Order:    handler.NewOrderHandler(checkoutUC, orderUC, statusUC),
		Payment:  handler.NewPaymentHandler(paymentUC),
		Delivery: handler.NewDeliveryHandler(deliveryUC),
		Wallet:   handler.NewWalletHandler(walletUC, notificationUC),
		Address:  handler.NewAddressHandler(addressUC),
		Admin:    handler.NewAdminHandler(productUC, couponUC, statsUC),
	})

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
