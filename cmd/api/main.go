package main

import (
	"log"

	"stylestore/internal/chat"
	"stylestore/internal/config"
	"stylestore/internal/domain/model"
	"stylestore/internal/handler"
	"stylestore/internal/infra/cache"
	"stylestore/internal/infra/db"
	infraRepo "stylestore/internal/infra/repository"
	"stylestore/internal/middleware"
	"stylestore/internal/server"
	"stylestore/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Size{},
		&model.Product{},
		&model.ProductSize{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Message{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Redis接続
	redisClient, err := db.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	productSizeRepo := infraRepo.NewProductSizeGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	sizeRepo := infraRepo.NewSizeGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	messageRepo := infraRepo.NewMessageGormRepository(gormDB)
	commentRepo := infraRepo.NewCommentGormRepository(gormDB)
	statsRepo := infraRepo.NewStatsGormRepository(gormDB)
	txManager := infraRepo.NewGormTransactionManager(gormDB)
	statsCache := cache.NewRedisCache(redisClient)

	//チャットHub
	hub := chat.NewHub()
	go hub.Run()
	defer hub.Stop()

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, txManager)
	userUC := usecase.NewUserUsecase(userRepo)
	productUC := usecase.NewProductUsecase(txManager, productRepo, productSizeRepo, categoryRepo, sizeRepo)
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, sizeRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, productSizeRepo, sizeRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, statsCache)
	commentUC := usecase.NewCommentUsecase(commentRepo, productRepo, userRepo)
	messageUC := usecase.NewMessageUsecase(messageRepo, userRepo, hub)
	statsUC := usecase.NewStatsUsecase(statsRepo, orderRepo, productRepo, userRepo, statsCache)

	//JWT検証（HTTPとwebsocketで共用）
	verifier := middleware.NewJWTVerifier(cfg.JWTSecret)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		Catalog:      handler.NewCatalogHandler(catalogUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		Comment:      handler.NewCommentHandler(commentUC),
		Profile:      handler.NewProfileHandler(userUC),
		Message:      handler.NewMessageHandler(messageUC),
		Chat:         handler.NewChatHandler(hub, verifier, messageUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		AdminCatalog: handler.NewAdminCatalogHandler(catalogUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:    handler.NewAdminUserHandler(userUC),
		AdminStats:   handler.NewAdminStatsHandler(statsUC),
	}

	e := server.New(cfg, verifier, handlers)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
