package appcontext

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/RoyceAzure/lab/ecommerce/internal/config"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/producer"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/redis_decorator"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/token"
	"github.com/RoyceAzure/lab/ecommerce/internal/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf             *config.Config
	DbConn         *gorm.DB
	DbDao          db.Store
	RedisClient    *redis.Client
	StockCache     redis_repo.IProductStockCache
	OrderProducer  producer.IOrderEventProducer
	TokenMaker     token.Maker
	AuthService    service.IAuthService
	ProductService service.IProductService
	CartService    service.ICartService
	OrderService   service.IOrderService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}

	err := app.Init()
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpDbConn()
	if err != nil {
		return err
	}
	err = app.setUpDbDao()
	if err != nil {
		return err
	}
	err = app.setUpRedis()
	if err != nil {
		return err
	}
	err = app.setUpOrderProducer()
	if err != nil {
		return err
	}
	err = app.setUpTokenMaker()
	if err != nil {
		return err
	}
	err = app.setUpServices()
	if err != nil {
		return err
	}
	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpDbDao() error {
	log.Printf("Start setup database DAO")
	dao := db.NewUnifiedDB(app.DbConn)
	if err := dao.InitMigrate(); err != nil {
		return err
	}
	app.DbDao = dao
	log.Printf("Finish setup database DAO")
	return nil
}

// setUpRedis redis不可用時僅記錄，服務退化為純DB模式
func (app *ApplicationContext) setUpRedis() error {
	log.Printf("Start setup redis")
	client := redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPas,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, stock cache disabled: %v", err)
		app.RedisClient = nil
		app.StockCache = nil
		return nil
	}
	app.RedisClient = client
	app.StockCache = redis_repo.NewProductStockRepo(client)
	log.Printf("Finish setup redis")
	return nil
}

// setUpOrderProducer kafka未設定時不發送事件
func (app *ApplicationContext) setUpOrderProducer() error {
	if app.Cf.KafkaBrokers == "" {
		log.Printf("kafka brokers not configured, order events disabled")
		return nil
	}
	log.Printf("Start setup order event producer")
	brokers := strings.Split(app.Cf.KafkaBrokers, ",")
	app.OrderProducer = producer.NewOrderEventProducer(brokers, app.Cf.KafkaTopic)
	log.Printf("Finish setup order event producer")
	return nil
}

func (app *ApplicationContext) setUpTokenMaker() error {
	log.Printf("Start setup token maker")
	tokenMaker, err := token.NewJWTMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return fmt.Errorf("cannot create token maker: %w", err)
	}
	app.TokenMaker = tokenMaker
	log.Printf("Finish setup token maker")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	log.Printf("Start setup services")

	productRepo := db.IProductRepository(app.DbDao)
	if app.StockCache != nil {
		productRepo = redis_decorator.NewCacheAsideProductRepo(app.DbDao, app.StockCache)
	}

	app.AuthService = service.NewAuthService(app.DbDao, app.TokenMaker)
	app.ProductService = service.NewProductService(productRepo)
	app.CartService = service.NewCartService(app.DbDao, app.StockCache)
	app.OrderService = service.NewOrderService(app.DbDao, app.OrderProducer, app.StockCache)

	log.Printf("Finish setup services")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.OrderProducer != nil {
			log.Printf("Closing order event producer...")
			if err := app.OrderProducer.Close(); err != nil {
				//有錯誤不結束流程
				log.Printf("order event producer shutdown error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis connection...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis shutdown error: %v", err)
			}
		}

		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
