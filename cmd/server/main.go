package main

import (
	"log"
	"os"
	"time"

	"checkout-service/internal/controllers/http"
	"checkout-service/internal/infra"
	mmysql "checkout-service/internal/infra/mysql"
	"checkout-service/internal/infra/rabbitmq"
	mysqlrepo "checkout-service/internal/repository/mysql"
	"checkout-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1000)
	sqlDB.SetMaxIdleConns(200)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	store := mysqlrepo.NewSettlementStore(db)

	paymentClient := infra.NewPaymentClient(
		os.Getenv("PAYMENT_API_URL"),
		os.Getenv("PAYMENT_API_KEY"),
		5*time.Second,
	)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "checkout.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     200,
		MinIdleConns: 20,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	// Pending-order snapshots outlive the intent creation request but not an
	// abandoned checkout.
	staging := infra.NewStagingStore(redisClient, 30*time.Minute)

	s := services.NewSettlementService(store, paymentClient, staging, publisher)

	handler := http.NewHandler(s)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting checkout service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
