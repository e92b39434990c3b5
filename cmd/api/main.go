package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadp "friendloan-backend/internal/adapter/http"
	appmw "friendloan-backend/internal/adapter/middleware"
	"friendloan-backend/internal/adapter/repository/mysql"
	"friendloan-backend/internal/config"
	"friendloan-backend/internal/infrastructure/cache"
	"friendloan-backend/internal/infrastructure/db"
	"friendloan-backend/internal/usecase/access"
	"friendloan-backend/internal/usecase/activation"
	"friendloan-backend/internal/usecase/audit"
	"friendloan-backend/internal/usecase/funding"
	"friendloan-backend/internal/usecase/ledger"
	"friendloan-backend/internal/usecase/loan"
	"friendloan-backend/internal/usecase/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.MySQLDSN()); err != nil {
			log.Fatal(err)
		}
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}
	defer rdb.Close()

	u := mysql.NewGormUoW(gdb)
	runner := ledger.NewRunner(u, ledger.WithPublisher(cache.NewAuditPublisher(rdb, cfg.AuditChannel)))

	accessUC := access.NewUsecase(u, runner)
	if cfg.OwnerID != "" {
		reg, created, err := accessUC.Bootstrap(ctx, cfg.OwnerID, cfg.MaxNbPayments)
		if err != nil {
			log.Fatalf("bootstrap: %v", err)
		}
		if created {
			log.Printf("registry bootstrapped, owner %s", reg.Owner)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	httpadp.Register(e, httpadp.Handlers{
		Health:   httpadp.NewHandler(sqlDB),
		Registry: httpadp.NewRegistryHandler(accessUC),
		Loans:    httpadp.NewLoanHandler(loan.NewUsecase(u, runner), activation.NewUsecase(runner)),
		Funding:  httpadp.NewFundingHandler(funding.NewUsecase(u, runner)),
		Token:    httpadp.NewTokenHandler(token.NewUsecase(u, runner)),
		Audit:    httpadp.NewAuditHandler(audit.NewUsecase(u)),
	},
		appmw.Auth([]byte(cfg.JWTSecret)),
		appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	go func() {
		addr := ":" + cfg.AppPort
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
