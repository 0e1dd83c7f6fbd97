package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"flowershop-api/internal/config"
	"flowershop-api/internal/db"
	"flowershop-api/internal/httpserver"
	"flowershop-api/internal/notify"
	"flowershop-api/internal/promotoken"
	minimumrepo "flowershop-api/internal/repository/minimum"
	orderrepo "flowershop-api/internal/repository/order"
	promorepo "flowershop-api/internal/repository/promo"
	zonerepo "flowershop-api/internal/repository/zone"
	checkoutsvc "flowershop-api/internal/service/checkout"
	ordersvc "flowershop-api/internal/service/order"
	promosvc "flowershop-api/internal/service/promo"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var sender notify.Sender
	if cfg.SendGridAPIKey != "" {
		sender = notify.NewSendGrid(cfg.SendGridAPIKey, cfg.NotifyFromEmail, cfg.NotifyToEmail)
	} else {
		logger.Printf("no SENDGRID_API_KEY set, notifications go to the log")
		sender = &notify.LogSender{Logger: logger}
	}
	dispatcher := notify.NewDispatcher(sender, logger)
	defer dispatcher.Close()

	zoneRepo := zonerepo.NewPostgres(dbpool)
	minimumRepo := minimumrepo.NewPostgres(dbpool)
	promoRepo := promorepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)

	codec := promotoken.NewHMAC([]byte(cfg.PromoCookieSecret), cfg.PromoTokenTTL)
	promoService := promosvc.New(promoRepo, codec)
	orderService := ordersvc.New(orderRepo, dispatcher)
	checkoutService := checkoutsvc.New(minimumRepo, zoneRepo, promoService, orderService)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CheckoutSvc:  checkoutService,
		PromoSvc:     promoService,
		OrderSvc:     orderService,
		ZoneRepo:     zoneRepo,
		MinimumRepo:  minimumRepo,
		PromoRepo:    promoRepo,
		AdminToken:   cfg.AdminToken,
		CookieSecure: cfg.Production,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
