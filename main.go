package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"horizon-hotel-backend/config"
	"horizon-hotel-backend/controllers"
	"horizon-hotel-backend/routes"
	"horizon-hotel-backend/services"
	"horizon-hotel-backend/utils"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	settings := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := config.ConnectDatabase(settings); err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	db := config.DB

	smtpConfig := utils.SMTPConfig{
		Host:     settings.SMTPHost,
		Port:     settings.SMTPPort,
		Username: settings.SMTPUsername,
		Password: settings.SMTPPassword,
		FromName: settings.SMTPFromName,
	}
	notifier := services.NewEmailNotifier(smtpConfig, log)

	walletService := services.NewWalletService(db, settings.WalletStrictValidation, settings.DefaultCardBalance, log)
	guestService := services.NewGuestService(db, walletService)
	roomService := services.NewRoomService(db)
	refundService := services.NewRefundService(db, walletService, notifier, log)
	bookingService := services.NewBookingService(db, roomService, refundService, notifier, log)
	paymentService := services.NewPaymentService(db, walletService)
	foodOrderService := services.NewFoodOrderService(db)
	housekeepingService := services.NewHousekeepingService(db)
	financeService := services.NewFinanceService(db)

	router := routes.SetupRouter(settings, log, routes.Controllers{
		Guests:       controllers.NewGuestController(guestService),
		Rooms:        controllers.NewRoomController(roomService),
		Bookings:     controllers.NewBookingController(bookingService),
		Wallet:       controllers.NewWalletController(walletService),
		Payments:     controllers.NewPaymentController(paymentService),
		Refunds:      controllers.NewRefundController(refundService),
		FoodOrders:   controllers.NewFoodOrderController(foodOrderService),
		Housekeeping: controllers.NewHousekeepingController(housekeepingService),
		Finance:      controllers.NewFinanceController(financeService),
	})

	srv := &http.Server{
		Addr:         ":" + settings.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
