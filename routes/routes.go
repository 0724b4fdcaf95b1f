package routes

import (
	"net/http"

	"horizon-hotel-backend/config"
	"horizon-hotel-backend/controllers"
	"horizon-hotel-backend/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Controllers bundles every handler group mounted by SetupRouter.
type Controllers struct {
	Guests       *controllers.GuestController
	Rooms        *controllers.RoomController
	Bookings     *controllers.BookingController
	Wallet       *controllers.WalletController
	Payments     *controllers.PaymentController
	Refunds      *controllers.RefundController
	FoodOrders   *controllers.FoodOrderController
	Housekeeping *controllers.HousekeepingController
	Finance      *controllers.FinanceController
}

func SetupRouter(settings *config.Settings, log *zap.Logger, ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	if len(settings.CORSOrigins) == 1 && settings.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = settings.CORSOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	guests := api.Group("/guests")
	{
		guests.POST("", ctl.Guests.Register)
		guests.GET("", ctl.Guests.GetGuests)
		guests.GET("/:guestId", ctl.Guests.GetGuest)
	}

	rooms := api.Group("/rooms")
	{
		rooms.POST("", ctl.Rooms.CreateRoom)
		rooms.GET("", ctl.Rooms.GetRooms)
		rooms.GET("/availability", ctl.Rooms.GetAvailability)
		rooms.GET("/:id", ctl.Rooms.GetRoom)
		rooms.PUT("/:id", ctl.Rooms.UpdateRoom)
		rooms.DELETE("/:id", ctl.Rooms.DeleteRoom)
	}

	bookings := api.Group("/bookings")
	{
		bookings.POST("", ctl.Bookings.CreateBooking)
		bookings.GET("", ctl.Bookings.GetBookings)
		bookings.GET("/statistics", ctl.Bookings.GetStatistics)
		bookings.GET("/guest/:guestId", ctl.Bookings.GetGuestBookings)
		bookings.GET("/:id", ctl.Bookings.GetBooking)
		bookings.PUT("/:id/room", ctl.Bookings.AssignRoom)
		bookings.PUT("/:id/status", ctl.Bookings.UpdateStatus)
		bookings.PUT("/:id/dates", ctl.Bookings.UpdateDates)
		bookings.POST("/:id/cancel", ctl.Bookings.CancelBooking)
		bookings.POST("/:id/payment", ctl.Payments.ChargeBooking)
		bookings.GET("/:id/payment", ctl.Payments.GetBookingPayment)
	}

	wallet := api.Group("/guests/:guestId/cards")
	{
		wallet.GET("", ctl.Wallet.GetCards)
		wallet.POST("", ctl.Wallet.AddCard)
		wallet.GET("/statistics", ctl.Wallet.GetStatistics)
		wallet.DELETE("/:cardId", ctl.Wallet.DeleteCard)
		wallet.PUT("/:cardId/holder-name", ctl.Wallet.UpdateHolderName)
		wallet.PUT("/:cardId/default", ctl.Wallet.SetDefaultCard)
	}

	refunds := api.Group("/refunds")
	{
		refunds.GET("", ctl.Refunds.GetRefunds)
		refunds.GET("/booking/:bookingId", ctl.Refunds.GetBookingRefund)
		refunds.GET("/:id", ctl.Refunds.GetRefund)
		refunds.POST("/:id/approve", ctl.Refunds.Approve)
		refunds.POST("/:id/reject", ctl.Refunds.Reject)
		refunds.POST("/:id/cancel", ctl.Refunds.CancelOverride)
	}

	menu := api.Group("/menu")
	{
		menu.GET("", ctl.FoodOrders.GetMenu)
		menu.POST("", ctl.FoodOrders.CreateMenuItem)
		menu.PUT("/:id/availability", ctl.FoodOrders.SetMenuItemAvailability)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", ctl.FoodOrders.PlaceOrder)
		orders.GET("/guest/:guestId", ctl.FoodOrders.GetGuestOrders)
		orders.GET("/:id", ctl.FoodOrders.GetOrder)
		orders.POST("/:id/payment", ctl.Payments.ChargeFoodOrder)
	}

	housekeeping := api.Group("/housekeeping")
	{
		housekeeping.POST("/tasks", ctl.Housekeeping.CreateTask)
		housekeeping.GET("/tasks", ctl.Housekeeping.GetTasks)
		housekeeping.GET("/summary", ctl.Housekeeping.GetSummary)
		housekeeping.PUT("/tasks/:id/status", ctl.Housekeeping.UpdateTaskStatus)
		housekeeping.DELETE("/tasks/:id", ctl.Housekeeping.DeleteTask)
	}

	finance := api.Group("/finance")
	{
		finance.GET("/summary", ctl.Finance.GetSummary)
		finance.GET("/transactions", ctl.Finance.GetTransactions)
		finance.GET("/cancelled-bookings", ctl.Finance.GetCancelledBookings)
	}

	return r
}
