package services

import (
	"fmt"
	"testing"
	"time"

	"horizon-hotel-backend/config"
	"horizon-hotel-backend/models"
	"horizon-hotel-backend/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(t.TempDir()+"/hotel.db"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("sqlite open failed: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

type testEnv struct {
	db       *gorm.DB
	wallet   *WalletService
	rooms    *RoomService
	refunds  *RefundService
	bookings *BookingService
	payments *PaymentService
	guests   *GuestService
	orders   *FoodOrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	notifier := NewEmailNotifier(utils.SMTPConfig{}, nil)
	wallet := NewWalletService(db, false, 100.00, nil)
	rooms := NewRoomService(db)
	refunds := NewRefundService(db, wallet, notifier, nil)
	return &testEnv{
		db:       db,
		wallet:   wallet,
		rooms:    rooms,
		refunds:  refunds,
		bookings: NewBookingService(db, rooms, refunds, notifier, nil),
		payments: NewPaymentService(db, wallet),
		guests:   NewGuestService(db, wallet),
		orders:   NewFoodOrderService(db),
	}
}

var guestSeq int

// registerGuest creates a guest through the registration path so the default
// wallet card is seeded alongside.
func registerGuest(t *testing.T, env *testEnv, name string) *models.Guest {
	t.Helper()
	guestSeq++
	guest, err := env.guests.Register(RegisterGuestInput{
		FullName: name,
		Email:    fmt.Sprintf("guest%d@example.com", guestSeq),
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("register guest: %v", err)
	}
	return guest
}

func defaultCard(t *testing.T, env *testEnv, guestID uint) *models.HotelCard {
	t.Helper()
	var card models.HotelCard
	if err := env.db.Where("guest_id = ? AND is_default = ?", guestID, true).First(&card).Error; err != nil {
		t.Fatalf("load default card: %v", err)
	}
	return &card
}

func setCardBalance(t *testing.T, env *testEnv, cardID uint, balance float64) {
	t.Helper()
	if err := env.db.Model(&models.HotelCard{}).Where("id = ?", cardID).Update("balance", balance).Error; err != nil {
		t.Fatalf("set card balance: %v", err)
	}
}

func seedRoom(t *testing.T, env *testEnv, number string, roomType models.RoomType, price float64) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber:  number,
		Type:        roomType,
		Price:       price,
		IsAvailable: true,
	}
	if err := env.db.Create(room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return room
}

// day returns today plus the given offset at midnight UTC.
func day(offset int) time.Time {
	return utils.Today().AddDate(0, 0, offset)
}

func cardBalance(t *testing.T, env *testEnv, cardID uint) float64 {
	t.Helper()
	var card models.HotelCard
	if err := env.db.First(&card, cardID).Error; err != nil {
		t.Fatalf("load card: %v", err)
	}
	return card.Balance
}
