package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"horizon-hotel-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func mysqlDSN(s *Settings) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		s.DBUser, s.DBPass, s.DBHost, s.DBPort, s.DBName,
	)
}

// ConnectDatabase opens the configured store, runs migrations and seeds
// baseline data. MySQL is the production driver; sqlite keeps local
// development and CI free of external services.
func ConnectDatabase(s *Settings) error {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	var (
		db  *gorm.DB
		err error
	)
	switch s.DBDriver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(s.SQLitePath), &gorm.Config{Logger: gormLogger})
	default:
		db, err = gorm.Open(mysql.Open(mysqlDSN(s)), &gorm.Config{Logger: gormLogger})
	}
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}

// Migrate applies the schema in parent-before-child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Guest{},
		&models.Room{},
		&models.Booking{},
		&models.HotelCard{},
		&models.MenuItem{},
		&models.FoodOrder{},
		&models.Payment{},
		&models.Refund{},
		&models.CleaningTask{},
	)
}

// SeedDatabase provisions rooms and a starter menu on first boot.
func SeedDatabase(db *gorm.DB) {
	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "101", Type: models.RoomTypeSingle, Price: 50.00, IsAvailable: true, Description: "Single room, garden view"},
			{RoomNumber: "102", Type: models.RoomTypeSingle, Price: 50.00, IsAvailable: true, Description: "Single room, garden view"},
			{RoomNumber: "201", Type: models.RoomTypeDouble, Price: 80.00, IsAvailable: true, Description: "Double room, city view"},
			{RoomNumber: "202", Type: models.RoomTypeDouble, Price: 80.00, IsAvailable: true, Description: "Double room, city view"},
			{RoomNumber: "204", Type: models.RoomTypeDouble, Price: 80.00, IsAvailable: true, Description: "Double room, corner"},
			{RoomNumber: "301", Type: models.RoomTypeSuite, Price: 150.00, IsAvailable: true, Description: "Suite with balcony"},
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	var menuCount int64
	db.Model(&models.MenuItem{}).Count(&menuCount)
	if menuCount == 0 {
		items := []models.MenuItem{
			{Name: "Club Sandwich", Category: "Mains", Price: 12.50, Available: true},
			{Name: "Caesar Salad", Category: "Starters", Price: 9.00, Available: true},
			{Name: "Margherita Pizza", Category: "Mains", Price: 14.00, Available: true},
			{Name: "Cheesecake", Category: "Desserts", Price: 7.50, Available: true},
		}
		if err := db.Create(&items).Error; err != nil {
			log.Printf("warning: failed to seed menu items: %v", err)
		} else {
			log.Println("Menu items seeded")
		}
	}
}
