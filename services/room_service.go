package services

import (
	"errors"
	"fmt"
	"time"

	"horizon-hotel-backend/models"

	"gorm.io/gorm"
)

// RoomService owns room inventory and the availability overlap query that
// gates every booking decision.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// blocking statuses: a cancelled or checked-out booking frees its room.
var occupyingStatuses = []models.BookingStatus{
	models.BookingPending,
	models.BookingConfirmed,
	models.BookingCheckedIn,
}

// FindAvailable returns rooms free for the half-open range [checkIn, checkOut).
// A room conflicts iff an occupying booking satisfies
// b.check_in_date < checkOut AND b.check_out_date > checkIn; the strict
// inequalities allow same-day back-to-back turnover. roomType filters
// case-insensitively when non-empty.
func (s *RoomService) FindAvailable(checkIn, checkOut time.Time, roomType string) ([]models.Room, error) {
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}

	overlapping := s.DB.Model(&models.Booking{}).
		Select("1").
		Where("bookings.room_id = rooms.id").
		Where("bookings.deleted_at IS NULL").
		Where("bookings.status IN ?", occupyingStatuses).
		Where("bookings.check_in_date < ? AND bookings.check_out_date > ?", checkOut, checkIn)

	query := s.DB.Model(&models.Room{}).
		Where("is_available = ?", true).
		Where("NOT EXISTS (?)", overlapping)

	if roomType != "" {
		parsed, ok := models.ParseRoomType(roomType)
		if !ok {
			return nil, fmt.Errorf("%w: unknown room type %q", ErrValidation, roomType)
		}
		query = query.Where("type = ?", parsed)
	}

	var rooms []models.Room
	if err := query.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// isRoomFree re-checks a single room inside the caller's transaction. Used at
// assignment time, where the creation-time availability check may no longer
// hold. excludeBookingID keeps a booking from conflicting with itself on
// reassignment.
func (s *RoomService) isRoomFree(tx *gorm.DB, room *models.Room, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	if !room.IsAvailable {
		return false, nil
	}
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("room_id = ?", room.ID).
		Where("id <> ?", excludeBookingID).
		Where("status IN ?", occupyingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// NominalRate is the nightly rate used to price a room-type booking before a
// concrete room is assigned: the cheapest room of that type.
func (s *RoomService) NominalRate(roomType models.RoomType) (float64, error) {
	var room models.Room
	err := s.DB.Where("type = ?", roomType).Order("price").First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: no rooms of type %s", ErrNotFound, roomType)
	}
	if err != nil {
		return 0, err
	}
	return room.Price, nil
}

func (s *RoomService) Create(room *models.Room) error {
	if _, ok := models.ParseRoomType(string(room.Type)); !ok {
		return fmt.Errorf("%w: unknown room type %q", ErrValidation, room.Type)
	}
	return s.DB.Create(room).Error
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("room_number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	err := s.DB.First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: room %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) Update(room *models.Room) error {
	return s.DB.Model(&models.Room{}).Where("id = ?", room.ID).Updates(room).Error
}

func (s *RoomService) Delete(id uint) error {
	return s.DB.Delete(&models.Room{}, id).Error
}
