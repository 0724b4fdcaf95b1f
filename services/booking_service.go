package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService drives the booking lifecycle: creation, room assignment,
// status transitions, date edits and cancellation-triggered refunds. Every
// mutation runs in one transaction; notifications fire after commit and their
// failures never surface to the caller.
type BookingService struct {
	DB       *gorm.DB
	Rooms    *RoomService
	Refunds  *RefundService
	Notifier Notifier

	log *zap.Logger
}

func NewBookingService(db *gorm.DB, rooms *RoomService, refunds *RefundService, notifier Notifier, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{DB: db, Rooms: rooms, Refunds: refunds, Notifier: notifier, log: logger}
}

// CreateRoomTypeBooking books a room category, not a concrete room: the stay
// is priced off the type's nominal rate and room assignment is deferred to
// staff. The availability check here is best-effort; assignment re-validates.
func (s *BookingService) CreateRoomTypeBooking(guestID uint, roomType string, checkIn, checkOut time.Time, specialRequests string) (*models.Booking, error) {
	parsedType, ok := models.ParseRoomType(roomType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown room type %q", ErrValidation, roomType)
	}

	checkIn = utils.DateOnly(checkIn)
	checkOut = utils.DateOnly(checkOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}
	if checkIn.Before(utils.Today()) {
		return nil, fmt.Errorf("%w: check-in date cannot be in the past", ErrValidation)
	}

	var guest models.Guest
	if err := s.DB.First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: guest %d", ErrNotFound, guestID)
		}
		return nil, err
	}

	available, err := s.Rooms.FindAvailable(checkIn, checkOut, string(parsedType))
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("%w: no %s rooms free for the selected dates", ErrNoAvailability, parsedType)
	}

	rate, err := s.Rooms.NominalRate(parsedType)
	if err != nil {
		return nil, err
	}

	booking := models.Booking{
		GuestID:         guestID,
		RoomType:        parsedType,
		ReferenceCode:   "BK-" + strings.ToUpper(uuid.NewString()[:8]),
		Status:          models.BookingPending,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		SpecialRequests: strings.TrimSpace(specialRequests),
	}
	booking.TotalPrice = utils.Round2(rate * float64(booking.Nights()))

	if err := s.DB.Create(&booking).Error; err != nil {
		return nil, err
	}

	s.Notifier.NotifyBookingCreated(guest.Email, &booking)
	return &booking, nil
}

// AssignRoom binds a concrete room to a booking, or moves it to another room
// of the same type. Availability is re-validated under a row lock: the
// creation-time check may no longer hold.
func (s *BookingService) AssignRoom(bookingID, roomID uint) (*models.Booking, error) {
	var (
		booking         models.Booking
		room            models.Room
		guest           models.Guest
		firstAssignment bool
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return err
		}
		if booking.Status.IsTerminal() {
			return fmt.Errorf("%w: booking is %s", ErrInvalidState, booking.Status)
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %d", ErrNotFound, roomID)
			}
			return err
		}
		if room.Type != booking.RoomType {
			return fmt.Errorf("%w: booking is for a %s room, not %s", ErrValidation, booking.RoomType, room.Type)
		}

		free, err := s.Rooms.isRoomFree(tx, &room, booking.CheckInDate, booking.CheckOutDate, booking.ID)
		if err != nil {
			return err
		}
		if !free {
			return fmt.Errorf("%w: room %s is not free for the booking dates", ErrNoAvailability, room.RoomNumber)
		}

		firstAssignment = booking.RoomID == nil
		booking.RoomID = &room.ID
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		return tx.First(&guest, booking.GuestID).Error
	})
	if err != nil {
		return nil, err
	}

	if firstAssignment {
		s.Notifier.NotifyRoomAssigned(guest.Email, &booking, room.RoomNumber)
	}
	return &booking, nil
}

// TransitionStatus advances the booking state machine. CANCELLED routes
// through CancelBooking so the refund path is taken.
func (s *BookingService) TransitionStatus(bookingID uint, newStatus string) (*models.Booking, error) {
	target, ok := models.ParseBookingStatus(newStatus)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}
	if target == models.BookingCancelled {
		if err := s.CancelBooking(bookingID); err != nil {
			return nil, err
		}
		return s.GetByID(bookingID)
	}

	var (
		booking models.Booking
		guest   models.Guest
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return err
		}
		if booking.Status.IsTerminal() {
			return fmt.Errorf("%w: booking is %s", ErrInvalidState, booking.Status)
		}

		switch target {
		case models.BookingConfirmed:
			if booking.Status != models.BookingPending {
				return fmt.Errorf("%w: cannot confirm a %s booking", ErrInvalidState, booking.Status)
			}
			paid, err := HasSuccessfulPayment(tx, booking.ID)
			if err != nil {
				return err
			}
			if !paid {
				return fmt.Errorf("%w: booking %d", ErrNoPayment, booking.ID)
			}
		case models.BookingCheckedIn:
			if booking.Status != models.BookingConfirmed {
				return fmt.Errorf("%w: cannot check in a %s booking", ErrInvalidState, booking.Status)
			}
			if booking.RoomID == nil {
				return fmt.Errorf("%w: no room has been assigned yet", ErrInvalidState)
			}
		case models.BookingCheckedOut:
			if booking.Status != models.BookingCheckedIn {
				return fmt.Errorf("%w: cannot check out a %s booking", ErrInvalidState, booking.Status)
			}
		default:
			return fmt.Errorf("%w: cannot transition to %s", ErrInvalidState, target)
		}

		booking.Status = target
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		return tx.First(&guest, booking.GuestID).Error
	})
	if err != nil {
		return nil, err
	}

	if target == models.BookingConfirmed {
		s.Notifier.NotifyBookingConfirmed(guest.Email, &booking)
	} else {
		s.Notifier.NotifyStatusChanged(guest.Email, &booking)
	}
	return &booking, nil
}

// UpdateDates changes the stay range while the booking is still PENDING and
// reprices it: rate from the assigned room if present, else the type's
// nominal rate.
func (s *BookingService) UpdateDates(bookingID uint, checkIn, checkOut time.Time) (*models.Booking, error) {
	checkIn = utils.DateOnly(checkIn)
	checkOut = utils.DateOnly(checkOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidRange
	}

	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return err
		}
		if booking.Status != models.BookingPending {
			return fmt.Errorf("%w: only pending bookings can have their dates changed", ErrInvalidState)
		}

		var rate float64
		if booking.RoomID != nil {
			var room models.Room
			if err := tx.First(&room, *booking.RoomID).Error; err != nil {
				return err
			}
			rate = room.Price
		} else {
			var err error
			rate, err = s.Rooms.NominalRate(booking.RoomType)
			if err != nil {
				return err
			}
		}

		booking.CheckInDate = checkIn
		booking.CheckOutDate = checkOut
		booking.TotalPrice = utils.Round2(rate * float64(booking.Nights()))
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking cancels a pending or confirmed booking. The pre-cancellation
// status is captured under the row lock, inside the same transaction as the
// status write: a refund is owed only when the booking was CONFIRMED, i.e.
// payment had actually been taken. Refund-initiation and notification
// failures never roll the cancellation back.
func (s *BookingService) CancelBooking(bookingID uint) error {
	var (
		booking models.Booking
		guest   models.Guest
		refund  *models.Refund
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return err
		}
		switch booking.Status {
		case models.BookingCancelled:
			return fmt.Errorf("%w: booking is already cancelled", ErrInvalidState)
		case models.BookingCheckedIn:
			return fmt.Errorf("%w: cannot cancel a checked-in booking", ErrInvalidState)
		case models.BookingCheckedOut:
			return fmt.Errorf("%w: cannot cancel a checked-out booking", ErrInvalidState)
		}

		originalStatus := booking.Status

		booking.Status = models.BookingCancelled
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		if originalStatus == models.BookingConfirmed {
			created, err := s.Refunds.InitiateTx(tx, &booking, "Booking cancelled by guest.")
			if err != nil {
				// The cancellation stands even when refund creation
				// fails; finance reconciles from the log.
				s.log.Error("failed to initiate refund for cancelled booking",
					zap.Uint("booking_id", bookingID), zap.Error(err))
			} else {
				refund = created
			}
		}

		return tx.First(&guest, booking.GuestID).Error
	})
	if err != nil {
		return err
	}

	s.Notifier.NotifyBookingCancelled(guest.Email, &booking)
	if refund != nil {
		s.Notifier.NotifyRefundRequested(guest.Email, refund)
	}
	return nil
}

func (s *BookingService) GetByID(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Room").Preload("Guest").First(&booking, bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) GetAll() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Room").Preload("Guest").Order("check_in_date").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetByGuest(guestID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Room").Where("guest_id = ?", guestID).Order("check_in_date").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetByStatus(status models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Room").Preload("Guest").Where("status = ?", status).Find(&bookings).Error
	return bookings, err
}

// Search matches against the reference code and the guest's name.
func (s *BookingService) Search(term string) ([]models.Booking, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var bookings []models.Booking
	err := s.DB.Preload("Room").Preload("Guest").
		Joins("JOIN guests ON guests.id = bookings.guest_id").
		Where("LOWER(bookings.reference_code) LIKE ? OR LOWER(guests.full_name) LIKE ?", pattern, pattern).
		Find(&bookings).Error
	return bookings, err
}

// Statistics counts bookings per status for the dashboard.
func (s *BookingService) Statistics() (map[string]int64, error) {
	stats := map[string]int64{}
	for _, status := range []models.BookingStatus{
		models.BookingPending,
		models.BookingConfirmed,
		models.BookingCheckedIn,
		models.BookingCheckedOut,
		models.BookingCancelled,
	} {
		var count int64
		if err := s.DB.Model(&models.Booking{}).Where("status = ?", status).Count(&count).Error; err != nil {
			return nil, err
		}
		stats[strings.ToLower(string(status))+"Count"] = count
	}
	return stats, nil
}
