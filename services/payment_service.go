package services

import (
	"errors"
	"fmt"
	"time"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentService authorizes and executes charges against wallet cards,
// producing immutable Payment records. Every guard runs before any mutation:
// a failed charge leaves no payment row and no balance change behind.
type PaymentService struct {
	DB     *gorm.DB
	Wallet *WalletService
}

func NewPaymentService(db *gorm.DB, wallet *WalletService) *PaymentService {
	return &PaymentService{DB: db, Wallet: wallet}
}

// ChargeBooking charges a wallet card for a pending booking. The caller
// transitions the booking to CONFIRMED once the payment succeeds.
func (s *PaymentService) ChargeBooking(bookingID uint, cardNumber string) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return err
		}
		if booking.Status != models.BookingPending {
			return fmt.Errorf("%w: only pending bookings can be charged (current: %s)", ErrInvalidState, booking.Status)
		}
		if err := s.ensureUnpaid(tx, bookingID); err != nil {
			return err
		}

		card, err := s.authorizeCard(tx, cardNumber, booking.GuestID, booking.TotalPrice)
		if err != nil {
			return err
		}
		if err := s.Wallet.DebitTx(tx, card.ID, booking.TotalPrice); err != nil {
			return err
		}

		payment = models.Payment{
			BookingID:         &booking.ID,
			Amount:            utils.Round2(booking.TotalPrice),
			Method:            models.PaymentMethodCard,
			Status:            models.PaymentSuccessful,
			TransactionDate:   time.Now().UTC(),
			PaymentIdentifier: card.CardNumber,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ChargeBookingCash records a cash payment. The synthetic identifier keeps
// refund lookups uniform across payment methods.
func (s *PaymentService) ChargeBookingCash(bookingID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking %d", ErrNotFound, bookingID)
			}
			return err
		}
		if booking.Status != models.BookingPending {
			return fmt.Errorf("%w: only pending bookings can be charged (current: %s)", ErrInvalidState, booking.Status)
		}
		if err := s.ensureUnpaid(tx, bookingID); err != nil {
			return err
		}

		payment = models.Payment{
			BookingID:         &booking.ID,
			Amount:            utils.Round2(booking.TotalPrice),
			Method:            models.PaymentMethodCash,
			Status:            models.PaymentSuccessful,
			TransactionDate:   time.Now().UTC(),
			PaymentIdentifier: fmt.Sprintf("CASH_%d", time.Now().UnixMilli()),
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ChargeFoodOrder charges a wallet card for a placed food order and marks the
// order paid in the same transaction.
func (s *PaymentService) ChargeFoodOrder(orderID uint, cardNumber string) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.FoodOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: food order %d", ErrNotFound, orderID)
			}
			return err
		}
		if order.Status != models.FoodOrderPlaced {
			return fmt.Errorf("%w: order already paid", ErrInvalidState)
		}

		card, err := s.authorizeCard(tx, cardNumber, order.GuestID, order.TotalPrice)
		if err != nil {
			return err
		}
		if err := s.Wallet.DebitTx(tx, card.ID, order.TotalPrice); err != nil {
			return err
		}

		payment = models.Payment{
			FoodOrderID:       &order.ID,
			Amount:            utils.Round2(order.TotalPrice),
			Method:            models.PaymentMethodCard,
			Status:            models.PaymentSuccessful,
			TransactionDate:   time.Now().UTC(),
			PaymentIdentifier: card.CardNumber,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&order).Update("status", models.FoodOrderPaid).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// authorizeCard runs every card guard without mutating anything: resolve,
// ownership, expiry, then balance.
func (s *PaymentService) authorizeCard(tx *gorm.DB, cardNumber string, ownerID uint, amount float64) (*models.HotelCard, error) {
	card, err := s.Wallet.findByCardNumberTx(tx, cardNumber)
	if err != nil {
		return nil, err
	}
	if card.GuestID != ownerID {
		return nil, fmt.Errorf("%w: this card does not belong to the paying guest", ErrForbidden)
	}
	if card.IsExpired(utils.Today()) {
		return nil, fmt.Errorf("%w: card expired on %s", ErrCardExpired, card.ExpiryDate.Format("2006-01-02"))
	}
	if card.Balance < amount {
		return nil, fmt.Errorf("%w: required $%.2f, available $%.2f", ErrInsufficientFunds, amount, card.Balance)
	}
	return card, nil
}

func (s *PaymentService) ensureUnpaid(tx *gorm.DB, bookingID uint) error {
	var count int64
	if err := tx.Model(&models.Payment{}).Where("booking_id = ?", bookingID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: booking %d is already paid", ErrInvalidState, bookingID)
	}
	return nil
}

// GetByBookingID returns the payment for a booking.
func (s *PaymentService) GetByBookingID(bookingID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.DB.Where("booking_id = ?", bookingID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: booking %d", ErrNoPayment, bookingID)
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// HasSuccessfulPayment reports whether money was actually taken for a booking.
func HasSuccessfulPayment(tx *gorm.DB, bookingID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Payment{}).
		Where("booking_id = ? AND status = ?", bookingID, models.PaymentSuccessful).
		Count(&count).Error
	return count > 0, err
}
