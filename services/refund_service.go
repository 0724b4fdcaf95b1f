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

// RefundService computes refund amounts from the cancellation policy and, on
// finance approval, credits the guest's default card.
type RefundService struct {
	DB       *gorm.DB
	Wallet   *WalletService
	Notifier Notifier

	log *zap.Logger
}

func NewRefundService(db *gorm.DB, wallet *WalletService, notifier Notifier, logger *zap.Logger) *RefundService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefundService{DB: db, Wallet: wallet, Notifier: notifier, log: logger}
}

// CalculateRefundAmount applies the tiered cancellation policy, measured in
// whole days from today to the booking's check-in date.
func (s *RefundService) CalculateRefundAmount(booking *models.Booking, today time.Time) float64 {
	daysUntilCheckIn := utils.DaysBetween(today, booking.CheckInDate)
	switch {
	case daysUntilCheckIn <= 0:
		return 0 // stay has begun or passed
	case daysUntilCheckIn > 7:
		return utils.Round2(booking.TotalPrice)
	case daysUntilCheckIn >= 3:
		return utils.Round2(booking.TotalPrice * 0.5)
	default:
		return utils.Round2(booking.TotalPrice * 0.2)
	}
}

// InitiateTx creates a PENDING refund for a cancelled booking inside the
// caller's transaction. Idempotent: an existing refund for the booking is
// returned as-is. No money moves here.
func (s *RefundService) InitiateTx(tx *gorm.DB, booking *models.Booking, reason string) (*models.Refund, error) {
	var existing models.Refund
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("booking_id = ?", booking.ID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	paid, err := HasSuccessfulPayment(tx, booking.ID)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, fmt.Errorf("%w: booking %d", ErrNoPayment, booking.ID)
	}

	if strings.TrimSpace(reason) == "" {
		reason = "Booking cancelled by guest"
	}
	refund := models.Refund{
		BookingID:   booking.ID,
		Amount:      s.CalculateRefundAmount(booking, utils.Today()),
		Reason:      reason,
		Status:      models.RefundPending,
		RequestedAt: time.Now().UTC(),
	}
	if err := tx.Create(&refund).Error; err != nil {
		// Concurrent cancellation retry lost the unique-index race; the
		// winner's row is the refund.
		if isDuplicateKey(err) {
			if ferr := tx.Where("booking_id = ?", booking.ID).First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &refund, nil
}

// Approve credits the refund amount to the guest's default card and marks the
// refund SUCCESSFUL. Guard failures (unknown id, non-pending status)
// propagate untouched; failures while crediting leave the row in a terminal
// FAILED state with the error appended to the reason for audit.
func (s *RefundService) Approve(refundID uint) (*models.Refund, error) {
	var (
		refund models.Refund
		guest  models.Guest
	)
	creditErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&refund, refundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: refund %d", ErrNotFound, refundID)
			}
			return err
		}
		if refund.Status != models.RefundPending {
			return fmt.Errorf("%w: can only process pending refunds (current: %s)", ErrInvalidState, refund.Status)
		}

		var booking models.Booking
		if err := tx.First(&booking, refund.BookingID).Error; err != nil {
			return fmt.Errorf("load booking for refund: %w", err)
		}
		if err := tx.First(&guest, booking.GuestID).Error; err != nil {
			return fmt.Errorf("load guest for refund: %w", err)
		}

		card, err := s.Wallet.FindDefaultCardTx(tx, booking.GuestID)
		if err != nil {
			return err
		}
		if refund.Amount > 0 {
			if err := s.Wallet.CreditTx(tx, card.ID, refund.Amount); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		refund.Status = models.RefundSuccessful
		refund.ProcessedAt = &now
		refund.RefundTransactionID = "REF_" + uuid.NewString()
		return tx.Save(&refund).Error
	})

	if creditErr == nil {
		s.Notifier.NotifyRefundProcessed(guest.Email, &refund)
		return &refund, nil
	}
	if errors.Is(creditErr, ErrNotFound) || errors.Is(creditErr, ErrInvalidState) {
		return nil, creditErr
	}

	// Crediting failed after the guards passed: persist the terminal FAILED
	// state so finance has an inspectable trail.
	now := time.Now().UTC()
	refund.Status = models.RefundFailed
	refund.ProcessedAt = &now
	refund.RefundTransactionID = ""
	refund.Reason = refund.Reason + " | ERROR: " + creditErr.Error()
	if saveErr := s.DB.Save(&refund).Error; saveErr != nil {
		s.log.Error("failed to persist failed refund",
			zap.Uint("refund_id", refundID), zap.Error(saveErr))
	}
	s.Notifier.NotifyRefundFailed(guest.Email, &refund, creditErr.Error())
	return &refund, creditErr
}

// Reject marks a pending refund FAILED with a mandatory reason. Finance-only.
func (s *RefundService) Reject(refundID uint, reason string) (*models.Refund, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: a reason must be provided for rejecting a refund", ErrValidation)
	}
	refund, guest, err := s.finalizePending(refundID, models.RefundFailed, " | REJECTED: "+strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}
	s.Notifier.NotifyRefundRejected(guest.Email, refund, reason)
	return refund, nil
}

// CancelOverride withdraws a pending refund without paying it. Finance-only.
func (s *RefundService) CancelOverride(refundID uint, reason string) (*models.Refund, error) {
	suffix := ""
	if strings.TrimSpace(reason) != "" {
		suffix = " | Cancellation reason: " + strings.TrimSpace(reason)
	}
	refund, _, err := s.finalizePending(refundID, models.RefundCancelled, suffix)
	if err != nil {
		return nil, err
	}
	return refund, nil
}

func (s *RefundService) finalizePending(refundID uint, target models.RefundStatus, reasonSuffix string) (*models.Refund, *models.Guest, error) {
	var (
		refund models.Refund
		guest  models.Guest
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&refund, refundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: refund %d", ErrNotFound, refundID)
			}
			return err
		}
		if refund.Status != models.RefundPending {
			return fmt.Errorf("%w: can only act on pending refunds (current: %s)", ErrInvalidState, refund.Status)
		}

		var booking models.Booking
		if err := tx.First(&booking, refund.BookingID).Error; err == nil {
			_ = tx.First(&guest, booking.GuestID).Error
		}

		now := time.Now().UTC()
		refund.Status = target
		refund.ProcessedAt = &now
		refund.Reason = refund.Reason + reasonSuffix
		return tx.Save(&refund).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &refund, &guest, nil
}

func (s *RefundService) GetByID(refundID uint) (*models.Refund, error) {
	var refund models.Refund
	err := s.DB.First(&refund, refundID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: refund %d", ErrNotFound, refundID)
	}
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

func (s *RefundService) GetByBookingID(bookingID uint) (*models.Refund, error) {
	var refund models.Refund
	err := s.DB.Where("booking_id = ?", bookingID).First(&refund).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no refund for booking %d", ErrNotFound, bookingID)
	}
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

func (s *RefundService) GetByStatus(status models.RefundStatus) ([]models.Refund, error) {
	var refunds []models.Refund
	err := s.DB.Where("status = ?", status).Order("requested_at DESC").Find(&refunds).Error
	return refunds, err
}

func (s *RefundService) GetAll() ([]models.Refund, error) {
	var refunds []models.Refund
	err := s.DB.Order("requested_at DESC").Find(&refunds).Error
	return refunds, err
}
