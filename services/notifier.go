package services

import (
	"fmt"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/utils"

	"go.uber.org/zap"
)

// Notifier delivers guest-facing messages for lifecycle events. Sends happen
// after the transactional mutation commits; a failed send is logged and never
// surfaced to the caller.
type Notifier interface {
	NotifyBookingCreated(email string, booking *models.Booking)
	NotifyBookingConfirmed(email string, booking *models.Booking)
	NotifyBookingCancelled(email string, booking *models.Booking)
	NotifyStatusChanged(email string, booking *models.Booking)
	NotifyRoomAssigned(email string, booking *models.Booking, roomNumber string)
	NotifyRefundRequested(email string, refund *models.Refund)
	NotifyRefundProcessed(email string, refund *models.Refund)
	NotifyRefundFailed(email string, refund *models.Refund, cause string)
	NotifyRefundRejected(email string, refund *models.Refund, reason string)
}

// EmailNotifier sends over SMTP (mock-logged when SMTP is unconfigured).
type EmailNotifier struct {
	cfg utils.SMTPConfig
	log *zap.Logger
}

func NewEmailNotifier(cfg utils.SMTPConfig, logger *zap.Logger) *EmailNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailNotifier{cfg: cfg, log: logger}
}

func (n *EmailNotifier) send(email, subject, body string) {
	if email == "" {
		return
	}
	if err := utils.SendMail(n.cfg, email, subject, body); err != nil {
		n.log.Warn("notification send failed",
			zap.String("recipient", email),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

func (n *EmailNotifier) NotifyBookingCreated(email string, booking *models.Booking) {
	n.send(email, "Your booking request was received",
		fmt.Sprintf("Booking %s (%s, %s to %s) has been created. Total: $%.2f. Pay to confirm your stay.",
			booking.ReferenceCode, booking.RoomType,
			booking.CheckInDate.Format("2006-01-02"), booking.CheckOutDate.Format("2006-01-02"),
			booking.TotalPrice))
}

func (n *EmailNotifier) NotifyBookingConfirmed(email string, booking *models.Booking) {
	n.send(email, "Your booking is confirmed",
		fmt.Sprintf("Booking %s is confirmed. We look forward to welcoming you on %s.",
			booking.ReferenceCode, booking.CheckInDate.Format("2006-01-02")))
}

func (n *EmailNotifier) NotifyBookingCancelled(email string, booking *models.Booking) {
	n.send(email, "Your booking was cancelled",
		fmt.Sprintf("Booking %s has been cancelled.", booking.ReferenceCode))
}

func (n *EmailNotifier) NotifyStatusChanged(email string, booking *models.Booking) {
	n.send(email, "Booking status update",
		fmt.Sprintf("Booking %s is now %s.", booking.ReferenceCode, booking.Status))
}

func (n *EmailNotifier) NotifyRoomAssigned(email string, booking *models.Booking, roomNumber string) {
	n.send(email, "Your room has been assigned",
		fmt.Sprintf("Room %s has been assigned to booking %s.", roomNumber, booking.ReferenceCode))
}

func (n *EmailNotifier) NotifyRefundRequested(email string, refund *models.Refund) {
	n.send(email, "Refund requested",
		fmt.Sprintf("A refund of $%.2f has been requested for booking #%d and is awaiting review.",
			refund.Amount, refund.BookingID))
}

func (n *EmailNotifier) NotifyRefundProcessed(email string, refund *models.Refund) {
	n.send(email, "Refund processed",
		fmt.Sprintf("Your refund of $%.2f has been credited to your default hotel card. Transaction: %s",
			refund.Amount, refund.RefundTransactionID))
}

func (n *EmailNotifier) NotifyRefundFailed(email string, refund *models.Refund, cause string) {
	n.send(email, "Refund could not be processed",
		fmt.Sprintf("Your refund of $%.2f for booking #%d failed: %s. Our finance team will follow up.",
			refund.Amount, refund.BookingID, cause))
}

func (n *EmailNotifier) NotifyRefundRejected(email string, refund *models.Refund, reason string) {
	n.send(email, "Refund rejected",
		fmt.Sprintf("Your refund request for booking #%d was rejected: %s", refund.BookingID, reason))
}
