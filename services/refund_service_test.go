package services

import (
	"errors"
	"strings"
	"testing"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/utils"

	"gorm.io/gorm"
)

func TestCalculateRefundAmountTiers(t *testing.T) {
	env := newTestEnv(t)
	today := utils.Today()

	tests := []struct {
		name       string
		daysOut    int
		wantAmount float64
	}{
		{"more than a week out", 10, 200},
		{"eight days out", 8, 200},
		{"seven days out", 7, 100},
		{"three days out", 3, 100},
		{"two days out", 2, 40},
		{"one day out", 1, 40},
		{"check-in today", 0, 0},
		{"stay already started", -2, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			booking := &models.Booking{
				TotalPrice:  200,
				CheckInDate: today.AddDate(0, 0, tc.daysOut),
			}
			got := env.refunds.CalculateRefundAmount(booking, today)
			if got != tc.wantAmount {
				t.Fatalf("refund = %.2f, want %.2f", got, tc.wantAmount)
			}
		})
	}
}

// confirmedBooking builds a paid and confirmed booking ready for cancellation.
func confirmedBooking(t *testing.T, env *testEnv, guestID uint, roomNumber string) *models.Booking {
	t.Helper()
	seedRoom(t, env, roomNumber, models.RoomTypeDouble, 80)
	booking, err := env.bookings.CreateRoomTypeBooking(guestID, "DOUBLE", day(10), day(13), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	card := defaultCard(t, env, guestID)
	setCardBalance(t, env, card.ID, 500)
	if _, err := env.payments.ChargeBooking(booking.ID, card.CardNumber); err != nil {
		t.Fatalf("charge: %v", err)
	}
	if _, err := env.bookings.TransitionStatus(booking.ID, "CONFIRMED"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	return booking
}

func pendingRefundFor(t *testing.T, env *testEnv, bookingID uint) *models.Refund {
	t.Helper()
	if err := env.bookings.CancelBooking(bookingID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	refund, err := env.refunds.GetByBookingID(bookingID)
	if err != nil {
		t.Fatalf("load refund: %v", err)
	}
	return refund
}

func TestInitiateRequiresPayment(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Nico Nye")
	seedRoom(t, env, "240", models.RoomTypeDouble, 80)
	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(10), day(12), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	err = env.db.Transaction(func(tx *gorm.DB) error {
		_, err := env.refunds.InitiateTx(tx, booking, "test")
		return err
	})
	if !errors.Is(err, ErrNoPayment) {
		t.Fatalf("got %v, want ErrNoPayment", err)
	}
}

func TestInitiateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Opal Odum")
	booking := confirmedBooking(t, env, guest.ID, "241")

	var first, second *models.Refund
	err := env.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if first, err = env.refunds.InitiateTx(tx, booking, "reason one"); err != nil {
			return err
		}
		second, err = env.refunds.InitiateTx(tx, booking, "reason two")
		return err
	})
	if err != nil {
		t.Fatalf("InitiateTx: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same refund, got %d and %d", first.ID, second.ID)
	}

	var count int64
	env.db.Model(&models.Refund{}).Where("booking_id = ?", booking.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one refund row, got %d", count)
	}
	if first.Reason != "reason one" {
		t.Errorf("second call must not rewrite the reason, got %q", first.Reason)
	}
}

func TestApproveCreditsDefaultCard(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Page Pratt")
	booking := confirmedBooking(t, env, guest.ID, "242")
	refund := pendingRefundFor(t, env, booking.ID)

	card := defaultCard(t, env, guest.ID)
	before := cardBalance(t, env, card.ID)

	processed, err := env.refunds.Approve(refund.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if processed.Status != models.RefundSuccessful {
		t.Errorf("status = %s, want SUCCESSFUL", processed.Status)
	}
	if processed.ProcessedAt == nil {
		t.Error("ProcessedAt must be set")
	}
	if !strings.HasPrefix(processed.RefundTransactionID, "REF_") {
		t.Errorf("transaction id %q missing REF_ prefix", processed.RefundTransactionID)
	}
	if got := cardBalance(t, env, card.ID); got != before+refund.Amount {
		t.Errorf("balance = %.2f, want %.2f", got, before+refund.Amount)
	}

	// Terminal refunds cannot be acted on again.
	if _, err := env.refunds.Approve(refund.ID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second approve: got %v, want ErrInvalidState", err)
	}
}

func TestApproveGuardErrors(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.refunds.Approve(424242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown refund: got %v, want ErrNotFound", err)
	}
}

func TestApproveWithoutDefaultCardLeavesFailedRow(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Remy Rhodes")
	booking := confirmedBooking(t, env, guest.ID, "243")
	refund := pendingRefundFor(t, env, booking.ID)

	// Finance edge: the guest somehow has no default card anymore.
	if err := env.db.Model(&models.HotelCard{}).
		Where("guest_id = ?", guest.ID).
		Update("is_default", false).Error; err != nil {
		t.Fatalf("clear default flag: %v", err)
	}

	failed, err := env.refunds.Approve(refund.ID)
	if !errors.Is(err, ErrNoDefaultCard) {
		t.Fatalf("got %v, want ErrNoDefaultCard", err)
	}
	if failed == nil || failed.Status != models.RefundFailed {
		t.Fatalf("refund must be left FAILED, got %+v", failed)
	}
	if !strings.Contains(failed.Reason, " | ERROR: ") {
		t.Errorf("reason %q missing appended error", failed.Reason)
	}
	if failed.ProcessedAt == nil {
		t.Error("failed refund must carry a processing timestamp")
	}

	reloaded, err := env.refunds.GetByID(refund.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != models.RefundFailed {
		t.Errorf("persisted status = %s, want FAILED", reloaded.Status)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Sara Sloan")
	booking := confirmedBooking(t, env, guest.ID, "244")
	refund := pendingRefundFor(t, env, booking.ID)

	if _, err := env.refunds.Reject(refund.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank reason: got %v, want ErrValidation", err)
	}

	rejected, err := env.refunds.Reject(refund.ID, "suspected abuse")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != models.RefundFailed {
		t.Errorf("status = %s, want FAILED", rejected.Status)
	}
	if !strings.Contains(rejected.Reason, " | REJECTED: suspected abuse") {
		t.Errorf("reason %q missing rejection note", rejected.Reason)
	}

	card := defaultCard(t, env, guest.ID)
	if got := cardBalance(t, env, card.ID); got != 260 {
		t.Errorf("rejected refund must not move money, balance = %.2f", got)
	}
}

func TestCancelOverrideWithdrawsPendingRefund(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Tess Tuck")
	booking := confirmedBooking(t, env, guest.ID, "245")
	refund := pendingRefundFor(t, env, booking.ID)

	cancelled, err := env.refunds.CancelOverride(refund.ID, "guest rebooked")
	if err != nil {
		t.Fatalf("CancelOverride: %v", err)
	}
	if cancelled.Status != models.RefundCancelled {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}
	if !strings.Contains(cancelled.Reason, " | Cancellation reason: guest rebooked") {
		t.Errorf("reason %q missing cancellation note", cancelled.Reason)
	}

	if _, err := env.refunds.Approve(refund.ID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("approve after override: got %v, want ErrInvalidState", err)
	}
}
