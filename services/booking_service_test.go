package services

import (
	"errors"
	"strings"
	"testing"

	"horizon-hotel-backend/models"
)

func TestCreateRoomTypeBooking(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Dana Drew")
	seedRoom(t, env, "210", models.RoomTypeDouble, 80)

	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "double", day(10), day(13), "late arrival")
	if err != nil {
		t.Fatalf("CreateRoomTypeBooking: %v", err)
	}
	if booking.Status != models.BookingPending {
		t.Errorf("status = %s, want PENDING", booking.Status)
	}
	if booking.RoomID != nil {
		t.Errorf("expected no room assigned at creation")
	}
	if booking.TotalPrice != 240 {
		t.Errorf("total = %.2f, want 240.00 (3 nights at 80)", booking.TotalPrice)
	}
	if !strings.HasPrefix(booking.ReferenceCode, "BK-") || len(booking.ReferenceCode) != 11 {
		t.Errorf("reference code %q does not match BK-XXXXXXXX", booking.ReferenceCode)
	}
	if booking.RoomType != models.RoomTypeDouble {
		t.Errorf("room type = %s, want DOUBLE", booking.RoomType)
	}
}

func TestCreateRoomTypeBookingRejections(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Evan Ellis")
	seedRoom(t, env, "211", models.RoomTypeDouble, 80)

	tests := []struct {
		name     string
		guestID  uint
		roomType string
		in, out  int
		wantErr  error
	}{
		{"unknown type", guest.ID, "PENTHOUSE", 5, 7, ErrValidation},
		{"zero nights", guest.ID, "DOUBLE", 5, 5, ErrInvalidRange},
		{"inverted range", guest.ID, "DOUBLE", 7, 5, ErrInvalidRange},
		{"past check-in", guest.ID, "DOUBLE", -1, 2, ErrValidation},
		{"unknown guest", guest.ID + 999, "DOUBLE", 5, 7, ErrNotFound},
		{"no rooms of type", guest.ID, "SUITE", 5, 7, ErrNoAvailability},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.bookings.CreateRoomTypeBooking(tc.guestID, tc.roomType, day(tc.in), day(tc.out), "")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateRoomTypeBookingNoAvailabilityWhenAllBusy(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Fay Field")
	room := seedRoom(t, env, "212", models.RoomTypeDouble, 80)
	seedBookingForRoom(t, env, guest.ID, room.ID, models.BookingConfirmed, 5, 9)

	_, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(6), day(8), "")
	if !errors.Is(err, ErrNoAvailability) {
		t.Fatalf("expected ErrNoAvailability, got %v", err)
	}
}

func TestConfirmRequiresPayment(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Gus Grant")
	seedRoom(t, env, "213", models.RoomTypeDouble, 80)

	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(10), day(12), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := env.bookings.TransitionStatus(booking.ID, "CONFIRMED"); !errors.Is(err, ErrNoPayment) {
		t.Fatalf("expected ErrNoPayment, got %v", err)
	}
}

func TestCheckInRequiresAssignedRoom(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Hana Hart")
	seedRoom(t, env, "214", models.RoomTypeDouble, 80)

	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(10), day(12), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	card := defaultCard(t, env, guest.ID)
	setCardBalance(t, env, card.ID, 500)
	if _, err := env.payments.ChargeBooking(booking.ID, card.CardNumber); err != nil {
		t.Fatalf("charge: %v", err)
	}
	if _, err := env.bookings.TransitionStatus(booking.ID, "CONFIRMED"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if _, err := env.bookings.TransitionStatus(booking.ID, "CHECKED_IN"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState without a room, got %v", err)
	}
}

func TestTransitionRejectsSkippedStates(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Iris Ives")
	seedRoom(t, env, "215", models.RoomTypeDouble, 80)

	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(10), day(12), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	for _, target := range []string{"CHECKED_IN", "CHECKED_OUT", "PENDING"} {
		if _, err := env.bookings.TransitionStatus(booking.ID, target); !errors.Is(err, ErrInvalidState) {
			t.Errorf("PENDING -> %s: expected ErrInvalidState, got %v", target, err)
		}
	}
	if _, err := env.bookings.TransitionStatus(booking.ID, "UNKNOWN"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown status, got %v", err)
	}
}

func TestAssignRoomValidations(t *testing.T) {
	env := newTestEnv(t)
	guestA := registerGuest(t, env, "Jo Jones")
	guestB := registerGuest(t, env, "Kim Knox")
	double := seedRoom(t, env, "216", models.RoomTypeDouble, 80)
	single := seedRoom(t, env, "110", models.RoomTypeSingle, 50)

	booking, err := env.bookings.CreateRoomTypeBooking(guestA.ID, "DOUBLE", day(10), day(13), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := env.bookings.AssignRoom(booking.ID, single.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation on type mismatch, got %v", err)
	}

	// Another booking takes the only double for the same dates.
	seedBookingForRoom(t, env, guestB.ID, double.ID, models.BookingConfirmed, 11, 14)
	if _, err := env.bookings.AssignRoom(booking.ID, double.ID); !errors.Is(err, ErrNoAvailability) {
		t.Fatalf("expected ErrNoAvailability on conflict, got %v", err)
	}
}

func TestAssignRoomAndReassign(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Lia Lowe")
	roomA := seedRoom(t, env, "217", models.RoomTypeDouble, 80)
	roomB := seedRoom(t, env, "218", models.RoomTypeDouble, 80)

	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(10), day(13), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	assigned, err := env.bookings.AssignRoom(booking.ID, roomA.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.RoomID == nil || *assigned.RoomID != roomA.ID {
		t.Fatalf("booking not bound to room %d", roomA.ID)
	}

	// Moving to another free room of the same type must not conflict with
	// the booking's own dates.
	reassigned, err := env.bookings.AssignRoom(booking.ID, roomB.ID)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if reassigned.RoomID == nil || *reassigned.RoomID != roomB.ID {
		t.Fatalf("booking not moved to room %d", roomB.ID)
	}
}

func TestUpdateDatesRepricesPendingBooking(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Mia Moss")
	seedRoom(t, env, "219", models.RoomTypeDouble, 80)

	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(10), day(12), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.TotalPrice != 160 {
		t.Fatalf("initial total = %.2f, want 160", booking.TotalPrice)
	}

	updated, err := env.bookings.UpdateDates(booking.ID, day(10), day(15))
	if err != nil {
		t.Fatalf("UpdateDates: %v", err)
	}
	if updated.TotalPrice != 400 {
		t.Errorf("repriced total = %.2f, want 400 (5 nights at 80)", updated.TotalPrice)
	}

	if _, err := env.bookings.UpdateDates(booking.ID, day(10), day(10)); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestUpdateDatesOnlyWhilePending(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Nora Nash")
	seedRoom(t, env, "220", models.RoomTypeDouble, 80)

	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(10), day(12), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	card := defaultCard(t, env, guest.ID)
	setCardBalance(t, env, card.ID, 500)
	if _, err := env.payments.ChargeBooking(booking.ID, card.CardNumber); err != nil {
		t.Fatalf("charge: %v", err)
	}
	if _, err := env.bookings.TransitionStatus(booking.ID, "CONFIRMED"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if _, err := env.bookings.UpdateDates(booking.ID, day(11), day(14)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState after confirmation, got %v", err)
	}
}

func TestCancelPendingBookingCreatesNoRefund(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Omar Orr")
	seedRoom(t, env, "221", models.RoomTypeDouble, 80)

	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(10), day(12), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if err := env.bookings.CancelBooking(booking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	got, err := env.bookings.GetByID(booking.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.BookingCancelled {
		t.Errorf("status = %s, want CANCELLED", got.Status)
	}

	var refundCount int64
	env.db.Model(&models.Refund{}).Where("booking_id = ?", booking.ID).Count(&refundCount)
	if refundCount != 0 {
		t.Errorf("unpaid booking must not produce a refund, found %d", refundCount)
	}
}

func TestCancelConfirmedBookingCreatesExactlyOneRefund(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Pia Page")
	seedRoom(t, env, "222", models.RoomTypeDouble, 80)

	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(10), day(12), "")
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	card := defaultCard(t, env, guest.ID)
	setCardBalance(t, env, card.ID, 500)
	if _, err := env.payments.ChargeBooking(booking.ID, card.CardNumber); err != nil {
		t.Fatalf("charge: %v", err)
	}
	if _, err := env.bookings.TransitionStatus(booking.ID, "CONFIRMED"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := env.bookings.CancelBooking(booking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := env.bookings.CancelBooking(booking.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second cancel must fail with ErrInvalidState, got %v", err)
	}

	var refunds []models.Refund
	env.db.Where("booking_id = ?", booking.ID).Find(&refunds)
	if len(refunds) != 1 {
		t.Fatalf("expected exactly one refund, got %d", len(refunds))
	}
	if refunds[0].Status != models.RefundPending {
		t.Errorf("refund status = %s, want PENDING", refunds[0].Status)
	}
	// Cancelled 10 days ahead of check-in: full refund.
	if refunds[0].Amount != 160 {
		t.Errorf("refund amount = %.2f, want 160.00", refunds[0].Amount)
	}
}

func TestCancelGuards(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Quin Quay")
	room := seedRoom(t, env, "223", models.RoomTypeDouble, 80)

	checkedIn := seedBookingForRoom(t, env, guest.ID, room.ID, models.BookingCheckedIn, 0, 3)
	if err := env.bookings.CancelBooking(checkedIn.ID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("checked-in cancel: expected ErrInvalidState, got %v", err)
	}

	if err := env.bookings.CancelBooking(99999); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown booking: expected ErrNotFound, got %v", err)
	}
}

// Full lifecycle: book, pay, confirm, assign, cancel, refund.
func TestBookingLifecycleEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Rene Ross")
	seedRoom(t, env, "224", models.RoomTypeDouble, 80)

	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(10), day(13), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.TotalPrice != 240 {
		t.Fatalf("total = %.2f, want 240", booking.TotalPrice)
	}

	card := defaultCard(t, env, guest.ID)
	setCardBalance(t, env, card.ID, 300)
	if _, err := env.payments.ChargeBooking(booking.ID, card.CardNumber); err != nil {
		t.Fatalf("charge: %v", err)
	}
	if got := cardBalance(t, env, card.ID); got != 60 {
		t.Fatalf("balance after charge = %.2f, want 60", got)
	}

	if _, err := env.bookings.TransitionStatus(booking.ID, "CONFIRMED"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	var room models.Room
	if err := env.db.Where("room_number = ?", "224").First(&room).Error; err != nil {
		t.Fatalf("load room: %v", err)
	}
	if _, err := env.bookings.AssignRoom(booking.ID, room.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := env.bookings.CancelBooking(booking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	refund, err := env.refunds.GetByBookingID(booking.ID)
	if err != nil {
		t.Fatalf("load refund: %v", err)
	}
	if refund.Amount != 240 {
		t.Fatalf("refund amount = %.2f, want 240 (>7 days out)", refund.Amount)
	}

	processed, err := env.refunds.Approve(refund.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if processed.Status != models.RefundSuccessful {
		t.Errorf("refund status = %s, want SUCCESSFUL", processed.Status)
	}
	if !strings.HasPrefix(processed.RefundTransactionID, "REF_") {
		t.Errorf("transaction id %q missing REF_ prefix", processed.RefundTransactionID)
	}
	if got := cardBalance(t, env, card.ID); got != 300 {
		t.Errorf("balance after refund = %.2f, want 300", got)
	}
}

func TestSearchMatchesReferenceAndGuestName(t *testing.T) {
	env := newTestEnv(t)
	guest := registerGuest(t, env, "Sonia Stone")
	seedRoom(t, env, "225", models.RoomTypeDouble, 80)

	booking, err := env.bookings.CreateRoomTypeBooking(guest.ID, "DOUBLE", day(10), day(12), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	byRef, err := env.bookings.Search(booking.ReferenceCode[3:])
	if err != nil {
		t.Fatalf("search by ref: %v", err)
	}
	if len(byRef) != 1 {
		t.Errorf("search by reference: got %d results, want 1", len(byRef))
	}

	byName, err := env.bookings.Search("sonia")
	if err != nil {
		t.Fatalf("search by name: %v", err)
	}
	if len(byName) != 1 {
		t.Errorf("search by guest name: got %d results, want 1", len(byName))
	}
}
