package services

import (
	"time"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/utils"

	"gorm.io/gorm"
)

// FinanceService aggregates the payment and refund ledgers for dashboards.
// Read-only.
type FinanceService struct {
	DB *gorm.DB
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{DB: db}
}

type FinancialSummary struct {
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalRefunded      float64 `json:"totalRefunded"`
	NetRevenue         float64 `json:"netRevenue"`
	PendingRefundCount int64   `json:"pendingRefundCount"`
	TodayTransactions  int64   `json:"todayTransactions"`
}

func (s *FinanceService) Summary() (*FinancialSummary, error) {
	var summary FinancialSummary

	err := s.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentSuccessful).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.Refund{}).
		Where("status = ?", models.RefundSuccessful).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalRefunded).Error
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Refund{}).
		Where("status = ?", models.RefundPending).
		Count(&summary.PendingRefundCount).Error; err != nil {
		return nil, err
	}

	todayStart := utils.Today()
	if err := s.DB.Model(&models.Payment{}).
		Where("transaction_date >= ?", todayStart).
		Count(&summary.TodayTransactions).Error; err != nil {
		return nil, err
	}

	summary.TotalRevenue = utils.Round2(summary.TotalRevenue)
	summary.TotalRefunded = utils.Round2(summary.TotalRefunded)
	summary.NetRevenue = utils.Round2(summary.TotalRevenue - summary.TotalRefunded)
	return &summary, nil
}

type TransactionDetail struct {
	ID              uint                 `json:"id"`
	Amount          float64              `json:"amount"`
	Method          models.PaymentMethod `json:"method"`
	Status          models.PaymentStatus `json:"status"`
	TransactionDate time.Time            `json:"transactionDate"`
	Type            string               `json:"type"`
	GuestName       string               `json:"guestName"`
}

// Transactions lists every payment with the payable kind and guest resolved.
func (s *FinanceService) Transactions() ([]TransactionDetail, error) {
	var payments []models.Payment
	if err := s.DB.Order("transaction_date DESC").Find(&payments).Error; err != nil {
		return nil, err
	}

	details := make([]TransactionDetail, 0, len(payments))
	for _, payment := range payments {
		detail := TransactionDetail{
			ID:              payment.ID,
			Amount:          payment.Amount,
			Method:          payment.Method,
			Status:          payment.Status,
			TransactionDate: payment.TransactionDate,
		}
		var guestID uint
		switch {
		case payment.BookingID != nil:
			detail.Type = "BOOKING"
			var booking models.Booking
			if err := s.DB.First(&booking, *payment.BookingID).Error; err == nil {
				guestID = booking.GuestID
			}
		case payment.FoodOrderID != nil:
			detail.Type = "FOOD_ORDER"
			var order models.FoodOrder
			if err := s.DB.First(&order, *payment.FoodOrderID).Error; err == nil {
				guestID = order.GuestID
			}
		}
		if guestID != 0 {
			var guest models.Guest
			if err := s.DB.First(&guest, guestID).Error; err == nil {
				detail.GuestName = guest.FullName
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

// CancelledBookings lists cancellations for the finance review queue.
func (s *FinanceService) CancelledBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Guest").
		Where("status = ?", models.BookingCancelled).
		Order("updated_at DESC").
		Find(&bookings).Error
	return bookings, err
}
