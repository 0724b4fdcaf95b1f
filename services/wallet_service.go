package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/utils"

	gomysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletService owns the stored-value hotel cards. Every guest holds exactly
// one default card after registration; the default card cannot be deleted or
// renamed and receives all refund credits.
type WalletService struct {
	DB *gorm.DB

	// Rejects cards failing the Luhn check when true; otherwise failures
	// are admitted with a warning.
	StrictValidation bool
	// Balance seeded onto the default card at registration.
	SeedBalance float64

	log *zap.Logger
}

func NewWalletService(db *gorm.DB, strictValidation bool, seedBalance float64, logger *zap.Logger) *WalletService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalletService{DB: db, StrictValidation: strictValidation, SeedBalance: seedBalance, log: logger}
}

// AddCardInput carries guest-supplied card details.
type AddCardInput struct {
	CardHolderName string    `json:"cardHolderName" binding:"required"`
	CardNumber     string    `json:"cardNumber" binding:"required"`
	CVV            string    `json:"cvv" binding:"required"`
	ExpiryDate     time.Time `json:"expiryDate" binding:"required"`
}

// CreateDefaultCardTx seeds a guest's default card inside the caller's
// registration transaction. Exactly one call per guest.
func (s *WalletService) CreateDefaultCardTx(tx *gorm.DB, guest *models.Guest) (*models.HotelCard, error) {
	number, err := utils.GenerateCardNumber()
	if err != nil {
		return nil, err
	}
	now := utils.Today()
	card := models.HotelCard{
		GuestID:        guest.ID,
		CardHolderName: guest.FullName,
		CardNumber:     number,
		CVV:            "123",
		Balance:        utils.Round2(s.SeedBalance),
		ExpiryDate:     utils.EndOfMonth(now.AddDate(5, 0, 0)),
		IssueDate:      now,
		IsDefault:      true,
	}
	if err := tx.Create(&card).Error; err != nil {
		return nil, fmt.Errorf("failed to create default card: %w", err)
	}
	return &card, nil
}

// AddCard registers an additional card. New cards always start at zero
// balance and are never default.
func (s *WalletService) AddCard(guestID uint, input AddCardInput) (*models.HotelCard, error) {
	holderName := strings.TrimSpace(input.CardHolderName)
	if !utils.IsValidHolderName(holderName) {
		return nil, fmt.Errorf("%w: card holder name must be 3-50 letters and spaces", ErrValidation)
	}

	number := utils.NormalizeCardNumber(input.CardNumber)
	if !utils.IsValidCardDigits(number) {
		return nil, fmt.Errorf("%w: card number must be 13-19 digits", ErrValidation)
	}
	if !utils.LuhnValid(number) {
		if s.StrictValidation {
			return nil, fmt.Errorf("%w: card number failed Luhn check", ErrValidation)
		}
		s.log.Warn("card number failed Luhn check, admitted in non-strict mode",
			zap.Uint("guest_id", guestID))
	}
	if cardType := utils.DetectCardType(number); cardType == "Unknown" {
		s.log.Warn("unrecognized card type admitted", zap.Uint("guest_id", guestID))
	}

	cvv := strings.TrimSpace(input.CVV)
	if !utils.IsValidCVV(cvv) {
		return nil, fmt.Errorf("%w: CVV must be 3 or 4 digits", ErrValidation)
	}

	if input.ExpiryDate.IsZero() {
		return nil, fmt.Errorf("%w: expiry date is required", ErrValidation)
	}
	today := utils.Today()
	expiry := utils.EndOfMonth(utils.DateOnly(input.ExpiryDate))
	if expiry.Before(today) {
		return nil, fmt.Errorf("%w: card has expired", ErrValidation)
	}
	if expiry.After(utils.EndOfMonth(today.AddDate(10, 0, 0))) {
		return nil, fmt.Errorf("%w: expiry cannot be more than 10 years out", ErrValidation)
	}

	var guest models.Guest
	if err := s.DB.First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: guest %d", ErrNotFound, guestID)
		}
		return nil, err
	}

	card := models.HotelCard{
		GuestID:        guestID,
		CardHolderName: holderName,
		CardNumber:     number,
		CVV:            cvv,
		Balance:        0,
		ExpiryDate:     expiry,
		IssueDate:      today,
		IsDefault:      false,
	}
	if err := s.DB.Create(&card).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: this card is already registered", ErrValidation)
		}
		return nil, err
	}
	return &card, nil
}

// isDuplicateKey detects a unique-constraint violation on MySQL (1062) and,
// by message, on the sqlite driver used in tests.
func isDuplicateKey(err error) bool {
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "unique") || strings.Contains(lc, "duplicate")
}

// GetCards lists a guest's wallet.
func (s *WalletService) GetCards(guestID uint) ([]models.HotelCard, error) {
	var cards []models.HotelCard
	err := s.DB.Where("guest_id = ?", guestID).Order("is_default DESC, id").Find(&cards).Error
	return cards, err
}

// GetGuestCard fetches a card enforcing ownership.
func (s *WalletService) GetGuestCard(guestID, cardID uint) (*models.HotelCard, error) {
	return s.getGuestCard(s.DB, guestID, cardID)
}

func (s *WalletService) getGuestCard(tx *gorm.DB, guestID, cardID uint) (*models.HotelCard, error) {
	var card models.HotelCard
	err := tx.First(&card, cardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: card %d", ErrNotFound, cardID)
	}
	if err != nil {
		return nil, err
	}
	if card.GuestID != guestID {
		return nil, fmt.Errorf("%w: card does not belong to this guest", ErrForbidden)
	}
	return &card, nil
}

// DeleteCard removes a non-default card owned by the guest.
func (s *WalletService) DeleteCard(guestID, cardID uint) error {
	card, err := s.GetGuestCard(guestID, cardID)
	if err != nil {
		return err
	}
	if card.IsDefault {
		return fmt.Errorf("%w: the default card cannot be deleted", ErrInvariantViolation)
	}
	return s.DB.Delete(card).Error
}

// UpdateHolderName renames a non-default card.
func (s *WalletService) UpdateHolderName(guestID, cardID uint, name string) (*models.HotelCard, error) {
	card, err := s.GetGuestCard(guestID, cardID)
	if err != nil {
		return nil, err
	}
	if card.IsDefault {
		return nil, fmt.Errorf("%w: the default card cannot be edited", ErrInvariantViolation)
	}
	name = strings.TrimSpace(name)
	if !utils.IsValidHolderName(name) {
		return nil, fmt.Errorf("%w: card holder name must be 3-50 letters and spaces", ErrValidation)
	}
	card.CardHolderName = name
	if err := s.DB.Save(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// SetDefaultCard promotes a card to default. The previous default is cleared
// in the same transaction so there is never a window with zero or two
// defaults.
func (s *WalletService) SetDefaultCard(guestID, cardID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		card, err := s.getGuestCard(tx.Clauses(clause.Locking{Strength: "UPDATE"}), guestID, cardID)
		if err != nil {
			return err
		}
		if card.IsExpired(utils.Today()) {
			return fmt.Errorf("%w: cannot set an expired card as default", ErrCardExpired)
		}
		if card.IsDefault {
			return nil
		}
		if err := tx.Model(&models.HotelCard{}).
			Where("guest_id = ? AND is_default = ?", guestID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(card).Update("is_default", true).Error
	})
}

// DebitTx atomically subtracts amount from a card balance inside the caller's
// transaction. The balance guard lives in the UPDATE itself so concurrent
// debits can never interleave into a negative balance.
func (s *WalletService) DebitTx(tx *gorm.DB, cardID uint, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: debit amount must be positive", ErrValidation)
	}
	amount = utils.Round2(amount)
	res := tx.Model(&models.HotelCard{}).
		Where("id = ? AND balance >= ?", cardID, amount).
		Update("balance", gorm.Expr("ROUND(balance - ?, 2)", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.HotelCard{}).Where("id = ?", cardID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: card %d", ErrNotFound, cardID)
		}
		return ErrInsufficientFunds
	}
	return nil
}

// CreditTx atomically adds amount to a card balance inside the caller's
// transaction.
func (s *WalletService) CreditTx(tx *gorm.DB, cardID uint, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: credit amount must be positive", ErrValidation)
	}
	amount = utils.Round2(amount)
	res := tx.Model(&models.HotelCard{}).
		Where("id = ?", cardID).
		Update("balance", gorm.Expr("ROUND(balance + ?, 2)", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: card %d", ErrNotFound, cardID)
	}
	return nil
}

// FindDefaultCardTx resolves a guest's default card with a row lock.
func (s *WalletService) FindDefaultCardTx(tx *gorm.DB, guestID uint) (*models.HotelCard, error) {
	var card models.HotelCard
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("guest_id = ? AND is_default = ?", guestID, true).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: guest %d", ErrNoDefaultCard, guestID)
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// findByCardNumberTx resolves a card by its normalized number with a row lock.
func (s *WalletService) findByCardNumberTx(tx *gorm.DB, cardNumber string) (*models.HotelCard, error) {
	var card models.HotelCard
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("card_number = ?", utils.NormalizeCardNumber(cardNumber)).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: card number not registered", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// TotalBalance sums a guest's card balances.
func (s *WalletService) TotalBalance(guestID uint) (float64, error) {
	var total float64
	err := s.DB.Model(&models.HotelCard{}).
		Where("guest_id = ?", guestID).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&total).Error
	return utils.Round2(total), err
}

// WalletStatistics summarizes a guest's wallet for the dashboard.
type WalletStatistics struct {
	TotalCards    int64   `json:"totalCards"`
	ActiveCards   int64   `json:"activeCards"`
	ExpiringCards int64   `json:"expiringCards"`
	TotalBalance  float64 `json:"totalBalance"`
}

func (s *WalletService) Statistics(guestID uint) (*WalletStatistics, error) {
	cards, err := s.GetCards(guestID)
	if err != nil {
		return nil, err
	}
	today := utils.Today()
	soon := today.AddDate(0, 3, 0)

	stats := &WalletStatistics{TotalCards: int64(len(cards))}
	for _, card := range cards {
		stats.TotalBalance += card.Balance
		if card.ExpiryDate.After(today) {
			stats.ActiveCards++
			if card.ExpiryDate.Before(soon) {
				stats.ExpiringCards++
			}
		}
	}
	stats.TotalBalance = utils.Round2(stats.TotalBalance)
	return stats, nil
}
