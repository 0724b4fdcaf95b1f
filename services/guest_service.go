package services

import (
	"errors"
	"fmt"
	"strings"

	"horizon-hotel-backend/models"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// validate re-checks the binding tags so registration stays guarded when the
// service is called outside the HTTP layer.
var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// GuestService is the guest directory. Registration also seeds the guest's
// default wallet card in the same transaction.
type GuestService struct {
	DB     *gorm.DB
	Wallet *WalletService
}

func NewGuestService(db *gorm.DB, wallet *WalletService) *GuestService {
	return &GuestService{DB: db, Wallet: wallet}
}

type RegisterGuestInput struct {
	FullName string `json:"fullName" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

func (s *GuestService) Register(input RegisterGuestInput) (*models.Guest, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	guest := models.Guest{
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: string(hash),
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&guest).Error; err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("%w: email already registered", ErrValidation)
			}
			return err
		}
		_, err := s.Wallet.CreateDefaultCardTx(tx, &guest)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (s *GuestService) GetByID(guestID uint) (*models.Guest, error) {
	var guest models.Guest
	err := s.DB.First(&guest, guestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: guest %d", ErrNotFound, guestID)
	}
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.Order("full_name").Find(&guests).Error
	return guests, err
}
