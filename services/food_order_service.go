package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FoodOrderService turns an explicit cart into a payable food order. The cart
// is passed in by the caller, never held in session state.
type FoodOrderService struct {
	DB *gorm.DB
}

func NewFoodOrderService(db *gorm.DB) *FoodOrderService {
	return &FoodOrderService{DB: db}
}

// CartLine is one requested menu item in a guest's cart.
type CartLine struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// PlaceOrder snapshots the cart's menu items into an order. Item names and
// prices are copied so later menu edits never change a placed order.
func (s *FoodOrderService) PlaceOrder(guestID uint, cart []CartLine) (*models.FoodOrder, error) {
	if len(cart) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	var guest models.Guest
	if err := s.DB.First(&guest, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: guest %d", ErrNotFound, guestID)
		}
		return nil, err
	}

	lines := make([]models.OrderLine, 0, len(cart))
	total := 0.0
	for _, entry := range cart {
		if entry.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		var item models.MenuItem
		if err := s.DB.First(&item, entry.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, entry.MenuItemID)
			}
			return nil, err
		}
		if !item.Available {
			return nil, fmt.Errorf("%w: %s is not available", ErrValidation, item.Name)
		}
		lines = append(lines, models.OrderLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   entry.Quantity,
		})
		total += item.Price * float64(entry.Quantity)
	}

	payload, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encode order lines: %w", err)
	}

	order := models.FoodOrder{
		GuestID:    guestID,
		Items:      datatypes.JSON(payload),
		TotalPrice: utils.Round2(total),
		Status:     models.FoodOrderPlaced,
	}
	if err := s.DB.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *FoodOrderService) GetByID(orderID uint) (*models.FoodOrder, error) {
	var order models.FoodOrder
	err := s.DB.First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: food order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *FoodOrderService) GetByGuest(guestID uint) ([]models.FoodOrder, error) {
	var orders []models.FoodOrder
	err := s.DB.Where("guest_id = ?", guestID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (s *FoodOrderService) Menu() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.DB.Where("available = ?", true).Order("category, name").Find(&items).Error
	return items, err
}

func (s *FoodOrderService) CreateMenuItem(item *models.MenuItem) error {
	if item.Name == "" || item.Price <= 0 {
		return fmt.Errorf("%w: menu item needs a name and a positive price", ErrValidation)
	}
	return s.DB.Create(item).Error
}

func (s *FoodOrderService) SetMenuItemAvailability(itemID uint, available bool) error {
	res := s.DB.Model(&models.MenuItem{}).Where("id = ?", itemID).Update("available", available)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: menu item %d", ErrNotFound, itemID)
	}
	return nil
}
