package controllers

import (
	"net/http"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/services"
	"horizon-hotel-backend/utils"

	"github.com/gin-gonic/gin"
)

type FoodOrderController struct {
	Orders *services.FoodOrderService
}

func NewFoodOrderController(orders *services.FoodOrderService) *FoodOrderController {
	return &FoodOrderController{Orders: orders}
}

func (ctl *FoodOrderController) GetMenu(c *gin.Context) {
	items, err := ctl.Orders.Menu()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

type menuItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
}

func (ctl *FoodOrderController) CreateMenuItem(c *gin.Context) {
	var input menuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	item := models.MenuItem{
		Name:        input.Name,
		Category:    input.Category,
		Price:       utils.Round2(input.Price),
		Description: input.Description,
		Available:   true,
	}
	if err := ctl.Orders.CreateMenuItem(&item); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, item)
}

type availabilityInput struct {
	Available *bool `json:"available" binding:"required"`
}

func (ctl *FoodOrderController) SetMenuItemAvailability(c *gin.Context) {
	itemID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input availabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctl.Orders.SetMenuItemAvailability(itemID, *input.Available); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": itemID, "available": *input.Available})
}

type placeOrderInput struct {
	GuestID uint                `json:"guestId" binding:"required"`
	Cart    []services.CartLine `json:"cart" binding:"required,dive"`
}

// PlaceOrder turns the submitted cart into an order with menu prices
// snapshotted at order time.
func (ctl *FoodOrderController) PlaceOrder(c *gin.Context) {
	var input placeOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	order, err := ctl.Orders.PlaceOrder(input.GuestID, input.Cart)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, order)
}

func (ctl *FoodOrderController) GetOrder(c *gin.Context) {
	orderID, err := uintParam(c, "id")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	order, err := ctl.Orders.GetByID(orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}

func (ctl *FoodOrderController) GetGuestOrders(c *gin.Context) {
	guestID, err := uintParam(c, "guestId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	orders, err := ctl.Orders.GetByGuest(guestID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, orders)
}
