package controllers

import (
	"net/http"
	"time"

	"horizon-hotel-backend/models"
	"horizon-hotel-backend/services"
	"horizon-hotel-backend/utils"

	"github.com/gin-gonic/gin"
)

type WalletController struct {
	Wallet *services.WalletService
}

func NewWalletController(wallet *services.WalletService) *WalletController {
	return &WalletController{Wallet: wallet}
}

// cardView masks the card number; the full number never leaves the API.
type cardView struct {
	ID             uint      `json:"id"`
	CardHolderName string    `json:"cardHolderName"`
	CardNumber     string    `json:"cardNumber"`
	CardType       string    `json:"cardType"`
	ExpiryDate     time.Time `json:"expiryDate"`
	IssueDate      time.Time `json:"issueDate"`
	Balance        float64   `json:"balance"`
	IsDefault      bool      `json:"isDefault"`
}

func viewCard(card *models.HotelCard) cardView {
	return cardView{
		ID:             card.ID,
		CardHolderName: card.CardHolderName,
		CardNumber:     card.MaskedNumber(),
		CardType:       utils.DetectCardType(card.CardNumber),
		ExpiryDate:     card.ExpiryDate,
		IssueDate:      card.IssueDate,
		Balance:        card.Balance,
		IsDefault:      card.IsDefault,
	}
}

func (ctl *WalletController) GetCards(c *gin.Context) {
	guestID, err := uintParam(c, "guestId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	cards, err := ctl.Wallet.GetCards(guestID)
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]cardView, 0, len(cards))
	for i := range cards {
		views = append(views, viewCard(&cards[i]))
	}
	utils.JSONSuccess(c, http.StatusOK, views)
}

func (ctl *WalletController) AddCard(c *gin.Context) {
	guestID, err := uintParam(c, "guestId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input services.AddCardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	card, err := ctl.Wallet.AddCard(guestID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, card)
}

func (ctl *WalletController) DeleteCard(c *gin.Context) {
	guestID, err := uintParam(c, "guestId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	cardID, err := uintParam(c, "cardId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctl.Wallet.DeleteCard(guestID, cardID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": cardID})
}

type holderNameInput struct {
	CardHolderName string `json:"cardHolderName" binding:"required"`
}

func (ctl *WalletController) UpdateHolderName(c *gin.Context) {
	guestID, err := uintParam(c, "guestId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	cardID, err := uintParam(c, "cardId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	var input holderNameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	card, err := ctl.Wallet.UpdateHolderName(guestID, cardID, input.CardHolderName)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, card)
}

func (ctl *WalletController) SetDefaultCard(c *gin.Context) {
	guestID, err := uintParam(c, "guestId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	cardID, err := uintParam(c, "cardId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctl.Wallet.SetDefaultCard(guestID, cardID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"defaultCardId": cardID})
}

func (ctl *WalletController) GetStatistics(c *gin.Context) {
	guestID, err := uintParam(c, "guestId")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	stats, err := ctl.Wallet.Statistics(guestID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
