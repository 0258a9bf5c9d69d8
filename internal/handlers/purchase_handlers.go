package handlers

import (
	"net/http"

	"gallery_wallet/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *WalletHTTPHandler) HandlePurchaseArtwork(c *gin.Context) {
	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	res, err := h.settlement.PurchaseArtwork(c.Request.Context(), c.Param("artwork_id"), req.BuyerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(purchaseStatus(res), res)
}

func (h *WalletHTTPHandler) HandlePurchaseTicket(c *gin.Context) {
	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	res, err := h.settlement.PurchaseTicket(c.Request.Context(), c.Param("exhibition_id"), req.BuyerID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(purchaseStatus(res), res)
}

func (h *WalletHTTPHandler) HandleArtworkAccess(c *gin.Context) {
	ok, err := h.settlement.VerifyArtworkAccess(c.Request.Context(), c.Param("artwork_id"), c.Param("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasAccess": ok})
}

// purchaseStatus reports a declined payment as 402 so clients can tell it from a completed purchase.
func purchaseStatus(res *models.PurchaseResult) int {
	if res.Status == models.PaymentFailed {
		return http.StatusPaymentRequired
	}
	return http.StatusOK
}
