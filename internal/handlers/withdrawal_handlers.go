package handlers

import (
	"net/http"

	"gallery_wallet/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *WalletHTTPHandler) HandleCreateWithdrawalRequest(c *gin.Context) {
	var req models.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	created, err := h.withdrawals.RequestWithdrawal(c.Request.Context(), c.Param("user_id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WalletHTTPHandler) HandleWithdrawalRequests(c *gin.Context) {
	requests, err := h.withdrawals.ListWithdrawalRequests(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *WalletHTTPHandler) HandleAllWithdrawalRequests(c *gin.Context) {
	requests, err := h.withdrawals.ListAllWithdrawalRequests(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests, "total": len(requests)})
}

func (h *WalletHTTPHandler) HandleApproveWithdrawal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}
	req, err := h.withdrawals.ApproveWithdrawal(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *WalletHTTPHandler) HandleRejectWithdrawal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}
	req, err := h.withdrawals.RejectWithdrawal(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
