package handlers

import (
	"io"
	"net/http"

	"freelink_backend/internal/logger"
	"freelink_backend/internal/services"
	"freelink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody bounds the payload read from the gateway
const maxWebhookBody = 64 << 10

const signatureHeader = "Stripe-Signature"

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(g *RouteGroups) {
	g.Public.GET("/payments/config", h.Config)
	g.Public.POST("/payments/webhook", h.Webhook)

	payments := g.Company.Group("/payments")
	{
		payments.GET("/balance", h.Balance)
		payments.POST("/intents", h.CreatePurchase)
		payments.POST("/intents/:id/confirm", h.ConfirmPayment)
		payments.GET("/transactions", h.History)
	}
}

func (h *PaymentHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, h.paymentService.Config())
}

// Balance godoc
// @Summary Token balance of the caller's company
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BalanceResponse
// @Router /api/v1/payments/balance [get]
func (h *PaymentHandler) Balance(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	balance, err := h.paymentService.Balance(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// CreatePurchase godoc
// @Summary Start a token purchase
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePurchaseRequest true "Tokens to buy (1..100)"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 502 {object} apperrors.ErrorResponse "Gateway failure"
// @Router /api/v1/payments/intents [post]
func (h *PaymentHandler) CreatePurchase(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePurchaseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	purchase, err := h.paymentService.CreatePurchase(c.Request.Context(), h.GetDB(c), userID, req.Tokens)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.paymentService.ConfirmPayment(c.Request.Context(), h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) History(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	txs, err := h.paymentService.History(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

// Webhook always acknowledges so the gateway does not retry events we chose to drop.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to read webhook body", err)
		c.JSON(http.StatusOK, dto.WebhookAck{Received: true})
		return
	}

	h.paymentService.HandleWebhook(c.Request.Context(), h.GetDB(c), payload, c.GetHeader(signatureHeader))
	c.JSON(http.StatusOK, dto.WebhookAck{Received: true})
}
