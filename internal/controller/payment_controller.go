package controller

import (
	"github.com/Dushime20/urutibiz-backend-sub001/internal/dto"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/pkg/serverutils"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Checkout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{
		paymentService: paymentService,
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment/v1")
	h.Post("checkout", serverutils.JwtMiddleware, c.Checkout)
	// Webhook is called by the gateway, authenticated by signature instead
	// of a bearer token.
	h.Post("webhook", c.Webhook)
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.paymentService.Checkout(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create checkout", res))
}

func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.paymentService.HandleNotification(ctx.Context(), &req); err != nil {
		// The gateway retries on non-2xx; signal a retryable failure.
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}
