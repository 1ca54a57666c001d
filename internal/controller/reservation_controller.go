package controller

import (
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/dto"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/pkg/serverutils"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/service"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/booking"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReservationController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	PreviewQuote(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Dispute(ctx *fiber.Ctx) error
	ResolveDispute(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Availability(ctx *fiber.Ctx) error
}

type reservationController struct {
	reservationService service.IReservationService
}

func NewReservationController(reservationService service.IReservationService) IReservationController {
	return &reservationController{
		reservationService: reservationService,
	}
}

func (c *reservationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reservation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Post("quote", c.PreviewQuote)
	h.Get("resource/:resourceId/availability", c.Availability)
	h.Get(":id", c.Show)
	h.Get(":id/history", c.History)
	h.Post(":id/cancel", c.Cancel)
	h.Post(":id/dispute", c.Dispute)
	h.Post(":id/resolve", c.ResolveDispute)
}

// requestActor reads the authenticated identity the JWT middleware stored.
func requestActor(ctx *fiber.Ctx) service.Actor {
	var actor service.Actor
	if raw, ok := ctx.Locals("user_id").(string); ok {
		actor.Id, _ = uuid.Parse(raw)
	}
	if role, ok := ctx.Locals("role").(string); ok {
		actor.Admin = role == "admin"
	}
	return actor
}

func (c *reservationController) Create(ctx *fiber.Ctx) error {
	actor := requestActor(ctx)

	var req dto.CreateReservationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reservationService.Create(ctx.Context(), actor.Id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create reservation", res))
}

func (c *reservationController) PreviewQuote(ctx *fiber.Ctx) error {
	var req dto.PreviewQuoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reservationService.PreviewQuote(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success preview quote", res))
}

func (c *reservationController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &booking.ValidationError{Field: "id", Reason: "must be a uuid"}
	}

	res, err := c.reservationService.GetById(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show reservation", res))
}

func (c *reservationController) Cancel(ctx *fiber.Ctx) error {
	actor := requestActor(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &booking.ValidationError{Field: "id", Reason: "must be a uuid"}
	}

	var req dto.CancelReservationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reservationService.Cancel(ctx.Context(), id, actor, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel reservation", res))
}

func (c *reservationController) Dispute(ctx *fiber.Ctx) error {
	actor := requestActor(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &booking.ValidationError{Field: "id", Reason: "must be a uuid"}
	}

	var req dto.DisputeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reservationService.Dispute(ctx.Context(), id, actor, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success open dispute", res))
}

func (c *reservationController) ResolveDispute(ctx *fiber.Ctx) error {
	actor := requestActor(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &booking.ValidationError{Field: "id", Reason: "must be a uuid"}
	}

	var req dto.ResolveDisputeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reservationService.ResolveDispute(ctx.Context(), id, actor, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve dispute", res))
}

func (c *reservationController) History(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &booking.ValidationError{Field: "id", Reason: "must be a uuid"}
	}

	res, err := c.reservationService.GetStatusHistory(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show status history", res))
}

func (c *reservationController) Availability(ctx *fiber.Ctx) error {
	resourceId, err := uuid.Parse(ctx.Params("resourceId"))
	if err != nil {
		return &booking.ValidationError{Field: "resource_id", Reason: "must be a uuid"}
	}

	from, err := time.Parse(time.RFC3339, ctx.Query("from"))
	if err != nil {
		return &booking.ValidationError{Field: "from", Reason: "must be RFC3339"}
	}
	to, err := time.Parse(time.RFC3339, ctx.Query("to"))
	if err != nil {
		return &booking.ValidationError{Field: "to", Reason: "must be RFC3339"}
	}

	res, err := c.reservationService.ListByResource(ctx.Context(), resourceId, from, to)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list availability", res))
}
