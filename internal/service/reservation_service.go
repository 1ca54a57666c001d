package service

import (
	"context"
	"strings"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/dto"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/pkg/logger"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/specification"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/unitofwork"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/booking"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/events"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/lock"
	pktNats "github.com/Dushime20/urutibiz-backend-sub001/pkg/nats"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/policy"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Actor identifies who is performing an operation. Admin is derived from the
// token's role claim; owner and requester standing is checked per reservation.
type Actor struct {
	Id    uuid.UUID
	Admin bool
}

type IReservationService interface {
	Create(ctx context.Context, requesterId uuid.UUID, req *dto.CreateReservationRequest) (*dto.ReservationResponse, error)
	PreviewQuote(ctx context.Context, req *dto.PreviewQuoteRequest) (*dto.QuoteDTO, error)
	Confirm(ctx context.Context, id uuid.UUID, actorId uuid.UUID) (*dto.ReservationResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, actor Actor, req *dto.CancelReservationRequest) (*dto.CancelReservationResponse, error)
	Dispute(ctx context.Context, id uuid.UUID, actor Actor, req *dto.DisputeRequest) (*dto.ReservationResponse, error)
	ResolveDispute(ctx context.Context, id uuid.UUID, actor Actor, req *dto.ResolveDisputeRequest) (*dto.ReservationResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.ReservationResponse, error)
	ListByResource(ctx context.Context, resourceId uuid.UUID, from, to time.Time) (*dto.ResourceAvailabilityResponse, error)
	GetStatusHistory(ctx context.Context, id uuid.UUID) ([]*dto.StatusHistoryResponse, error)

	// MarkPaymentFailed records a failed charge without touching the status;
	// the sweep cancels the reservation once the grace period lapses.
	MarkPaymentFailed(ctx context.Context, id uuid.UUID) error

	// ApplyChange executes one time-driven transition on behalf of the sweep.
	ApplyChange(ctx context.Context, change booking.Change) error
}

type reservationService struct {
	uowFactory     unitofwork.RepositoryFactory
	locks          lock.Manager
	catalog        ICatalogService
	verifier       IdentityVerifier
	eventPublisher *pktNats.Publisher
	log            logger.ILogger

	gracePeriod     time.Duration
	defaultCurrency string
}

func NewReservationService(
	uowFactory unitofwork.RepositoryFactory,
	locks lock.Manager,
	catalog ICatalogService,
	verifier IdentityVerifier,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	gracePeriod time.Duration,
	defaultCurrency string,
) IReservationService {
	if verifier == nil {
		verifier = AllowAllVerifier{}
	}
	return &reservationService{
		uowFactory:      uowFactory,
		locks:           locks,
		catalog:         catalog,
		verifier:        verifier,
		eventPublisher:  eventPublisher,
		log:             log,
		gracePeriod:     gracePeriod,
		defaultCurrency: defaultCurrency,
	}
}

func (s *reservationService) Create(ctx context.Context, requesterId uuid.UUID, req *dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	now := time.Now()
	if err := validateWindow(req.StartAt, req.EndAt, now); err != nil {
		return nil, err
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	verified, err := s.verifier.Verified(ctx, requesterId)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, &booking.ValidationError{Field: "requester_id", Reason: "identity verification required"}
	}

	resource, err := s.catalog.GetResource(ctx, req.ResourceId)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, &booking.ValidationError{Field: "resource_id", Reason: "resource does not exist"}
	}
	if !resource.Active() {
		return nil, &booking.ValidationError{Field: "resource_id", Reason: "resource is not accepting bookings"}
	}
	if requesterId == resource.OwnerId {
		return nil, &booking.ValidationError{Field: "requester_id", Reason: "owners cannot reserve their own resource"}
	}

	card, err := s.catalog.GetActiveRateCard(ctx, req.ResourceId, req.StartAt)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, &booking.PricingConfigError{Field: "rate_card", Reason: "no active rate card for resource"}
	}
	if err := checkDurationBounds(card, req.StartAt, req.EndAt); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	quote, err := pricing.Calculate(pricing.Input{
		Card:          card,
		Window:        pricing.Window{Start: req.StartAt, End: req.EndAt},
		Quantity:      quantity,
		Currency:      currency,
		InsuranceType: req.InsuranceType,
	})
	if err != nil {
		return nil, err
	}

	release, err := s.locks.Acquire(ctx, req.ResourceId.String())
	if err != nil {
		return nil, err
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if req.ParentId != nil {
		if err := validateLineage(ctx, uow, *req.ParentId); err != nil {
			return nil, err
		}
	}

	overlapping, err := uow.ReservationRepository().CountOverlapping(ctx, req.ResourceId, req.StartAt, req.EndAt, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, &booking.ConflictError{ResourceId: req.ResourceId, StartAt: req.StartAt, EndAt: req.EndAt}
	}

	reservation := &entity.Reservation{
		Id:            uuid.New(),
		Code:          generateCode(),
		RequesterId:   requesterId,
		OwnerId:       resource.OwnerId,
		ResourceId:    req.ResourceId,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		Quantity:      quantity,
		Status:        entity.ReservationStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		Quote:         quote,
		ExpiresAt:     now.Add(s.gracePeriod),
		ParentId:      req.ParentId,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uow.ReservationRepository().Create(ctx, reservation); err != nil {
		return nil, err
	}
	if err := s.appendHistory(ctx, uow, reservation, "", entity.ReservationStatusPending, requesterId, booking.ReasonCreated); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishTransition(ctx, reservation, booking.ReasonCreated)
	return toReservationResponse(reservation), nil
}

// PreviewQuote prices a window without reserving anything.
func (s *reservationService) PreviewQuote(ctx context.Context, req *dto.PreviewQuoteRequest) (*dto.QuoteDTO, error) {
	if err := validateWindow(req.StartAt, req.EndAt, time.Now()); err != nil {
		return nil, err
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	card, err := s.catalog.GetActiveRateCard(ctx, req.ResourceId, req.StartAt)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, &booking.PricingConfigError{Field: "rate_card", Reason: "no active rate card for resource"}
	}
	if err := checkDurationBounds(card, req.StartAt, req.EndAt); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	quote, err := pricing.Calculate(pricing.Input{
		Card:          card,
		Window:        pricing.Window{Start: req.StartAt, End: req.EndAt},
		Quantity:      quantity,
		Currency:      currency,
		InsuranceType: req.InsuranceType,
	})
	if err != nil {
		return nil, err
	}
	return toQuoteDTO(quote), nil
}

func (s *reservationService) Confirm(ctx context.Context, id uuid.UUID, actorId uuid.UUID) (*dto.ReservationResponse, error) {
	reservation, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}

	// A duplicate payment signal on an already confirmed reservation is
	// acknowledged, not rejected.
	if reservation.Status == entity.ReservationStatusConfirmed {
		return toReservationResponse(reservation), nil
	}
	if err := booking.EnsureTransition(reservation.Status, entity.ReservationStatusConfirmed); err != nil {
		return nil, err
	}

	release, err := s.locks.Acquire(ctx, reservation.ResourceId.String())
	if err != nil {
		return nil, err
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Re-read and re-check under the scope: the window was not blocking
	// while pending, so another reservation may have confirmed in between.
	reservation, err = uow.ReservationRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, booking.ErrNotFound
	}
	if reservation.Status == entity.ReservationStatusConfirmed {
		return toReservationResponse(reservation), nil
	}
	if err := booking.EnsureTransition(reservation.Status, entity.ReservationStatusConfirmed); err != nil {
		return nil, err
	}

	overlapping, err := uow.ReservationRepository().CountOverlapping(ctx, reservation.ResourceId, reservation.StartAt, reservation.EndAt, reservation.Id)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, &booking.ConflictError{ResourceId: reservation.ResourceId, StartAt: reservation.StartAt, EndAt: reservation.EndAt}
	}

	previous := reservation.Status
	reservation.Status = entity.ReservationStatusConfirmed
	reservation.PaymentStatus = entity.PaymentStatusCompleted
	reservation.ExpiresAt = time.Time{}
	reservation.UpdatedAt = time.Now()

	if err := uow.ReservationRepository().Update(ctx, reservation); err != nil {
		return nil, err
	}
	if err := s.appendHistory(ctx, uow, reservation, previous, entity.ReservationStatusConfirmed, actorId, booking.ReasonPaymentCompleted); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishTransition(ctx, reservation, booking.ReasonPaymentCompleted)
	return toReservationResponse(reservation), nil
}

func (s *reservationService) Cancel(ctx context.Context, id uuid.UUID, actor Actor, req *dto.CancelReservationRequest) (*dto.CancelReservationResponse, error) {
	reservation, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := booking.EnsureTransition(reservation.Status, entity.ReservationStatusCancelled); err != nil {
		return nil, err
	}
	if err := authorizeCancel(reservation, actor, req.Force); err != nil {
		return nil, err
	}
	if err := ensureNotStarted(reservation, req.Force, time.Now()); err != nil {
		return nil, err
	}

	release, err := s.locks.Acquire(ctx, reservation.ResourceId.String())
	if err != nil {
		return nil, err
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	reservation, err = uow.ReservationRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, booking.ErrNotFound
	}
	if err := booking.EnsureTransition(reservation.Status, entity.ReservationStatusCancelled); err != nil {
		return nil, err
	}
	if err := ensureNotStarted(reservation, req.Force, time.Now()); err != nil {
		return nil, err
	}

	breakdown, reason, err := s.computeCancellation(ctx, reservation, req.Force)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	previous := reservation.Status
	reservation.Status = entity.ReservationStatusCancelled
	reservation.Cancellation = &entity.CancellationRecord{
		RequestedBy:  actor.Id,
		Reason:       req.Reason,
		PolicyTier:   breakdown.PolicyTier,
		RefundAmount: breakdown.RefundAmount,
		FeeAmount:    breakdown.FeeAmount,
		DecidedBy:    actor.Id,
		DecidedAt:    now,
	}
	if reservation.PaymentStatus == entity.PaymentStatusCompleted {
		switch {
		case breakdown.RefundAmount.IsZero():
			// Nothing returned, payment state stands.
		case breakdown.FeeAmount.IsZero():
			reservation.PaymentStatus = entity.PaymentStatusRefunded
		default:
			reservation.PaymentStatus = entity.PaymentStatusPartiallyRefunded
		}
	}
	reservation.UpdatedAt = now

	if err := uow.ReservationRepository().Update(ctx, reservation); err != nil {
		return nil, err
	}
	if err := s.appendHistory(ctx, uow, reservation, previous, entity.ReservationStatusCancelled, actor.Id, reason); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishTransition(ctx, reservation, reason)
	if reservation.PaymentStatus == entity.PaymentStatusRefunded || reservation.PaymentStatus == entity.PaymentStatusPartiallyRefunded {
		s.publishEvent(ctx, events.TypeRefundRequested, map[string]interface{}{
			"reservation_id": reservation.Id,
			"refund_amount":  breakdown.RefundAmount,
			"fee_amount":     breakdown.FeeAmount,
			"currency":       breakdown.Currency,
		})
	}

	return &dto.CancelReservationResponse{
		Id:           reservation.Id,
		Status:       string(reservation.Status),
		RefundAmount: breakdown.RefundAmount,
		FeeAmount:    breakdown.FeeAmount,
		Currency:     breakdown.Currency,
	}, nil
}

// computeCancellation resolves the refund schedule for a cancellation. A
// reservation that never captured payment refunds nothing; a forced
// cancellation refunds the whole refundable total regardless of timing.
func (s *reservationService) computeCancellation(ctx context.Context, reservation *entity.Reservation, force bool) (policy.Breakdown, string, error) {
	currency := s.defaultCurrency
	if reservation.Quote != nil {
		currency = reservation.Quote.Currency
	}

	if reservation.PaymentStatus != entity.PaymentStatusCompleted || reservation.Quote == nil {
		return policy.Breakdown{Currency: currency, RefundAmount: decimal.Zero, FeeAmount: decimal.Zero}, booking.ReasonCancelledByUser, nil
	}

	resource, err := s.catalog.GetResource(ctx, reservation.ResourceId)
	if err != nil {
		return policy.Breakdown{}, "", err
	}
	if resource == nil {
		return policy.Breakdown{}, "", booking.ErrNotFound
	}

	cancelPolicy, err := s.catalog.GetPolicy(ctx, resource.PolicyTier)
	if err != nil {
		return policy.Breakdown{}, "", err
	}
	if cancelPolicy == nil {
		return policy.Breakdown{}, "", &booking.PricingConfigError{Field: "cancellation_policy", Reason: "no policy configured for tier " + string(resource.PolicyTier)}
	}

	refundable := policy.RefundableTotal(cancelPolicy, reservation.Quote)
	if force {
		refundable = pricing.RoundComponent(refundable, currency)
		return policy.Breakdown{
			PolicyTier:   cancelPolicy.Tier,
			RefundPct:    decimal.NewFromInt(1),
			RefundAmount: refundable,
			FeeAmount:    decimal.Zero,
			Currency:     currency,
		}, booking.ReasonForcedCancellation, nil
	}

	days := policy.DaysUntilStart(time.Now(), reservation.StartAt)
	return policy.ComputeRefund(cancelPolicy, days, refundable, currency), booking.ReasonCancelledByUser, nil
}

// Dispute opens a dispute on a running or completed rental. Only the
// resource owner or an operator may raise one.
func (s *reservationService) Dispute(ctx context.Context, id uuid.UUID, actor Actor, req *dto.DisputeRequest) (*dto.ReservationResponse, error) {
	return s.transition(ctx, id, actor.Id, entity.ReservationStatusDisputed, booking.ReasonDisputeOpened, func(r *entity.Reservation) bool {
		return actor.Admin || actor.Id == r.OwnerId
	})
}

// ResolveDispute closes a dispute to its outcome. Operator only.
func (s *reservationService) ResolveDispute(ctx context.Context, id uuid.UUID, actor Actor, req *dto.ResolveDisputeRequest) (*dto.ReservationResponse, error) {
	outcome := entity.ReservationStatus(req.Outcome)
	return s.transition(ctx, id, actor.Id, outcome, booking.ReasonDisputeResolved, func(*entity.Reservation) bool {
		return actor.Admin
	})
}

// transition applies a plain status change with no side computation. Used by
// the dispute flows; richer flows keep their own bodies.
func (s *reservationService) transition(ctx context.Context, id uuid.UUID, actorId uuid.UUID, to entity.ReservationStatus, reason string, allowed func(*entity.Reservation) bool) (*dto.ReservationResponse, error) {
	reservation, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	if !allowed(reservation) {
		return nil, booking.ErrForbidden
	}
	if err := booking.EnsureTransition(reservation.Status, to); err != nil {
		return nil, err
	}

	release, err := s.locks.Acquire(ctx, reservation.ResourceId.String())
	if err != nil {
		return nil, err
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	reservation, err = uow.ReservationRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, booking.ErrNotFound
	}
	if err := booking.EnsureTransition(reservation.Status, to); err != nil {
		return nil, err
	}

	previous := reservation.Status
	reservation.Status = to
	reservation.UpdatedAt = time.Now()

	if err := uow.ReservationRepository().Update(ctx, reservation); err != nil {
		return nil, err
	}
	if err := s.appendHistory(ctx, uow, reservation, previous, to, actorId, reason); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishTransition(ctx, reservation, reason)
	return toReservationResponse(reservation), nil
}

func (s *reservationService) GetById(ctx context.Context, id uuid.UUID) (*dto.ReservationResponse, error) {
	reservation, err := s.mustFind(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReservationResponse(reservation), nil
}

func (s *reservationService) ListByResource(ctx context.Context, resourceId uuid.UUID, from, to time.Time) (*dto.ResourceAvailabilityResponse, error) {
	if !to.After(from) {
		return nil, &booking.ValidationError{Field: "range", Reason: "to must be after from"}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	reservations, err := uow.ReservationRepository().FindAll(ctx,
		specification.ByResource{ResourceID: resourceId},
		specification.ByStatuses{Statuses: []string{
			string(entity.ReservationStatusConfirmed),
			string(entity.ReservationStatusInProgress),
		}},
		specification.WindowWithin{From: from, To: to},
		specification.OrderBy{Field: "start_at"},
	)
	if err != nil {
		return nil, err
	}

	booked := make([]dto.AvailabilityWindow, 0, len(reservations))
	for _, r := range reservations {
		booked = append(booked, dto.AvailabilityWindow{
			StartAt: r.StartAt,
			EndAt:   r.EndAt,
			Status:  string(r.Status),
		})
	}
	return &dto.ResourceAvailabilityResponse{
		ResourceId: resourceId,
		From:       from,
		To:         to,
		Booked:     booked,
	}, nil
}

func (s *reservationService) GetStatusHistory(ctx context.Context, id uuid.UUID) ([]*dto.StatusHistoryResponse, error) {
	if _, err := s.mustFind(ctx, id); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.StatusHistoryRepository().FindByReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.StatusHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dto.StatusHistoryResponse{
			PreviousStatus: string(e.PreviousStatus),
			NewStatus:      string(e.NewStatus),
			ActorId:        e.ActorId,
			Reason:         e.Reason,
			CreatedAt:      e.CreatedAt,
		})
	}
	return out, nil
}

func (s *reservationService) MarkPaymentFailed(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	reservation, err := uow.ReservationRepository().FindById(ctx, id)
	if err != nil {
		return err
	}
	if reservation == nil {
		return booking.ErrNotFound
	}

	reservation.PaymentStatus = entity.PaymentStatusFailed
	reservation.UpdatedAt = time.Now()
	if err := uow.ReservationRepository().Update(ctx, reservation); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *reservationService) ApplyChange(ctx context.Context, change booking.Change) error {
	release, err := s.locks.Acquire(ctx, change.ResourceId.String())
	if err != nil {
		return err
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	reservation, err := uow.ReservationRepository().FindById(ctx, change.ReservationId)
	if err != nil {
		return err
	}
	if reservation == nil {
		return booking.ErrNotFound
	}
	// Someone moved the reservation between snapshot and apply; the next
	// sweep pass re-evaluates it, so this pass is a no-op.
	if reservation.Status != change.From {
		return nil
	}
	if err := booking.EnsureTransition(change.From, change.To); err != nil {
		return err
	}

	reservation.Status = change.To
	reservation.UpdatedAt = time.Now()
	if change.Reason == booking.ReasonGraceExpired {
		reservation.Cancellation = &entity.CancellationRecord{
			Reason:       change.Reason,
			RefundAmount: decimal.Zero,
			FeeAmount:    decimal.Zero,
			DecidedAt:    time.Now(),
		}
	}

	if err := uow.ReservationRepository().Update(ctx, reservation); err != nil {
		return err
	}
	if err := s.appendHistory(ctx, uow, reservation, change.From, change.To, uuid.Nil, change.Reason); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishTransition(ctx, reservation, change.Reason)
	return nil
}

// helpers

func (s *reservationService) mustFind(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	reservation, err := uow.ReservationRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, booking.ErrNotFound
	}
	return reservation, nil
}

func (s *reservationService) appendHistory(ctx context.Context, uow unitofwork.UnitOfWork, r *entity.Reservation, from, to entity.ReservationStatus, actorId uuid.UUID, reason string) error {
	return uow.StatusHistoryRepository().Create(ctx, &entity.StatusHistory{
		Id:             uuid.New(),
		ReservationId:  r.Id,
		PreviousStatus: from,
		NewStatus:      to,
		ActorId:        actorId,
		Reason:         reason,
		CreatedAt:      time.Now(),
	})
}

func (s *reservationService) publishTransition(ctx context.Context, r *entity.Reservation, reason string) {
	s.publishEvent(ctx, events.TransitionType(string(r.Status)), map[string]interface{}{
		"reservation_id": r.Id,
		"resource_id":    r.ResourceId,
		"requester_id":   r.RequesterId,
		"status":         r.Status,
		"reason":         reason,
	})
}

func (s *reservationService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	// The transition is already durable; a broker hiccup must not fail the
	// request.
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("reservation", "failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

func validateWindow(start, end, now time.Time) error {
	if start.IsZero() || end.IsZero() {
		return &booking.ValidationError{Field: "window", Reason: "start_at and end_at are required"}
	}
	if !end.After(start) {
		return &booking.ValidationError{Field: "window", Reason: "end_at must be after start_at"}
	}
	if start.Before(now) {
		return &booking.ValidationError{Field: "start_at", Reason: "must be in the future"}
	}
	return nil
}

// authorizeCancel gates the cancel flow: requester and owner may cancel,
// only owner or an operator may force a full refund past the schedule.
func authorizeCancel(r *entity.Reservation, actor Actor, force bool) error {
	if actor.Admin {
		return nil
	}
	if force {
		if actor.Id == r.OwnerId {
			return nil
		}
		return booking.ErrForbidden
	}
	if actor.Id == r.RequesterId || actor.Id == r.OwnerId {
		return nil
	}
	return booking.ErrForbidden
}

// ensureNotStarted rejects a non-forced cancel once the rental window has
// begun; from then on the dispute flow is the only way out.
func ensureNotStarted(r *entity.Reservation, force bool, now time.Time) error {
	if force || r.Status != entity.ReservationStatusConfirmed {
		return nil
	}
	if !now.Before(r.StartAt) {
		return &booking.ValidationError{Field: "start_at", Reason: "rental already started, open a dispute instead"}
	}
	return nil
}

// validateLineage checks that a rebooking's parent exists and that walking
// the parent chain terminates without revisiting a reservation.
func validateLineage(ctx context.Context, uow unitofwork.UnitOfWork, parentId uuid.UUID) error {
	seen := map[uuid.UUID]bool{}
	next := parentId
	for {
		if seen[next] {
			return &booking.ValidationError{Field: "parent_id", Reason: "reservation lineage contains a cycle"}
		}
		seen[next] = true

		parent, err := uow.ReservationRepository().FindById(ctx, next)
		if err != nil {
			return err
		}
		if parent == nil {
			if next == parentId {
				return &booking.ValidationError{Field: "parent_id", Reason: "parent reservation does not exist"}
			}
			return nil
		}
		if parent.ParentId == nil {
			return nil
		}
		next = *parent.ParentId
	}
}

func checkDurationBounds(card *entity.RateCard, start, end time.Time) error {
	hours := int(end.Sub(start).Hours())
	if card.MinDurationHours > 0 && hours < card.MinDurationHours {
		return &booking.ValidationError{Field: "window", Reason: "below the resource's minimum rental duration"}
	}
	if card.MaxDurationHours > 0 && hours > card.MaxDurationHours {
		return &booking.ValidationError{Field: "window", Reason: "above the resource's maximum rental duration"}
	}
	return nil
}

// generateCode builds the short human-readable reference shown on invoices.
func generateCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "RSV-" + strings.ToUpper(raw[:10])
}

func toQuoteDTO(q *entity.Quote) *dto.QuoteDTO {
	if q == nil {
		return nil
	}
	return &dto.QuoteDTO{
		Currency:     q.Currency,
		ExchangeRate: q.ExchangeRate,
		RateTier:     string(q.RateTier),
		Units:        q.Units,
		Subtotal:     q.Subtotal,
		Discount:     q.Discount,
		Deposit:      q.Deposit,
		ServiceFee:   q.ServiceFee,
		Tax:          q.Tax,
		Insurance:    q.Insurance,
		Total:        q.Total,
	}
}

func toReservationResponse(r *entity.Reservation) *dto.ReservationResponse {
	res := &dto.ReservationResponse{
		Id:            r.Id,
		Code:          r.Code,
		ResourceId:    r.ResourceId,
		RequesterId:   r.RequesterId,
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		Quantity:      r.Quantity,
		Status:        string(r.Status),
		PaymentStatus: string(r.PaymentStatus),
		Quote:         toQuoteDTO(r.Quote),
		ParentId:      r.ParentId,
		CreatedAt:     r.CreatedAt,
	}
	if !r.ExpiresAt.IsZero() {
		expires := r.ExpiresAt
		res.ExpiresAt = &expires
	}
	if r.Cancellation != nil {
		res.Cancellation = &dto.CancellationDTO{
			Reason:       r.Cancellation.Reason,
			PolicyTier:   string(r.Cancellation.PolicyTier),
			RefundAmount: r.Cancellation.RefundAmount,
			FeeAmount:    r.Cancellation.FeeAmount,
			DecidedAt:    r.Cancellation.DecidedAt,
		}
	}
	return res
}
