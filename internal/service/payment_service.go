package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"os"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/dto"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/pkg/logger"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/booking"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/events"
	pktNats "github.com/Dushime20/urutibiz-backend-sub001/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// IPaymentService is the inbound payment adapter: it opens charges for
// pending reservations and translates gateway signals into lifecycle calls.
// Whether a signal arrives via webhook or via the broker, the effect is the
// same Confirm / MarkPaymentFailed call.
type IPaymentService interface {
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	SubscribeBrokerSignals(subscriber *pktNats.Subscriber) error
}

type paymentService struct {
	reservations IReservationService
	log          logger.ILogger
}

func NewPaymentService(reservations IReservationService, log logger.ILogger) IPaymentService {
	return &paymentService{
		reservations: reservations,
		log:          log,
	}
}

func (s *paymentService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	reservation, err := s.reservations.GetById(ctx, req.ReservationId)
	if err != nil {
		return nil, err
	}
	if reservation.Status != string(entity.ReservationStatusPending) {
		return nil, &booking.ValidationError{Field: "reservation_id", Reason: "only pending reservations can be paid"}
	}
	if reservation.Quote == nil {
		return nil, &booking.PricingConfigError{Field: "quote", Reason: "reservation has no quote attached"}
	}

	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)

	grossAmount := reservation.Quote.Total.IntPart()
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  reservation.Id.String(),
			GrossAmt: grossAmount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FirstName,
			LName: req.LastName,
			Email: req.Email,
			Phone: req.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    reservation.ResourceId.String(),
				Price: grossAmount,
				Qty:   1,
				Name:  "Reservation " + reservation.Code,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	return &dto.CheckoutResponse{
		ReservationId:   reservation.Id,
		SnapToken:       snapResp.Token,
		SnapRedirectUrl: snapResp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.log.Warn("payment", "webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return fmt.Errorf("invalid signature")
	}

	reservationId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return fmt.Errorf("invalid order id format")
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		_, err := s.reservations.Confirm(ctx, reservationId, uuid.Nil)
		if err != nil {
			s.log.Error("payment", "failed to confirm paid reservation", map[string]interface{}{
				"reservation_id": reservationId,
				"error":          err.Error(),
			})
			return err
		}
		s.log.Info("payment", "reservation confirmed by payment", map[string]interface{}{
			"reservation_id": reservationId,
		})
		return nil
	case "deny", "cancel", "expire":
		// No status transition: the reservation stays pending and the sweep
		// cancels it when the grace period lapses.
		if err := s.reservations.MarkPaymentFailed(ctx, reservationId); err != nil {
			return err
		}
		s.log.Info("payment", "payment failed for reservation", map[string]interface{}{
			"reservation_id": reservationId,
			"gateway_status": req.TransactionStatus,
		})
		return nil
	case "pending":
		return nil
	default:
		s.log.Warn("payment", "unknown gateway status ignored", map[string]interface{}{
			"order_id": req.OrderId,
			"status":   req.TransactionStatus,
		})
		return nil
	}
}

// SubscribeBrokerSignals wires payment completion events delivered over
// JetStream into the same confirm path the webhook uses.
func (s *paymentService) SubscribeBrokerSignals(subscriber *pktNats.Subscriber) error {
	return subscriber.Subscribe(pktNats.SubjectFor(events.TypePaymentCompleted), "booking-payment-completed", func(ctx context.Context, event events.Event) error {
		payload := event.Payload()
		raw, ok := payload["reservation_id"].(string)
		if !ok {
			s.log.Warn("payment", "payment event missing reservation_id", map[string]interface{}{
				"payload": payload,
			})
			return nil
		}
		reservationId, err := uuid.Parse(raw)
		if err != nil {
			s.log.Warn("payment", "payment event carries malformed reservation_id", map[string]interface{}{
				"reservation_id": raw,
			})
			return nil
		}
		_, err = s.reservations.Confirm(ctx, reservationId, uuid.Nil)
		return err
	})
}
