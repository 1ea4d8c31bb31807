// Package persistence implements the payments repository.
//
// The one-live-attempt rule rides on the ActiveOrderID column: it holds the
// order ID while the attempt is live (PENDING or COMPLETED) and NULL once
// the attempt fails. A null-filtered unique index over it makes a second
// live attempt an AlreadyExists error at commit time, which surfaces as
// ErrDuplicatePayment.
package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/rai/fooddelivery-go/internal/platform/spanner"
	"github.com/rai/fooddelivery-go/modules/payments/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

var paymentColumns = []string{
	"PaymentID", "OrderID", "ActiveOrderID", "Amount", "Currency", "Status",
	"GatewayOrderID", "GatewayPaymentID", "GatewaySignature",
	"PaymentMethod", "PaymentTime",
	"ErrorCode", "ErrorDescription", "CreatedAt", "UpdatedAt",
}

// SpannerRepository persists payments in the Payments table.
type SpannerRepository struct {
	client *spanner.Client
}

func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

func (r *SpannerRepository) Insert(ctx context.Context, payment *domain.Payment) error {
	m := spanner.Insert("Payments", paymentColumns, paymentValues(payment))

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite([]*spanner.Mutation{m})
	}
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{m}); err != nil {
		if spanner.ErrCode(err) == codes.AlreadyExists {
			return domain.ErrDuplicatePayment
		}
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (r *SpannerRepository) Update(ctx context.Context, payment *domain.Payment) error {
	m := spanner.Update("Payments", paymentColumns, paymentValues(payment))

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite([]*spanner.Mutation{m})
	}
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{m}); err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.ErrPaymentNotFound
		}
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindByID(ctx context.Context, id domain.PaymentID) (*domain.Payment, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	row, err := reader.ReadRow(ctx, "Payments", spanner.Key{id.String()}, paymentColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to read payment: %w", err)
	}
	return scanPayment(row)
}

func (r *SpannerRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Payment, error) {
	stmt := spanner.Statement{
		SQL: `SELECT PaymentID, OrderID, ActiveOrderID, Amount, Currency, Status,
		             GatewayOrderID, GatewayPaymentID, GatewaySignature,
		             PaymentMethod, PaymentTime,
		             ErrorCode, ErrorDescription, CreatedAt, UpdatedAt
		      FROM Payments@{FORCE_INDEX=PaymentsByGatewayOrder}
		      WHERE GatewayOrderID = @gatewayOrderID`,
		Params: map[string]interface{}{"gatewayOrderID": gatewayOrderID},
	}
	return r.queryOne(ctx, stmt)
}

func (r *SpannerRepository) FindLatestByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	stmt := spanner.Statement{
		SQL: `SELECT PaymentID, OrderID, ActiveOrderID, Amount, Currency, Status,
		             GatewayOrderID, GatewayPaymentID, GatewaySignature,
		             PaymentMethod, PaymentTime,
		             ErrorCode, ErrorDescription, CreatedAt, UpdatedAt
		      FROM Payments@{FORCE_INDEX=PaymentsByOrder}
		      WHERE OrderID = @orderID
		      ORDER BY CreatedAt DESC
		      LIMIT 1`,
		Params: map[string]interface{}{"orderID": orderID},
	}
	return r.queryOne(ctx, stmt)
}

func (r *SpannerRepository) queryOne(ctx context.Context, stmt spanner.Statement) (*domain.Payment, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query payment: %w", err)
	}
	return scanPayment(row)
}

func paymentValues(payment *domain.Payment) []interface{} {
	var active spanner.NullString
	if payment.Status().IsLive() {
		active = spanner.NullString{StringVal: payment.OrderID(), Valid: true}
	}
	var paymentTime spanner.NullTime
	if t := payment.PaymentTime(); !t.IsZero() {
		paymentTime = spanner.NullTime{Time: t, Valid: true}
	}
	return []interface{}{
		payment.ID().String(),
		payment.OrderID(),
		active,
		payment.Amount().Amount(),
		payment.Amount().Currency(),
		payment.Status().String(),
		payment.GatewayOrderID(),
		payment.GatewayPaymentID(),
		payment.GatewaySignature(),
		payment.PaymentMethod(),
		paymentTime,
		payment.ErrorCode(),
		payment.ErrorDescription(),
		payment.CreatedAt(),
		payment.UpdatedAt(),
	}
}

func scanPayment(row *spanner.Row) (*domain.Payment, error) {
	var (
		id, orderID, currency, status               string
		activeOrderID                               spanner.NullString
		amount                                      int64
		gatewayOrderID, gatewayPaymentID, signature string
		paymentMethod                               string
		paymentTime                                 spanner.NullTime
		errorCode, errorDescription                 string
		createdAt, updatedAt                        time.Time
	)

	if err := row.Columns(&id, &orderID, &activeOrderID, &amount, &currency, &status,
		&gatewayOrderID, &gatewayPaymentID, &signature,
		&paymentMethod, &paymentTime,
		&errorCode, &errorDescription, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}

	paymentID, err := domain.ParsePaymentID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse payment id: %w", err)
	}

	params := domain.ReconstitutePaymentParams{
		ID:               paymentID,
		OrderID:          orderID,
		Amount:           types.MustNewMoney(amount, currency),
		Status:           domain.Status(status),
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: gatewayPaymentID,
		GatewaySignature: signature,
		PaymentMethod:    paymentMethod,
		ErrorCode:        errorCode,
		ErrorDescription: errorDescription,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
	if paymentTime.Valid {
		params.PaymentTime = paymentTime.Time
	}
	return domain.Reconstitute(params), nil
}

var _ domain.Repository = (*SpannerRepository)(nil)
