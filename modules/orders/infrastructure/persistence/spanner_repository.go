// Package persistence implements the orders repository.
//
// Orders live in the Orders table with item snapshots in the interleaved
// OrderItems table. OrderNumber carries a unique index; an insert that
// collides on it surfaces as ErrDuplicateOrderNumber.
package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/rai/fooddelivery-go/internal/platform/spanner"
	"github.com/rai/fooddelivery-go/modules/orders/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

var orderColumns = []string{
	"OrderID", "OrderNumber", "UserID", "RestaurantID", "RestaurantName",
	"SubtotalAmount", "DeliveryFeeAmount", "TaxAmount", "TotalAmount", "Currency",
	"Status", "PaymentStatus", "PaymentMethod",
	"DeliveryAddress", "DeliveryPhone", "DeliveryInstructions",
	"DeliveryPersonName", "DeliveryPersonPhone",
	"EstimatedDeliveryTime", "ActualDeliveryTime",
	"CreatedAt", "UpdatedAt",
}

var orderItemColumns = []string{
	"OrderID", "LineNumber", "MenuItemID", "MenuItemName",
	"Quantity", "UnitPriceAmount", "TotalPriceAmount", "SpecialInstructions",
}

// SpannerRepository persists orders in Cloud Spanner.
type SpannerRepository struct {
	client *spanner.Client
}

func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

func (r *SpannerRepository) Insert(ctx context.Context, order *domain.Order) error {
	mutations := make([]*spanner.Mutation, 0, len(order.Items())+1)
	mutations = append(mutations, spanner.Insert("Orders", orderColumns, orderValues(order)))
	for i, item := range order.Items() {
		mutations = append(mutations, spanner.Insert("OrderItems", orderItemColumns, []interface{}{
			order.ID().String(),
			int64(i + 1),
			item.MenuItemID,
			item.MenuItemName,
			int64(item.Quantity),
			item.UnitPrice.Amount(),
			item.TotalPrice.Amount(),
			item.SpecialInstructions,
		}))
	}

	apply := func() error {
		if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
			return tx.BufferWrite(mutations)
		}
		_, err := r.client.Apply(ctx, mutations)
		return err
	}

	if err := apply(); err != nil {
		if spanner.ErrCode(err) == codes.AlreadyExists {
			return domain.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *SpannerRepository) Update(ctx context.Context, order *domain.Order) error {
	// Item snapshots are immutable; only the order row changes.
	m := spanner.Update("Orders", orderColumns, orderValues(order))

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		if err := tx.BufferWrite([]*spanner.Mutation{m}); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	}
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{m}); err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.ErrOrderNotFound
		}
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	row, err := reader.ReadRow(ctx, "Orders", spanner.Key{id.String()}, orderColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	items, err := r.readItems(ctx, reader, id.String())
	if err != nil {
		return nil, err
	}
	return scanOrder(row, items)
}

func (r *SpannerRepository) ListByUser(ctx context.Context, userID domain.UserRef, limit, offset int) ([]*domain.Order, error) {
	stmt := spanner.Statement{
		SQL: listSQL("UserID", "OrdersByUser"),
		Params: map[string]interface{}{
			"key":    userID.String(),
			"limit":  int64(limit),
			"offset": int64(offset),
		},
	}
	return r.list(ctx, stmt)
}

func (r *SpannerRepository) ListByRestaurant(ctx context.Context, restaurantID domain.RestaurantRef, limit, offset int) ([]*domain.Order, error) {
	stmt := spanner.Statement{
		SQL: listSQL("RestaurantID", "OrdersByRestaurant"),
		Params: map[string]interface{}{
			"key":    restaurantID.String(),
			"limit":  int64(limit),
			"offset": int64(offset),
		},
	}
	return r.list(ctx, stmt)
}

func listSQL(keyColumn, index string) string {
	return fmt.Sprintf(`SELECT OrderID, OrderNumber, UserID, RestaurantID, RestaurantName,
	       SubtotalAmount, DeliveryFeeAmount, TaxAmount, TotalAmount, Currency,
	       Status, PaymentStatus, PaymentMethod,
	       DeliveryAddress, DeliveryPhone, DeliveryInstructions,
	       DeliveryPersonName, DeliveryPersonPhone,
	       EstimatedDeliveryTime, ActualDeliveryTime,
	       CreatedAt, UpdatedAt
	FROM Orders@{FORCE_INDEX=%s}
	WHERE %s = @key
	ORDER BY CreatedAt DESC
	LIMIT @limit OFFSET @offset`, index, keyColumn)
}

func (r *SpannerRepository) list(ctx context.Context, stmt spanner.Statement) ([]*domain.Order, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	var orders []*domain.Order
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query orders: %w", err)
		}

		var orderID string
		if err := row.Column(0, &orderID); err != nil {
			return nil, fmt.Errorf("failed to scan order id: %w", err)
		}
		items, err := r.readItems(ctx, reader, orderID)
		if err != nil {
			return nil, err
		}
		order, err := scanOrder(row, items)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *SpannerRepository) readItems(ctx context.Context, reader platformspanner.ReadTransaction, orderID string) ([]domain.OrderItem, error) {
	stmt := spanner.Statement{
		SQL: `SELECT MenuItemID, MenuItemName, Quantity, UnitPriceAmount, TotalPriceAmount,
		             SpecialInstructions, Currency
		      FROM OrderItems
		      JOIN Orders USING (OrderID)
		      WHERE OrderID = @orderID
		      ORDER BY LineNumber`,
		Params: map[string]interface{}{"orderID": orderID},
	}

	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	var items []domain.OrderItem
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query order items: %w", err)
		}

		var (
			menuItemID, menuItemName, instructions, currency string
			quantity, unitPrice, totalPrice                  int64
		)
		if err := row.Columns(&menuItemID, &menuItemName, &quantity, &unitPrice,
			&totalPrice, &instructions, &currency); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items = append(items, domain.OrderItem{
			MenuItemID:          menuItemID,
			MenuItemName:        menuItemName,
			Quantity:            int(quantity),
			UnitPrice:           types.MustNewMoney(unitPrice, currency),
			TotalPrice:          types.MustNewMoney(totalPrice, currency),
			SpecialInstructions: instructions,
		})
	}
	return items, nil
}

func orderValues(order *domain.Order) []interface{} {
	var actual spanner.NullTime
	if t := order.ActualDeliveryTime(); !t.IsZero() {
		actual = spanner.NullTime{Time: t, Valid: true}
	}
	return []interface{}{
		order.ID().String(),
		order.OrderNumber(),
		order.UserID().String(),
		order.RestaurantID().String(),
		order.RestaurantName(),
		order.Subtotal().Amount(),
		order.DeliveryFee().Amount(),
		order.Tax().Amount(),
		order.TotalAmount().Amount(),
		order.TotalAmount().Currency(),
		order.Status().String(),
		order.PaymentStatus().String(),
		order.PaymentMethod(),
		order.DeliveryAddress(),
		order.DeliveryPhone(),
		order.DeliveryInstructions(),
		order.DeliveryPersonName(),
		order.DeliveryPersonPhone(),
		order.EstimatedDeliveryTime(),
		actual,
		order.CreatedAt(),
		order.UpdatedAt(),
	}
}

func scanOrder(row *spanner.Row, items []domain.OrderItem) (*domain.Order, error) {
	var (
		id, orderNumber, userID, restaurantID, restaurantName      string
		subtotal, deliveryFee, tax, total                          int64
		currency, status, paymentStatus, paymentMethod             string
		deliveryAddress, deliveryPhone, deliveryInstructions       string
		deliveryPersonName, deliveryPersonPhone                    string
		estimatedDeliveryTime, createdAt, updatedAt                time.Time
		actualDeliveryTime                                         spanner.NullTime
	)

	if err := row.Columns(&id, &orderNumber, &userID, &restaurantID, &restaurantName,
		&subtotal, &deliveryFee, &tax, &total, &currency,
		&status, &paymentStatus, &paymentMethod,
		&deliveryAddress, &deliveryPhone, &deliveryInstructions,
		&deliveryPersonName, &deliveryPersonPhone,
		&estimatedDeliveryTime, &actualDeliveryTime,
		&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	orderID, err := domain.ParseOrderID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order id: %w", err)
	}

	var actual time.Time
	if actualDeliveryTime.Valid {
		actual = actualDeliveryTime.Time
	}

	return domain.Reconstitute(domain.ReconstituteOrderParams{
		ID:                    orderID,
		OrderNumber:           orderNumber,
		UserID:                domain.MustNewUserRef(userID),
		RestaurantID:          domain.MustNewRestaurantRef(restaurantID),
		RestaurantName:        restaurantName,
		Items:                 items,
		Subtotal:              types.MustNewMoney(subtotal, currency),
		DeliveryFee:           types.MustNewMoney(deliveryFee, currency),
		Tax:                   types.MustNewMoney(tax, currency),
		TotalAmount:           types.MustNewMoney(total, currency),
		Status:                domain.Status(status),
		PaymentStatus:         domain.PaymentStatus(paymentStatus),
		PaymentMethod:         paymentMethod,
		DeliveryAddress:       deliveryAddress,
		DeliveryPhone:         deliveryPhone,
		DeliveryInstructions:  deliveryInstructions,
		DeliveryPersonName:    deliveryPersonName,
		DeliveryPersonPhone:   deliveryPersonPhone,
		EstimatedDeliveryTime: estimatedDeliveryTime,
		ActualDeliveryTime:    actual,
		CreatedAt:             createdAt,
		UpdatedAt:             updatedAt,
	}), nil
}
