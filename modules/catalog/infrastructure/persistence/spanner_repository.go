// Package persistence implements repository interfaces for the catalog.
package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/rai/fooddelivery-go/internal/platform/spanner"
	"github.com/rai/fooddelivery-go/modules/catalog/domain"
	"github.com/rai/fooddelivery-go/modules/shared/types"
)

var restaurantColumns = []string{
	"RestaurantID", "Name", "Description", "Address", "Phone", "Cuisine",
	"Rating", "Active", "Open", "DeliveryTimeMinutes",
	"DeliveryFeeAmount", "MinimumOrderAmount", "Currency",
	"CreatedAt", "UpdatedAt",
}

var menuItemColumns = []string{
	"MenuItemID", "RestaurantID", "CategoryID", "Name", "Description",
	"PriceAmount", "Currency", "Available", "Vegetarian", "CreatedAt", "UpdatedAt",
}

// SpannerRestaurantRepository persists restaurants in the Restaurants table.
type SpannerRestaurantRepository struct {
	client *spanner.Client
}

func NewSpannerRestaurantRepository(client *spanner.Client) *SpannerRestaurantRepository {
	return &SpannerRestaurantRepository{client: client}
}

func (r *SpannerRestaurantRepository) Save(ctx context.Context, restaurant *domain.Restaurant) error {
	m := spanner.InsertOrUpdate("Restaurants", restaurantColumns, []interface{}{
		restaurant.ID.String(),
		restaurant.Name,
		restaurant.Description,
		restaurant.Address,
		restaurant.Phone,
		restaurant.Cuisine,
		restaurant.Rating,
		restaurant.Active,
		restaurant.Open,
		int64(restaurant.DeliveryTimeMinutes),
		restaurant.DeliveryFee.Amount(),
		restaurant.MinimumOrder.Amount(),
		restaurant.DeliveryFee.Currency(),
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	})

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite([]*spanner.Mutation{m})
	}
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{m}); err != nil {
		return fmt.Errorf("failed to save restaurant: %w", err)
	}
	return nil
}

func (r *SpannerRestaurantRepository) FindByID(ctx context.Context, id domain.RestaurantID) (*domain.Restaurant, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	row, err := reader.ReadRow(ctx, "Restaurants", spanner.Key{id.String()}, restaurantColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to read restaurant: %w", err)
	}

	return scanRestaurant(row)
}

func (r *SpannerRestaurantRepository) ListActive(ctx context.Context, offset, limit int) ([]*domain.Restaurant, int, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	countIter := reader.Query(ctx, spanner.Statement{
		SQL: `SELECT COUNT(*) FROM Restaurants WHERE Active`,
	})
	defer countIter.Stop()

	var total int64
	countRow, err := countIter.Next()
	if err != nil && err != iterator.Done {
		return nil, 0, fmt.Errorf("failed to count restaurants: %w", err)
	}
	if countRow != nil {
		if err := countRow.Columns(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}

	stmt := spanner.Statement{
		SQL: `SELECT RestaurantID, Name, Description, Address, Phone, Cuisine,
		             Rating, Active, Open, DeliveryTimeMinutes,
		             DeliveryFeeAmount, MinimumOrderAmount, Currency,
		             CreatedAt, UpdatedAt
		      FROM Restaurants
		      WHERE Active
		      ORDER BY Name
		      LIMIT @limit OFFSET @offset`,
		Params: map[string]interface{}{
			"limit":  int64(limit),
			"offset": int64(offset),
		},
	}

	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	var restaurants []*domain.Restaurant
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to query restaurants: %w", err)
		}
		restaurant, err := scanRestaurant(row)
		if err != nil {
			return nil, 0, err
		}
		restaurants = append(restaurants, restaurant)
	}

	return restaurants, int(total), nil
}

func scanRestaurant(row *spanner.Row) (*domain.Restaurant, error) {
	var (
		id, name, description, address, phone, cuisine, currency string
		rating                                                   float64
		active, open                                             bool
		deliveryTimeMinutes, deliveryFee, minimumOrder           int64
		createdAt, updatedAt                                     time.Time
	)

	if err := row.Columns(&id, &name, &description, &address, &phone, &cuisine,
		&rating, &active, &open, &deliveryTimeMinutes,
		&deliveryFee, &minimumOrder, &currency, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan restaurant: %w", err)
	}

	restaurantID, err := domain.ParseRestaurantID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse restaurant id: %w", err)
	}

	return &domain.Restaurant{
		ID:                  restaurantID,
		Name:                name,
		Description:         description,
		Address:             address,
		Phone:               phone,
		Cuisine:             cuisine,
		Rating:              rating,
		Active:              active,
		Open:                open,
		DeliveryTimeMinutes: int(deliveryTimeMinutes),
		DeliveryFee:         types.MustNewMoney(deliveryFee, currency),
		MinimumOrder:        types.MustNewMoney(minimumOrder, currency),
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}, nil
}

// SpannerMenuItemRepository persists menu items in the MenuItems table.
type SpannerMenuItemRepository struct {
	client *spanner.Client
}

func NewSpannerMenuItemRepository(client *spanner.Client) *SpannerMenuItemRepository {
	return &SpannerMenuItemRepository{client: client}
}

func (r *SpannerMenuItemRepository) Save(ctx context.Context, item *domain.MenuItem) error {
	m := spanner.InsertOrUpdate("MenuItems", menuItemColumns, []interface{}{
		item.ID.String(),
		item.RestaurantID.String(),
		item.CategoryID.String(),
		item.Name,
		item.Description,
		item.Price.Amount(),
		item.Price.Currency(),
		item.Available,
		item.Vegetarian,
		item.CreatedAt,
		item.UpdatedAt,
	})

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite([]*spanner.Mutation{m})
	}
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{m}); err != nil {
		return fmt.Errorf("failed to save menu item: %w", err)
	}
	return nil
}

func (r *SpannerMenuItemRepository) FindByID(ctx context.Context, id domain.MenuItemID) (*domain.MenuItem, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	row, err := reader.ReadRow(ctx, "MenuItems", spanner.Key{id.String()}, menuItemColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to read menu item: %w", err)
	}

	return scanMenuItem(row)
}

func (r *SpannerMenuItemRepository) ListByRestaurant(ctx context.Context, restaurantID domain.RestaurantID) ([]*domain.MenuItem, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	stmt := spanner.Statement{
		SQL: `SELECT MenuItemID, RestaurantID, CategoryID, Name, Description,
		             PriceAmount, Currency, Available, Vegetarian, CreatedAt, UpdatedAt
		      FROM MenuItems@{FORCE_INDEX=MenuItemsByRestaurant}
		      WHERE RestaurantID = @restaurantID
		      ORDER BY Name`,
		Params: map[string]interface{}{"restaurantID": restaurantID.String()},
	}

	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	var items []*domain.MenuItem
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query menu items: %w", err)
		}
		item, err := scanMenuItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func scanMenuItem(row *spanner.Row) (*domain.MenuItem, error) {
	var (
		id, restaurantID, categoryID, name, description, currency string
		price                                                     int64
		available, vegetarian                                     bool
		createdAt, updatedAt                                      time.Time
	)

	if err := row.Columns(&id, &restaurantID, &categoryID, &name, &description,
		&price, &currency, &available, &vegetarian, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan menu item: %w", err)
	}

	itemID, err := domain.ParseMenuItemID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu item id: %w", err)
	}
	parsedRestaurantID, err := domain.ParseRestaurantID(restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse restaurant id: %w", err)
	}
	parsedCategoryID, err := domain.ParseCategoryID(categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse category id: %w", err)
	}

	return &domain.MenuItem{
		ID:           itemID,
		RestaurantID: parsedRestaurantID,
		CategoryID:   parsedCategoryID,
		Name:         name,
		Description:  description,
		Price:        types.MustNewMoney(price, currency),
		Available:    available,
		Vegetarian:   vegetarian,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// SpannerCategoryRepository persists categories in the Categories table.
type SpannerCategoryRepository struct {
	client *spanner.Client
}

func NewSpannerCategoryRepository(client *spanner.Client) *SpannerCategoryRepository {
	return &SpannerCategoryRepository{client: client}
}

func (r *SpannerCategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	m := spanner.InsertOrUpdate("Categories",
		[]string{"CategoryID", "Name", "Description"},
		[]interface{}{category.ID.String(), category.Name, category.Description},
	)

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite([]*spanner.Mutation{m})
	}
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{m}); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (r *SpannerCategoryRepository) FindByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	row, err := reader.ReadRow(ctx, "Categories", spanner.Key{id.String()},
		[]string{"CategoryID", "Name", "Description"})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to read category: %w", err)
	}

	var catID, name, description string
	if err := row.Columns(&catID, &name, &description); err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}

	parsedID, err := domain.ParseCategoryID(catID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse category id: %w", err)
	}
	return &domain.Category{ID: parsedID, Name: name, Description: description}, nil
}

func (r *SpannerCategoryRepository) ListAll(ctx context.Context) ([]*domain.Category, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	iter := reader.Query(ctx, spanner.Statement{
		SQL: `SELECT CategoryID, Name, Description FROM Categories ORDER BY Name`,
	})
	defer iter.Stop()

	var categories []*domain.Category
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query categories: %w", err)
		}

		var id, name, description string
		if err := row.Columns(&id, &name, &description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		parsedID, err := domain.ParseCategoryID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse category id: %w", err)
		}
		categories = append(categories, &domain.Category{ID: parsedID, Name: name, Description: description})
	}

	return categories, nil
}
