package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/rai/fooddelivery-go/modules/catalog/domain"
)

// InMemoryRestaurantRepository implements RestaurantRepository using in-memory storage.
type InMemoryRestaurantRepository struct {
	mu          sync.RWMutex
	restaurants map[string]*domain.Restaurant
}

func NewInMemoryRestaurantRepository() *InMemoryRestaurantRepository {
	return &InMemoryRestaurantRepository{restaurants: make(map[string]*domain.Restaurant)}
}

func (r *InMemoryRestaurantRepository) Save(ctx context.Context, restaurant *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.restaurants[restaurant.ID.String()] = restaurant
	return nil
}

func (r *InMemoryRestaurantRepository) FindByID(ctx context.Context, id domain.RestaurantID) (*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	restaurant, exists := r.restaurants[id.String()]
	if !exists {
		return nil, domain.ErrRestaurantNotFound
	}
	return restaurant, nil
}

func (r *InMemoryRestaurantRepository) ListActive(ctx context.Context, offset, limit int) ([]*domain.Restaurant, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []*domain.Restaurant
	for _, restaurant := range r.restaurants {
		if restaurant.Active {
			active = append(active, restaurant)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })

	total := len(active)
	if offset >= total {
		return []*domain.Restaurant{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return active[offset:end], total, nil
}

// InMemoryMenuItemRepository implements MenuItemRepository using in-memory storage.
type InMemoryMenuItemRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.MenuItem
}

func NewInMemoryMenuItemRepository() *InMemoryMenuItemRepository {
	return &InMemoryMenuItemRepository{items: make(map[string]*domain.MenuItem)}
}

func (r *InMemoryMenuItemRepository) Save(ctx context.Context, item *domain.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID.String()] = item
	return nil
}

func (r *InMemoryMenuItemRepository) FindByID(ctx context.Context, id domain.MenuItemID) (*domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id.String()]
	if !exists {
		return nil, domain.ErrMenuItemNotFound
	}
	return item, nil
}

func (r *InMemoryMenuItemRepository) ListByRestaurant(ctx context.Context, restaurantID domain.RestaurantID) ([]*domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*domain.MenuItem
	for _, item := range r.items {
		if item.RestaurantID.String() == restaurantID.String() {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// InMemoryCategoryRepository implements CategoryRepository using in-memory storage.
type InMemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{categories: make(map[string]*domain.Category)}
}

func (r *InMemoryCategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID.String()] = category
	return nil
}

func (r *InMemoryCategoryRepository) FindByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, exists := r.categories[id.String()]
	if !exists {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

func (r *InMemoryCategoryRepository) ListAll(ctx context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}
