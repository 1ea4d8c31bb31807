// Package persistence implements the users repository.
package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/rai/fooddelivery-go/internal/platform/spanner"
	"github.com/rai/fooddelivery-go/modules/users/domain"
)

var userColumns = []string{
	"UserID", "Email", "Name", "Phone", "DefaultAddress", "CreatedAt", "UpdatedAt",
}

// SpannerRepository persists users in the Users table. Email carries a
// unique index; an insert that collides on it surfaces as ErrEmailTaken.
type SpannerRepository struct {
	client *spanner.Client
}

func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

func (r *SpannerRepository) Insert(ctx context.Context, user *domain.User) error {
	m := spanner.Insert("Users", userColumns, userValues(user))

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite([]*spanner.Mutation{m})
	}
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{m}); err != nil {
		if spanner.ErrCode(err) == codes.AlreadyExists {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *SpannerRepository) Update(ctx context.Context, user *domain.User) error {
	m := spanner.Update("Users", userColumns, userValues(user))

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite([]*spanner.Mutation{m})
	}
	if _, err := r.client.Apply(ctx, []*spanner.Mutation{m}); err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	row, err := reader.ReadRow(ctx, "Users", spanner.Key{id.String()}, userColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	return scanUser(row)
}

func (r *SpannerRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	reader, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		reader = roTx
	}

	stmt := spanner.Statement{
		SQL: `SELECT UserID, Email, Name, Phone, DefaultAddress, CreatedAt, UpdatedAt
		      FROM Users@{FORCE_INDEX=UsersByEmail}
		      WHERE Email = @email`,
		Params: map[string]interface{}{"email": email.String()},
	}

	iter := reader.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return scanUser(row)
}

func userValues(user *domain.User) []interface{} {
	return []interface{}{
		user.ID().String(),
		user.Email().String(),
		user.Name().String(),
		user.Phone(),
		user.DefaultAddress(),
		user.CreatedAt(),
		user.UpdatedAt(),
	}
}

func scanUser(row *spanner.Row) (*domain.User, error) {
	var (
		id, email, name, phone, address string
		createdAt, updatedAt            time.Time
	)
	if err := row.Columns(&id, &email, &name, &phone, &address, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	userID, err := domain.ParseUserID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user id: %w", err)
	}
	parsedEmail, err := domain.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email: %w", err)
	}
	parsedName, err := domain.NewName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse name: %w", err)
	}

	return domain.Reconstitute(domain.ReconstituteUserParams{
		ID:             userID,
		Email:          parsedEmail,
		Name:           parsedName,
		Phone:          phone,
		DefaultAddress: address,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}), nil
}

var _ domain.Repository = (*SpannerRepository)(nil)
