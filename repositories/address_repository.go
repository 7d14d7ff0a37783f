package repositories

import (
	"context"
	"time"

	"github.com/Nerfise/bossing/config"
	"github.com/Nerfise/bossing/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressRepository stores one row per saved address instead of
// rewriting a whole embedded list, so concurrent edits from two
// sessions cannot clobber each other.
type AddressRepository struct{}

func NewAddressRepository() *AddressRepository {
	return &AddressRepository{}
}

func (r *AddressRepository) List(ctx context.Context, userID int) ([]models.Address, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, user_id, address, created_at FROM addresses
		 WHERE user_id = $1 ORDER BY created_at, id`,
		userID)
	if err != nil {
		return nil, errors.Wrap(err, "list addresses")
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Address, &a.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan address")
		}
		addresses = append(addresses, a)
	}

	return addresses, rows.Err()
}

func (r *AddressRepository) Get(ctx context.Context, userID int, id string) (*models.Address, error) {
	a := &models.Address{}
	err := config.DB.QueryRow(ctx,
		`SELECT id, user_id, address, created_at FROM addresses
		 WHERE user_id = $1 AND id = $2`,
		userID, id).Scan(&a.ID, &a.UserID, &a.Address, &a.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrAddressNotFound
		}
		return nil, errors.Wrap(err, "get address")
	}
	return a, nil
}

func (r *AddressRepository) Add(ctx context.Context, userID int, text string) (*models.Address, error) {
	a := &models.Address{
		ID:      uuid.NewString(),
		UserID:  userID,
		Address: text,
	}

	err := config.DB.QueryRow(ctx,
		`INSERT INTO addresses (id, user_id, address, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		a.ID, userID, text, time.Now()).Scan(&a.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "add address")
	}

	return a, nil
}

func (r *AddressRepository) Update(ctx context.Context, userID int, id, text string) error {
	tag, err := config.DB.Exec(ctx,
		`UPDATE addresses SET address = $1 WHERE user_id = $2 AND id = $3`,
		text, userID, id)
	if err != nil {
		return errors.Wrap(err, "update address")
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, userID int, id string) error {
	tag, err := config.DB.Exec(ctx,
		`DELETE FROM addresses WHERE user_id = $1 AND id = $2`,
		userID, id)
	if err != nil {
		return errors.Wrap(err, "delete address")
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}
