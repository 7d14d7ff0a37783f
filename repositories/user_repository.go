package repositories

import (
	"context"
	"time"

	"github.com/Nerfise/bossing/config"
	"github.com/Nerfise/bossing/models"
	"github.com/pkg/errors"
)

var (
	ErrVersionConflict = errors.New("profile was modified by another session")
	ErrNotEnoughPoints = errors.New("not enough points")
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User, fullName, phone string) error {
	query := `
		INSERT INTO users (email, password, role, full_name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	err := config.DB.QueryRow(ctx, query,
		user.Email,
		user.Password,
		user.Role,
		fullName,
		phone,
		now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	return errors.Wrap(err, "create user")
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password, role, created_at, updated_at FROM users WHERE email = $1`

	user := &models.User{}
	err := config.DB.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	query := `
		SELECT id, email, full_name, phone, address, photo_url, points, version, created_at
		FROM users WHERE id = $1
	`

	profile := &models.Profile{}
	err := config.DB.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.Phone,
		&profile.Address,
		&profile.PhotoURL,
		&profile.Points,
		&profile.Version,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// UpdateProfile writes the merged field set. When expectedVersion is
// non-zero the update only lands if the stored version still matches,
// otherwise ErrVersionConflict is returned and nothing changes.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int, req models.UpdateProfileRequest, photoURL, photoPublicID string) (*models.Profile, error) {
	query := `
		UPDATE users SET
			full_name = CASE WHEN $1 <> '' THEN $1 ELSE full_name END,
			phone = CASE WHEN $2 <> '' THEN $2 ELSE phone END,
			address = CASE WHEN $3 <> '' THEN $3 ELSE address END,
			photo_url = CASE WHEN $4 <> '' THEN $4 ELSE photo_url END,
			photo_public_id = CASE WHEN $5 <> '' THEN $5 ELSE photo_public_id END,
			version = version + 1,
			updated_at = $6
		WHERE id = $7 AND ($8 = 0 OR version = $8)
		RETURNING id, email, full_name, phone, address, photo_url, points, version, created_at
	`

	profile := &models.Profile{}
	err := config.DB.QueryRow(ctx, query,
		req.FullName,
		req.Phone,
		req.Address,
		photoURL,
		photoPublicID,
		time.Now(),
		userID,
		req.Version,
	).Scan(
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.Phone,
		&profile.Address,
		&profile.PhotoURL,
		&profile.Points,
		&profile.Version,
		&profile.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrVersionConflict
		}
		return nil, errors.Wrap(err, "update profile")
	}

	return profile, nil
}

// AddPoints applies an atomic in-database increment. Read-modify-write
// from the application would lose concurrent updates.
func (r *UserRepository) AddPoints(ctx context.Context, userID int, points int64) (int64, error) {
	var balance int64
	err := config.DB.QueryRow(ctx,
		`UPDATE users SET points = points + $1, version = version + 1, updated_at = $2
		 WHERE id = $3 RETURNING points`,
		points, time.Now(), userID).Scan(&balance)
	if err != nil {
		return 0, errors.Wrap(err, "add points")
	}
	return balance, nil
}

// RedeemPoints decrements the balance by amount only when the balance
// covers it; the WHERE guard makes check and decrement one atomic
// statement.
func (r *UserRepository) RedeemPoints(ctx context.Context, userID int, amount int64) (int64, error) {
	var balance int64
	err := config.DB.QueryRow(ctx,
		`UPDATE users SET points = points - $1, version = version + 1, updated_at = $2
		 WHERE id = $3 AND points >= $1 RETURNING points`,
		amount, time.Now(), userID).Scan(&balance)
	if err != nil {
		if isNoRows(err) {
			return 0, ErrNotEnoughPoints
		}
		return 0, errors.Wrap(err, "redeem points")
	}
	return balance, nil
}
