package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Nerfise/bossing/config"
	"github.com/Nerfise/bossing/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const productCacheKey = "products:active"

var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindAll serves the active catalog, fronted by a short-lived Redis
// cache. Cache misses or Redis outages fall through to Postgres.
func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	if config.RedisClient != nil {
		cached, err := config.RedisClient.Get(ctx, productCacheKey).Result()
		if err == nil {
			products := []models.Product{}
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	rows, err := config.DB.Query(ctx,
		`SELECT id, name, description, price, image_url, is_active, created_at, updated_at
		 FROM products WHERE is_active = TRUE ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	if config.RedisClient != nil {
		payload, err := json.Marshal(products)
		if err == nil {
			if err := config.RedisClient.Set(ctx, productCacheKey, payload, 5*time.Minute).Err(); err != nil {
				logrus.WithError(err).Warn("product cache write failed")
			}
		}
	}

	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	p := &models.Product{}
	err := config.DB.QueryRow(ctx,
		`SELECT id, name, description, price, image_url, is_active, created_at, updated_at
		 FROM products WHERE id = $1`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrap(err, "get product")
	}
	return p, nil
}

func (r *ProductRepository) InvalidateCache(ctx context.Context) {
	if config.RedisClient != nil {
		config.RedisClient.Del(ctx, productCacheKey)
	}
}
