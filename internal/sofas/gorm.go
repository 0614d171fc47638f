package sofas

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"configurator/internal/models"

	"gorm.io/gorm"
)

// GormRepository persists sofas in a SQL database.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// SeedIfEmpty inserts seed when the table has no rows yet.
func (r *GormRepository) SeedIfEmpty(ctx context.Context, seed []models.Sofa) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Sofa{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count sofas: %w", err)
	}
	if count > 0 || len(seed) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&seed).Error; err != nil {
		return fmt.Errorf("failed to seed sofas: %w", err)
	}
	return nil
}

func (r *GormRepository) List(ctx context.Context) ([]models.Sofa, error) {
	var sofas []models.Sofa
	if err := r.db.WithContext(ctx).Order("created_at, name").Find(&sofas).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sofas: %w", err)
	}
	return sofas, nil
}

func (r *GormRepository) Get(ctx context.Context, id string) (*models.Sofa, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormRepository) Create(ctx context.Context, sofa *models.Sofa) (*models.Sofa, error) {
	created := *sofa
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, fmt.Errorf("failed to create sofa: %w", err)
	}
	return &created, nil
}

func (r *GormRepository) Update(ctx context.Context, id string, update models.SofaUpdate) (*models.Sofa, error) {
	return r.modify(ctx, id, update.Apply)
}

func (r *GormRepository) AppendImage(ctx context.Context, id, imageURL string) (*models.Sofa, error) {
	return r.modify(ctx, id, func(s *models.Sofa) {
		s.Images = append(s.Images, imageURL)
	})
}

func (r *GormRepository) Filter(ctx context.Context, f Filter) ([]models.Sofa, error) {
	query := r.db.WithContext(ctx).Model(&models.Sofa{})

	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.MaxWidth != nil {
		query = query.Where("width <= ?", *f.MaxWidth)
	}
	if f.MinDepth != nil {
		query = query.Where("depth >= ?", *f.MinDepth)
	}
	if f.MaxDepth != nil {
		query = query.Where("depth <= ?", *f.MaxDepth)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", f.MaxPrice.InexactFloat64())
	}

	var flags []string
	if f.InStore {
		flags = append(flags, "in_store = ?")
	}
	if f.InStock {
		flags = append(flags, "in_stock = ?")
	}
	if f.OnOrder {
		flags = append(flags, "on_order = ?")
	}
	if len(flags) > 0 {
		args := make([]interface{}, len(flags))
		for i := range args {
			args[i] = true
		}
		query = query.Where("("+strings.Join(flags, " OR ")+")", args...)
	}

	var sofas []models.Sofa
	if err := query.Order("created_at, name").Find(&sofas).Error; err != nil {
		return nil, fmt.Errorf("failed to filter sofas: %w", err)
	}
	return sofas, nil
}

func (r *GormRepository) modify(ctx context.Context, id string, change func(*models.Sofa)) (*models.Sofa, error) {
	var updated *models.Sofa
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := r.get(tx, id)
		if err != nil {
			return err
		}
		change(s)
		if err := tx.Save(s).Error; err != nil {
			return fmt.Errorf("failed to update sofa: %w", err)
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *GormRepository) get(tx *gorm.DB, id string) (*models.Sofa, error) {
	var sofa models.Sofa
	if err := tx.First(&sofa, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch sofa: %w", err)
	}
	return &sofa, nil
}
