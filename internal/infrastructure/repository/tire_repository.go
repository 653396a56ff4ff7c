package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/autoshop-api/internal/domain/entity"
	"github.com/sangkips/autoshop-api/internal/domain/enum"
	domainRepo "github.com/sangkips/autoshop-api/internal/domain/repository"
	"github.com/sangkips/autoshop-api/pkg/pagination"
	"gorm.io/gorm"
)

type tireRepository struct {
	base
}

// NewTireRepository creates a new tire repository
func NewTireRepository(db *gorm.DB) domainRepo.TireRepository {
	return &tireRepository{base{db: db}}
}

func (r *tireRepository) Create(ctx context.Context, tire *entity.Tire) error {
	return translate(r.conn(ctx).Create(tire).Error)
}

func (r *tireRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tire, error) {
	var tire entity.Tire
	err := r.conn(ctx).First(&tire, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	return &tire, err
}

func (r *tireRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tire, error) {
	var tires []entity.Tire
	if len(ids) == 0 {
		return tires, nil
	}
	err := r.conn(ctx).Where("id IN ?", ids).Find(&tires).Error
	return tires, err
}

func (r *tireRepository) GetBySpec(ctx context.Context, brand, model, size string, condition enum.TireCondition) (*entity.Tire, error) {
	var tire entity.Tire
	err := r.conn(ctx).
		Where("LOWER(brand) = LOWER(?) AND LOWER(model) = LOWER(?) AND LOWER(size) = LOWER(?) AND condition = ?",
			brand, model, size, condition).
		First(&tire).Error
	if notFound(err) {
		return nil, nil
	}
	return &tire, err
}

func (r *tireRepository) Update(ctx context.Context, tire *entity.Tire) error {
	return translate(r.conn(ctx).Save(tire).Error)
}

func (r *tireRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Delete(&entity.Tire{}, "id = ?", id).Error
}

var tireSortColumns = map[string]string{
	"brand":      "brand",
	"price":      "price",
	"quantity":   "quantity",
	"size":       "size",
	"created_at": "created_at",
}

func (r *tireRepository) List(ctx context.Context, filter domainRepo.TireFilter) ([]entity.Tire, int64, error) {
	var tires []entity.Tire
	var total int64

	params := filter.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	query := r.conn(ctx).Model(&entity.Tire{})
	if params.Search != "" {
		like := likePattern(params.Search)
		query = query.Where("LOWER(brand) LIKE ? OR LOWER(model) LIKE ? OR LOWER(size) LIKE ?", like, like, like)
	}
	if filter.Size != "" {
		query = query.Where("LOWER(size) = LOWER(?)", filter.Size)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Condition != nil {
		query = query.Where("condition = ?", *filter.Condition)
	}
	if filter.LowStock {
		query = query.Where("quantity <= min_stock")
	}
	if filter.InStock {
		query = query.Where("quantity > 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order(params.OrderBy(tireSortColumns, "brand ASC, model ASC, size ASC")).
		Find(&tires).Error

	return tires, total, err
}

func (r *tireRepository) ListLowStock(ctx context.Context) ([]entity.Tire, error) {
	var tires []entity.Tire
	err := r.conn(ctx).Where("quantity <= min_stock").Order("quantity ASC, brand ASC").Find(&tires).Error
	return tires, err
}

// DecrementStock atomically decrements stock only if sufficient quantity exists.
// Uses: UPDATE tires SET quantity = quantity - amount WHERE id = ? AND quantity >= amount
func (r *tireRepository) DecrementStock(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	result := r.conn(ctx).Model(&entity.Tire{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *tireRepository) IncrementStock(ctx context.Context, id uuid.UUID, amount int) error {
	return r.conn(ctx).Model(&entity.Tire{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", amount)).Error
}

func (r *tireRepository) SetStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.conn(ctx).Model(&entity.Tire{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}
