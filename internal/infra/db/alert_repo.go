package db

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stockwatch/internal/domain"
)

// listBatchSize bounds how many alert rows a monitoring run holds in memory
// at once while scanning the full collection.
const listBatchSize = 200

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	model := mapAlertToModel(*alert)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	alert.ID = model.ID
	alert.CreatedAt = model.CreatedAt
	return nil
}

func (r *AlertRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

func (r *AlertRepository) ListAll(ctx context.Context, fn func(alerts []domain.Alert) error) error {
	var models []alertModel
	result := r.db.WithContext(ctx).FindInBatches(&models, listBatchSize, func(tx *gorm.DB, batch int) error {
		return fn(mapAlertsToDomain(models))
	})
	return result.Error
}

func (r *AlertRepository) DeleteByID(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&alertModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepository) DeleteByOwner(ctx context.Context, ownerID, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&alertModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapAlertsToDomain(models []alertModel) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(models))
	for _, model := range models {
		alerts = append(alerts, domain.Alert{
			ID:        model.ID,
			OwnerID:   model.OwnerID,
			Symbol:    model.Symbol,
			Threshold: model.Threshold,
			Condition: domain.Condition(model.Condition),
			CreatedAt: model.CreatedAt,
		})
	}
	return alerts
}

func mapAlertToModel(alert domain.Alert) alertModel {
	return alertModel{
		ID:        alert.ID,
		OwnerID:   alert.OwnerID,
		Symbol:    alert.Symbol,
		Threshold: alert.Threshold,
		Condition: string(alert.Condition),
		CreatedAt: alert.CreatedAt,
	}
}
