package services

import (
	"errors"

	"recycle-service/internal/models"
	"recycle-service/pkg/common"

	"gorm.io/gorm"
)

type CollectionPointService struct {
	DB *gorm.DB
}

func NewCollectionPointService(db *gorm.DB) *CollectionPointService {
	return &CollectionPointService{DB: db}
}

// ResolveActiveCollectionPoint returns the collection point only when it
// exists and is accepting drop-offs.
func (s *CollectionPointService) ResolveActiveCollectionPoint(id int) (models.CollectionPoint, error) {
	cp, err := s.Get(id)
	if err != nil {
		return models.CollectionPoint{}, err
	}
	if cp.Status != models.CollectionPointActive {
		return models.CollectionPoint{}, common.NewConflictError("collection point is not active")
	}
	return cp, nil
}

func (s *CollectionPointService) Get(id int) (models.CollectionPoint, error) {
	var cp models.CollectionPoint
	if err := s.DB.First(&cp, "collection_point_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CollectionPoint{}, common.NewNotFoundError("collection point not found")
		}
		return models.CollectionPoint{}, common.NewTransientError("failed to load collection point", err)
	}
	return cp, nil
}

func (s *CollectionPointService) List(status string) ([]models.CollectionPoint, error) {
	query := s.DB.Order("name")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var points []models.CollectionPoint
	if err := query.Find(&points).Error; err != nil {
		return nil, common.NewTransientError("failed to list collection points", err)
	}
	return points, nil
}

type CollectionPointDTO struct {
	Name           string
	Address        string
	Status         string
	OperatingHours string
}

func (s *CollectionPointService) Create(data CollectionPointDTO) (models.CollectionPoint, error) {
	if data.Name == "" {
		return models.CollectionPoint{}, common.NewValidationError("collection point name is required")
	}
	status := data.Status
	if status == "" {
		status = models.CollectionPointActive
	}
	if status != models.CollectionPointActive && status != models.CollectionPointInactive {
		return models.CollectionPoint{}, common.NewValidationError("status must be active or inactive")
	}

	cp := models.CollectionPoint{
		Name:           data.Name,
		Address:        data.Address,
		Status:         status,
		OperatingHours: data.OperatingHours,
	}
	if err := s.DB.Create(&cp).Error; err != nil {
		return models.CollectionPoint{}, common.NewTransientError("failed to create collection point", err)
	}
	return cp, nil
}

func (s *CollectionPointService) Update(id int, data CollectionPointDTO) (models.CollectionPoint, error) {
	cp, err := s.Get(id)
	if err != nil {
		return models.CollectionPoint{}, err
	}

	updates := map[string]interface{}{}
	if data.Name != "" {
		updates["name"] = data.Name
	}
	if data.Address != "" {
		updates["address"] = data.Address
	}
	if data.OperatingHours != "" {
		updates["operating_hours"] = data.OperatingHours
	}
	if data.Status != "" {
		if data.Status != models.CollectionPointActive && data.Status != models.CollectionPointInactive {
			return models.CollectionPoint{}, common.NewValidationError("status must be active or inactive")
		}
		updates["status"] = data.Status
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&cp).Updates(updates).Error; err != nil {
			return models.CollectionPoint{}, common.NewTransientError("failed to update collection point", err)
		}
	}
	return cp, nil
}

func (s *CollectionPointService) Delete(id int) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	var refs int64
	if err := s.DB.Model(&models.Transaction{}).Where("collection_point_id = ?", id).Count(&refs).Error; err != nil {
		return common.NewTransientError("failed to check collection point references", err)
	}
	if refs > 0 {
		return common.NewConflictError("collection point is referenced by existing transactions")
	}

	if err := s.DB.Delete(&models.CollectionPoint{}, "collection_point_id = ?", id).Error; err != nil {
		return common.NewTransientError("failed to delete collection point", err)
	}
	return nil
}
