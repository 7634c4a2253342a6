package services

import (
	"errors"

	"recycle-service/internal/models"
	"recycle-service/pkg/common"

	"gorm.io/gorm"
)

type WasteTypeService struct {
	DB *gorm.DB
}

func NewWasteTypeService(db *gorm.DB) *WasteTypeService {
	return &WasteTypeService{DB: db}
}

// ResolveWasteType satisfies the resolver interface consumed by the
// transaction and reward services.
func (s *WasteTypeService) ResolveWasteType(id int) (models.WasteType, error) {
	var wt models.WasteType
	if err := s.DB.First(&wt, "waste_type_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.WasteType{}, common.NewNotFoundError("waste type not found")
		}
		return models.WasteType{}, common.NewTransientError("failed to load waste type", err)
	}
	return wt, nil
}

func (s *WasteTypeService) List() ([]models.WasteType, error) {
	var types []models.WasteType
	if err := s.DB.Order("name").Find(&types).Error; err != nil {
		return nil, common.NewTransientError("failed to list waste types", err)
	}
	return types, nil
}

func (s *WasteTypeService) Get(id int) (models.WasteType, error) {
	return s.ResolveWasteType(id)
}

type WasteTypeDTO struct {
	Name                 string
	Description          string
	Recyclable           *bool
	HandlingInstructions string
	UnitPrice            *float64
}

func (s *WasteTypeService) Create(data WasteTypeDTO) (models.WasteType, error) {
	if data.Name == "" {
		return models.WasteType{}, common.NewValidationError("waste type name is required")
	}
	if data.UnitPrice != nil && *data.UnitPrice < 0 {
		return models.WasteType{}, common.NewValidationError("unit price must not be negative")
	}

	wt := models.WasteType{
		Name:                 data.Name,
		Description:          data.Description,
		Recyclable:           true,
		HandlingInstructions: data.HandlingInstructions,
	}
	if data.UnitPrice != nil {
		wt.UnitPrice = *data.UnitPrice
	}
	if data.Recyclable != nil {
		wt.Recyclable = *data.Recyclable
	}

	if err := s.DB.Create(&wt).Error; err != nil {
		return models.WasteType{}, common.NewTransientError("failed to create waste type", err)
	}
	return wt, nil
}

func (s *WasteTypeService) Update(id int, data WasteTypeDTO) (models.WasteType, error) {
	wt, err := s.ResolveWasteType(id)
	if err != nil {
		return models.WasteType{}, err
	}

	updates := map[string]interface{}{}
	if data.Name != "" {
		updates["name"] = data.Name
	}
	if data.Description != "" {
		updates["description"] = data.Description
	}
	if data.HandlingInstructions != "" {
		updates["handling_instructions"] = data.HandlingInstructions
	}
	if data.Recyclable != nil {
		updates["recyclable"] = *data.Recyclable
	}
	if data.UnitPrice != nil {
		if *data.UnitPrice < 0 {
			return models.WasteType{}, common.NewValidationError("unit price must not be negative")
		}
		updates["unit_price"] = *data.UnitPrice
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&wt).Updates(updates).Error; err != nil {
			return models.WasteType{}, common.NewTransientError("failed to update waste type", err)
		}
	}
	return wt, nil
}

// Delete refuses to remove a waste type that ledger rows still reference,
// so completed transactions stay resolvable.
func (s *WasteTypeService) Delete(id int) error {
	if _, err := s.ResolveWasteType(id); err != nil {
		return err
	}

	var refs int64
	if err := s.DB.Model(&models.Transaction{}).Where("waste_type_id = ?", id).Count(&refs).Error; err != nil {
		return common.NewTransientError("failed to check waste type references", err)
	}
	if refs > 0 {
		return common.NewConflictError("waste type is referenced by existing transactions")
	}

	if err := s.DB.Delete(&models.WasteType{}, "waste_type_id = ?", id).Error; err != nil {
		return common.NewTransientError("failed to delete waste type", err)
	}
	return nil
}
