package services

import (
	"recycle-service/internal/models"
	"recycle-service/pkg/common"

	"gorm.io/gorm"
)

type StatisticsService struct {
	DB *gorm.DB
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{DB: db}
}

type StatusBucket struct {
	Period string `json:"period"`
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type WasteVolumeBucket struct {
	Period        string  `json:"period"`
	WasteTypeName string  `json:"waste_type_name"`
	TotalQuantity float64 `json:"total_quantity"`
}

type PointsBucket struct {
	Period      string `json:"period"`
	TotalPoints int64  `json:"total_points"`
}

type TransactionStatistics struct {
	StatusCounts []StatusBucket      `json:"status_counts"`
	WasteVolumes []WasteVolumeBucket `json:"waste_volumes"`
	RewardPoints []PointsBucket      `json:"reward_points"`
}

// TransactionStatistics aggregates the ledger into period buckets: status
// counts, completed volume per waste type, and points granted. Periods with
// no data simply do not appear.
func (s *StatisticsService) TransactionStatistics(period, dateFrom, dateTo string) (TransactionStatistics, error) {
	format, err := common.PeriodFormat(period)
	if err != nil {
		return TransactionStatistics{}, err
	}

	stats := TransactionStatistics{
		StatusCounts: []StatusBucket{},
		WasteVolumes: []WasteVolumeBucket{},
		RewardPoints: []PointsBucket{},
	}

	statusQuery := s.DB.Table("transactions").
		Select("DATE_FORMAT(transaction_date, ?) AS period, status, COUNT(*) AS count", format)
	if dateFrom != "" {
		statusQuery = statusQuery.Where("transaction_date >= ?", dateFrom)
	}
	if dateTo != "" {
		statusQuery = statusQuery.Where("transaction_date <= ?", dateTo)
	}
	err = statusQuery.Group("period, status").
		Order("MIN(transaction_date) DESC").
		Limit(30).
		Scan(&stats.StatusCounts).Error
	if err != nil {
		return TransactionStatistics{}, common.NewTransientError("failed to load status statistics", err)
	}

	volumeQuery := s.DB.Table("transactions t").
		Select("DATE_FORMAT(t.transaction_date, ?) AS period, wt.name AS waste_type_name, "+
			"COALESCE(SUM(t.quantity), 0) AS total_quantity", format).
		Joins("JOIN waste_types wt ON wt.waste_type_id = t.waste_type_id").
		Where("t.status = ?", models.StatusCompleted)
	if dateFrom != "" {
		volumeQuery = volumeQuery.Where("t.transaction_date >= ?", dateFrom)
	}
	if dateTo != "" {
		volumeQuery = volumeQuery.Where("t.transaction_date <= ?", dateTo)
	}
	err = volumeQuery.Group("period, wt.name").
		Order("MIN(t.transaction_date) DESC").
		Limit(30).
		Scan(&stats.WasteVolumes).Error
	if err != nil {
		return TransactionStatistics{}, common.NewTransientError("failed to load volume statistics", err)
	}

	pointsQuery := s.DB.Table("rewards").
		Select("DATE_FORMAT(earned_date, ?) AS period, COALESCE(SUM(points), 0) AS total_points", format)
	if dateFrom != "" {
		pointsQuery = pointsQuery.Where("earned_date >= ?", dateFrom)
	}
	if dateTo != "" {
		pointsQuery = pointsQuery.Where("earned_date <= ?", dateTo)
	}
	err = pointsQuery.Group("period").
		Order("MIN(earned_date) DESC").
		Limit(30).
		Scan(&stats.RewardPoints).Error
	if err != nil {
		return TransactionStatistics{}, common.NewTransientError("failed to load points statistics", err)
	}

	return stats, nil
}
