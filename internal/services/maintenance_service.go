package services

import (
	"fmt"

	"github.com/mediawatch/report-tracking-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MaintenanceService owns the administrative bulk-purge: the only path
// that hard-deletes domain rows.
type MaintenanceService struct {
	db *gorm.DB
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{db: db}
}

// PurgeResult reports rows removed per table
type PurgeResult struct {
	Deleted map[string]int64 `json:"deleted"`
}

// PurgeDomainData deletes every campaign-tracking row while preserving
// users, groups and analyst profiles. Deletion order respects foreign keys.
func (s *MaintenanceService) PurgeDomainData() (*PurgeResult, error) {
	result := &PurgeResult{Deleted: map[string]int64{}}

	targets := []struct {
		name  string
		model interface{}
	}{
		{"notifications", &models.Notification{}},
		{"messages", &models.Message{}},
		{"assignments", &models.Assignment{}},
		{"monitoring_periods", &models.MonitoringPeriod{}},
		{"campaigns", &models.Campaign{}},
		{"stations", &models.Station{}},
		{"clients", &models.Client{}},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, target := range targets {
			res := tx.Where("1 = 1").Delete(target.model)
			if res.Error != nil {
				return fmt.Errorf("failed to purge %s: %w", target.name, res.Error)
			}
			result.Deleted[target.name] = res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Warnf("Domain data purged: %v", result.Deleted)
	return result, nil
}
