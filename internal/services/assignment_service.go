package services

import (
	"errors"
	"fmt"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	campaignRepo   *repository.CampaignRepository
	stationRepo    *repository.StationRepository
	analystRepo    *repository.AnalystRepository
	periodRepo     *repository.MonitoringPeriodRepository
	workflow       *WorkflowService
}

func NewAssignmentService(db *gorm.DB, workflow *WorkflowService) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: repository.NewAssignmentRepository(db),
		campaignRepo:   repository.NewCampaignRepository(db),
		stationRepo:    repository.NewStationRepository(db),
		analystRepo:    repository.NewAnalystRepository(db),
		periodRepo:     repository.NewMonitoringPeriodRepository(db),
		workflow:       workflow,
	}
}

// CreateAssignment creates a single assignment
func (s *AssignmentService) CreateAssignment(req *models.CreateAssignmentRequest) (*models.Assignment, error) {
	if _, err := s.campaignRepo.GetByID(req.CampaignID); err != nil {
		return nil, errors.New("campaign not found")
	}
	if _, err := s.analystRepo.GetByID(req.AnalystID); err != nil {
		return nil, errors.New("analyst not found")
	}
	if req.StationID != nil {
		if _, err := s.stationRepo.GetByID(*req.StationID); err != nil {
			return nil, errors.New("station not found")
		}
	}
	if req.MonitoringPeriodID != nil {
		if _, err := s.periodRepo.GetByID(*req.MonitoringPeriodID); err != nil {
			return nil, errors.New("monitoring period not found")
		}
	}

	analystID := req.AnalystID
	assignment := &models.Assignment{
		CampaignID:         req.CampaignID,
		AnalystID:          &analystID,
		StationID:          req.StationID,
		MonitoringPeriodID: req.MonitoringPeriodID,
		DueDate:            req.DueDate,
		Memo:               req.Memo,
		Status:             models.AssignmentStatusWIP,
	}
	if err := s.workflow.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// BulkCreate creates one assignment per station for a single campaign and
// analyst. Failures are collected per station; the successes stand.
func (s *AssignmentService) BulkCreate(req *models.BulkCreateAssignmentsRequest) (*models.BulkCreateAssignmentsResponse, error) {
	if _, err := s.campaignRepo.GetByID(req.CampaignID); err != nil {
		return nil, errors.New("campaign not found")
	}
	if _, err := s.analystRepo.GetByID(req.AnalystID); err != nil {
		return nil, errors.New("analyst not found")
	}

	resp := &models.BulkCreateAssignmentsResponse{}
	for _, stationID := range req.StationIDs {
		stationID := stationID
		if _, err := s.stationRepo.GetByID(stationID); err != nil {
			resp.Errors = append(resp.Errors, models.BulkCreateError{StationID: stationID, Error: "station not found"})
			continue
		}
		analystID := req.AnalystID
		assignment := &models.Assignment{
			CampaignID: req.CampaignID,
			AnalystID:  &analystID,
			StationID:  &stationID,
			DueDate:    req.DueDate,
			Memo:       req.Memo,
			Status:     models.AssignmentStatusWIP,
		}
		if err := s.workflow.Create(assignment); err != nil {
			resp.Errors = append(resp.Errors, models.BulkCreateError{StationID: stationID, Error: err.Error()})
			continue
		}
		resp.Created = append(resp.Created, *assignment)
	}
	return resp, nil
}

// GetAssignmentByID retrieves an assignment
func (s *AssignmentService) GetAssignmentByID(id string) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(id)
	if err != nil {
		return nil, errors.New("assignment not found")
	}
	return assignment, nil
}

// GetAssignments retrieves all assignments, optionally filtered by analyst
func (s *AssignmentService) GetAssignments(analystID string) ([]*models.Assignment, error) {
	if analystID != "" {
		return s.assignmentRepo.GetByAnalystID(analystID)
	}
	return s.assignmentRepo.GetAll()
}

// UpdateAssignment merges the partial update into the stored row and runs
// it through the workflow. The prior status is read here, immediately
// before the write, to detect transitions.
func (s *AssignmentService) UpdateAssignment(id string, req *models.UpdateAssignmentRequest) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(id)
	if err != nil {
		return nil, errors.New("assignment not found")
	}
	prevStatus := assignment.Status

	if req.StationID != nil {
		if _, err := s.stationRepo.GetByID(*req.StationID); err != nil {
			return nil, errors.New("station not found")
		}
		assignment.StationID = req.StationID
	}
	if req.MonitoringPeriodID != nil {
		if _, err := s.periodRepo.GetByID(*req.MonitoringPeriodID); err != nil {
			return nil, errors.New("monitoring period not found")
		}
		assignment.MonitoringPeriodID = req.MonitoringPeriodID
	}
	if req.Status != nil {
		assignment.Status = *req.Status
	}
	if req.DueDate != nil {
		assignment.DueDate = req.DueDate
	}
	if req.PlannedSpots != nil {
		assignment.PlannedSpots = req.PlannedSpots
	}
	if req.MissedSpots != nil {
		assignment.MissedSpots = req.MissedSpots
	}
	if req.TransmittedSpots != nil {
		assignment.TransmittedSpots = req.TransmittedSpots
	}
	if req.GainSpots != nil {
		assignment.GainSpots = req.GainSpots
	}
	if req.Memo != nil {
		assignment.Memo = *req.Memo
	}
	if req.ManagerComment != nil {
		assignment.ManagerComment = req.ManagerComment
	}
	if req.AnalystReportShared != nil {
		assignment.AnalystReportShared = *req.AnalystReportShared
	}
	if req.AuthenticatedAccepted != nil {
		assignment.AuthenticatedAccepted = *req.AuthenticatedAccepted
	}
	if req.StationReportShared != nil {
		assignment.StationReportShared = *req.StationReportShared
	}

	if err := s.workflow.Save(assignment, prevStatus); err != nil {
		return nil, err
	}
	return assignment, nil
}

// DeleteAssignment removes an assignment
func (s *AssignmentService) DeleteAssignment(id string) error {
	if _, err := s.assignmentRepo.GetByID(id); err != nil {
		return errors.New("assignment not found")
	}
	if err := s.assignmentRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}
