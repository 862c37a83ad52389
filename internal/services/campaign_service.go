package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type CampaignService struct {
	db            *gorm.DB
	campaignRepo  *repository.CampaignRepository
	clientRepo    *repository.ClientRepository
	stationRepo   *repository.StationRepository
	notifications *NotificationService
}

func NewCampaignService(db *gorm.DB, notifications *NotificationService) *CampaignService {
	return &CampaignService{
		db:            db,
		campaignRepo:  repository.NewCampaignRepository(db),
		clientRepo:    repository.NewClientRepository(db),
		stationRepo:   repository.NewStationRepository(db),
		notifications: notifications,
	}
}

// CreateCampaign creates a new campaign for a client
func (s *CampaignService) CreateCampaign(req *models.CreateCampaignRequest) (*models.Campaign, error) {
	if _, err := s.clientRepo.GetByID(req.ClientID); err != nil {
		return nil, errors.New("client not found")
	}

	campaign := &models.Campaign{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.CampaignStatusActive,
	}
	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	if len(req.StationIDs) > 0 {
		stations, err := s.stationRepo.GetByIDs(req.StationIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch stations: %w", err)
		}
		if len(stations) != len(req.StationIDs) {
			return nil, errors.New("one or more stations not found")
		}
		if err := s.campaignRepo.ReplaceStations(campaign, stations); err != nil {
			return nil, fmt.Errorf("failed to associate stations with campaign: %w", err)
		}
	}
	return s.campaignRepo.GetByID(campaign.ID)
}

// GetCampaigns retrieves all campaigns
func (s *CampaignService) GetCampaigns() ([]*models.Campaign, error) {
	return s.campaignRepo.GetAll()
}

// GetCampaignByID retrieves a campaign
func (s *CampaignService) GetCampaignByID(id string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, errors.New("campaign not found")
	}
	return campaign, nil
}

// UpdateCampaign updates a campaign. A transition into CLOSED from any
// other status fans out to the Accountants group within the same
// transaction; a CLOSED -> CLOSED no-op notifies nobody.
func (s *CampaignService) UpdateCampaign(id string, req *models.UpdateCampaignRequest) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, errors.New("campaign not found")
	}
	prevStatus := campaign.Status

	campaign.Name = req.Name
	campaign.Description = req.Description
	if req.Status != "" {
		campaign.Status = req.Status
	}

	var stations []*models.Station
	if req.StationIDs != nil {
		stations, err = s.stationRepo.GetByIDs(*req.StationIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch stations: %w", err)
		}
		if len(stations) != len(*req.StationIDs) {
			return nil, errors.New("one or more stations not found")
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewCampaignRepository(tx).Update(campaign); err != nil {
			return fmt.Errorf("failed to update campaign: %w", err)
		}
		if req.StationIDs != nil {
			if err := repository.NewCampaignRepository(tx).ReplaceStations(campaign, stations); err != nil {
				return fmt.Errorf("failed to replace campaign stations: %w", err)
			}
		}
		if campaign.Status == models.CampaignStatusClosed && prevStatus != models.CampaignStatusClosed {
			if err := s.notifications.CampaignClosed(tx, campaign); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.campaignRepo.GetByID(campaign.ID)
}

// DeleteCampaign removes a campaign together with its assignments and periods
func (s *CampaignService) DeleteCampaign(id string) error {
	if _, err := s.campaignRepo.GetByID(id); err != nil {
		return errors.New("campaign not found")
	}
	if err := s.campaignRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

// AccountantSummaries returns ACTIVE and CLOSED campaigns annotated with
// the anticipated completion date: the latest monitoring period's
// authentication end.
func (s *CampaignService) AccountantSummaries() ([]*models.AccountantCampaignSummary, error) {
	campaigns, err := s.campaignRepo.GetByStatuses([]string{
		models.CampaignStatusActive,
		models.CampaignStatusClosed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	summaries := make([]*models.AccountantCampaignSummary, len(campaigns))
	for i, c := range campaigns {
		var anticipated *time.Time
		for j := range c.MonitoringPeriods {
			end := c.MonitoringPeriods[j].AuthenticationEnd
			if anticipated == nil || end.After(*anticipated) {
				anticipated = &end
			}
		}
		summaries[i] = &models.AccountantCampaignSummary{
			ID:                                c.ID,
			Name:                              c.Name,
			ClientName:                        c.Client.Name,
			Status:                            c.Status,
			AnticipatedCampaignCompletionDate: anticipated,
			CreatedAt:                         c.CreatedAt,
		}
	}
	return summaries, nil
}
