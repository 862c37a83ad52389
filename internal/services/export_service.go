package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"
	"github.com/mediawatch/report-tracking-backend/internal/utils"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportResult carries a rendered snapshot ready to stream to the client
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ImportResult reports how an uploaded snapshot was applied
type ImportResult struct {
	Created int      `json:"created"`
	Errors  []string `json:"errors,omitempty"`
}

// ExportService renders entity tables as CSV, JSON or XLSX snapshots and
// ingests CSV/JSON uploads for the simple entities
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

type snapshotTable struct {
	headers []string
	rows    [][]string
}

// Export renders one entity table in the requested format
func (s *ExportService) Export(entity, format string) (*ExportResult, error) {
	table, err := s.buildTable(entity)
	if err != nil {
		return nil, err
	}

	switch format {
	case "", "csv":
		content, err := renderCSV(table)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    utils.ExportFilename(entity, "csv"),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case "json":
		content, err := renderJSON(table)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    utils.ExportFilename(entity, "json"),
			ContentType: "application/json",
			Content:     content,
		}, nil
	case "xlsx":
		content, err := renderXLSX(entity, table)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    utils.ExportFilename(entity, "xlsx"),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// ExportCampaignExecution renders the per-assignment execution report,
// optionally narrowed to a comma-separated list of client IDs
func (s *ExportService) ExportCampaignExecution(clientIDs, format string) (*ExportResult, error) {
	query := s.db.Model(&models.Assignment{}).
		Preload("Campaign.Client").
		Preload("Station").
		Preload("Analyst.User")
	if clientIDs != "" {
		ids := strings.Split(clientIDs, ",")
		for i := range ids {
			ids[i] = strings.TrimSpace(ids[i])
		}
		query = query.Joins("JOIN campaigns ON campaigns.id = assignments.campaign_id").
			Where("campaigns.client_id IN ?", ids)
	}
	var assignments []*models.Assignment
	if err := query.Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	table := &snapshotTable{headers: []string{
		"Client Name", "Campaign Name", "Campaign Status", "Assignment ID", "Assignment Status",
		"Planned Spots", "Transmitted Spots", "Missed Spots", "Gained Spots",
		"Station Name", "Analyst Name", "Analyst Username", "Assigned", "Submitted",
	}}
	for _, a := range assignments {
		stationName := ""
		if a.Station != nil {
			stationName = a.Station.Name
		}
		analystName, analystUsername := "", ""
		if a.Analyst != nil {
			analystName = a.Analyst.User.FullName()
			analystUsername = a.Analyst.User.Username
		}
		table.rows = append(table.rows, []string{
			a.Campaign.Client.Name, a.Campaign.Name, a.Campaign.Status, a.ID, a.Status,
			intOrEmpty(a.PlannedSpots), intOrEmpty(a.TransmittedSpots),
			intOrEmpty(a.MissedSpots), intOrEmpty(a.GainSpots),
			stationName, analystName, analystUsername,
			a.AssignedAt.Format("2006-01-02"), dateOrEmpty(a.SubmittedAt),
		})
	}

	switch format {
	case "json":
		content, err := renderJSON(table)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    utils.ExportFilename("campaign_execution", "json"),
			ContentType: "application/json",
			Content:     content,
		}, nil
	case "csv":
		content, err := renderCSV(table)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    utils.ExportFilename("campaign_execution", "csv"),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case "", "xlsx":
		content, err := renderXLSX("Campaign Execution", table)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Filename:    utils.ExportFilename("campaign_execution", "xlsx"),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// Import applies an uploaded CSV or JSON snapshot; the format is picked
// from the upload's file extension. Row failures are collected, not fatal.
func (s *ExportService) Import(entity, filename string, data []byte) (*ImportResult, error) {
	var records []map[string]string
	var err error
	switch {
	case strings.HasSuffix(filename, ".json"):
		records, err = parseJSONRecords(data)
	case strings.HasSuffix(filename, ".csv"):
		records, err = parseCSVRecords(data)
	default:
		return nil, errors.New("upload must be a .csv or .json file")
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, record := range records {
		if err := s.importRecord(entity, record); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Created++
	}
	return result, nil
}

func (s *ExportService) importRecord(entity string, record map[string]string) error {
	switch entity {
	case "clients":
		if record["name"] == "" {
			return errors.New("missing name")
		}
		return repository.NewClientRepository(s.db).Create(&models.Client{
			Name:        record["name"],
			Description: record["description"],
		})
	case "stations":
		if record["name"] == "" {
			return errors.New("missing name")
		}
		return repository.NewStationRepository(s.db).Create(&models.Station{
			Name:     record["name"],
			Location: record["location"],
		})
	case "campaigns":
		if record["name"] == "" || record["client_id"] == "" {
			return errors.New("missing name or client_id")
		}
		if _, err := repository.NewClientRepository(s.db).GetByID(record["client_id"]); err != nil {
			return errors.New("client not found")
		}
		status := record["status"]
		if status == "" {
			status = models.CampaignStatusActive
		}
		return repository.NewCampaignRepository(s.db).Create(&models.Campaign{
			ClientID:    record["client_id"],
			Name:        record["name"],
			Description: record["description"],
			Status:      status,
		})
	}
	return fmt.Errorf("unsupported import entity %q", entity)
}

func (s *ExportService) buildTable(entity string) (*snapshotTable, error) {
	switch entity {
	case "clients":
		clients, err := repository.NewClientRepository(s.db).GetAll()
		if err != nil {
			return nil, err
		}
		table := &snapshotTable{headers: []string{"id", "name", "description", "created_at"}}
		for _, c := range clients {
			table.rows = append(table.rows, []string{c.ID, c.Name, c.Description, c.CreatedAt.Format(time.RFC3339)})
		}
		return table, nil
	case "stations":
		stations, err := repository.NewStationRepository(s.db).GetAll()
		if err != nil {
			return nil, err
		}
		table := &snapshotTable{headers: []string{"id", "name", "location", "created_at"}}
		for _, st := range stations {
			table.rows = append(table.rows, []string{st.ID, st.Name, st.Location, st.CreatedAt.Format(time.RFC3339)})
		}
		return table, nil
	case "campaigns":
		campaigns, err := repository.NewCampaignRepository(s.db).GetAll()
		if err != nil {
			return nil, err
		}
		table := &snapshotTable{headers: []string{"id", "client_id", "client_name", "name", "description", "status", "created_at"}}
		for _, c := range campaigns {
			table.rows = append(table.rows, []string{
				c.ID, c.ClientID, c.Client.Name, c.Name, c.Description, c.Status,
				c.CreatedAt.Format(time.RFC3339),
			})
		}
		return table, nil
	case "analysts":
		analysts, err := repository.NewAnalystRepository(s.db).GetAll()
		if err != nil {
			return nil, err
		}
		table := &snapshotTable{headers: []string{"id", "user_id", "username"}}
		for _, a := range analysts {
			table.rows = append(table.rows, []string{a.ID, a.UserID, a.User.Username})
		}
		return table, nil
	case "assignments":
		assignments, err := repository.NewAssignmentRepository(s.db).GetAll()
		if err != nil {
			return nil, err
		}
		table := &snapshotTable{headers: []string{
			"id", "campaign", "station", "analyst", "status", "due_date",
			"planned_spots", "missed_spots", "transmitted_spots", "gain_spots",
			"memo", "assigned_at", "submitted_at",
		}}
		for _, a := range assignments {
			table.rows = append(table.rows, []string{
				a.ID, a.CampaignID, strOrEmpty(a.StationID), strOrEmpty(a.AnalystID),
				a.Status, dateOrEmpty(a.DueDate),
				intOrEmpty(a.PlannedSpots), intOrEmpty(a.MissedSpots),
				intOrEmpty(a.TransmittedSpots), intOrEmpty(a.GainSpots),
				a.Memo, a.AssignedAt.Format(time.RFC3339), dateOrEmpty(a.SubmittedAt),
			})
		}
		return table, nil
	}
	return nil, fmt.Errorf("unsupported export entity %q", entity)
}

func renderCSV(table *snapshotTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.headers); err != nil {
		return nil, err
	}
	for _, row := range table.rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func renderJSON(table *snapshotTable) ([]byte, error) {
	records := make([]map[string]string, len(table.rows))
	for i, row := range table.rows {
		record := make(map[string]string, len(table.headers))
		for j, h := range table.headers {
			record[h] = row[j]
		}
		records[i] = record
	}
	return json.MarshalIndent(records, "", "  ")
}

func renderXLSX(sheet string, table *snapshotTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range table.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for rowIdx, row := range table.rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseCSVRecords(data []byte) ([]map[string]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(rows) < 1 {
		return nil, errors.New("empty CSV upload")
	}
	headers := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := map[string]string{}
		for i, h := range headers {
			if i < len(row) {
				record[strings.TrimSpace(h)] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func parseJSONRecords(data []byte) ([]map[string]string, error) {
	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	records := make([]map[string]string, len(raw))
	for i, item := range raw {
		record := map[string]string{}
		for k, v := range item {
			switch val := v.(type) {
			case string:
				record[k] = val
			case float64:
				record[k] = strconv.FormatFloat(val, 'f', -1, 64)
			case bool:
				record[k] = strconv.FormatBool(val)
			}
		}
		records[i] = record
	}
	return records, nil
}

func intOrEmpty(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func dateOrEmpty(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}
