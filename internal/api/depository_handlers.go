package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookzapp/bookz-server/internal/service"
	"github.com/bookzapp/bookz-server/internal/store"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

func (s *Server) registerDepositoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "initDepository",
		Method:      http.MethodPost,
		Path:        "/depository/new",
		Summary:     "Initialise the depository grid",
		Description: "Rebuilds the placement grid. Omitted dimensions fall back to the configured defaults.",
		Tags:        []string{"Depository"},
	}, s.handleInitDepository)

	huma.Register(s.api, huma.Operation{
		OperationID: "depositoryStatus",
		Method:      http.MethodGet,
		Path:        "/depository/status",
		Summary:     "Depository occupancy summary",
		Tags:        []string{"Depository"},
	}, s.handleDepositoryStatus)
}

// === DTOs ===

type HealthOutput struct {
	Body struct {
		Status string `json:"status" doc:"Service health"`
	}
}

type InitDepositoryRequest struct {
	Lines     int `json:"lines,omitempty" minimum:"0" maximum:"26" doc:"Number of lines (A..)"`
	Columns   int `json:"columns,omitempty" minimum:"0" doc:"Columns per line"`
	Shelves   int `json:"shelves,omitempty" minimum:"0" maximum:"26" doc:"Shelves per column (A..)"`
	Positions int `json:"positions,omitempty" minimum:"0" doc:"Positions per shelf"`
}

type InitDepositoryInput struct {
	Body InitDepositoryRequest `required:"false"`
}

type InitDepositoryOutput struct {
	Body struct {
		Slots int `json:"slots" doc:"Total slots in the new grid"`
	}
}

type DepositoryStatusOutput struct {
	Body store.DepositorySummary
}

// === Handlers ===

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "healthy"
	return out, nil
}

func (s *Server) handleInitDepository(ctx context.Context, input *InitDepositoryInput) (*InitDepositoryOutput, error) {
	req := service.InitGridRequest{
		Lines:     input.Body.Lines,
		Columns:   input.Body.Columns,
		Shelves:   input.Body.Shelves,
		Positions: input.Body.Positions,
	}
	if req.Lines == 0 {
		req.Lines = s.grid.Lines
	}
	if req.Columns == 0 {
		req.Columns = s.grid.Columns
	}
	if req.Shelves == 0 {
		req.Shelves = s.grid.Shelves
	}
	if req.Positions == 0 {
		req.Positions = s.grid.Positions
	}

	total, err := s.services.Depository.InitGrid(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &InitDepositoryOutput{}
	out.Body.Slots = total
	return out, nil
}

func (s *Server) handleDepositoryStatus(ctx context.Context, _ *struct{}) (*DepositoryStatusOutput, error) {
	summary, err := s.services.Depository.Status(ctx)
	if err != nil {
		return nil, err
	}
	return &DepositoryStatusOutput{Body: *summary}, nil
}
