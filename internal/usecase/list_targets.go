package usecase

import (
	"context"
	"errors"

	"github.com/runoshun/uf2idf/internal/domain"
)

// ListTargetsInput contains the input for the ListTargets use case.
type ListTargetsInput struct{}

// TargetInfo describes one orchestrator target.
type TargetInfo struct {
	Name        string
	Description string
	Actions     []domain.Action
}

// ListTargetsOutput contains the known targets and project environments.
type ListTargetsOutput struct {
	Targets      []TargetInfo
	Environments []string // Empty when there is no platformio.ini
}

// ListTargets lists targets and the environments they can run for.
type ListTargets struct {
	project domain.ProjectReader
}

// NewListTargets creates a new ListTargets use case.
func NewListTargets(project domain.ProjectReader) *ListTargets {
	return &ListTargets{project: project}
}

// Execute returns the target table.
func (uc *ListTargets) Execute(_ context.Context, _ ListTargetsInput) (*ListTargetsOutput, error) {
	out := &ListTargetsOutput{}
	for _, name := range domain.TargetNames() {
		out.Targets = append(out.Targets, TargetInfo{
			Name:        name,
			Description: domain.TargetDescription(name),
			Actions:     domain.KnownTargets[name],
		})
	}

	envs, err := uc.project.Environments()
	if err != nil && !errors.Is(err, domain.ErrProjectNotFound) {
		return nil, err
	}
	out.Environments = envs
	return out, nil
}
