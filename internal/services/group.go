package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"school-crm/internal/authz"
	"school-crm/internal/dto"
	"school-crm/internal/repositories"
	apperrors "school-crm/pkg/errors"
)

type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, payload dto.CreateGroupDTO) (*dto.GroupDTO, error)
	GetGroups(ctx context.Context) ([]dto.GroupDTO, error)
}

type GroupService struct {
	groupRepo repositories.GroupRepositoryInterface
	logger    *zap.Logger
}

func NewGroupService(groupRepo repositories.GroupRepositoryInterface, logger *zap.Logger) GroupServiceInterface {
	return &GroupService{groupRepo: groupRepo, logger: logger}
}

func (s *GroupService) CreateGroup(ctx context.Context, payload dto.CreateGroupDTO) (*dto.GroupDTO, error) {
	actor, err := authz.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, authz.GroupsManage, authz.OwnershipNone); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("Group name must not be empty")
	}

	group, err := s.groupRepo.CreateGroup(ctx, name)
	if err != nil {
		return nil, err
	}
	return toGroupDTO(group), nil
}

func (s *GroupService) GetGroups(ctx context.Context) ([]dto.GroupDTO, error) {
	groups, err := s.groupRepo.GetGroups(ctx)
	if err != nil {
		return nil, err
	}
	return toGroupDTOs(groups), nil
}
