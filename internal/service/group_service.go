package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/sharezin/internal/middleware"
	"github.com/mmynk/sharezin/internal/models"
	"github.com/mmynk/sharezin/internal/storage"
	"github.com/mmynk/sharezin/pkg/api"
)

// GroupService implements the Connect GroupService. Groups are templates of
// participants a creator can apply to a receipt.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	ownerID := middleware.GetUserID(ctx)
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
		"user_id", ownerID,
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group name required"))
	}

	members, err := s.resolveMembers(ctx, req.Msg.Members)
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:    name,
		OwnerID: ownerID,
		Members: members,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(group)}), nil
}

// resolveMembers fills in display names for members linked to an account and
// rejects unknown accounts.
func (s *GroupService) resolveMembers(ctx context.Context, in []api.GroupMember) ([]models.GroupMember, error) {
	var ids []string
	for _, m := range in {
		if m.UserID != "" {
			ids = append(ids, m.UserID)
		}
	}

	users := map[string]*models.User{}
	if len(ids) > 0 {
		var err error
		users, err = s.store.GetUsersByIDs(ctx, ids)
		if err != nil {
			slog.Error("CreateGroup failed to resolve members", "error", err)
			return nil, toConnectError(err)
		}
	}

	members := make([]models.GroupMember, 0, len(in))
	for _, m := range in {
		member := models.GroupMember{Name: strings.TrimSpace(m.Name), UserID: m.UserID}
		if m.UserID != "" {
			user, ok := users[m.UserID]
			if !ok {
				return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown user %s", m.UserID))
			}
			if member.Name == "" {
				member.Name = user.DisplayName
			}
		}
		if member.Name == "" {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("member name required"))
		}
		members = append(members, member)
	}
	return members, nil
}

// GetGroup retrieves one of the caller's groups by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.ownedGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves the caller's groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	ownerID := middleware.GetUserID(ctx)
	slog.Info("ListGroups request received", "user_id", ownerID)

	groups, err := s.store.ListGroups(ctx, ownerID)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// DeleteGroup removes one of the caller's groups. Receipts it was applied to
// keep their participants.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if _, err := s.ownedGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, err
	}
	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// ownedGroup hides groups of other users behind NotFound.
func (s *GroupService) ownedGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Warn("Group lookup failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}
	if group.OwnerID != middleware.GetUserID(ctx) {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound))
	}
	return group, nil
}
