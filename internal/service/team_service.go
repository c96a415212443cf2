package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/teamwork-api/internal/domain"
	"github.com/phrazzld/teamwork-api/internal/store"
)

// TeamService provides team and membership lifecycle operations. Every
// operation authorizes the caller against the live membership rows; entity
// existence is always established before any authorization check.
type TeamService interface {
	// CreateTeam creates a team and enrolls the creator as its owner in one
	// atomic step.
	CreateTeam(ctx context.Context, callerID int64, name string, description *string) (*TeamDetail, error)

	// GetTeam returns a team with its member roster. Caller must be a member.
	GetTeam(ctx context.Context, teamID, callerID int64) (*TeamDetail, error)

	// GetMyTeams returns all teams the caller belongs to.
	GetMyTeams(ctx context.Context, callerID int64) ([]TeamSummary, error)

	// UpdateTeam changes a team's name and description. Owner or manager.
	UpdateTeam(ctx context.Context, teamID, callerID int64, name string, description *string) (*TeamDetail, error)

	// DeleteTeam removes a team and everything under it. Owner only.
	DeleteTeam(ctx context.Context, teamID, callerID int64) error

	// AddMember enrolls a user in the team. Owner or manager; only owners
	// may grant the manager or owner role.
	AddMember(ctx context.Context, teamID, callerID, userID int64, role domain.Role) (*TeamDetail, error)

	// RemoveMember removes a user from the team. Owner or manager; owners
	// cannot be removed, and managers cannot remove other managers.
	RemoveMember(ctx context.Context, teamID, callerID, userID int64) error

	// UpdateMemberRole changes a member's role. Owner only; an owner's own
	// role cannot be changed.
	UpdateMemberRole(ctx context.Context, teamID, callerID, userID int64, role domain.Role) (*TeamDetail, error)

	// LeaveTeam removes the caller's own membership. The last owner cannot
	// leave.
	LeaveTeam(ctx context.Context, teamID, callerID int64) error
}

type teamServiceImpl struct {
	transactor store.Transactor
	teams      store.TeamStore
	members    store.MembershipStore
	users      store.UserStore
	authz      *Authorizer
	logger     *slog.Logger
}

// NewTeamService creates a TeamService. The transactor opens the transaction
// that makes team creation atomic with the owner enrollment.
func NewTeamService(
	transactor store.Transactor,
	teams store.TeamStore,
	members store.MembershipStore,
	users store.UserStore,
	logger *slog.Logger,
) TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &teamServiceImpl{
		transactor: transactor,
		teams:      teams,
		members:    members,
		users:      users,
		authz:      NewAuthorizer(members),
		logger:     logger.With("component", "team_service"),
	}
}

func (s *teamServiceImpl) CreateTeam(
	ctx context.Context,
	callerID int64,
	name string,
	description *string,
) (*TeamDetail, error) {
	team, err := domain.NewTeam(name, description)
	if err != nil {
		return nil, err
	}

	owner, err := domain.NewTeamMember(0, callerID, domain.RoleOwner)
	if err != nil {
		return nil, err
	}

	// Team row and owner membership commit together or not at all. A
	// foreign key failure on the membership insert (caller deleted
	// concurrently) rolls the team back too.
	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.teams.WithTx(tx).Create(ctx, team); err != nil {
			return fmt.Errorf("creating team: %w", err)
		}
		owner.TeamID = team.ID
		if err := s.members.WithTx(tx).Add(ctx, owner); err != nil {
			return fmt.Errorf("enrolling owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("team created",
		"team_id", team.ID,
		"owner_id", callerID)

	return s.teamDetail(ctx, team)
}

func (s *teamServiceImpl) GetTeam(ctx context.Context, teamID, callerID int64) (*TeamDetail, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireMember(ctx, teamID, callerID); err != nil {
		return nil, err
	}
	return s.teamDetail(ctx, team)
}

func (s *teamServiceImpl) GetMyTeams(ctx context.Context, callerID int64) ([]TeamSummary, error) {
	teams, err := s.teams.ListForUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		summaries = append(summaries, TeamSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
			MemberCount: t.MemberCount,
		})
	}
	return summaries, nil
}

func (s *teamServiceImpl) UpdateTeam(
	ctx context.Context,
	teamID, callerID int64,
	name string,
	description *string,
) (*TeamDetail, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireRole(ctx, teamID, callerID, ManagersAndUp); err != nil {
		return nil, err
	}

	team.Name = name
	team.Description = description
	if err := team.Validate(); err != nil {
		return nil, err
	}
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, err
	}

	return s.teamDetail(ctx, team)
}

func (s *teamServiceImpl) DeleteTeam(ctx context.Context, teamID, callerID int64) error {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return err
	}
	if err := s.authz.RequireRole(ctx, teamID, callerID, OwnersOnly); err != nil {
		return err
	}

	if err := s.teams.Delete(ctx, teamID); err != nil {
		return err
	}

	s.logger.Info("team deleted",
		"team_id", teamID,
		"deleted_by", callerID)
	return nil
}

func (s *teamServiceImpl) AddMember(
	ctx context.Context,
	teamID, callerID, userID int64,
	role domain.Role,
) (*TeamDetail, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	callerRole, err := s.authz.RoleOf(ctx, teamID, callerID)
	if err != nil {
		return nil, err
	}
	if callerRole != domain.RoleOwner && callerRole != domain.RoleManager {
		return nil, ErrForbidden
	}
	// Managers recruit plain members only. Elevated roles are granted by
	// owners.
	if role != domain.RoleMember && callerRole != domain.RoleOwner {
		return nil, ErrForbidden
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	member, err := domain.NewTeamMember(teamID, userID, role)
	if err != nil {
		return nil, err
	}
	if err := s.members.Add(ctx, member); err != nil {
		if store.IsDuplicateError(err) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	s.logger.Info("member added",
		"team_id", teamID,
		"user_id", userID,
		"role", role,
		"added_by", callerID)

	return s.teamDetail(ctx, team)
}

func (s *teamServiceImpl) RemoveMember(ctx context.Context, teamID, callerID, userID int64) error {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return err
	}

	callerRole, err := s.authz.RoleOf(ctx, teamID, callerID)
	if err != nil {
		return err
	}
	if callerRole != domain.RoleOwner && callerRole != domain.RoleManager {
		return ErrForbidden
	}

	target, err := s.members.Get(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleOwner {
		return ErrCannotRemoveOwner
	}
	if target.Role == domain.RoleManager && callerRole != domain.RoleOwner {
		return ErrForbidden
	}

	if err := s.members.Remove(ctx, teamID, userID); err != nil {
		return err
	}

	s.logger.Info("member removed",
		"team_id", teamID,
		"user_id", userID,
		"removed_by", callerID)
	return nil
}

func (s *teamServiceImpl) UpdateMemberRole(
	ctx context.Context,
	teamID, callerID, userID int64,
	role domain.Role,
) (*TeamDetail, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireRole(ctx, teamID, callerID, OwnersOnly); err != nil {
		return nil, err
	}

	target, err := s.members.Get(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if target.Role == domain.RoleOwner {
		return nil, ErrOwnerImmutable
	}

	if err := s.members.UpdateRole(ctx, teamID, userID, role); err != nil {
		return nil, err
	}

	s.logger.Info("member role updated",
		"team_id", teamID,
		"user_id", userID,
		"role", role,
		"updated_by", callerID)

	return s.teamDetail(ctx, team)
}

func (s *teamServiceImpl) LeaveTeam(ctx context.Context, teamID, callerID int64) error {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return err
	}

	member, err := s.members.Get(ctx, teamID, callerID)
	if err != nil {
		return err
	}

	if member.Role == domain.RoleOwner {
		owners, err := s.members.CountOwners(ctx, teamID)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return ErrLastOwner
		}
	}

	if err := s.members.Remove(ctx, teamID, callerID); err != nil {
		return err
	}

	s.logger.Info("member left team",
		"team_id", teamID,
		"user_id", callerID)
	return nil
}

// teamDetail assembles the full roster view for a team that is known to
// exist.
func (s *teamServiceImpl) teamDetail(ctx context.Context, team *domain.Team) (*TeamDetail, error) {
	members, err := s.members.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	infos := make([]MemberInfo, 0, len(members))
	for _, m := range members {
		infos = append(infos, MemberInfo{
			UserID:   m.UserID,
			FullName: m.UserName,
			Email:    m.UserEmail,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}

	return &TeamDetail{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatedAt:   team.CreatedAt,
		Members:     infos,
	}, nil
}
