package service

import (
	"time"

	"github.com/phrazzld/teamwork-api/internal/domain"
)

// TeamSummary is a team as it appears in list responses, annotated with its
// member count.
type TeamSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	MemberCount int       `json:"memberCount"`
}

// MemberInfo is a team member joined with the user's display fields.
type MemberInfo struct {
	UserID   int64       `json:"userId"`
	FullName string      `json:"fullName"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	JoinedAt time.Time   `json:"joinedAt"`
}

// TeamDetail is a team with its full member roster.
type TeamDetail struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	Members     []MemberInfo `json:"members"`
}

// ProjectSummary is a project as it appears in list responses, annotated
// with its task count.
type ProjectSummary struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	TeamID      int64      `json:"teamId"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	TaskCount   int        `json:"taskCount"`
}

// ProjectDetail is a project with its owning team's name and its tasks.
type ProjectDetail struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	TeamID      int64      `json:"teamId"`
	TeamName    string     `json:"teamName"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	Tasks       []TaskView `json:"tasks"`
}

// TaskView is a task enriched with the assignee's name and the project name.
type TaskView struct {
	ID                 int64               `json:"id"`
	Title              string              `json:"title"`
	Description        *string             `json:"description,omitempty"`
	Status             domain.TaskStatus   `json:"status"`
	Priority           domain.TaskPriority `json:"priority"`
	DueDate            *time.Time          `json:"dueDate,omitempty"`
	AssignedToUserID   *int64              `json:"assignedToUserId,omitempty"`
	AssignedToUserName *string             `json:"assignedToUserName,omitempty"`
	ProjectID          int64               `json:"projectId"`
	ProjectName        string              `json:"projectName"`
	CreatedAt          time.Time           `json:"createdAt"`
	CompletedAt        *time.Time          `json:"completedAt,omitempty"`
}

// TaskPage is one page of a task query result.
type TaskPage struct {
	Items      []TaskView `json:"items"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalCount int        `json:"totalCount"`
	TotalPages int        `json:"totalPages"`
}
