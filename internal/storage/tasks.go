// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/task-service/internal/types"
)

const taskColumns = "id, title, description, status, priority, due_date, organization_id, created_by_id, assigned_to_id, created_at, updated_at"

var taskSortColumns = map[types.TaskSortField]string{
	types.TaskSortCreatedAt: "created_at",
	types.TaskSortDueDate:   "due_date",
	types.TaskSortPriority:  "priority",
}

func scanTask(row sq.RowScanner) (*types.Task, error) {
	var t types.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
		&t.OrganizationID, &t.CreatedByID, &t.AssignedToID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) CreateTask(ctx context.Context, t *types.Task) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTask")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate task ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("tasks").
		Columns("id", "title", "description", "status", "priority", "due_date", "organization_id", "created_by_id", "assigned_to_id").
		Values(id.String(), t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.OrganizationID, t.CreatedByID, t.AssignedToID).
		Suffix("RETURNING " + taskColumns).
		QueryRowContext(ctx)

	created, err := scanTask(row)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	return created, nil
}

func (s *Storage) GetTaskByID(ctx context.Context, id string) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTaskByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

func taskConditions(scope types.TaskScope, filter types.TaskFilter) sq.And {
	conds := sq.And{}

	if !scope.All {
		if len(scope.OrgIDs) > 0 {
			conds = append(conds, sq.Eq{"organization_id": scope.OrgIDs})
		}
		if scope.AssignedToID != "" {
			conds = append(conds, sq.Eq{"assigned_to_id": scope.AssignedToID})
		}
	}

	if filter.Status != nil {
		conds = append(conds, sq.Eq{"status": *filter.Status})
	}
	if filter.Priority != nil {
		conds = append(conds, sq.Eq{"priority": *filter.Priority})
	}
	if filter.AssignedToID != "" {
		conds = append(conds, sq.Eq{"assigned_to_id": filter.AssignedToID})
	}
	if filter.OrganizationID != "" {
		conds = append(conds, sq.Eq{"organization_id": filter.OrganizationID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}

	return conds
}

func (s *Storage) ListTasks(ctx context.Context, scope types.TaskScope, filter types.TaskFilter, page types.Pagination) ([]*types.Task, int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTasks")
	defer span.End()

	// An empty non-super scope matches nothing; the visibility predicate
	// must never silently widen.
	if !scope.All && len(scope.OrgIDs) == 0 && scope.AssignedToID == "" {
		return nil, 0, nil
	}

	conds := taskConditions(scope, filter)

	var total int64
	count := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("tasks")
	if len(conds) > 0 {
		count = count.Where(conds)
	}
	if err := count.QueryRowContext(ctx).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	sortColumn, ok := taskSortColumns[filter.Sort]
	if !ok {
		sortColumn = "created_at"
	}
	order := "DESC"
	if filter.Order == types.SortAsc {
		order = "ASC"
	}

	query := s.db.Statement(ctx).
		Select(taskColumns).
		From("tasks").
		OrderBy(fmt.Sprintf("%s %s", sortColumn, order)).
		Offset(page.Offset()).
		Limit(page.Limit())
	if len(conds) > 0 {
		query = query.Where(conds)
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*types.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return tasks, total, nil
}

// UpdateTask persists the mutable fields of t. The organization a task
// belongs to is fixed at creation and is deliberately not part of the
// update set.
func (s *Storage) UpdateTask(ctx context.Context, t *types.Task) (*types.Task, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTask")
	defer span.End()

	row := s.db.Statement(ctx).
		Update("tasks").
		Set("title", t.Title).
		Set("description", t.Description).
		Set("status", t.Status).
		Set("priority", t.Priority).
		Set("due_date", t.DueDate).
		Set("assigned_to_id", t.AssignedToID).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": t.ID}).
		Suffix("RETURNING " + taskColumns).
		QueryRowContext(ctx)

	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

func (s *Storage) DeleteTask(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteTask")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("tasks").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
