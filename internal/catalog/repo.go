package catalog

import (
	"context"
	"fmt"

	"github.com/2beens/gymbuddy/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ByMuscleGroup(ctx context.Context, muscleGroup string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.by_muscle_group")
	span.SetAttributes(attribute.String("muscle_group", muscleGroup))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, main_muscle_group, primary_equipment, grip_style
		FROM available_exercises
		WHERE main_muscle_group = $1
		ORDER BY name`,
		muscleGroup,
	)
	if err != nil {
		return nil, err
	}

	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Exercise, error) {
		var e Exercise
		err := row.Scan(&e.ID, &e.Name, &e.MainMuscleGroup, &e.PrimaryEquipment, &e.GripStyle)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect exercises: %w", err)
	}

	return exercises, nil
}

func (r *Repo) MuscleGroups(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.muscle_groups")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT main_muscle_group
		FROM available_exercises
		ORDER BY main_muscle_group`,
	)
	if err != nil {
		return nil, err
	}

	groups, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect muscle groups: %w", err)
	}

	return groups, nil
}
