package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/mindforge/internal/errors"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/planner"
	"github.com/vytor/mindforge/internal/services"
)

func TestPlanService_GenerateAndTrack(t *testing.T) {
	f := newFixture(t, 0.5)
	f.expectPersist()
	ctx := context.Background()

	_, err := f.plan.AddSubject(ctx, "Matemática", 8)
	require.NoError(t, err)
	deadline := now.AddDate(0, 0, 15)

	plan, err := f.plan.Generate(ctx, &deadline)
	require.NoError(t, err)
	require.Len(t, plan.Weeks, 3)

	week, err := f.plan.Week(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "s1", week.ID)

	week, err = f.plan.MarkDayComplete(ctx, "s1", 1, true)
	require.NoError(t, err)
	assert.InDelta(t, week.Days[1].Hours, week.CompletedHours, 1e-9)

	week, err = f.plan.SetActualHours(ctx, "s1", 1, 3.5)
	require.NoError(t, err)
	assert.False(t, week.Days[1].Completed)
	assert.Equal(t, 3.5, week.Days[1].Hours)

	_, err = f.plan.SetActualHours(ctx, "s1", 1, -2)
	assert.ErrorIs(t, err, planner.ErrInvalidHours)

	_, err = f.plan.MarkDayComplete(ctx, "s9", 1, true)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestPlanService_UnchangedDayIsNotPersisted(t *testing.T) {
	f := newFixture(t, 0.5)
	f.expectPersist()
	ctx := context.Background()
	_, err := f.plan.AddSubject(ctx, "Física", 4)
	require.NoError(t, err)
	deadline := now.AddDate(0, 0, 8)
	_, err = f.plan.Generate(ctx, &deadline)
	require.NoError(t, err)
	saves := len(f.repo.Calls)

	_, err = f.plan.MarkDayComplete(ctx, "s1", 2, false)
	require.NoError(t, err)

	assert.Len(t, f.repo.Calls, saves)
}

func TestPlanService_GenerateFailureLeavesPlan(t *testing.T) {
	f := newFixture(t, 0.5)
	ctx := context.Background()

	past := now.AddDate(0, 0, -3)
	_, err := f.plan.Generate(ctx, &past)
	assert.ErrorIs(t, err, planner.ErrNoSubjects)
	_, err = f.plan.Generate(ctx, nil)
	assert.ErrorIs(t, err, planner.ErrNoDeadline)

	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPlanService_SubjectsAndReset(t *testing.T) {
	f := newFixture(t, 0.5)
	f.expectPersist()
	ctx := context.Background()

	var entries []models.SubjectInput
	require.NoError(t, json.Unmarshal([]byte(`[{"nome":"Português","horasPorSemana":5},{"nome":"Matemática","horasPorSemana":8}]`), &entries))
	added, err := f.plan.ImportSubjects(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = f.plan.ImportSubjects(ctx, entries)
	require.NoError(t, err)
	assert.Zero(t, added)

	_, err = f.plan.AddSubject(ctx, "PORTUGUÊS", 2)
	assert.ErrorIs(t, err, planner.ErrDuplicate)

	assert.ErrorIs(t, f.plan.RemoveSubject(ctx, "Português", services.Declined), services.ErrCancelled)
	require.NoError(t, f.plan.RemoveSubject(ctx, "Português", services.Confirmed))

	deadline := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	_, err = f.plan.Generate(ctx, &deadline)
	require.NoError(t, err)

	require.NoError(t, f.plan.Reset(ctx, services.Confirmed))
	plan, err := f.plan.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, plan.Subjects)
	assert.Empty(t, plan.Weeks)
	assert.Nil(t, plan.Deadline)
}
