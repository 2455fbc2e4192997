package scorestorage

import (
	"testing"
	"time"

	"github.com/burenotti/go_wellness_backend/internal/domain/wellness"
	"github.com/leporo/sqlf"
	"github.com/stretchr/testify/require"
)

func TestUpsertQuery(t *testing.T) {
	sqlf.SetDialect(sqlf.PostgreSQL)
	t.Cleanup(func() { sqlf.SetDialect(sqlf.NoDialect) })

	date := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	r := wellness.NewRecord("user-1", date, wellness.Components{
		CardiovascularFitness: 7.5,
		TotalScore:            55,
		Category:              wellness.CategoryFair,
		CalculatedAt:          date.Add(8 * time.Hour),
	})

	q := UpsertQuery(r)
	defer q.Close()

	sql := q.String()
	require.Contains(t, sql, "INSERT INTO wellness_scores")
	require.Contains(t, sql, "ON CONFLICT (user_id, score_date) DO UPDATE SET")
	require.Contains(t, sql, "$11")
	require.Len(t, q.Args(), 11)
	require.Equal(t, "user-1", q.Args()[0])
	require.Equal(t, "2026-10-19", q.Args()[1])
	require.Equal(t, "Fair", q.Args()[9])
}
