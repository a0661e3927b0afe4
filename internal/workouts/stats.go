package workouts

import (
	"time"

	"github.com/2beens/gymbuddy/pkg"
)

// StartOfWeek returns Sunday 00:00 of the week containing t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	return time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 0, 0, 0, 0, t.Location())
}

type aggregate struct {
	total              int
	completed          int
	exerciseCompletion ExerciseCompletion
}

func aggregateWorkouts(workouts []Workout) aggregate {
	var agg aggregate
	for _, w := range workouts {
		agg.total++
		if w.Completed {
			agg.completed++
		}
		for _, e := range w.Exercises {
			for _, s := range e.Sets {
				agg.exerciseCompletion.Total++
				if s.Completed {
					agg.exerciseCompletion.Completed++
				}
			}
		}
	}
	agg.exerciseCompletion.Rate = pkg.Percent(agg.exerciseCompletion.Completed, agg.exerciseCompletion.Total)
	return agg
}

func (a aggregate) completionRate() int {
	return pkg.Percent(a.completed, max(a.total, 1))
}
