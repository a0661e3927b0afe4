package workouts

import (
	"slices"
	"time"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var Difficulties = []string{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
}

func IsValidDifficulty(difficulty string) bool {
	return slices.Contains(Difficulties, difficulty)
}

const WorkoutTypeStrength = "strength"

type ExerciseSet struct {
	ID         string  `json:"id"`
	ExerciseID string  `json:"exerciseId"`
	UserID     string  `json:"userId"`
	SetNumber  int     `json:"setNumber"`
	Weight     float64 `json:"weight"`
	Reps       int     `json:"reps"`
	Completed  bool    `json:"completed"`
}

type Exercise struct {
	ID             string        `json:"id"`
	DailyWorkoutID string        `json:"dailyWorkoutId"`
	Name           string        `json:"name"`
	TargetSets     int           `json:"targetSets"`
	TargetReps     string        `json:"targetReps"`
	Notes          string        `json:"notes"`
	Sets           []ExerciseSet `json:"sets"`
}

// Workout is a daily workout of one user. Favorite workouts double as
// templates that can be cloned into the current week.
type Workout struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	WorkoutType string     `json:"workoutType"`
	Duration    int        `json:"duration"`
	Difficulty  string     `json:"difficulty"`
	Date        time.Time  `json:"date"`
	Completed   bool       `json:"completed"`
	IsFavorite  bool       `json:"isFavorite"`
	IsShared    bool       `json:"isShared"`
	SharedWith  []string   `json:"sharedWith"`
	CreatedAt   time.Time  `json:"createdAt"`
	Exercises   []Exercise `json:"exercises"`
}

type ExerciseCompletion struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Rate      int `json:"rate"`
}

type PartnerStats struct {
	Name              string `json:"name"`
	CompletedWorkouts int    `json:"completedWorkouts"`
	CompletionRate    int    `json:"completionRate"`
}

type Stats struct {
	WeeklyWorkouts     int                `json:"weeklyWorkouts"`
	CompletedWorkouts  int                `json:"completedWorkouts"`
	CompletionRate     int                `json:"completionRate"`
	ExerciseCompletion ExerciseCompletion `json:"exerciseCompletion"`
	Partner            *PartnerStats      `json:"partner"`
}

type BodyPartRequest struct {
	BodyPart string `json:"bodyPart"`
}

type Sharing struct {
	IsShared   bool     `json:"isShared"`
	SharedWith []string `json:"sharedWith"`
}

type GenerateParams struct {
	WorkoutType string            `json:"workoutType"`
	Difficulty  string            `json:"difficulty"`
	Exercises   []BodyPartRequest `json:"exercises"`
	Sharing     *Sharing          `json:"sharing,omitempty"`
}
