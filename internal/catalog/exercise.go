package catalog

// Exercise is one entry of the read-only exercise catalog used for workout
// generation.
type Exercise struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	MainMuscleGroup  string  `json:"mainMuscleGroup"`
	PrimaryEquipment string  `json:"primaryEquipment"`
	GripStyle        *string `json:"gripStyle"`
}
