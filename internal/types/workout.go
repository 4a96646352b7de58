package types

// WorkoutType is the closed set of workout tags a user can request
type WorkoutType string

const (
	WorkoutCardio     WorkoutType = "cardio"
	WorkoutUpperBody  WorkoutType = "upper_body"
	WorkoutLowerBody  WorkoutType = "lower_body"
	WorkoutFullBody   WorkoutType = "full_body"
	WorkoutArms       WorkoutType = "arms"
	WorkoutLegs       WorkoutType = "legs"
	WorkoutChest      WorkoutType = "chest"
	WorkoutBack       WorkoutType = "back"
	WorkoutShoulders  WorkoutType = "shoulders"
	WorkoutAbs        WorkoutType = "abs"
	WorkoutStretching WorkoutType = "stretching"
)

// WorkoutTypeInfo describes a workout type for clients
type WorkoutTypeInfo struct {
	Value       WorkoutType `json:"value"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
}

// WorkoutTypes lists every supported tag in display order
var WorkoutTypes = []WorkoutTypeInfo{
	{WorkoutCardio, "Cardio", "Heart-pumping cardiovascular exercises"},
	{WorkoutUpperBody, "Upper Body", "Chest, back, shoulders, and arms"},
	{WorkoutLowerBody, "Lower Body", "Legs, glutes, and calves"},
	{WorkoutFullBody, "Full Body", "Complete workout hitting all muscle groups"},
	{WorkoutArms, "Arms", "Biceps and triceps focused"},
	{WorkoutLegs, "Legs", "Quads, hamstrings, and calves"},
	{WorkoutChest, "Chest", "Pectoral muscle development"},
	{WorkoutBack, "Back", "Lat and upper back training"},
	{WorkoutShoulders, "Shoulders", "Deltoid strengthening"},
	{WorkoutAbs, "Abs/Core", "Core strength and stability"},
	{WorkoutStretching, "Stretching", "Flexibility and mobility"},
}

// Valid reports whether t is one of the supported tags
func (t WorkoutType) Valid() bool {
	for _, info := range WorkoutTypes {
		if info.Value == t {
			return true
		}
	}
	return false
}

// CandidateExercise is a catalog exercise offered to the plan synthesizer
type CandidateExercise struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Muscles     []string `json:"muscles"`
	Equipment   []string `json:"equipment"`
}

// PlanExercise is one entry of a workout plan
type PlanExercise struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Sets         int      `json:"sets"`
	Reps         int      `json:"reps"`
	RestSeconds  int      `json:"rest_seconds"`
	CoachingCues []string `json:"coaching_cues"`
	WhyChosen    string   `json:"why_chosen"`
	Images       []string `json:"images"`
	Videos       []string `json:"videos"`
	Muscles      []string `json:"muscles"`
	Equipment    []string `json:"equipment"`
	Description  string   `json:"description"`
}

// PlanSource records which path produced a plan
type PlanSource string

const (
	PlanSourceAI       PlanSource = "ai"
	PlanSourceFallback PlanSource = "fallback"
)

// WorkoutPlan is the output of plan synthesis
type WorkoutPlan struct {
	Exercises         []PlanExercise `json:"exercises"`
	EstimatedCalories float64        `json:"estimated_calories"`
	WorkoutNotes      string         `json:"workout_notes"`
	Source            PlanSource     `json:"source"`
}

// FeedbackRecord is what a user reports after finishing a workout
type FeedbackRecord struct {
	Completed        bool    `json:"completed"`
	DifficultyRating int     `json:"difficulty_rating"`
	Enjoyed          bool    `json:"enjoyed"`
	Notes            *string `json:"notes,omitempty"`
}

// PlanResult is the outcome of validating a model response: either a plan or
// the reason it was rejected
type PlanResult struct {
	Plan   *WorkoutPlan
	Reason string
}

// Valid wraps an accepted plan
func Valid(plan WorkoutPlan) PlanResult {
	return PlanResult{Plan: &plan}
}

// Invalid wraps a rejection reason
func Invalid(reason string) PlanResult {
	return PlanResult{Reason: reason}
}

// OK reports whether the result holds a plan
func (r PlanResult) OK() bool {
	return r.Plan != nil
}
