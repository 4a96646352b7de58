package types

// Gender is the self-reported gender of a user
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is a known gender
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// FitnessLevel drives the volume assigned to each exercise
type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
)

// Valid reports whether l is a known fitness level
func (l FitnessLevel) Valid() bool {
	switch l {
	case FitnessBeginner, FitnessIntermediate, FitnessAdvanced:
		return true
	}
	return false
}

// UserProfile is the part of a user record the workout pipeline reads
type UserProfile struct {
	Name              string       `json:"name"`
	Age               int          `json:"age"`
	Gender            Gender       `json:"gender"`
	WeightKg          float64      `json:"weight_kg"`
	HeightCm          float64      `json:"height_cm"`
	FitnessLevel      FitnessLevel `json:"fitness_level"`
	Goals             []string     `json:"goals"`
	MedicalConditions []string     `json:"medical_conditions"`
}

// BMI returns the body mass index rounded to one decimal place
func (p UserProfile) BMI() float64 {
	if p.HeightCm <= 0 {
		return 0
	}
	m := p.HeightCm / 100
	bmi := p.WeightKg / (m * m)
	return float64(int(bmi*10+0.5)) / 10
}
