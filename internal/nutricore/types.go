package nutricore

// Types mirror the remote core API records. Numeric fields absent upstream
// simply decode to their zero value, so every consumer can assume complete,
// zero-filled inputs instead of re-checking each field.

// Profile holds the subject's basic body data.
type Profile struct {
	SubjectID        int     `json:"usuarioId"`
	CurrentWeightKg  float64 `json:"pesoKg"`
	BirthDate        string  `json:"fechaNacimiento"`
	ActivityLevelRef int     `json:"nivelActividadId"`
}

// IntakeGoals holds the subject's target values and daily intake goals.
type IntakeGoals struct {
	IdealWeightKg float64 `json:"pesoIdeal"`
	BMI           float64 `json:"imc"`
	DailyCalories float64 `json:"ingestaDiariaCalorias"`
	DailyProtein  float64 `json:"ingestaDiariaProteina"`
	DailyCarb     float64 `json:"ingestaDiariaCarbohidrato"`
	DailyFat      float64 `json:"ingestaDiariaGrasa"`
}

// ObjectiveAssignment is the join record linking a subject to an objective.
// The list endpoint returns them in insertion order; consumers pick the last
// one as the subject's current objective.
type ObjectiveAssignment struct {
	ID          int `json:"id"`
	SubjectID   int `json:"usuario_id"`
	ObjectiveID int `json:"objetivo_id"`
}

type Objective struct {
	ID          int    `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

// Appointment is immutable once fetched - it only ever gets regrouped for
// presentation, never mutated.
type Appointment struct {
	ID             int    `json:"id"`
	SubjectID      int    `json:"usuarioId"`
	PractitionerID int    `json:"nutricionistaId"`
	Date           string `json:"fecha"` // calendar date, YYYY-MM-DD
	Time           string `json:"hora"`  // time of day, HH:MM
	Status         string `json:"estado"`
}
