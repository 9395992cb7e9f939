package models

// StateVariable is one flattened (name, value) attribute pair. Values travel
// as decimal strings on the wire.
type StateVariable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ObjectiveFlag is one named objective bit inside an ObjectiveProgress entry.
type ObjectiveFlag struct {
	Name string `json:"name"`
	Done bool   `json:"done"`
}

// ObjectiveProgress carries the objective flags for a single mission (chapter).
type ObjectiveProgress struct {
	MissionID  int64           `json:"missionId"`
	Objectives []ObjectiveFlag `json:"objectives"`
}

// Progress is the persisted representation of a playthrough. Only the current
// chapter's objective record is saved; attribute totals and the chapter index
// embed everything else worth keeping.
type Progress struct {
	Chapter             int64               `json:"chapter"`
	StateVariables      []StateVariable     `json:"stateVariables"`
	CompletedObjectives []ObjectiveProgress `json:"completedObjectives"`
	// CharacterID is the encoded catalog index of the selected fighter.
	// Nil means the save predates fighter selection and must not be loaded.
	CharacterID *int64 `json:"characterId,omitempty"`
}

// UserProfile is the identity-linked profile record.
type UserProfile struct {
	Name        string `json:"name"`
	CharacterID int64  `json:"characterId"`
}
