package project

// CreatedEvent fires after a project row and its reference number are
// committed.
type CreatedEvent struct {
	Level  Level
	Result Project
}

// UpdatedEvent fires after a wizard level save is committed against an
// existing project.
type UpdatedEvent struct {
	Level  Level
	Result Project
}
