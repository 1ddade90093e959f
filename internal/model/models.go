package model

// All lists every persisted model in dependency order, for migrations.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Session{},
		&Society{},
		&SocietyMember{},
		&Application{},
		&Event{},
		&EventAttending{},
		&EventAttended{},
		&AttendanceForm{},
		&ResetCode{},
	}
}
