package domain

// State tags the step a participant session is waiting on.
type State string

const (
	StateSelectLanguage  State = "select_language"
	StateEnterName       State = "enter_name"
	StateEnterSurname    State = "enter_surname"
	StateEnterBirthDay   State = "enter_birth_day"
	StateEnterBirthMonth State = "enter_birth_month"
	StateEnterBirthYear  State = "enter_birth_year"
	StateEnterPhone      State = "enter_phone"
	StateAwaitStart      State = "await_start"
	StateAwaitFinish     State = "await_finish"
	StateComplete        State = "complete"
)

// States is the full step sequence in order.
var States = []State{
	StateSelectLanguage,
	StateEnterName,
	StateEnterSurname,
	StateEnterBirthDay,
	StateEnterBirthMonth,
	StateEnterBirthYear,
	StateEnterPhone,
	StateAwaitStart,
	StateAwaitFinish,
	StateComplete,
}

// Before reports whether s comes strictly before other in the sequence.
func (s State) Before(other State) bool {
	return s.index() < other.index()
}

func (s State) index() int {
	for i, st := range States {
		if st == s {
			return i
		}
	}
	return -1
}
