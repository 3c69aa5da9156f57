package driven

// Prompter asks the user a yes/no question and blocks until an
// explicit answer is given. The publish step is the only caller.
type Prompter interface {
	// Confirm returns true only on an explicit affirmative answer.
	Confirm(question string) (bool, error)
}
