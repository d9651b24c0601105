package ports

// Confirmer asks the user to approve a destructive operation. Command
// logic depends on this capability instead of a terminal so it stays
// testable; non-interactive runs inject an always-yes or always-no
// implementation.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// StaticConfirmer answers every prompt with a fixed value. Used for
// --yes flags and in tests.
type StaticConfirmer bool

func (c StaticConfirmer) Confirm(string) (bool, error) {
	return bool(c), nil
}
