package diag

// Kind defines the class of a diagnostic.
type Kind uint8

const (
	// KindError marks a problem in the input.
	KindError Kind = iota
	// KindWarning marks suspicious but accepted input.
	KindWarning
	// KindNote carries extra context.
	KindNote
	// KindHelp suggests a way forward.
	KindHelp
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindWarning:
		return "warning"
	case KindNote:
		return "note"
	case KindHelp:
		return "help"
	}
	return "unknown"
}
