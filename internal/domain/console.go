package domain

type ConsoleStatus string

const (
	ConsoleFree  ConsoleStatus = "free"
	ConsoleInUse ConsoleStatus = "in_use"
)

func (s ConsoleStatus) Valid() bool {
	switch s {
	case ConsoleFree, ConsoleInUse:
		return true
	default:
		return false
	}
}

// Console is a catalog entry for one rentable unit. The status flag is
// advisory display state toggled by callers alongside Start/Stop.
type Console struct {
	ID     ConsoleID
	Name   string
	Status ConsoleStatus
}
