package tui

type mode int

const (
	modeList mode = iota
	modeCreate
	modeEdit
	modeSearch
	modeConfirmDelete
)

type op string

const (
	opLoad   op = "load"
	opPage   op = "page"
	opSearch op = "search"
	opCreate op = "create"
	opToggle op = "toggle"
	opEdit   op = "edit"
	opDelete op = "delete"
)

// stateChangedMsg is sent whenever the coordinator's state changes.
type stateChangedMsg struct{}

// opDoneMsg reports the end of one coordinator operation.
type opDoneMsg struct {
	op  op
	err error
}

// form field focus
const (
	fieldTitle = iota
	fieldDescription
)
