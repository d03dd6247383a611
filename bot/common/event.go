package common

// EventKind tells what kind of update an Event carries
type EventKind int

const (
	EventCommand EventKind = iota
	EventCallback
	EventText
)

func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "command"
	case EventCallback:
		return "callback"
	case EventText:
		return "text"
	default:
		return "unknown"
	}
}

// Event is one inbound update, already stripped of platform types
type Event struct {
	Kind      EventKind
	UserID    int64
	ChatID    int64
	FirstName string
	Username  string
	Private   bool

	// MessageID is the message a callback button belongs to
	MessageID int
	// MessageText is the text of that message
	MessageText string
	CallbackID  string

	Command string
	Args    string
	Data    string
	Text    string
}
