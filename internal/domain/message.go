package domain

type EventKind int

const (
	EventText EventKind = iota + 1
	EventCommand
	EventContact
	EventLocation
	EventCallback
)

func (k EventKind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventCommand:
		return "command"
	case EventContact:
		return "contact"
	case EventLocation:
		return "location"
	case EventCallback:
		return "callback"
	}
	return "unknown"
}

// Event is one inbound chat message, independent of the transport that delivered it.
// Text holds the message text, the command name, or the callback data depending on Kind.
// ClientLanguage is the IETF tag reported by the user's client, if any.
type Event struct {
	ChatID         int64
	Kind           EventKind
	Text           string
	Phone          string
	Location       Coordinates
	ClientLanguage string
}

// Button is a quick-reply keyboard button; it may ask the client to share contact or location.
type Button struct {
	Text            string
	RequestContact  bool
	RequestLocation bool
}

type Keyboard struct {
	Rows    [][]Button
	OneTime bool
}

// InlineButton opens URL when set, otherwise sends Data back as a callback.
type InlineButton struct {
	Text string
	URL  string
	Data string
}

// Reply is one outbound message.
type Reply struct {
	ChatID         int64
	Text           string
	Keyboard       *Keyboard
	Inline         [][]InlineButton
	RemoveKeyboard bool
}
