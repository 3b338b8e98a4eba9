package status

// Kind classifies a status event. It picks both the log level and the console color.
type Kind int

const (
	Info Kind = iota
	Success
	Error
	Warning
	Progress
	Skip
	Start
	Finish
	Debug
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Progress:
		return "progress"
	case Skip:
		return "skip"
	case Start:
		return "start"
	case Finish:
		return "finish"
	case Debug:
		return "debug"
	default:
		return "info"
	}
}

// Event is one recorded status line.
type Event struct {
	Kind    Kind
	Message string
	Percent int
}

// Percent returns int(completed*100/total), 0 when total is 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return completed * 100 / total
}
