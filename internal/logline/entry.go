package logline

// Normalized severity levels produced by the pattern cascade.
const (
	LevelTrace = "TRACE"
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
)

// Entry represents one logical log entry: a physical line plus any
// continuation lines folded into it.
type Entry struct {
	Source    string  `json:"source"`
	Path      string  `json:"path,omitempty"`
	Line      int     `json:"line"`
	Raw       string  `json:"raw"`
	Stderr    bool    `json:"stderr,omitempty"`
	Hash      string  `json:"hash"`
	Time      int64   `json:"ts"`
	SortIndex int     `json:"sort"`
	Fields    *Fields `json:"fields,omitempty"`
}

// Fields holds the structured pieces a grammar extracted from an entry.
// Timestamp is the textual form as written; Entry.Time carries the
// reconciled epoch value.
type Fields struct {
	Timestamp string   `json:"ts,omitempty"`
	Level     string   `json:"level,omitempty"`
	Logger    string   `json:"logger,omitempty"`
	Context   string   `json:"ctx,omitempty"`
	Message   string   `json:"msg"`
	Call      *APICall `json:"call,omitempty"`
}

// CallDirection distinguishes calls this process made from calls it served.
type CallDirection string

const (
	CallOutgoing CallDirection = "out"
	CallIncoming CallDirection = "in"
)

// CallPhase is the lifecycle stage an API-call log line describes.
type CallPhase string

const (
	PhaseRequest  CallPhase = "request"
	PhaseResponse CallPhase = "response"
	PhaseComplete CallPhase = "complete"
)

// APICall is the detail record extracted from request/response log idioms.
type APICall struct {
	Direction    CallDirection `json:"dir"`
	Phase        CallPhase     `json:"phase"`
	Method       string        `json:"method,omitempty"`
	Endpoint     string        `json:"url,omitempty"`
	Status       int           `json:"status,omitempty"`
	DurationMS   int64         `json:"ms,omitempty"`
	Headers      string        `json:"headers,omitempty"`
	RequestBody  string        `json:"req,omitempty"`
	ResponseBody string        `json:"resp,omitempty"`
}
