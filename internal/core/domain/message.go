package domain

// Severity classifies a banner message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Message is a banner payload. It exists only for the duration of one publish
// call; the bus holds no buffer and late subscribers never see it.
type Message struct {
	StatusCode int      `json:"status_code"`
	Text       string   `json:"text"`
	Severity   Severity `json:"severity"`
}
