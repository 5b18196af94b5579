package http

// Method is one of the HTTP verbs a Request can be configured with.
// The zero value means no verb has been selected yet.
type Method uint8

const (
	methodUnset Method = iota
	MethodGet
	MethodPost
	MethodPut
	MethodDelete
)

// String returns the wire name of the verb, or an empty string when unset.
func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodDelete:
		return "DELETE"
	default:
		return ""
	}
}

// IsSet reports whether a verb has been selected.
func (m Method) IsSet() bool {
	return m != methodUnset && m.String() != ""
}
