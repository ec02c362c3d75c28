package http

type Status string

const (
	// StatusOK is used for health-check responses.
	StatusOK Status = "OK"

	// StatusSuccess indicates an operation completed successfully.
	StatusSuccess Status = "success"

	// StatusError indicates an operation failed.
	StatusError Status = "error"
)

// Response represents the standard API response format.
type Response struct {
	Status Status `json:"status,omitempty"`
	Value  string `json:"value,omitempty"`
	State  string `json:"state,omitempty"`
	Error  string `json:"error,omitempty"`
}

// TableSummary describes one sealed table.
type TableSummary struct {
	ID      uint32 `json:"id"`
	Entries int    `json:"entries"`
}

// EntryView renders one table entry. Key is the parsed internal key when it
// decodes, otherwise the raw bytes.
type EntryView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

type TablesResponse struct {
	Status Status         `json:"status"`
	Tables []TableSummary `json:"tables"`
}

type TableResponse struct {
	Status  Status      `json:"status"`
	ID      uint32      `json:"id"`
	Entries []EntryView `json:"entries"`
}

func NewOKResponse() Response {
	return Response{Status: StatusOK}
}

func NewValueResponse(value string) Response {
	return Response{Status: StatusSuccess, Value: value, State: "found"}
}

func NewErrorResponse(err string) Response {
	return Response{Status: StatusError, Error: err}
}
