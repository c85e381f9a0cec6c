package dto

type ImportRequest struct {
	CSV string `json:"csv"`
}

// ValidateResponse is the dry run of an import: what would be written and
// which rows would be rejected.
type ValidateResponse struct {
	Valid    int      `json:"valid"`
	Messages []string `json:"messages"`
}
