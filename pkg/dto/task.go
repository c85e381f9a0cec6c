package dto

type CreateTaskRequest struct {
	Title      string `json:"title"`
	Week       string `json:"week"`
	Section    string `json:"section"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	IsCritical bool   `json:"is_critical"`
	Notes      string `json:"notes"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateNoteRequest struct {
	Notes string `json:"notes"`
}
