package dto

type CreateResourceRequest struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	CostPerUnit   float64 `json:"cost_per_unit"`
	Milestone     string  `json:"milestone"`
	MilestoneDate string  `json:"milestone_date"`
	Supplier      string  `json:"supplier"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes"`
}

type CreateRiskRequest struct {
	Title      string `json:"title"`
	Likelihood string `json:"likelihood"`
	Impact     string `json:"impact"`
	Status     string `json:"status"`
	Mitigation string `json:"mitigation"`
	Owner      string `json:"owner"`
}

type UpdateRiskFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}
