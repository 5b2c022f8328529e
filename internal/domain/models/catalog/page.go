package catalog

// ResultPage is one page of work summaries plus pagination metadata.
type ResultPage struct {
	// Items is the ordered page slice. Never nil; empty for zero matches.
	Items []WorkSummary `json:"items"`

	// Total is the number of matches before pagination.
	Total int `json:"total"`

	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	// HasMore indicates matches beyond this page.
	HasMore bool `json:"has_more"`
}

// NewResultPage builds a page with the HasMore flag computed.
func NewResultPage(items []WorkSummary, total, page, pageSize int) ResultPage {
	if items == nil {
		items = []WorkSummary{}
	}
	return ResultPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  (page+1)*pageSize < total,
	}
}
