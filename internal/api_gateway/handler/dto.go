package handler

// SubmitTransactionRequest is one textual transaction record, as in the CSV input
type SubmitTransactionRequest struct {
	Type   string `json:"type" binding:"required"`
	Client string `json:"client" binding:"required"`
	Tx     string `json:"tx" binding:"required"`
	Amount string `json:"amount,omitempty"`
}

// SubmitTransactionResponse acknowledges a queued transaction
type SubmitTransactionResponse struct {
	Type   string `json:"type"`
	Client uint16 `json:"client"`
	Tx     uint32 `json:"tx"`
	Amount string `json:"amount,omitempty"`
	Status string `json:"status"`
}

// AccountResponse represents an exported account snapshot in API responses
type AccountResponse struct {
	Client     uint16 `json:"client"`
	Available  string `json:"available"`
	Held       string `json:"held"`
	Total      string `json:"total"`
	Locked     bool   `json:"locked"`
	RunID      string `json:"run_id"`
	ExportedAt string `json:"exported_at"`
}

// OutcomeResponse represents one audited ledger outcome in API responses
type OutcomeResponse struct {
	RunID       string `json:"run_id"`
	Type        string `json:"type"`
	Client      uint16 `json:"client"`
	Tx          uint32 `json:"tx"`
	Amount      string `json:"amount,omitempty"`
	Applied     bool   `json:"applied"`
	Reason      string `json:"reason,omitempty"`
	ProcessedAt string `json:"processed_at"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}
