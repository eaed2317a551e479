package domain

// Transaction is a free-standing tracking record for an external
// blockchain transaction, keyed by its hash.
type Transaction struct {
	TxHash string `json:"txHash"`
	Type   string `json:"type"`
	Status string `json:"status"`
}
