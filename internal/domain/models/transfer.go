package models

// TransferRequest is the already-parsed input of a transfer.
type TransferRequest struct {
	SenderID   int64   `json:"senderId"`
	ReceiverID int64   `json:"receiverId"`
	Amount     float64 `json:"amount"`
}

type TransferResult struct {
	Success          bool    `json:"success"`
	NewSenderBalance float64 `json:"newSenderBalance"`
	Message          string  `json:"message"`
}
