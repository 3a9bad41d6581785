package transaction

import "time"

// CreateTransactionDTO carries the request payload for creating a
// transaction. Beyond the storage schema's constraints nothing is validated
// here: type and category are persisted as sent, and the category name is not
// checked against the caller's category set.
type CreateTransactionDTO struct {
	Type     string     `json:"type"`
	Amount   float64    `json:"amount"`
	Category string     `json:"category"`
	Note     string     `json:"note,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

// UpdateTransactionDTO uses pointer fields: only supplied fields are replaced.
type UpdateTransactionDTO struct {
	Type     *string    `json:"type,omitempty"`
	Amount   *float64   `json:"amount,omitempty"`
	Category *string    `json:"category,omitempty"`
	Note     *string    `json:"note,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

// ApplyTo overwrites the supplied fields on t.
func (dto UpdateTransactionDTO) ApplyTo(t *Transaction) {
	if dto.Type != nil {
		t.Type = *dto.Type
	}
	if dto.Amount != nil {
		t.Amount = *dto.Amount
	}
	if dto.Category != nil {
		t.Category = *dto.Category
	}
	if dto.Note != nil {
		t.Note = *dto.Note
	}
	if dto.Date != nil {
		t.Date = *dto.Date
	}
}

type TransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type TransactionResponse struct {
	Message     string       `json:"message"`
	Transaction *Transaction `json:"transaction"`
}
