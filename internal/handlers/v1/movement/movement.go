package movement

// Transaction is the API response model for a committed transaction.
type Transaction struct {
	ID          string `json:"id" doc:"Transaction UUID"`
	AccountID   string `json:"accountID" doc:"Opaque account identifier"`
	Amount      string `json:"amount" doc:"Signed decimal amount, negative for funds leaving the account"`
	Kind        string `json:"kind" doc:"deposit, withdrawal or transfer"`
	Description string `json:"description" doc:"Free-text description"`
	PostedAt    string `json:"postedAt" doc:"Store-assigned posting timestamp"`
}
