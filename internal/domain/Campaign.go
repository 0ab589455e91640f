package domain

type Campaign struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Objective string `json:"objective"`
	Name      string `json:"name"`
}
