package todo

// Todo is a single task entry as stored in the dataset file.
type Todo struct {
	ID       string `json:"_id"`
	Owner    string `json:"owner"`
	Status   bool   `json:"status"`
	Body     string `json:"body"`
	Category string `json:"category"`
}
