package domain

type Employee struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
