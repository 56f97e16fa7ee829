package domain

type Customer struct {
	ID      uint   `json:"id"`
	NIK     string `json:"nik"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}
