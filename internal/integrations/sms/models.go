package sms

// MessageRequest тело запроса к SMS-шлюзу
type MessageRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// MessageResponse ответ шлюза
type MessageResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
