package mailer

// SendRequest тело запроса к почтовому API
type SendRequest struct {
	From     string                 `json:"from"`
	To       string                 `json:"to"`
	Template string                 `json:"template"`
	Data     map[string]interface{} `json:"data"`
}

// ErrorResponse модель ошибки от почтового API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
