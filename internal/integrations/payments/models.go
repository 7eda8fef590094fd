package payments

// Price цена продукта из платежного сервиса
type Price struct {
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
}

// ErrorResponse модель ошибки от платежного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
