package order

type LineReq struct {
	BookID string `json:"book_id" validate:"required"`
	Count  int64  `json:"count" validate:"required,gt=0"`
}

type CreateOrderReq struct {
	StoreID string    `json:"store_id" validate:"required"`
	Books   []LineReq `json:"books" validate:"required,min=1,dive"`
}

type PasswordReq struct {
	Password string `json:"password" validate:"required"`
}
