package seller

type CreateStoreReq struct {
	StoreID string `json:"store_id" validate:"required"`
}

type AddBookReq struct {
	BookID     string `json:"book_id" validate:"required"`
	StockLevel int64  `json:"stock_level" validate:"gte=0"`
	Price      int64  `json:"price" validate:"required,gt=0"`

	Title         string `json:"title" validate:"required"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	OriginalTitle string `json:"original_title"`
	Translator    string `json:"translator"`
	PubYear       string `json:"pub_year"`
	Pages         int64  `json:"pages"`
	Binding       string `json:"binding"`
	ISBN          string `json:"isbn"`
	CurrencyUnit  string `json:"currency_unit"`
	Tags          string `json:"tags"`
	Pictures      string `json:"pictures"`
	AuthorIntro   string `json:"author_intro"`
	BookIntro     string `json:"book_intro"`
	Content       string `json:"content"`
}

type AddStockReq struct {
	AddStockLevel int64 `json:"add_stock_level" validate:"required,gt=0"`
}
