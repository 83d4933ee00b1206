// model/book.go
package model

// Book is keyed by (store_id, book_id): the same title may be listed by
// several stores at different prices and stock levels.
type Book struct {
	StoreID    string `json:"store_id"`
	BookID     string `json:"book_id"`
	StockLevel int64  `json:"stock_level"`
	Price      int64  `json:"price"` // minor units per copy

	Title         string `json:"title"`
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
