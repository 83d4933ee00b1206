package searchsvc

import (
	"context"
	"strconv"

	"bookmart/apperr"
	"bookmart/model"
	bookrepo "bookmart/repository/book"
)

// queryColumns whitelists the catalog fields a query may filter on and
// whether the value is numeric. Anything else is an invalid query.
var queryColumns = map[string]bool{
	"store_id":       false,
	"book_id":        false,
	"title":          false,
	"author":         false,
	"publisher":      false,
	"original_title": false,
	"translator":     false,
	"pub_year":       false,
	"pages":          true,
	"price":          true,
	"binding":        false,
	"isbn":           false,
	"currency_unit":  false,
	"tags":           false,
	"pictures":       false,
	"author_intro":   false,
	"book_intro":     false,
	"content":        false,
}

const keywordParam = "title_keyword"

type Service interface {
	// QueryBooks filters the catalog by exact field matches, optionally
	// with a title substring via the title_keyword parameter. Combining
	// title and title_keyword, or filtering on an unknown field, is
	// rejected.
	QueryBooks(ctx context.Context, params map[string]string) ([]model.Book, error)
}

type service struct{ br bookrepo.Repo }

func New(br bookrepo.Repo) Service { return &service{br: br} }

func (s *service) QueryBooks(ctx context.Context, params map[string]string) ([]model.Book, error) {
	keyword := ""
	equals := make(map[string]any, len(params))
	for k, v := range params {
		if k == keywordParam {
			keyword = v
			continue
		}
		numeric, ok := queryColumns[k]
		if !ok {
			return nil, apperr.InvalidQuery()
		}
		if numeric {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, apperr.InvalidQuery()
			}
			equals[k] = n
		} else {
			equals[k] = v
		}
	}
	if keyword != "" {
		if _, hasTitle := equals["title"]; hasTitle {
			return nil, apperr.InvalidQuery()
		}
	}

	books, err := s.br.Search(ctx, equals, keyword)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return books, nil
}
