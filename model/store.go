package model

type Store struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
}
