package model

type SongResponse struct {
	Id     string `json:"id"`
	Tracks int    `json:"tracks"`
	Bytes  int    `json:"bytes"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
