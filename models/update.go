package models

import "github.com/kova98/rivalwatch/data"

type PassResponse struct {
	NewUpdates []data.Update `json:"newUpdates"`
	Total      int           `json:"total"`
	HighImpact int           `json:"highImpact"`
}

func NewPassResponse(updates []data.Update) PassResponse {
	res := PassResponse{NewUpdates: updates, Total: len(updates)}
	if res.NewUpdates == nil {
		res.NewUpdates = []data.Update{}
	}
	for _, u := range updates {
		if u.IsHighImpact {
			res.HighImpact++
		}
	}
	return res
}

type TrendsResponse struct {
	WindowDays int          `json:"windowDays,omitempty"`
	Trends     []data.Trend `json:"trends"`
}
