package models

type DigestItem struct {
	Competitor  string
	Title       string
	Category    string
	ImpactScore int
	URL         string
}

type Email struct {
	To      string
	Subject string
	Body    string
}
