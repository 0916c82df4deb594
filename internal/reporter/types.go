package reporter

// Case is one published ruling's entry in the search index, as emitted by the
// publishing pipeline into _data/search.json. All fields except Path may be
// absent in the source; absent strings decode to "" and absent numbers to 0.
type Case struct {
	Path         string `json:"path"`
	Title        string `json:"title,omitempty"`
	ReporterCite string `json:"reporter_cite,omitempty"`
	SlipCite     string `json:"slip_cite,omitempty"`
	Judge        string `json:"judge,omitempty"`
	Docket       string `json:"docket,omitempty"`
	DecisionDate string `json:"decision_date,omitempty"`
	DateISO      string `json:"date_iso,omitempty"`
	Volume       int    `json:"volume,omitempty"`
	PageStart    int    `json:"page_start,omitempty"`
	PageEnd      int    `json:"page_end,omitempty"`
}
