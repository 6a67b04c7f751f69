package repositories

// Document is the input to the document renderer: a title block, a summary
// section and the full transcript section.
type Document struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Transcript string `json:"transcript"`
}

// DocumentRenderer composes a paginated document from a summary and a full
// transcript. Any internal rendering error yields no bytes; the caller
// reports a rendering failure instead of delivering an attachment.
type DocumentRenderer interface {
	Render(doc Document) ([]byte, error)
}
