package portal

// DocumentCategory classifies an administrative document.
type DocumentCategory string

const (
	CategoryLegal     DocumentCategory = "legal"
	CategoryFinancial DocumentCategory = "financial"
)

// Document is an entry in the admin document archive.
type Document struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category DocumentCategory `json:"category"`
	Date     string           `json:"date"`
	Size     string           `json:"size"`
	URL      string           `json:"url"`
}
