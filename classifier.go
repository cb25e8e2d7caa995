package staffscout

// PageClass is the crawl decision taken for a fetched page.
type PageClass int

const (
	// Irrelevant pages are followed for links but not mined.
	Irrelevant PageClass = iota

	// StaffPage pages list people and are mined for contacts.
	StaffPage

	// DepartmentHub pages are institute or lab homepages worth exploring.
	DepartmentHub
)

// String returns the class name used in logs and metrics labels.
func (c PageClass) String() string {
	switch c {
	case StaffPage:
		return "staff"
	case DepartmentHub:
		return "hub"
	default:
		return "irrelevant"
	}
}

// PageClassifier labels fetched pages.
type PageClassifier interface {
	// Classify decides the page class from its URL, title and visible text.
	Classify(url, title, text string) PageClass
}
