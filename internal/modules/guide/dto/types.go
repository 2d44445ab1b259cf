package dto

type ExportInput struct {
	// Tradition defaults to the profile's tradition and region when empty.
	Tradition string
	Region    string
	HTML      bool
}

type ExportOutput struct {
	Title        string
	Slug         string
	MarkdownPath string
	HTMLPath     string
	Steps        int
	TotalMinutes int
}
