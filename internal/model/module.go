package model

// Module is one titled block of system-prompt text.
type Module struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Collapsed bool   `json:"collapsed"`
}

// ModuleEntry is the exported shape of a Module (identity is not carried).
type ModuleEntry struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Collapsed bool   `json:"collapsed"`
}

// Document is the import/export file format.
type Document struct {
	Version int           `json:"version"`
	Modules []ModuleEntry `json:"modules"`
}
