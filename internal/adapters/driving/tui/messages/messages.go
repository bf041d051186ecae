// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewHeirs is the heir authorization report.
	ViewHeirs
	// ViewDocuments lists documents on the timeline.
	ViewDocuments
	// ViewDocDetails shows the fields of one document.
	ViewDocDetails
	// ViewIngest extracts documents from files.
	ViewIngest
	// ViewSettings is the settings view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewHeirs:
		return "heirs"
	case ViewDocuments:
		return "documents"
	case ViewDocDetails:
		return "doc_details"
	case ViewIngest:
		return "ingest"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ReportLoaded carries a freshly computed analysis report.
type ReportLoaded struct {
	Report *domain.AnalysisReport
	Err    error
}

// DocumentsLoaded carries the documents in timeline order.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentSelected signals a document was selected for the details view.
type DocumentSelected struct {
	Document domain.Document
}

// DocumentRemoved signals a document was removed from the working set.
type DocumentRemoved struct {
	DocumentID string
	Err        error
}

// IngestProgressed reports one file of a running ingest.
type IngestProgressed struct {
	Progress driving.IngestProgress
}

// IngestFinished signals an ingest batch completed.
type IngestFinished struct {
	Report *driving.IngestReport
	Err    error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
