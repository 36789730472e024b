package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/soundxcape/internal/ai"
	"github.com/rpggio/soundxcape/internal/cell"
	"github.com/rpggio/soundxcape/internal/domain/activity"
	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/rpggio/soundxcape/internal/domain/recording"
	"github.com/rpggio/soundxcape/internal/domain/reminder"
	"github.com/rpggio/soundxcape/internal/geocode"
	"github.com/rpggio/soundxcape/internal/notebook"
	"github.com/rpggio/soundxcape/internal/notice"
)

// Compile-time contract assertions.
var (
	_ NotebookService = (*notebook.Store)(nil)
	_ ActivityService = (*activity.Service)(nil)
	_ Geocoder        = (*geocode.Client)(nil)
	_ Assistant       = (*ai.Client)(nil)
	_ NoticeSource    = (*notice.Inbox)(nil)
)

// NotebookService defines the notebook operations needed by MCP.
type NotebookService interface {
	Projects() []project.Project
	Project(id string) (project.Project, error)
	ProjectSummaries() []project.ProjectSummary
	AddProject(ctx context.Context, p project.Project) (project.Project, cell.Status)
	UpdateProject(ctx context.Context, p project.Project) (cell.Status, error)
	DeleteProject(ctx context.Context, id string) (int, cell.Status, error)
	SetProjectCoordinates(ctx context.Context, id string, lat, lon float64) (project.Project, cell.Status, error)

	Recordings() []recording.Recording
	RecordingsForProject(projectID string) []recording.Recording
	Recording(id string) (recording.Recording, error)
	AddRecording(ctx context.Context, r recording.Recording) (recording.Recording, cell.Status)
	UpdateRecording(ctx context.Context, r recording.Recording) (cell.Status, error)
	DeleteRecording(ctx context.Context, id string) (cell.Status, error)
	AddTags(ctx context.Context, id string, tags ...string) (recording.Recording, cell.Status, error)
	SetTranscription(ctx context.Context, recordingID, voiceNoteID, text string) (recording.Recording, cell.Status, error)

	Reminders() []reminder.Reminder
	AddReminder(ctx context.Context, r reminder.Reminder) (reminder.Reminder, cell.Status)
	UpdateReminder(ctx context.Context, r reminder.Reminder) (cell.Status, error)
	DeleteReminder(ctx context.Context, id string) (cell.Status, error)

	Settings() notebook.Settings
	ToggleDarkMode(ctx context.Context) (bool, cell.Status)
	MarkWelcomeVisited(ctx context.Context) cell.Status

	Gallery(filter notebook.GalleryFilter) []notebook.MediaItem
	MapMarkers() []notebook.Marker
	StorageUsage(ctx context.Context) (notebook.Usage, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Geocoder resolves place names to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, place string) (geocode.Coordinates, error)
}

// Assistant provides the generative features.
type Assistant interface {
	Available() bool
	SuggestTags(ctx context.Context, title, description string) ([]string, error)
	SummarizeVoiceNote(ctx context.Context, title string, durationSeconds float64) (string, error)
	RecordingIdeas(ctx context.Context, p project.Project) ([]string, error)
	SearchSuggestions(ctx context.Context, term string, scope ai.SearchScope) ([]string, error)
}

// NoticeSource hands out pending notices once.
type NoticeSource interface {
	Drain() []notice.Notice
}

// Config contains server configuration. Notebook is required; tools backed by
// a nil Activity or Geocoder are not registered.
type Config struct {
	Notebook  NotebookService
	Activity  ActivityService
	Geocoder  Geocoder
	Assistant Assistant
	Notices   NoticeSource
	Logger    *slog.Logger
	Version   string
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "soundxcape",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg)

	return server
}
