package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/soundxcape/internal/ai"
	"github.com/rpggio/soundxcape/internal/cell"
	"github.com/rpggio/soundxcape/internal/domain/activity"
	"github.com/rpggio/soundxcape/internal/domain/project"
	"github.com/rpggio/soundxcape/internal/domain/recording"
	"github.com/rpggio/soundxcape/internal/domain/reminder"
	"github.com/rpggio/soundxcape/internal/notebook"
	"github.com/rpggio/soundxcape/internal/notice"
)

type toolset struct {
	notebook  NotebookService
	activity  ActivityService
	geocoder  Geocoder
	assistant Assistant
	notices   NoticeSource
	now       func() time.Time
}

// envelope is the JSON body of every tool result. Notices holds what the
// notebook raised while serving this call.
type envelope struct {
	Result  any             `json:"result"`
	Notices []notice.Notice `json:"notices,omitempty"`
}

func registerTools(server *sdkmcp.Server, cfg Config) {
	t := &toolset{
		notebook:  cfg.Notebook,
		activity:  cfg.Activity,
		geocoder:  cfg.Geocoder,
		assistant: cfg.Assistant,
		notices:   cfg.Notices,
		now:       time.Now,
	}

	// Projects
	addTool(server, &sdkmcp.Tool{Name: "list_projects", Description: "List all projects with their recording counts"}, t.listProjects)
	addTool(server, &sdkmcp.Tool{Name: "get_project", Description: "Get a project and its recordings"}, t.getProject)
	addTool(server, &sdkmcp.Tool{Name: "create_project", Description: "Create a project for a recording expedition"}, t.createProject)
	addTool(server, &sdkmcp.Tool{Name: "update_project", Description: "Update fields of a project; omitted fields are kept"}, t.updateProject)
	addTool(server, &sdkmcp.Tool{Name: "delete_project", Description: "Delete a project and all of its recordings"}, t.deleteProject)

	// Recordings
	addTool(server, &sdkmcp.Tool{Name: "list_recordings", Description: "List recordings, optionally only those of one project"}, t.listRecordings)
	addTool(server, &sdkmcp.Tool{Name: "get_recording", Description: "Get a recording with its photos and voice notes"}, t.getRecording)
	addTool(server, &sdkmcp.Tool{Name: "create_recording", Description: "Create a recording in a project, with optional photos and voice notes"}, t.createRecording)
	addTool(server, &sdkmcp.Tool{Name: "update_recording", Description: "Update a recording; lists given replace the stored ones"}, t.updateRecording)
	addTool(server, &sdkmcp.Tool{Name: "delete_recording", Description: "Delete a recording"}, t.deleteRecording)
	addTool(server, &sdkmcp.Tool{Name: "add_tags", Description: "Add tags to a recording, skipping ones it already has"}, t.addTags)

	// Reminders
	addTool(server, &sdkmcp.Tool{Name: "list_reminders", Description: "List reminders"}, t.listReminders)
	addTool(server, &sdkmcp.Tool{Name: "add_reminder", Description: "Add a reminder"}, t.addReminder)
	addTool(server, &sdkmcp.Tool{Name: "update_reminder", Description: "Update a reminder; omitted fields are kept"}, t.updateReminder)
	addTool(server, &sdkmcp.Tool{Name: "delete_reminder", Description: "Delete a reminder"}, t.deleteReminder)

	// Settings
	addTool(server, &sdkmcp.Tool{Name: "get_settings", Description: "Get the dark-mode and onboarding flags"}, t.getSettings)
	addTool(server, &sdkmcp.Tool{Name: "toggle_dark_mode", Description: "Flip dark mode"}, t.toggleDarkMode)
	addTool(server, &sdkmcp.Tool{Name: "mark_welcome_visited", Description: "Record that onboarding has been seen"}, t.markWelcomeVisited)

	// Views
	addTool(server, &sdkmcp.Tool{Name: "media_gallery", Description: "List photos and voice notes across recordings, newest first"}, t.mediaGallery)
	addTool(server, &sdkmcp.Tool{Name: "map_markers", Description: "List projects that have coordinates"}, t.mapMarkers)
	if t.geocoder != nil {
		addTool(server, &sdkmcp.Tool{Name: "geocode_project", Description: "Look up coordinates for a project's location and store them"}, t.geocodeProject)
	}

	// AI
	addTool(server, &sdkmcp.Tool{Name: "suggest_tags", Description: "Suggest up to five tags for a recording"}, t.suggestTags)
	addTool(server, &sdkmcp.Tool{Name: "summarize_voice_note", Description: "Write a short summary of a voice note and store it as its transcription"}, t.summarizeVoiceNote)
	addTool(server, &sdkmcp.Tool{Name: "recording_ideas", Description: "Suggest three recording ideas for a project"}, t.recordingIdeas)
	addTool(server, &sdkmcp.Tool{Name: "search_suggestions", Description: "Suggest search completions for the app or the map"}, t.searchSuggestions)

	// Activity and notices
	if t.activity != nil {
		addTool(server, &sdkmcp.Tool{Name: "get_recent_activity", Description: "List recent notebook changes, newest first"}, t.getRecentActivity)
	}
	addTool(server, &sdkmcp.Tool{Name: "list_notices", Description: "Return and clear notices raised outside any tool call, such as at startup"}, t.listNotices)
	addTool(server, &sdkmcp.Tool{Name: "get_storage_usage", Description: "Report the bytes stored, the storage quota and the stored keys"}, t.getStorageUsage)
}

// addTool registers h with a notice collector installed on every call's
// context, so a call's notices are returned to its own caller.
func addTool[In any](server *sdkmcp.Server, tool *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, any]) {
	sdkmcp.AddTool(server, tool, func(ctx context.Context, req *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		ctx, _ = notice.WithCollector(ctx)
		return h(ctx, req, in)
	})
}

func (t *toolset) respond(ctx context.Context, v any) (*sdkmcp.CallToolResult, any, error) {
	return t.encode(v, notice.Collected(ctx))
}

func (t *toolset) encode(v any, notices []notice.Notice) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(envelope{Result: v, Notices: notices})
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	content := []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}}
	for _, n := range notices {
		content = append(content, &sdkmcp.TextContent{Text: n.Title + "\n\n" + n.Message})
	}
	return &sdkmcp.CallToolResult{Content: content}, nil, nil
}

func fail(err error) (*sdkmcp.CallToolResult, any, error) {
	return nil, nil, toolError(err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

func persisted(status cell.Status) *bool {
	ok := status.Persisted()
	return &ok
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// Projects

func (t *toolset) listProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	return t.respond(ctx, ProjectsResult{Projects: orEmpty(t.notebook.ProjectSummaries())})
}

func (t *toolset) getProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
	p, err := t.notebook.Project(in.ID)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, ProjectResult{Project: p, Recordings: orEmpty(t.notebook.RecordingsForProject(p.ID))})
}

func (t *toolset) createProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, any, error) {
	if in.ID != "" {
		if _, err := t.notebook.Project(in.ID); err == nil {
			return fail(invalid("project %s already exists", in.ID))
		}
	}
	p := project.Project{
		ID:       in.ID,
		Name:     strings.TrimSpace(in.Name),
		Location: in.Location,
		Theme:    in.Theme,
		Date:     in.Date,
		Notes:    in.Notes,
	}
	if in.TechnicalSheet != nil {
		p.TechnicalSheet = technicalSheet(*in.TechnicalSheet)
	}
	if err := project.Validate(p); err != nil {
		return fail(fmt.Errorf("create project: %w", err))
	}

	created, status := t.notebook.AddProject(ctx, p)
	return t.respond(ctx, ProjectResult{Project: created, Persisted: persisted(status)})
}

func (t *toolset) updateProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateProjectParams) (*sdkmcp.CallToolResult, any, error) {
	if in.ID == "" {
		return fail(invalid("id is required"))
	}
	p, err := t.notebook.Project(in.ID)
	if err != nil {
		return fail(err)
	}
	setString(&p.Name, in.Name)
	setString(&p.Location, in.Location)
	setString(&p.Theme, in.Theme)
	setString(&p.Date, in.Date)
	setString(&p.Notes, in.Notes)
	if in.TechnicalSheet != nil {
		if err := mergeSheet(&p.TechnicalSheet, *in.TechnicalSheet); err != nil {
			return fail(err)
		}
	}
	if err := project.Validate(p); err != nil {
		return fail(fmt.Errorf("update project %s: %w", p.ID, err))
	}

	status, err := t.notebook.UpdateProject(ctx, p)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, ProjectResult{Project: p, Persisted: persisted(status)})
}

func (t *toolset) deleteProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
	removed, status, err := t.notebook.DeleteProject(ctx, in.ID)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, DeleteProjectResult{ProjectID: in.ID, RecordingsDeleted: removed, Persisted: status.Persisted()})
}

func technicalSheet(in TechnicalSheetInput) project.TechnicalSheet {
	var sheet project.TechnicalSheet
	setString(&sheet.Microphone, in.Microphone)
	setString(&sheet.Recorder, in.Recorder)
	setString(&sheet.Settings, in.Settings)
	sheet.Latitude = in.Latitude
	sheet.Longitude = in.Longitude
	return sheet
}

// mergeSheet applies only the fields present in in. Coordinates move as a pair.
func mergeSheet(sheet *project.TechnicalSheet, in TechnicalSheetInput) error {
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return invalid("technical_sheet latitude and longitude must be given together")
	}
	setString(&sheet.Microphone, in.Microphone)
	setString(&sheet.Recorder, in.Recorder)
	setString(&sheet.Settings, in.Settings)
	if in.Latitude != nil {
		lat, lon := *in.Latitude, *in.Longitude
		sheet.Latitude, sheet.Longitude = &lat, &lon
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Recordings

func (t *toolset) listRecordings(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListRecordingsParams) (*sdkmcp.CallToolResult, any, error) {
	var items []recording.Recording
	if in.ProjectID != "" {
		items = t.notebook.RecordingsForProject(in.ProjectID)
	} else {
		items = t.notebook.Recordings()
	}
	return t.respond(ctx, RecordingsResult{Recordings: orEmpty(items)})
}

func (t *toolset) getRecording(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
	r, err := t.notebook.Recording(in.ID)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, RecordingResult{Recording: r})
}

func (t *toolset) createRecording(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateRecordingParams) (*sdkmcp.CallToolResult, any, error) {
	if in.ID != "" {
		if _, err := t.notebook.Recording(in.ID); err == nil {
			return fail(invalid("recording %s already exists", in.ID))
		}
	}
	if _, err := t.notebook.Project(in.ProjectID); err != nil {
		return fail(fmt.Errorf("create recording: %w", err))
	}
	r := recording.Recording{
		ID:          in.ID,
		ProjectID:   in.ProjectID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Location:    in.Location,
		Tags:        orEmpty(recording.MergeTags(nil, in.Tags...)),
		Timestamp:   in.Timestamp,
		Photos:      photos(in.Photos),
		VoiceNotes:  voiceNotes(in.VoiceNotes),
	}
	if r.Timestamp == "" {
		r.Timestamp = t.now().UTC().Format(time.RFC3339)
	}
	if err := recording.Validate(r); err != nil {
		return fail(fmt.Errorf("create recording: %w", err))
	}

	created, status := t.notebook.AddRecording(ctx, r)
	return t.respond(ctx, RecordingResult{Recording: created, Persisted: persisted(status)})
}

func (t *toolset) updateRecording(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateRecordingParams) (*sdkmcp.CallToolResult, any, error) {
	if in.ID == "" {
		return fail(invalid("id is required"))
	}
	r, err := t.notebook.Recording(in.ID)
	if err != nil {
		return fail(err)
	}
	if in.ProjectID != nil && *in.ProjectID != r.ProjectID {
		if _, err := t.notebook.Project(*in.ProjectID); err != nil {
			return fail(fmt.Errorf("move recording %s: %w", r.ID, err))
		}
		r.ProjectID = *in.ProjectID
	}
	setString(&r.Title, in.Title)
	setString(&r.Description, in.Description)
	setString(&r.Location, in.Location)
	setString(&r.Timestamp, in.Timestamp)
	if in.Tags != nil {
		r.Tags = orEmpty(recording.MergeTags(nil, in.Tags...))
	}
	if in.Photos != nil {
		r.Photos = photos(in.Photos)
	}
	if in.VoiceNotes != nil {
		r.VoiceNotes = voiceNotes(in.VoiceNotes)
	}
	if err := recording.Validate(r); err != nil {
		return fail(fmt.Errorf("update recording %s: %w", r.ID, err))
	}

	status, err := t.notebook.UpdateRecording(ctx, r)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, RecordingResult{Recording: r, Persisted: persisted(status)})
}

func (t *toolset) deleteRecording(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
	status, err := t.notebook.DeleteRecording(ctx, in.ID)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, DeleteResult{ID: in.ID, Persisted: status.Persisted()})
}

func (t *toolset) addTags(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddTagsParams) (*sdkmcp.CallToolResult, any, error) {
	if len(recording.MergeTags(nil, in.Tags...)) == 0 {
		return fail(invalid("at least one tag is required"))
	}
	r, status, err := t.notebook.AddTags(ctx, in.RecordingID, in.Tags...)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, RecordingResult{Recording: r, Persisted: persisted(status)})
}

func photos(in []PhotoInput) []recording.Photo {
	out := make([]recording.Photo, len(in))
	for i, p := range in {
		if p.ID == "" {
			p.ID = recording.NewPhotoID()
		}
		out[i] = recording.Photo{ID: p.ID, URL: p.URL, Caption: p.Caption}
	}
	return out
}

func voiceNotes(in []VoiceNoteInput) []recording.VoiceNote {
	out := make([]recording.VoiceNote, len(in))
	for i, vn := range in {
		if vn.ID == "" {
			vn.ID = recording.NewVoiceNoteID()
		}
		out[i] = recording.VoiceNote{
			ID:            vn.ID,
			Title:         vn.Title,
			AudioBase64:   vn.AudioBase64,
			AudioType:     vn.AudioType,
			Duration:      vn.Duration,
			Transcription: vn.Transcription,
			Placeholder:   vn.Placeholder,
		}
	}
	return out
}

// Reminders

func (t *toolset) listReminders(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	return t.respond(ctx, RemindersResult{Reminders: orEmpty(t.notebook.Reminders())})
}

func (t *toolset) addReminder(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddReminderParams) (*sdkmcp.CallToolResult, any, error) {
	r := reminder.Reminder{Text: strings.TrimSpace(in.Text), Time: in.Time, Date: in.Date}
	if r.Date == "" {
		r.Date = t.now().Format(reminder.DateLayout)
	}
	if err := reminder.Validate(r); err != nil {
		return fail(fmt.Errorf("add reminder: %w", err))
	}
	created, status := t.notebook.AddReminder(ctx, r)
	return t.respond(ctx, ReminderResult{Reminder: created, Persisted: status.Persisted()})
}

func (t *toolset) updateReminder(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateReminderParams) (*sdkmcp.CallToolResult, any, error) {
	r, ok := findReminder(t.notebook.Reminders(), in.ID)
	if !ok {
		return fail(fmt.Errorf("update reminder %s: %w", in.ID, reminder.ErrReminderNotFound))
	}
	setString(&r.Text, in.Text)
	setString(&r.Time, in.Time)
	setString(&r.Date, in.Date)
	if err := reminder.Validate(r); err != nil {
		return fail(fmt.Errorf("update reminder %s: %w", r.ID, err))
	}
	status, err := t.notebook.UpdateReminder(ctx, r)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, ReminderResult{Reminder: r, Persisted: status.Persisted()})
}

func (t *toolset) deleteReminder(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
	status, err := t.notebook.DeleteReminder(ctx, in.ID)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, DeleteResult{ID: in.ID, Persisted: status.Persisted()})
}

func findReminder(items []reminder.Reminder, id string) (reminder.Reminder, bool) {
	for _, r := range items {
		if r.ID == id {
			return r, true
		}
	}
	return reminder.Reminder{}, false
}

// Settings

func (t *toolset) getSettings(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	return t.respond(ctx, SettingsResult{Settings: t.notebook.Settings()})
}

func (t *toolset) toggleDarkMode(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	_, status := t.notebook.ToggleDarkMode(ctx)
	return t.respond(ctx, SettingsResult{Settings: t.notebook.Settings(), Persisted: persisted(status)})
}

func (t *toolset) markWelcomeVisited(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	status := t.notebook.MarkWelcomeVisited(ctx)
	return t.respond(ctx, SettingsResult{Settings: t.notebook.Settings(), Persisted: persisted(status)})
}

// Views

func (t *toolset) mediaGallery(ctx context.Context, _ *sdkmcp.CallToolRequest, in MediaGalleryParams) (*sdkmcp.CallToolResult, any, error) {
	filter, err := notebook.ParseGalleryFilter(in.Filter)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, GalleryResult{Filter: filter, Items: orEmpty(t.notebook.Gallery(filter))})
}

func (t *toolset) mapMarkers(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	return t.respond(ctx, MarkersResult{Markers: orEmpty(t.notebook.MapMarkers())})
}

func (t *toolset) geocodeProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in GeocodeProjectParams) (*sdkmcp.CallToolResult, any, error) {
	p, err := t.notebook.Project(in.ProjectID)
	if err != nil {
		return fail(err)
	}
	place := in.Place
	if strings.TrimSpace(place) == "" {
		place = p.Location
	}
	coords, err := t.geocoder.Lookup(ctx, place)
	if err != nil {
		return fail(fmt.Errorf("geocode project %s: %w", p.ID, err))
	}
	updated, status, err := t.notebook.SetProjectCoordinates(ctx, p.ID, coords.Latitude, coords.Longitude)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, GeocodeResult{Project: updated, DisplayName: coords.DisplayName, Persisted: status.Persisted()})
}

// AI

func (t *toolset) requireAssistant() error {
	if t.assistant == nil || !t.assistant.Available() {
		return ai.ErrUnavailable
	}
	return nil
}

func (t *toolset) suggestTags(ctx context.Context, _ *sdkmcp.CallToolRequest, in SuggestTagsParams) (*sdkmcp.CallToolResult, any, error) {
	if err := t.requireAssistant(); err != nil {
		return fail(err)
	}
	title, description := in.Title, in.Description
	if in.RecordingID != "" {
		r, err := t.notebook.Recording(in.RecordingID)
		if err != nil {
			return fail(err)
		}
		title, description = r.Title, r.Description
	} else if in.Apply {
		return fail(invalid("apply needs recording_id"))
	}
	if strings.TrimSpace(title) == "" && strings.TrimSpace(description) == "" {
		return fail(invalid("title or description is required"))
	}

	tags, err := t.assistant.SuggestTags(ctx, title, description)
	if err != nil {
		return fail(fmt.Errorf("suggesting tags: %w", err))
	}
	result := SuggestionsResult{Suggestions: orEmpty(tags)}
	if in.Apply && len(tags) > 0 {
		r, status, err := t.notebook.AddTags(ctx, in.RecordingID, tags...)
		if err != nil {
			return fail(err)
		}
		result.Recording = &r
		result.Persisted = persisted(status)
	}
	return t.respond(ctx, result)
}

func (t *toolset) summarizeVoiceNote(ctx context.Context, _ *sdkmcp.CallToolRequest, in SummarizeVoiceNoteParams) (*sdkmcp.CallToolResult, any, error) {
	if err := t.requireAssistant(); err != nil {
		return fail(err)
	}
	r, err := t.notebook.Recording(in.RecordingID)
	if err != nil {
		return fail(err)
	}
	i := r.VoiceNoteIndex(in.VoiceNoteID)
	if i < 0 {
		return fail(fmt.Errorf("summarize %s/%s: %w", in.RecordingID, in.VoiceNoteID, recording.ErrVoiceNoteNotFound))
	}
	vn := r.VoiceNotes[i]
	var duration float64
	if vn.Duration != nil {
		duration = *vn.Duration
	}

	summary, err := t.assistant.SummarizeVoiceNote(ctx, vn.Title, duration)
	if err != nil {
		return fail(fmt.Errorf("summarizing voice note: %w", err))
	}
	updated, status, err := t.notebook.SetTranscription(ctx, r.ID, vn.ID, summary)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, SummaryResult{Summary: summary, Recording: updated, Persisted: status.Persisted()})
}

func (t *toolset) recordingIdeas(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecordingIdeasParams) (*sdkmcp.CallToolResult, any, error) {
	if err := t.requireAssistant(); err != nil {
		return fail(err)
	}
	p, err := t.notebook.Project(in.ProjectID)
	if err != nil {
		return fail(err)
	}
	ideas, err := t.assistant.RecordingIdeas(ctx, p)
	if err != nil {
		return fail(fmt.Errorf("recording ideas: %w", err))
	}
	return t.respond(ctx, SuggestionsResult{Suggestions: orEmpty(ideas)})
}

func (t *toolset) searchSuggestions(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchSuggestionsParams) (*sdkmcp.CallToolResult, any, error) {
	if err := t.requireAssistant(); err != nil {
		return fail(err)
	}
	scope := ai.SearchScope(in.Scope)
	switch scope {
	case "":
		scope = ai.ScopeApp
	case ai.ScopeApp, ai.ScopeMap:
	default:
		return fail(invalid("unknown scope %q", in.Scope))
	}
	items, err := t.assistant.SearchSuggestions(ctx, in.Term, scope)
	if err != nil {
		return fail(fmt.Errorf("search suggestions: %w", err))
	}
	return t.respond(ctx, SuggestionsResult{Suggestions: orEmpty(items)})
}

// Activity and notices

func (t *toolset) getRecentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, any, error) {
	if in.Limit < 0 || in.Offset < 0 {
		return fail(invalid("limit and offset must not be negative"))
	}
	opts := activity.ListActivityOptions{
		ProjectID: in.ProjectID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.RecordingID != "" {
		opts.RecordingID = &in.RecordingID
	}
	if in.ActivityType != "" {
		kind := activity.ActivityType(in.ActivityType)
		opts.ActivityType = &kind
	}
	entries, err := t.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return fail(err)
	}
	return t.respond(ctx, ActivityResult{Entries: orEmpty(entries)})
}

func (t *toolset) listNotices(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	var pending []notice.Notice
	if t.notices != nil {
		pending = t.notices.Drain()
	}
	pending = append(pending, notice.Collected(ctx)...)
	return t.encode(NoticesResult{Count: len(pending)}, pending)
}

func (t *toolset) getStorageUsage(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	usage, err := t.notebook.StorageUsage(ctx)
	if err != nil {
		return fail(err)
	}
	usage.Keys = orEmpty(usage.Keys)
	return t.respond(ctx, StorageUsageResult{Usage: usage})
}
