package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `soundxcape is a field notebook for sound-recording expeditions.

Model:
- Project: an expedition (name, location, theme, date, notes, technical sheet with gear and optional coordinates).
- Recording: a capture event inside a project, with tags, photos, and voice notes.
- Reminder: a free-standing note with a display time and a date.
- Settings: dark mode and whether onboarding was seen.

Rules:
1) Every change is saved immediately. Deleting a project also deletes its recordings.
2) Photos and voice notes change only through create_recording / update_recording (whole-recording writes).
3) When the notebook storage is full, changes stay in memory for this run only. Tool results then carry
   "notices": show them to the user and suggest deleting old recordings or shrinking media.
4) AI tools (suggest_tags, summarize_voice_note, recording_ideas, search_suggestions) need an API key;
   without one they return AI_UNAVAILABLE.

Docs:
- soundxcape://docs/index
- soundxcape://docs/storage
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "soundxcape://docs/index",
		Name:        "docs_index",
		Title:       "soundxcape docs index",
		Description: "What the notebook holds and which tool serves which screen.",
		Content: `# soundxcape: Docs Index

## Screens and tools

- Project list: ` + "`list_projects`" + ` (with recording counts), ` + "`create_project`" + `.
- Project detail: ` + "`get_project`" + `, ` + "`update_project`" + `, ` + "`delete_project`" + `, ` + "`recording_ideas`" + `, ` + "`geocode_project`" + `.
- Recording form: ` + "`create_recording`" + `, ` + "`update_recording`" + `, ` + "`add_tags`" + `, ` + "`suggest_tags`" + `, ` + "`summarize_voice_note`" + `.
- Gallery: ` + "`media_gallery`" + ` with filter all, photos, or audio. Newest first.
- Map: ` + "`map_markers`" + ` (projects with coordinates), ` + "`search_suggestions`" + ` with scope map.
- Utilities: ` + "`list_reminders`" + ` and friends, ` + "`get_settings`" + `, ` + "`toggle_dark_mode`" + `.
- Onboarding: ` + "`mark_welcome_visited`" + `.

## Identifiers

Ids are generated when omitted: ` + "`proj_`" + `, ` + "`rec_`" + `, ` + "`photo_`" + `, ` + "`vn_`" + `, ` + "`rem_`" + ` followed by a time-ordered UUID.
Recordings may reference a project that no longer exists; they are still listed.
`,
	},
	{
		URI:         "soundxcape://docs/storage",
		Name:        "docs_storage",
		Title:       "Storage and notices",
		Description: "How saving works, what happens when storage is full, and how to recover.",
		Content: `# Storage and notices

Each collection (projects, recordings, reminders) and each setting is saved under its own key
as soon as it changes. A write result reports ` + "`persisted`" + `.

## Storage full

The storage medium has a byte quota. Photos (data URIs) and voice notes (base64 audio) use most of it.
When a write does not fit:

- the change is kept in memory and is visible to every tool until the service restarts;
- nothing already saved is altered;
- one notice per failed write is returned under ` + "`notices`" + ` in the result of the call that made it.

To recover, delete older projects or recordings with large media, or shrink attachments, then retry.
` + "`list_notices`" + ` returns and clears notices raised outside a tool call, such as at startup.
` + "`get_storage_usage`" + ` reports the bytes stored, the quota and the stored keys.

## Deleting a project

The project and all of its recordings are saved in one step: either both changes are stored or neither is.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
