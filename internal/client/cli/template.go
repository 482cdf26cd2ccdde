package cli

import (
	"text/template"
	"time"
)

var funcs = template.FuncMap{
	"when": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return t.Local().Format("2006-01-02 15:04:05")
	},
	"yesno": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
	"preview": func(s string) string {
		r := []rune(s)
		if len(r) > 60 {
			return string(r[:60]) + "..."
		}
		return s
	},
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

var statusTemplate = mustParse("status", `
=== Sync Status ===

Backend:       {{ .Backend }}
Account:       {{ if .Status.Email }}{{ .Status.Email }}{{ else }}-{{ end }}
Authenticated: {{ yesno .Status.Authenticated }}
Sync enabled:  {{ yesno .Status.Enabled }}
{{- if .Status.SyncInProgress }}
Sync in progress
{{- end }}
Last sync:     {{ when .Status.LastSync }}
{{- if .Status.Error }}
Last error:    {{ .Status.Error }}
{{- end }}

Local chats:   {{ .Chats }}
Local presets: {{ .Presets }}
{{- if not .Status.Authenticated }}

Run 'chatsync login' to connect a remote store.
{{- else if not .Status.Enabled }}

Run 'chatsync enable' to turn on synchronization.
{{- end }}
`)

var syncResultTemplate = mustParse("sync", `
✓ Synchronization completed

Chats:    +{{ .Chats.Inserted }} new, {{ .Chats.Updated }} updated, {{ .Chats.Deleted }} removed
Presets:  +{{ .Presets.Inserted }} new, {{ .Presets.Updated }} updated, {{ .Presets.Deleted }} removed
Uploaded: {{ .UploadedChats }} chat(s), {{ .UploadedPresets }} preset(s), {{ .UploadedTombstones }} deletion(s)
`)

var restoreResultTemplate = mustParse("restore", `
{{- if not .HasData }}
No chats or presets found in the remote store.
{{ else }}
✓ Restored from the remote store

Remote:  {{ len .Chats }} chat(s), {{ len .Presets }} preset(s)
Chats:   +{{ .Applied.Chats.Inserted }} new, {{ .Applied.Chats.Updated }} updated
Presets: +{{ .Applied.Presets.Inserted }} new, {{ .Applied.Presets.Updated }} updated
{{ end -}}
`)

var chatListTemplate = mustParse("chats", `
=== Chats ===

{{- if eq (len .) 0 }}
No chats found.

Use 'chatsync chat add' to add your first chat.
{{ else }}
Found {{ len . }} chat(s):
{{ range . }}
{{ .LocalID }}. {{ .Name }}
   Title:    {{ .Title }}
   {{- if .Source }}
   Source:   {{ .Source }}
   {{- end }}
   Messages: {{ len .Messages }}
   Updated:  {{ when .UpdatedAt }}
{{- end }}
{{ end -}}
`)

var chatTemplate = mustParse("chat", `
=== Chat Details ===

ID:       {{ .LocalID }}
Sync ID:  {{ .SyncID }}
Name:     {{ .Name }}
Title:    {{ .Title }}
{{- if .Source }}
Source:   {{ .Source }}
{{- end }}
{{- if .PresetName }}
Preset:   {{ .PresetName }}
{{- end }}
Created:  {{ when .CreatedAt }}
Updated:  {{ when .UpdatedAt }}

Messages ({{ len .Messages }}):
{{- range .Messages }}
  [{{ .Role }}] {{ preview .Content }}
  {{- if .Attachments }} ({{ len .Attachments }} attachment(s)){{ end }}
{{- end }}
`)

var presetListTemplate = mustParse("presets", `
=== Presets ===

{{- if eq (len .) 0 }}
No presets found.

Use 'chatsync preset add' to add your first preset.
{{ else }}
Found {{ len . }} preset(s):
{{ range . }}
{{ .LocalID }}. {{ .Name }}
   Updated: {{ when .UpdatedAt }}
{{- end }}
{{ end -}}
`)

var presetTemplate = mustParse("preset", `
=== Preset Details ===

ID:       {{ .LocalID }}
Sync ID:  {{ .SyncID }}
Name:     {{ .Name }}
Created:  {{ when .CreatedAt }}
Updated:  {{ when .UpdatedAt }}

Settings:
{{ .Pretty }}
`)
