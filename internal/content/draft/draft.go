// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

/*
Package draft implements named draft snapshots: point-in-time checkpoints of
a work's text an author can save while writing and restore from later.

Each work holds at most [constants.MaxDraftSnapshotsPerWork] snapshots; a
save beyond the cap is refused rather than silently evicting an older one.
*/
package draft

import "time"

// Snapshot is a saved checkpoint of a work's editable text.
type Snapshot struct {
	ID        string    `json:"id"`
	WorkID    string    `json:"work_id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	FieldName    = "name"
	FieldTitle   = "title"
	FieldContent = "content"
)
