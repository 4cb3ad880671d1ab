package schema

// ContentDraftSnapshotTable represents the 'content.draftsnapshot' table
type ContentDraftSnapshotTable struct {
	Table     string
	ID        string
	WorkID    string
	Name      string
	Title     string
	Content   string
	CreatedAt string
}

// ContentDraftSnapshot is the schema definition for content.draftsnapshot
var ContentDraftSnapshot = ContentDraftSnapshotTable{
	Table:     "content.draftsnapshot",
	ID:        "id",
	WorkID:    "workid",
	Name:      "name",
	Title:     "title",
	Content:   "content",
	CreatedAt: "createdat",
}
