package schema

// ContentWorkTable represents the 'content.work' table
type ContentWorkTable struct {
	Table          string
	ID             string
	AuthorID       string
	CategoryID     string
	Title          string
	Content        string
	Tags           string
	Status         string
	PreviousStatus string
	LikeCount      string
	SubmittedAt    string
	PublishedAt    string
	CreatedAt      string
	UpdatedAt      string
}

// ContentWork is the schema definition for content.work
var ContentWork = ContentWorkTable{
	Table:          "content.work",
	ID:             "id",
	AuthorID:       "authorid",
	CategoryID:     "categoryid",
	Title:          "title",
	Content:        "content",
	Tags:           "tags",
	Status:         "status",
	PreviousStatus: "previousstatus",
	LikeCount:      "likecount",
	SubmittedAt:    "submittedat",
	PublishedAt:    "publishedat",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns all standard column names
func (t ContentWorkTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.CategoryID, t.Title, t.Content, t.Tags,
		t.Status, t.PreviousStatus, t.LikeCount,
		t.SubmittedAt, t.PublishedAt, t.CreatedAt, t.UpdatedAt,
	}
}
