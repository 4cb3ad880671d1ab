package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	WorkID    string
	UserID    string
	Body      string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	WorkID:    "workid",
	UserID:    "userid",
	Body:      "body",
	Status:    "status",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
