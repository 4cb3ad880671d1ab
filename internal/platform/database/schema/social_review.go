package schema

// SocialReviewTable represents the 'social.review' table.
//
// The review ledger is append-only: no UPDATE or DELETE statement anywhere
// in the codebase targets this table, except the cascade that removes a
// deleted work's history.
type SocialReviewTable struct {
	Table     string
	ID        string
	WorkID    string
	EditorID  string
	Decision  string
	Feedback  string
	CreatedAt string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:     "social.review",
	ID:        "id",
	WorkID:    "workid",
	EditorID:  "editorid",
	Decision:  "decision",
	Feedback:  "feedback",
	CreatedAt: "createdat",
}
