package schema

// SocialWorkLikeTable represents the 'social.worklike' table.
//
// Primary key is (workid, userid): at most one like per pair.
type SocialWorkLikeTable struct {
	Table     string
	WorkID    string
	UserID    string
	CreatedAt string
}

// SocialWorkLike is the schema definition for social.worklike
var SocialWorkLike = SocialWorkLikeTable{
	Table:     "social.worklike",
	WorkID:    "workid",
	UserID:    "userid",
	CreatedAt: "createdat",
}
