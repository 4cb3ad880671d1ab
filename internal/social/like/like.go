// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

/*
Package like implements per-work appreciation marks.

The authoritative count lives in Postgres and is maintained in the same
transaction as the like relation, so it always equals the cardinality of
the like set. Redis only caches the counter for read traffic; it is never
the source of truth.
*/
package like

// Status is a caller's view of a work's like state.
type Status struct {
	WorkID    string `json:"work_id"`
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"like_count"`
}
