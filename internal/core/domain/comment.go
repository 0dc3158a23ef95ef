package domain

// CommentType tags the intent of a reviewer note.
type CommentType string

const (
	CommentInquiry        CommentType = "INQUIRY"
	CommentClarification  CommentType = "CLARIFICATION"
	CommentObservation    CommentType = "OBSERVATION"
	CommentRecommendation CommentType = "RECOMMENDATION"
)

// Comment is a threaded note attached to an application. Comments are never
// deleted; resolution is a one-way flag.
type Comment struct {
	CommentID     string      `json:"commentID"` // Primary Key (UUID)
	ApplicationID string      `json:"applicationID"`
	AuthorID      string      `json:"authorID"`
	AuthorRole    UserRole    `json:"authorRole"`
	CommentText   string      `json:"commentText"`
	CommentType   CommentType `json:"commentType"`
	IsInternal    bool        `json:"isInternal"`
	IsResolved    bool        `json:"isResolved"`
	AuditFields
}
