package posting

type TaskKind string

const (
	KindTask         TaskKind = "task"
	KindQuiz         TaskKind = "quiz"
	KindExternalLink TaskKind = "external-link"
)

func (k TaskKind) String() string { return string(k) }

func (k TaskKind) IsValid() bool {
	switch k {
	case KindTask, KindQuiz, KindExternalLink:
		return true
	default:
		return false
	}
}

// TaskStatus only advances forward: assigned -> submitted -> graded, or
// assigned -> graded directly for quizzes.
type TaskStatus string

const (
	StatusAssigned  TaskStatus = "assigned"
	StatusSubmitted TaskStatus = "submitted"
	StatusGraded    TaskStatus = "graded"
)

func (s TaskStatus) String() string { return string(s) }

type PostingStatus string

const (
	PostingDraft     PostingStatus = "draft"
	PostingPublished PostingStatus = "published"
	PostingClosed    PostingStatus = "closed"
)

func (s PostingStatus) String() string { return string(s) }

func (s PostingStatus) IsValid() bool {
	switch s {
	case PostingDraft, PostingPublished, PostingClosed:
		return true
	default:
		return false
	}
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) String() string { return string(s) }

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
		return true
	default:
		return false
	}
}
