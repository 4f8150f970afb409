package domain

// DeletionKind identifies which feature a deletion request belongs to. The
// confirm channel is shared by every delete-capable feature, so consumers
// must filter by kind before acting.
type DeletionKind string

const (
	DeleteNone       DeletionKind = "none"
	DeleteProject    DeletionKind = "project"
	DeleteMember     DeletionKind = "member"
	DeleteUser       DeletionKind = "user"
	DeletePolicy     DeletionKind = "policy"
	DeleteTarget     DeletionKind = "target"
	DeleteRepository DeletionKind = "repository"
	DeleteTag        DeletionKind = "tag"
)

// DeletionRequest is announced by a delete action, consumed exactly once by
// the shared confirmation dialog, and re-published on the confirm channel
// only if the operator accepts.
type DeletionRequest struct {
	ID       string
	TitleKey string
	BodyKey  string
	Param    string
	Kind     DeletionKind
	Payload  any
}
