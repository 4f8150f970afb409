package domain

// Target is a remote replication endpoint owned by the registry core. The
// console only holds transient copies while orchestrating writes.
type Target struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Policy is a replication policy owned by the registry core. Enabled uses
// 0/1 to match the core API's wire format.
type Policy struct {
	ID          int64  `json:"id,omitempty"`
	ProjectID   int64  `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Enabled     int    `json:"enabled"`
	TargetID    int64  `json:"target_id"`
}

// SearchResults is the payload of a global search against the registry core.
type SearchResults struct {
	Projects     []SearchHit `json:"project"`
	Repositories []SearchHit `json:"repository"`
}

// SearchHit is a single named match.
type SearchHit struct {
	Name      string `json:"name"`
	ProjectID int64  `json:"project_id,omitempty"`
}
