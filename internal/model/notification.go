package model

// Notification is the platform-independent rendered message: a title, an
// accent color and an ordered list of labeled fields. The chat transport
// decides how to display it (Discord renders it as an embed).
type Notification struct {
	Title  string
	Color  int
	Fields []NotificationField
	Footer string
}

// NotificationField is one labeled value in a Notification.
type NotificationField struct {
	Label  string
	Value  string
	Inline bool
}

// PushEvent is the normalized form of a source-control push, shared by
// both webhook providers. Commits holds at most five entries.
type PushEvent struct {
	Provider      string
	Repository    string
	Branch        string
	PusherName    string
	RepositoryURL string
	Commits       []Commit
}

// Commit is one commit inside a PushEvent.
type Commit struct {
	ID      string
	Message string
	Author  string
	URL     string
}
