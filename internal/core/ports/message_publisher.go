package ports

// MessagePublisher routes operation outcomes onto the console's banner
// channels.
type MessagePublisher interface {
	// ShowSuccess publishes a success banner on the page-level channel.
	ShowSuccess(text string)

	// HandleError routes err to the page-level or app-level channel depending
	// on severity. Every error produces exactly one message.
	HandleError(err error)

	// IsAppLevel reports whether err must surface as an app-level banner plus
	// a forced sign-in redirect rather than as an inline error.
	IsAppLevel(err error) bool
}
