package models

// PushEvent is a decoded push-channel message scoped to one post.
type PushEvent interface {
	Post() string
	isPushEvent()
}

// OptionUpserted carries a new or updated option.
type OptionUpserted struct {
	PostID string
	Option Option
}

func (e OptionUpserted) Post() string { return e.PostID }
func (OptionUpserted) isPushEvent()   {}

// PostUpdated carries new aggregate fields of a post.
type PostUpdated struct {
	PostID      string
	TotalAmount int64
	OptionCount int64
	Version     int64
}

func (e PostUpdated) Post() string { return e.PostID }
func (PostUpdated) isPushEvent()   {}
