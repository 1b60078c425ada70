package entity

// Kind names an ownable entity.
type Kind string

const (
	KindVideo    Kind = "video"
	KindComment  Kind = "comment"
	KindTweet    Kind = "tweet"
	KindPlaylist Kind = "playlist"
)

func (k Kind) Title() string {
	switch k {
	case KindVideo:
		return "Video"
	case KindComment:
		return "Comment"
	case KindTweet:
		return "Tweet"
	case KindPlaylist:
		return "Playlist"
	}
	return string(k)
}
