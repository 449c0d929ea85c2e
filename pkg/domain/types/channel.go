package types

// Channel is one of the two independently tracked release kinds
type Channel string

const (
	ChannelStable     Channel = "release"
	ChannelPrerelease Channel = "prerelease"
)

// Channels lists channels in evaluation order
var Channels = []Channel{ChannelStable, ChannelPrerelease}

// IsPrerelease reports whether entries of this channel carry the prerelease flag
func (c Channel) IsPrerelease() bool {
	return c == ChannelPrerelease
}

// Label is the human readable prefix used in notification bodies
func (c Channel) Label() string {
	switch c {
	case ChannelPrerelease:
		return "Pre-release"
	default:
		return "Release"
	}
}
