package domain

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
	ChannelInApp Channel = "inapp"
)

func (c Channel) IsValid() bool {
	switch c {
	case ChannelEmail, ChannelPush, ChannelInApp:
		return true
	default:
		return false
	}
}

func AllChannels() []Channel {
	return []Channel{ChannelEmail, ChannelPush, ChannelInApp}
}
