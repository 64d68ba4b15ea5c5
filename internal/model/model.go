package model

// IncomingMessage is a text message received from a chat user. Command is
// the bot command without the slash, empty for plain text.
type IncomingMessage struct {
	UserID      int64
	ChatID      int64
	DisplayName string
	Command     string
	Text        string
}

func (m IncomingMessage) IsCommand() bool {
	return m.Command != ""
}

type GenerationRequest struct {
	Topic       string
	Temperature float64
}

// GenerationResult holds the generated post. A nil Image means no image
// could be produced.
type GenerationResult struct {
	Text  string
	Image []byte
}

func (r GenerationResult) HasImage() bool {
	return len(r.Image) > 0
}
