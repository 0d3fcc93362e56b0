package egress

// ReplyRequest is the frame sent by every transport. Data holds the text body
// or the base64 PNG.
type ReplyRequest struct {
	Type string `json:"type"`
	Room string `json:"room"`
	Data string `json:"data"`
}

const (
	replyText  = "text"
	replyImage = "image"
)

// HeaderProvider allows injecting per-request headers
type HeaderProvider func() map[string]string
