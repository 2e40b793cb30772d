package mail

import (
	"bytes"
	"io"
	"strings"

	"github.com/emersion/go-message"
)

// extractTextBody pulls the first text/plain part out of a raw RFC 5322
// message. Multipart messages are walked part by part; single-part
// messages return their body directly. Decode failures yield an empty
// body rather than an error since the heuristics can still use the
// subject line.
func extractTextBody(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return ""
	}

	if mr := entity.MultipartReader(); mr != nil {
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				return ""
			}
			if err != nil {
				return ""
			}
			mediaType, _, _ := part.Header.ContentType()
			if strings.EqualFold(mediaType, "text/plain") {
				body, err := io.ReadAll(part.Body)
				if err != nil {
					return ""
				}
				return string(body)
			}
		}
	}

	body, err := io.ReadAll(entity.Body)
	if err != nil {
		return ""
	}
	return string(body)
}
