package gmail

import (
	"encoding/base64"
	"strings"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/ledgersift/mail-ingestor/internal/domain"
)

// parseMessage converts a full-format Gmail message into a domain message.
// The body prefers text/plain; text/html is kept only when no plain part
// exists. InternalDate is the authoritative timestamp, not the Date header.
func parseMessage(msg *gmailapi.Message) domain.EmailMessage {
	out := domain.EmailMessage{
		ProviderMessageID: msg.Id,
		ThreadID:          msg.ThreadId,
		Date:              time.UnixMilli(msg.InternalDate).UTC(),
	}
	if msg.Payload == nil {
		return out
	}
	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "From":
			out.From = header.Value
		case "To":
			out.To = header.Value
		case "Subject":
			out.Subject = header.Value
		}
	}

	var plain, html strings.Builder
	collectBody(msg.Payload, &plain, &html)
	out.Body = plain.String()
	if out.Body == "" {
		out.Body = html.String()
	}
	return out
}

// collectBody walks the MIME tree accumulating text parts. Undecodable parts
// are skipped rather than failing the whole message.
func collectBody(part *gmailapi.MessagePart, plain, html *strings.Builder) {
	if part == nil {
		return
	}
	if part.Body != nil && part.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(part.Body.Data); err == nil {
			switch part.MimeType {
			case "text/plain":
				plain.Write(data)
			case "text/html":
				html.Write(data)
			}
		}
	}
	for _, sub := range part.Parts {
		collectBody(sub, plain, html)
	}
}
