package source

import (
	"context"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

var (
	mboxSeparator = regexp.MustCompile(`(?m)^From `)
	htmlTag       = regexp.MustCompile(`(?s)<[^>]*>`)
	blankLines    = regexp.MustCompile(`\n\s*\n+`)
)

// Mbox reads an exported e-mail archive.
type Mbox struct {
	path  string
	clock common.Clock
}

func NewMbox(path string, clock common.Clock) *Mbox {
	if clock == nil {
		clock = common.SystemClock
	}

	return &Mbox{
		path:  path,
		clock: clock,
	}
}

func (m *Mbox) GetLatestMessages(ctx context.Context, daysBack int) ([]*database.Message, error) {
	f, err := os.Open(m.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open mbox %s", m.path)
	}

	defer func() {
		_ = f.Close()
	}()

	messages, err := ReadMbox(ctx, f)
	if err != nil {
		return nil, err
	}

	return inWindow(messages, m.clock(), daysBack), nil
}

// ReadMbox splits an archive into mails and keeps the ones that look transactional. The message
// body handed to the parser is the subject followed by the plain text of the mail.
func ReadMbox(ctx context.Context, r io.Reader) ([]*database.Message, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read mbox")
	}

	logger := zerolog.Ctx(ctx)

	var messages []*database.Message

	for i, part := range mboxSeparator.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), -1) {
		if strings.TrimSpace(part) == "" {
			continue
		}

		msg, parseErr := parseMail(part)
		if parseErr != nil {
			logger.Debug().Err(parseErr).Int("index", i).Msg("skipping unreadable mail")
			continue
		}

		if !containsAny(msg.Body, emailKeywords) {
			continue
		}

		messages = append(messages, msg)
	}

	return messages, nil
}

func parseMail(part string) (*database.Message, error) {
	// first line is the envelope remainder of the separator
	if idx := strings.IndexByte(part, '\n'); idx >= 0 {
		part = part[idx+1:]
	} else {
		return nil, errors.New("mail without headers")
	}

	parsed, err := mail.ReadMessage(strings.NewReader(part))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read mail headers")
	}

	date, err := parsed.Header.Date()
	if err != nil {
		return nil, errors.Wrap(err, "mail has no valid date")
	}

	text, err := extractText(
		parsed.Header.Get("Content-Type"),
		parsed.Header.Get("Content-Transfer-Encoding"),
		parsed.Body,
	)
	if err != nil {
		return nil, err
	}

	subject := decodeHeader(parsed.Header.Get("Subject"))
	body := strings.TrimSpace(subject + "\n" + strings.TrimSpace(text))

	sender := parsed.Header.Get("From")
	if addr, addrErr := mail.ParseAddress(sender); addrErr == nil {
		sender = addr.Address
	}

	id := strings.Trim(strings.TrimSpace(parsed.Header.Get("Message-Id")), "<>")
	if id == "" {
		id = contentID(sender, body)
	}

	return &database.Message{
		ID:         "mail-" + id,
		Sender:     sender,
		Body:       body,
		ReceivedAt: date.UTC(),
	}, nil
}

// extractText prefers text/plain and falls back to tag-stripped text/html.
func extractText(contentType string, encoding string, r io.Reader) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
	}

	if !strings.HasPrefix(mediaType, "multipart/") {
		b, readErr := io.ReadAll(decodeTransfer(encoding, r))
		if readErr != nil {
			return "", errors.Wrap(readErr, "failed to decode mail body")
		}

		if mediaType == "text/html" {
			return stripHTML(string(b)), nil
		}

		if !strings.HasPrefix(mediaType, "text/") {
			return "", nil
		}

		return string(b), nil
	}

	reader := multipart.NewReader(r, params["boundary"])

	var fallback string

	for {
		p, partErr := reader.NextPart()
		if errors.Is(partErr, io.EOF) {
			break
		}

		if partErr != nil {
			return "", errors.Wrap(partErr, "failed to read mail part")
		}

		partType := p.Header.Get("Content-Type")
		if partType == "" {
			partType = "text/plain"
		}

		text, textErr := extractText(partType, p.Header.Get("Content-Transfer-Encoding"), p)
		if textErr != nil {
			return "", textErr
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		if strings.HasPrefix(partType, "text/plain") {
			return text, nil
		}

		if fallback == "" {
			fallback = text
		}
	}

	return fallback, nil
}

func decodeTransfer(encoding string, r io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	default:
		return r
	}
}

func decodeHeader(value string) string {
	decoded, err := new(mime.WordDecoder).DecodeHeader(value)
	if err != nil {
		return value
	}

	return decoded
}

func stripHTML(html string) string {
	text := htmlTag.ReplaceAllString(html, "\n")
	text = strings.NewReplacer("&nbsp;", " ", "&amp;", "&", "&#8377;", "₹", "&lt;", "<", "&gt;", ">").Replace(text)

	return strings.TrimSpace(blankLines.ReplaceAllString(text, "\n"))
}

func contentID(parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(parts, "\n"))).String()
}
