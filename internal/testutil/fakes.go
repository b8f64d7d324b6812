package testutil

import (
	"strings"
	"sync"

	"Foodgram-Backend/internal/utils/storage"
)

// OnePixelPNG is a valid 1x1 PNG as a data URI.
const OnePixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer records messages instead of sending them.
type Mailer struct {
	mu   sync.Mutex
	Sent []Mail
}

func (m *Mailer) SendMail(toEmail string, subject string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, Mail{To: toEmail, Subject: subject, Body: body})
	return nil
}

// ObjectKey turns a public link served by m back into its object key.
func ObjectKey(m *storage.Memory, link string) string {
	return strings.TrimPrefix(link, m.Base+"/")
}
