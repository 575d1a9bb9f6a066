package notify

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/dojsystem/process-api/config"
)

// Mailer mirrors intimation notices to the registry mailbox over SendGrid.
// Delivery failures are logged and swallowed; mail is a convenience mirror,
// never part of the write path.
type Mailer struct {
	Config config.Config
}

// SendIntimationCopy emails a copy of an issued intimation. No-op when the
// mail settings are not configured.
func (m Mailer) SendIntimationCopy(caseNumber, targetTag, reason string, deadlineDays int) {
	if m.Config.Mail.SendgridAPIKey == "" || m.Config.Mail.RegistryEmail == "" {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.S().Errorw("panic in SendIntimationCopy", "caseNumber", caseNumber, "panic", r)
			}
		}()

		from := mail.NewEmail("Cartório Judicial", m.Config.Mail.FromEmail)
		to := mail.NewEmail("", m.Config.Mail.RegistryEmail)
		subject := fmt.Sprintf("Intimação emitida — %s", caseNumber)
		plain := fmt.Sprintf("Processo %s: intimação emitida para %s. Motivo: %s. Prazo: %d dia(s).",
			caseNumber, targetTag, reason, deadlineDays)
		html := fmt.Sprintf("<p>Processo <strong>%s</strong></p><p>Intimação emitida para <strong>%s</strong>.</p><p>Motivo: %s</p><p>Prazo: %d dia(s)</p>",
			caseNumber, targetTag, reason, deadlineDays)

		message := mail.NewSingleEmail(from, subject, to, plain, html)
		client := sendgrid.NewSendClient(m.Config.Mail.SendgridAPIKey)
		response, err := client.Send(message)
		if err != nil {
			zap.S().Errorw("failed to send intimation copy", "caseNumber", caseNumber, "error", err)
			return
		}
		if response.StatusCode >= 200 && response.StatusCode < 300 {
			zap.S().Infow("intimation copy sent", "caseNumber", caseNumber, "statusCode", response.StatusCode)
		} else {
			zap.S().Warnw("intimation copy sent with non-2xx status", "caseNumber", caseNumber, "statusCode", response.StatusCode, "body", response.Body)
		}
	}()
}
