package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mailtpl "github.com/mumanal/actualizacion-datos/pkg/mailer/templates"
)

// ErrBadJob marks jobs that can never be delivered and must not be retried.
var ErrBadJob = errors.New("mailer: bad job")

// Process renders job (when it names a template) and hands it to s.
// Render and shape problems wrap ErrBadJob; delivery failures are returned as is.
func Process(ctx context.Context, s Sender, job EmailJob) error {
	if strings.TrimSpace(job.To) == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if job.Data == nil {
			job.Data = map[string]any{}
		}
		if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
			job.Data["Email"] = job.To
		}
		var err error
		subject, text, html, err = mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
		}
	}
	if subject == "" || (text == "" && html == "") {
		return fmt.Errorf("%w: empty message", ErrBadJob)
	}
	return s.Send(ctx, job.To, subject, text, html)
}
