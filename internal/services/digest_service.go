package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"hadron_scholar_backend/internal/mailer"
	"hadron_scholar_backend/internal/models"

	"github.com/rs/zerolog/log"
)

// DigestService sends the daily email digest of papers published in the
// last 24 hours to every subscribed user.
type DigestService struct {
	papers *PaperService
	users  *UserService
	mailer mailer.Mailer
	now    func() time.Time
}

func NewDigestService(papers *PaperService, users *UserService, m mailer.Mailer) *DigestService {
	return &DigestService{
		papers: papers,
		users:  users,
		mailer: m,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SendDailyDigest renders one HTML email and delivers it to each subscriber.
// A failed send is logged and counted but never stops the remaining
// recipients.
func (s *DigestService) SendDailyDigest(ctx context.Context) (sent, failed int, err error) {
	now := s.now()

	papers, err := s.papers.PapersSince(now.Add(-24 * time.Hour))
	if err != nil {
		return 0, 0, fmt.Errorf("loading recent papers: %w", err)
	}

	users, err := s.users.DigestSubscribers()
	if err != nil {
		return 0, 0, fmt.Errorf("loading subscribers: %w", err)
	}

	body, err := renderDigest(papers, now)
	if err != nil {
		return 0, 0, fmt.Errorf("rendering digest: %w", err)
	}
	subject := "Hadron Physics Digest - " + now.Format("2006-01-02")

	for _, user := range users {
		if ctx.Err() != nil {
			return sent, failed, ctx.Err()
		}
		if sendErr := s.mailer.Send(user.Email, subject, body); sendErr != nil {
			log.Error().Err(sendErr).Str("email", user.Email).Msg("failed to send digest")
			failed++
			continue
		}
		log.Info().Str("email", user.Email).Msg("sent digest")
		sent++
	}

	log.Info().Int("sent", sent).Int("subscribers", len(users)).Msg("daily digest complete")
	return sent, failed, nil
}

type digestPaper struct {
	Title      string
	Authors    string
	Categories string
	URL        string
}

func renderDigest(papers []models.Paper, now time.Time) (string, error) {
	view := struct {
		Date   string
		Papers []digestPaper
	}{Date: now.Format("January 02, 2006")}

	for _, p := range papers {
		authors := p.Authors
		if len(authors) > 100 {
			authors = authors[:100] + "..."
		}
		view.Papers = append(view.Papers, digestPaper{
			Title:      p.Title,
			Authors:    authors,
			Categories: p.Categories,
			URL:        p.URL,
		})
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var digestTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2c3e50; color: white; padding: 20px; text-align: center; }
        .paper { border-bottom: 1px solid #eee; padding: 15px 0; }
        .paper-title { color: #2c3e50; font-size: 16px; font-weight: bold; margin-bottom: 5px; }
        .paper-authors { color: #666; font-size: 14px; margin-bottom: 10px; }
        .paper-categories { color: #888; font-size: 12px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
        a { color: #3498db; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Hadron Physics Daily Digest</h1>
            <p>{{.Date}}</p>
        </div>

        <p>Here are the latest papers in hadron physics:</p>

        {{range .Papers}}
        <div class="paper">
            <div class="paper-title">
                <a href="{{.URL}}">{{.Title}}</a>
            </div>
            <div class="paper-authors">{{.Authors}}</div>
            <div class="paper-categories">{{.Categories}}</div>
        </div>
        {{end}}

        {{if not .Papers}}
        <p>No new papers in the last 24 hours.</p>
        {{end}}

        <div class="footer">
            <p>You're receiving this because you subscribed to daily digests.</p>
            <p>Data sourced from arXiv.org and journal feeds.</p>
        </div>
    </div>
</body>
</html>
`))
