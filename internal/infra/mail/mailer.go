package mail

import (
	"context"
	"log/slog"
)

// メール送信の窓口。送達確認はしない（fire-and-forget）。
type Mailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// 実際の配送は外部サービスに任せる前提で、ここではログに落とすだけ。
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, to string, subject string, body string) error {
	m.logger.InfoContext(ctx, "mail queued",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_bytes", len(body)),
	)
	return nil
}
