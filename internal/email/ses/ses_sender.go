package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"testreport/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendAnalysisComplete(ctx context.Context, toEmail string, n port.AnalysisNotification) error {
	subject := fmt.Sprintf("Rapor analizi tamamlandı: %s", n.Filename)
	htmlBody := buildAnalysisCompleteHTML(n)
	textBody := fmt.Sprintf(
		"Merhaba,\n\n%s dosyasının analizi tamamlandı.\n\nRapor tipi: %s\nToplam test: %d\nBaşarılı: %d\nBaşarısız: %d\n\nDetaylar için panele giriş yapabilirsiniz.",
		n.Filename, n.ReportType, n.TotalTests, n.PassedTests, n.FailedTests,
	)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildAnalysisCompleteHTML(n port.AnalysisNotification) string {
	statusColor := "#16A34A"
	if n.FailedTests > 0 {
		statusColor = "#DC2626"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Rapor analizi tamamlandı</h2>
  <p>Merhaba,</p>
  <p><strong>%s</strong> dosyasının analizi tamamlandı.</p>
  <table style="border-collapse: collapse; margin: 20px 0;">
    <tr><td style="padding: 6px 12px; color: #666;">Rapor tipi</td><td style="padding: 6px 12px;">%s</td></tr>
    <tr><td style="padding: 6px 12px; color: #666;">Toplam test</td><td style="padding: 6px 12px;">%d</td></tr>
    <tr><td style="padding: 6px 12px; color: #666;">Başarılı</td><td style="padding: 6px 12px; color: #16A34A;">%d</td></tr>
    <tr><td style="padding: 6px 12px; color: #666;">Başarısız</td><td style="padding: 6px 12px; color: %s;">%d</td></tr>
  </table>
  <p>Detaylar için panele giriş yapabilirsiniz.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Test Raporu Analiz Platformu</p>
</body>
</html>`, n.Filename, n.ReportType, n.TotalTests, n.PassedTests, statusColor, n.FailedTests)
}
