package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"readingnest/internal/models"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	debug     bool
}

// NewEmailService creates a new email service. With no from-address
// configured it runs disabled and skips all sends.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName string, debug bool) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		debug:     debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail sends a welcome email to new parents
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to ReadingNest!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h1>Welcome to ReadingNest!</h1>
	<p>Hi %s,</p>
	<p>Your account is ready. Add a child profile and start logging the books,
	words, and moments of your reading journey together.</p>
	<p>Happy reading!</p>
</body>
</html>
`, toName)

	textBody := fmt.Sprintf(`Hi %s,

Your ReadingNest account is ready. Add a child profile and start logging
the books, words, and moments of your reading journey together.

Happy reading!
`, toName)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendWeeklyDigest emails a parent a summary of one child's week
func (s *EmailService) SendWeeklyDigest(ctx context.Context, toEmail, toName, childName string, snapshot *models.StatsSnapshot) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): weekly digest to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("%s's reading week", childName)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h1>%s's reading week</h1>
	<p>Hi %s, here is what %s got up to this week:</p>
	<ul>
		<li><strong>%d</strong> new words (%d total)</li>
		<li><strong>%d</strong> books read (%d total)</li>
		<li><strong>%d</strong> moments recorded</li>
	</ul>
	<p>Keep it up!</p>
</body>
</html>
`, childName, toName, childName,
		snapshot.WordsThisWeek, snapshot.TotalWords,
		snapshot.BooksThisWeek, snapshot.TotalBooks,
		snapshot.MomentsThisWeek)

	textBody := fmt.Sprintf(`Hi %s, here is what %s got up to this week:

- %d new words (%d total)
- %d books read (%d total)
- %d moments recorded

Keep it up!
`, toName, childName,
		snapshot.WordsThisWeek, snapshot.TotalWords,
		snapshot.BooksThisWeek, snapshot.TotalBooks,
		snapshot.MomentsThisWeek)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email with HTML and plain text alternatives
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := s.fromEmail
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data: aws.String(subject),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data: aws.String(htmlBody),
					},
					Text: &types.Content{
						Data: aws.String(textBody),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug {
		log.Printf("[DEBUG] Email sent: subject=%q, to=%s", subject, toEmail)
	}

	return nil
}
