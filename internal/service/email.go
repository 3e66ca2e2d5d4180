package service

import (
	"context"
	"fmt"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/logger"
	"hess-portal-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender is the raw delivery client. It returns the provider's raw
// response body so the delivery log can keep it.
type EmailSender interface {
	Send(ctx context.Context, to, subject, plainText, htmlContent string) (string, error)
}

type sendGridSender struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridSender(apiKey, fromEmail, fromName string) EmailSender {
	return &sendGridSender{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (s *sendGridSender) Send(ctx context.Context, to, subject, plainText, htmlContent string) (string, error) {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)

	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	response, err := client.SendWithContext(ctx, message)
	logger.ExternalServiceResult("sendgrid", "send", err, "to", to)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return response.Body, fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return response.Body, nil
}

type emailService struct {
	sender   EmailSender
	logRepo  repository.EmailLogRepository
	validate *validator.Validate
}

func NewEmailService(sender EmailSender, logRepo repository.EmailLogRepository) EmailService {
	return &emailService{
		sender:   sender,
		logRepo:  logRepo,
		validate: validator.New(),
	}
}

func (s *emailService) Send(ctx context.Context, emailType, recipient string, data map[string]string) error {
	if err := s.validate.Var(recipient, "required,email"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, recipient)
	}

	subject, text, htmlBody, err := renderTemplate(emailType, data)
	if err != nil {
		return err
	}

	response, sendErr := s.sender.Send(ctx, recipient, subject, text, htmlBody)

	entry := &domain.EmailLog{
		EmailType: emailType,
		Recipient: recipient,
		Subject:   subject,
		Success:   sendErr == nil,
		Response:  response,
	}
	if sendErr != nil {
		entry.Response = sendErr.Error()
	}
	if logErr := s.logRepo.Insert(ctx, entry); logErr != nil {
		logger.Error("Failed to record email delivery attempt", "email_type", emailType, "recipient", recipient, "error", logErr)
	}

	return sendErr
}
