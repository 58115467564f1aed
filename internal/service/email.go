package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func (s *emailService) SendRentalRequested(ctx context.Context, email, name, car string, startDate, endDate string, amountCents int64) error {
	body := fmt.Sprintf("Hello %s,\n\nWe received your rental request for %s from %s to %s.\nEstimated total: %s.\n\nYou will be notified once the booking is confirmed.",
		name, car, startDate, endDate, formatCents(amountCents))
	return s.send(email, name, "Rental request received", body)
}

func (s *emailService) SendRentalConfirmed(ctx context.Context, email, name, car string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s has been confirmed. Please pick up the car on the start date.", name, car)
	return s.send(email, name, "Rental confirmed", body)
}

func (s *emailService) SendRentalActivated(ctx context.Context, email, name, car string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s has started. Drive safely!", name, car)
	return s.send(email, name, "Rental started", body)
}

func (s *emailService) SendRentalCompleted(ctx context.Context, email, name, car string, amountCents int64) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s is complete. Total charged: %s.\n\nThank you for renting with us.", name, car, formatCents(amountCents))
	return s.send(email, name, "Rental completed", body)
}

func (s *emailService) SendRentalCancelled(ctx context.Context, email, name, car, reason string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s was cancelled.", name, car)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(email, name, "Rental cancelled", body)
}

func (s *emailService) SendRentalExtended(ctx context.Context, email, name, car string, newEndDate string, amountCents int64) error {
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s was extended until %s. Updated total: %s.", name, car, newEndDate, formatCents(amountCents))
	return s.send(email, name, "Rental extended", body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, name, car string, endDate string) error {
	body := fmt.Sprintf("Hello %s,\n\nA reminder that your rental of %s ends on %s. Please return the car on time or request an extension.", name, car, endDate)
	return s.send(email, name, "Return reminder", body)
}
