// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

// Package email delivers club mail over SMTP through a background queue.
package email

import (
	"fmt"
	"strings"

	"codeberg.org/lesgardiens/boardclub/internal/config"
	"github.com/wneessen/go-mail"
)

// Service sends mail via SMTP using go-mail.
type Service struct {
	cfg     *config.SMTPConfig
	baseURL string
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig, baseURL string) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{
		cfg:     cfg,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Verification builds the signup verification message for a user.
func Verification(baseURL string, to string, userID int64, token string) Message {
	verifyURL := fmt.Sprintf("%s/v1/verifyEmail?userId=%d&token=%s", strings.TrimSuffix(baseURL, "/"), userID, token)

	return Message{
		To:      to,
		Subject: "Les Gardiens de la Légende – validez votre adresse email",
		Body: "Bienvenue chez les Gardiens de la Légende !\n\n" +
			"Merci de valider votre adresse email en cliquant sur le lien suivant :\n" +
			verifyURL + "\n\n" +
			"Le lien est valable 24 heures.\n",
	}
}

// ProfileChanged builds the notification sent after a profile update.
func ProfileChanged(to, pseudo string) Message {
	return Message{
		To:      to,
		Subject: "Les Gardiens de la Légende – votre profil a été modifié",
		Body: "Bonjour " + pseudo + ",\n\n" +
			"Les informations de votre profil viennent d'être modifiées.\n" +
			"Si vous n'êtes pas à l'origine de cette modification, contactez un administrateur du club.\n",
	}
}

// Send delivers a single message over SMTP.
func (s *Service) Send(m Message) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	// Implicit TLS (SSL) for port 465, STARTTLS for others
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
