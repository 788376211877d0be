package orchestrators

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/yuin/goldmark"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/email"
	"github.com/Bhaskar125/gym-management-system/internal/domain/member"
	"github.com/Bhaskar125/gym-management-system/internal/domain/notification"
)

// NotificationStoreForSend defines the store interface needed by SendNotification.
type NotificationStoreForSend interface {
	Create(ctx context.Context, n notification.Notification) (string, error)
}

// MemberStoreForSend resolves notification targets to members.
type MemberStoreForSend interface {
	GetAll(ctx context.Context) ([]member.Member, error)
	GetByID(ctx context.Context, id string) (member.Member, bool, error)
}

// SendNotificationInput carries input for the broadcast orchestrator.
// Message is markdown; it is rendered to HTML for email delivery.
type SendNotificationInput struct {
	Message string
	Target  notification.Target
}

// SendNotificationDeps holds dependencies for SendNotification.
type SendNotificationDeps struct {
	NotificationStore NotificationStoreForSend
	MemberStore       MemberStoreForSend

	// Sender is optional; nil skips email delivery.
	Sender  email.Sender
	Subject string // email subject, defaults to "Gym notification"
}

// ExecuteSendNotification stores the notification record and emails the
// targeted members. The record is written first; a delivery failure is
// logged, not returned, so the in-app notification always survives.
// PRE: Message is non-empty; Target is "All" or a non-empty id list
// POST: Returns the notification id
func ExecuteSendNotification(ctx context.Context, input SendNotificationInput, deps SendNotificationDeps) (string, error) {
	n := notification.Notification{
		Message: input.Message,
		Target:  input.Target,
	}
	if err := n.Validate(); err != nil {
		return "", err
	}

	id, err := deps.NotificationStore.Create(ctx, n)
	if err != nil {
		return "", err
	}
	slog.Info("notification_event", "event", "notification_sent", "notification_id", id, "all", input.Target.All)

	if deps.Sender != nil {
		if err := broadcast(ctx, input, deps); err != nil {
			slog.Error("notification_event", "event", "email_broadcast_failed", "notification_id", id, "error", err)
		}
	}
	return id, nil
}

func broadcast(ctx context.Context, input SendNotificationInput, deps SendNotificationDeps) error {
	recipients, err := resolveRecipients(ctx, input.Target, deps.MemberStore)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(input.Message), &html); err != nil {
		return err
	}

	subject := deps.Subject
	if subject == "" {
		subject = "Gym notification"
	}

	reqs := make([]email.SendRequest, 0, len(recipients))
	for _, to := range recipients {
		reqs = append(reqs, email.SendRequest{
			To:      []string{to},
			Subject: subject,
			HTML:    html.String(),
		})
	}
	_, err = deps.Sender.SendBatch(ctx, reqs)
	return err
}

func resolveRecipients(ctx context.Context, target notification.Target, members MemberStoreForSend) ([]string, error) {
	var out []string
	if target.All {
		all, err := members.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		for _, m := range all {
			if m.Active && m.Email != "" {
				out = append(out, m.Email)
			}
		}
		return out, nil
	}
	for _, id := range target.MemberIDs {
		m, found, err := members.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if found && m.Email != "" {
			out = append(out, m.Email)
		}
	}
	return out, nil
}
