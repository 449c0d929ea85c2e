package github_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	ghctrl "github.com/m-mizutani/relmon/pkg/controller/github"
	"github.com/m-mizutani/relmon/pkg/domain/model"
)

type mockWatchUC struct {
	triggerFunc func(ctx context.Context, repo string) bool
	triggered   []string
}

func (m *mockWatchUC) Trigger(ctx context.Context, repo string) bool {
	m.triggered = append(m.triggered, repo)
	if m.triggerFunc != nil {
		return m.triggerFunc(ctx, repo)
	}
	return true
}

func (m *mockWatchUC) Status() model.WatchStatus { return model.WatchStatus{} }

func (m *mockWatchUC) Versions(context.Context) (*model.VersionsResponse, error) {
	return &model.VersionsResponse{}, nil
}

func TestEventProcessor_ProcessEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     *model.WebhookEvent
		triggered []string
	}{
		{
			name: "published release triggers check",
			event: &model.WebhookEvent{
				ID:         "delivery-1",
				Type:       model.EventTypeRelease,
				Action:     "published",
				Repository: "owner/repo",
				TagName:    "v1.0.0",
				ReceivedAt: time.Now(),
			},
			triggered: []string{"owner/repo"},
		},
		{
			name: "prereleased triggers check",
			event: &model.WebhookEvent{
				Type:       model.EventTypeRelease,
				Action:     "prereleased",
				Repository: "owner/repo",
			},
			triggered: []string{"owner/repo"},
		},
		{
			name: "deleted release is ignored",
			event: &model.WebhookEvent{
				Type:       model.EventTypeRelease,
				Action:     "deleted",
				Repository: "owner/repo",
			},
		},
		{
			name: "ping is ignored",
			event: &model.WebhookEvent{
				Type:       model.EventTypePing,
				Repository: "owner/repo",
			},
		},
		{
			name: "missing repository is ignored",
			event: &model.WebhookEvent{
				Type:   model.EventTypeRelease,
				Action: "published",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockWatchUC{}
			p := ghctrl.NewEventProcessor(uc)

			gt.NoError(t, p.ProcessEvent(context.Background(), tt.event))
			gt.A(t, uc.triggered).Length(len(tt.triggered))
			for i, repo := range tt.triggered {
				gt.V(t, uc.triggered[i]).Equal(repo)
			}
		})
	}
}

func TestEventProcessor_UnwatchedRepository(t *testing.T) {
	uc := &mockWatchUC{
		triggerFunc: func(context.Context, string) bool { return false },
	}
	p := ghctrl.NewEventProcessor(uc)

	err := p.ProcessEvent(context.Background(), &model.WebhookEvent{
		Type:       model.EventTypeRelease,
		Action:     "released",
		Repository: "someone/else",
	})
	gt.NoError(t, err)
	gt.A(t, uc.triggered).Length(1)
}
