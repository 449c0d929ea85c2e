package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/m-mizutani/relmon/pkg/domain/model"
)

type mockFetcher struct {
	mu        sync.Mutex
	fetchFunc func(ctx context.Context, repo string) ([]*model.ReleaseEntry, error)
	calls     []string
}

func (m *mockFetcher) FetchReleases(ctx context.Context, repo string) ([]*model.ReleaseEntry, error) {
	m.mu.Lock()
	m.calls = append(m.calls, repo)
	m.mu.Unlock()
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, repo)
	}
	return nil, errors.New("mock not configured")
}

func (m *mockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

type mockNotifier struct {
	notifyFunc func(ctx context.Context, n *model.Notification) error
	sent       []*model.Notification
}

func (m *mockNotifier) Notify(ctx context.Context, n *model.Notification) error {
	m.sent = append(m.sent, n)
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, n)
	}
	return nil
}

type mockStore struct {
	getFunc  func(ctx context.Context, repo string) (string, bool, error)
	putFunc  func(ctx context.Context, repo, tag string) error
	listFunc func(ctx context.Context) (map[string]string, error)
}

func (m *mockStore) Get(ctx context.Context, repo string) (string, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, repo)
	}
	return "", false, nil
}

func (m *mockStore) Put(ctx context.Context, repo, tag string) error {
	if m.putFunc != nil {
		return m.putFunc(ctx, repo, tag)
	}
	return nil
}

func (m *mockStore) List(ctx context.Context) (map[string]string, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return map[string]string{}, nil
}

type mockResolver struct {
	resolveFunc func(ctx context.Context) (*model.AddressPair, error)
}

func (m *mockResolver) Resolve(ctx context.Context) (*model.AddressPair, error) {
	return m.resolveFunc(ctx)
}

type mockWriter struct {
	publishFunc func(ctx context.Context, content string) error
	published   []string
}

func (m *mockWriter) Publish(ctx context.Context, content string) error {
	m.published = append(m.published, content)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, content)
	}
	return nil
}

type mockDNS struct {
	setFunc func(ctx context.Context, domain string, pair *model.AddressPair) error
	domains []string
}

func (m *mockDNS) SetRecords(ctx context.Context, domain string, pair *model.AddressPair) error {
	m.domains = append(m.domains, domain)
	if m.setFunc != nil {
		return m.setFunc(ctx, domain, pair)
	}
	return nil
}
