package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/bidsync/internal/client/client"
	"github.com/dmitrijs2005/bidsync/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client for service tests. Pages are keyed
// by paging token.
type fakeClient struct {
	client.Client

	mu            sync.Mutex
	post          models.Post
	postErr       error
	pages         map[string]models.OptionPage
	optionsErr    error
	constants     models.AppConstants
	constantsErr  error
	constantCalls int
	constantsGate chan struct{}
	deleteErr     error
	deleted       []string
	pageTokens    []string
}

func (f *fakeClient) GetPost(ctx context.Context, postID string) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return models.Post{}, f.postErr
	}
	return f.post, nil
}

func (f *fakeClient) GetOptions(ctx context.Context, postID, pagingToken string, limit int) (models.OptionPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageTokens = append(f.pageTokens, pagingToken)
	if f.optionsErr != nil {
		return models.OptionPage{}, f.optionsErr
	}
	return f.pages[pagingToken], nil
}

func (f *fakeClient) GetAppConstants(ctx context.Context) (models.AppConstants, error) {
	f.mu.Lock()
	f.constantCalls++
	gate := f.constantsGate
	v, err := f.constants, f.constantsErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return models.AppConstants{}, ctx.Err()
		}
	}
	return v, err
}

func (f *fakeClient) DeleteOption(ctx context.Context, postID, optionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, postID+"/"+optionID)
	return nil
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.constantCalls
}

// fakeTokens records the token pair handed to the transport.
type fakeTokens struct {
	access, refresh string
}

func (f *fakeTokens) SetTokens(a, r string)    { f.access, f.refresh = a, r }
func (f *fakeTokens) Tokens() (string, string) { return f.access, f.refresh }
