package commands

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	cliconfig "plugin-browser/cmd/browsectl/internal/config"
	"plugin-browser/domain"
	"plugin-browser/mocks"
)

func newAdminTestCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cfg = &cliconfig.Config{}
	noColor = true

	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.Flags().Bool("json", false, "")
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetContext(context.Background())
	return cmd, buf
}

func TestListCache_RendersEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockCacheAdminPort(ctrl)
	admin.EXPECT().ListCache(gomock.Any()).Return([]domain.CacheEntrySummary{
		{Key: "plugin_browser_abc", Items: 12, Results: 900, TTL: 42 * time.Minute},
	}, nil)

	cmd, buf := newAdminTestCommand(t)
	require.NoError(t, listCache(cmd, admin))

	assert.Contains(t, buf.String(), "plugin_browser_abc")
	assert.Contains(t, buf.String(), "42m0s")
	assert.Contains(t, buf.String(), "1 entries")
}

func TestClearCache_UnauthorizedHint(t *testing.T) {
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockCacheAdminPort(ctrl)
	admin.EXPECT().ClearCache(gomock.Any()).Return(0, &domain.ExternalHTTPError{
		StatusCode: http.StatusUnauthorized,
		Status:     "401 Unauthorized",
		URL:        "http://proxy/admin/cache/clear",
	})

	cmd, _ := newAdminTestCommand(t)
	err := clearCache(cmd, admin)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin token rejected")
	var httpErr *domain.ExternalHTTPError
	assert.True(t, errors.As(err, &httpErr))
}

func TestClearCache_OtherErrorsPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	admin := mocks.NewMockCacheAdminPort(ctrl)
	admin.EXPECT().ClearCache(gomock.Any()).Return(0, domain.ErrEndpointUnreachable)

	cmd, _ := newAdminTestCommand(t)
	err := clearCache(cmd, admin)

	assert.ErrorIs(t, err, domain.ErrEndpointUnreachable)
	assert.NotContains(t, err.Error(), "admin token rejected")
}
