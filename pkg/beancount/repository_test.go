package beancount

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/pathutil"
)

func newTestRepository(t *testing.T) *FileSystemRepository {
	t.Helper()

	repo := NewFileSystemRepository(pathutil.New(pathutil.Config{DataRoot: t.TempDir()}))
	repo.now = func() time.Time {
		return time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	}
	return repo
}

func TestFileSystemRepository(t *testing.T) {
	repo := newTestRepository(t)

	assert.False(t, repo.HasMonth("2025-01"))

	content, err := repo.ReadMonth("2025-01")
	require.NoError(t, err)
	assert.Empty(t, content)

	require.NoError(t, repo.AppendEntry("2025-01", "2025-01-20 * \"first\""))
	require.NoError(t, repo.AppendEntry("2025-01", "2025-01-21 * \"second\"\n"))
	require.NoError(t, repo.AppendEntry("2025-03", "2025-03-02 * \"third\""))

	assert.True(t, repo.HasMonth("2025-01"))

	content, err = repo.ReadMonth("2025-01")
	require.NoError(t, err)
	assert.Equal(t,
		"; Sales ledger for 2025-01\n; Generated at 2025-02-01T09:00:00Z\n\n"+
			"2025-01-20 * \"first\"\n\n"+
			"2025-01-21 * \"second\"\n\n",
		content)
	assert.Equal(t, 2, CountEntries(content))

	months, err := repo.Months("2025")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01", "2025-03"}, months)

	months, err = repo.Months("2019")
	require.NoError(t, err)
	assert.Empty(t, months)
}

func TestFileSystemRepositoryRejectsBadMonth(t *testing.T) {
	repo := newTestRepository(t)

	assert.Error(t, repo.AppendEntry("2025", "x"))
	assert.False(t, repo.HasMonth("2025"))

	_, err := repo.ReadMonth("25-1")
	assert.Error(t, err)
}

func TestCountEntries(t *testing.T) {
	content := strings.Join([]string{
		"; Sales ledger for 2025-01",
		"",
		"2025-01-20 * \"2 x Espresso Shot\" #sale-1",
		"  id: \"1\"",
		"  Assets:Current:Cash     120.00 THB",
		"",
		"2025-01-21 * \"1 x Croissant\" #sale-2",
	}, "\n")

	assert.Equal(t, 2, CountEntries(content))
	assert.Equal(t, 0, CountEntries(""))
}
