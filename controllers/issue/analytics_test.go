package issueControllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civicvoice/models"
	"civicvoice/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func castVotes(t *testing.T, db *gorm.DB, issueID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&models.Vote{IssueID: issueID}).Error)
	}
}

func rankedIDs(section interface{}) []string {
	rows := section.([]interface{})
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.(map[string]interface{})["id"].(string))
	}
	return ids
}

func TestGetAnalytics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t)

	popular := seedIssue(t, db, "Collapsed bridge railing", models.SeverityHigh, models.StatusResolved, 3*24*time.Hour)
	oldTie := seedIssue(t, db, "Blocked drain", models.SeverityMedium, models.StatusSubmitted, 10*24*time.Hour)
	newTie := seedIssue(t, db, "Flickering streetlight", models.SeverityMedium, models.StatusSubmitted, 2*24*time.Hour)

	castVotes(t, db, popular.ID, 3)
	castVotes(t, db, oldTie.ID, 2)
	castVotes(t, db, newTie.ID, 2)

	req := httptest.NewRequest(http.MethodGet, "/api/issues/analytics", nil)
	req.Header.Set("Authorization", adminHeader(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := testutil.DecodeBody(t, resp)

	t.Run("summary", func(t *testing.T) {
		summary := body["summary"].(map[string]interface{})
		assert.Equal(t, float64(3), summary["total"])
		assert.Equal(t, float64(2), summary["open"])
		assert.Equal(t, float64(1), summary["resolved"])
		assert.InDelta(t, 1.0/3.0, summary["resolutionRate"].(float64), 1e-9)
	})

	t.Run("category breakdown", func(t *testing.T) {
		byCategory := body["byCategory"].([]interface{})
		require.Len(t, byCategory, 1)
		row := byCategory[0].(map[string]interface{})
		assert.Equal(t, "roads", row["issueType"])
		assert.Equal(t, float64(3), row["count"])
	})

	t.Run("resolution trend has twelve buckets", func(t *testing.T) {
		trend := body["resolutionTrend"].([]interface{})
		require.Len(t, trend, 12)
		var total float64
		for _, bucket := range trend {
			total += bucket.(map[string]interface{})["resolved"].(float64)
		}
		assert.Equal(t, float64(1), total)
	})

	t.Run("trending ranks by recent votes, newest first on ties", func(t *testing.T) {
		assert.Equal(t, []string{popular.ID, newTie.ID, oldTie.ID}, rankedIDs(body["trending"]))
	})

	t.Run("best work is resolved issues only", func(t *testing.T) {
		assert.Equal(t, []string{popular.ID}, rankedIDs(body["bestWork"]))
	})

	t.Run("worst work is unresolved, oldest first on ties", func(t *testing.T) {
		assert.Equal(t, []string{oldTie.ID, newTie.ID}, rankedIDs(body["worstWork"]))
	})

	t.Run("ignored lists unresolved issues open 7+ days", func(t *testing.T) {
		ignored := body["ignored"].([]interface{})
		require.Len(t, ignored, 1)
		assert.Equal(t, oldTie.ID, ignored[0].(map[string]interface{})["id"])
	})
}

func TestGetAnalyticsRequiresAdmin(t *testing.T) {
	testutil.SetupTestDB(t)
	app := testutil.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/issues/analytics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/issues/analytics", nil)
	req.Header.Set("Authorization", userHeader(t))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
