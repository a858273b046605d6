package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	portssvc "github.com/alqattan-optics/optical_pos_app/internal/core/ports/services"
	"github.com/alqattan-optics/optical_pos_app/internal/core/services"
)

type ReconcilerTestSuite struct {
	suite.Suite
	reconciler *services.Reconciler
}

func (suite *ReconcilerTestSuite) SetupTest() {
	suite.reconciler = services.NewReconciler(5 * time.Second)
}

func (suite *ReconcilerTestSuite) TearDownTest() {
	suite.reconciler.Close()
}

func (suite *ReconcilerTestSuite) awaitSignal(ch <-chan portssvc.RefreshSignal) portssvc.RefreshSignal {
	select {
	case sig := <-ch:
		return sig
	case <-time.After(2 * time.Second):
		suite.FailNow("timed out waiting for refresh signal")
		return portssvc.RefreshSignal{}
	}
}

func (suite *ReconcilerTestSuite) TestBumpIsMonotonic() {
	v0 := suite.reconciler.Version()
	suite.reconciler.Bump(false)
	v1 := suite.reconciler.Version()
	suite.reconciler.Bump(false)
	v2 := suite.reconciler.Version()

	suite.Greater(v1, v0)
	suite.Greater(v2, v1)
}

func (suite *ReconcilerTestSuite) TestSubscriberReceivesSignal() {
	ch, cancel := suite.reconciler.Subscribe()
	defer cancel()

	suite.reconciler.Bump(true)

	sig := suite.awaitSignal(ch)
	suite.Equal(suite.reconciler.Version(), sig.Version)
	suite.True(sig.SuggestArchivedView)
}

func (suite *ReconcilerTestSuite) TestSignalsCoalesce() {
	ch, cancel := suite.reconciler.Subscribe()
	defer cancel()

	// A slow subscriber must not block the bumper; intermediate versions
	// collapse into the latest one.
	for i := 0; i < 10; i++ {
		suite.reconciler.Bump(false)
	}

	sig := suite.awaitSignal(ch)
	suite.Equal(suite.reconciler.Version(), sig.Version)

	select {
	case extra, ok := <-ch:
		if ok {
			suite.Failf("unexpected extra signal", "version %d", extra.Version)
		}
	default:
	}
}

func (suite *ReconcilerTestSuite) TestCancelledSubscriberStopsReceiving() {
	ch, cancel := suite.reconciler.Subscribe()
	cancel()
	cancel() // safe to call twice

	suite.reconciler.Bump(false)

	select {
	case _, ok := <-ch:
		suite.False(ok)
	default:
	}
}

func (suite *ReconcilerTestSuite) TestScheduleBumpFiresLater() {
	ch, cancel := suite.reconciler.Subscribe()
	defer cancel()
	before := suite.reconciler.Version()

	suite.reconciler.ScheduleBump(5 * time.Millisecond)

	sig := suite.awaitSignal(ch)
	suite.Greater(sig.Version, before)
	suite.False(sig.SuggestArchivedView)
}

func (suite *ReconcilerTestSuite) TestNoteLastEditedDeduplicates() {
	edited := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	suite.reconciler.NoteLastEdited(edited)
	v1 := suite.reconciler.Version()
	suite.reconciler.NoteLastEdited(edited)
	v2 := suite.reconciler.Version()
	suite.reconciler.NoteLastEdited(edited.Add(time.Minute))
	v3 := suite.reconciler.Version()

	suite.Equal(v1, v2)
	suite.Greater(v3, v2)
}

func (suite *ReconcilerTestSuite) TestNoteLastEditedIgnoresZeroTime() {
	before := suite.reconciler.Version()
	suite.reconciler.NoteLastEdited(time.Time{})
	suite.Equal(before, suite.reconciler.Version())
}

func (suite *ReconcilerTestSuite) TestNoteArchivedRecentSuggestsArchivedView() {
	ch, cancel := suite.reconciler.Subscribe()
	defer cancel()

	suite.reconciler.NoteArchived(time.Now())

	sig := suite.awaitSignal(ch)
	suite.True(sig.SuggestArchivedView)
}

func (suite *ReconcilerTestSuite) TestNoteArchivedStaleDoesNotSuggest() {
	ch, cancel := suite.reconciler.Subscribe()
	defer cancel()

	suite.reconciler.NoteArchived(time.Now().Add(-time.Minute))

	sig := suite.awaitSignal(ch)
	suite.False(sig.SuggestArchivedView)
}

func (suite *ReconcilerTestSuite) TestCloseStopsEverything() {
	ch, cancel := suite.reconciler.Subscribe()
	defer cancel()
	suite.reconciler.ScheduleBump(time.Hour)

	suite.reconciler.Close()
	suite.reconciler.Close() // idempotent

	_, ok := <-ch
	suite.False(ok)

	before := suite.reconciler.Version()
	suite.reconciler.Bump(false)
	suite.Equal(before, suite.reconciler.Version())
}

func TestReconcilerTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerTestSuite))
}
