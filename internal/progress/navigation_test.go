package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/learnpath/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unit(id, moduleID string, order int) models.Unit {
	return models.Unit{ID: id, ModuleID: moduleID, Title: "Unit " + id, SortOrder: order}
}

func content(id, unitID string, t models.ContentType, order, points int) models.ContentItem {
	return models.ContentItem{ID: id, UnitID: unitID, ContentType: t, Title: "Content " + id, SortOrder: order, Points: points}
}

// mixedUnitCatalog is module m1 with unit u1 = [A article, B quiz, C video], stored out of order
func mixedUnitCatalog() *fakeCatalog {
	catalog := newFakeCatalog()
	catalog.units["m1"] = []models.Unit{unit("u1", "m1", 1)}
	catalog.contents["u1"] = []models.ContentItem{
		content("C", "u1", models.ContentTypeVideo, 3, 0),
		content("A", "u1", models.ContentTypeArticle, 1, 0),
		content("B", "u1", models.ContentTypeQuiz, 2, 10),
	}
	return catalog
}

func TestContentPath(t *testing.T) {
	tests := []struct {
		name     string
		item     models.ContentItem
		expected string
	}{
		{name: "article", item: content("a1", "u1", models.ContentTypeArticle, 1, 0), expected: "/user/article/a1"},
		{name: "video", item: content("v1", "u1", models.ContentTypeVideo, 1, 0), expected: "/user/video/v1"},
		{name: "quiz", item: content("q1", "u1", models.ContentTypeQuiz, 1, 0), expected: "/user/quiz/q1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContentPath(tt.item))
		})
	}
	assert.Equal(t, "/user/modules/m1", ModulePath("m1"))
}

func TestSession_GoToNextContent_Ordering(t *testing.T) {
	catalog := mixedUnitCatalog()
	s, router := newTestSession(catalog, newFakeStore(), "m1", "u1")
	ctx := context.Background()

	// article -> quiz opens the modal instead of navigating
	require.NoError(t, s.GoToNextContent(ctx, "A", NavigateOptions{}))
	assert.Nil(t, router.Last())
	state := s.QuizModal().State()
	assert.True(t, state.Open)
	assert.Equal(t, QuizModalModeStart, state.Mode)
	assert.Equal(t, "B", state.ContentID)

	// quiz -> video navigates
	require.NoError(t, s.GoToNextContent(ctx, "B", NavigateOptions{}))
	nav := router.Last()
	require.NotNil(t, nav)
	assert.Equal(t, "/user/video/C", nav.Path)
	assert.Equal(t, "u1", nav.State.UnitID)

	// the unit list and content list were fetched once
	assert.Equal(t, 1, catalog.listUnitsCalls)
	assert.Equal(t, 1, catalog.listContentCall)
	assert.Equal(t, "u1", s.UnitContent().UnitID())
	assert.Equal(t, []string{"A", "B", "C"}, contentIDs(s.UnitContent().ContentList()))
}

func TestSession_GoToNextContent_LastItemInModule(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.units["m1"] = []models.Unit{unit("u1", "m1", 1)}
	catalog.contents["u1"] = []models.ContentItem{content("A", "u1", models.ContentTypeArticle, 1, 0)}
	s, router := newTestSession(catalog, newFakeStore(), "", "")

	err := s.GoToNextContent(context.Background(), "A", NavigateOptions{UnitID: "u1", ModuleID: "m1"})

	require.NoError(t, err)
	nav := router.Last()
	require.NotNil(t, nav)
	assert.Equal(t, "/user/modules/m1", nav.Path)
	assert.False(t, s.CompletionModal().State().Visible)
}

func TestSession_GoToNextContent_CrossUnit(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.units["m1"] = []models.Unit{unit("u2", "m1", 2), unit("u1", "m1", 1)}
	catalog.contents["u1"] = []models.ContentItem{content("A", "u1", models.ContentTypeArticle, 1, 0)}
	catalog.contents["u2"] = []models.ContentItem{content("B", "u2", models.ContentTypeArticle, 1, 0)}
	store := newFakeStore()
	s, router := newTestSession(catalog, store, "m1", "u1")

	err := s.GoToNextContent(context.Background(), "A", NavigateOptions{})

	require.NoError(t, err)
	assert.Nil(t, router.Last())
	assert.Equal(t, UnitCompletionState{Visible: true, NextUnitID: "u2", ModuleID: "m1"}, s.CompletionModal().State())
	require.Contains(t, store.units, "u1")
	assert.Equal(t, models.ProgressStatusCompleted, store.units["u1"].Status)
	assert.Equal(t, "completed", s.UnitStatus())
}

func TestSession_GoToNextContent_Degrades(t *testing.T) {
	tests := []struct {
		name      string
		moduleID  string
		unitID    string
		setup     func(c *fakeCatalog)
		contentID string
	}{
		{
			name:      "no unit or module",
			contentID: "A",
		},
		{
			name:      "no module",
			unitID:    "u1",
			contentID: "A",
		},
		{
			name:      "unit list fetch fails",
			moduleID:  "m1",
			unitID:    "u1",
			setup:     func(c *fakeCatalog) { c.listUnitsErr = errors.New("timeout") },
			contentID: "A",
		},
		{
			name:      "unit not in module",
			moduleID:  "m1",
			unitID:    "missing",
			contentID: "A",
		},
		{
			name:      "content list fetch fails",
			moduleID:  "m1",
			unitID:    "u1",
			setup:     func(c *fakeCatalog) { c.listContentErr = errors.New("timeout") },
			contentID: "A",
		},
		{
			name:      "content not in unit",
			moduleID:  "m1",
			unitID:    "u1",
			contentID: "missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := mixedUnitCatalog()
			if tt.setup != nil {
				tt.setup(catalog)
			}
			s, router := newTestSession(catalog, newFakeStore(), tt.moduleID, tt.unitID)

			err := s.GoToNextContent(context.Background(), tt.contentID, NavigateOptions{})

			assert.NoError(t, err)
			assert.Nil(t, router.Last())
			assert.False(t, s.QuizModal().State().Open)
			assert.False(t, s.CompletionModal().State().Visible)
		})
	}
}

func TestSession_GoToNextContent_FallsBackToLastVisitedUnit(t *testing.T) {
	catalog := mixedUnitCatalog()
	store := newFakeStore()
	store.modules["m1"] = &models.ModuleProgress{ID: "mp-1", ModuleID: "m1", Status: models.ProgressStatusInProgress, LastVisitedUnitID: "u1"}
	s, router := newTestSession(catalog, store, "", "")
	_, err := s.GetOrCreateModuleProgress(context.Background(), "m1")
	require.NoError(t, err)

	err = s.GoToNextContent(context.Background(), "B", NavigateOptions{})

	require.NoError(t, err)
	require.NotNil(t, router.Last())
	assert.Equal(t, "/user/video/C", router.Last().Path)
	assert.Equal(t, "u1", s.UnitID())
}

func TestSession_GoToNextContent_ReadsStoredLastVisitedUnit(t *testing.T) {
	tests := []struct {
		name         string
		stored       *models.ModuleProgress
		getModuleErr error
		expectedPath string
		expectedUnit string
	}{
		{
			name:         "stored pointer resolves the unit",
			stored:       &models.ModuleProgress{ID: "mp-1", ModuleID: "m1", Status: models.ProgressStatusInProgress, LastVisitedUnitID: "u1"},
			expectedPath: "/user/video/C",
			expectedUnit: "u1",
		},
		{
			name: "no module progress",
		},
		{
			name:         "store failure",
			stored:       &models.ModuleProgress{ID: "mp-1", ModuleID: "m1", LastVisitedUnitID: "u1"},
			getModuleErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			if tt.stored != nil {
				store.modules["m1"] = tt.stored
			}
			store.getModuleErr = tt.getModuleErr
			s, router := newTestSession(mixedUnitCatalog(), store, "m1", "")

			err := s.GoToNextContent(context.Background(), "B", NavigateOptions{})

			require.NoError(t, err)
			assert.Equal(t, tt.expectedUnit, s.UnitID())
			if tt.expectedPath == "" {
				assert.Nil(t, router.Last())
				return
			}
			require.NotNil(t, router.Last())
			assert.Equal(t, tt.expectedPath, router.Last().Path)
			assert.Equal(t, 0, store.createModuleCalls)
		})
	}
}

func TestSession_GoToNextContent_Canceled(t *testing.T) {
	s, router := newTestSession(mixedUnitCatalog(), newFakeStore(), "m1", "u1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.GoToNextContent(ctx, "B", NavigateOptions{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, router.Last())
}

func TestSession_IsNextContent(t *testing.T) {
	catalog := mixedUnitCatalog()
	s, router := newTestSession(catalog, newFakeStore(), "m1", "u1")
	ctx := context.Background()

	tests := []struct {
		contentID string
		expected  bool
	}{
		{contentID: "A", expected: true},
		{contentID: "B", expected: true},
		{contentID: "C", expected: false},
		{contentID: "missing", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.contentID, func(t *testing.T) {
			ok, err := s.IsNextContent(ctx, tt.contentID)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}

	assert.Equal(t, 1, catalog.listContentCall)
	assert.Nil(t, router.Last())
	assert.False(t, s.QuizModal().State().Open)
}

func TestSession_IsNextContent_NoUnit(t *testing.T) {
	catalog := mixedUnitCatalog()
	s, _ := newTestSession(catalog, newFakeStore(), "m1", "")

	ok, err := s.IsNextContent(context.Background(), "A")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, catalog.listContentCall)
}

func TestSession_GoToStart(t *testing.T) {
	t.Run("fetches first unit", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.units["m1"] = []models.Unit{unit("u2", "m1", 2), unit("u1", "m1", 1)}
		catalog.contents["u1"] = []models.ContentItem{
			content("a2", "u1", models.ContentTypeVideo, 2, 0),
			content("a1", "u1", models.ContentTypeArticle, 1, 0),
		}
		s, router := newTestSession(catalog, newFakeStore(), "m1", "")

		require.NoError(t, s.GoToStart(context.Background(), nil))

		require.NotNil(t, router.Last())
		assert.Equal(t, "/user/article/a1", router.Last().Path)
		assert.Equal(t, "u1", s.UnitID())
		assert.Equal(t, "u1", s.UnitContent().UnitID())
	})

	t.Run("preloaded quiz opens modal without fetching", func(t *testing.T) {
		catalog := newFakeCatalog()
		s, router := newTestSession(catalog, newFakeStore(), "m1", "")

		err := s.GoToStart(context.Background(), &StartData{
			UnitID:   "u1",
			Contents: []models.ContentItem{content("q1", "u1", models.ContentTypeQuiz, 1, 5)},
		})

		require.NoError(t, err)
		assert.Nil(t, router.Last())
		assert.Equal(t, "q1", s.QuizModal().State().ContentID)
		assert.Equal(t, 0, catalog.listUnitsCalls)
		assert.Equal(t, 0, catalog.listContentCall)
	})

	t.Run("module without units", func(t *testing.T) {
		s, _ := newTestSession(newFakeCatalog(), newFakeStore(), "m1", "")

		assert.ErrorIs(t, s.GoToStart(context.Background(), nil), ErrModuleHasNoUnits)
	})

	t.Run("first unit without content", func(t *testing.T) {
		catalog := newFakeCatalog()
		catalog.units["m1"] = []models.Unit{unit("u1", "m1", 1)}
		s, _ := newTestSession(catalog, newFakeStore(), "m1", "")

		assert.ErrorIs(t, s.GoToStart(context.Background(), nil), ErrUnitHasNoContent)
	})

	t.Run("no module", func(t *testing.T) {
		s, _ := newTestSession(newFakeCatalog(), newFakeStore(), "", "")

		assert.ErrorIs(t, s.GoToStart(context.Background(), nil), ErrNoActiveModule)
	})
}

func TestSession_ContinueFromLastVisited(t *testing.T) {
	newCatalog := func() *fakeCatalog {
		catalog := newFakeCatalog()
		catalog.units["m1"] = []models.Unit{unit("u1", "m1", 1), unit("u2", "m1", 2)}
		catalog.contents["u2"] = []models.ContentItem{
			content("c4", "u2", models.ContentTypeArticle, 1, 0),
			content("c5", "u2", models.ContentTypeVideo, 2, 0),
		}
		return catalog
	}
	lastVisited := func() *models.ModuleProgress {
		return &models.ModuleProgress{
			ID:                   "mp-1",
			ModuleID:             "m1",
			Status:               models.ProgressStatusInProgress,
			LastVisitedUnitID:    "u2",
			LastVisitedContentID: "c5",
		}
	}

	t.Run("reopens last visited content", func(t *testing.T) {
		catalog := newCatalog()
		store := newFakeStore()
		store.modules["m1"] = lastVisited()
		s, router := newTestSession(catalog, store, "m1", "")

		require.NoError(t, s.ContinueFromLastVisited(context.Background()))

		require.NotNil(t, router.Last())
		assert.Equal(t, "/user/video/c5", router.Last().Path)
		assert.Equal(t, "u2", router.Last().State.UnitID)
		assert.Equal(t, "u2", s.UnitID())
		assert.Equal(t, "in_progress", s.ModuleStatus())
	})

	t.Run("stale content", func(t *testing.T) {
		catalog := newCatalog()
		catalog.contents["u2"] = catalog.contents["u2"][:1]
		store := newFakeStore()
		store.modules["m1"] = lastVisited()
		s, router := newTestSession(catalog, store, "m1", "")

		err := s.ContinueFromLastVisited(context.Background())

		assert.ErrorIs(t, err, ErrContentNotFound)
		assert.Nil(t, router.Last())
	})

	t.Run("no progress", func(t *testing.T) {
		s, router := newTestSession(newCatalog(), newFakeStore(), "m1", "")

		require.NoError(t, s.ContinueFromLastVisited(context.Background()))
		assert.Nil(t, router.Last())
		assert.Equal(t, "not_started", s.ModuleStatus())
	})

	t.Run("missing pointers", func(t *testing.T) {
		store := newFakeStore()
		mp := lastVisited()
		mp.LastVisitedContentID = ""
		store.modules["m1"] = mp
		s, router := newTestSession(newCatalog(), store, "m1", "")

		require.NoError(t, s.ContinueFromLastVisited(context.Background()))
		assert.Nil(t, router.Last())
	})

	t.Run("lookup failure", func(t *testing.T) {
		store := newFakeStore()
		store.getModuleErr = errors.New("connection reset")
		s, _ := newTestSession(newCatalog(), store, "m1", "")

		assert.Error(t, s.ContinueFromLastVisited(context.Background()))
	})
}

func TestSession_GoToFirstContent(t *testing.T) {
	catalog := mixedUnitCatalog()
	s, router := newTestSession(catalog, newFakeStore(), "m1", "u1")

	require.NoError(t, s.GoToFirstContent(context.Background()))
	require.NotNil(t, router.Last())
	assert.Equal(t, "/user/article/A", router.Last().Path)

	empty, _ := newTestSession(newFakeCatalog(), newFakeStore(), "m1", "u9")
	assert.ErrorIs(t, empty.GoToFirstContent(context.Background()), ErrUnitHasNoContent)

	noUnit, _ := newTestSession(catalog, newFakeStore(), "m1", "")
	assert.ErrorIs(t, noUnit.GoToFirstContent(context.Background()), ErrNoActiveUnit)
}

func TestSession_InitFirstUnitAndContentProgress(t *testing.T) {
	catalog := mixedUnitCatalog()
	store := newFakeStore()
	s, router := newTestSession(catalog, store, "m1", "")
	ctx := context.Background()

	data, err := s.InitFirstUnitAndContentProgress(ctx)
	require.NoError(t, err)

	assert.Equal(t, "u1", data.UnitID)
	assert.Equal(t, []string{"A", "B", "C"}, contentIDs(data.Contents))
	assert.Contains(t, store.units, "u1")
	assert.Contains(t, store.content, "A")

	// a second start hits conflicts and still succeeds
	_, err = s.InitFirstUnitAndContentProgress(ctx)
	require.NoError(t, err)
	assert.Len(t, store.units, 1)
	assert.Len(t, store.content, 1)

	listed := catalog.listContentCall
	require.NoError(t, s.GoToStart(ctx, data))
	assert.Equal(t, listed, catalog.listContentCall)
	require.NotNil(t, router.Last())
	assert.Equal(t, "/user/article/A", router.Last().Path)
}

func TestSession_InitFirstUnitAndContentProgress_CreateFailureIsLogged(t *testing.T) {
	store := newFakeStore()
	store.createUnitErr = errors.New("boom")
	store.createContentErr = errors.New("boom")
	s, _ := newTestSession(mixedUnitCatalog(), store, "m1", "")

	data, err := s.InitFirstUnitAndContentProgress(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "u1", data.UnitID)
}

func contentIDs(items []models.ContentItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
