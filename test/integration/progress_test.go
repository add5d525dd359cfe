//go:build integration

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	authMiddleware "github.com/learnpath/backend/internal/auth/middleware"
	"github.com/learnpath/backend/internal/handlers"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progress"
	"github.com/learnpath/backend/internal/repositories"
	"github.com/learnpath/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testUserID = 101

var (
	testDB     *sql.DB
	testRouter chi.Router
	testLogger *zap.Logger
)

// seedTestData inserts a module with two units into the catalog
func seedTestData(t *testing.T, db *sql.DB) {
	t.Helper()
	cleanupTestData(t, db)

	statements := []string{
		`INSERT INTO modules (id, title, description, topic, total_points) VALUES
			('m1', 'Go basics', 'Syntax and tooling', 'go', 15)`,
		`INSERT INTO units (id, module_id, title, sort_order) VALUES
			('u2', 'm1', 'Practice', 2),
			('u1', 'm1', 'Basics', 1)`,
		`INSERT INTO unit_contents (id, unit_id, content_type, title, sort_order, points) VALUES
			('c2', 'u1', 'quiz', 'Basics quiz', 2, 10),
			('c1', 'u1', 'article', 'Hello world', 1, 0),
			('c3', 'u2', 'video', 'Walkthrough', 1, 5)`,
	}
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "Failed to seed test data")
	}
}

// cleanupTestData removes all test data
func cleanupTestData(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, table := range []string{"content_progress", "unit_progress", "module_progress", "unit_contents", "units", "modules"} {
		_, err := db.Exec("DELETE FROM " + table)
		require.NoError(t, err, "Failed to cleanup test data")
	}
}

// asLearner authenticates every request as the test learner
func asLearner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(authMiddleware.WithUser(r.Context(), testUserID, "")))
	})
}

// setupTestRouter creates a test router with all learner handlers
func setupTestRouter(db *sql.DB, logger *zap.Logger) chi.Router {
	catalog := repositories.NewCatalogRepository(db)
	svc := services.NewSessionService(services.NewMySQLBackend(db, catalog), nil, logger)

	r := chi.NewRouter()
	handlers.NewProgressHandler(svc, logger).RegisterRoutes(r, asLearner)
	handlers.NewRecordHandler(svc, catalog, logger).RegisterRoutes(r, asLearner)

	return r
}

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	// Initialize logger
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Setup test database
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		// Default test database connection
		dsn = "root:password@tcp(localhost:3306)/learnpath_test?parseTime=true&charset=utf8mb4&multiStatements=true"
	}

	testDB, err = sql.Open("mysql", dsn)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}

	// Test connection
	if err = testDB.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to ping test database: %v", err))
	}

	// Setup test schema
	if err := migrateTestSchema(testDB); err != nil {
		panic(fmt.Sprintf("Failed to migrate test database: %v", err))
	}

	// Setup test router
	testRouter = setupTestRouter(testDB, testLogger)

	// Run tests
	code := m.Run()

	// Cleanup
	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

// migrateTestSchema applies the service migrations to the test database
func migrateTestSchema(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "progress_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func serve(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func TestIntegration_StartModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	seedTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	w := serve(t, http.MethodPost, "/modules/m1/start", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out progress.Outcome
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	require.NotNil(t, out.Navigation)
	assert.Equal(t, "/user/article/c1", out.Navigation.Path)

	store := repositories.NewProgressRepository(testDB, testUserID)
	mp, err := store.GetModuleProgress(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, models.ProgressStatusInProgress, mp.Status)

	_, err = store.GetUnitProgress(context.Background(), "u1")
	assert.NoError(t, err)
	_, err = store.GetContentProgress(context.Background(), "c1")
	assert.NoError(t, err)

	// starting twice keeps the existing records
	w = serve(t, http.MethodPost, "/modules/m1/start", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestIntegration_CompleteModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	seedTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	steps := []struct {
		contentID string
		unitID    string
	}{
		{"c1", "u1"},
		{"c2", "u1"},
		{"c2", "u1"},
		{"c3", "u2"},
	}
	for _, step := range steps {
		w := serve(t, http.MethodPost, "/contents/"+step.contentID+"/complete",
			map[string]string{"unitId": step.unitID, "moduleId": "m1"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := serve(t, http.MethodGet, "/modules/m1/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary models.ModuleProgressSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))

	assert.Equal(t, models.ProgressStatusCompleted, summary.Status)
	assert.Equal(t, 15, summary.EarnedPoints)
	require.Len(t, summary.Units, 2)
	for _, unit := range summary.Units {
		assert.Equal(t, models.ProgressStatusCompleted, unit.Status, unit.UnitID)
	}
}

func TestIntegration_RepositoryLayer(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}

	seedTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	ctx := context.Background()
	catalog := repositories.NewCatalogRepository(testDB)

	t.Run("units are ordered", func(t *testing.T) {
		units, err := catalog.ListUnits(ctx, "m1")
		require.NoError(t, err)
		require.Len(t, units, 2)
		assert.Equal(t, "u1", units[0].ID)
	})

	t.Run("module lists its units", func(t *testing.T) {
		module, err := catalog.GetModule(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1", "u2"}, module.UnitIDs)
	})

	t.Run("duplicate progress conflicts", func(t *testing.T) {
		store := repositories.NewProgressRepository(testDB, testUserID)
		_, err := store.CreateModuleProgress(ctx, models.CreateModuleProgressRequest{ModuleID: "m1"})
		require.NoError(t, err)

		_, err = store.CreateModuleProgress(ctx, models.CreateModuleProgressRequest{ModuleID: "m1"})
		assert.True(t, models.IsConflict(err))
	})

	t.Run("progress is scoped per learner", func(t *testing.T) {
		other := repositories.NewProgressRepository(testDB, testUserID+1)
		_, err := other.GetModuleProgress(ctx, "m1")
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("sweep finds in progress modules", func(t *testing.T) {
		sweep := repositories.NewSweepRepository(testDB)
		refs, err := sweep.ListInProgressModules(ctx, nil, 10)
		require.NoError(t, err)
		require.NotEmpty(t, refs)
		var found bool
		for _, ref := range refs {
			found = found || (ref.UserID == testUserID && ref.ModuleID == "m1")
		}
		assert.True(t, found)

		// nothing lies past the last row
		cursor := refs[len(refs)-1].Cursor()
		rest, err := sweep.ListInProgressModules(ctx, &cursor, 10)
		require.NoError(t, err)
		assert.Empty(t, rest)
	})
}
