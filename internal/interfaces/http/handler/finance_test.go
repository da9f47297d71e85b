package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appfinance "github.com/festivo/backend/internal/application/finance"
	"github.com/festivo/backend/internal/domain/identity"
	infraauth "github.com/festivo/backend/internal/infrastructure/auth"
	"github.com/festivo/backend/internal/infrastructure/persistence"
	"github.com/festivo/backend/internal/infrastructure/persistence/models"
	"github.com/festivo/backend/internal/interfaces/http/middleware"
)

func setupFinanceRouter(t *testing.T, role identity.Role, tenantID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FinanceEntryModel{}))

	service := appfinance.NewEntryService(persistence.NewGormFinanceEntryRepository(db), zap.NewNop())
	h := NewFinanceHandler(service)

	engine := gin.New()
	// stand-in for JWTAuth: inject a validated principal
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &infraauth.Claims{
			TenantID: tenantID.String(),
			UserID:   uuid.New().String(),
			Email:    "test@festivo.no",
			Role:     string(role),
		})
		c.Next()
	})

	api := engine.Group("/api/v1")
	h.RegisterRoutes(api, middleware.RequireFinanceEditor())
	return engine
}

func TestFinanceHandlerCreateAndList(t *testing.T) {
	tenantID := uuid.New()
	router := setupFinanceRouter(t, identity.RoleBoard, tenantID)

	body := `{
		"kind": "expense",
		"category": "Artister",
		"description": "Hovedartist fredag",
		"amount_ex_vat": "250000",
		"is_budget": true
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/finance/entries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			ID       string `json:"id"`
			Kind     string `json:"kind"`
			Category string `json:"category"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "expense", created.Data.Kind)
	assert.Equal(t, "Artister", created.Data.Category)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/finance/entries?kind=expense&is_budget=true", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Data, 1)
}

func TestFinanceHandlerRejectsInvalidKind(t *testing.T) {
	router := setupFinanceRouter(t, identity.RoleAdmin, uuid.New())

	body := `{"kind": "loan", "category": "Bank", "amount_ex_vat": "1000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/finance/entries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinanceHandlerRoleEnforcement(t *testing.T) {
	router := setupFinanceRouter(t, identity.RoleCrew, uuid.New())

	body := `{"kind": "income", "category": "Billetter", "amount_ex_vat": "1000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/finance/entries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	// crew can still read
	req = httptest.NewRequest(http.MethodGet, "/api/v1/finance/entries", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFinanceHandlerGetMissingEntry(t *testing.T) {
	router := setupFinanceRouter(t, identity.RoleBoard, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/finance/entries/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
