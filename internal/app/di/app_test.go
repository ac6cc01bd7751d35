package di

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Dalfonso062004/gestion-productos/internal/feature/auth/domain/entity"
	productentity "github.com/Dalfonso062004/gestion-productos/internal/feature/products/domain/entity"
	platformdb "github.com/Dalfonso062004/gestion-productos/internal/platform/db"
	jwtmw "github.com/Dalfonso062004/gestion-productos/internal/platform/jwt"
)

const testSecret = "integration-secret"

// testApp はエンドツーエンドテスト用のアプリケーションです。
type testApp struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newTestApp(t *testing.T, rdb *redis.Client) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), platformdb.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, platformdb.Migrate(db))

	engine, err := NewEngine(Deps{
		DB:       db,
		Redis:    rdb,
		JWT:      jwtmw.Config{Secret: testSecret, TTL: time.Hour},
		CacheTTL: time.Minute,
	})
	require.NoError(t, err)
	return &testApp{t: t, db: db, engine: engine}
}

func (a *testApp) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (a *testApp) register(name, email string) (id, token string) {
	a.t.Helper()
	w, body := a.do(http.MethodPost, "/api/auth/register", "", gin.H{"nombre": name, "email": email, "password": "123456"})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return body["_id"].(string), body["token"].(string)
}

func (a *testApp) createProduct(token string, body gin.H) string {
	a.t.Helper()
	w, out := a.do(http.MethodPost, "/api/products", token, body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return out["_id"].(string)
}

func (a *testApp) count(model any) int64 {
	a.t.Helper()
	var n int64
	require.NoError(a.t, a.db.Model(model).Count(&n).Error)
	return n
}

func TestApp_RegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t, nil)
	app.register("Ana", "ana@example.com")

	w, body := app.do(http.MethodPost, "/api/auth/register", "", gin.H{"nombre": "Ana2", "email": "ana@example.com", "password": "654321"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "El usuario ya existe", body["mensaje"])
	assert.Equal(t, int64(1), app.count(&entity.User{}))
}

func TestApp_RegisterMissingFields(t *testing.T) {
	app := newTestApp(t, nil)

	w, body := app.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "x@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Por favor complete todos los campos", body["mensaje"])
	assert.Zero(t, app.count(&entity.User{}))
}

func TestApp_RegisterLongPassword(t *testing.T) {
	app := newTestApp(t, nil)
	long := strings.Repeat("a", 73)

	w, body := app.do(http.MethodPost, "/api/auth/register", "", gin.H{"nombre": "Largo", "email": "largo@example.com", "password": long})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, body["token"])

	w, login := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "largo@example.com", "password": long})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, body["_id"], login["_id"])
}

func TestApp_EmailIsCaseSensitive(t *testing.T) {
	app := newTestApp(t, nil)
	app.register("Ana", "Ana@Example.com")

	w, _ := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "123456"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, login := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "Ana@Example.com", "password": "123456"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana@Example.com", login["email"])
}

func TestApp_LoginFailuresAreIdentical(t *testing.T) {
	app := newTestApp(t, nil)
	app.register("Ana", "ana@example.com")

	wWrong, wrong := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "bad"})
	wUnknown, unknown := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "nadie@example.com", "password": "bad"})

	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, "Credenciales inválidas", wrong["mensaje"])
	assert.Equal(t, wrong, unknown)

	w, body := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email y contraseña son requeridos", body["mensaje"])
}

func TestApp_RegisterLoginSameIdentity(t *testing.T) {
	app := newTestApp(t, nil)
	id, regToken := app.register("Ana", "ana@example.com")

	w, login := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "123456"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, login["_id"])
	assert.Equal(t, "Ana", login["nombre"])

	for _, token := range []string{regToken, login["token"].(string)} {
		w, profile := app.do(http.MethodGet, "/api/auth/perfil", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, profile["_id"])
		assert.Equal(t, "ana@example.com", profile["email"])
		assert.NotContains(t, w.Body.String(), "password")
	}
}

func TestApp_GateMessages(t *testing.T) {
	app := newTestApp(t, nil)
	_, token := app.register("Ana", "ana@example.com")

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"no header", "", "No autorizado, no se proporcionó token"},
		{"not bearer", "Basic abc", "No autorizado, no se proporcionó token"},
		{"empty bearer", "Bearer ", "No autorizado, no se proporcionó token"},
		{"garbage token", "Bearer abc.def.ghi", "No autorizado, token inválido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"/api/products", "/api/products/00000000-0000-0000-0000-000000000000", "/api/auth/perfil"} {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				if tt.header != "" {
					req.Header.Set("Authorization", tt.header)
				}
				w := httptest.NewRecorder()
				app.engine.ServeHTTP(w, req)

				assert.Equal(t, http.StatusUnauthorized, w.Code, path)
				assert.JSONEq(t, `{"mensaje":"`+tt.message+`"}`, w.Body.String(), path)
			}
		})
	}

	t.Run("user deleted after issuing the token", func(t *testing.T) {
		require.NoError(t, app.db.Where("1 = 1").Delete(&entity.User{}).Error)

		w, body := app.do(http.MethodGet, "/api/products", token, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "No autorizado, usuario no encontrado", body["mensaje"])
	})
}

func TestApp_OwnershipIsolation(t *testing.T) {
	app := newTestApp(t, nil)
	_, tokenA := app.register("Ana", "ana@example.com")
	_, tokenB := app.register("Beto", "beto@example.com")
	productB := app.createProduct(tokenB, gin.H{"nombre": "Secreto", "precio": 5})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w, body := app.do(method, "/api/products/"+productB, tokenA, gin.H{"precio": 1})

		assert.Equal(t, http.StatusNotFound, w.Code, method)
		assert.Equal(t, "Producto no encontrado", body["mensaje"], method)
	}

	// B's product is untouched and invisible in A's list
	w, body := app.do(http.MethodGet, "/api/products/"+productB, tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, body["precio"])

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+tokenA)
	rec := httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestApp_CreateValidation(t *testing.T) {
	app := newTestApp(t, nil)
	_, token := app.register("Ana", "ana@example.com")

	tests := []struct {
		name    string
		body    gin.H
		message string
	}{
		{"no name", gin.H{"precio": 10}, "Nombre y precio son obligatorios"},
		{"no price", gin.H{"nombre": "Mesa"}, "Nombre y precio son obligatorios"},
		{"negative price", gin.H{"nombre": "Mesa", "precio": -1}, "El precio no puede ser negativo"},
		{"negative stock", gin.H{"nombre": "Mesa", "precio": 1, "stock": -1}, "El stock no puede ser negativo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := app.do(http.MethodPost, "/api/products", token, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, body["mensaje"])
		})
	}
	assert.Zero(t, app.count(&productentity.Product{}), "nothing must be persisted")
}

func TestApp_ProductLifecycle(t *testing.T) {
	app := newTestApp(t, nil)
	userID, token := app.register("Ana", "ana@example.com")

	w, created := app.do(http.MethodPost, "/api/products", token, gin.H{
		"nombre": "Mesa", "descripcion": "roble", "precio": 100, "usuario": "otro",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := created["_id"].(string)
	assert.Equal(t, userID, created["usuario"], "owner comes from the token")
	assert.EqualValues(t, 0, created["stock"])
	assert.NotEmpty(t, created["fechaCreacion"])

	// only price changes
	w, updated := app.do(http.MethodPut, "/api/products/"+id, token, gin.H{"precio": 80})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 80, updated["precio"])
	assert.Equal(t, "Mesa", updated["nombre"])
	assert.Equal(t, "roble", updated["descripcion"])
	assert.EqualValues(t, 0, updated["stock"])
	createdAt, err := time.Parse(time.RFC3339Nano, created["fechaCreacion"].(string))
	require.NoError(t, err)
	updatedAt, err := time.Parse(time.RFC3339Nano, updated["fechaCreacion"].(string))
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(updatedAt), "creation time must not change")

	encoded := "/api/products/" + fmt.Sprintf("%%%02X", id[0]) + id[1:]
	w, fetched := app.do(http.MethodGet, encoded, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, id, fetched["_id"])

	w, deleted := app.do(http.MethodDelete, "/api/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Producto eliminado", deleted["mensaje"])

	w, _ = app.do(http.MethodGet, "/api/products/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, app.count(&productentity.Product{}))

	w, body := app.do(http.MethodGet, "/api/products/no-es-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Producto no encontrado", body["mensaje"])
}

func TestApp_ListWithRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	app := newTestApp(t, rdb)
	_, token := app.register("Ana", "ana@example.com")

	list := func() []any {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		app.engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var out []any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	assert.Empty(t, list())
	app.createProduct(token, gin.H{"nombre": "Mesa", "precio": 1})
	assert.Len(t, list(), 1, "create must invalidate the cached list")
	app.createProduct(token, gin.H{"nombre": "Silla", "precio": 2})
	assert.Len(t, list(), 2)
	assert.NotEmpty(t, mr.Keys())
}

func TestApp_PlatformRoutes(t *testing.T) {
	app := newTestApp(t, nil)

	w, body := app.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])

	w, body = app.do(http.MethodGet, "/api/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ruta no encontrada", body["mensaje"])

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "login-form")
}

func TestNewProductRepository_Selection(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), platformdb.GormConfig())
	require.NoError(t, err)

	plain := NewProductRepository(nil, db, time.Minute)
	assert.NotContains(t, typeName(plain), "Caching")

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer func() { _ = rdb.Close() }()
	cached := NewProductRepository(rdb, db, time.Minute)
	assert.Contains(t, typeName(cached), "Caching")
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
