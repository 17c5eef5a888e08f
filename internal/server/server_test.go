package server

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "net/http"
  "net/http/httptest"
  "testing"
  "time"

  "github.com/gin-gonic/gin"
  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/config"
  "github.com/gondola-org/gondola-backend/internal/db"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/seed"
  "github.com/gondola-org/gondola-backend/internal/types"
)

const (
  adminEmail    = "admin@gondola.test"
  adminPassword = "segredo-forte"
)

type envelope struct {
  Success bool            `json:"success"`
  Message string          `json:"message"`
  Data    json.RawMessage `json:"data"`
}

type pageBody struct {
  CurrentPage int               `json:"current_page"`
  Data        []json.RawMessage `json:"data"`
  LastPage    int               `json:"last_page"`
  PerPage     int               `json:"per_page"`
  Total       int64             `json:"total"`
  NextPageURL *string           `json:"next_page_url"`
}

type harness struct {
  t      *testing.T
  db     *gorm.DB
  repos  Repos
  router *gin.Engine
}

func newHarness(t *testing.T) *harness {
  t.Helper()
  gin.SetMode(gin.TestMode)
  log := logger.NewNop()
  svc, err := db.NewSQLiteService(":memory:", log)
  if err != nil {
    t.Fatalf("open: %v", err)
  }
  if err := svc.AutoMigrateAll(); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  r := NewRepos(svc.DB(), log)
  err = seed.SeedAll(context.Background(), svc.DB(), log, seed.Repos{
    Action:     r.Action,
    Permission: r.Permission,
    Role:       r.Role,
    User:       r.User,
  }, seed.Options{AdminName: "Admin", AdminEmail: adminEmail, AdminPassword: adminPassword})
  if err != nil {
    t.Fatalf("seed: %v", err)
  }
  cfg := &config.Config{
    JWTSecretKey:   "test-secret",
    AccessTokenTTL: time.Hour,
    CORSOrigins:    []string{"http://localhost:3000"},
  }
  return &harness{t: t, db: svc.DB(), repos: r, router: NewRouter(Wire(svc.DB(), log, cfg, r, nil))}
}

// do sends body as-is when it is a string, JSON-encoded otherwise.
func (h *harness) do(method, path string, body any, token string) (int, envelope) {
  h.t.Helper()
  var reader *bytes.Reader
  switch b := body.(type) {
  case nil:
    reader = bytes.NewReader(nil)
  case string:
    reader = bytes.NewReader([]byte(b))
  default:
    raw, err := json.Marshal(b)
    if err != nil {
      h.t.Fatalf("marshal: %v", err)
    }
    reader = bytes.NewReader(raw)
  }
  req := httptest.NewRequest(method, path, reader)
  req.Header.Set("Content-Type", "application/json")
  if token != "" {
    req.Header.Set("Authorization", "Bearer "+token)
  }
  w := httptest.NewRecorder()
  h.router.ServeHTTP(w, req)
  var env envelope
  if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
    h.t.Fatalf("%s %s: body is not an envelope: %s", method, path, w.Body.String())
  }
  return w.Code, env
}

func (h *harness) login(email, password string) string {
  h.t.Helper()
  code, env := h.do(http.MethodPost, "/api/login", map[string]any{"email": email, "password": password}, "")
  if code != http.StatusOK {
    h.t.Fatalf("login: %d %s", code, env.Message)
  }
  var result struct {
    AccessToken string `json:"access_token"`
  }
  decode(h.t, env.Data, &result)
  return result.AccessToken
}

// create posts body and returns the new id.
func (h *harness) create(path string, body any, token string) uint {
  h.t.Helper()
  code, env := h.do(http.MethodPost, path, body, token)
  if code != http.StatusCreated {
    h.t.Fatalf("POST %s: %d %s %s", path, code, env.Message, env.Data)
  }
  var created struct {
    ID uint `json:"id"`
  }
  decode(h.t, env.Data, &created)
  return created.ID
}

func (h *harness) actionID(verb string) uint {
  h.t.Helper()
  a, err := h.repos.Action.GetByNameFold(context.Background(), nil, verb)
  if err != nil || a == nil {
    h.t.Fatalf("action %s: %v", verb, err)
  }
  return a.ID
}

func (h *harness) logsFor(table string, actionID uint) []types.SystemLog {
  h.t.Helper()
  var entries []types.SystemLog
  if err := h.db.Where("table_name = ? AND fk_action = ?", table, actionID).Order("id").Find(&entries).Error; err != nil {
    h.t.Fatalf("load logs: %v", err)
  }
  return entries
}

func decode(t *testing.T, raw json.RawMessage, v any) {
  t.Helper()
  if err := json.Unmarshal(raw, v); err != nil {
    t.Fatalf("decode %s: %v", raw, err)
  }
}

func TestHealthz(t *testing.T) {
  h := newHarness(t)
  code, env := h.do(http.MethodGet, "/healthz", nil, "")
  if code != http.StatusOK || !env.Success {
    t.Fatalf("healthz: %d %+v", code, env)
  }
}

func TestLoginRejectsBadCredentials(t *testing.T) {
  h := newHarness(t)
  cases := []struct {
    name     string
    email    string
    password string
  }{
    {"wrong password", adminEmail, "nope-nope"},
    {"unknown email", "ghost@gondola.test", adminPassword},
    {"email differs in case", "ADMIN@gondola.test", adminPassword},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      code, env := h.do(http.MethodPost, "/api/login", map[string]any{"email": tc.email, "password": tc.password}, "")
      if code != http.StatusUnauthorized || env.Success {
        t.Fatalf("got %d %+v", code, env)
      }
      if env.Message != "Credenciais inválidas." {
        t.Errorf("message = %q", env.Message)
      }
    })
  }
}

func TestLoginIssuesBearerTokenAndAudits(t *testing.T) {
  h := newHarness(t)
  code, env := h.do(http.MethodPost, "/api/login", map[string]any{"email": adminEmail, "password": adminPassword}, "")
  if code != http.StatusOK {
    t.Fatalf("login: %d %s", code, env.Message)
  }
  var result struct {
    AccessToken string `json:"access_token"`
    TokenType   string `json:"token_type"`
    User        struct {
      ID    uint   `json:"id"`
      Email string `json:"email"`
    } `json:"user"`
    ExpiresIn int      `json:"expires_in"`
    Level     []string `json:"level"`
  }
  decode(t, env.Data, &result)
  if result.AccessToken == "" || result.TokenType != "Bearer" {
    t.Fatalf("unexpected token data %+v", result)
  }
  if result.ExpiresIn != 3600 {
    t.Errorf("expires_in = %d, want the configured hour", result.ExpiresIn)
  }
  if len(result.Level) != 1 || result.Level[0] != "admin" {
    t.Errorf("level = %v", result.Level)
  }

  entries := h.logsFor("users", h.actionID("Conectou"))
  if len(entries) != 1 {
    t.Fatalf("login entries = %d", len(entries))
  }
  if entries[0].FKUser == nil || *entries[0].FKUser != result.User.ID {
    t.Errorf("login entry actor = %v, want %d", entries[0].FKUser, result.User.ID)
  }
}

func TestProtectedRoutesRequireToken(t *testing.T) {
  h := newHarness(t)
  for _, token := range []string{"", "not-a-jwt"} {
    code, env := h.do(http.MethodGet, "/api/companies", nil, token)
    if code != http.StatusUnauthorized || env.Success {
      t.Errorf("token %q: got %d %+v", token, code, env)
    }
  }
}

func TestLogoutRevokesOnlyPresentingToken(t *testing.T) {
  h := newHarness(t)
  first := h.login(adminEmail, adminPassword)
  second := h.login(adminEmail, adminPassword)

  if code, env := h.do(http.MethodPost, "/api/logout", nil, first); code != http.StatusOK {
    t.Fatalf("logout: %d %s", code, env.Message)
  }
  if code, _ := h.do(http.MethodGet, "/api/me", nil, first); code != http.StatusUnauthorized {
    t.Errorf("revoked token still accepted: %d", code)
  }
  if code, _ := h.do(http.MethodGet, "/api/me", nil, second); code != http.StatusOK {
    t.Errorf("other session rejected: %d", code)
  }
  if n := len(h.logsFor("users", h.actionID("Desconectou"))); n != 1 {
    t.Errorf("logout entries = %d", n)
  }
}

func TestRegisterCreatesUserWithoutActor(t *testing.T) {
  h := newHarness(t)
  code, env := h.do(http.MethodPost, "/api/register", map[string]any{
    "name": "Maria", "email": "maria@gondola.test", "password": "senha-segura",
  }, "")
  if code != http.StatusCreated {
    t.Fatalf("register: %d %s %s", code, env.Message, env.Data)
  }
  var result struct {
    AccessToken string `json:"access_token"`
  }
  decode(t, env.Data, &result)
  if code, _ := h.do(http.MethodGet, "/api/me", nil, result.AccessToken); code != http.StatusOK {
    t.Errorf("registered token rejected: %d", code)
  }

  entries := h.logsFor("users", h.actionID("Criou"))
  if len(entries) != 1 || entries[0].FKUser != nil {
    t.Fatalf("register entries = %+v", entries)
  }

  code, env = h.do(http.MethodPost, "/api/register", map[string]any{
    "name": "Maria", "email": "maria@gondola.test", "password": "senha-segura",
  }, "")
  if code != http.StatusUnprocessableEntity {
    t.Fatalf("duplicate register: %d", code)
  }
  var fields map[string][]string
  decode(t, env.Data, &fields)
  if len(fields["email"]) == 0 {
    t.Errorf("expected an email error, got %v", fields)
  }
}

func TestAccessManagementRequiresPermission(t *testing.T) {
  h := newHarness(t)
  admin := h.login(adminEmail, adminPassword)
  h.create("/api/register", map[string]any{"name": "João", "email": "joao@gondola.test", "password": "senha-segura"}, "")
  plain := h.login("joao@gondola.test", "senha-segura")

  code, env := h.do(http.MethodGet, "/api/roles", nil, plain)
  if code != http.StatusForbidden || env.Message != "Acesso negado." {
    t.Fatalf("roles without permission: %d %q", code, env.Message)
  }
  if code, _ := h.do(http.MethodGet, "/api/roles", nil, admin); code != http.StatusOK {
    t.Fatalf("roles as admin: %d", code)
  }
  if code, _ := h.do(http.MethodGet, "/api/sectors", nil, plain); code != http.StatusOK {
    t.Errorf("sectors should only need a session: %d", code)
  }
}

func TestMalformedRequests(t *testing.T) {
  h := newHarness(t)
  token := h.login(adminEmail, adminPassword)

  if code, env := h.do(http.MethodPost, "/api/companies", "{bad", token); code != http.StatusBadRequest || env.Success {
    t.Errorf("malformed json: %d %+v", code, env)
  }
  for _, path := range []string{"/api/companies/abc", "/api/companies/0", "/api/companies/999"} {
    if code, env := h.do(http.MethodGet, path, nil, token); code != http.StatusNotFound || env.Success {
      t.Errorf("%s: %d %+v", path, code, env)
    }
  }
}

func TestValidationErrorsCarryFieldPaths(t *testing.T) {
  h := newHarness(t)
  token := h.login(adminEmail, adminPassword)

  code, env := h.do(http.MethodPost, "/api/stores", map[string]any{
    "name": "Loja Centro", "fk_companie": 999, "cnpj": "1234567890123",
  }, token)
  if code != http.StatusUnprocessableEntity {
    t.Fatalf("store: %d %s", code, env.Message)
  }
  var fields map[string][]string
  decode(t, env.Data, &fields)
  for _, key := range []string{"cnpj", "fk_companie"} {
    if len(fields[key]) == 0 {
      t.Errorf("missing %s error in %v", key, fields)
    }
  }

  code, env = h.do(http.MethodPost, "/api/companies", map[string]any{
    "name": "Rede Sul",
    "contacts": []map[string]any{
      {"name": "Ana", "email": "ana@rede.test", "phone": "11999990000"},
      {"name": "Bia", "email": "nao-e-email", "phone": "11999990001"},
    },
  }, token)
  if code != http.StatusUnprocessableEntity {
    t.Fatalf("company: %d %s", code, env.Message)
  }
  fields = nil
  decode(t, env.Data, &fields)
  if len(fields["contacts.1.email"]) == 0 {
    t.Errorf("missing contacts.1.email in %v", fields)
  }
  var count int64
  h.db.Model(&types.Company{}).Count(&count)
  if count != 0 {
    t.Errorf("rejected payload left %d companies", count)
  }
}

func TestCompanyCascadeAndActiveFilter(t *testing.T) {
  h := newHarness(t)
  token := h.login(adminEmail, adminPassword)

  companyID := h.create("/api/companies", map[string]any{
    "name": "Rede Norte",
    "contacts": []map[string]any{
      {"name": "Ana", "email": "ana@norte.test", "phone": "11999990000"},
      {"name": "Caio", "email": "caio@norte.test", "phone": "11999990001"},
    },
  }, token)
  other := h.create("/api/companies", map[string]any{"name": "Rede Leste"}, token)
  storeID := h.create("/api/stores", map[string]any{
    "name": "Loja 1", "fk_companie": companyID, "cnpj": "12.345.678/0001-90",
    "addresses": []map[string]any{{
      "street": "Rua A", "number": "10", "neighborhood": "Centro",
      "city": "São Paulo", "state": "SP", "zip_code": "01000-000",
    }},
  }, token)
  sector := h.create("/api/sectors", map[string]any{"name": "Bebidas"}, token)
  assetType := h.create("/api/asset-types", map[string]any{"name": "Ponta de gôndola"}, token)
  status := h.create("/api/status", map[string]any{"name": "Disponível"}, token)
  assetID := h.create(fmt.Sprintf("/api/stores/%d/assets", storeID), map[string]any{
    "name": "Ilha 3", "fk_sector": sector, "fk_asset_type": assetType, "fk_status": status, "quantity": 2,
  }, token)

  code, env := h.do(http.MethodGet, fmt.Sprintf("/api/stores/%d", storeID), nil, token)
  if code != http.StatusOK {
    t.Fatalf("show store: %d", code)
  }
  var store struct {
    Cnpj      string `json:"cnpj"`
    Addresses []struct {
      ZipCode string `json:"zip_code"`
    } `json:"addresses"`
  }
  decode(t, env.Data, &store)
  if store.Cnpj != "12345678000190" || len(store.Addresses) != 1 || store.Addresses[0].ZipCode != "01000000" {
    t.Errorf("store not normalized: %+v", store)
  }

  if code, env := h.do(http.MethodDelete, fmt.Sprintf("/api/companies/%d", companyID), nil, token); code != http.StatusOK {
    t.Fatalf("delete: %d %s", code, env.Message)
  }
  for _, path := range []string{
    fmt.Sprintf("/api/companies/%d", companyID),
    fmt.Sprintf("/api/stores/%d", storeID),
    fmt.Sprintf("/api/stores/%d/assets/%d", storeID, assetID),
  } {
    if code, _ := h.do(http.MethodGet, path, nil, token); code != http.StatusNotFound {
      t.Errorf("%s after delete: %d", path, code)
    }
  }
  var asset types.Asset
  if err := h.db.Unscoped().First(&asset, assetID).Error; err != nil || !asset.DeletedAt.Valid {
    t.Errorf("asset not soft deleted: %v %+v", err, asset.DeletedAt)
  }

  ids := func(query string) []uint {
    _, env := h.do(http.MethodGet, "/api/companies"+query, nil, token)
    var page pageBody
    decode(t, env.Data, &page)
    out := make([]uint, 0, len(page.Data))
    for _, raw := range page.Data {
      var c struct {
        ID uint `json:"id"`
      }
      decode(t, raw, &c)
      out = append(out, c.ID)
    }
    return out
  }
  if got := ids(""); len(got) != 2 {
    t.Errorf("default view = %v, want both", got)
  }
  if got := ids("?active=true"); len(got) != 1 || got[0] != other {
    t.Errorf("active view = %v", got)
  }
  if got := ids("?active=false"); len(got) != 1 || got[0] != companyID {
    t.Errorf("trashed view = %v", got)
  }
  if n := len(h.logsFor("companies", h.actionID("Removeu"))); n != 1 {
    t.Errorf("delete entries = %d", n)
  }
}

func TestContactsSyncOnUpdateAddOnAttach(t *testing.T) {
  h := newHarness(t)
  token := h.login(adminEmail, adminPassword)
  contact := func(name string) map[string]any {
    return map[string]any{"name": name, "email": name + "@rede.test", "phone": "1133334444"}
  }
  names := func(raw json.RawMessage) []string {
    var c struct {
      Contacts []struct {
        Name string `json:"name"`
      } `json:"contacts"`
    }
    decode(t, raw, &c)
    out := []string{}
    for _, ct := range c.Contacts {
      out = append(out, ct.Name)
    }
    return out
  }

  id := h.create("/api/agencies", map[string]any{"name": "Agência Um", "contacts": []any{contact("ana")}}, token)

  code, env := h.do(http.MethodPost, fmt.Sprintf("/api/agencies/%d/contacts", id), map[string]any{"contacts": []any{contact("bia")}}, token)
  if code != http.StatusCreated {
    t.Fatalf("attach: %d %s", code, env.Message)
  }
  if got := names(env.Data); len(got) != 2 {
    t.Fatalf("after attach = %v, want two", got)
  }

  code, env = h.do(http.MethodPut, fmt.Sprintf("/api/agencies/%d", id), map[string]any{"contacts": []any{contact("caio")}}, token)
  if code != http.StatusOK {
    t.Fatalf("update: %d %s %s", code, env.Message, env.Data)
  }
  if got := names(env.Data); len(got) != 1 || got[0] != "caio" {
    t.Fatalf("after update = %v, want [caio]", got)
  }

  code, env = h.do(http.MethodPut, fmt.Sprintf("/api/agencies/%d", id), map[string]any{"name": "Agência Renomeada"}, token)
  if code != http.StatusOK {
    t.Fatalf("rename: %d %s", code, env.Message)
  }
  if got := names(env.Data); len(got) != 1 {
    t.Errorf("update without contacts touched them: %v", got)
  }

  code, env = h.do(http.MethodPut, fmt.Sprintf("/api/agencies/%d", id), map[string]any{"contacts": nil}, token)
  if code != http.StatusOK {
    t.Fatalf("null contacts: %d %s %s", code, env.Message, env.Data)
  }
  if got := names(env.Data); len(got) != 1 || got[0] != "caio" {
    t.Errorf("null contacts should leave the set alone, got %v", got)
  }
  code, env = h.do(http.MethodPut, fmt.Sprintf("/api/agencies/%d", id), map[string]any{"contacts": []any{}}, token)
  if code != http.StatusOK {
    t.Fatalf("empty contacts: %d %s", code, env.Message)
  }
  if got := names(env.Data); len(got) != 0 {
    t.Errorf("empty contacts should clear the set, got %v", got)
  }
}

func TestPaginationHonorsOrPinsPerPage(t *testing.T) {
  h := newHarness(t)
  token := h.login(adminEmail, adminPassword)
  ctx := context.Background()
  for i := 1; i <= 12; i++ {
    if _, err := h.repos.Agency.Create(ctx, nil, []*types.Agency{{Name: fmt.Sprintf("Agência %02d", i)}}); err != nil {
      t.Fatalf("agency: %v", err)
    }
    if _, err := h.repos.Sector.Create(ctx, nil, []*types.Sector{{Name: fmt.Sprintf("Setor %02d", i)}}); err != nil {
      t.Fatalf("sector: %v", err)
    }
  }

  _, env := h.do(http.MethodGet, "/api/agencies?page=2&per_page=5", nil, token)
  var page pageBody
  decode(t, env.Data, &page)
  if len(page.Data) != 5 || page.LastPage != 3 || page.Total != 12 || page.CurrentPage != 2 {
    t.Errorf("agencies page = %+v", page)
  }
  if page.NextPageURL == nil {
    t.Error("expected a next page link")
  }

  _, env = h.do(http.MethodGet, "/api/sectors?per_page=5", nil, token)
  page = pageBody{}
  decode(t, env.Data, &page)
  if page.PerPage != 10 || len(page.Data) != 10 {
    t.Errorf("sectors page size = %d (%d items), want pinned 10", page.PerPage, len(page.Data))
  }
}

func TestBrandNameFilterAndOrdering(t *testing.T) {
  h := newHarness(t)
  token := h.login(adminEmail, adminPassword)
  for _, name := range []string{"Zeta", "Alfa", "Beta"} {
    h.create("/api/brands", map[string]any{"name": name}, token)
  }
  names := func(query string) []string {
    code, env := h.do(http.MethodGet, "/api/brands"+query, nil, token)
    if code != http.StatusOK {
      t.Fatalf("%s: %d", query, code)
    }
    var page pageBody
    decode(t, env.Data, &page)
    out := []string{}
    for _, raw := range page.Data {
      var b struct {
        Name string `json:"name"`
      }
      decode(t, raw, &b)
      out = append(out, b.Name)
    }
    return out
  }
  if got := names("?name=Beta"); len(got) != 1 || got[0] != "Beta" {
    t.Errorf("name filter = %v", got)
  }
  if got := names("?name=bet"); len(got) != 0 {
    t.Errorf("name filter must match exactly, got %v", got)
  }
  if got := names("?order_by=name&order_dir=desc"); len(got) != 3 || got[0] != "Zeta" || got[2] != "Alfa" {
    t.Errorf("ordered = %v", got)
  }
  if got := names("?order_by=bogus"); len(got) != 3 || got[0] != "Zeta" {
    t.Errorf("unsupported order_by should fall back to insertion order, got %v", got)
  }
}

func TestAssetsAreScopedToTheirStore(t *testing.T) {
  h := newHarness(t)
  token := h.login(adminEmail, adminPassword)
  company := h.create("/api/companies", map[string]any{"name": "Rede Oeste"}, token)
  storeA := h.create("/api/stores", map[string]any{"name": "A", "fk_companie": company, "cnpj": "11111111000111"}, token)
  storeB := h.create("/api/stores", map[string]any{"name": "B", "fk_companie": company, "cnpj": "22222222000122"}, token)
  sector := h.create("/api/sectors", map[string]any{"name": "Limpeza"}, token)
  assetType := h.create("/api/asset-types", map[string]any{"name": "Display"}, token)
  status := h.create("/api/status", map[string]any{"name": "Ocupado"}, token)
  asset := h.create(fmt.Sprintf("/api/stores/%d/assets", storeA), map[string]any{
    "name": "Display 1", "fk_sector": sector, "fk_asset_type": assetType, "fk_status": status, "quantity": 1,
  }, token)

  code, env := h.do(http.MethodGet, fmt.Sprintf("/api/stores/%d/assets/%d", storeB, asset), nil, token)
  if code != http.StatusNotFound || env.Message != "Ativo não encontrado nesta loja." {
    t.Errorf("cross-store read: %d %q", code, env.Message)
  }
  code, _ = h.do(http.MethodGet, fmt.Sprintf("/api/stores/%d/assets", 999), nil, token)
  if code != http.StatusNotFound {
    t.Errorf("unknown store: %d", code)
  }
  code, env = h.do(http.MethodPost, fmt.Sprintf("/api/stores/%d/assets", storeA), map[string]any{
    "name": "Display 2", "fk_sector": sector, "fk_asset_type": assetType, "fk_status": status, "quantity": 1001,
  }, token)
  if code != http.StatusUnprocessableEntity {
    t.Errorf("quantity over bound: %d %s", code, env.Message)
  }
}

func TestSystemLogListing(t *testing.T) {
  h := newHarness(t)
  token := h.login(adminEmail, adminPassword)
  h.create("/api/sectors", map[string]any{"name": "Frios"}, token)
  h.create("/api/companies", map[string]any{"name": "Rede Centro"}, token)

  code, env := h.do(http.MethodGet, "/api/system-logs?table_name=sectors", nil, token)
  if code != http.StatusOK {
    t.Fatalf("list logs: %d", code)
  }
  var page pageBody
  decode(t, env.Data, &page)
  if page.Total != 1 {
    t.Fatalf("sector entries = %d", page.Total)
  }
  var entry struct {
    ID    uint   `json:"id"`
    Table string `json:"table_name"`
  }
  decode(t, page.Data[0], &entry)
  if entry.Table != "sectors" {
    t.Errorf("table = %q", entry.Table)
  }
  if code, _ := h.do(http.MethodGet, fmt.Sprintf("/api/system-logs/%d", entry.ID), nil, token); code != http.StatusOK {
    t.Errorf("show log: %d", code)
  }
  if code, _ := h.do(http.MethodGet, "/api/system-logs/99999", nil, token); code != http.StatusNotFound {
    t.Errorf("missing log: %d", code)
  }
}

func TestAssignRolesToUser(t *testing.T) {
  h := newHarness(t)
  admin := h.login(adminEmail, adminPassword)
  h.create("/api/register", map[string]any{"name": "Leo", "email": "leo@gondola.test", "password": "senha-segura"}, "")
  users, err := h.repos.User.GetByEmails(context.Background(), nil, []string{"leo@gondola.test"})
  if err != nil || len(users) != 1 {
    t.Fatalf("load user: %v", err)
  }
  roles, err := h.repos.Role.GetByNames(context.Background(), nil, []string{"admin"})
  if err != nil || len(roles) != 1 {
    t.Fatalf("load role: %v", err)
  }

  code, env := h.do(http.MethodPut, fmt.Sprintf("/api/users/%d/assign", users[0].ID), map[string]any{"roles": []uint{roles[0].ID}}, admin)
  if code != http.StatusOK {
    t.Fatalf("assign: %d %s %s", code, env.Message, env.Data)
  }
  leo := h.login("leo@gondola.test", "senha-segura")
  if code, _ := h.do(http.MethodGet, "/api/permissions", nil, leo); code != http.StatusOK {
    t.Errorf("assigned admin role not effective: %d", code)
  }
}

func TestUserRoutesRequireAccessPermission(t *testing.T) {
  h := newHarness(t)
  admin := h.login(adminEmail, adminPassword)
  h.create("/api/register", map[string]any{"name": "Eva", "email": "eva@gondola.test", "password": "senha-segura"}, "")
  plain := h.login("eva@gondola.test", "senha-segura")
  users, err := h.repos.User.GetByEmails(context.Background(), nil, []string{"eva@gondola.test"})
  if err != nil || len(users) != 1 {
    t.Fatalf("load user: %v", err)
  }
  roles, err := h.repos.Role.GetByNames(context.Background(), nil, []string{"admin"})
  if err != nil || len(roles) != 1 {
    t.Fatalf("load role: %v", err)
  }
  self := fmt.Sprintf("/api/users/%d", users[0].ID)

  cases := []struct {
    name   string
    method string
    path   string
    body   any
  }{
    {"list", http.MethodGet, "/api/users", nil},
    {"show", http.MethodGet, self, nil},
    {"create", http.MethodPost, "/api/users", map[string]any{"name": "X", "email": "x@gondola.test", "password": "senha-segura", "roles": []uint{roles[0].ID}}},
    {"update self with roles", http.MethodPut, self, map[string]any{"roles": []uint{roles[0].ID}}},
    {"update admin email", http.MethodPut, "/api/users/1", map[string]any{"email": "eva2@gondola.test"}},
    {"assign", http.MethodPut, self + "/assign", map[string]any{"roles": []uint{roles[0].ID}}},
    {"delete", http.MethodDelete, "/api/users/1", nil},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      code, env := h.do(tc.method, tc.path, tc.body, plain)
      if code != http.StatusForbidden || env.Message != "Acesso negado." {
        t.Fatalf("got %d %q", code, env.Message)
      }
    })
  }
  if code, _ := h.do(http.MethodGet, "/api/roles", nil, plain); code != http.StatusForbidden {
    t.Errorf("user gained access management: %d", code)
  }
  if code, _ := h.do(http.MethodGet, "/api/me", nil, admin); code != http.StatusOK {
    t.Errorf("admin session disturbed: %d", code)
  }
}

func TestUserUpdateIgnoresRoles(t *testing.T) {
  h := newHarness(t)
  admin := h.login(adminEmail, adminPassword)
  roles, err := h.repos.Role.GetByNames(context.Background(), nil, []string{"admin"})
  if err != nil || len(roles) != 1 {
    t.Fatalf("load role: %v", err)
  }
  id := h.create("/api/users", map[string]any{
    "name": "Rui", "email": "rui@gondola.test", "password": "senha-segura", "roles": []uint{roles[0].ID},
  }, admin)
  code, env := h.do(http.MethodPut, fmt.Sprintf("/api/users/%d", id), map[string]any{"roles": []uint{roles[0].ID}}, admin)
  if code != http.StatusOK {
    t.Fatalf("update: %d %s", code, env.Message)
  }
  var user types.User
  if err := h.db.Preload("Roles").First(&user, id).Error; err != nil {
    t.Fatalf("reload: %v", err)
  }
  if len(user.Roles) != 0 {
    t.Errorf("roles changed outside assign: %d", len(user.Roles))
  }
}

func TestForceDeletePurgesTrashedCompany(t *testing.T) {
  h := newHarness(t)
  token := h.login(adminEmail, adminPassword)
  companyID := h.create("/api/companies", map[string]any{
    "name":     "Rede Antiga",
    "contacts": []map[string]any{{"name": "Ana", "email": "ana@antiga.test", "phone": "11999990000"}},
  }, token)
  storeID := h.create("/api/stores", map[string]any{"name": "Loja Velha", "fk_companie": companyID, "cnpj": "33333333000133"}, token)

  if code, env := h.do(http.MethodDelete, fmt.Sprintf("/api/companies/%d", companyID), nil, token); code != http.StatusOK {
    t.Fatalf("soft delete: %d %s", code, env.Message)
  }
  if code, env := h.do(http.MethodDelete, fmt.Sprintf("/api/companies/%d/force", companyID), nil, token); code != http.StatusOK {
    t.Fatalf("force delete trashed: %d %s", code, env.Message)
  }
  var n int64
  h.db.Unscoped().Model(&types.Company{}).Where("id = ?", companyID).Count(&n)
  if n != 0 {
    t.Errorf("company row survived force delete")
  }
  h.db.Unscoped().Model(&types.Store{}).Where("id = ?", storeID).Count(&n)
  if n != 0 {
    t.Errorf("trashed store survived force delete")
  }
  if code, _ := h.do(http.MethodDelete, fmt.Sprintf("/api/companies/%d/force", companyID), nil, token); code != http.StatusNotFound {
    t.Errorf("second force delete: %d", code)
  }
}
