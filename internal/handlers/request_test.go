package handlers

import (
  "net/http"
  "net/http/httptest"
  "strings"
  "testing"

  "github.com/gin-gonic/gin"
)

func testContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
  gin.SetMode(gin.TestMode)
  w := httptest.NewRecorder()
  c, _ := gin.CreateTestContext(w)
  c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
  return c, w
}

func TestReadPayload(t *testing.T) {
  cases := []struct {
    name   string
    body   string
    ok     bool
    fields int
  }{
    {"empty body", "", true, 0},
    {"object", `{"name":"Rede"}`, true, 1},
    {"malformed", `{"name":`, false, 0},
    {"array", `[1,2]`, false, 0},
    {"null", `null`, false, 0},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      c, w := testContext(http.MethodPost, "/", tc.body)
      data, ok := readPayload(c)
      if ok != tc.ok {
        t.Fatalf("ok = %v, want %v", ok, tc.ok)
      }
      if !ok {
        if w.Code != http.StatusBadRequest {
          t.Errorf("status = %d", w.Code)
        }
        return
      }
      if len(data) != tc.fields {
        t.Errorf("fields = %d, want %d", len(data), tc.fields)
      }
    })
  }
}

func TestPathID(t *testing.T) {
  for raw, want := range map[string]bool{"7": true, "0": false, "-1": false, "abc": false} {
    c, w := testContext(http.MethodGet, "/", "")
    c.Params = gin.Params{{Key: "id", Value: raw}}
    id, ok := pathID(c, "id")
    if ok != want {
      t.Errorf("%q: ok = %v", raw, ok)
    }
    if ok && id != 7 {
      t.Errorf("%q: id = %d", raw, id)
    }
    if !ok && w.Code != http.StatusNotFound {
      t.Errorf("%q: status = %d", raw, w.Code)
    }
  }
}

func TestListRequestFilters(t *testing.T) {
  c, _ := testContext(http.MethodGet, "/?fk_companie=3&fk_user=x&table_name=stores&ignored=1&active=false&order_by=name&order_dir=desc", "")
  req := listRequest(c, true, []string{"fk_companie", "fk_user", "table_name", "fk_action"})
  if req.Filters["fk_companie"] != uint64(3) {
    t.Errorf("fk_companie = %#v", req.Filters["fk_companie"])
  }
  if req.Filters["fk_user"] != uint64(0) {
    t.Errorf("non-numeric fk_user = %#v", req.Filters["fk_user"])
  }
  if req.Filters["table_name"] != "stores" {
    t.Errorf("table_name = %#v", req.Filters["table_name"])
  }
  if _, ok := req.Filters["ignored"]; ok {
    t.Error("unlisted filter leaked through")
  }
  if _, ok := req.Filters["fk_action"]; ok {
    t.Error("absent filter should not be set")
  }
  if req.Active != "false" || req.OrderBy != "name" || req.OrderDir != "desc" {
    t.Errorf("unexpected request %+v", req)
  }
}
