package pagination

import (
  "net/http/httptest"
  "net/url"
  "strings"
  "testing"

  "github.com/gin-gonic/gin"
)

func contextFor(target string) *gin.Context {
  gin.SetMode(gin.TestMode)
  c, _ := gin.CreateTestContext(httptest.NewRecorder())
  c.Request = httptest.NewRequest("GET", target, nil)
  return c
}

func TestFromRequest(t *testing.T) {
  cases := []struct {
    name   string
    target string
    honor  bool
    want   Params
  }{
    {"defaults", "/x", true, Params{1, 10}},
    {"honored", "/x?page=2&per_page=5", true, Params{2, 5}},
    {"fixed size", "/x?page=3&per_page=5", false, Params{3, 10}},
    {"garbage", "/x?page=-1&per_page=abc", true, Params{1, 10}},
    {"capped", "/x?per_page=5000", true, Params{1, MaxPerPage}},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      if got := FromRequest(contextFor(tc.target), tc.honor); got != tc.want {
        t.Fatalf("got %+v, want %+v", got, tc.want)
      }
    })
  }
}

func TestNewComputesLastPage(t *testing.T) {
  pg := New([]int{6, 7, 8, 9, 10}, 12, Params{Page: 2, PerPage: 5})
  if pg.LastPage != 3 || pg.CurrentPage != 2 || pg.Total != 12 {
    t.Fatalf("unexpected page %+v", pg)
  }
  if *pg.From != 6 || *pg.To != 10 {
    t.Fatalf("from/to = %d/%d", *pg.From, *pg.To)
  }
  empty := New[int](nil, 0, Params{Page: 1, PerPage: 10})
  if empty.LastPage != 1 || empty.Data == nil || empty.From != nil {
    t.Fatalf("unexpected empty page %+v", empty)
  }
}

func TestWithLinksEchoesQuery(t *testing.T) {
  u, _ := url.Parse("http://api.test/api/brands?name=Acme&page=2&per_page=5")
  pg := New([]int{1, 2, 3, 4, 5}, 12, Params{Page: 2, PerPage: 5}).WithLinks(u)
  if pg.Path != "http://api.test/api/brands" {
    t.Fatalf("path %s", pg.Path)
  }
  if pg.NextPageURL == nil || !strings.Contains(*pg.NextPageURL, "page=3") || !strings.Contains(*pg.NextPageURL, "name=Acme") {
    t.Fatalf("next %v", pg.NextPageURL)
  }
  if pg.PrevPageURL == nil || !strings.Contains(*pg.PrevPageURL, "page=1") {
    t.Fatalf("prev %v", pg.PrevPageURL)
  }
  if !strings.Contains(pg.LastPageURL, "page=3") {
    t.Fatalf("last %s", pg.LastPageURL)
  }
}
