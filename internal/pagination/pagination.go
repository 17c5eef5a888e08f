package pagination

import (
  "net/url"
  "strconv"

  "github.com/gin-gonic/gin"
)

const (
  DefaultPerPage = 10
  MaxPerPage     = 100
)

type Params struct {
  Page    int
  PerPage int
}

func (p Params) Offset() int {
  return (p.Page - 1) * p.PerPage
}

// FromRequest reads page and per_page. When honorPerPage is false the page
// size stays at DefaultPerPage whatever the client sends.
func FromRequest(c *gin.Context, honorPerPage bool) Params {
  p := Params{Page: 1, PerPage: DefaultPerPage}
  if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
    p.Page = v
  }
  if honorPerPage {
    if v, err := strconv.Atoi(c.Query("per_page")); err == nil && v > 0 {
      p.PerPage = v
    }
    if p.PerPage > MaxPerPage {
      p.PerPage = MaxPerPage
    }
  }
  return p
}

type Page[T any] struct {
  CurrentPage   int       `json:"current_page"`
  Data          []T       `json:"data"`
  FirstPageURL  string    `json:"first_page_url"`
  From          *int      `json:"from"`
  LastPage      int       `json:"last_page"`
  LastPageURL   string    `json:"last_page_url"`
  NextPageURL   *string   `json:"next_page_url"`
  Path          string    `json:"path"`
  PerPage       int       `json:"per_page"`
  PrevPageURL   *string   `json:"prev_page_url"`
  To            *int      `json:"to"`
  Total         int64     `json:"total"`
}

func New[T any](items []T, total int64, p Params) Page[T] {
  if items == nil {
    items = []T{}
  }
  lastPage := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
  if lastPage < 1 {
    lastPage = 1
  }
  pg := Page[T]{
    CurrentPage: p.Page,
    Data:        items,
    LastPage:    lastPage,
    PerPage:     p.PerPage,
    Total:       total,
  }
  if len(items) > 0 {
    from := p.Offset() + 1
    to := p.Offset() + len(items)
    pg.From, pg.To = &from, &to
  }
  return pg
}

// WithLinks fills the navigation urls from the request url, keeping every
// query parameter and replacing page.
func (pg Page[T]) WithLinks(u *url.URL) Page[T] {
  if u == nil {
    return pg
  }
  base := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
  pg.Path = base.String()
  link := func(page int) string {
    q := u.Query()
    q.Set("page", strconv.Itoa(page))
    withQuery := base
    withQuery.RawQuery = q.Encode()
    return withQuery.String()
  }
  pg.FirstPageURL = link(1)
  pg.LastPageURL = link(pg.LastPage)
  if pg.CurrentPage < pg.LastPage {
    next := link(pg.CurrentPage + 1)
    pg.NextPageURL = &next
  }
  if pg.CurrentPage > 1 {
    prev := link(pg.CurrentPage - 1)
    pg.PrevPageURL = &prev
  }
  return pg
}

// RequestURL rebuilds the absolute url of the current request.
func RequestURL(c *gin.Context) *url.URL {
  u := *c.Request.URL
  u.Host = c.Request.Host
  u.Scheme = "http"
  if c.Request.TLS != nil {
    u.Scheme = "https"
  }
  if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
    u.Scheme = proto
  }
  return &u
}
