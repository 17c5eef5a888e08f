package validation

import (
  "context"
  "fmt"
  "math"
  "sort"
  "strconv"
  "strings"
  "sync"

  "github.com/go-playground/validator/v10"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/gondola-org/gondola-backend/internal/apperror"
  "github.com/gondola-org/gondola-backend/internal/logger"
)

// RuleSet pairs field constraints with their messages. Rules are validator
// tag lists evaluated left to right, keyed by field path; "*" matches every
// element of an array. Messages are keyed by "path.tag".
type RuleSet struct {
  Rules    map[string]string
  Messages map[string]string
  // Partial skips top-level fields absent from the payload (update requests).
  Partial  bool
}

type Validator struct {
  v             *validator.Validate
  db            *gorm.DB
  log           *logger.Logger
  softDeletes   sync.Map
}

type dbFailureKey struct{}

type dbFailure struct {
  err error
}

func New(db *gorm.DB, log *logger.Logger) *Validator {
  vl := &Validator{
    v:   validator.New(validator.WithRequiredStructEnabled()),
    db:  db,
    log: log.With("component", "Validator"),
  }
  vl.registerValidators()
  return vl
}

func (vl *Validator) registerValidators() {
  must := func(tag string, fn validator.FuncCtx) {
    if err := vl.v.RegisterValidationCtx(tag, fn); err != nil {
      panic(fmt.Sprintf("register validation %s: %v", tag, err))
    }
  }
  must("string", func(_ context.Context, fl validator.FieldLevel) bool {
    _, ok := fl.Field().Interface().(string)
    return ok
  })
  must("integer", func(_ context.Context, fl validator.FieldLevel) bool {
    _, ok := asInt(fl.Field().Interface())
    return ok
  })
  must("boolean", func(_ context.Context, fl validator.FieldLevel) bool {
    _, ok := fl.Field().Interface().(bool)
    return ok
  })
  must("array", func(_ context.Context, fl validator.FieldLevel) bool {
    _, ok := fl.Field().Interface().([]any)
    return ok
  })
  must("object", func(_ context.Context, fl validator.FieldLevel) bool {
    _, ok := fl.Field().Interface().(map[string]any)
    return ok
  })
  must("digits", validateDigits)
  must("exists", vl.validateExists)
  must("unique", vl.validateUnique)
}

// Validate checks data against rs. It returns a validation *apperror.Error
// holding the first failure per concrete field path, an internal error when
// a database lookup fails, or nil.
func (vl *Validator) Validate(ctx context.Context, rs RuleSet, data map[string]any) error {
  if data == nil {
    data = map[string]any{}
  }
  failure := &dbFailure{}
  ctx = context.WithValue(ctx, dbFailureKey{}, failure)

  patterns := make([]string, 0, len(rs.Rules))
  for p := range rs.Rules {
    patterns = append(patterns, p)
  }
  sort.Strings(patterns)

  fields := map[string][]string{}
  for _, pattern := range patterns {
    tags := splitTags(rs.Rules[pattern])
    topLevel := !strings.Contains(pattern, ".")
    for _, t := range resolve(data, pattern) {
      if rs.Partial && topLevel && !t.present {
        continue
      }
      tag, param, ok := vl.check(ctx, tags, t)
      if failure.err != nil {
        vl.log.Error("Database lookup failed during validation", "field", t.path, "error", failure.err)
        return apperror.Wrap(failure.err, "Erro interno do servidor.")
      }
      if !ok {
        fields[t.path] = []string{message(rs, pattern, t.path, tag, param)}
      }
    }
  }
  if len(fields) > 0 {
    return apperror.NewValidation(fields)
  }
  return nil
}

// check runs tags against one target and returns the first failing tag.
func (vl *Validator) check(ctx context.Context, tags []string, t target) (string, string, bool) {
  required := hasTag(tags, "required")
  value := t.value
  if s, isStr := value.(string); isStr && strings.TrimSpace(s) == "" {
    value = nil
  }
  if arr, isArr := value.([]any); isArr && len(arr) == 0 && required {
    value = nil
  }
  if !t.present || value == nil {
    if required {
      return "required", "", false
    }
    return "", "", true
  }
  for _, tag := range tags {
    name, param := splitParam(tag)
    switch name {
    case "required", "nullable", "sometimes":
      continue
    }
    if !vl.run(ctx, value, tag) {
      return name, param, false
    }
  }
  return "", "", true
}

func (vl *Validator) run(ctx context.Context, value any, tag string) (ok bool) {
  defer func() {
    if r := recover(); r != nil {
      vl.log.Warn("Validation tag does not apply to value type", "tag", tag, "panic", r)
      ok = false
    }
  }()
  return vl.v.VarCtx(ctx, value, tag) == nil
}

func (vl *Validator) validateExists(ctx context.Context, fl validator.FieldLevel) bool {
  table, column, _ := parseTableParam(fl.Param())
  query := vl.db.WithContext(ctx).Table(table).Where(clause.Eq{Column: clause.Column{Name: column}, Value: dbValue(fl.Field().Interface())})
  if vl.hasSoftDelete(table) {
    query = query.Where(clause.Eq{Column: clause.Column{Name: "deleted_at"}, Value: nil})
  }
  var count int64
  if err := query.Count(&count).Error; err != nil {
    recordFailure(ctx, err)
    return false
  }
  return count > 0
}

// validateUnique counts trashed rows as well: a soft-deleted record keeps its
// unique value reserved.
func (vl *Validator) validateUnique(ctx context.Context, fl validator.FieldLevel) bool {
  table, column, except := parseTableParam(fl.Param())
  query := vl.db.WithContext(ctx).Table(table).Where(clause.Eq{Column: clause.Column{Name: column}, Value: dbValue(fl.Field().Interface())})
  if id, err := strconv.ParseInt(except, 10, 64); err == nil {
    query = query.Where(clause.Neq{Column: clause.Column{Name: "id"}, Value: id})
  }
  var count int64
  if err := query.Count(&count).Error; err != nil {
    recordFailure(ctx, err)
    return false
  }
  return count == 0
}

func (vl *Validator) hasSoftDelete(table string) bool {
  if v, ok := vl.softDeletes.Load(table); ok {
    return v.(bool)
  }
  has := vl.db.Migrator().HasColumn(table, "deleted_at")
  vl.softDeletes.Store(table, has)
  return has
}

func validateDigits(_ context.Context, fl validator.FieldLevel) bool {
  n, err := strconv.Atoi(fl.Param())
  if err != nil {
    return false
  }
  var s string
  switch v := fl.Field().Interface().(type) {
  case string:
    s = v
  case float64:
    if v != math.Trunc(v) || v < 0 {
      return false
    }
    s = strconv.FormatFloat(v, 'f', 0, 64)
  default:
    return false
  }
  if len(s) != n {
    return false
  }
  for _, r := range s {
    if r < '0' || r > '9' {
      return false
    }
  }
  return true
}

func recordFailure(ctx context.Context, err error) {
  if f, ok := ctx.Value(dbFailureKey{}).(*dbFailure); ok && f.err == nil {
    f.err = err
  }
}

func asInt(v any) (int64, bool) {
  switch n := v.(type) {
  case float64:
    if n != math.Trunc(n) || math.IsInf(n, 0) {
      return 0, false
    }
    return int64(n), true
  case int:
    return int64(n), true
  case int64:
    return n, true
  case uint:
    return int64(n), true
  }
  return 0, false
}

func dbValue(v any) any {
  if n, ok := asInt(v); ok {
    return n
  }
  return v
}

func parseTableParam(param string) (table, column, except string) {
  parts := strings.SplitN(param, ":", 3)
  table = parts[0]
  column = "id"
  if len(parts) > 1 && parts[1] != "" {
    column = parts[1]
  }
  if len(parts) > 2 {
    except = parts[2]
  }
  return table, column, except
}

func splitTags(rule string) []string {
  var tags []string
  for _, t := range strings.Split(rule, ",") {
    if t = strings.TrimSpace(t); t != "" {
      tags = append(tags, t)
    }
  }
  return tags
}

func splitParam(tag string) (string, string) {
  if i := strings.Index(tag, "="); i >= 0 {
    return tag[:i], tag[i+1:]
  }
  return tag, ""
}

func hasTag(tags []string, name string) bool {
  for _, t := range tags {
    if n, _ := splitParam(t); n == name {
      return true
    }
  }
  return false
}
