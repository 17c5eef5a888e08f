package services

import (
  "context"
  "fmt"
  "slices"
  "strconv"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/gondola-org/gondola-backend/internal/apperror"
  "github.com/gondola-org/gondola-backend/internal/audit"
  "github.com/gondola-org/gondola-backend/internal/logger"
  "github.com/gondola-org/gondola-backend/internal/repos"
  "github.com/gondola-org/gondola-backend/internal/requestdata"
  "github.com/gondola-org/gondola-backend/internal/types"
  "github.com/gondola-org/gondola-backend/internal/utils"
  "github.com/gondola-org/gondola-backend/internal/validation"
)

const (
  msgInvalidCredentials = "Credenciais inválidas."
  msgUnauthenticated    = "Não autenticado."
)

// AuthResult is the body of a successful login, registration or refresh.
type AuthResult struct {
  AccessToken string      `json:"access_token"`
  TokenType   string      `json:"token_type"`
  ExpiresIn   int         `json:"expires_in"`
  User        *types.User `json:"user"`
  Level       []string    `json:"level"`
}

// MeResult describes the authenticated caller.
type MeResult struct {
  User        *types.User `json:"user"`
  Roles       []string    `json:"roles"`
  Permissions []string    `json:"permissions"`
}

type AuthService interface {
  Register(ctx context.Context, data map[string]any) (*AuthResult, error)
  Login(ctx context.Context, data map[string]any) (*AuthResult, error)
  Logout(ctx context.Context) error
  Refresh(ctx context.Context) (*AuthResult, error)
  Me(ctx context.Context) (*MeResult, error)

  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  HasPermission(ctx context.Context, permission string) (bool, error)

  GetAccessTTL() time.Duration
}

type authService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  userTokenRepo repos.UserTokenRepo
  validator     *validation.Validator
  writer        *audit.Writer
  jwtSecretKey  string
  accessTTL     time.Duration
}

func NewAuthService(
  db            *gorm.DB,
  log           *logger.Logger,
  userRepo      repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  validator     *validation.Validator,
  writer        *audit.Writer,
  jwtSecretKey  string,
  accessTTL     time.Duration,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    userTokenRepo: userTokenRepo,
    validator:     validator,
    writer:        writer,
    jwtSecretKey:  jwtSecretKey,
    accessTTL:     accessTTL,
  }
}

//----------------------------------------------------------------------------------------------------------------------
// Register
//----------------------------------------------------------------------------------------------------------------------

func (as *authService) Register(ctx context.Context, data map[string]any) (*AuthResult, error) {
  as.log.Info("Starting Register now...")
  //1) Validate
  if err := as.validator.Validate(ctx, validation.RegisterRules(), data); err != nil {
    return nil, err
  }

  //2) Build + hash
  user := &types.User{}
  setString(data, "name", &user.Name)
  setString(data, "email", &user.Email)
  user.Password, _ = data["password"].(string)
  utils.NormalizeUserFields(ctx, user)
  if err := utils.HashPassword(ctx, as.log, user); err != nil {
    return nil, err
  }

  //3) Create the user and its first token in one audited write
  var accessToken string
  err := as.writer.Write(ctx, audit.ActionCreate, func(tx *gorm.DB) (audit.Target, error) {
    if _, cErr := as.userRepo.Create(ctx, tx, []*types.User{user}); cErr != nil {
      return audit.Target{}, fmt.Errorf("create user: %w", cErr)
    }
    tok, tErr := as.issueToken(ctx, tx, user)
    if tErr != nil {
      return audit.Target{}, tErr
    }
    accessToken = tok
    return audit.Target{
      Table:       user.TableName(),
      RecordID:    user.ID,
      Description: fmt.Sprintf("Usuário registrado: %s", user.Email),
      Snapshot:    user,
    }, nil
  })
  if err != nil {
    return nil, err
  }
  as.log.Info("Register Successful :)", "userID", user.ID)
  return as.result(accessToken, user), nil
}

//----------------------------------------------------------------------------------------------------------------------
// Login / Logout / Refresh
//----------------------------------------------------------------------------------------------------------------------

func (as *authService) Login(ctx context.Context, data map[string]any) (*AuthResult, error) {
  //1) Validate
  if err := as.validator.Validate(ctx, validation.LoginRules(), data); err != nil {
    return nil, err
  }
  email, _ := data["email"].(string)
  password, _ := data["password"].(string)

  //2) Exact email match, then the password
  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    as.log.Warn("Failure to retrieve user by email, Cannot proceed. Returning error.", "error", err)
    return nil, fmt.Errorf("error retrieving user by email: %w", err)
  }
  if len(users) == 0 {
    as.log.Warn("Login attempt for unknown email")
    return nil, apperror.NewUnauthorized(msgInvalidCredentials)
  }
  user := users[0]
  if !utils.CheckPassword(user.Password, password) {
    as.log.Warn("Invalid password for user", "userID", user.ID)
    return nil, apperror.NewUnauthorized(msgInvalidCredentials)
  }

  //3) Issue token + "Conectou" entry
  var accessToken string
  err = as.writer.Write(ctx, audit.ActionLogin, func(tx *gorm.DB) (audit.Target, error) {
    if pErr := as.pruneExpiredTokens(ctx, tx, user.ID); pErr != nil {
      return audit.Target{}, pErr
    }
    tok, tErr := as.issueToken(ctx, tx, user)
    if tErr != nil {
      return audit.Target{}, tErr
    }
    accessToken = tok
    actor := user.ID
    return audit.Target{
      Table:       user.TableName(),
      RecordID:    user.ID,
      Description: fmt.Sprintf("Login realizado: %s", user.Email),
      Actor:       &actor,
    }, nil
  })
  if err != nil {
    return nil, err
  }
  return as.result(accessToken, user), nil
}

// Logout revokes only the presenting token; other sessions stay valid.
func (as *authService) Logout(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.TokenString == "" {
    as.log.Warn("No Request Data found in context, Cannot proceed.")
    return apperror.NewUnauthorized(msgUnauthenticated)
  }
  return as.writer.Write(ctx, audit.ActionLogout, func(tx *gorm.DB) (audit.Target, error) {
    found, fErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
    if fErr != nil {
      return audit.Target{}, fmt.Errorf("find user token: %w", fErr)
    }
    if len(found) == 0 {
      return audit.Target{}, apperror.NewUnauthorized(msgUnauthenticated)
    }
    if dErr := as.userTokenRepo.FullDeleteByTokens(ctx, tx, found); dErr != nil {
      return audit.Target{}, fmt.Errorf("delete user token: %w", dErr)
    }
    return audit.Target{
      Table:       "users",
      RecordID:    rd.UserID,
      Description: fmt.Sprintf("Logout realizado: users #%d", rd.UserID),
    }, nil
  })
}

// Refresh swaps the presenting token for a new one.
func (as *authService) Refresh(ctx context.Context) (*AuthResult, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.TokenString == "" {
    return nil, apperror.NewUnauthorized(msgUnauthenticated)
  }
  var accessToken string
  var user *types.User
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    found, fErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
    if fErr != nil {
      return fmt.Errorf("find user token: %w", fErr)
    }
    if len(found) == 0 {
      return apperror.NewUnauthorized(msgUnauthenticated)
    }
    u, uErr := as.userRepo.GetByID(ctx, tx, rd.UserID, "Roles")
    if uErr != nil {
      return fmt.Errorf("load user for refresh: %w", uErr)
    }
    if u == nil {
      return apperror.NewUnauthorized(msgUnauthenticated)
    }
    tok, tErr := as.issueToken(ctx, tx, u)
    if tErr != nil {
      return tErr
    }
    if dErr := as.userTokenRepo.FullDeleteByTokens(ctx, tx, found); dErr != nil {
      return fmt.Errorf("remove old token: %w", dErr)
    }
    accessToken, user = tok, u
    return nil
  })
  if err != nil {
    as.log.Warn("Failed refresh transaction", "error", err)
    return nil, err
  }
  return as.result(accessToken, user), nil
}

//----------------------------------------------------------------------------------------------------------------------
// Me / permissions
//----------------------------------------------------------------------------------------------------------------------

func (as *authService) Me(ctx context.Context) (*MeResult, error) {
  user, err := as.currentUser(ctx)
  if err != nil {
    return nil, err
  }
  perms := user.EffectivePermissions()
  if perms == nil {
    perms = []string{}
  }
  return &MeResult{User: user, Roles: user.RoleNames(), Permissions: perms}, nil
}

func (as *authService) HasPermission(ctx context.Context, permission string) (bool, error) {
  user, err := as.currentUser(ctx)
  if err != nil {
    return false, err
  }
  return slices.Contains(user.EffectivePermissions(), permission), nil
}

func (as *authService) currentUser(ctx context.Context) (*types.User, error) {
  actor := requestdata.ActorID(ctx)
  if actor == nil {
    return nil, apperror.NewUnauthorized(msgUnauthenticated)
  }
  user, err := as.userRepo.GetWithAccess(ctx, nil, *actor)
  if err != nil {
    return nil, fmt.Errorf("load current user: %w", err)
  }
  if user == nil {
    return nil, apperror.NewUnauthorized(msgUnauthenticated)
  }
  return user, nil
}

//----------------------------------------------------------------------------------------------------------------------
// Tokens
//----------------------------------------------------------------------------------------------------------------------

func (as *authService) issueToken(ctx context.Context, tx *gorm.DB, user *types.User) (string, error) {
  now := time.Now()
  expiresAt := now.Add(as.accessTTL)
  tokenID := uuid.New().String()
  claims := jwt.RegisteredClaims{
    Subject:   strconv.FormatUint(uint64(user.ID), 10),
    ID:        tokenID,
    IssuedAt:  jwt.NewNumericDate(now),
    ExpiresAt: jwt.NewNumericDate(expiresAt),
  }
  signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
  if err != nil {
    return "", fmt.Errorf("sign access token: %w", err)
  }
  userToken := &types.UserToken{
    FKUser:      user.ID,
    AccessToken: signed,
    TokenID:     tokenID,
    ExpiresAt:   expiresAt,
  }
  if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
    return "", fmt.Errorf("store access token: %w", err)
  }
  return signed, nil
}

func (as *authService) pruneExpiredTokens(ctx context.Context, tx *gorm.DB, userID uint) error {
  tokens, err := as.userTokenRepo.GetByUserIDs(ctx, tx, []uint{userID})
  if err != nil {
    return fmt.Errorf("load user tokens: %w", err)
  }
  var expired []*types.UserToken
  now := time.Now()
  for _, t := range tokens {
    if t.ExpiresAt.Before(now) {
      expired = append(expired, t)
    }
  }
  if err := as.userTokenRepo.FullDeleteByTokens(ctx, tx, expired); err != nil {
    return fmt.Errorf("delete expired tokens: %w", err)
  }
  return nil
}

// SetContextFromToken accepts a signed, unexpired token that is still stored
// in user_tokens and attaches its identity to ctx.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, apperror.NewUnauthorized(msgUnauthenticated)
  }
  claims := &jwt.RegisteredClaims{}
  parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
  if err != nil || !parsed.Valid {
    as.log.Debug("Rejected access token", "error", err)
    return ctx, apperror.NewUnauthorized(msgUnauthenticated)
  }
  userID, err := strconv.ParseUint(claims.Subject, 10, 64)
  if err != nil || userID == 0 {
    return ctx, apperror.NewUnauthorized(msgUnauthenticated)
  }
  found, err := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
  if err != nil {
    return ctx, fmt.Errorf("fetch user token: %w", err)
  }
  if len(found) == 0 || found[0].ExpiresAt.Before(time.Now()) {
    return ctx, apperror.NewUnauthorized(msgUnauthenticated)
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    TokenID:     claims.ID,
    UserID:      uint(userID),
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}

func (as *authService) result(accessToken string, user *types.User) *AuthResult {
  level := user.RoleNames()
  return &AuthResult{
    AccessToken: accessToken,
    TokenType:   "Bearer",
    ExpiresIn:   int(as.GetAccessTTL().Seconds()),
    User:        user,
    Level:       level,
  }
}
